package confini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectDispatches runs StripIniCache over input under format and returns
// every dispatched node plus the statistics the single f_init call saw.
func collectDispatches(t *testing.T, input string, format IniFormat) ([]IniDispatch, IniStatistics) {
	t.Helper()
	buf := []byte(input)
	var stats IniStatistics
	var got []IniDispatch
	rc := StripIniCache(buf, format, func(s *IniStatistics, _ any) int {
		stats = *s
		return 0
	}, func(d *IniDispatch, _ any) int {
		got = append(got, *d)
		return 0
	}, nil)
	require.Equal(t, ConfiniSuccess, rc)
	return got, stats
}

func TestScenarioS1SectionAndKey(t *testing.T) {
	got, stats := collectDispatches(t, "[a]\nk = v\n", DefaultFormat)
	require.Equal(t, 2, stats.Members)
	require.Len(t, got, 2)
	assert.Equal(t, INISection, got[0].Type)
	assert.Equal(t, "a", got[0].Data)
	assert.Equal(t, "", got[0].AppendTo)
	assert.Equal(t, INIKey, got[1].Type)
	assert.Equal(t, "k", got[1].Data)
	assert.Equal(t, "v", got[1].Value)
	assert.Equal(t, "a", got[1].AppendTo)
}

func TestScenarioS2DisabledKey(t *testing.T) {
	got, _ := collectDispatches(t, ";k=v\n", DefaultFormat)
	require.Len(t, got, 1)
	assert.Equal(t, INIDisabledKey, got[0].Type)
	assert.Equal(t, "k", got[0].Data)
	assert.Equal(t, "v", got[0].Value)
}

func TestScenarioS3OnlyCommentMarker(t *testing.T) {
	f := DefaultFormat
	f.SemicolonMarker = INIOnlyComment
	got, _ := collectDispatches(t, ";k=v\n", f)
	require.Len(t, got, 1)
	assert.Equal(t, INIComment, got[0].Type)
	assert.Equal(t, "k=v", got[0].Data)
}

func TestScenarioS4RelativeSections(t *testing.T) {
	f := DefaultFormat
	f.SectionPaths = INIAbsoluteAndRelative
	got, _ := collectDispatches(t, "[a]\n[.b]\nk=1\n", f)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Data)
	assert.Equal(t, "a.b", got[1].Data)
	assert.Equal(t, INIKey, got[2].Type)
	assert.Equal(t, "a.b", got[2].AppendTo)
}

func TestScenarioS5QuotedNewlineEscape(t *testing.T) {
	got, _ := collectDispatches(t, "k = \"a\\nb\"\n", DefaultFormat)
	require.Len(t, got, 1)
	assert.Equal(t, "a\nb", got[0].Value)
}

func TestScenarioS6MultilineContinuationCollapsesSpace(t *testing.T) {
	f := DefaultFormat
	f.MultilineNodes = INIMultilineEverywhere
	got, _ := collectDispatches(t, "a = 1 \\\n  2\n", f)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Data)
	assert.Equal(t, "1 2", got[0].Value)
}

func TestScenarioS7ImplicitValue(t *testing.T) {
	SetGlobalImplicitValue("true")
	defer SetGlobalImplicitValue("")

	f := DefaultFormat
	f.ImplicitIsNotEmpty = true
	got, _ := collectDispatches(t, "flag\n", f)
	require.Len(t, got, 1)
	assert.Equal(t, INIKey, got[0].Type)
	assert.Equal(t, "flag", got[0].Data)
	assert.Equal(t, "true", got[0].Value)
}

func TestDispatchIDsAreMonotonic(t *testing.T) {
	got, stats := collectDispatches(t, "[a]\nk1=1\nk2=2\nk3=3\n", DefaultFormat)
	require.Equal(t, stats.Members, len(got))
	for i, d := range got {
		assert.Equal(t, i, d.DispatchID)
	}
}

func TestStatsAbortYieldsNoDispatches(t *testing.T) {
	buf := []byte("[a]\nk=v\n")
	calls := 0
	rc := StripIniCache(buf, DefaultFormat, func(_ *IniStatistics, _ any) int {
		return 1
	}, func(_ *IniDispatch, _ any) int {
		calls++
		return 0
	}, nil)
	assert.Equal(t, ConfiniIIntr, rc)
	assert.Equal(t, 0, calls)
}

func TestForeachAbortStopsAtKthCall(t *testing.T) {
	buf := []byte("k1=1\nk2=2\nk3=3\n")
	calls := 0
	rc := StripIniCache(buf, DefaultFormat, nil, func(_ *IniDispatch, _ any) int {
		calls++
		if calls == 2 {
			return 7
		}
		return 0
	}, nil)
	assert.Equal(t, ConfiniFEIntr, rc)
	assert.Equal(t, 2, calls)
}

func TestEmptySectionStaysOpenParent(t *testing.T) {
	got, _ := collectDispatches(t, "[]\nk=v\n", DefaultFormat)
	require.Len(t, got, 2)
	assert.Equal(t, INISection, got[0].Type)
	assert.Equal(t, "", got[0].Data)
	assert.Equal(t, "", got[1].AppendTo)
}

func TestEmptyNameBecomesUnknown(t *testing.T) {
	f := DefaultFormat
	f.DelimiterSymbol = INIEquals
	got, _ := collectDispatches(t, "   = v\n", f)
	require.Len(t, got, 1)
	assert.Equal(t, INIUnknown, got[0].Type)
}

func TestDisabledMarkerFollowedByWhitespaceIsComment(t *testing.T) {
	got, _ := collectDispatches(t, ";   \n", DefaultFormat)
	require.Len(t, got, 1)
	assert.Equal(t, INIComment, got[0].Type)
	assert.Equal(t, "", got[0].Data)
}

func TestIsErrorMask(t *testing.T) {
	assert.False(t, ConfiniSuccess.IsError())
	assert.False(t, ConfiniIIntr.IsError())
	assert.False(t, ConfiniFEIntr.IsError())
	assert.True(t, ConfiniENoEnt.IsError())
	assert.True(t, ConfiniEOOR.IsError())
}
