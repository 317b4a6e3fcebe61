package ozzoconfini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	confini "github.com/ltick/goconfini"
)

func TestDecodeBuildsNestedSectionTree(t *testing.T) {
	doc := `
[common]
name = svc
[common.dev]
debug = true
`
	tree, err := Decode([]byte(doc), confini.DefaultFormat)
	require.NoError(t, err)

	common, ok := tree["common"].(map[string]interface{})
	require.True(t, ok, "tree: %#v", tree)
	assert.Equal(t, "svc", common["name"])

	dev, ok := common["dev"].(map[string]interface{})
	require.True(t, ok, "common: %#v", common)
	assert.Equal(t, "true", dev["debug"])
}

func TestDecodeDropsCommentsAndUnknown(t *testing.T) {
	doc := "; a comment\nk = v\n"
	tree, err := Decode([]byte(doc), confini.DefaultFormat)
	require.NoError(t, err)
	assert.Equal(t, "v", tree["k"])
	assert.Len(t, tree, 1)
}

type target struct {
	K string `json:"k"`
}

func TestUnmarshalIntoStructRoundTripsThroughJSON(t *testing.T) {
	var out target
	require.NoError(t, Unmarshal([]byte("k = v\n"), &out))
	assert.Equal(t, "v", out.K)
}

func TestUnmarshalIntoMap(t *testing.T) {
	var out map[string]interface{}
	require.NoError(t, Unmarshal([]byte("k = v\n"), &out))
	assert.Equal(t, "v", out["k"])
}
