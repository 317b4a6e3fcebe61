package confini

import "strings"

// In-place string transformation primitives over a Format-typed byte
// buffer: unescaping, whitespace collapsing, unquoting, case-insensitive
// comparison, and array iteration. Every function here is deterministic
// and side-effect-free on anything but the buffer it is handed -- the
// parser's Pass B (parser.go) leans on that property to normalize a node's
// bytes without disturbing its neighbors.
//
// Each "rewrite" primitive below follows the header's in-place contract:
// it mutates its []byte argument and returns the new, possibly shorter,
// length; callers re-slice with buf[:n].

type delimRange struct {
	start, end int
}

// findDelimiters walks buf once, honoring quoting and escaping exactly as
// Pass B does, and returns the [start,end) byte range of every unescaped,
// unquoted occurrence of delim (a run of forgettable whitespace, when
// delim is INIAnySpace).
func findDelimiters(buf []byte, delim byte, format IniFormat) []delimRange {
	var ranges []delimRange
	quoteChar := byte(0)
	noEsc := hasNoEsc(format)
	i := 0
	for i < len(buf) {
		b := buf[i]
		if !noEsc && b == '\\' && i+1 < len(buf) {
			i += 2
			continue
		}
		if quoteChar == 0 && isQuote(b, format) {
			quoteChar = b
			i++
			continue
		}
		if quoteChar != 0 && b == quoteChar {
			quoteChar = 0
			i++
			continue
		}
		if quoteChar == 0 && isDelimiter(b, delim) {
			if delim == INIAnySpace {
				j := i
				for j < len(buf) && isDelimiter(buf[j], delim) {
					j++
				}
				ranges = append(ranges, delimRange{i, j})
				i = j
				continue
			}
			ranges = append(ranges, delimRange{i, i + 1})
			i++
			continue
		}
		i++
	}
	return ranges
}

// fragmentBounds turns the delimiter ranges of buf into the [start,end)
// bounds of each fragment between them, including the (possibly empty)
// trailing fragment.
func fragmentBounds(buf []byte, ranges []delimRange) []delimRange {
	frags := make([]delimRange, 0, len(ranges)+1)
	start := 0
	for _, r := range ranges {
		frags = append(frags, delimRange{start, r.start})
		start = r.end
	}
	frags = append(frags, delimRange{start, len(buf)})
	return frags
}

func trimForgettable(buf []byte) []byte {
	start, end := 0, len(buf)
	for start < end && isForgettableWhitespace(buf[start]) {
		start++
	}
	for end > start && isForgettableWhitespace(buf[end-1]) {
		end--
	}
	return buf[start:end]
}

// collapseWhitespace trims leading/trailing forgettable whitespace and
// folds interior runs of it into a single space.
func collapseWhitespace(src []byte) []byte {
	trimmed := trimForgettable(src)
	out := make([]byte, 0, len(trimmed))
	inRun := false
	for _, b := range trimmed {
		if isForgettableWhitespace(b) {
			if !inRun {
				out = append(out, ' ')
				inRun = true
			}
			continue
		}
		inRun = false
		out = append(out, b)
	}
	return out
}

// unquoteBytes removes unescaped quote pairs and resolves the recognized
// escape sequences (`\\`, `\'`, `\"`, `\0`, `\n`, `\r`, `\t`, and the four
// multiline-continuation escapes, which collapse to a single space), per
// spec.md §4.3. When hasNoEsc(format) holds, backslashes and quote bytes
// are both purely literal and the buffer is returned unchanged.
func unquoteBytes(src []byte, format IniFormat) []byte {
	if hasNoEsc(format) {
		return src
	}
	out := make([]byte, 0, len(src))
	quoteChar := byte(0)
	i := 0
	for i < len(src) {
		b := src[i]
		if b == '\\' && i+1 < len(src) {
			next := src[i+1]
			switch {
			case quoteChar != 0 && next == quoteChar:
				out = append(out, quoteChar)
				i += 2
			case next == '\\':
				out = append(out, '\\')
				i += 2
			case next == '\'' || next == '"':
				out = append(out, next)
				i += 2
			case next == '0':
				out = append(out, 0)
				i += 2
			case next == 'n':
				out = append(out, '\n')
				i += 2
			case next == 'r':
				out = append(out, '\r')
				i += 2
			case next == 't':
				out = append(out, '\t')
				i += 2
			case next == '\n' || next == '\r':
				// multiline continuation: \LF, \CR, \LF CR, \CR LF all
				// collapse to a single space.
				consumed := 2
				if i+2 < len(src) {
					if next == '\n' && src[i+2] == '\r' {
						consumed = 3
					} else if next == '\r' && src[i+2] == '\n' {
						consumed = 3
					}
				}
				out = append(out, ' ')
				i += consumed
			default:
				out = append(out, '\\')
				i++
			}
			continue
		}
		if quoteChar == 0 && isQuote(b, format) {
			if i+1 < len(src) && src[i+1] == b {
				// An empty quote pair: "" or ''.
				if format.PreserveEmptyQuotes {
					out = append(out, b, b)
				}
				i += 2
				continue
			}
			quoteChar = b
			i++
			continue
		}
		if quoteChar != 0 && b == quoteChar {
			quoteChar = 0
			i++
			continue
		}
		out = append(out, b)
		i++
	}
	return out
}

// Unquote mutates ini_string in place, stripping unescaped quoting and
// resolving escape sequences, and returns the new length.
func Unquote(iniString []byte, format IniFormat) int {
	out := unquoteBytes(iniString, format)
	return copy(iniString, out)
}

// Parse performs full node normalization: unquote, then collapse interior
// forgettable-whitespace runs into a single space -- skipped entirely when
// format.DoNotCollapseValues holds and isValue is true. It returns the new
// length of ini_string.
//
// Open question (spec.md §9): PreserveEmptyQuotes interacting with
// DoNotCollapseValues inside multi-line comments is underspecified by the
// header. This implementation treats a preserved empty quote pair as an
// ordinary two-byte token, collapsible like any other run once collapsing
// is in effect -- stable within this repository, per the header's own
// "implementation-defined but stable" framing.
func Parse(iniString []byte, format IniFormat, isValue bool) int {
	unquoted := unquoteBytes(iniString, format)
	if format.DoNotCollapseValues && isValue {
		return copy(iniString, unquoted)
	}
	return copy(iniString, collapseWhitespace(unquoted))
}

// ArrayGetLength returns 1 + the number of unescaped, unquoted occurrences
// of delimiter d in iniString -- an empty trailing fragment still counts.
func ArrayGetLength(iniString []byte, d byte, format IniFormat) int {
	return len(findDelimiters(iniString, d, format)) + 1
}

// ArraySubstrHandler is invoked by ArrayForeach for each array fragment.
// It receives the fragment's offset and length within the original
// buffer, its zero-based index, and the active format; a non-zero return
// aborts the iteration.
type ArraySubstrHandler func(iniString []byte, offset, length, index int, format IniFormat, userData any) int

// ArrayForeach invokes f once per fragment of iniString split on d, in
// order, passing each fragment's offset/length within iniString. It
// returns the first non-zero value f returns, or 0 once exhausted.
func ArrayForeach(iniString []byte, d byte, format IniFormat, f ArraySubstrHandler, userData any) int {
	ranges := findDelimiters(iniString, d, format)
	frags := fragmentBounds(iniString, ranges)
	for idx, fr := range frags {
		if rc := f(iniString, fr.start, fr.end-fr.start, idx, format, userData); rc != 0 {
			return rc
		}
	}
	return 0
}

// ArrayShift advances *strptr past the next fragment and its delimiter,
// returning the fragment's length; *strptr ends up pointing at the start
// of the following fragment, or at an empty slice once exhausted.
func ArrayShift(strptr *[]byte, d byte, format IniFormat) int {
	buf := *strptr
	ranges := findDelimiters(buf, d, format)
	if len(ranges) == 0 {
		*strptr = buf[len(buf):]
		return len(buf)
	}
	r := ranges[0]
	*strptr = buf[r.end:]
	return r.start
}

// ArrayCollapse rewrites iniString so that each fragment is trimmed of
// forgettable whitespace and fragments are rejoined by a single literal
// delimiter byte (a single space, when d is INIAnySpace). It returns the
// new length.
func ArrayCollapse(iniString []byte, d byte, format IniFormat) int {
	ranges := findDelimiters(iniString, d, format)
	frags := fragmentBounds(iniString, ranges)
	sep := d
	if d == INIAnySpace {
		sep = ' '
	}
	out := make([]byte, 0, len(iniString))
	for i, fr := range frags {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, trimForgettable(iniString[fr.start:fr.end])...)
	}
	return copy(iniString, out)
}

// ArrayBreak destructively replaces the first unescaped delimiter in
// iniString with a NUL byte and returns the remainder that follows it (or
// ok=false if d does not occur).
func ArrayBreak(iniString []byte, d byte, format IniFormat) (rest []byte, ok bool) {
	ranges := findDelimiters(iniString, d, format)
	if len(ranges) == 0 {
		return nil, false
	}
	r := ranges[0]
	iniString[r.start] = 0
	return iniString[r.end:], true
}

// ArrayRelease is the iteration counterpart of ArrayBreak: it returns the
// head fragment of *strptr and advances *strptr past it (and its
// delimiter), or ok=false once *strptr is exhausted. Unlike ArrayBreak it
// writes no NUL into the buffer.
func ArrayRelease(strptr *[]byte, d byte, format IniFormat) (head []byte, ok bool) {
	buf := *strptr
	if len(buf) == 0 {
		return nil, false
	}
	ranges := findDelimiters(buf, d, format)
	if len(ranges) == 0 {
		*strptr = buf[len(buf):]
		return buf, true
	}
	r := ranges[0]
	head = buf[:r.start]
	*strptr = buf[r.end:]
	return head, true
}

// ArrayStrHandler is invoked by ArraySplit for each destructively split,
// independently addressable fragment.
type ArrayStrHandler func(fragment []byte, index int, format IniFormat, userData any) int

// ArraySplit splits iniString on d and hands the caller each fragment in
// turn as a mutable sub-slice of iniString (unlike ArrayForeach, which
// passes the whole buffer plus an offset and length). iniString itself is
// not rewritten.
func ArraySplit(iniString []byte, d byte, format IniFormat, f ArrayStrHandler, userData any) int {
	ranges := findDelimiters(iniString, d, format)
	frags := fragmentBounds(iniString, ranges)
	for idx, fr := range frags {
		if rc := f(iniString[fr.start:fr.end], idx, format, userData); rc != 0 {
			return rc
		}
	}
	return 0
}

func normalizeForMatch(s string, format IniFormat, isIniOperand bool) string {
	b := []byte(s)
	if isIniOperand {
		n := Unquote(b, format)
		b = b[:n]
	}
	if !format.NoSpacesInNames {
		b = collapseWhitespace(b)
	}
	if !format.CaseSensitive {
		return strings.ToLower(string(b))
	}
	return string(b)
}

// StringMatchSS compares two plain (non-ini-escaped) strings, folding
// case unless format.CaseSensitive and collapsing interior whitespace
// unless format.NoSpacesInNames.
func StringMatchSS(simpleStringA, simpleStringB string, format IniFormat) bool {
	return normalizeForMatch(simpleStringA, format, false) == normalizeForMatch(simpleStringB, format, false)
}

// StringMatchSI compares a plain string against a raw (possibly quoted or
// escaped) ini string, unquoting the latter lazily before comparison.
func StringMatchSI(simpleString, iniString string, format IniFormat) bool {
	return normalizeForMatch(simpleString, format, false) == normalizeForMatch(iniString, format, true)
}

// StringMatchII compares two raw ini strings, unquoting both lazily.
func StringMatchII(iniStringA, iniStringB string, format IniFormat) bool {
	return normalizeForMatch(iniStringA, format, true) == normalizeForMatch(iniStringB, format, true)
}

// ArrayMatch reports whether two ini arrays, split on d, contain the same
// number of fragments and each pair of fragments matches under
// StringMatchII. This is the array-level sibling of the ini_string_match_*
// family (confini.h's ini_array_match, supplemented per SPEC_FULL.md).
func ArrayMatch(iniStringA, iniStringB string, d byte, format IniFormat) bool {
	a, b := []byte(iniStringA), []byte(iniStringB)
	fragsA := fragmentBounds(a, findDelimiters(a, d, format))
	fragsB := fragmentBounds(b, findDelimiters(b, d, format))
	if len(fragsA) != len(fragsB) {
		return false
	}
	for i := range fragsA {
		fa := string(a[fragsA[i].start:fragsA[i].end])
		fb := string(b[fragsB[i].start:fragsB[i].end])
		if !StringMatchII(fa, fb, format) {
			return false
		}
	}
	return true
}
