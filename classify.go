package confini

// Pure, format-parameterized single-byte predicates. The parser's state
// machine (parser.go) consults these during its single scan (scanAll),
// which both counts and classifies every node, so the statistics and the
// dispatches are derived from the same answers.

// isForgettableWhitespace reports whether b is whitespace the parser may
// collapse or discard outright: horizontal tab, space, vertical tab, form
// feed -- plus, when multiline continuation is active, a CR or LF that is
// immediately preceded by a continuation backslash (handled by the state
// machine itself, not here, since it requires one byte of lookbehind).
func isForgettableWhitespace(b byte) bool {
	switch b {
	case '\t', ' ', '\v', '\f':
		return true
	}
	return false
}

// isNewline reports whether b is a line-terminator byte, LF or CR (the
// two-byte terminators CRLF/LFCR are handled by the state machine).
func isNewline(b byte) bool {
	return b == '\n' || b == '\r'
}

// isQuote reports whether b opens/closes a quoted run under format.
func isQuote(b byte, format IniFormat) bool {
	switch b {
	case '\'':
		return !format.NoSingleQuotes
	case '"':
		return !format.NoDoubleQuotes
	}
	return false
}

// isMetachar reports whether b is a byte the scanner must never treat as
// plain text: backslash, an active quote character, newline, or an active
// comment marker byte. scanNodeBody (parser.go) uses this as its fast
// path: any byte that fails this check needs no further inspection.
func isMetachar(b byte, format IniFormat) bool {
	if b == '\\' || isNewline(b) {
		return true
	}
	if isQuote(b, format) {
		return true
	}
	if _, ok := markerKind(b, format); ok {
		return true
	}
	return false
}

// markerKind returns the IniCommentMarker configured for byte b (';' or
// '#'), and ok=false if b is not a marker byte at all under this format.
func markerKind(b byte, format IniFormat) (kind IniCommentMarker, ok bool) {
	switch b {
	case ';':
		return format.SemicolonMarker, format.SemicolonMarker != INIIsNotAMarker
	case '#':
		return format.HashMarker, format.HashMarker != INIIsNotAMarker
	}
	return 0, false
}

// isCommentOpener reports whether the byte at buf[pos] opens a comment
// (or a disabled entry, which is classified further by isDisabledOpener):
// the byte must be an active marker, and the preceding byte -- if any --
// must be whitespace or this must be the start of the buffer.
func isCommentOpener(buf []byte, pos int, format IniFormat) bool {
	_, ok := markerKind(buf[pos], format)
	if !ok {
		return false
	}
	if pos == 0 {
		return true
	}
	prev := buf[pos-1]
	return isForgettableWhitespace(prev) || isNewline(prev)
}

// isDisabledOpener reports whether the marker at buf[pos] introduces a
// disabled entry rather than a plain comment: the marker's kind must be
// INIDisabledOrComment, and -- when format.DisabledAfterSpace holds -- the
// very next byte must not be whitespace (a marker followed only by
// whitespace is always a plain, empty comment; see spec.md §4.4 tie-breaks).
func isDisabledOpener(buf []byte, pos int, format IniFormat) bool {
	kind, ok := markerKind(buf[pos], format)
	if !ok || kind != INIDisabledOrComment {
		return false
	}
	if !format.DisabledAfterSpace {
		return true
	}
	next := pos + 1
	if next >= len(buf) {
		return false
	}
	return !isForgettableWhitespace(buf[next])
}

// isDelimiter reports whether b is an occurrence of delimiter d: an exact
// byte match, or -- when d is INIAnySpace -- any forgettable whitespace
// byte. d is format.DelimiterSymbol for a key/value split and an
// explicit, format-independent byte for the array primitives in
// strprim.go.
func isDelimiter(b, d byte) bool {
	if d == INIAnySpace {
		return isForgettableWhitespace(b)
	}
	return b == d
}
