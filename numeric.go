package confini

import "strconv"

// Thin leaf wrappers over strconv, stopping at the first non-numeric
// byte and falling back to the caller's default otherwise -- spec.md §4.7.
// These mirror the handful of scalar conversions the teacher's decode.go
// performs when resolving a mapping value into a Go scalar, trimmed to
// the narrower strtol/strtod-style contract spec.md §1 scopes this module to.

// GetBool recognizes, case-insensitively, yes/no, true/false, 1/0, on/off,
// and enabled/disabled; anything else returns fallback.
func GetBool(s string, fallback bool) bool {
	switch normalizeForMatch(s, DefaultFormat, false) {
	case "yes", "true", "1", "on", "enabled":
		return true
	case "no", "false", "0", "off", "disabled":
		return false
	}
	return fallback
}

func leadingNumeric(s string, allowFloat bool) string {
	end := 0
	for end < len(s) {
		b := s[end]
		switch {
		case b >= '0' && b <= '9':
			end++
		case (b == '+' || b == '-') && end == 0:
			end++
		case allowFloat && (b == '.' || b == 'e' || b == 'E') :
			end++
		case allowFloat && (b == '+' || b == '-') && end > 0 && (s[end-1] == 'e' || s[end-1] == 'E'):
			end++
		default:
			return s[:end]
		}
	}
	return s
}

// GetInt parses the leading base-10 run of s as an int, returning fallback
// if none is present.
func GetInt(s string, fallback int) int {
	n, err := strconv.ParseInt(leadingNumeric(s, false), 10, strconv.IntSize)
	if err != nil {
		return fallback
	}
	return int(n)
}

// GetLInt parses the leading base-10 run of s as an int32 ("long"),
// returning fallback if none is present.
func GetLInt(s string, fallback int32) int32 {
	n, err := strconv.ParseInt(leadingNumeric(s, false), 10, 32)
	if err != nil {
		return fallback
	}
	return int32(n)
}

// GetLLInt parses the leading base-10 run of s as an int64 ("long long"),
// returning fallback if none is present.
func GetLLInt(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(leadingNumeric(s, false), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// GetFloat parses the leading floating-point run of s as a float64,
// returning fallback if none is present.
func GetFloat(s string, fallback float64) float64 {
	n, err := strconv.ParseFloat(leadingNumeric(s, true), 64)
	if err != nil {
		return fallback
	}
	return n
}
