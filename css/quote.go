package css

import (
	"strconv"
	"strings"
)

// Quote renders text as a CSS string literal. The scan prefers the first
// quote character it meets: a string containing only double quotes is
// wrapped in single quotes and vice versa. When both kinds occur the scan
// restarts once in forced double-quote mode, escaping every double quote.
// forceDouble skips straight to that mode.
func Quote(text string, forceDouble bool) string {
	if quoted, ok := tryQuote(text, forceDouble); ok {
		return quoted
	}
	quoted, _ := tryQuote(text, true)
	return quoted
}

// tryQuote performs one quoting pass. It fails (ok=false) only when both
// quote characters occur and forceDouble is unset; the forced pass has no
// failure condition, so Quote converges after at most one restart.
func tryQuote(text string, forceDouble bool) (string, bool) {
	var buf strings.Builder
	buf.Grow(len(text) + 2)
	sawSingle, sawDouble := false, false

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\'':
			switch {
			case forceDouble:
				buf.WriteByte('\'')
			case sawDouble:
				return "", false
			default:
				sawSingle = true
				buf.WriteByte('\'')
			}
		case '"':
			switch {
			case forceDouble:
				buf.WriteString(`\"`)
			case sawSingle:
				return "", false
			default:
				sawDouble = true
				buf.WriteByte('"')
			}
		case '\r', '\n', '\f':
			buf.WriteByte('\\')
			buf.WriteString(strconv.FormatUint(uint64(c), 16))
			// A following hex digit, space or tab would read as part of the
			// escape; a single space ends it unambiguously.
			if i+1 < len(text) && extendsEscape(text[i+1]) {
				buf.WriteByte(' ')
			}
		case '\\':
			buf.WriteString(`\\`)
		default:
			buf.WriteByte(c)
		}
	}

	quote := byte('"')
	if !forceDouble && sawDouble {
		quote = '\''
	}
	return string(quote) + buf.String() + string(quote), true
}

func extendsEscape(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	case c == ' ' || c == '\t':
		return true
	default:
		return false
	}
}
