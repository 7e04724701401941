package astparser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unescapeString decodes the escape sequences of a single quoted string
// literal. The lexer already validated the escape syntax, a malformed
// sequence here means the token literal was corrupted.
func unescapeString(raw string) (string, error) {
	backslash := strings.IndexByte(raw, '\\')
	if backslash == -1 {
		return raw, nil
	}

	var out strings.Builder
	out.Grow(len(raw))
	out.WriteString(raw[:backslash])

	for i := backslash; i < len(raw); i++ {
		b := raw[i]
		if b != '\\' {
			out.WriteByte(b)
			continue
		}

		i++
		if i == len(raw) {
			return "", fmt.Errorf("invalid escape sequence at end of string")
		}

		switch raw[i] {
		case '"':
			out.WriteByte('"')
		case '\\':
			out.WriteByte('\\')
		case '/':
			out.WriteByte('/')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'u':
			decoded, rest, err := decodeUnicodeEscape(raw[i+1:])
			if err != nil {
				return "", err
			}
			out.WriteRune(decoded)
			i = len(raw) - len(rest) - 1
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", raw[i])
		}
	}

	return out.String(), nil
}

// decodeUnicodeEscape decodes the part after \u: either {HEX} with any number
// of digits or exactly four hex digits, possibly followed by the low half of
// a surrogate pair.
func decodeUnicodeEscape(s string) (rune, string, error) {
	if strings.HasPrefix(s, "{") {
		closing := strings.IndexByte(s, '}')
		if closing == -1 {
			return 0, "", fmt.Errorf("invalid unicode escape")
		}
		codepoint, err := strconv.ParseUint(s[1:closing], 16, 32)
		if err != nil || !utf8.ValidRune(rune(codepoint)) {
			return 0, "", fmt.Errorf("invalid unicode codepoint \\u{%s}", s[1:closing])
		}
		return rune(codepoint), s[closing+1:], nil
	}

	if len(s) < 4 {
		return 0, "", fmt.Errorf("invalid unicode escape")
	}
	codepoint, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, "", fmt.Errorf("invalid unicode escape \\u%s", s[:4])
	}
	s = s[4:]

	r := rune(codepoint)
	if utf16.IsSurrogate(r) && strings.HasPrefix(s, `\u`) && len(s) >= 6 {
		low, err := strconv.ParseUint(s[2:6], 16, 32)
		if err == nil {
			if combined := utf16.DecodeRune(r, rune(low)); combined != utf8.RuneError {
				return combined, s[6:], nil
			}
		}
	}
	return r, s, nil
}

// trimBlockString applies the block string value algorithm: common
// indentation of all lines after the first is removed, blank leading and
// trailing lines are dropped and the escaped delimiter is unescaped.
func trimBlockString(raw string) string {
	raw = strings.ReplaceAll(raw, `\"""`, `"""`)

	lines := splitLines(raw)

	commonIndent := -1
	for i := 1; i < len(lines); i++ {
		indent := leadingWhitespace(lines[i])
		if indent == len(lines[i]) {
			continue
		}
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if commonIndent < len(lines[i]) {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}

	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}
	end := len(lines)
	for end > start && isBlank(lines[end-1]) {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func leadingWhitespace(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}

func isBlank(line string) bool {
	return leadingWhitespace(line) == len(line)
}
