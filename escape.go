package stbjson

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// decodeString turns the raw, quote-delimited token text (as produced
// by lexString, still containing backslash escapes) into the decoded
// Go string it represents. Unicode escapes, including surrogate pairs,
// are combined the same way the source library's utf16_to_utf8 does:
// 0x10000 + ((hi&0x3FF)<<10 | (lo&0x3FF)).
func decodeString(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", errors.Wrap(ErrSyntax, "string literal missing quotes")
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", errors.Wrap(ErrSyntax, "dangling escape at end of string")
		}
		esc := body[i+1]
		switch esc {
		case '"':
			b.WriteByte('"')
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case '/':
			b.WriteByte('/')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'u':
			r, consumed, err := decodeUnicodeEscape(body, i)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += consumed
		default:
			return "", errors.Wrapf(ErrSyntax, "invalid escape sequence '\\%c'", esc)
		}
	}
	return b.String(), nil
}

// decodeUnicodeEscape decodes the \uXXXX escape starting at body[at],
// consuming a trailing low-surrogate \uXXXX escape too when body[at]
// begins a high surrogate. It returns the rune and the number of bytes
// of body consumed, including the leading "\\u".
func decodeUnicodeEscape(body string, at int) (rune, int, error) {
	first, err := parseHex4(body, at+2)
	if err != nil {
		return 0, 0, err
	}
	if first == 0 {
		return 0, 0, errors.Wrap(ErrSyntax, "\\u0000 is not a valid escape")
	}
	if first >= 0xD800 && first <= 0xDBFF {
		if at+6 < len(body) && body[at+6] == '\\' && at+7 < len(body) && body[at+7] == 'u' {
			second, err := parseHex4(body, at+8)
			if err == nil && second >= 0xDC00 && second <= 0xDFFF {
				r := utf16.DecodeRune(rune(first), rune(second))
				return r, 12, nil
			}
		}
		return 0, 0, errors.Wrap(ErrSyntax, "lone high surrogate in \\u escape")
	}
	if first >= 0xDC00 && first <= 0xDFFF {
		return 0, 0, errors.Wrap(ErrSyntax, "lone low surrogate in \\u escape")
	}
	return rune(first), 6, nil
}

func parseHex4(body string, at int) (uint16, error) {
	if at+4 > len(body) {
		return 0, errors.Wrap(ErrSyntax, "truncated \\u escape")
	}
	n, err := strconv.ParseUint(body[at:at+4], 16, 16)
	if err != nil {
		return 0, errors.Wrap(ErrSyntax, "invalid \\u escape")
	}
	return uint16(n), nil
}

// escapeTable mirrors the source library's print_string_ptr escape
// table: characters present here are rendered as their two-character
// escape, everything else below 0x20 as \u00XX, and everything else
// verbatim.
var escapeTable = map[byte]string{
	'"':  `\"`,
	'\\': `\\`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

// encodeString renders s as a quoted, escaped JSON string literal.
func encodeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := escapeTable[c]; ok {
			b.WriteString(esc)
			continue
		}
		if c < 0x20 {
			b.WriteString(`\u00`)
			const hex = "0123456789abcdef"
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xF])
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
