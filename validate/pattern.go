package validate

import (
	"errors"
	"regexp"
	"strings"
)

// ErrPatternFlag is returned for a delimited pattern carrying a modifier RE2
// cannot express.
var ErrPatternFlag = errors.New("unsupported pattern flag")

const patternDelimiters = "/#~!@%|"

// Compile compiles pattern. Delimited patterns ("/body/flags") are unwrapped
// and their i, m, s and u modifiers translated to RE2 inline flags; anything
// else is compiled as-is. Patterns keep RE2 semantics, so "$" without the m
// modifier anchors at the end of input only.
func Compile(pattern string) (*regexp.Regexp, error) {
	body, flags, ok := splitDelimited(pattern)
	if !ok {
		return regexp.Compile(pattern)
	}

	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		case 'u':
			// RE2 is always UTF-8 aware.
		default:
			return nil, ErrPatternFlag
		}
	}
	if inline.Len() > 0 {
		body = "(?" + inline.String() + ")" + body
	}
	return regexp.Compile(body)
}

func splitDelimited(pattern string) (body, flags string, ok bool) {
	if len(pattern) < 2 || !strings.ContainsRune(patternDelimiters, rune(pattern[0])) {
		return "", "", false
	}
	delim := pattern[0]
	end := strings.LastIndexByte(pattern, delim)
	if end <= 0 {
		return "", "", false
	}
	flags = pattern[end+1:]
	for _, f := range flags {
		if f < 'a' || f > 'z' {
			return "", "", false
		}
	}
	return pattern[1:end], flags, true
}
