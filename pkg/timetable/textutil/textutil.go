// Package textutil holds the string normalization shared by the parser and the fetcher.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun = regexp.MustCompile(`[\s\x{00A0}]+`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
)

// CollapseSpaces trims s and replaces every whitespace run (including NBSP and
// line breaks) with a single space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// NormalizeLabel lowercases and collapses s for comparison against label words.
func NormalizeLabel(s string) string {
	return strings.ToLower(CollapseSpaces(s))
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Sanitize normalizes untrusted text: invalid UTF-8 dropped, NFC composed, HTML/PHP
// tags stripped, control and format characters removed, surrounding space trimmed.
func Sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = norm.NFC.String(s)
	s = tagRe.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
