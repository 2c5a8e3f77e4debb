package helpers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a [a-z0-9-] slug: diacritics are stripped, runs of separators
// collapse to one hyphen and the result is cut to maxLen characters. Empty input yields "program".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	if s == "" {
		s = "program"
	}
	return s
}

// UniqueSlug returns base, or base-2, base-3 ... until taken reports false.
// The suffixed slug never exceeds maxLen characters.
func UniqueSlug(base string, maxLen int, taken func(string) (bool, error)) (string, error) {
	slug := base
	for i := 2; i < 100; i++ {
		exists, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		slug = trimForSuffix(base, suffix, maxLen) + suffix
	}
	return "", fmt.Errorf("could not find a free slug for %q", base)
}

func trimForSuffix(base, suffix string, maxLen int) string {
	keep := maxLen - len(suffix)
	if keep < 1 {
		keep = 1
	}
	rs := []rune(base)
	if len(rs) > keep {
		rs = rs[:keep]
	}
	return strings.TrimRight(string(rs), "-")
}
