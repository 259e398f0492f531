package helper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a [a-z0-9-] slug: strips diacritics,
// compresses "-", trims the ends, enforces maxLen (default 100 when <=0),
// falls back to "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // nonspacing mark
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		s = "item"
	}
	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = strings.Trim(string(rs[:maxLen]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// EnsureUniqueSlugCI guarantees a case-insensitive unique slug in one
// table/column. scopeFn may be nil; when set it adds WHERE conditions
// (e.g. tenant scoping). Tries "-2", "-3", ... suffixes, then a short
// random suffix as last resort.
func EnsureUniqueSlugCI(
	ctx context.Context,
	db *gorm.DB,
	table string,
	column string,
	baseSlug string,
	scopeFn func(*gorm.DB) *gorm.DB,
	maxLen int,
) (string, error) {
	if maxLen <= 0 {
		maxLen = 100
	}
	slug := baseSlug

	for i := 0; i < 25; i++ {
		q := db.WithContext(ctx).Table(table)
		if scopeFn != nil {
			q = scopeFn(q)
		}

		var count int64
		if err := q.Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(slug)).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = withSuffix(baseSlug, fmt.Sprintf("-%d", i+2), maxLen)
	}

	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return withSuffix(baseSlug, "-"+hex.EncodeToString(b), maxLen), nil
}

func withSuffix(base, suffix string, maxLen int) string {
	room := maxLen - utf8.RuneCountInString(suffix)
	if room < 1 {
		room = 1
	}
	if utf8.RuneCountInString(base) > room {
		rs := []rune(base)
		base = strings.Trim(string(rs[:room]), "-")
	}
	return base + suffix
}
