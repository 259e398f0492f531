package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Dugsi Al-Furqaan", 0, "dugsi-al-furqaan"},
		{"  Masjid   An-Nur  ", 0, "masjid-an-nur"},
		{"École Coranique", 0, "ecole-coranique"},
		{"***", 0, "item"},
		{"", 0, "item"},
		{"weekend quran school", 10, "weekend-qu"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in, tc.max), "input %q", tc.in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "hooyo@example.com", NormalizeEmail("  Hooyo@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("not-an-email"))
	assert.Equal(t, "", NormalizeEmail(""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+16125551234", NormalizePhone("+1 (612) 555-1234"))
	assert.Equal(t, "6125551234", NormalizePhone("612.555.1234"))
	assert.Equal(t, "", NormalizePhone("12345"), "too short")
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestBuildPagination(t *testing.T) {
	p := Paging{Page: 2, PerPage: 20, Offset: 20, Limit: 20}
	out := BuildPagination(p, 45)
	assert.Equal(t, 3, out.TotalPages)
	assert.True(t, out.HasNext)
	assert.True(t, out.HasPrev)

	last := BuildPagination(Paging{Page: 3, PerPage: 20}, 45)
	assert.False(t, last.HasNext)

	empty := BuildPagination(Paging{Page: 1, PerPage: 20}, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestSortClause(t *testing.T) {
	allowed := map[string]string{
		"name":       "batch_name",
		"created_at": "batch_created_at",
	}
	assert.Equal(t, "batch_name ASC", SortClause(allowed, "name", "asc", "created_at"))
	assert.Equal(t, "batch_name DESC", SortClause(allowed, "NAME", "", "created_at"))
	assert.Equal(t, "batch_created_at DESC", SortClause(allowed, "evil; DROP", "", "created_at"))
}
