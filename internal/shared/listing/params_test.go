package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaults(t *testing.T) {
	p := Parse(url.Values{}, []string{"name"})

	assert.Equal(t, "", p.Search)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, "", p.Sort)
	assert.Equal(t, "asc", p.Dir)
	assert.Equal(t, "", p.Trashed)
}

func TestParseNormalizesInvalidValues(t *testing.T) {
	q := url.Values{}
	q.Set("page", "-2")
	q.Set("per_page", "9999")
	q.Set("sort", "password")
	q.Set("dir", "sideways")
	q.Set("trashed", "maybe")

	p := Parse(q, []string{"name", "created_at"})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, "", p.Sort)
	assert.Equal(t, "asc", p.Dir)
	assert.Equal(t, "", p.Trashed)
}

func TestParseAcceptsValidValues(t *testing.T) {
	q := url.Values{}
	q.Set("search", "  act  ")
	q.Set("page", "3")
	q.Set("per_page", "25")
	q.Set("sort", "name")
	q.Set("dir", "DESC")
	q.Set("trashed", "only")

	p := Parse(q, []string{"name", "created_at"})

	assert.Equal(t, "act", p.Search)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.PerPage)
	assert.Equal(t, "name", p.Sort)
	assert.Equal(t, "desc", p.Dir)
	assert.Equal(t, TrashedOnly, p.Trashed)
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 25}
	assert.Equal(t, 50, p.Offset())
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "created_at DESC", Params{}.OrderBy())
	assert.Equal(t, "name ASC", Params{Sort: "name", Dir: "asc"}.OrderBy())
	assert.Equal(t, "name DESC", Params{Sort: "name", Dir: "desc"}.OrderBy())
}

func TestDeletedClause(t *testing.T) {
	assert.Equal(t, "deleted_at IS NULL", Params{}.DeletedClause(""))
	assert.Equal(t, "c.deleted_at IS NULL", Params{}.DeletedClause("c"))
	assert.Equal(t, "TRUE", Params{Trashed: TrashedWith}.DeletedClause("c"))
	assert.Equal(t, "c.deleted_at IS NOT NULL", Params{Trashed: TrashedOnly}.DeletedClause("c"))
}
