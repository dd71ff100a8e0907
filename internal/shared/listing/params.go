package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// PerPageOptions is the allow-list of page sizes.
var PerPageOptions = []int{15, 25, 50}

const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

const (
	TrashedWith = "with"
	TrashedOnly = "only"
)

// Params is a normalized listing request: free-text search, pagination,
// sorting and soft-delete visibility. Invalid inputs fall back to
// defaults instead of erroring.
type Params struct {
	Search  string
	Page    int
	PerPage int
	Sort    string // empty means default ordering (created_at DESC)
	Dir     string // "asc" or "desc"
	Trashed string // "", "with" or "only"
}

// Parse normalizes raw query values against a per-entity sortable
// column allow-list. Unknown sort columns and out-of-range page sizes
// are silently dropped to their defaults.
func Parse(q url.Values, sortable []string) Params {
	p := Params{
		Search:  strings.TrimSpace(q.Get("search")),
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		Dir:     "asc",
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}

	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		for _, opt := range PerPageOptions {
			if perPage == opt {
				p.PerPage = perPage
				break
			}
		}
	}

	sort := q.Get("sort")
	for _, col := range sortable {
		if sort == col {
			p.Sort = sort
			break
		}
	}

	dir := strings.ToLower(q.Get("dir"))
	if dir == "desc" {
		p.Dir = "desc"
	}

	switch q.Get("trashed") {
	case TrashedWith:
		p.Trashed = TrashedWith
	case TrashedOnly:
		p.Trashed = TrashedOnly
	}

	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// OrderBy builds the ORDER BY clause. The sort column has already been
// checked against the allow-list, so interpolation is safe here.
func (p Params) OrderBy() string {
	if p.Sort == "" {
		return "created_at DESC"
	}
	dir := "ASC"
	if p.Dir == "desc" {
		dir = "DESC"
	}
	return p.Sort + " " + dir
}

// DeletedClause returns the soft-delete predicate for a table alias.
func (p Params) DeletedClause(alias string) string {
	col := "deleted_at"
	if alias != "" {
		col = alias + ".deleted_at"
	}
	switch p.Trashed {
	case TrashedWith:
		return "TRUE"
	case TrashedOnly:
		return col + " IS NOT NULL"
	default:
		return col + " IS NULL"
	}
}
