// Package filterstate models a listing page's filter controls as a pure
// state machine: a reducer over discrete actions plus a schema that
// normalizes arbitrary input and round-trips the state through URL
// query strings.
package filterstate

import (
	"net/url"
	"sort"
	"strconv"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// State is the full filter state for one listing. Extra holds
// entity-specific filters (cast member type, genre categories) keyed by
// query-parameter name.
type State struct {
	Search  string
	Page    int
	PerPage int
	Sort    string
	Dir     Direction
	Extra   map[string]string
}

// Clone returns a deep copy so reducer callers can keep old states.
func (s State) Clone() State {
	out := s
	if s.Extra != nil {
		out.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Equal reports structural equality including the extra-filter map.
func (s State) Equal(o State) bool {
	if s.Search != o.Search || s.Page != o.Page || s.PerPage != o.PerPage ||
		s.Sort != o.Sort || s.Dir != o.Dir || len(s.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range s.Extra {
		if o.Extra[k] != v {
			return false
		}
	}
	return true
}

type ActionType int

const (
	SetSearch ActionType = iota
	SetPage
	SetPerPage
	SetOrder
	UpdateExtraFilter
	Reset
)

// Action drives one reducer step. Which fields are read depends on
// Type; unused fields are ignored.
type Action struct {
	Type    ActionType
	Search  string
	Page    int
	PerPage int
	Sort    string
	Dir     Direction
	Extra   map[string]string
}

// Schema defines a listing's valid filter space: sortable columns,
// allowed page sizes, defaults and known extra-filter keys. The zero
// value is unusable; construct with the fields filled in.
type Schema struct {
	SortableColumns []string
	PerPageOptions  []int
	DefaultPerPage  int
	DefaultSort     string
	DefaultDir      Direction
	ExtraKeys       []string
}

// Default returns the schema's canonical initial state.
func (sc Schema) Default() State {
	return State{
		Page:    1,
		PerPage: sc.DefaultPerPage,
		Sort:    sc.DefaultSort,
		Dir:     sc.DefaultDir,
	}
}

// Normalize coerces a state into the schema's valid space. Invalid
// values fall back to defaults silently, never to an error.
func (sc Schema) Normalize(s State) State {
	out := s.Clone()

	if out.Page < 1 {
		out.Page = 1
	}

	validPerPage := false
	for _, opt := range sc.PerPageOptions {
		if out.PerPage == opt {
			validPerPage = true
			break
		}
	}
	if !validPerPage {
		out.PerPage = sc.DefaultPerPage
	}

	if out.Sort != "" {
		valid := false
		for _, col := range sc.SortableColumns {
			if out.Sort == col {
				valid = true
				break
			}
		}
		if !valid {
			out.Sort = sc.DefaultSort
			out.Dir = sc.DefaultDir
		}
	}
	if out.Dir != Asc && out.Dir != Desc {
		out.Dir = sc.DefaultDir
	}

	if out.Extra != nil {
		for k := range out.Extra {
			known := false
			for _, key := range sc.ExtraKeys {
				if k == key {
					known = true
					break
				}
			}
			if !known || out.Extra[k] == "" {
				delete(out.Extra, k)
			}
		}
		if len(out.Extra) == 0 {
			out.Extra = nil
		}
	}

	return out
}

// Reduce applies one action to a state, returning the next state. The
// reducer is pure: it never touches timers, network or the URL.
func (sc Schema) Reduce(s State, a Action) State {
	next := s.Clone()

	switch a.Type {
	case SetSearch:
		next.Search = a.Search
		next.Page = 1
	case SetPage:
		next.Page = a.Page
	case SetPerPage:
		next.PerPage = a.PerPage
		next.Page = 1
	case SetOrder:
		next.Sort = a.Sort
		next.Dir = a.Dir
	case UpdateExtraFilter:
		if next.Extra == nil {
			next.Extra = map[string]string{}
		}
		for k, v := range a.Extra {
			if v == "" {
				delete(next.Extra, k)
			} else {
				next.Extra[k] = v
			}
		}
		next.Page = 1
	case Reset:
		return sc.Default()
	}

	return sc.Normalize(next)
}

// ToQuery serializes only the fields that differ from the schema's
// defaults, keeping URLs minimal and round-trip stable.
func (sc Schema) ToQuery(s State) url.Values {
	def := sc.Default()
	q := url.Values{}

	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.Page != def.Page {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.PerPage != def.PerPage {
		q.Set("per_page", strconv.Itoa(s.PerPage))
	}
	if s.Sort != def.Sort {
		q.Set("sort", s.Sort)
	}
	if s.Dir != def.Dir {
		q.Set("dir", string(s.Dir))
	}

	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, s.Extra[k])
	}

	return q
}

// FromQuery parses a query string into a normalized state. Unknown and
// malformed parameters are dropped silently.
func (sc Schema) FromQuery(q url.Values) State {
	s := sc.Default()
	s.Search = q.Get("search")

	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			s.Page = page
		}
	}
	if raw := q.Get("per_page"); raw != "" {
		if perPage, err := strconv.Atoi(raw); err == nil {
			s.PerPage = perPage
		}
	}
	if raw := q.Get("sort"); raw != "" {
		s.Sort = raw
	}
	if raw := q.Get("dir"); raw != "" {
		s.Dir = Direction(raw)
	}

	for _, key := range sc.ExtraKeys {
		if v := q.Get(key); v != "" {
			if s.Extra == nil {
				s.Extra = map[string]string{}
			}
			s.Extra[key] = v
		}
	}

	return sc.Normalize(s)
}
