package datatable

import (
	"net/url"
	"strconv"
	"strings"
)

// SortDirection is either Ascending or Descending
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortState records the active sort column. An empty Key means "no sort": input order is kept.
type SortState struct {
	Key       string
	Direction SortDirection
}

// State is the user-controlled state of a table: search query, sort and current page (1-indexed).
// The zero value is the state at mount: no query, no sort, page 1.
type State struct {
	Query string
	Sort  SortState
	Page  int
}

// URL query parameter names used to carry State between requests
const (
	ParamQuery     = "q"
	ParamSort      = "sort"
	ParamDirection = "dir"
	ParamPage      = "page"
)

// ParseState reads table state from URL query parameters. Malformed values fall back to the defaults.
func ParseState(values url.Values) State {
	s := State{
		Query: values.Get(ParamQuery),
		Page:  1,
		Sort: SortState{
			Key:       strings.TrimSpace(values.Get(ParamSort)),
			Direction: Ascending,
		},
	}
	if values.Get(ParamDirection) == string(Descending) {
		s.Sort.Direction = Descending
	}
	if p, err := strconv.Atoi(values.Get(ParamPage)); err == nil && p > 0 {
		s.Page = p
	}
	return s
}

// Values encodes the state as URL query parameters, omitting defaults
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set(ParamQuery, s.Query)
	}
	if s.Sort.Key != "" {
		v.Set(ParamSort, s.Sort.Key)
		v.Set(ParamDirection, string(s.direction()))
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// WithQuery returns the state after the search text changes; pagination resets to page 1.
func (s State) WithQuery(q string) State {
	s.Query = q
	s.Page = 1
	return s
}

// ToggleSort returns the state after the header of column key is activated.
//
// Activating the sorted column flips its direction; activating another column sorts it ascending.
// Pagination resets to page 1.
func (s State) ToggleSort(key string) State {
	if s.Sort.Key == key && s.direction() == Ascending {
		s.Sort = SortState{Key: key, Direction: Descending}
	} else {
		s.Sort = SortState{Key: key, Direction: Ascending}
	}
	s.Page = 1
	return s
}

// WithPage returns the state showing page p
func (s State) WithPage(p int) State {
	s.Page = p
	return s
}

func (s State) direction() SortDirection {
	if s.Sort.Direction == Descending {
		return Descending
	}
	return Ascending
}
