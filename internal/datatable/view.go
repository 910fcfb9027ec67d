package datatable

import (
	"net/url"
	"reflect"
	"strconv"
)

// Header is one rendered column header
type Header struct {
	Key       string
	Title     string
	Sortable  bool
	Sorted    bool
	Direction SortDirection // meaningful when Sorted
	ToggleURL string        // URL that applies ToggleSort(Key), empty when not sortable
}

// ActionButton is a row action resolved against one record
type ActionButton struct {
	Name     string
	Label    string
	Icon     string
	Style    string
	Disabled bool
	URL      string
}

// Row is one visible record with its rendered cells and actions
type Row struct {
	Key     string
	Record  Record
	Cells   []Cell
	Actions []ActionButton
	URL     string // row click target, empty when the table has no OnRowClick
}

// View is the projection of records through a table's columns, options and state.
// It is what every presentation adapter renders; adapters never filter, sort or paginate themselves.
type View struct {
	ID                string
	BasePath          string
	Headers           []Header
	Rows              []Row
	State             State // normalised: unknown sort keys dropped, page clamped
	InputCount        int   // records handed to the table
	MatchCount        int   // records left after search
	Pagination        Pagination
	Searchable        bool
	SearchPlaceholder string
	HasActions        bool
	HasRowClick       bool
	Loading           bool
	EmptyState        *EmptyState // set only when the input is empty and the table has an empty state
}

// ShowEmptyState reports whether only the empty state should be rendered
func (v View) ShowEmptyState() bool {
	return !v.Loading && v.EmptyState != nil
}

const noResultsText = "No items match your search criteria"

// NoResults reports whether records were supplied but none match the search
func (v View) NoResults() bool {
	return !v.Loading && v.InputCount > 0 && v.MatchCount == 0
}

// URL returns the table fragment URL for state s
func (v View) URL(s State) string {
	return withQuery(v.BasePath, s.Values())
}

// ItemCountLabel is the "N items" text shown next to the search box
func (v View) ItemCountLabel() string {
	if v.MatchCount == 1 {
		return "1 item"
	}
	return strconv.Itoa(v.MatchCount) + " items"
}

// View runs the filter → sort → paginate pipeline over records for the given state.
// records is never modified and the same inputs always produce the same View.
func (t *Table) View(records []Record, state State) View {
	opts := t.Options
	state = t.normalise(state)

	v := View{
		ID:                opts.ID,
		BasePath:          opts.BasePath,
		InputCount:        len(records),
		Searchable:        !opts.DisableSearch,
		SearchPlaceholder: opts.SearchPlaceholder,
		HasActions:        len(opts.RowActions) > 0,
		HasRowClick:       opts.OnRowClick != nil,
		Loading:           opts.Loading,
	}

	if opts.Loading {
		v.State = state
		return v
	}

	if len(records) == 0 && opts.EmptyState != nil {
		v.State = state
		v.EmptyState = opts.EmptyState
		return v
	}

	query := state.Query
	if opts.DisableSearch {
		query = ""
	}
	filtered := Filter(records, t.Columns, query)
	sorted := Sort(filtered, state.Sort, opts.Locale)
	v.MatchCount = len(sorted)

	visible := sorted
	if opts.DisablePagination {
		v.Pagination = Pagination{CurrentPage: 1, TotalPages: 1, PerPage: len(sorted), Total: len(sorted), PrevPage: 1, NextPage: 1, Pages: []int{1}}
		state.Page = 1
	} else {
		visible, v.Pagination = Paginate(sorted, state.Page, opts.ItemsPerPage)
		state.Page = v.Pagination.CurrentPage
	}
	v.State = state

	v.Headers = make([]Header, len(t.Columns))
	for i, c := range t.Columns {
		h := Header{Key: c.Key, Title: c.Title, Sortable: c.Sortable()}
		if h.Sortable {
			h.Sorted = state.Sort.Key == c.Key
			h.Direction = state.Sort.Direction
			h.ToggleURL = v.URL(state.ToggleSort(c.Key))
		}
		v.Headers[i] = h
	}

	positions := make(map[uintptr]int, len(records))
	for i, rec := range records {
		if _, seen := positions[identity(rec)]; !seen {
			positions[identity(rec)] = i
		}
	}

	v.Rows = make([]Row, len(visible))
	for i, rec := range visible {
		v.Rows[i] = t.row(rec, t.keyAt(rec, positions[identity(rec)]))
	}
	return v
}

func (t *Table) row(rec Record, key string) Row {
	r := Row{Key: key, Record: rec, Cells: make([]Cell, len(t.Columns))}
	for i, c := range t.Columns {
		r.Cells[i] = c.Cell(rec)
	}
	if t.Options.OnRowClick != nil {
		r.URL = t.Options.BasePath + "/rows/" + url.PathEscape(key)
	}
	for _, a := range t.Options.RowActions {
		r.Actions = append(r.Actions, ActionButton{
			Name:     a.Name,
			Label:    a.Label,
			Icon:     a.Icon,
			Style:    a.Style,
			Disabled: a.disabledFor(rec),
			URL:      t.Options.BasePath + "/actions/" + url.PathEscape(a.Name) + "/" + url.PathEscape(key),
		})
	}
	return r
}

// keyAt returns the identity of rec: its KeyField value, or "#<index in the input>" when the field is absent.
func (t *Table) keyAt(rec Record, index int) string {
	if v, ok := present(rec, t.Options.KeyField); ok {
		if s := Stringify(v); s != "" {
			return s
		}
	}
	return "#" + strconv.Itoa(index)
}

// identity distinguishes record maps; the pipeline reorders the caller's maps but never copies them.
func identity(rec Record) uintptr {
	return reflect.ValueOf(rec).Pointer()
}

// normalise drops sort keys that do not name a sortable column and keeps the page positive
func (t *Table) normalise(s State) State {
	if s.Sort.Key != "" {
		if c, ok := t.column(s.Sort.Key); !ok || !c.Sortable() {
			s.Sort = SortState{Direction: Ascending}
		}
	}
	if s.Sort.Direction != Descending {
		s.Sort.Direction = Ascending
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
