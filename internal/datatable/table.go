package datatable

import (
	"context"

	"golang.org/x/text/language"
)

const (
	DefaultKeyField          = "id"
	DefaultItemsPerPage      = 10
	DefaultSearchPlaceholder = "Search..."
)

// RowAction is a per-row operation rendered as a button. Actions are stateless: they are handed the
// record when invoked and never own data. Name identifies the action in URLs and must be unique per table.
type RowAction struct {
	Name     string
	Label    string
	Icon     string // short glyph or icon name shown before the label
	Style    string // CSS class; "" uses the default action style
	Disabled func(rec Record) bool
	OnClick  func(ctx context.Context, rec Record) error
}

func (a RowAction) disabledFor(rec Record) bool {
	return a.Disabled != nil && a.Disabled(rec)
}

// EmptyState is shown instead of the table when there are no input records at all
// (as opposed to no records matching the search).
type EmptyState struct {
	Title   string
	Message string
	// optional call to action
	ActionLabel string
	ActionURL   string
}

// Options configure a Table. The zero value gives the defaults: key field "id", search on,
// pagination on with 10 items per page.
type Options struct {
	ID                string // DOM id, also used to target htmx swaps
	BasePath          string // URL serving the table fragment; row and action routes hang off it
	KeyField          string
	DisableSearch     bool
	SearchPlaceholder string
	DisablePagination bool
	ItemsPerPage      int
	OnRowClick        func(ctx context.Context, rec Record) error
	RowActions        []RowAction
	EmptyState        *EmptyState
	Loading           bool
	Locale            language.Tag // collation order for string sorting, defaults to English
}

// Table pairs column descriptors with options. Build one with New.
type Table struct {
	Columns []Column
	Options Options
}

// New returns a Table with defaults applied to opts
func New(columns []Column, opts Options) *Table {
	if opts.KeyField == "" {
		opts.KeyField = DefaultKeyField
	}
	if opts.ItemsPerPage < 1 {
		opts.ItemsPerPage = DefaultItemsPerPage
	}
	if opts.SearchPlaceholder == "" {
		opts.SearchPlaceholder = DefaultSearchPlaceholder
	}
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	if opts.ID == "" {
		opts.ID = "data-table"
	}
	return &Table{Columns: columns, Options: opts}
}

// column returns the column with the given key
func (t *Table) column(key string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// action returns the named row action
func (t *Table) action(name string) (RowAction, bool) {
	for _, a := range t.Options.RowActions {
		if a.Name == name {
			return a, true
		}
	}
	return RowAction{}, false
}
