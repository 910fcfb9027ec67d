package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/fieldops/opsconsole/internal/datatable"
)

// tableFlags are the options shared by every list command
type tableFlags struct {
	query   string
	sort    string
	desc    bool
	page    int
	perPage int
	cards   bool
	all     bool
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "only show rows containing this text")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort by this column key")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&f.page, "page", 1, "page to show")
	cmd.Flags().IntVar(&f.perPage, "per-page", datatable.DefaultItemsPerPage, "rows per page, 0 for a single page")
	cmd.Flags().BoolVar(&f.cards, "cards", false, "print one card per record instead of a table")
	cmd.Flags().BoolVar(&f.all, "all", false, "with --cards, print every field")
}

func (f *tableFlags) state() datatable.State {
	s := datatable.State{Query: f.query, Page: f.page, Sort: datatable.SortState{Key: f.sort, Direction: datatable.Ascending}}
	if f.desc {
		s.Sort.Direction = datatable.Descending
	}
	return s
}

// writeRecords runs the records through t and prints the current page
func (f *tableFlags) writeRecords(w io.Writer, t *datatable.Table, records []datatable.Record) error {
	if f.sort != "" && !hasSortableColumn(t.Columns, f.sort) {
		return fmt.Errorf("cannot sort by %q, use one of: %s", f.sort, sortableKeys(t.Columns))
	}
	t.Options.ItemsPerPage = f.perPage
	if f.perPage < 1 {
		t.Options.DisablePagination = true
	}
	v := t.View(records, f.state())
	if f.cards {
		return datatable.WriteCards(w, v, f.all)
	}
	return datatable.WriteTable(w, v)
}

func hasSortableColumn(columns []datatable.Column, key string) bool {
	for _, c := range columns {
		if c.Key == key {
			return c.Sortable()
		}
	}
	return false
}

func sortableKeys(columns []datatable.Column) string {
	var keys []string
	for _, c := range columns {
		if c.Sortable() {
			keys = append(keys, c.Key)
		}
	}
	return strings.Join(keys, ", ")
}

// filterRecords keeps the records whose field equals value; an empty value keeps everything
func filterRecords(records []datatable.Record, field, value string) []datatable.Record {
	if value == "" {
		return records
	}
	kept := make([]datatable.Record, 0, len(records))
	for _, rec := range records {
		if datatable.Stringify(rec[field]) == value {
			kept = append(kept, rec)
		}
	}
	return kept
}

// dispatch runs a row action on the record with the given id, the same way the web console does
func dispatch(ctx context.Context, t *datatable.Table, records []datatable.Record, id int, action, noun string) error {
	err := t.Dispatch(ctx, records, strconv.Itoa(id), action)
	switch {
	case errors.Is(err, datatable.ErrRowNotFound):
		return fmt.Errorf("%s %d not found", noun, id)
	case errors.Is(err, datatable.ErrActionDisabled):
		return fmt.Errorf("cannot %s %s %d in its current state", action, noun, id)
	}
	return err
}

// printRecord prints v as indented JSON, highlighted when color is set
func printRecord(w io.Writer, v any, color bool) error {
	src, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if !color {
		_, err = fmt.Fprintf(w, "%s\n", src)
		return err
	}
	if err := quick.Highlight(w, string(src)+"\n", "json", "terminal256", "github"); err != nil {
		return fmt.Errorf("could not highlight record: %w", err)
	}
	return nil
}
