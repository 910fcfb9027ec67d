package datatable

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteTable is the terminal form of the full table adapter: aligned columns, one line per row,
// followed by a pagination summary.
func WriteTable(w io.Writer, v View) error {
	if handled, err := writeTextPreamble(w, v); handled || err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	titles := make([]string, 0, len(v.Headers)+1)
	titles = append(titles, "KEY")
	for _, hd := range v.Headers {
		title := strings.ToUpper(hd.Title)
		if hd.Sorted {
			title += " " + sortIndicator(hd)
		}
		titles = append(titles, title)
	}
	if v.HasActions {
		titles = append(titles, "ACTIONS")
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))

	for _, row := range v.Rows {
		fields := make([]string, 0, len(row.Cells)+2)
		fields = append(fields, row.Key)
		for _, c := range row.Cells {
			fields = append(fields, oneLine(c.Text))
		}
		if v.HasActions {
			fields = append(fields, actionSummary(row.Actions))
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writeTextFooter(w, v)
}

// WriteCards is the terminal form of the compact adapter: one block per record.
// Only the first two fields are shown unless showAll is set.
func WriteCards(w io.Writer, v View, showAll bool) error {
	if handled, err := writeTextPreamble(w, v); handled || err != nil {
		return err
	}

	for i, row := range v.Rows {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s]\n", row.Key)
		limit := len(row.Cells)
		if !showAll && limit > compactColumns {
			limit = compactColumns
		}
		for j := 0; j < limit; j++ {
			fmt.Fprintf(w, "  %s: %s\n", v.Headers[j].Title, oneLine(row.Cells[j].Text))
		}
		if hidden := len(row.Cells) - limit; hidden > 0 {
			fmt.Fprintf(w, "  (%d more, use --all)\n", hidden)
		}
		if v.HasActions {
			fmt.Fprintf(w, "  actions: %s\n", actionSummary(row.Actions))
		}
	}
	return writeTextFooter(w, v)
}

// writeTextPreamble handles the loading, empty and no-results cases shared by both text adapters
func writeTextPreamble(w io.Writer, v View) (bool, error) {
	switch {
	case v.Loading:
		_, err := fmt.Fprintln(w, "Loading...")
		return true, err
	case v.ShowEmptyState():
		_, err := fmt.Fprintf(w, "%s\n", v.EmptyState.Title)
		if err == nil && v.EmptyState.Message != "" {
			_, err = fmt.Fprintf(w, "%s\n", v.EmptyState.Message)
		}
		return true, err
	case v.NoResults():
		_, err := fmt.Fprintf(w, "%s (search: %q).\n", noResultsText, v.State.Query)
		return true, err
	}
	return false, nil
}

func writeTextFooter(w io.Writer, v View) error {
	p := v.Pagination
	var err error
	if p.Show() {
		_, err = fmt.Fprintf(w, "\npage %d of %d, %s\n", p.CurrentPage, p.TotalPages, v.ItemCountLabel())
	} else {
		_, err = fmt.Fprintf(w, "\n%s\n", v.ItemCountLabel())
	}
	return err
}

func actionSummary(actions []ActionButton) string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.Disabled {
			continue
		}
		names = append(names, a.Name)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 60 {
		return string(r[:57]) + "..."
	}
	return s
}
