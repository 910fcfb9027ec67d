package datatable

import (
	"context"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can be written linearly
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped
func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Responsive renders both adapters over the same view: the full table for wide screens and the compact card
// list for narrow ones (the stylesheet hides one of them with a media query).
func Responsive(v View) templ.Component {
	return adapter(v, "data-table", func(h *htmlWriter, v View) {
		h.raw(`<div class="dt-full">`)
		writeTable(h, v)
		h.raw(`</div><div class="dt-compact">`)
		writeCards(h, v)
		h.raw(`</div>`)
	})
}

// Full renders only the multi-column table adapter (plus search and pagination)
func Full(v View) templ.Component {
	return adapter(v, "data-table dt-only-full", writeTable)
}

// Compact renders only the card adapter (plus search and pagination)
func Compact(v View) templ.Component {
	return adapter(v, "data-table dt-only-compact", writeCards)
}

// adapter wraps body in the table container and handles the loading, empty and no-results states
// the same way for every adapter
func adapter(v View, class string, body func(h *htmlWriter, v View)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div`)
		h.attr("class", class)
		h.attr("id", v.ID)
		h.raw(">")

		switch {
		case v.Loading:
			writeSkeleton(h, v)
		case v.ShowEmptyState():
			writeEmptyState(h, v.EmptyState)
		default:
			writeSearch(h, v)
			writeStateInputs(h, v)
			body(h, v)
			writePagination(h, v)
			if v.NoResults() {
				h.raw(`<div class="card dt-no-results"><p>`)
				h.text(noResultsText + ".")
				h.raw(`</p></div>`)
			}
		}

		h.raw(`</div>`)
		return h.err
	})
}

// Skeleton renders the loading placeholder. When load is true the placeholder fetches the real table
// fragment as soon as it is inserted into the page.
func Skeleton(v View, load bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="data-table"`)
		h.attr("id", v.ID)
		if load {
			h.attr("hx-get", v.URL(v.State))
			h.attr("hx-trigger", "load")
			h.attr("hx-swap", "outerHTML")
		}
		h.raw(">")
		writeSkeleton(h, v)
		h.raw(`</div>`)
		return h.err
	})
}

func writeSkeleton(h *htmlWriter, _ View) {
	h.raw(`<div class="card"><div class="animate-pulse dt-skeleton"><div class="dt-skeleton-bar dt-skeleton-head"></div>`)
	for range 5 {
		h.raw(`<div class="dt-skeleton-bar"></div>`)
	}
	h.raw(`</div></div>`)
}

func writeEmptyState(h *htmlWriter, e *EmptyState) {
	h.raw(`<div class="card empty-state"><h3>`)
	h.text(e.Title)
	h.raw(`</h3>`)
	if e.Message != "" {
		h.raw(`<p>`)
		h.text(e.Message)
		h.raw(`</p>`)
	}
	if e.ActionLabel != "" && e.ActionURL != "" {
		h.raw(`<a class="btn-primary"`)
		h.attr("href", e.ActionURL)
		h.raw(">")
		h.text(e.ActionLabel)
		h.raw(`</a>`)
	}
	h.raw(`</div>`)
}

// hxTarget adds the attributes that swap the whole table fragment
func hxTarget(h *htmlWriter, v View) {
	h.attr("hx-target", "#"+v.ID)
	h.attr("hx-swap", "outerHTML")
}

func writeSearch(h *htmlWriter, v View) {
	if !v.Searchable {
		return
	}
	h.raw(`<div class="dt-toolbar"><form class="dt-search" role="search"`)
	h.attr("hx-get", v.BasePath)
	h.attr("hx-trigger", "input delay:300ms, submit")
	hxTarget(h, v)
	h.raw(`><input type="search" class="input-field" autocomplete="off"`)
	h.attr("name", ParamQuery)
	h.attr("value", v.State.Query)
	h.attr("placeholder", v.SearchPlaceholder)
	h.raw(">")
	// keep the sort when the query changes; the page always resets
	if v.State.Sort.Key != "" {
		h.raw(`<input type="hidden"`)
		h.attr("name", ParamSort)
		h.attr("value", v.State.Sort.Key)
		h.raw(`><input type="hidden"`)
		h.attr("name", ParamDirection)
		h.attr("value", string(v.State.Sort.Direction))
		h.raw(">")
	}
	if v.State.Query != "" {
		h.raw(`<button type="button" class="dt-clear" title="Clear search"`)
		h.attr("hx-get", v.URL(v.State.WithQuery("")))
		hxTarget(h, v)
		h.raw(`>&times;</button>`)
	}
	h.raw(`</form><span class="dt-count">`)
	h.text(v.ItemCountLabel())
	h.raw(`</span></div>`)
}

func sortIndicator(hd Header) string {
	switch {
	case !hd.Sorted:
		return "↕"
	case hd.Direction == Descending:
		return "▼"
	default:
		return "▲"
	}
}

func writeTable(h *htmlWriter, v View) {
	h.raw(`<div class="dt-scroll"><table class="dt-table"><thead><tr>`)
	for _, hd := range v.Headers {
		if !hd.Sortable {
			h.raw(`<th>`)
			h.text(hd.Title)
			h.raw(`</th>`)
			continue
		}
		h.raw(`<th class="dt-sortable"`)
		if hd.Sorted {
			if hd.Direction == Descending {
				h.attr("aria-sort", "descending")
			} else {
				h.attr("aria-sort", "ascending")
			}
		}
		h.attr("hx-get", hd.ToggleURL)
		hxTarget(h, v)
		h.raw(`><span class="dt-th">`)
		h.text(hd.Title)
		h.raw(`<span class="dt-sort-icon">`, sortIndicator(hd), `</span></span></th>`)
	}
	if v.HasActions {
		h.raw(`<th>Actions</th>`)
	}
	h.raw(`</tr></thead><tbody>`)

	for _, row := range v.Rows {
		h.raw(`<tr`)
		h.attr("data-key", row.Key)
		writeRowClick(h, v, row)
		h.raw(">")
		for _, c := range row.Cells {
			h.raw(`<td>`)
			writeCell(h, c)
			h.raw(`</td>`)
		}
		if v.HasActions {
			h.raw(`<td class="dt-actions">`)
			writeActions(h, v, row)
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table></div>`)
}

// writeRowClick makes the element open the row in the inspector panel
func writeRowClick(h *htmlWriter, v View, row Row) {
	if row.URL == "" {
		return
	}
	h.attr("class", "dt-clickable")
	h.attr("hx-get", row.URL)
	h.attr("hx-target", "#"+v.ID+"-inspector")
	h.attr("hx-swap", "innerHTML")
}

func writeCell(h *htmlWriter, c Cell) {
	if c.Class == "" {
		h.text(c.Text)
		return
	}
	h.raw(`<span`)
	h.attr("class", c.Class)
	h.raw(">")
	h.text(c.Text)
	h.raw(`</span>`)
}

// writeActions renders the action buttons. "consume" stops the click reaching the row's own hx-get.
func writeActions(h *htmlWriter, v View, row Row) {
	h.raw(`<div class="dt-action-group">`)
	for _, a := range row.Actions {
		style := a.Style
		if style == "" {
			style = "dt-action"
		}
		h.raw(`<button type="button"`)
		h.attr("class", style)
		h.attr("title", a.Label)
		h.attr("hx-post", a.URL)
		h.attr("hx-trigger", "click consume")
		h.attr("hx-include", "#"+v.ID+"-state")
		hxTarget(h, v)
		if a.Disabled {
			h.raw(` disabled aria-disabled="true"`)
		}
		h.raw(">")
		if a.Icon != "" {
			h.raw(`<span class="dt-icon" aria-hidden="true">`)
			h.text(a.Icon)
			h.raw(`</span> `)
		}
		h.text(a.Label)
		h.raw(`</button>`)
	}
	h.raw(`</div>`)
}

// writeStateInputs lets action requests carry the current table state so the re-rendered table keeps it
func writeStateInputs(h *htmlWriter, v View) {
	if !v.HasActions {
		return
	}
	h.raw(`<span hidden`)
	h.attr("id", v.ID+"-state")
	h.raw(">")
	values := v.State.Values()
	for _, name := range slices.Sorted(maps.Keys(values)) {
		for _, val := range values[name] {
			h.raw(`<input type="hidden"`)
			h.attr("name", name)
			h.attr("value", val)
			h.raw(">")
		}
	}
	h.raw(`</span>`)
}

// compactColumns is how many fields a card shows before "show more"
const compactColumns = 2

func writeCards(h *htmlWriter, v View) {
	extra := len(v.Headers) - compactColumns
	if extra > 0 {
		h.raw(`<input type="checkbox" class="dt-expand-all"`)
		h.attr("id", v.ID+"-expand-all")
		h.raw(`><label class="dt-expand-all-label"`)
		h.attr("for", v.ID+"-expand-all")
		h.raw(`>Show all fields</label>`)
	}
	h.raw(`<ul class="dt-cards">`)
	for i, row := range v.Rows {
		h.raw(`<li class="card dt-card"`)
		h.attr("data-key", row.Key)
		h.raw(`><div`)
		writeRowClick(h, v, row)
		h.raw(`><dl class="dt-primary">`)
		for j := 0; j < len(row.Cells) && j < compactColumns; j++ {
			writeField(h, v.Headers[j].Title, row.Cells[j])
		}
		h.raw(`</dl></div>`)
		if extra > 0 {
			toggleID := v.ID + "-more-" + strconv.Itoa(i)
			h.raw(`<input type="checkbox" class="dt-card-toggle"`)
			h.attr("id", toggleID)
			h.raw(`><label class="dt-card-toggle-label"`)
			h.attr("for", toggleID)
			h.raw(">")
			h.text("Show " + strconv.Itoa(extra) + " more")
			h.raw(`</label><dl class="dt-extra">`)
			for j := compactColumns; j < len(row.Cells); j++ {
				writeField(h, v.Headers[j].Title, row.Cells[j])
			}
			h.raw(`</dl>`)
		}
		if v.HasActions {
			writeActions(h, v, row)
		}
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}

func writeField(h *htmlWriter, title string, c Cell) {
	h.raw(`<div class="dt-field"><dt>`)
	h.text(title)
	h.raw(`</dt><dd>`)
	writeCell(h, c)
	h.raw(`</dd></div>`)
}

func writePagination(h *htmlWriter, v View) {
	p := v.Pagination
	if !p.Show() {
		return
	}
	h.raw(`<nav class="dt-pagination" aria-label="Pagination">`)
	writePageButton(h, v, "Previous", p.PrevPage, !p.HasPrevious, "btn-secondary")
	h.raw(`<div class="dt-pages">`)
	for _, n := range p.Pages {
		class := "dt-page"
		if n == p.CurrentPage {
			class = "dt-page dt-page-current"
		}
		writePageButton(h, v, strconv.Itoa(n), n, false, class)
	}
	h.raw(`</div>`)
	writePageButton(h, v, "Next", p.NextPage, !p.HasNext, "btn-secondary")
	h.raw(`</nav>`)
}

func writePageButton(h *htmlWriter, v View, label string, page int, disabled bool, class string) {
	h.raw(`<button type="button"`)
	h.attr("class", class)
	if disabled {
		h.raw(` disabled`)
	} else {
		h.attr("hx-get", v.URL(v.State.WithPage(page)))
		hxTarget(h, v)
	}
	h.raw(">")
	h.text(label)
	h.raw(`</button>`)
}
