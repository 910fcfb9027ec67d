package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/logger"
	"github.com/fieldops/opsconsole/internal/ui/auth"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/templates"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

// errNavigated is returned by row actions that answered the request with a redirect
var errNavigated = errors.New("request redirected")

// tableTab is a fixed filter applied to the records before the table sees them
type tableTab struct {
	name  string
	label string
	keep  func(rec datatable.Record) bool // nil keeps everything
}

// tableRequest is what row callbacks get to work with during one request
type tableRequest struct {
	w        http.ResponseWriter
	r        *http.Request
	client   *client.Client
	selected datatable.Record
}

// tableDef describes one resource table: where its page lives, how its records are loaded and which
// row actions it offers.
type tableDef struct {
	id          string
	role        types.Role
	title       string
	description string
	pagePath    string
	tabs        []tableTab // the first tab is the default
	columns     []datatable.Column
	emptyState  *datatable.EmptyState
	placeholder string
	load        func(ctx context.Context, c *client.Client) ([]datatable.Record, error)
	actions     func(req *tableRequest) []datatable.RowAction
	// messages are shown after an action succeeds, keyed by action name
	messages map[string]string
	// inspect returns what the row inspector shows for rec, defaults to the record itself
	inspect func(ctx context.Context, c *client.Client, rec datatable.Record) (any, error)
}

var allTab = tableTab{name: "all", label: "All"}

func (d *tableDef) tab(name string) (tableTab, bool) {
	if len(d.tabs) == 0 {
		return allTab, name == "" || name == allTab.name
	}
	if name == "" {
		return d.tabs[0], true
	}
	for _, t := range d.tabs {
		if t.name == name {
			return t, true
		}
	}
	return tableTab{}, false
}

func (d *tableDef) basePath(tab tableTab) string {
	return "/ui-api/" + string(d.role) + "/tables/" + d.id + "/" + tab.name
}

func (d *tableDef) table(itemsPerPage int, tab tableTab, req *tableRequest, loading bool) *datatable.Table {
	opts := datatable.Options{
		ID:                d.id,
		BasePath:          d.basePath(tab),
		SearchPlaceholder: d.placeholder,
		ItemsPerPage:      itemsPerPage,
		EmptyState:        d.emptyState,
		Loading:           loading,
		OnRowClick: func(_ context.Context, rec datatable.Record) error {
			req.selected = rec
			return nil
		},
	}
	if d.actions != nil {
		opts.RowActions = d.actions(req)
	}
	return datatable.New(d.columns, opts)
}

// records loads and filters the records for a tab. Every route filters the same way so row keys agree.
func (d *tableDef) records(ctx context.Context, c *client.Client, tab tableTab) ([]datatable.Record, error) {
	records, err := d.load(ctx, c)
	if err != nil {
		return nil, err
	}
	if tab.keep == nil {
		return records, nil
	}
	kept := make([]datatable.Record, 0, len(records))
	for _, rec := range records {
		if tab.keep(rec) {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}

// tableRegistry indexes the table definitions by id
type tableRegistry map[string]*tableDef

func newTableRegistry(defs ...*tableDef) tableRegistry {
	reg := make(tableRegistry, len(defs))
	for _, d := range defs {
		reg[d.id] = d
	}
	return reg
}

var tables = newTableRegistry(
	ongoingJobsTable,
	jobHistoryTable,
	completedJobsTable,
	ongoingRentalsTable,
	rentalHistoryTable,
	devicesTable,
	usersTable,
	availableJobsTable,
	myJobsTable,
	recentlyCompletedTable,
)

// lookupTable resolves the {table} and {tab} route parameters. Tables only answer for their own role.
func lookupTable(r *http.Request) (*tableDef, tableTab, bool) {
	d, ok := tables[chi.URLParam(r, "table")]
	if !ok {
		return nil, tableTab{}, false
	}
	if s, ok := auth.ContextSession(r.Context()); !ok || s.Role != d.role {
		return nil, tableTab{}, false
	}
	tab, ok := d.tab(chi.URLParam(r, "tab"))
	return d, tab, ok
}

// TablePage serves the page around a table. The table itself is fetched by the skeleton once the page loads.
func (h *HandlerService) TablePage(id string) http.HandlerFunc {
	d, ok := tables[id]
	if !ok {
		panic(fmt.Sprintf("unknown table %q", id))
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tab, ok := d.tab(r.URL.Query().Get("tab"))
		if !ok {
			tab, _ = d.tab("")
		}

		var tabs []templates.Tab
		for i, t := range d.tabs {
			href := d.pagePath
			if i > 0 {
				href += "?tab=" + url.QueryEscape(t.name)
			}
			tabs = append(tabs, templates.Tab{Label: t.label, Href: href, Active: t.name == tab.name})
		}

		state := datatable.ParseState(r.URL.Query())
		view := d.table(h.ItemsPerPage, tab, &tableRequest{w: w, r: r}, true).View(nil, state)

		renderPage(w, r, d.title, d.pagePath, templates.TablePageBody(templates.TablePage{
			Title:       d.title,
			Description: d.description,
			Tabs:        tabs,
			View:        view,
		}))
	}
}

// TableFragment renders the table for the state in the query string
func (h *HandlerService) TableFragment(w http.ResponseWriter, r *http.Request) {
	d, tab, ok := lookupTable(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req := &tableRequest{w: w, r: r, client: h.AuthService.Client(w, r)}
	records, err := d.records(r.Context(), req.client, tab)
	if err != nil {
		handleError(w, r, err, "load "+d.id, func(msg string) templ.Component {
			return templates.TableError(d.id, msg, r.URL.RequestURI())
		})
		return
	}

	view := d.table(h.ItemsPerPage, tab, req, false).View(records, datatable.ParseState(r.URL.Query()))
	render(w, r, datatable.Responsive(view), d.id+" table")
}

// TableRow renders the inspector for the clicked row
func (h *HandlerService) TableRow(w http.ResponseWriter, r *http.Request) {
	d, tab, ok := lookupTable(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	key := routeKey(r)

	req := &tableRequest{w: w, r: r, client: h.AuthService.Client(w, r)}
	records, err := d.records(r.Context(), req.client, tab)
	if err != nil {
		handleAlertError(w, r, err, "load "+d.id)
		return
	}

	if err := d.table(h.ItemsPerPage, tab, req, false).Dispatch(r.Context(), records, key, ""); err != nil {
		handleAlertError(w, r, err, "open row "+key)
		return
	}

	var shown any = req.selected
	if d.inspect != nil {
		shown, err = d.inspect(r.Context(), req.client, req.selected)
		if err != nil {
			handleAlertError(w, r, err, "inspect row "+key)
			return
		}
	}
	render(w, r, templates.Inspector(inspectorTitle(req.selected, key), shown), "inspector")
}

// TableAction runs a row action and re-renders the table, with the outcome in the table's alert area
func (h *HandlerService) TableAction(w http.ResponseWriter, r *http.Request) {
	d, tab, ok := lookupTable(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	reqLogger := logger.ContextRequestLogger(r.Context())
	action := chi.URLParam(r, "action")
	key := routeKey(r)

	if err := r.ParseForm(); err != nil {
		reqLogger.Warn("Could not parse table state", slog.String("error", err.Error()))
	}
	state := datatable.ParseState(r.PostForm)

	logger.ContextWithLogAttrs(r.Context(),
		slog.String("table", d.id),
		slog.String("action", action),
		slog.String("row", key),
	)

	req := &tableRequest{w: w, r: r, client: h.AuthService.Client(w, r)}
	records, err := d.records(r.Context(), req.client, tab)
	if err != nil {
		handleError(w, r, err, "load "+d.id, func(msg string) templ.Component {
			return templates.TableError(d.id, msg, d.basePath(tab)+"?"+state.Values().Encode())
		})
		return
	}

	var alert templ.Component
	err = d.table(h.ItemsPerPage, tab, req, false).Dispatch(r.Context(), records, key, action)
	switch {
	case errors.Is(err, errNavigated):
		return
	case errors.Is(err, client.ErrSessionExpired):
		reqLogger.Info("Session expired", slog.String("while", action))
		return
	case err != nil:
		reqLogger.Error("Row action failed", slog.String("error", err.Error()))
		alert = templates.ErrorAlertWithRetry(actionErrorMessage(err), &templates.Retry{
			URL:     r.URL.Path,
			Target:  "#" + d.id,
			Swap:    "outerHTML",
			Include: "#" + d.id + "-state",
		})
	default:
		reqLogger.Info("Row action completed")
		alert = templates.SuccessAlert(d.messages[action])

		// reload so the table shows the record's new state
		records, err = d.records(r.Context(), req.client, tab)
		if err != nil {
			handleError(w, r, err, "reload "+d.id, func(msg string) templ.Component {
				return templates.TableError(d.id, msg, d.basePath(tab)+"?"+state.Values().Encode())
			})
			return
		}
	}

	view := d.table(h.ItemsPerPage, tab, req, false).View(records, state)
	render(w, r, templates.Join(
		datatable.Responsive(view),
		templates.AlertsOOB(templates.TableAlertsID(d.id), alert),
	), d.id+" table")
}

func actionErrorMessage(err error) string {
	switch {
	case errors.Is(err, datatable.ErrRowNotFound):
		return "This record no longer exists. The table has been refreshed."
	case errors.Is(err, datatable.ErrActionDisabled), errors.Is(err, datatable.ErrUnknownAction):
		return "That action is not available for this record."
	}
	return client.UserMessage(err)
}

// routeKey returns the {key} route parameter; keys may be escaped, e.g. "#3" for records without an id
func routeKey(r *http.Request) string {
	key := chi.URLParam(r, "key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		return unescaped
	}
	return key
}

func inspectorTitle(rec datatable.Record, key string) string {
	if name := datatable.Stringify(rec["customer_name"]); name != "" {
		return fmt.Sprintf("#%s %s", key, name)
	}
	if name := datatable.Stringify(rec["device_name"]); name != "" {
		return fmt.Sprintf("#%s %s", key, name)
	}
	if email := datatable.Stringify(rec["email"]); email != "" {
		return email
	}
	return "Record " + key
}

// recordString reads a string field of a record
func recordString(rec datatable.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

// fieldIs returns a tab filter keeping records whose field equals one of values
func fieldIs(key string, values ...string) func(datatable.Record) bool {
	return func(rec datatable.Record) bool {
		v := recordString(rec, key)
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}
