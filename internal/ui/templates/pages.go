package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

// PageAlertsID is the element handlers target with form results
const PageAlertsID = "page-alerts"

func pageAlerts(h *htmlWriter) {
	h.raw(`<div`)
	h.attr("id", PageAlertsID)
	h.raw(`></div>`)
}

// LoginPage renders the sign in form. message is an error shown above the form, if any.
func LoginPage(email, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="card" style="max-width:26rem;margin:4rem auto"><h2>Sign in</h2>`)
		h.raw(`<div`)
		h.attr("id", PageAlertsID)
		h.raw(`>`)
		if message != "" {
			h.component(ctx, ErrorAlert(message))
		}
		h.raw(`</div>`)
		h.raw(`<form method="post" action="/login" hx-post="/login" hx-target="#page-alerts">`)
		h.raw(`<p><label for="email">Email</label><input class="input-field" type="email" id="email" name="email" required autocomplete="username"`)
		h.attr("value", email)
		h.raw(`></p>`)
		h.raw(`<p><label for="password">Password</label><input class="input-field" type="password" id="password" name="password" required autocomplete="current-password"></p>`)
		h.raw(`<button type="submit" class="btn-primary">Sign in</button></form></div>`)
		return h.err
	})
}

func AccessDeniedPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="card empty-state"><h2>Access denied</h2>`)
		h.raw(`<p>You do not have permission to view this page.</p><a class="btn-primary" href="/">Back to start</a></div>`)
		return h.err
	})
}

type statBlock struct {
	title string
	total int
	parts [][2]string
}

// DashboardPage renders the admin overview counters
func DashboardPage(stats types.DashboardStats) templ.Component {
	blocks := []statBlock{
		{title: "Jobs", total: stats.Jobs.Total, parts: [][2]string{
			{"Open", strconv.Itoa(stats.Jobs.Open)},
			{"In progress", strconv.Itoa(stats.Jobs.InProgress)},
			{"Completed", strconv.Itoa(stats.Jobs.Completed)},
		}},
		{title: "Rentals", total: stats.Rentals.Total, parts: [][2]string{
			{"Active", strconv.Itoa(stats.Rentals.Active)},
			{"Returned", strconv.Itoa(stats.Rentals.Completed)},
		}},
		{title: "Devices", total: stats.Devices.Total, parts: [][2]string{
			{"Available", strconv.Itoa(stats.Devices.Available)},
			{"Rented", strconv.Itoa(stats.Devices.Rented)},
		}},
		{title: "Users", total: stats.Users.Total, parts: [][2]string{
			{"Admins", strconv.Itoa(stats.Users.Admins)},
			{"Employees", strconv.Itoa(stats.Users.Employees)},
		}},
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.component(ctx, PageHeader("Dashboard", "Overview of jobs, rentals, devices and users."))
		h.raw(`<div class="stats">`)
		for _, b := range blocks {
			h.raw(`<section class="card stat"><h3>`)
			h.text(b.title)
			h.raw(`</h3><div class="value">`)
			h.text(strconv.Itoa(b.total))
			h.raw(`</div><dl>`)
			for _, p := range b.parts {
				h.raw(`<dt>`)
				h.text(p[0])
				h.raw(`</dt><dd>`)
				h.text(p[1])
				h.raw(`</dd>`)
			}
			h.raw(`</dl></section>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// Tab is a filter tab above a table
type Tab struct {
	Label  string
	Href   string
	Active bool
}

// TablePage is a page whose table is fetched lazily: the skeleton loads the fragment once inserted.
type TablePage struct {
	Title       string
	Description string
	Tabs        []Tab
	View        datatable.View // a loading view carrying the fragment URL and initial state
}

// TablePageBody renders the page content: header, tabs, alert area, table skeleton and the inspector panel
func TablePageBody(p TablePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.component(ctx, PageHeader(p.Title, p.Description))
		if len(p.Tabs) > 0 {
			h.raw(`<nav class="tabs">`)
			for _, t := range p.Tabs {
				h.raw(`<a`)
				h.attr("href", t.Href)
				if t.Active {
					h.raw(` class="active"`)
				}
				h.raw(">")
				h.text(t.Label)
				h.raw(`</a>`)
			}
			h.raw(`</nav>`)
		}
		h.raw(`<div`)
		h.attr("id", TableAlertsID(p.View.ID))
		h.raw(`></div>`)
		h.component(ctx, datatable.Skeleton(p.View, true))
		h.raw(`<aside class="card inspector"`)
		h.attr("id", p.View.ID+"-inspector")
		h.raw(`><p class="muted">Select a row to inspect the record.</p></aside>`)
		return h.err
	})
}

// TableAlertsID is the alert area of a table page; row action results are swapped into it out of band.
func TableAlertsID(tableID string) string {
	return tableID + "-alerts"
}

// TableError stands in for a table fragment that could not be loaded. It keeps the table's id so the
// retry button can swap the real table back in.
func TableError(tableID, message, retryURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="data-table"`)
		h.attr("id", tableID)
		h.raw(">")
		h.component(ctx, ErrorAlertWithRetry(message, &Retry{
			URL:    retryURL,
			Method: "get",
			Target: "#" + tableID,
			Swap:   "outerHTML",
		}))
		h.raw(`</div>`)
		return h.err
	})
}
