package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// NavLink is one sidebar entry
type NavLink struct {
	Label string
	Href  string
}

var adminLinks = []NavLink{
	{Label: "Dashboard", Href: "/admin/dashboard"},
	{Label: "Post job", Href: "/admin/jobs/new"},
	{Label: "Ongoing jobs", Href: "/admin/jobs/ongoing"},
	{Label: "Job history", Href: "/admin/jobs/history"},
	{Label: "Completed jobs", Href: "/admin/jobs/completed"},
	{Label: "New rental", Href: "/admin/rentals/new"},
	{Label: "Ongoing rentals", Href: "/admin/rentals/ongoing"},
	{Label: "Rental history", Href: "/admin/rentals/history"},
	{Label: "Devices", Href: "/admin/devices"},
	{Label: "Add device", Href: "/admin/devices/new"},
	{Label: "Users", Href: "/admin/users"},
	{Label: "New user", Href: "/admin/users/new"},
}

var employeeLinks = []NavLink{
	{Label: "Available jobs", Href: "/employee/jobs"},
	{Label: "My ongoing jobs", Href: "/employee/jobs/ongoing"},
	{Label: "Submit report", Href: "/employee/report"},
	{Label: "Recently completed", Href: "/employee/jobs/completed"},
}

// NavLinks returns the sidebar entries for a role
func NavLinks(role types.Role) []NavLink {
	if role == types.RoleAdmin {
		return adminLinks
	}
	return employeeLinks
}

// Page describes the chrome around a page body
type Page struct {
	Title  string
	Active string // href of the current nav entry
	Role   types.Role
	Email  string
}

// BaseLayout renders a full document. Pages without a role (login, access denied) get no sidebar.
func BaseLayout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(p.Title)
		h.raw(` | Ops Console</title>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script`)
		h.attr("src", htmxScript)
		h.raw(`></script></head><body>`)
		if p.Role == "" {
			h.raw(`<main class="main">`)
			h.component(ctx, body)
			h.raw(`</main></body></html>`)
			return h.err
		}

		h.raw(`<div class="shell"><nav class="sidebar"><h1>Ops Console</h1>`)
		for _, l := range NavLinks(p.Role) {
			h.raw(`<a`)
			h.attr("href", l.Href)
			if l.Href == p.Active {
				h.raw(` class="active" aria-current="page"`)
			}
			h.raw(">")
			h.text(l.Label)
			h.raw(`</a>`)
		}
		h.raw(`<div class="who">`)
		h.text(p.Email)
		h.raw(`<form method="post" action="/logout"><button type="submit" class="btn-secondary">Log out</button></form></div></nav>`)
		h.raw(`<main class="main">`)
		h.component(ctx, body)
		h.raw(`</main></div></body></html>`)
		return h.err
	})
}

// PageHeader renders the title block at the top of a page body
func PageHeader(title, description string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="page-header"><h2>`)
		h.text(title)
		h.raw(`</h2>`)
		if description != "" {
			h.raw(`<p>`)
			h.text(description)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// Join renders components one after the other
func Join(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
