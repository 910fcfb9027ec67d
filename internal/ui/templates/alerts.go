package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Retry describes the request repeated by an alert's retry button
type Retry struct {
	URL     string
	Method  string // "post" or "get"
	Target  string // css selector
	Swap    string
	Include string // optional css selector of extra inputs
}

// ErrorAlert renders an inline error message
func ErrorAlert(message string) templ.Component {
	return ErrorAlertWithRetry(message, nil)
}

// ErrorAlertWithRetry renders an inline error with a button that repeats the failed request
func ErrorAlertWithRetry(message string, retry *Retry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-error" role="alert"><span>`)
		h.text(message)
		h.raw(`</span>`)
		if retry != nil {
			h.raw(`<button type="button" class="btn-secondary"`)
			if retry.Method == "get" {
				h.attr("hx-get", retry.URL)
			} else {
				h.attr("hx-post", retry.URL)
			}
			if retry.Target != "" {
				h.attr("hx-target", retry.Target)
			}
			if retry.Swap != "" {
				h.attr("hx-swap", retry.Swap)
			}
			if retry.Include != "" {
				h.attr("hx-include", retry.Include)
			}
			h.raw(`>Retry</button>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// SuccessAlert renders an inline confirmation
func SuccessAlert(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-success" role="status"><span>`)
		h.text(message)
		h.raw(`</span></div>`)
		return h.err
	})
}

// ClearAlerts empties the page's alert area
func ClearAlerts() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="page-alerts" hx-swap-oob="true"></div>`)
		return err
	})
}

// AlertsOOB replaces the element with the given id out of band, so an alert can accompany a swapped fragment
func AlertsOOB(id string, alert templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div`)
		h.attr("id", id)
		h.raw(` hx-swap-oob="true">`)
		h.component(ctx, alert)
		h.raw(`</div>`)
		return h.err
	})
}
