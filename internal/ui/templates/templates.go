// Package templates holds the UI components. They are templ components built with templ.ComponentFunc
// and share the stylesheet embedded from static/.
package templates

import (
	"context"
	"embed"
	"io"
	"io/fs"

	"github.com/a-h/templ"
)

//go:embed static
var static embed.FS

// Static is the file system served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}

// htmlWriter keeps the first write error so components read top to bottom
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

func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// component renders a nested component into the same writer
func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}
