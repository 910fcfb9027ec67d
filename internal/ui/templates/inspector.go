package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const inspectorStyle = "github"

// HighlightJSON pretty prints v and returns it as highlighted HTML with inline styles
func HighlightJSON(v any) (string, error) {
	src, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode record: %w", err)
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return "", fmt.Errorf("could not tokenise record: %w", err)
	}

	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(false), html.TabWidth(2))
	if err := formatter.Format(&buf, styles.Get(inspectorStyle), iterator); err != nil {
		return "", fmt.Errorf("could not format record: %w", err)
	}
	return buf.String(), nil
}

// Inspector renders a record as highlighted JSON for the side panel
func Inspector(title string, record any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		highlighted, err := HighlightJSON(record)
		if err != nil {
			return err
		}
		h := &htmlWriter{w: w}
		h.raw(`<header><h3>`)
		h.text(title)
		h.raw(`</h3><button type="button" class="btn-secondary" hx-get="/ui-api/empty" hx-target="closest aside" hx-swap="innerHTML">Close</button></header>`)
		// chroma escapes token text itself
		h.raw(highlighted)
		return h.err
	})
}
