package datatable

// Cell is the displayable form of one value: text plus an optional CSS class (used for badges).
type Cell struct {
	Text  string
	Class string
}

// Renderer converts an extracted value to a Cell. rec is the whole record, for renderers that combine fields.
type Renderer interface {
	Render(value any, rec Record) Cell
}

// RenderFunc adapts a plain function to the Renderer interface
type RenderFunc func(value any, rec Record) Cell

func (f RenderFunc) Render(value any, rec Record) Cell {
	return f(value, rec)
}

// Column describes how to extract, label, search, sort and render one field of a record.
//
// Columns are sortable and searchable unless DisableSort / DisableSearch is set.
type Column struct {
	Key           string // dotted path into the record
	Title         string
	DisableSort   bool
	DisableSearch bool
	Render        Renderer // nil renders Stringify(value)
}

// Sortable reports whether header interaction can sort by this column
func (c Column) Sortable() bool { return !c.DisableSort }

// Searchable reports whether the free-text search looks at this column
func (c Column) Searchable() bool { return !c.DisableSearch }

// Cell renders the column's value for rec
func (c Column) Cell(rec Record) Cell {
	value, _ := Lookup(rec, c.Key)
	if c.Render != nil {
		return c.Render.Render(value, rec)
	}
	return Cell{Text: Stringify(value)}
}

// Badge renders the value with a class chosen from classes (falling back to fallback), with labels
// optionally mapping raw values to display text, e.g. "in_progress" -> "In Progress".
func Badge(classes map[string]string, labels map[string]string, fallback string) Renderer {
	return RenderFunc(func(value any, _ Record) Cell {
		raw := Stringify(value)
		class, ok := classes[raw]
		if !ok {
			class = fallback
		}
		text := raw
		if label, ok := labels[raw]; ok {
			text = label
		}
		return Cell{Text: text, Class: class}
	})
}

// Placeholder renders absent, null or empty values as text (e.g. "Unassigned") and everything else with Stringify.
func Placeholder(text string) Renderer {
	return RenderFunc(func(value any, _ Record) Cell {
		s := Stringify(value)
		if s == "" {
			return Cell{Text: text, Class: "muted"}
		}
		return Cell{Text: s}
	})
}
