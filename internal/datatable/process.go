package datatable

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter returns the records where any searchable column's string value contains query, ignoring case.
// An empty query returns all records. The input slice is not modified.
func Filter(records []Record, columns []Column, query string) []Record {
	out := make([]Record, 0, len(records))
	if query == "" {
		return append(out, records...)
	}

	// a Caser is stateful, so one per call
	fold := cases.Fold()
	needle := fold.String(query)

	for _, rec := range records {
		for _, col := range columns {
			if !col.Searchable() {
				continue
			}
			v, ok := present(rec, col.Key)
			if !ok {
				continue
			}
			if strings.Contains(fold.String(Stringify(v)), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Sort returns the records ordered by the value at sort.Key. With no key the input order is kept.
//
// Records whose value is absent or null always come last, in either direction.
// Strings use locale collation, numbers compare numerically, false sorts before true,
// and mixed kinds compare by their string form. The sort is stable. The input slice is not modified.
func Sort(records []Record, sort SortState, locale language.Tag) []Record {
	out := slices.Clone(records)
	if sort.Key == "" || len(out) < 2 {
		return out
	}

	// collators keep internal buffers: one per call
	coll := collate.New(locale)
	desc := sort.Direction == Descending

	slices.SortStableFunc(out, func(a, b Record) int {
		av, aok := present(a, sort.Key)
		bv, bok := present(b, sort.Key)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := compareValues(coll, av, bv)
		if desc {
			return -c
		}
		return c
	})
	return out
}

func compareValues(coll *collate.Collator, a, b any) int {
	if af, ok := number(a); ok {
		if bf, ok := number(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}

	return coll.CompareString(Stringify(a), Stringify(b))
}

// Pagination describes the visible page of a result set. Pages are 1-indexed.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	PerPage     int
	Total       int
	HasPrevious bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []int // every page number, 1..TotalPages
	Enabled     bool  // false when pagination is switched off for the table
}

// Show reports whether pagination controls should be rendered
func (p Pagination) Show() bool {
	return p.Enabled && p.TotalPages > 1
}

// Paginate returns the slice of records on page (clamped to the valid range) and the page metadata.
// perPage values below 1 are treated as 1.
func Paginate(records []Record, page, perPage int) ([]Record, Pagination) {
	if perPage < 1 {
		perPage = 1
	}
	total := len(records)
	totalPages := (total + perPage - 1) / perPage

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	if start > total {
		start = total
	}

	p := Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		PerPage:     perPage,
		Total:       total,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
		PrevPage:    max(page-1, 1),
		NextPage:    min(page+1, max(totalPages, 1)),
		Enabled:     true,
	}
	p.Pages = make([]int, totalPages)
	for i := range p.Pages {
		p.Pages[i] = i + 1
	}
	return records[start:end], p
}
