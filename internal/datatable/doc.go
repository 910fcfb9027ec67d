// Package datatable turns a slice of records into a searched, sorted and paginated view.
//
// The processing pipeline is always filter → sort → paginate and is computed by Table.View, which never
// mutates the input. The resulting View is consumed by presentation adapters: the HTML adapters in html.go
// (a full table and a compact card list sharing one View, switched by CSS at narrow widths) and the text
// adapters in text.go used by the CLI.
//
// Table state (search query, sort column/direction and page) lives in the request URL, see ParseState.
package datatable
