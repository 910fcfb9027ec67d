package datatable

import (
	"encoding/json"
	"fmt"
)

// RecordsFromJSON decodes a JSON array of objects.
func RecordsFromJSON(raw []byte) ([]Record, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return records, nil
}

// RecordsFrom converts typed items (e.g. []types.Job) to records using their JSON field names,
// so column keys match the names used by the backend API.
func RecordsFrom[T any](items []T) ([]Record, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}
	records, err := RecordsFromJSON(b)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
