package datatable

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrRowNotFound    = errors.New("row not found")
	ErrUnknownAction  = errors.New("unknown row action")
	ErrActionDisabled = errors.New("row action is disabled for this record")
	ErrNoRowClick     = errors.New("table has no row click handler")
)

// Find returns the record identified by key (see Row.Key)
func (t *Table) Find(records []Record, key string) (Record, bool) {
	for i, rec := range records {
		if t.keyAt(rec, i) == key {
			return rec, true
		}
	}
	return nil, false
}

// Dispatch delivers a row interaction. An empty action is a row click and goes to OnRowClick;
// a named action goes only to that action's OnClick, never to OnRowClick.
func (t *Table) Dispatch(ctx context.Context, records []Record, key, action string) error {
	rec, ok := t.Find(records, key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrRowNotFound, key)
	}

	if action == "" {
		if t.Options.OnRowClick == nil {
			return ErrNoRowClick
		}
		return t.Options.OnRowClick(ctx, rec)
	}

	a, ok := t.action(action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if a.disabledFor(rec) {
		return fmt.Errorf("%w: %s", ErrActionDisabled, a.Label)
	}
	if a.OnClick == nil {
		return nil
	}
	return a.OnClick(ctx, rec)
}
