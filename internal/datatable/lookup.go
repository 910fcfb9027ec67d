package datatable

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one item shown in a table, usually a decoded JSON object.
type Record = map[string]any

// Lookup resolves a dotted path (e.g. "assigned_to.username") against rec.
//
// Path segments address map keys; a numeric segment can also index into a slice.
// ok is false when any segment is missing. A JSON null is reported as (nil, true).
func Lookup(rec Record, path string) (value any, ok bool) {
	if rec == nil || path == "" {
		return nil, false
	}

	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			cur, ok = node[part]
			if !ok {
				return nil, false
			}
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// present reports whether path resolves to a non-null value
func present(rec Record, path string) (any, bool) {
	v, ok := Lookup(rec, path)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Stringify is the default string form of an extracted value. Absent and null values are "".
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// number converts the numeric kinds produced by encoding/json (and plain Go ints) to float64.
func number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// IntField reads a whole number at path, such as a record's "id". Numbers decoded from JSON and numeric
// strings are accepted.
func IntField(rec Record, path string) (int, error) {
	v, ok := Lookup(rec, path)
	if !ok || v == nil {
		return 0, fmt.Errorf("record has no %s", path)
	}
	if s, isString := v.(string); isString {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%s %q is not a whole number", path, s)
		}
		return n, nil
	}
	f, isNumber := number(v)
	if !isNumber || f != float64(int(f)) {
		return 0, fmt.Errorf("%s %v is not a whole number", path, v)
	}
	return int(f), nil
}
