package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// RowState is the lifecycle state of a record as reported by its supplier.
// The numeric values match the flag values used by row-oriented data sources.
type RowState int

// Row states.
const (
	// RowDetached is a record not yet attached to a table.
	RowDetached RowState = 1
	// RowUnchanged is a record unchanged since it was loaded.
	RowUnchanged RowState = 2
	// RowAdded is a newly added record.
	RowAdded RowState = 4
	// RowDeleted is a logically deleted record. Deleted records never
	// take part in tree building.
	RowDeleted RowState = 8
	// RowModified is a record changed since it was loaded.
	RowModified RowState = 16
)

// IsValid returns true if the state is recognised.
func (s RowState) IsValid() bool {
	switch s {
	case RowDetached, RowUnchanged, RowAdded, RowDeleted, RowModified:
		return true
	default:
		return false
	}
}

// IsActive reports whether a record in this state may appear in a tree.
func (s RowState) IsActive() bool {
	return s != RowDeleted
}

// String returns the lower-case state name.
func (s RowState) String() string {
	switch s {
	case RowDetached:
		return "detached"
	case RowUnchanged:
		return "unchanged"
	case RowAdded:
		return "added"
	case RowDeleted:
		return "deleted"
	case RowModified:
		return "modified"
	default:
		return fmt.Sprintf("RowState(%d)", int(s))
	}
}

// ParseRowState parses a state name (case-insensitive).
func ParseRowState(name string) (RowState, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "detached":
		return RowDetached, nil
	case "unchanged", "":
		return RowUnchanged, nil
	case "added":
		return RowAdded, nil
	case "deleted":
		return RowDeleted, nil
	case "modified":
		return RowModified, nil
	default:
		return 0, fmt.Errorf("%w: row state %q", ErrInvalidInput, name)
	}
}

// Record is a flat row: field name to loosely typed value, plus its
// lifecycle state. Records are treated as read-only by the tree engine.
type Record struct {
	// Fields holds the caller-supplied column values.
	Fields map[string]Value `json:"fields"`
	// State is the lifecycle state of the row.
	State RowState `json:"state"`
}

// NewRecord builds a record from plain Go values. It panics on unsupported
// value types, so it is meant for literals.
func NewRecord(state RowState, fields map[string]any) Record {
	r := Record{Fields: make(map[string]Value, len(fields)), State: state}
	for name, v := range fields {
		r.Fields[name] = MustValue(v)
	}
	return r
}

// Field returns the named value and whether the field is present.
// A present field may still hold Null.
func (r Record) Field(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Has reports whether every named field is present.
func (r Record) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := r.Fields[name]; !ok {
			return false
		}
	}
	return true
}

// FieldNames returns the sorted field names.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodeFields serialises the record's fields as a JSON object.
func (r Record) EncodeFields() ([]byte, error) {
	return json.Marshal(r.Fields)
}

// DecodeFields parses a JSON object of scalar fields.
func DecodeFields(data []byte) (map[string]Value, error) {
	var raw map[string]any
	if err := decodeJSON(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make(map[string]Value, len(raw))
	for name, v := range raw {
		val, err := ValueOf(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = val
	}
	return fields, nil
}

// decodeJSON decodes with UseNumber so integers survive as Int.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
