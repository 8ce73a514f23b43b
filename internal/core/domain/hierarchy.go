package domain

import (
	"fmt"
	"strings"
)

// KeyMode selects how a composite key becomes a comparable token.
type KeyMode string

// Available key modes.
const (
	// KeyModeConcat joins the text of both key fields into one string and
	// compares it against a single parent-reference field.
	KeyModeConcat KeyMode = "concat"

	// KeyModeTuple keeps both key fields as a structured pair and compares
	// it against a pair of parent-reference fields. Avoids collisions such
	// as ("A","B1") vs ("AB","1").
	KeyModeTuple KeyMode = "tuple"
)

// IsValid returns true if the key mode is recognised.
func (m KeyMode) IsValid() bool {
	return m == KeyModeConcat || m == KeyModeTuple
}

// String returns the string representation.
func (m KeyMode) String() string {
	return string(m)
}

// KeyFields names the field or fields forming a record's own key.
// Construct with SingleKey, CompositeKey or ParseKeyFields.
type KeyFields struct {
	names []string
}

// SingleKey returns a key formed by one field.
func SingleKey(name string) KeyFields {
	return KeyFields{names: []string{name}}
}

// CompositeKey returns a key formed by two fields.
func CompositeKey(first, second string) KeyFields {
	return KeyFields{names: []string{first, second}}
}

// ParseKeyFields parses a comma-separated list of one or two field names,
// e.g. "Id" or "Id, AlternateId".
func ParseKeyFields(raw string) (KeyFields, error) {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return KeyFields{}, fmt.Errorf("%w: empty key field in %q", ErrInvalidHierarchy, raw)
		}
		names = append(names, p)
	}
	switch len(names) {
	case 1:
		return SingleKey(names[0]), nil
	case 2:
		return CompositeKey(names[0], names[1]), nil
	default:
		return KeyFields{}, fmt.Errorf("%w: at most two key fields, got %d", ErrInvalidHierarchy, len(names))
	}
}

// IsComposite reports whether the key is formed by two fields.
func (k KeyFields) IsComposite() bool { return len(k.names) == 2 }

// IsZero reports whether no key field has been configured.
func (k KeyFields) IsZero() bool { return len(k.names) == 0 }

// Names returns the key field names in order.
func (k KeyFields) Names() []string {
	out := make([]string, len(k.names))
	copy(out, k.names)
	return out
}

// Primary returns the first key field name.
func (k KeyFields) Primary() string {
	if len(k.names) == 0 {
		return ""
	}
	return k.names[0]
}

// Alternate returns the second key field name, or "" for a single key.
func (k KeyFields) Alternate() string {
	if len(k.names) < 2 {
		return ""
	}
	return k.names[1]
}

// String returns the comma-separated form accepted by ParseKeyFields.
func (k KeyFields) String() string {
	return strings.Join(k.names, ",")
}

// Hierarchy describes how flat records link to their parents.
type Hierarchy struct {
	// Name identifies the tree (informational).
	Name string
	// EntityName names the record set the tree is built from.
	EntityName string
	// ParentField holds the parent reference of each record.
	ParentField string
	// ParentAltField holds the second half of the parent reference.
	// Only used with KeyModeTuple.
	ParentAltField string
	// Key names the field(s) forming each record's own key.
	Key KeyFields
	// Mode selects token construction for composite keys.
	// Empty means KeyModeConcat.
	Mode KeyMode
}

// KeyMode returns the effective key mode.
func (h Hierarchy) KeyMode() KeyMode {
	if h.Mode == "" {
		return KeyModeConcat
	}
	return h.Mode
}

// RequiredFields lists the fields a record must carry to take part.
func (h Hierarchy) RequiredFields() []string {
	fields := h.Key.Names()
	fields = append(fields, h.ParentField)
	if h.KeyMode() == KeyModeTuple {
		fields = append(fields, h.ParentAltField)
	}
	return fields
}

// Validate checks the descriptor is usable.
func (h Hierarchy) Validate() error {
	if strings.TrimSpace(h.ParentField) == "" {
		return fmt.Errorf("%w: parent field is required", ErrInvalidHierarchy)
	}
	if h.Key.IsZero() {
		return fmt.Errorf("%w: key field is required", ErrInvalidHierarchy)
	}
	for _, name := range h.Key.names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty key field", ErrInvalidHierarchy)
		}
	}
	if !h.KeyMode().IsValid() {
		return fmt.Errorf("%w: unknown key mode %q", ErrInvalidHierarchy, h.Mode)
	}
	switch h.KeyMode() {
	case KeyModeTuple:
		if !h.Key.IsComposite() {
			return fmt.Errorf("%w: tuple mode needs a composite key", ErrInvalidHierarchy)
		}
		if strings.TrimSpace(h.ParentAltField) == "" {
			return fmt.Errorf("%w: tuple mode needs a parent alt field", ErrInvalidHierarchy)
		}
	case KeyModeConcat:
		if h.ParentAltField != "" {
			return fmt.Errorf("%w: parent alt field is only valid in tuple mode", ErrInvalidHierarchy)
		}
	}
	return nil
}
