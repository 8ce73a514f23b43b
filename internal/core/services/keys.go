package services

import (
	"fmt"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

// keyResolver derives own-key and parent-key tokens from records.
type keyResolver struct {
	primary   string
	alternate string
	parent    string
	parentAlt string
	mode      domain.KeyMode
	required  []string
}

// newKeyResolver validates the hierarchy and prepares token construction.
func newKeyResolver(h domain.Hierarchy) (*keyResolver, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &keyResolver{
		primary:   h.Key.Primary(),
		alternate: h.Key.Alternate(),
		parent:    h.ParentField,
		parentAlt: h.ParentAltField,
		mode:      h.KeyMode(),
		required:  h.RequiredFields(),
	}, nil
}

// check returns ErrMissingField naming the first absent required field.
func (k *keyResolver) check(r domain.Record) error {
	for _, name := range k.required {
		if _, ok := r.Fields[name]; !ok {
			return fmt.Errorf("%w: %q", domain.ErrMissingField, name)
		}
	}
	return nil
}

// own returns the record's own-key token.
func (k *keyResolver) own(r domain.Record) domain.Token {
	first := r.Fields[k.primary]
	if k.alternate == "" {
		return domain.SingleToken(first)
	}
	second := r.Fields[k.alternate]
	if k.mode == domain.KeyModeTuple {
		return domain.PairToken(first, second)
	}
	return domain.TextToken(first.Text() + second.Text())
}

// parentOf returns the record's declared parent-key token, read as stored.
func (k *keyResolver) parentOf(r domain.Record) domain.Token {
	if k.mode == domain.KeyModeTuple {
		return domain.PairToken(r.Fields[k.parent], r.Fields[k.parentAlt])
	}
	return domain.SingleToken(r.Fields[k.parent])
}
