package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a tag drawn from a catalog's closed Taxonomy.
type Category string

// None is the "nothing selected" sentinel. It is never a member of a Taxonomy.
const None Category = ""

// String returns the raw tag value.
func (c Category) String() string { return string(c) }

var (
	// ErrEmptyCategory is returned when a taxonomy is built with a blank tag.
	ErrEmptyCategory = errors.New("catalog: empty category")
	// ErrDuplicateCategory is returned when a taxonomy lists the same tag twice.
	ErrDuplicateCategory = errors.New("catalog: duplicate category")
	// ErrUnknownCategory is returned when a value is outside the taxonomy.
	ErrUnknownCategory = errors.New("catalog: unknown category")
)

// Taxonomy is an ordered, closed set of categories with a designated default.
// The zero value has no members and defaults to None.
type Taxonomy struct {
	values []Category
	index  map[Category]int
	def    Category
}

// NewTaxonomy builds a taxonomy from values in display order. def must be None
// or one of values.
func NewTaxonomy(def Category, values ...Category) (Taxonomy, error) {
	t := Taxonomy{
		values: make([]Category, 0, len(values)),
		index:  make(map[Category]int, len(values)),
		def:    def,
	}
	for _, v := range values {
		if strings.TrimSpace(string(v)) == "" {
			return Taxonomy{}, ErrEmptyCategory
		}
		if _, dup := t.index[v]; dup {
			return Taxonomy{}, fmt.Errorf("%w: %q", ErrDuplicateCategory, v)
		}
		t.index[v] = len(t.values)
		t.values = append(t.values, v)
	}
	if def != None {
		if _, ok := t.index[def]; !ok {
			return Taxonomy{}, fmt.Errorf("%w: default %q", ErrUnknownCategory, def)
		}
	}
	return t, nil
}

// Default returns the category used when no valid selection is present.
func (t Taxonomy) Default() Category { return t.def }

// Values returns the categories in display order.
func (t Taxonomy) Values() []Category {
	out := make([]Category, len(t.values))
	copy(out, t.values)
	return out
}

// Len reports the number of categories.
func (t Taxonomy) Len() int { return len(t.values) }

// Contains reports whether c is a member. None is never a member.
func (t Taxonomy) Contains(c Category) bool {
	_, ok := t.index[c]
	return ok
}

// Parse maps untrusted input onto a member of the taxonomy.
func (t Taxonomy) Parse(raw string) (Category, bool) {
	c := Category(strings.TrimSpace(raw))
	if !t.Contains(c) {
		return None, false
	}
	return c, true
}
