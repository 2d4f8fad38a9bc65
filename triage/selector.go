package triage

import (
	"fmt"

	"github.com/tbxark/intakeflow/catalog"
	"github.com/tbxark/intakeflow/form"
)

// Selector holds the single symptom chosen in the triage step. Choosing again
// replaces the previous choice. Not safe for concurrent use.
type Selector struct {
	catalog  *catalog.Catalog
	selected string
}

func NewSelector(c *catalog.Catalog) *Selector {
	return &Selector{catalog: c}
}

// Select sets the current choice. Keys outside the catalog are rejected and
// leave the previous choice in place.
func (s *Selector) Select(key string) error {
	if _, ok := s.catalog.Lookup(key); !ok {
		return fmt.Errorf("%q: %w", key, catalog.ErrUnknownKey)
	}
	s.selected = key
	return nil
}

func (s *Selector) Selected() string {
	return s.selected
}

// CarryOver classifies the current choice. It reports false when nothing is
// selected.
func (s *Selector) CarryOver() (form.CarryOver, bool) {
	return CarryOverFor(s.selected)
}
