package card

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog maps card names to their definitions.
type Catalog struct {
	defs map[string]*Definition
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]*Definition)}
}

// Key normalizes a card name for lookups.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add registers a definition. Names are unique, ignoring case.
func (c *Catalog) Add(def *Definition) error {
	key := Key(def.Name)
	if key == "" {
		return fmt.Errorf("card definition without a name")
	}
	if _, exists := c.defs[key]; exists {
		return fmt.Errorf("duplicate card definition: %s", def.Name)
	}
	c.defs[key] = def
	return nil
}

// Get looks up a definition by name.
func (c *Catalog) Get(name string) (*Definition, bool) {
	def, ok := c.defs[Key(name)]
	return def, ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Names returns the normalized names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
