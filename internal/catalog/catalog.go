// Package catalog is the server definition store. Definitions are loaded once from
// a directory or a file and are read-only afterwards.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tansive/mcpconf/internal/definition"
)

// Store supplies server definitions by name.
type Store interface {
	// Get returns the named definition or an error matching ErrNotFound.
	Get(name string) (*definition.ServerDefinition, error)
	// List returns every definition sorted by name.
	List() []*definition.ServerDefinition
}

// Catalog is an in-memory Store.
type Catalog struct {
	source string
	defs   map[string]*definition.ServerDefinition
}

var _ Store = (*Catalog)(nil)

// NewStore builds a catalog from already parsed definitions. Duplicate names are an error.
func NewStore(defs ...*definition.ServerDefinition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*definition.ServerDefinition, len(defs))}
	for _, def := range defs {
		if err := c.add(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(def *definition.ServerDefinition) error {
	if def == nil {
		return ErrInvalidCatalog.Msg("nil server definition")
	}
	if _, ok := c.defs[def.Name]; ok {
		return ErrDuplicate.Msg(fmt.Sprintf("server definition %q is defined more than once", def.Name))
	}
	c.defs[def.Name] = def
	return nil
}

// Get returns the definition registered under name.
func (c *Catalog) Get(name string) (*definition.ServerDefinition, error) {
	def, ok := c.defs[strings.TrimSpace(name)]
	if !ok {
		return nil, ErrNotFound.Msg(fmt.Sprintf("server configuration for %s not found", name))
	}
	return def, nil
}

// List returns every definition sorted by name.
func (c *Catalog) List() []*definition.ServerDefinition {
	defs := make([]*definition.ServerDefinition, 0, len(c.defs))
	for _, name := range c.Names() {
		defs = append(defs, c.defs[name])
	}
	return defs
}

// Names returns the sorted definition names.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Source is the path the catalog was loaded from, empty for in-memory catalogs.
func (c *Catalog) Source() string {
	return c.source
}
