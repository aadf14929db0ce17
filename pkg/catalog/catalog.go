// Package catalog keeps the in-process registry of named relations.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bwaklog/codd/pkg/relation"
)

// Registry errors
var (
	ErrRelationExists   = errors.New("catalog: relation already exists")
	ErrRelationNotFound = errors.New("catalog: relation does not exist")
)

// Catalog maps relation names to relations for the lifetime of the
// process. The lock guards the name table only; relations themselves are
// single-threaded property of their callers.
type Catalog struct {
	mu        sync.RWMutex
	relations map[string]*relation.Relation
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		relations: make(map[string]*relation.Relation),
	}
}

// Create registers a relation under its own name.
func (c *Catalog) Create(rel *relation.Relation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := rel.Name()
	if _, exists := c.relations[name]; exists {
		return fmt.Errorf("%w: %q", ErrRelationExists, name)
	}
	c.relations[name] = rel
	return nil
}

// Get returns the relation registered under name.
func (c *Catalog) Get(name string) (*relation.Relation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rel, exists := c.relations[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrRelationNotFound, name)
	}
	return rel, nil
}

// Drop removes the relation registered under name.
func (c *Catalog) Drop(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.relations[name]; !exists {
		return fmt.Errorf("%w: %q", ErrRelationNotFound, name)
	}
	delete(c.relations, name)
	return nil
}

// List returns all registered names in sorted order.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.relations))
	for name := range c.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered relations.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.relations)
}
