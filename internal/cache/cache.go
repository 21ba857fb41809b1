// Package cache maps a content digest of input source text to its
// previously built tree, so repeated conversions of identical input
// skip the external parser.
package cache

import (
	"crypto/sha256"
	"sync"

	"github.com/cfix-labs/cfix/internal/ast"
)

// Digest is the content address of one input text.
type Digest [sha256.Size]byte

// Key computes the digest of source text. Collisions are accepted as
// hits; the digest is cryptographic strength, not a correctness
// guarantee against adversarial input.
func Key(source string) Digest {
	return sha256.Sum256([]byte(source))
}

// Cache stores parsed trees keyed by content digest. Trees published
// to the cache are immutable: callers must clone before transforming,
// otherwise later lookups observe partially rewritten trees. The map
// is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[Digest]*ast.TranslationUnit
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Digest]*ast.TranslationUnit)}
}

// GetOrParse returns the cached tree for source, or invokes parse and
// stores its result. Only one writer publishes per key; a racing
// parse of the same source keeps the first published tree.
func (c *Cache) GetOrParse(source string, parse func(string) (*ast.TranslationUnit, error)) (*ast.TranslationUnit, error) {
	key := Key(source)

	c.mu.RLock()
	unit, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return unit, nil
	}

	unit, err := parse(source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	c.entries[key] = unit
	return unit, nil
}

// Get returns the cached tree for source, if any.
func (c *Cache) Get(source string) (*ast.TranslationUnit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	unit, ok := c.entries[Key(source)]
	return unit, ok
}

// Len returns the number of cached trees.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate drops every cached tree.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Digest]*ast.TranslationUnit)
}
