// Package cache implements the in-process response/fragment cache used by
// the assistant pipeline: a key→value store with per-entry TTL, lazy expiry
// on read, hit counting, and pattern-based invalidation. One instance is
// created at startup and shared by all in-flight requests.
package cache

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/obraflow/obraflow/internal/textnorm"
)

// entry is a single cached value. Expiry is evaluated lazily on read; there
// is no background sweep.
type entry struct {
	value     any
	timestamp time.Time
	ttl       time.Duration
	hits      int64
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.timestamp.Add(e.ttl))
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
}

// Cache is safe for concurrent use. Gets mutate hit counters and perform
// lazy eviction, so all operations take the write lock; entries are small
// and contention at this scale is negligible.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	clock   func() time.Time
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		clock:   time.Now,
	}
}

// Get returns the value stored under key, or false if absent or expired.
// Expired entries are evicted on the spot.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(c.clock()) {
		delete(c.entries, key)
		return nil, false
	}
	e.hits++
	return e.value, true
}

// Set stores value under key with the given TTL, refreshing the timestamp
// and resetting the hit counter if the key already exists.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		value:     value,
		timestamp: c.clock(),
		ttl:       ttl,
	}
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePattern sweeps all keys and deletes those matching re,
// returning the number of entries removed. Safe to run concurrently with
// reads and writes; writers racing the sweep may land entries that survive
// it, which is acceptable snapshot-or-later semantics.
func (c *Cache) InvalidatePattern(re *regexp.Regexp) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if re.MatchString(k) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// InvalidatePrefix deletes every key starting with prefix.
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Stats reports live (possibly including not-yet-evicted expired) entries
// and accumulated hits.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Entries: len(c.entries)}
	for _, e := range c.entries {
		s.Hits += e.hits
	}
	return s
}

// GetTyped returns the value under key asserted to T. A present entry of
// the wrong type counts as a miss.
func GetTyped[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// aiKey builds the whole-answer cache key for a question within a tenant.
// The question is normalized so trivially re-phrased casing/accents hit.
func aiKey(question, tenantID string) string {
	return fmt.Sprintf("ai:%s:%s", tenantID, textnorm.Normalize(question))
}

// GetAIResponse returns a previously cached whole answer for the question
// within the tenant, if still fresh.
func (c *Cache) GetAIResponse(question, tenantID string) (string, bool) {
	return GetTyped[string](c, aiKey(question, tenantID))
}

// SetAIResponse caches a finished answer for the question within the tenant.
func (c *Cache) SetAIResponse(question, tenantID, result string, ttl time.Duration) {
	c.Set(aiKey(question, tenantID), result, ttl)
}

// entityCollections are the key prefixes used for entity sub-query
// memoization, one per searchable collection.
var entityCollections = []string{"projects", "contacts", "wallets", "categories"}

// EntityKey builds the sub-query memoization key for one collection search.
func EntityKey(collection, tenantID, normalizedTerm string) string {
	return fmt.Sprintf("%s:%s:%s", collection, tenantID, normalizedTerm)
}

// InvalidateEntityCache drops every entity sub-query entry for the tenant.
// Entity-mutation collaborators must call this on create/rename/delete of a
// project, contact, wallet, or category to avoid stale matches.
func (c *Cache) InvalidateEntityCache(tenantID string) int {
	n := 0
	for _, col := range entityCollections {
		n += c.InvalidatePrefix(col + ":" + tenantID + ":")
	}
	return n
}
