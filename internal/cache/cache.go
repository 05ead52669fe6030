// Package cache implements a content-addressed render cache for the site
// build. Pages whose source hash is unchanged are served from the cache
// instead of being re-rendered.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Cache stores rendered page artifacts keyed by source path, validated by
// a content hash.
type Cache struct {
	mu         sync.RWMutex
	dir        string
	index      *Index
	maxEntries int
	stats      Stats
}

// Index tracks all cached entries, persisted as JSON next to the artifacts
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry represents a single cached artifact
type Entry struct {
	Key        string    `json:"key"`
	Hash       string    `json:"hash"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Created    time.Time `json:"created"`
	LastAccess time.Time `json:"last_access"`
}

// Stats tracks cache effectiveness for the build summary
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

const indexVersion = "1"

// DefaultMaxEntries bounds the cache; eviction is LRU beyond it
const DefaultMaxEntries = 512

// New opens (or creates) a cache rooted at dir
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	c := &Cache{
		dir:        dir,
		maxEntries: DefaultMaxEntries,
		index: &Index{
			Version: indexVersion,
			Entries: make(map[string]*Entry),
		},
	}

	if err := c.loadIndex(); err != nil {
		// A corrupt index just means a cold cache
		c.index = &Index{
			Version: indexVersion,
			Entries: make(map[string]*Entry),
		}
	}

	return c, nil
}

// HashContent returns the cache hash for a source blob
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached artifact for key if its hash still matches
func (c *Cache) Get(key, hash string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index.Entries[key]
	if !ok || entry.Hash != hash {
		c.stats.Misses++
		return nil, false
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		c.stats.Misses++
		delete(c.index.Entries, key)
		return nil, false
	}

	entry.LastAccess = time.Now()
	c.stats.Hits++
	return data, true
}

// Put stores an artifact under key with its source hash
func (c *Cache) Put(key, hash string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := HashContent([]byte(key))[:16] + ".html"
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache artifact: %w", err)
	}

	now := time.Now()
	c.index.Entries[key] = &Entry{
		Key:        key,
		Hash:       hash,
		Path:       path,
		Size:       int64(len(data)),
		Created:    now,
		LastAccess: now,
	}

	c.evictLocked()
	return c.saveIndexLocked()
}

// Stats returns a snapshot of the hit counters
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.index.Entries)
}

// Clear removes all entries and artifacts
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.index.Entries {
		os.Remove(entry.Path)
		delete(c.index.Entries, key)
	}
	return c.saveIndexLocked()
}

// evictLocked drops least-recently-used entries beyond the size bound
func (c *Cache) evictLocked() {
	if len(c.index.Entries) <= c.maxEntries {
		return
	}

	entries := make([]*Entry, 0, len(c.index.Entries))
	for _, e := range c.index.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastAccess.Before(entries[j].LastAccess)
	})

	for _, e := range entries[:len(entries)-c.maxEntries] {
		os.Remove(e.Path)
		delete(c.index.Entries, e.Key)
		c.stats.Evictions++
	}
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.dir, "index.json")
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		return err
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return err
	}
	if index.Version != indexVersion {
		return fmt.Errorf("cache index version mismatch: %s", index.Version)
	}
	if index.Entries == nil {
		index.Entries = make(map[string]*Entry)
	}

	c.index = &index
	return nil
}

func (c *Cache) saveIndexLocked() error {
	c.index.Updated = time.Now()
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.indexPath(), data, 0o644)
}
