package loader

import (
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"
	"sync"

	"go.uber.org/zap"
)

// CacheStats provides debugging and profiling information
type CacheStats struct {
	TotalLoads   int
	CacheHits    int
	CacheMisses  int
	ActiveAssets int
}

type cacheEntry struct {
	root     *renderer.Node
	refCount int
}

// Cache is a keyed, reference-counted store of loaded asset templates, so
// repeated materialization of the same model never reloads the file. Every
// Acquire must be paired with a Release; an entry is evicted when its count
// reaches zero.
type Cache struct {
	assets map[string]*cacheEntry
	mu     sync.RWMutex // Thread-safe operations
	stats  CacheStats

	// loadFunc is swappable for tests; defaults to LoadAsset.
	loadFunc func(string, bool) (*renderer.Node, error)
}

// NewCache creates an empty asset cache.
func NewCache() *Cache {
	return &Cache{
		assets:   make(map[string]*cacheEntry),
		loadFunc: LoadAsset,
	}
}

// SetLoadFunc swaps the loader, for tests that do not want disk access.
func (c *Cache) SetLoadFunc(fn func(string, bool) (*renderer.Node, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadFunc = fn
}

// Acquire returns the cached template for a path, loading it on first use.
// Increments the reference count.
func (c *Cache) Acquire(path string) (*renderer.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.assets[path]; exists {
		entry.refCount++
		c.stats.CacheHits++
		logger.Log.Debug("Asset cache hit",
			zap.String("path", path),
			zap.Int("refCount", entry.refCount))
		return entry.root, nil
	}

	c.stats.CacheMisses++
	root, err := c.loadFunc(path, false)
	if err != nil {
		return nil, err
	}

	c.assets[path] = &cacheEntry{root: root, refCount: 1}
	c.stats.TotalLoads++

	logger.Log.Info("Asset loaded and cached",
		zap.String("path", path),
		zap.Int("subMeshes", len(root.Children)))
	return root, nil
}

// Release decrements the reference count and evicts the template when it
// reaches zero. Releasing an unknown path is a safe no-op.
func (c *Cache) Release(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.assets[path]
	if !exists {
		logger.Log.Warn("Attempted to release unknown asset", zap.String("path", path))
		return
	}

	entry.refCount--
	logger.Log.Debug("Asset reference released",
		zap.String("path", path),
		zap.Int("refCount", entry.refCount))

	if entry.refCount <= 0 {
		delete(c.assets, path)
		logger.Log.Info("Asset evicted from cache", zap.String("path", path))
	}
}

// GetStats returns current cache statistics
func (c *Cache) GetStats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.ActiveAssets = len(c.assets)
	return stats
}

// Clear drops every cached asset (for cleanup/testing)
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.assets = make(map[string]*cacheEntry)
	logger.Log.Info("Asset cache cleared")
}
