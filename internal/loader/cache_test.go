package loader

import (
	"Jewel3D/internal/renderer"
	"errors"
	"testing"
)

func stubCache(loads *int) *Cache {
	c := NewCache()
	c.SetLoadFunc(func(path string, recalc bool) (*renderer.Node, error) {
		if path == "broken.obj" {
			return nil, errors.New("parse failure")
		}
		*loads++
		return renderer.NewNode(path), nil
	})
	return c
}

func TestCacheAcquireDeduplicates(t *testing.T) {
	loads := 0
	c := stubCache(&loads)

	first, err := c.Acquire("ring.obj")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Acquire("ring.obj")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("Repeated Acquire should return the same template")
	}
	if loads != 1 {
		t.Errorf("Expected a single load, got %d", loads)
	}

	stats := c.GetStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 {
		t.Errorf("Expected 1 hit / 1 miss, got %d / %d", stats.CacheHits, stats.CacheMisses)
	}
	if stats.ActiveAssets != 1 {
		t.Errorf("Expected 1 active asset, got %d", stats.ActiveAssets)
	}
}

func TestCacheReleaseEvictsAtZero(t *testing.T) {
	loads := 0
	c := stubCache(&loads)

	c.Acquire("ring.obj")
	c.Acquire("ring.obj")
	c.Release("ring.obj")

	if c.GetStats().ActiveAssets != 1 {
		t.Error("Entry should survive while references remain")
	}

	c.Release("ring.obj")
	if c.GetStats().ActiveAssets != 0 {
		t.Error("Entry should be evicted at zero references")
	}

	// A fresh Acquire reloads
	c.Acquire("ring.obj")
	if loads != 2 {
		t.Errorf("Expected reload after eviction, got %d loads", loads)
	}
}

func TestCacheReleaseUnknownIsNoop(t *testing.T) {
	c := stubCache(new(int))
	c.Release("never-acquired.obj") // must not panic
}

func TestCacheLoadErrorNotCached(t *testing.T) {
	c := stubCache(new(int))

	if _, err := c.Acquire("broken.obj"); err == nil {
		t.Fatal("Expected load error")
	}
	if c.GetStats().ActiveAssets != 0 {
		t.Error("Failed load must not leave a cache entry")
	}
}
