package renderer

import "testing"

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}
	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
	if len(cache.locations) != 0 {
		t.Error("A fresh cache should be empty")
	}
}

func TestUniformCacheStoresLocations(t *testing.T) {
	cache := NewUniformCache(0)

	cache.locations["envMapIntensity"] = 3
	cache.locations["viewProjection"] = 7

	if loc := cache.locations["envMapIntensity"]; loc != 3 {
		t.Errorf("Expected cached location 3, got %d", loc)
	}
	if _, ok := cache.locations["model"]; ok {
		t.Error("Unqueried uniform should not be cached")
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["baseColor"] = 2
	cache.locations["roughness"] = 4

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache for shader recompilation")
	}
}
