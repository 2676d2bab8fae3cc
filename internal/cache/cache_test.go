package cache

import (
	"testing"
	"time"
)

func TestQueryKey_Stable(t *testing.T) {
	a := QueryKey("https://ld.bs.ch/query/", "SELECT ?s WHERE { ?s ?p ?o }")
	b := QueryKey("https://ld.bs.ch/query/", "SELECT ?s WHERE { ?s ?p ?o }")
	if a != b {
		t.Errorf("Expected stable keys, got %q and %q", a, b)
	}

	c := QueryKey("https://ld.bs.ch/query/", "SELECT ?x WHERE { ?x ?p ?o }")
	if a == c {
		t.Error("Expected different queries to yield different keys")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := QueryKey("endpoint", "query")
	if err := c.Set(key, []byte("bindings"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get(key)
	if !found || string(val) != "bindings" {
		t.Errorf("Get = %q, %v; want bindings, true", val, found)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := QueryKey("endpoint", "query")
	if err := c.Set(key, []byte("bindings"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "bindings" {
		t.Errorf("Get = %q, %v; want bindings, true", val, found)
	}

	// Expired entries are misses and get removed.
	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to be a miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(time.Minute, dir, time.Hour)
	key := QueryKey("endpoint", "query")
	if err := first.Set(key, []byte("bindings"), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A fresh layered cache over the same directory sees the disk entry.
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := second.Get(key)
	if !found || string(val) != "bindings" {
		t.Errorf("Get = %q, %v; want bindings, true", val, found)
	}
}
