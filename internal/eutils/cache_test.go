// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	payload := []byte("PMID- 1\nTI  - Cached title\n")
	if err := cache.Put("efetch-abc", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := cache.Get("efetch-abc")
	if !ok {
		t.Fatal("Get: expected hit")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if _, ok := cache.Get("efetch-missing"); ok {
		t.Error("Get: expected miss for unknown key")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if err := cache.Put("efetch-old", []byte("stale")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, ok := cache.Get("efetch-old"); ok {
		t.Error("Get: expected miss after TTL")
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	path := filepath.Join(dir, "efetch-bad.zst")
	if err := os.WriteFile(path, []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get("efetch-bad"); ok {
		t.Error("Get: expected miss for corrupt entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestCacheDefaultTTL(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if cache.ttl != DefaultCacheTTL {
		t.Errorf("ttl = %v, want %v", cache.ttl, DefaultCacheTTL)
	}
}
