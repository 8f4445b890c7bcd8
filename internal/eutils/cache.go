// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

// DefaultCacheTTL bounds how long a cached efetch payload is reused.
const DefaultCacheTTL = 24 * time.Hour

const appName = "paperscreen"

// Cache stores raw endpoint payloads zstd-compressed on disk, one file per
// key, invalidated by file age.
type Cache struct {
	dir string
	ttl time.Duration

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCache opens the cache directory, creating it if needed. An empty dir
// selects the per-user cache location; a zero ttl selects DefaultCacheTTL.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		d, err := xdg.CacheFile(filepath.Join(appName, "efetch"))
		if err != nil {
			return nil, fmt.Errorf("locating cache directory: %w", err)
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("initializing compressor: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("initializing decompressor: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, encoder: encoder, decoder: decoder}, nil
}

// Get returns the cached payload for key. Stale or unreadable entries count
// as misses.
func (c *Cache) Get(key string) ([]byte, bool) {
	path := c.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	data, err := c.decoder.DecodeAll(compressed, nil)
	if err != nil {
		log.WithField("path", path).WithError(err).Debug("discarding corrupt cache entry")
		os.Remove(path)
		return nil, false
	}
	return data, true
}

// Put stores a payload under key. The entry is written to a temporary name
// and renamed so readers never see a partial file.
func (c *Cache) Put(key string, data []byte) error {
	path := c.path(key)
	tmp := path + ".wip"
	if err := os.WriteFile(tmp, c.encoder.EncodeAll(data, nil), 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("committing cache entry: %w", err)
	}
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".zst")
}
