// Package resultcache persists per-file check results on disk, keyed by
// content hash. Entries are codec-encoded and LZ4-compressed; anything
// unreadable is treated as a miss and overwritten on the next store.
package resultcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ningg/checkstyle/pkg/checks"
)

// lz4Extension marks compressed cache entries.
const lz4Extension = ".lz4"

// shardPrefixLen is the number of leading key characters used as the
// shard directory name, keeping directory fan-out bounded.
const shardPrefixLen = 2

// File and directory permissions for cache entries.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Cache is a sharded on-disk result cache. It is safe for concurrent
// use: keys are content-addressed, so concurrent writers for the same
// key write identical bytes.
type Cache struct {
	codec       Codec
	log         *slog.Logger
	dir         string
	fingerprint string
}

// Option customizes a Cache.
type Option func(*Cache)

// WithCodec selects the entry codec. The default is compact JSON.
func WithCodec(codec Codec) Option {
	return func(c *Cache) { c.codec = codec }
}

// WithLogger sets the logger for corrupt-entry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.log = logger }
}

// New opens a cache rooted at dir. The fingerprint binds every key to
// the current check configuration and tool version, so stale entries
// are never returned after either changes.
func New(dir, fingerprint string, opts ...Option) (*Cache, error) {
	mkdirErr := os.MkdirAll(dir, dirPerm)
	if mkdirErr != nil {
		return nil, fmt.Errorf("create cache dir: %w", mkdirErr)
	}

	cache := &Cache{
		codec:       NewJSONCodec(),
		log:         slog.Default(),
		dir:         dir,
		fingerprint: fingerprint,
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// Key returns the cache key for the given file content.
func (c *Cache) Key(content []byte) string {
	hasher := sha256.New()
	hasher.Write(content)
	hasher.Write([]byte{0})
	hasher.Write([]byte(c.fingerprint))

	return hex.EncodeToString(hasher.Sum(nil))
}

// Lookup returns the cached violations for key. Missing or corrupt
// entries report a miss.
func (c *Cache) Lookup(key string) ([]checks.Violation, bool) {
	if len(key) <= shardPrefixLen {
		return nil, false
	}

	frame, readErr := os.ReadFile(c.entryPath(key))
	if readErr != nil {
		return nil, false
	}

	data, frameErr := decompressFrame(frame)
	if frameErr != nil {
		c.log.Debug("corrupt cache entry", "key", key, "error", frameErr)

		return nil, false
	}

	var violations []checks.Violation

	decodeErr := c.codec.Decode(bytes.NewReader(data), &violations)
	if decodeErr != nil {
		c.log.Debug("corrupt cache entry", "key", key, "error", decodeErr)

		return nil, false
	}

	return violations, true
}

// Store writes the violations for key.
func (c *Cache) Store(key string, violations []checks.Violation) error {
	if len(key) <= shardPrefixLen {
		return fmt.Errorf("store cache entry: key %q too short", key)
	}

	var buf bytes.Buffer

	encodeErr := c.codec.Encode(&buf, violations)
	if encodeErr != nil {
		return fmt.Errorf("store cache entry: %w", encodeErr)
	}

	frame, frameErr := compressFrame(buf.Bytes())
	if frameErr != nil {
		return fmt.Errorf("store cache entry: %w", frameErr)
	}

	path := c.entryPath(key)

	mkdirErr := os.MkdirAll(filepath.Dir(path), dirPerm)
	if mkdirErr != nil {
		return fmt.Errorf("store cache entry: %w", mkdirErr)
	}

	writeErr := os.WriteFile(path, frame, filePerm)
	if writeErr != nil {
		return fmt.Errorf("store cache entry: %w", writeErr)
	}

	return nil
}

func (c *Cache) entryPath(key string) string {
	shard := key[:shardPrefixLen]
	name := key[shardPrefixLen:] + c.codec.Extension() + lz4Extension

	return filepath.Join(c.dir, shard, name)
}
