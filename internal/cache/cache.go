// Package cache keeps provider search and load responses on disk for cache.ttl_hours.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/where"
	"github.com/spf13/viper"
)

// TTL is how long an entry stays fresh. Zero or less disables the cache.
func TTL() time.Duration {
	return time.Duration(viper.GetInt(key.CacheTTLHours)) * time.Hour
}

// Key derives an entry name from its parts, e.g. Key("search", "kuramanime", "one piece").
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes a fresh entry into target and reports whether it did.
func Read(name string, target any) bool {
	ttl := TTL()
	if ttl <= 0 {
		return false
	}

	path := filepath.Join(where.Responses(), name)
	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data through a temp file and a rename.
func Write(name string, data any) error {
	if TTL() <= 0 {
		return nil
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	path := filepath.Join(where.Responses(), name)
	tmp := path + ".tmp"

	if err := filesystem.API().WriteFile(tmp, encoded, os.ModePerm); err != nil {
		return err
	}
	return filesystem.API().Rename(tmp, path)
}

// Load returns the cached value under name or calls fetch and caches its result.
func Load[T any](name string, fetch func() (T, error)) (T, error) {
	var cached T
	if Read(name, &cached) {
		log.Debugf("cache hit %s", name)
		return cached, nil
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if err := Write(name, value); err != nil {
		log.Warnf("cache write %s: %s", name, err)
	}
	return value, nil
}

// Clear removes every entry.
func Clear() error {
	return filesystem.API().RemoveAll(where.Responses())
}

// CollectGarbage removes expired entries.
func CollectGarbage() {
	ttl := TTL()
	dir := where.Responses()

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ttl <= 0 || time.Since(entry.ModTime()) > ttl {
			_ = filesystem.API().Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
