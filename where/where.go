// Package where resolves the directories and files kurasora keeps on disk.
// Directory getters create the directory before returning it.
package where

import (
	"os"
	"path/filepath"

	"github.com/kurasora/kurasora/constant"
	"github.com/kurasora/kurasora/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "KURASORA_CONFIG_PATH"

func dir(elem ...string) string {
	path := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the directory holding kurasora.toml and the logs.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return dir(custom)
	}
	return dir(lo.Must(os.UserConfigDir()), constant.Kurasora)
}

// Cache is the directory for cached provider responses and id lookups.
// It falls back to ./cache when the platform has no user cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return dir(".", "cache", constant.Kurasora)
	}
	return dir(base, constant.Kurasora)
}

func Responses() string { return dir(Cache(), "responses") }

func Logs() string { return dir(Config(), "logs") }

// Queries is the search history file used for suggestions.
func Queries() string { return filepath.Join(Cache(), "queries.json") }

// AnilistIDs caches MyAnimeList to Anilist id mappings.
func AnilistIDs() string { return filepath.Join(Cache(), "anilist_ids.json") }

// Temp is removed on every start.
func Temp() string { return dir(os.TempDir(), constant.Kurasora) }
