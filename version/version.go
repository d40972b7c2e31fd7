// Package version checks GitHub releases for a newer kurasora.
package version

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/constant"
	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/util"
	"github.com/kurasora/kurasora/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the latest release endpoint.
var ReleasesURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

var versionCacher = sync.OnceValue(func() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   time.Hour * 24 * 2,
		FileSystem: &filesystem.GacheFs{},
	})
})

// Latest returns the newest released version without the "v" prefix.
// The answer is cached for two days to stay clear of the GitHub rate limit.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := versionCacher().Get()
	if err != nil {
		return "", err
	}
	if !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", &network.StatusError{Code: resp.StatusCode, URL: ReleasesURL}
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest == "" {
		return "", errors.New("empty tag name")
	}

	_ = versionCacher().Set(latest)
	return latest, nil
}
