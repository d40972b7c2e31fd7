// Package source defines the normalized schema providers translate site pages into,
// and the Source interface every provider implements.
package source

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a page lacks an element a provider requires.
var ErrNotFound = errors.New("not found")

// SubtitleFunc receives subtitles as a provider discovers them.
type SubtitleFunc func(SubtitleFile)

// LinkFunc receives stream links as a provider discovers them.
type LinkFunc func(ExtractorLink)

// Source is a content provider.
type Source interface {
	// Name is the display name, e.g. "Kuramanime".
	Name() string

	// ID is the stable lowercase identifier used in config and on the command line.
	ID() string

	MainURL() string

	// Lang is the ISO 639-1 language of the catalog.
	Lang() string

	SupportedTypes() []TvType

	// MainPage lists the home page sections the provider offers.
	MainPage() []MainPageRequest

	// MainPageSection fetches one page of a home page section.
	MainPageSection(ctx context.Context, request MainPageRequest, page int) (*HomePageList, error)

	Search(ctx context.Context, query string) ([]*SearchResponse, error)

	// Load fetches full metadata for a URL returned by Search.
	Load(ctx context.Context, url string) (*LoadResponse, error)

	// LoadLinks resolves an Episode.Data value into stream links.
	// Links and subtitles are delivered through the callbacks, one call at a time.
	// It reports whether at least one link was emitted.
	LoadLinks(ctx context.Context, data string, subtitles SubtitleFunc, links LinkFunc) (bool, error)
}
