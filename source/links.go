package source

import (
	"context"
	"sync"
)

// Links is everything LoadLinks emitted for one episode.
type Links struct {
	Links     []ExtractorLink `json:"links"`
	Subtitles []SubtitleFile  `json:"subtitles"`
}

// CollectLinks runs src.LoadLinks and gathers the callback output.
func CollectLinks(ctx context.Context, src Source, data string) (*Links, error) {
	var (
		mu  sync.Mutex
		out = &Links{}
	)

	_, err := src.LoadLinks(ctx, data,
		func(s SubtitleFile) {
			mu.Lock()
			defer mu.Unlock()
			out.Subtitles = append(out.Subtitles, s)
		},
		func(l ExtractorLink) {
			mu.Lock()
			defer mu.Unlock()
			out.Links = append(out.Links, l)
		},
	)

	return out, err
}
