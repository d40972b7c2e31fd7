package sorastream

import (
	"context"
	"sync"

	"github.com/kurasora/kurasora/source"
)

// LoadLinks runs every site invoker in parallel. A failing site is logged and skipped.
func (s *SoraStream) LoadLinks(ctx context.Context, data string, subtitles source.SubtitleFunc, links source.LinkFunc) (bool, error) {
	d, err := ParseLinkData(data)
	if err != nil {
		return false, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		emitted bool
	)

	onLink := func(l source.ExtractorLink) {
		mu.Lock()
		defer mu.Unlock()
		emitted = true
		links(l)
	}
	onSubtitle := func(sub source.SubtitleFile) {
		mu.Lock()
		defer mu.Unlock()
		subtitles(sub)
	}

	invokers := map[string]func() error{
		rezkaName: func() error {
			return s.invokeRezka(ctx, d, onSubtitle, onLink)
		},
		filmxyName: func() error {
			return s.invokeFilmxy(ctx, d, onLink)
		},
	}

	for name, invoke := range invokers {
		wg.Add(1)
		go func(name string, invoke func() error) {
			defer wg.Done()
			if err := invoke(); err != nil {
				s.logger.WithError(err).Warnf("%s failed for %q", name, d.Title)
			}
		}(name, invoke)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return emitted, err
	}
	return emitted, nil
}
