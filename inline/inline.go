// Package inline is the non-interactive mode: search, pick, load, filter and
// optionally resolve links, printing plain lines or JSON.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/kurasora/kurasora/internal/cache"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/query"
	"github.com/kurasora/kurasora/source"
	"github.com/spf13/viper"
)

var ErrNoSources = errors.New("no sources selected")

// Search queries src through the response cache and trims to search.limit.
func Search(ctx context.Context, src source.Source, q string) ([]*source.SearchResponse, error) {
	results, err := cache.Load(cache.Key("search", src.ID(), q), func() ([]*source.SearchResponse, error) {
		return src.Search(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	if limit := viper.GetInt(key.SearchLimit); limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Load fetches url from src through the response cache.
func Load(ctx context.Context, src source.Source, url string) (*source.LoadResponse, error) {
	return cache.Load(cache.Key("load", src.ID(), url), func() (*source.LoadResponse, error) {
		return src.Load(ctx, url)
	})
}

// Run searches every source concurrently, in source order.
func Run(ctx context.Context, options *Options) error {
	if len(options.Sources) == 0 {
		return ErrNoSources
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if err := query.Remember(options.Query, 1); err != nil {
		log.Warnf("remember query: %s", err)
	}

	var (
		wg       sync.WaitGroup
		found    = make([][]*source.SearchResponse, len(options.Sources))
		failures = make([]error, len(options.Sources))
	)
	for i, src := range options.Sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			found[i], failures[i] = Search(ctx, src, options.Query)
		}(i, src)
	}
	wg.Wait()

	var (
		hits    []*source.SearchResponse
		sources = make(map[*source.SearchResponse]source.Source)
	)
	for i, src := range options.Sources {
		if failures[i] != nil {
			return fmt.Errorf("search failed for %s: %w", src.Name(), failures[i])
		}
		for _, hit := range found[i] {
			hits = append(hits, hit)
			sources[hit] = src
		}
	}

	selected := hits
	if options.ResultPicker.IsPresent() {
		selected = nil
		if choice := options.ResultPicker.MustGet()(hits); choice != nil {
			selected = []*source.SearchResponse{choice}
		}
	}

	results := make([]*Result, 0, len(selected))
	for _, hit := range selected {
		result, err := prepare(ctx, sources[hit], hit, options)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	if options.Json {
		return writeJson(options.Out, options.Query, results)
	}

	for _, result := range results {
		for _, ep := range result.Episodes {
			if ep.Links == nil {
				_, _ = fmt.Fprintln(options.Out, ep.Episode.Data)
				continue
			}
			for _, link := range ep.Links.Links {
				_, _ = fmt.Fprintln(options.Out, link.URL)
			}
		}
	}

	return nil
}

func prepare(ctx context.Context, src source.Source, hit *source.SearchResponse, options *Options) (*Result, error) {
	loaded, err := Load(ctx, src, hit.URL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", hit.URL, err)
	}

	episodes := loaded.Episodes
	if options.EpisodesFilter.IsPresent() {
		if episodes, err = options.EpisodesFilter.MustGet()(episodes); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Source: src.ID(),
		Search: hit,
		Load:   loaded,
	}

	for _, ep := range episodes {
		entry := &Episode{Episode: ep}
		if options.Links {
			links, err := source.CollectLinks(ctx, src, ep.Data)
			if err != nil {
				log.Warnf("links of %s: %s", ep, err)
			}
			entry.Links = links
		}
		result.Episodes = append(result.Episodes, entry)
	}

	return result, nil
}
