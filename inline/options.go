package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kurasora/kurasora/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	ResultPicker   func([]*source.SearchResponse) *source.SearchResponse
	EpisodesFilter func([]*source.Episode) ([]*source.Episode, error)
)

type Options struct {
	Out            io.Writer
	Sources        []source.Source
	Json           bool
	Query          string
	ResultPicker   mo.Option[ResultPicker]
	EpisodesFilter mo.Option[EpisodesFilter]
	// Links resolves stream links of every selected episode.
	Links bool
}

// ParseResultPicker builds a picker from first, last, exact (the result named like query) or index.
func ParseResultPicker(kind, query string) (ResultPicker, error) {
	switch kind {
	case "first":
		return func(results []*source.SearchResponse) *source.SearchResponse {
			if len(results) == 0 {
				return nil
			}
			return results[0]
		}, nil
	case "last":
		return func(results []*source.SearchResponse) *source.SearchResponse {
			if len(results) == 0 {
				return nil
			}
			return results[len(results)-1]
		}, nil
	case "exact":
		return func(results []*source.SearchResponse) *source.SearchResponse {
			found, _ := lo.Find(results, func(r *source.SearchResponse) bool {
				return strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(query))
			})
			return found
		}, nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid result selector: %s", kind)
		}
		return func(results []*source.SearchResponse) *source.SearchResponse {
			if len(results) == 0 {
				return nil
			}
			return results[min(idx, uint64(len(results)-1))]
		}, nil
	}
}

// ParseEpisodesFilter understands first, last, all, N, FROM-TO (indices, inclusive) and @substring@.
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "first":
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			return episodes[:min(1, len(episodes))], nil
		}, nil
	case "last":
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[len(episodes)-1:], nil
		}, nil
	case "all":
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			return episodes, nil
		}, nil
	}

	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			return lo.Filter(episodes, func(e *source.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.String()), sub)
			}), nil
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid episode range: %s", description)
		}
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			n := uint64(len(episodes))
			first, last := min(start, n), min(end+1, n)
			if first >= last {
				return []*source.Episode{}, nil
			}
			return episodes[first:last], nil
		}, nil
	}

	idx, err := strconv.ParseUint(description, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid episode filter: %s", description)
	}
	return func(episodes []*source.Episode) ([]*source.Episode, error) {
		if uint64(len(episodes)) <= idx {
			return []*source.Episode{}, nil
		}
		return []*source.Episode{episodes[idx]}, nil
	}, nil
}
