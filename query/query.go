// Package query remembers search queries and suggests previous ones.
package query

import (
	"strings"
	"sync"

	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	mu          sync.Mutex
	suggestions = make(map[string][]*queryRecord)
)

var history = sync.OnceValue(func() *gache.Cache[map[string]*queryRecord] {
	return gache.New[map[string]*queryRecord](&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	})
})

// Remember adds weight to the rank of q.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	records, expired, err := history().Get()
	if expired || err != nil || records == nil {
		records = make(map[string]*queryRecord)
	}

	if record, ok := records[q]; ok {
		record.Rank += weight
	} else {
		records[q] = &queryRecord{Rank: weight, Query: q}
	}

	clear(suggestions)
	return history().Set(records)
}

// Suggest returns the best ranked previous query matching q.
func Suggest(q string) mo.Option[string] {
	if s := SuggestMany(q); len(s) > 0 {
		return mo.Some(s[0])
	}
	return mo.None[string]()
}

// SuggestMany returns previous queries fuzzily matching q, highest rank first.
// Empty when search.show_query_suggestions is off.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	records, ok := suggestions[q]
	if !ok {
		all, expired, err := history().Get()
		if err != nil || expired || all == nil {
			return []string{}
		}

		for _, record := range all {
			if fuzzy.Match(q, record.Query) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *queryRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})

		suggestions[q] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
