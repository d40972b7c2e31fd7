// Package jikan looks up MyAnimeList ids through the Jikan REST API.
package jikan

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/network"
	cache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// BaseURL of the Jikan v4 API.
var BaseURL = "https://api.jikan.moe/v4"

// ErrNotFound is returned when the search yields no anime.
var ErrNotFound = errors.New("jikan: anime not found")

const searchLimit = 5

var memo = cache.New(5*time.Minute, 10*time.Minute)

type title struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Anime is the subset of a Jikan anime entry needed to pick a match.
type Anime struct {
	MalID        int     `json:"mal_id"`
	Title        string  `json:"title"`
	TitleEnglish string  `json:"title_english"`
	Titles       []title `json:"titles"`
	Year         int     `json:"year"`
}

// Names returns every known title of a.
func (a *Anime) Names() []string {
	names := []string{a.Title, a.TitleEnglish}
	for _, t := range a.Titles {
		names = append(names, t.Title)
	}
	return lo.Uniq(lo.Compact(lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	})))
}

type searchResponse struct {
	Data []*Anime `json:"data"`
}

// FindMalID searches Jikan for name and returns the MAL id of the closest title.
// year and kind ("tv", "movie", "ova", ...) narrow the search when set.
func FindMalID(ctx context.Context, name string, year int, kind string) (int, error) {
	memoKey := fmt.Sprintf("%s|%d|%s", normalize(name), year, kind)
	if id, ok := memo.Get(memoKey); ok {
		return id.(int), nil
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("limit", strconv.Itoa(searchLimit))
	if year > 0 {
		params.Set("start_date", strconv.Itoa(year))
	}
	if kind != "" {
		params.Set("type", strings.ToLower(kind))
	}

	session := network.NewSession()
	defer session.Close()

	var response searchResponse
	if err := session.JSON(ctx, BaseURL+"/anime?"+params.Encode(), &response); err != nil {
		return 0, err
	}

	closest, ok := Closest(name, response.Data)
	if !ok {
		return 0, ErrNotFound
	}

	log.Infof("jikan: %q matched mal id %d", name, closest.MalID)
	memo.Set(memoKey, closest.MalID, cache.DefaultExpiration)
	return closest.MalID, nil
}

// Closest picks the entry with the smallest Levenshtein distance to name.
func Closest(name string, animes []*Anime) (*Anime, bool) {
	animes = lo.Filter(animes, func(a *Anime, _ int) bool {
		return a != nil && a.MalID > 0 && len(a.Names()) > 0
	})
	if len(animes) == 0 {
		return nil, false
	}

	name = normalize(name)
	distance := func(a *Anime) int {
		return lo.Min(lo.Map(a.Names(), func(n string, _ int) int {
			return levenshtein.Distance(name, normalize(n))
		}))
	}

	return lo.MinBy(animes, func(a, b *Anime) bool {
		return distance(a) < distance(b)
	}), true
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
