// Package sorastream aggregates movies and shows: TMDB for metadata,
// several streaming and file sites for links.
package sorastream

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ID   = "sorastream"
	Name = "SoraStream"
)

// ErrNoAPIKey is returned by New when providers.sorastream.tmdb_api_key is empty.
var ErrNoAPIKey = errors.New("tmdb api key is not set")

var mediaPath = regexp.MustCompile(`/(movie|tv)/(\d+)`)

type SoraStream struct {
	apiKey    string
	tmdbURL   string
	rezkaURL  string
	filmxyURL string
	gdbotURL  string
	logger    *logrus.Entry
}

func New() (source.Source, error) {
	apiKey := viper.GetString(key.SoraTMDBKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrNoAPIKey, key.SoraTMDBKey)
	}

	trim := func(k string) string {
		return strings.TrimSuffix(viper.GetString(k), "/")
	}

	return &SoraStream{
		apiKey:    apiKey,
		tmdbURL:   trim(key.SoraTMDBURL),
		rezkaURL:  trim(key.SoraRezkaURL),
		filmxyURL: trim(key.SoraFilmxyURL),
		gdbotURL:  trim(key.SoraGdbotURL),
		logger:    log.Provider(ID),
	}, nil
}

func (s *SoraStream) Name() string    { return Name }
func (s *SoraStream) ID() string      { return ID }
func (s *SoraStream) MainURL() string { return s.tmdbURL }
func (s *SoraStream) Lang() string    { return "en" }

func (s *SoraStream) SupportedTypes() []source.TvType {
	return []source.TvType{source.Movie, source.TvSeries, source.Anime}
}

func (s *SoraStream) MainPage() []source.MainPageRequest {
	return []source.MainPageRequest{
		{Name: "Trending", Data: s.tmdbURL + "/trending/all/day"},
		{Name: "Popular Movies", Data: s.tmdbURL + "/movie/popular"},
		{Name: "Popular TV Shows", Data: s.tmdbURL + "/tv/popular"},
		{Name: "Anime", Data: s.tmdbURL + "/discover/tv?with_keywords=210024"},
	}
}

func (s *SoraStream) MainPageSection(ctx context.Context, request source.MainPageRequest, pageNum int) (*source.HomePageList, error) {
	session := network.NewSession()
	defer session.Close()

	var p page
	params := url.Values{"page": {strconv.Itoa(max(pageNum, 1))}}
	if err := s.tmdbGet(ctx, session, request.Data, params, &p); err != nil {
		return nil, err
	}

	return &source.HomePageList{Name: request.Name, List: s.results(p.Results)}, nil
}

func (s *SoraStream) Search(ctx context.Context, query string) ([]*source.SearchResponse, error) {
	session := network.NewSession()
	defer session.Close()

	var p page
	params := url.Values{"query": {query}, "page": {"1"}, "include_adult": {"false"}}
	if err := s.tmdbGet(ctx, session, s.tmdbURL+"/search/multi", params, &p); err != nil {
		return nil, err
	}

	return s.results(p.Results), nil
}

// Load accepts any URL containing /movie/<id> or /tv/<id>.
func (s *SoraStream) Load(ctx context.Context, link string) (*source.LoadResponse, error) {
	m := mediaPath.FindStringSubmatch(link)
	if m == nil {
		return nil, fmt.Errorf("%w: tmdb id in %s", source.ErrNotFound, link)
	}
	kind, id := m[1], m[2]

	session := network.NewSession()
	defer session.Close()

	var details media
	params := url.Values{"append_to_response": {"external_ids,recommendations"}}
	if err := s.tmdbGet(ctx, session, fmt.Sprintf("%s/%s/%s", s.tmdbURL, kind, id), params, &details); err != nil {
		return nil, err
	}
	details.MediaType = kind

	response := &source.LoadResponse{
		Name:            details.title(),
		URL:             link,
		ApiName:         Name,
		Type:            details.tvType(),
		PosterURL:       poster(details.PosterPath),
		Year:            details.year(),
		Plot:            details.Overview,
		Status:          details.status(),
		TmdbID:          details.ID,
		ImdbID:          details.ExternalIDs.ImdbID,
		Recommendations: s.results(details.Recommendations.Results),
	}
	for _, g := range details.Genres {
		response.Tags = append(response.Tags, g.Name)
	}

	base := LinkData{
		ID:     details.ID,
		ImdbID: details.ExternalIDs.ImdbID,
		Type:   kind,
		Title:  details.title(),
		Year:   details.year(),
	}

	if kind == "movie" {
		data, err := base.Encode()
		if err != nil {
			return nil, err
		}
		response.Episodes = []*source.Episode{{Data: data, Name: response.Name}}
		return response, nil
	}

	episodes, err := s.episodes(ctx, session, details, base)
	if err != nil {
		return nil, err
	}
	response.Episodes = episodes
	return response, nil
}

func (s *SoraStream) episodes(ctx context.Context, session *network.Session, details media, base LinkData) ([]*source.Episode, error) {
	var seasons []int
	for _, se := range details.Seasons {
		if se.SeasonNumber > 0 {
			seasons = append(seasons, se.SeasonNumber)
		}
	}
	if len(seasons) == 0 {
		return nil, nil
	}
	base.LastSeason = seasons[len(seasons)-1]

	var list []*source.Episode
	for _, n := range seasons {
		var details struct {
			Episodes []episode `json:"episodes"`
		}
		if err := s.tmdbGet(ctx, session, fmt.Sprintf("%s/tv/%d/season/%d", s.tmdbURL, base.ID, n), nil, &details); err != nil {
			return nil, fmt.Errorf("season %d: %w", n, err)
		}

		for _, ep := range details.Episodes {
			d := base
			d.Season, d.Episode = ep.SeasonNumber, ep.EpisodeNumber

			data, err := d.Encode()
			if err != nil {
				return nil, err
			}

			list = append(list, &source.Episode{
				Data:      data,
				Name:      ep.Name,
				Season:    ep.SeasonNumber,
				Episode:   ep.EpisodeNumber,
				PosterURL: poster(ep.StillPath),
			})
		}
	}

	return list, nil
}

// LinkData is the Episode.Data of this provider.
type LinkData struct {
	ID         int    `json:"id"`
	ImdbID     string `json:"imdbId,omitempty"`
	Type       string `json:"type"`
	Season     int    `json:"season,omitempty"`
	Episode    int    `json:"episode,omitempty"`
	LastSeason int    `json:"lastSeason,omitempty"`
	Title      string `json:"title"`
	Year       int    `json:"year,omitempty"`
}

func (d LinkData) Encode() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ParseLinkData(data string) (LinkData, error) {
	var d LinkData
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return d, fmt.Errorf("parse link data: %w", err)
	}
	return d, nil
}

// IsMovie reports whether d points at a movie rather than an episode.
func (d LinkData) IsMovie() bool {
	return d.Type == "movie" || d.Season == 0
}
