package sorastream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/source"
)

const imageURL = "https://image.tmdb.org/t/p/w500"

type genre struct {
	Name string `json:"name"`
}

type season struct {
	SeasonNumber int `json:"season_number"`
	EpisodeCount int `json:"episode_count"`
}

type episode struct {
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	StillPath     string `json:"still_path"`
}

type media struct {
	ID           int      `json:"id"`
	MediaType    string   `json:"media_type"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	PosterPath   string   `json:"poster_path"`
	ReleaseDate  string   `json:"release_date"`
	FirstAirDate string   `json:"first_air_date"`
	Overview     string   `json:"overview"`
	Status       string   `json:"status"`
	Genres       []genre  `json:"genres"`
	Seasons      []season `json:"seasons"`
	ExternalIDs  struct {
		ImdbID string `json:"imdb_id"`
	} `json:"external_ids"`
	Recommendations struct {
		Results []*media `json:"results"`
	} `json:"recommendations"`
}

type page struct {
	Results []*media `json:"results"`
}

func (m *media) kind() string {
	switch m.MediaType {
	case "movie", "tv":
		return m.MediaType
	case "":
		if m.Title != "" {
			return "movie"
		}
		return "tv"
	default:
		return m.MediaType
	}
}

func (m *media) title() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

func (m *media) year() int {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	year, _ := strconv.Atoi(date[:4])
	return year
}

func (m *media) tvType() source.TvType {
	if m.kind() == "movie" {
		return source.Movie
	}
	return source.TvSeries
}

func (m *media) status() source.ShowStatus {
	switch m.Status {
	case "Returning Series", "In Production", "Planned":
		return source.Ongoing
	default:
		return source.Completed
	}
}

func poster(path string) string {
	if path == "" {
		return ""
	}
	return imageURL + path
}

// tmdbGet fetches a TMDB endpoint with the api key and extra params.
func (s *SoraStream) tmdbGet(ctx context.Context, session *network.Session, endpoint string, params url.Values, target any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.apiKey)

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return session.JSON(ctx, endpoint+sep+params.Encode(), target)
}

func (s *SoraStream) toSearchResponse(m *media) *source.SearchResponse {
	return &source.SearchResponse{
		Name:      m.title(),
		URL:       fmt.Sprintf("%s/%s/%d", s.tmdbURL, m.kind(), m.ID),
		ApiName:   Name,
		Type:      m.tvType(),
		PosterURL: poster(m.PosterPath),
		Year:      m.year(),
	}
}

func (s *SoraStream) results(list []*media) []*source.SearchResponse {
	var out []*source.SearchResponse
	for _, m := range list {
		if m == nil || m.ID == 0 {
			continue
		}
		if kind := m.kind(); kind != "movie" && kind != "tv" {
			continue
		}
		out = append(out, s.toSearchResponse(m))
	}
	return out
}
