package source

// SearchResponse is one search or home page hit.
type SearchResponse struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ApiName     string    `json:"apiName"`
	Type        TvType    `json:"type"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	Year        int       `json:"year,omitempty"`
	SubEpisodes int       `json:"subEpisodes,omitempty"`
	DubStatus   DubStatus `json:"dubStatus,omitempty"`
}

func (s *SearchResponse) String() string {
	return s.Name
}

// Episode is a playable item. Data is what LoadLinks expects.
type Episode struct {
	Data      string `json:"data"`
	Name      string `json:"name,omitempty"`
	Season    int    `json:"season,omitempty"`
	Episode   int    `json:"episode,omitempty"`
	PosterURL string `json:"posterUrl,omitempty"`
}

func (e *Episode) String() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Data
}

// LoadResponse is the full metadata of a title.
type LoadResponse struct {
	Name            string            `json:"name"`
	URL             string            `json:"url"`
	ApiName         string            `json:"apiName"`
	Type            TvType            `json:"type"`
	PosterURL       string            `json:"posterUrl,omitempty"`
	Year            int               `json:"year,omitempty"`
	Plot            string            `json:"plot,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Status          ShowStatus        `json:"status,omitempty"`
	Episodes        []*Episode        `json:"episodes"`
	Recommendations []*SearchResponse `json:"recommendations,omitempty"`
	MalID           int               `json:"malId,omitempty"`
	AniListID       int               `json:"anilistId,omitempty"`
	TmdbID          int               `json:"tmdbId,omitempty"`
	ImdbID          string            `json:"imdbId,omitempty"`
}

// ExtractorLink is a resolved stream.
type ExtractorLink struct {
	Source  string            `json:"source"`
	Name    string            `json:"name"`
	URL     string            `json:"url"`
	Referer string            `json:"referer,omitempty"`
	Quality Quality           `json:"quality"`
	IsM3u8  bool              `json:"isM3u8"`
	Headers map[string]string `json:"headers,omitempty"`
}

type SubtitleFile struct {
	Lang string `json:"lang"`
	URL  string `json:"url"`
}

// MainPageRequest names a home page section. Data is provider specific, usually a URL prefix.
type MainPageRequest struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

type HomePageList struct {
	Name string            `json:"name"`
	List []*SearchResponse `json:"list"`
}
