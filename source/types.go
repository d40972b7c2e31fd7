package source

import "strings"

type TvType string

const (
	Anime      TvType = "Anime"
	AnimeMovie TvType = "AnimeMovie"
	OVA        TvType = "OVA"
	Movie      TvType = "Movie"
	TvSeries   TvType = "TvSeries"
)

// IsMovie reports whether t has a single playable item instead of episodes.
func (t TvType) IsMovie() bool {
	return t == Movie || t == AnimeMovie
}

type ShowStatus string

const (
	Ongoing   ShowStatus = "Ongoing"
	Completed ShowStatus = "Completed"
)

type DubStatus string

const (
	Subbed DubStatus = "Subbed"
	Dubbed DubStatus = "Dubbed"
)

// ParseTvType matches a TvType case-insensitively, falling back to fallback.
func ParseTvType(s string, fallback TvType) TvType {
	for _, t := range []TvType{Anime, AnimeMovie, OVA, Movie, TvSeries} {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t
		}
	}
	return fallback
}
