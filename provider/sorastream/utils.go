package sorastream

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/util"
)

var (
	titleJunk    = regexp.MustCompile(`[!%:]|( &)`)
	nonAlnum     = regexp.MustCompile(`[^a-zA-Z0-9]`)
	resolution   = regexp.MustCompile(`[0-9]{3,4}p`)
	bracketEntry = regexp.MustCompile(`\[(?P<label>[^\]]+)\](?P<value>[^\[]+)`)
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FilterIframe reports whether a player or download label belongs to the wanted season,
// or for movies (season 0) to the wanted year. Download mirrors are never accepted.
// Single-season shows also accept plain resolution labels.
func FilterIframe(label string, season, lastSeason, year int) bool {
	if containsFold(label, "Download") {
		return false
	}

	if season == 0 {
		return year == 0 || strings.Contains(label, strconv.Itoa(year))
	}

	pattern := fmt.Sprintf(`(?i)(S0?%d)|(Season\s0?%d)`, season, season)
	if lastSeason == 1 {
		pattern += `|([0-9]{3,4}p)`
	}
	return regexp.MustCompile(pattern).MatchString(label)
}

// FilterMedia reports whether a search entry matches title and year, and for shows
// whether it is a pack covering seasons 1 to season.
func FilterMedia(label, title string, year, season int) bool {
	if !containsFold(label, title) {
		return false
	}
	if year > 0 && !strings.Contains(label, strconv.Itoa(year)) {
		return false
	}
	if season == 0 {
		return true
	}

	pattern := `(?i)(Season\s0?1)|(S0?1)`
	if season > 1 {
		pattern = fmt.Sprintf(`(?i)(Season\s0?1-0?%d)|(S0?1-S?0?%d)`, season, season)
	}
	return regexp.MustCompile(pattern).MatchString(label)
}

// FixTitle turns a title into a URL slug, e.g. "Spider-Man: No Way Home" -> "spider-man-no-way-home".
func FixTitle(title string) string {
	title = titleJunk.ReplaceAllString(title, "")
	title = strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	return strings.ReplaceAll(title, "-–-", "-")
}

// Language names subtitle tracks labelled with a locale tag.
func Language(label string) string {
	if strings.Contains(label, "(in_ID)") {
		return "Indonesian"
	}
	return label
}

// KisskhTitle replaces every non alphanumeric character with a dash.
func KisskhTitle(title string) string {
	return nonAlnum.ReplaceAllString(title, "-")
}

// Quality reads the resolution labels of the Rezka player, which advertise one step above the real height.
func Quality(label string) source.Quality {
	switch label {
	case "360p":
		return source.P240
	case "480p":
		return source.P360
	case "720p":
		return source.P480
	case "1080p":
		return source.P720
	case "1080p Ultra":
		return source.P1080
	default:
		return source.QualityFromName(label)
	}
}

// GMoviesQuality reads quality words out of a file name.
func GMoviesQuality(name string) source.Quality {
	switch {
	case containsFold(name, "480P"):
		return source.P480
	case containsFold(name, "720P"):
		return source.P720
	case containsFold(name, "1080"):
		return source.P1080
	case containsFold(name, "4K"):
		return source.P2160
	default:
		return source.Unknown
	}
}

type bracketed struct {
	label string
	value string
}

// parseBracketList splits "[720p]a or b,[1080p]c" style lists.
func parseBracketList(list string) []bracketed {
	var entries []bracketed
	for _, part := range strings.Split(list, ",") {
		groups := util.ReGroups(bracketEntry, part)
		if len(groups) == 0 {
			continue
		}
		entries = append(entries, bracketed{label: groups["label"], value: strings.TrimSpace(groups["value"])})
	}
	return entries
}
