package sorastream

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/streamurl"
)

const rezkaName = "Rezka"

var (
	rezkaPostID     = regexp.MustCompile(`/(\d+)-[^/]*\.html`)
	rezkaTranslator = regexp.MustCompile(`initCDN(?:Series|Movies)Events\(\s*\d+\s*,\s*(\d+)`)
)

// looseString accepts the JSON false the CDN sends instead of an empty string.
type looseString string

func (l *looseString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("false")) || bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = looseString(s)
	return nil
}

type rezkaStream struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	URL      looseString `json:"url"`
	Subtitle looseString `json:"subtitle"`
}

func (s *SoraStream) invokeRezka(ctx context.Context, data LinkData, subtitles source.SubtitleFunc, links source.LinkFunc) error {
	session := network.NewSession()
	defer session.Close()

	page, err := s.rezkaFind(ctx, session, data)
	if err != nil {
		return err
	}

	doc, err := session.Document(ctx, page)
	if err != nil {
		return err
	}

	postID := rezkaID(doc, page)
	if postID == "" {
		return source.ErrNotFound
	}

	form := url.Values{}
	form.Set("id", postID)
	form.Set("translator_id", rezkaTranslatorID(doc))
	if data.IsMovie() {
		form.Set("action", "get_movie")
	} else {
		form.Set("action", "get_stream")
		form.Set("season", strconv.Itoa(data.Season))
		form.Set("episode", strconv.Itoa(data.Episode))
	}

	var stream rezkaStream
	err = session.PostFormJSON(ctx, s.rezkaURL+"/ajax/get_cdn_series/", form, &stream,
		network.WithReferer(page), network.WithXHR())
	if err != nil {
		return err
	}
	if !stream.Success || stream.URL == "" {
		return source.ErrNotFound
	}

	streams, err := streamurl.Decrypt(string(stream.URL))
	if err != nil {
		return err
	}

	for _, entry := range parseBracketList(streams) {
		for _, link := range strings.Split(entry.value, " or ") {
			link = strings.TrimSpace(link)
			if link == "" {
				continue
			}

			links(source.ExtractorLink{
				Source:  rezkaName,
				Name:    rezkaName + " " + entry.label,
				URL:     link,
				Referer: s.rezkaURL + "/",
				Quality: Quality(entry.label),
				IsM3u8:  strings.Contains(link, ".m3u8"),
			})
		}
	}

	for _, entry := range parseBracketList(string(stream.Subtitle)) {
		subtitles(source.SubtitleFile{Lang: Language(entry.label), URL: entry.value})
	}

	return nil
}

// rezkaFind runs the quick search and returns the page of the entry matching title and year.
func (s *SoraStream) rezkaFind(ctx context.Context, session *network.Session, data LinkData) (string, error) {
	doc, err := session.PostDocument(ctx, s.rezkaURL+"/engine/ajax/search.php", url.Values{"q": {data.Title}},
		network.WithXHR(), network.WithReferer(s.rezkaURL+"/"))
	if err != nil {
		return "", err
	}

	var found string
	doc.Find(".b-search__section_list li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		href := li.Find("a").AttrOr("href", "")
		if href == "" || !FilterMedia(li.Text(), data.Title, data.Year, 0) {
			return true
		}
		found = source.FixURL(href, s.rezkaURL)
		return false
	})

	if found == "" {
		return "", source.ErrNotFound
	}
	return found, nil
}

func rezkaID(doc *goquery.Document, page string) string {
	for _, candidate := range []struct{ selector, attr string }{
		{"#post_id", "value"},
		{"#send-video-issue", "data-id"},
		{"#user-favorites-holder", "data-post_id"},
	} {
		if id := doc.Find(candidate.selector).AttrOr(candidate.attr, ""); id != "" {
			return id
		}
	}

	if m := rezkaPostID.FindStringSubmatch(page); m != nil {
		return m[1]
	}
	return ""
}

// rezkaTranslatorID returns the first listed voice-over, or the default one the player is initialized with.
func rezkaTranslatorID(doc *goquery.Document) string {
	if id := doc.Find("#translators-list [data-translator_id]").First().AttrOr("data-translator_id", ""); id != "" {
		return id
	}

	html, _ := doc.Html()
	if m := rezkaTranslator.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return "0"
}
