// Package kuramanime scrapes kuramanime, an Indonesian anime catalog.
package kuramanime

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kurasora/kurasora/anilist"
	"github.com/kurasora/kurasora/jikan"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/source"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ID   = "kuramanime"
	Name = "Kuramanime"
)

var (
	episodeSuffix = regexp.MustCompile(`(.*)/episode/.+`)
	subEpisodes   = regexp.MustCompile(`(\d+)\s*/`)
	nonDigits     = regexp.MustCompile(`\D`)
	firstNumber   = regexp.MustCompile(`\d+`)
)

type Kuramanime struct {
	mainURL string
	logger  *logrus.Entry
}

// New reads the mirror from providers.kuramanime.url.
func New() (source.Source, error) {
	mainURL := strings.TrimSuffix(viper.GetString(key.KuramanimeURL), "/")
	if _, err := url.ParseRequestURI(mainURL); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key.KuramanimeURL, err)
	}

	return &Kuramanime{
		mainURL: mainURL,
		logger:  log.Provider(ID),
	}, nil
}

func (k *Kuramanime) Name() string    { return Name }
func (k *Kuramanime) ID() string      { return ID }
func (k *Kuramanime) MainURL() string { return k.mainURL }
func (k *Kuramanime) Lang() string    { return "id" }

func (k *Kuramanime) SupportedTypes() []source.TvType {
	return []source.TvType{source.Anime, source.AnimeMovie, source.OVA}
}

func (k *Kuramanime) MainPage() []source.MainPageRequest {
	return []source.MainPageRequest{
		{Name: "Sedang Tayang", Data: k.mainURL + "/anime/ongoing?order_by=updated&page="},
		{Name: "Selesai Tayang", Data: k.mainURL + "/anime/finished?order_by=updated&page="},
		{Name: "Dilihat Terbanyak Musim Ini", Data: k.mainURL + "/properties/season/" + Season(time.Now()) + "?order_by=most_viewed&page="},
		{Name: "Film Layar Lebar", Data: k.mainURL + "/anime/movie?order_by=updated&page="},
	}
}

func (k *Kuramanime) MainPageSection(ctx context.Context, request source.MainPageRequest, page int) (*source.HomePageList, error) {
	session := network.NewSession()
	defer session.Close()

	doc, err := session.Document(ctx, request.Data+strconv.Itoa(max(page, 1)))
	if err != nil {
		return nil, err
	}

	return &source.HomePageList{
		Name: request.Name,
		List: k.cards(doc.Selection),
	}, nil
}

func (k *Kuramanime) Search(ctx context.Context, query string) ([]*source.SearchResponse, error) {
	session := network.NewSession()
	defer session.Close()

	params := url.Values{}
	params.Set("search", query)
	params.Set("order_by", "latest")

	doc, err := session.Document(ctx, k.mainURL+"/anime?"+params.Encode())
	if err != nil {
		return nil, err
	}

	return k.cards(doc.Find("div#animeList")), nil
}

func (k *Kuramanime) Load(ctx context.Context, link string) (*source.LoadResponse, error) {
	session := network.NewSession()
	defer session.Close()

	doc, err := session.Document(ctx, link)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find(".anime__details__title > h3").First().Text())
	if title == "" {
		return nil, fmt.Errorf("%w: title on %s", source.ErrNotFound, link)
	}

	widget := func(column, row int) string {
		selector := fmt.Sprintf("div.anime__details__widget > div > div:nth-child(%d) > ul > li:nth-child(%d)", column, row)
		return strings.TrimSpace(doc.Find(selector).Text())
	}

	kind := strings.ToLower(strings.TrimSpace(
		doc.Find("div.col-lg-6.col-md-6 ul li").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(s.Text(), "Tipe:")
		}).Find("a").First().Text(),
	))
	if kind == "" {
		kind = "tv"
	}

	year, _ := strconv.Atoi(nonDigits.ReplaceAllString(strings.TrimPrefix(widget(1, 5), "Musim: "), ""))

	response := &source.LoadResponse{
		Name:      title,
		URL:       link,
		ApiName:   Name,
		Type:      TypeOf(kind),
		PosterURL: source.FixURL(doc.Find(".anime__details__pic").First().AttrOr("data-setbg", ""), k.mainURL),
		Year:      year,
		Plot:      strings.TrimSpace(doc.Find(".anime__details__text > p").Text()),
		Tags:      tags(widget(2, 1)),
		Status:    StatusOf(strings.TrimPrefix(widget(1, 3), "Status: ")),
	}

	response.Episodes, err = episodes(doc.Find("#episodeLists").AttrOr("data-content", ""), k.mainURL)
	if err != nil {
		return nil, err
	}

	doc.Find("div#randomList > a").Each(func(_ int, s *goquery.Selection) {
		response.Recommendations = append(response.Recommendations, &source.SearchResponse{
			Name:      strings.TrimSpace(s.Find("h5.sidebar-title-h5.px-2.py-2").Text()),
			URL:       source.FixURL(s.AttrOr("href", ""), k.mainURL),
			ApiName:   Name,
			Type:      source.Anime,
			PosterURL: source.FixURL(s.Find(".product__sidebar__view__item.set-bg").AttrOr("data-setbg", ""), k.mainURL),
			DubStatus: source.Subbed,
		})
	})

	if viper.GetBool(key.MetadataFetchIDs) {
		k.addIDs(ctx, response, kind)
	}

	return response, nil
}

// addIDs fills MalID and AniListID. Lookup failures leave them unset.
func (k *Kuramanime) addIDs(ctx context.Context, response *source.LoadResponse, kind string) {
	malID, err := jikan.FindMalID(ctx, response.Name, response.Year, kind)
	if err != nil {
		k.logger.WithError(err).Warnf("no mal id for %q", response.Name)
		return
	}
	response.MalID = malID

	anilistID, err := anilist.IDFromMal(ctx, malID)
	if err != nil {
		k.logger.WithError(err).Warnf("no anilist id for mal id %d", malID)
		return
	}
	response.AniListID = anilistID
}

func (k *Kuramanime) cards(root *goquery.Selection) []*source.SearchResponse {
	var results []*source.SearchResponse

	root.Find("div.col-lg-4.col-md-6.col-sm-6").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h5 a").First().Text())
		if title == "" {
			return
		}

		result := &source.SearchResponse{
			Name:      title,
			URL:       AnimeLink(source.FixURL(s.Find("a").First().AttrOr("href", ""), k.mainURL)),
			ApiName:   Name,
			Type:      source.Anime,
			PosterURL: source.FixURL(s.Find("div.product__item__pic.set-bg").AttrOr("data-setbg", ""), k.mainURL),
			DubStatus: source.Subbed,
		}

		if m := subEpisodes.FindStringSubmatch(s.Find("div.ep span").Text()); m != nil {
			result.SubEpisodes, _ = strconv.Atoi(m[1])
		}

		results = append(results, result)
	})

	return results
}

func episodes(fragment, mainURL string) ([]*source.Episode, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, nil
	}

	doc, err := network.ParseHTML(fragment)
	if err != nil {
		return nil, err
	}

	var list []*source.Episode
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if href == "" {
			return
		}

		name := strings.TrimSpace(s.Text())
		episode := &source.Episode{
			Data: source.FixURL(href, mainURL),
			Name: name,
		}
		if n := firstNumber.FindString(name); n != "" {
			episode.Episode, _ = strconv.Atoi(n)
		}

		list = append(list, episode)
	})

	return list, nil
}

func tags(genres string) []string {
	genres = strings.TrimPrefix(genres, "Genre: ")
	return lo.Compact(lo.Map(strings.Split(genres, ", "), func(t string, _ int) string {
		return strings.TrimSpace(t)
	}))
}

// AnimeLink turns an episode URL into the URL of its anime page.
func AnimeLink(uri string) string {
	if !strings.Contains(uri, "/episode") {
		return uri
	}
	if m := episodeSuffix.FindStringSubmatch(uri); m != nil {
		return m[1] + "/"
	}
	return uri
}

// TypeOf maps the "Tipe" label of a detail page.
func TypeOf(t string) source.TvType {
	lower := strings.ToLower(t)
	switch {
	case strings.Contains(lower, "ova"), strings.Contains(lower, "special"):
		return source.OVA
	case strings.Contains(lower, "movie"):
		return source.AnimeMovie
	default:
		return source.Anime
	}
}

// StatusOf maps the "Status" label of a detail page. Unknown labels count as completed.
func StatusOf(s string) source.ShowStatus {
	switch s {
	case "Sedang Tayang":
		return source.Ongoing
	default:
		return source.Completed
	}
}

// Season is the seasonal chart slug for t, e.g. "summer-2024".
func Season(t time.Time) string {
	seasons := [...]string{"winter", "spring", "summer", "fall"}
	return fmt.Sprintf("%s-%d", seasons[(int(t.Month())-1)/3], t.Year())
}
