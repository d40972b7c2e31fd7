package kuramanime

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/kurasora/kurasora/anilist"
	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/jikan"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

const cardsFixture = `
<div class="row">
  <div class="col-lg-4 col-md-6 col-sm-6">
    <a href="/anime/1234/one-piece/episode/1071">
      <div class="product__item__pic set-bg" data-setbg="https://img.test/op.jpg">
        <div class="ep"><span>1071 / ?</span></div>
      </div>
    </a>
    <div class="product__item__text"><h5><a href="/anime/1234/one-piece">One Piece</a></h5></div>
  </div>
  <div class="col-lg-4 col-md-6 col-sm-6">
    <a href="https://kura.test/anime/99/bocchi-the-rock"></a>
    <div class="product__item__pic set-bg" data-setbg="/images/bocchi.jpg"><div class="ep"><span>12 / 12</span></div></div>
    <h5><a>Bocchi the Rock!</a></h5>
  </div>
  <div class="col-lg-4 col-md-6 col-sm-6"><a href="/anime/0/no-title"></a></div>
</div>`

const episodeListFixture = `<a class="btn" href="/anime/99/bocchi-the-rock/episode/1">Ep 1</a>
<a class="btn" href="/anime/99/bocchi-the-rock/episode/2">Ep 2</a>`

func detailFixture() string {
	return `<html><body>
<div class="anime__details__pic set-bg" data-setbg="https://img.test/bocchi.jpg"></div>
<div class="anime__details__title"><h3> Bocchi the Rock! </h3></div>
<div class="anime__details__text"><p>Hitori Gotou plays guitar.</p></div>
<div class="anime__details__widget"><div class="row">
  <div class="col-lg-6 col-md-6"><ul>
    <li>Tipe: <a href="/properties/type/tv">TV</a></li>
    <li>Episode: 12</li>
    <li>Status: Selesai Tayang</li>
    <li>Tayang: Okt 2022</li>
    <li>Musim: Fall 2022</li>
  </ul></div>
  <div class="col-lg-6 col-md-6"><ul>
    <li>Genre: Comedy, Music, Slice of Life</li>
  </ul></div>
</div></div>
<div id="episodeLists" data-content="` + html.EscapeString(episodeListFixture) + `"></div>
<div id="randomList">
  <a href="/anime/7/k-on"><div class="product__sidebar__view__item set-bg" data-setbg="/img/kon.jpg"></div><h5 class="sidebar-title-h5 px-2 py-2">K-On!</h5></a>
</div>
</body></html>`
}

const episodeFixture = `<select id="changeServer">
  <option value="kuramadrive">Kuramadrive</option>
  <option value="filelions">FileLions</option>
  <option value="broken">Broken</option>
</select>`

func newSite() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/anime", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("order_by") != "latest" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprintf(w, `<div id="animeList">%s</div><div class="col-lg-4 col-md-6 col-sm-6"><h5><a>Outside</a></h5></div>`, cardsFixture)
	})
	mux.HandleFunc("/anime/ongoing", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, cardsFixture)
	})
	mux.HandleFunc("/anime/99/bocchi-the-rock", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, detailFixture())
	})
	mux.HandleFunc("/anime/99/bocchi-the-rock/episode/1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("activate_stream") != "1" {
			_, _ = fmt.Fprint(w, episodeFixture)
			return
		}
		if r.Header.Get("X-Requested-With") != "XMLHttpRequest" || !strings.Contains(r.Referer(), "/episode/1") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		switch r.URL.Query().Get("stream_server") {
		case "kuramadrive":
			_, _ = fmt.Fprint(w, `<video id="player">
  <source src="/kdrive/bocchi-1-480.mp4" size="480">
  <source src="https://cdn.test/bocchi-1-720.mp4" size="720">
</video>`)
		case "filelions":
			_, _ = fmt.Fprint(w, `<div class="iframe-container"><iframe src="//filelions.test/v/abc"></iframe></div>`)
		default:
			http.Error(w, "down", http.StatusBadGateway)
		}
	})

	mux.HandleFunc("/v4/anime", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"data":[{"mal_id":47917,"title":"Bocchi the Rock!"}]}`)
	})
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"data":{"Media":{"id":130003}}}`)
	})

	return httptest.NewServer(mux)
}

func TestHelpers(t *testing.T) {
	Convey("AnimeLink should strip episode paths", t, func() {
		So(AnimeLink("https://k.test/anime/1/x/episode/12"), ShouldEqual, "https://k.test/anime/1/x/")
		So(AnimeLink("https://k.test/anime/1/x"), ShouldEqual, "https://k.test/anime/1/x")
	})

	Convey("TypeOf", t, func() {
		So(TypeOf("ova"), ShouldEqual, source.OVA)
		So(TypeOf("special"), ShouldEqual, source.OVA)
		So(TypeOf("movie"), ShouldEqual, source.AnimeMovie)
		So(TypeOf("tv"), ShouldEqual, source.Anime)
	})

	Convey("StatusOf", t, func() {
		So(StatusOf("Sedang Tayang"), ShouldEqual, source.Ongoing)
		So(StatusOf("Selesai Tayang"), ShouldEqual, source.Completed)
		So(StatusOf("Belum Tayang"), ShouldEqual, source.Completed)
	})

	Convey("Season", t, func() {
		So(Season(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)), ShouldEqual, "winter-2024")
		So(Season(time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC)), ShouldEqual, "summer-2022")
		So(Season(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)), ShouldEqual, "fall-2023")
	})
}

func TestKuramanime(t *testing.T) {
	Convey("Given a kuramanime mirror", t, func() {
		filesystem.SetMemMapFs()
		site := newSite()
		defer site.Close()

		viper.Set(key.KuramanimeURL, site.URL+"/")
		viper.Set(key.MetadataFetchIDs, false)

		jikanURL, anilistURL := jikan.BaseURL, anilist.Endpoint
		jikan.BaseURL, anilist.Endpoint = site.URL+"/v4", site.URL+"/graphql"
		defer func() { jikan.BaseURL, anilist.Endpoint = jikanURL, anilistURL }()

		src, err := New()
		So(err, ShouldBeNil)
		So(src.MainURL(), ShouldEqual, site.URL)

		ctx := context.Background()

		Convey("Search should parse the result cards", func() {
			results, err := src.Search(ctx, "bocchi")
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)

			So(results[0].Name, ShouldEqual, "One Piece")
			So(results[0].URL, ShouldEqual, site.URL+"/anime/1234/one-piece/")
			So(results[0].PosterURL, ShouldEqual, "https://img.test/op.jpg")
			So(results[0].SubEpisodes, ShouldEqual, 1071)

			So(results[1].URL, ShouldEqual, "https://kura.test/anime/99/bocchi-the-rock")
			So(results[1].PosterURL, ShouldEqual, site.URL+"/images/bocchi.jpg")
			So(results[1].SubEpisodes, ShouldEqual, 12)
		})

		Convey("The main page should list four sections", func() {
			sections := src.MainPage()
			So(sections, ShouldHaveLength, 4)

			list, err := src.MainPageSection(ctx, sections[0], 2)
			So(err, ShouldBeNil)
			So(list.Name, ShouldEqual, "Sedang Tayang")
			So(list.List, ShouldHaveLength, 2)
		})

		Convey("Load should parse the detail page", func() {
			anime, err := src.Load(ctx, site.URL+"/anime/99/bocchi-the-rock")
			So(err, ShouldBeNil)

			So(anime.Name, ShouldEqual, "Bocchi the Rock!")
			So(anime.Type, ShouldEqual, source.Anime)
			So(anime.Status, ShouldEqual, source.Completed)
			So(anime.Year, ShouldEqual, 2022)
			So(anime.Tags, ShouldResemble, []string{"Comedy", "Music", "Slice of Life"})
			So(anime.Plot, ShouldEqual, "Hitori Gotou plays guitar.")
			So(anime.MalID, ShouldEqual, 0)

			So(anime.Episodes, ShouldHaveLength, 2)
			So(anime.Episodes[1].Data, ShouldEqual, site.URL+"/anime/99/bocchi-the-rock/episode/2")
			So(anime.Episodes[1].Episode, ShouldEqual, 2)

			So(anime.Recommendations, ShouldHaveLength, 1)
			So(anime.Recommendations[0].Name, ShouldEqual, "K-On!")
			So(anime.Recommendations[0].PosterURL, ShouldEqual, site.URL+"/img/kon.jpg")

			Convey("And attach ids when enabled", func() {
				viper.Set(key.MetadataFetchIDs, true)
				anime, err := src.Load(ctx, site.URL+"/anime/99/bocchi-the-rock")
				So(err, ShouldBeNil)
				So(anime.MalID, ShouldEqual, 47917)
				So(anime.AniListID, ShouldEqual, 130003)
			})
		})

		Convey("Load should fail on a page without a title", func() {
			_, err := src.Load(ctx, site.URL+"/anime/99/bocchi-the-rock/episode/1")
			So(errors.Is(err, source.ErrNotFound), ShouldBeTrue)
		})

		Convey("LoadLinks should query every server and skip failing ones", func() {
			links, err := source.CollectLinks(ctx, src, site.URL+"/anime/99/bocchi-the-rock/episode/1")
			So(err, ShouldBeNil)
			So(links.Links, ShouldHaveLength, 3)

			urls := make([]string, 0, len(links.Links))
			for _, l := range links.Links {
				urls = append(urls, l.URL)
			}
			sort.Strings(urls)
			So(urls, ShouldResemble, []string{
				site.URL + "/kdrive/bocchi-1-480.mp4",
				"https://cdn.test/bocchi-1-720.mp4",
				"https://filelions.test/v/abc",
			})

			for _, l := range links.Links {
				So(l.Referer, ShouldEqual, site.URL+"/")
				if l.URL == "https://cdn.test/bocchi-1-720.mp4" {
					So(l.Quality, ShouldEqual, source.P720)
					So(l.Headers["Range"], ShouldEqual, "bytes=0-")
				}
			}
		})

		Convey("LoadLinks should keep the query of the episode URL", func() {
			links, err := source.CollectLinks(ctx, src, site.URL+"/anime/99/bocchi-the-rock/episode/1?lang=id")
			So(err, ShouldBeNil)
			So(links.Links, ShouldHaveLength, 3)
		})
	})
}

func TestStreamURL(t *testing.T) {
	Convey("streamURL should merge the activation parameters", t, func() {
		got, err := streamURL("https://kuramanime.test/anime/1/x/episode/2?lang=id", "filelions")
		So(err, ShouldBeNil)

		u, err := url.Parse(got)
		So(err, ShouldBeNil)
		So(u.Path, ShouldEqual, "/anime/1/x/episode/2")
		So(u.Query().Get("lang"), ShouldEqual, "id")
		So(u.Query().Get("activate_stream"), ShouldEqual, "1")
		So(u.Query().Get("stream_server"), ShouldEqual, "filelions")
	})
}
