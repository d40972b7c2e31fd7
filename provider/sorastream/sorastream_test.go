package sorastream

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/streamurl"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

const (
	movieStreams = "[720p]https://cdn.test/b720.mp4:hls:manifest.m3u8 or https://cdn.test/b720.mp4," +
		"[1080p Ultra]https://cdn.test/b1080.mp4"
	episodeStreams = "[720p]https://cdn.test/dark-s1e2.m3u8"
)

// movieToken is the url Rezka serves for the movie; tests swap it for a broken one.
var movieToken = func() string { return obfuscated(movieStreams) }

// obfuscated hides plain the way the Rezka player does, with one junk mask spliced in.
func obfuscated(plain string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(plain))
	return streamurl.Marker + enc[:8] + streamurl.Separator + base64.StdEncoding.EncodeToString([]byte("@#")) + enc[8:]
}

func origin(r *http.Request) string {
	return "http://" + r.Host
}

func tmdbRoutes(mux *http.ServeMux) {
	tmdb := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("api_key") != "secret" {
				http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, body)
		})
	}

	tmdb("/3/search/multi", `{"results":[
		{"id":414906,"media_type":"movie","title":"The Batman","release_date":"2022-03-01","poster_path":"/b.jpg"},
		{"id":70523,"media_type":"tv","name":"Dark","first_air_date":"2017-12-01"},
		{"id":9,"media_type":"person","name":"Robert Pattinson"}
	]}`)
	tmdb("/3/movie/popular", `{"results":[{"id":414906,"title":"The Batman","release_date":"2022-03-01"}]}`)
	tmdb("/3/movie/414906", `{"id":414906,"title":"The Batman","release_date":"2022-03-01","overview":"Vengeance.",
		"status":"Released","genres":[{"name":"Crime"},{"name":"Mystery"}],"external_ids":{"imdb_id":"tt1877830"},
		"recommendations":{"results":[{"id":272,"media_type":"movie","title":"Batman Begins"}]}}`)
	tmdb("/3/tv/70523", `{"id":70523,"name":"Dark","first_air_date":"2017-12-01","status":"Ended",
		"seasons":[{"season_number":0},{"season_number":1},{"season_number":2}],"external_ids":{"imdb_id":"tt5753856"}}`)
	tmdb("/3/tv/70523/season/1", `{"episodes":[
		{"season_number":1,"episode_number":1,"name":"Secrets"},
		{"season_number":1,"episode_number":2,"name":"Lies","still_path":"/l.jpg"}
	]}`)
	tmdb("/3/tv/70523/season/2", `{"episodes":[{"season_number":2,"episode_number":1,"name":"Beginnings and Endings"}]}`)
}

func rezkaRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/rezka/engine/ajax/search.php", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		switch r.PostForm.Get("q") {
		case "The Batman":
			_, _ = fmt.Fprintf(w, `<div class="b-search__section"><ul class="b-search__section_list">
<li><a href="%[1]s/rezka/films/1-the-batman-2004.html"><span class="enty">The Batman</span> (2004)</a></li>
<li><a href="%[1]s/rezka/films/2-the-batman-2022.html"><span class="enty">The Batman</span> (2022)</a></li>
</ul></div>`, origin(r))
		case "Dark":
			_, _ = fmt.Fprintf(w, `<ul class="b-search__section_list"><li><a href="%s/rezka/series/3-dark-2017.html"><span class="enty">Dark</span> (2017)</a></li></ul>`, origin(r))
		}
	})
	mux.HandleFunc("/rezka/films/2-the-batman-2022.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<input type="hidden" id="post_id" value="2">
<script>sof.tv.initCDNMoviesEvents(2, 56, 0, 0, false, 'rezka.ag', false, {"id":"cdnplayer"});</script>`)
	})
	mux.HandleFunc("/rezka/series/3-dark-2017.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<ul id="translators-list"><li data-translator_id="238">Original</li><li data-translator_id="56">Dub</li></ul>`)
	})
	mux.HandleFunc("/rezka/ajax/get_cdn_series/", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form := r.PostForm
		w.Header().Set("Content-Type", "application/json")

		switch {
		case form.Get("action") == "get_movie" && form.Get("id") == "2" && form.Get("translator_id") == "56":
			_, _ = fmt.Fprintf(w, `{"success":true,"url":%q,"subtitle":false}`, movieToken())
		case form.Get("action") == "get_stream" && form.Get("id") == "3" && form.Get("translator_id") == "238" &&
			form.Get("season") == "1" && form.Get("episode") == "2":
			_, _ = fmt.Fprintf(w, `{"success":true,"url":%q,"subtitle":"[English]https://sub.test/en.vtt,[Bahasa (in_ID)]https://sub.test/id.vtt"}`,
				obfuscated(episodeStreams))
		default:
			_, _ = fmt.Fprint(w, `{"success":false,"message":"not found","url":false}`)
		}
	})
}

func filmxyRoutes(mux *http.ServeMux) {
	title := func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("wordpress_logged_in_8bf9d5433ac88cc9a3a396d6b154cd01"); err == nil && c.Value == "log" {
			_, _ = fmt.Fprint(w, `<div class="download-links">
<a href="https://files.test/batman.2022.720p.mkv">The Batman 2022 720p</a>
<a href="https://new.gdtot.test/file/123">The Batman 2022 1080p</a>
<a href="https://files.test/x">Download 2022</a>
<a href="https://files.test/trailer">Trailer</a>
</div>`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "sess1", Path: "/"})
		_, _ = fmt.Fprint(w, `<script>var isSingle = true; var userNonce = "abc123";</script>`)
	}
	mux.HandleFunc("/filmxy/movie/", title)
	mux.HandleFunc("/filmxy/tv/", title)

	mux.HandleFunc("/filmxy/wp-admin/admin-ajax.php", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		session, err := r.Cookie("PHPSESSID")
		idps, _ := r.Cookie("G_ENABLED_IDPS")
		if err != nil || session.Value != "sess1" || idps == nil || idps.Value != "google" ||
			r.PostForm.Get("action") != "guest_login" || r.PostForm.Get("nonce") != "abc123" ||
			r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
			http.Error(w, "0", http.StatusForbidden)
			return
		}
		for name, value := range map[string]string{
			"PHPSESSID": "sess2",
			"wordpress_logged_in_8bf9d5433ac88cc9a3a396d6b154cd01": "log",
			"wordpress_sec_8bf9d5433ac88cc9a3a396d6b154cd01":       "sec",
		} {
			http.SetCookie(w, &http.Cookie{Name: name, Value: value, Path: "/"})
		}
		_, _ = fmt.Fprint(w, "1")
	})
}

func gdbotRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/gdbot/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "xsrf", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "gdtot_proxy_session", Value: "proxy", Path: "/"})
		_, _ = fmt.Fprint(w, `<form action="/file" method="post"><input type="hidden" name="_token" value="tok"></form>`)
	})
	mux.HandleFunc("/gdbot/file", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		xsrf, err := r.Cookie("XSRF-TOKEN")
		if err != nil || xsrf.Value != "xsrf" || r.PostForm.Get("_token") != "tok" ||
			!strings.Contains(r.PostForm.Get("link"), "gdtot") {
			http.Error(w, "expired", 419)
			return
		}
		_, _ = fmt.Fprint(w, `<div class="mt-8"><a class="float-right" href="https://drive.test/direct">Download</a></div>`)
	})
}

func newSites() *httptest.Server {
	mux := http.NewServeMux()
	tmdbRoutes(mux)
	rezkaRoutes(mux)
	filmxyRoutes(mux)
	gdbotRoutes(mux)
	return httptest.NewServer(mux)
}

func TestSoraStream(t *testing.T) {
	Convey("Given TMDB and the streaming sites", t, func() {
		server := newSites()
		defer server.Close()

		viper.Set(key.SoraTMDBKey, "secret")
		viper.Set(key.SoraTMDBURL, server.URL+"/3")
		viper.Set(key.SoraRezkaURL, server.URL+"/rezka")
		viper.Set(key.SoraFilmxyURL, server.URL+"/filmxy")
		viper.Set(key.SoraGdbotURL, server.URL+"/gdbot/")

		src, err := New()
		So(err, ShouldBeNil)

		ctx := context.Background()

		Convey("Search should keep movies and shows", func() {
			results, err := src.Search(ctx, "batman")
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].Type, ShouldEqual, source.Movie)
			So(results[0].Year, ShouldEqual, 2022)
			So(results[0].URL, ShouldEqual, server.URL+"/3/movie/414906")
			So(results[0].PosterURL, ShouldEqual, imageURL+"/b.jpg")
			So(results[1].Type, ShouldEqual, source.TvSeries)
		})

		Convey("Main page sections should infer the media type", func() {
			list, err := src.MainPageSection(ctx, src.MainPage()[1], 1)
			So(err, ShouldBeNil)
			So(list.List, ShouldHaveLength, 1)
			So(list.List[0].Type, ShouldEqual, source.Movie)
		})

		Convey("Loading a movie should yield one playable item", func() {
			movie, err := src.Load(ctx, server.URL+"/3/movie/414906")
			So(err, ShouldBeNil)
			So(movie.Name, ShouldEqual, "The Batman")
			So(movie.ImdbID, ShouldEqual, "tt1877830")
			So(movie.Tags, ShouldResemble, []string{"Crime", "Mystery"})
			So(movie.Status, ShouldEqual, source.Completed)
			So(movie.Recommendations, ShouldHaveLength, 1)
			So(movie.Episodes, ShouldHaveLength, 1)

			data, err := ParseLinkData(movie.Episodes[0].Data)
			So(err, ShouldBeNil)
			So(data.IsMovie(), ShouldBeTrue)
			So(data.Year, ShouldEqual, 2022)

			Convey("And its links should come from Rezka and Filmxy", func() {
				links, err := source.CollectLinks(ctx, src, movie.Episodes[0].Data)
				So(err, ShouldBeNil)
				So(links.Links, ShouldHaveLength, 5)
				So(links.Subtitles, ShouldBeEmpty)

				byURL := make(map[string]source.ExtractorLink)
				for _, l := range links.Links {
					byURL[l.URL] = l
				}

				So(byURL["https://cdn.test/b720.mp4:hls:manifest.m3u8"].IsM3u8, ShouldBeTrue)
				So(byURL["https://cdn.test/b720.mp4"].Quality, ShouldEqual, source.P480)
				So(byURL["https://cdn.test/b1080.mp4"].Quality, ShouldEqual, source.P1080)
				So(byURL["https://files.test/batman.2022.720p.mkv"].Quality, ShouldEqual, source.P720)
				So(byURL["https://drive.test/direct"].Name, ShouldEqual, "Filmxy GDBot")
				So(byURL["https://drive.test/direct"].Quality, ShouldEqual, source.P1080)
			})

			Convey("An undecodable Rezka token should leave only the Filmxy links", func() {
				movieToken = func() string { return "@@not-base64" }
				Reset(func() {
					movieToken = func() string { return obfuscated(movieStreams) }
				})

				var got []source.ExtractorLink
				ok, err := src.LoadLinks(ctx, movie.Episodes[0].Data,
					func(source.SubtitleFile) {},
					func(l source.ExtractorLink) { got = append(got, l) },
				)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(got, ShouldHaveLength, 2)
				for _, l := range got {
					So(l.Source, ShouldEqual, filmxyName)
				}
			})
		})

		Convey("Loading a show should list every regular season", func() {
			show, err := src.Load(ctx, server.URL+"/3/tv/70523")
			So(err, ShouldBeNil)
			So(show.Type, ShouldEqual, source.TvSeries)
			So(show.Episodes, ShouldHaveLength, 3)
			So(show.Episodes[1].Name, ShouldEqual, "Lies")
			So(show.Episodes[1].PosterURL, ShouldEqual, imageURL+"/l.jpg")

			data, err := ParseLinkData(show.Episodes[1].Data)
			So(err, ShouldBeNil)
			So(data.Season, ShouldEqual, 1)
			So(data.Episode, ShouldEqual, 2)
			So(data.LastSeason, ShouldEqual, 2)
			So(data.IsMovie(), ShouldBeFalse)

			Convey("And an episode should carry Rezka subtitles", func() {
				links, err := source.CollectLinks(ctx, src, show.Episodes[1].Data)
				So(err, ShouldBeNil)
				So(links.Links, ShouldHaveLength, 1)
				So(links.Links[0].IsM3u8, ShouldBeTrue)
				So(links.Subtitles, ShouldHaveLength, 2)

				langs := []string{links.Subtitles[0].Lang, links.Subtitles[1].Lang}
				So(langs, ShouldContain, "English")
				So(langs, ShouldContain, "Indonesian")
			})
		})

		Convey("Load should reject URLs without a TMDB id", func() {
			_, err := src.Load(ctx, server.URL+"/3/person/9")
			So(errors.Is(err, source.ErrNotFound), ShouldBeTrue)
		})

		Convey("LoadLinks should reject malformed data", func() {
			ok, err := src.LoadLinks(ctx, "not json", func(source.SubtitleFile) {}, func(source.ExtractorLink) {})
			So(ok, ShouldBeFalse)
			So(err, ShouldNotBeNil)
		})

		Convey("Filmxy guest login should yield all three cookies", func() {
			cookies, err := GetFilmxyCookies(ctx, server.URL+"/filmxy", "tt1877830", true)
			So(err, ShouldBeNil)
			So(cookies.PHPSessID, ShouldEqual, "sess2")
			So(cookies.LoggedIn, ShouldEqual, "log")
			So(cookies.Secure, ShouldEqual, "sec")
		})

		Convey("Gdbot should resolve gdtot links", func() {
			direct, err := ExtractGdbot(ctx, server.URL+"/gdbot", "https://new.gdtot.test/file/123")
			So(err, ShouldBeNil)
			So(direct, ShouldEqual, "https://drive.test/direct")
		})
	})

	Convey("Without an API key the provider should not start", t, func() {
		viper.Set(key.SoraTMDBKey, "")
		_, err := New()
		So(errors.Is(err, ErrNoAPIKey), ShouldBeTrue)
	})
}
