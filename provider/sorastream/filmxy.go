package sorastream

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/source"
)

const (
	filmxyName = "Filmxy"

	filmxyLoggedIn = "wordpress_logged_in_8bf9d5433ac88cc9a3a396d6b154cd01"
	filmxySecure   = "wordpress_sec_8bf9d5433ac88cc9a3a396d6b154cd01"
)

var userNonce = regexp.MustCompile(`var\suserNonce.*?"(\S+?)";`)

// FilmxyCookies are the guest login cookies Filmxy wants before it lists files.
type FilmxyCookies struct {
	PHPSessID string
	LoggedIn  string
	Secure    string
}

func (c *FilmxyCookies) Map() map[string]string {
	return map[string]string{
		"PHPSESSID":    c.PHPSessID,
		filmxyLoggedIn: c.LoggedIn,
		filmxySecure:   c.Secure,
	}
}

func filmxyPage(filmxyURL, imdbID string, movie bool) string {
	if movie {
		return fmt.Sprintf("%s/movie/%s", filmxyURL, imdbID)
	}
	return fmt.Sprintf("%s/tv/%s", filmxyURL, imdbID)
}

// GetFilmxyCookies performs a guest login: the title page sets PHPSESSID and embeds a nonce,
// posting the nonce to admin-ajax yields the wordpress cookies.
// The session is private to this call and dropped before returning.
func GetFilmxyCookies(ctx context.Context, filmxyURL, imdbID string, movie bool) (*FilmxyCookies, error) {
	session := network.NewSession()
	defer session.Close()

	page := filmxyPage(filmxyURL, imdbID, movie)
	doc, err := session.Document(ctx, page)
	if err != nil {
		return nil, err
	}

	var nonce string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := userNonce.FindStringSubmatch(s.Text()); m != nil {
			nonce = m[1]
			return false
		}
		return true
	})
	if nonce == "" {
		return nil, fmt.Errorf("%w: user nonce on %s", source.ErrNotFound, page)
	}

	phpsessid := session.Cookies(page)["PHPSESSID"]
	if phpsessid == "" {
		return nil, fmt.Errorf("%w: PHPSESSID from %s", source.ErrNotFound, page)
	}

	ajax := filmxyURL + "/wp-admin/admin-ajax.php"
	form := url.Values{"action": {"guest_login"}, "nonce": {nonce}}
	resp, err := session.PostForm(ctx, ajax, form,
		network.WithCookies(map[string]string{"G_ENABLED_IDPS": "google"}),
		network.WithXHR(),
	)
	if err != nil {
		return nil, err
	}
	_ = resp.Body.Close()

	jar := session.Cookies(ajax)
	cookies := &FilmxyCookies{
		PHPSessID: jar["PHPSESSID"],
		LoggedIn:  jar[filmxyLoggedIn],
		Secure:    jar[filmxySecure],
	}
	if cookies.PHPSessID == "" || cookies.LoggedIn == "" || cookies.Secure == "" {
		return nil, fmt.Errorf("%w: guest login cookies", source.ErrNotFound)
	}

	return cookies, nil
}

// invokeFilmxy lists the file mirrors of the title as a guest. gdtot mirrors are resolved through gdbot.
func (s *SoraStream) invokeFilmxy(ctx context.Context, data LinkData, links source.LinkFunc) error {
	if data.ImdbID == "" {
		return fmt.Errorf("%w: imdb id", source.ErrNotFound)
	}

	cookies, err := GetFilmxyCookies(ctx, s.filmxyURL, data.ImdbID, data.IsMovie())
	if err != nil {
		return err
	}

	session := network.NewSession()
	defer session.Close()

	page := filmxyPage(s.filmxyURL, data.ImdbID, data.IsMovie())
	doc, err := session.Document(ctx, page, network.WithCookies(cookies.Map()), network.WithReferer(s.filmxyURL+"/"))
	if err != nil {
		return err
	}

	type mirror struct{ label, href string }
	var mirrors []mirror
	doc.Find("div.download-links a[href]").Each(func(_ int, a *goquery.Selection) {
		label := strings.TrimSpace(a.Text())
		if data.IsMovie() {
			if !FilterIframe(label, 0, 0, data.Year) {
				return
			}
		} else if !FilterIframe(label, data.Season, data.LastSeason, 0) {
			return
		}
		mirrors = append(mirrors, mirror{label: label, href: a.AttrOr("href", "")})
	})
	if len(mirrors) == 0 {
		return source.ErrNotFound
	}

	for _, m := range mirrors {
		link := source.FixURL(m.href, s.filmxyURL)
		name := filmxyName

		if strings.Contains(link, "gdtot") {
			resolved, err := ExtractGdbot(ctx, s.gdbotURL, link)
			if err != nil {
				s.logger.WithError(err).Warnf("gdbot could not resolve %s", link)
				continue
			}
			link, name = resolved, filmxyName+" GDBot"
		}

		links(source.ExtractorLink{
			Source:  filmxyName,
			Name:    name,
			URL:     link,
			Referer: s.filmxyURL + "/",
			Quality: GMoviesQuality(m.label),
		})
	}

	return nil
}
