package kuramanime

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/source"
	"github.com/samber/lo"
)

// localServer is served from the site itself as plain <video> sources.
const localServer = "kuramadrive"

// LoadLinks asks every stream server of the episode page in parallel.
// kuramadrive yields direct files, other servers yield their embed URL.
func (k *Kuramanime) LoadLinks(ctx context.Context, data string, subtitles source.SubtitleFunc, links source.LinkFunc) (bool, error) {
	session := network.NewSession()
	defer session.Close()

	doc, err := session.Document(ctx, data)
	if err != nil {
		return false, err
	}

	servers := lo.Uniq(lo.Compact(doc.Find("select#changeServer option").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.AttrOr("value", ""))
	})))
	if len(servers) == 0 {
		k.logger.Warnf("no stream servers on %s", data)
		return false, nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		emitted bool
	)

	emit := func(link source.ExtractorLink) {
		mu.Lock()
		defer mu.Unlock()
		emitted = true
		links(link)
	}

	for _, server := range servers {
		wg.Add(1)
		go func(server string) {
			defer wg.Done()
			if err := k.invokeServer(ctx, session, data, server, emit); err != nil {
				k.logger.WithError(err).Warnf("server %s failed", server)
			}
		}(server)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return emitted, err
	}

	return emitted, nil
}

// streamURL adds the server activation parameters to the episode URL, keeping its own query.
func streamURL(data, server string) (string, error) {
	u, err := url.Parse(data)
	if err != nil {
		return "", err
	}

	params := u.Query()
	params.Set("activate_stream", "1")
	params.Set("stream_server", server)
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func (k *Kuramanime) invokeServer(ctx context.Context, session *network.Session, data, server string, emit source.LinkFunc) error {
	target, err := streamURL(data, server)
	if err != nil {
		return err
	}

	doc, err := session.Document(ctx, target, network.WithReferer(data), network.WithXHR())
	if err != nil {
		return err
	}

	if server == localServer {
		return k.emitLocal(doc, emit)
	}

	src := doc.Find("div.iframe-container iframe").First().AttrOr("src", "")
	if src == "" {
		return source.ErrNotFound
	}

	emit(source.ExtractorLink{
		Source:  Name,
		Name:    Name + " " + server,
		URL:     source.FixURL(src, k.mainURL),
		Referer: k.mainURL + "/",
		Quality: source.Unknown,
	})
	return nil
}

func (k *Kuramanime) emitLocal(doc *goquery.Document, emit source.LinkFunc) error {
	videos := doc.Find("video#player > source")
	if videos.Length() == 0 {
		return source.ErrNotFound
	}

	videos.Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if src == "" {
			return
		}

		emit(source.ExtractorLink{
			Source:  Name,
			Name:    Name,
			URL:     source.FixURL(src, k.mainURL),
			Referer: k.mainURL + "/",
			Quality: source.QualityFromName(s.AttrOr("size", "")),
			Headers: map[string]string{"Range": "bytes=0-"},
		})
	})

	return nil
}
