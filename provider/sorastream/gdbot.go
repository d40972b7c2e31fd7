package sorastream

import (
	"context"
	"net/url"

	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/source"
)

// ExtractGdbot resolves a gdtot share link into a direct download through gdbot.
// gdbot answers the form only with its CSRF token and the session cookies set on the landing page.
func ExtractGdbot(ctx context.Context, gdbotURL, link string) (string, error) {
	session := network.NewSession()
	defer session.Close()

	landing, err := session.Document(ctx, gdbotURL+"/")
	if err != nil {
		return "", err
	}

	token := landing.Find("input[name=_token]").AttrOr("value", "")
	if token == "" {
		return "", source.ErrNotFound
	}

	cookies := session.Cookies(gdbotURL)
	if cookies["XSRF-TOKEN"] == "" || cookies["gdtot_proxy_session"] == "" {
		return "", source.ErrNotFound
	}

	form := url.Values{}
	form.Set("link", link)
	form.Set("_token", token)

	result, err := session.PostDocument(ctx, gdbotURL+"/file", form, network.WithReferer(gdbotURL+"/"))
	if err != nil {
		return "", err
	}

	href := result.Find("div.mt-8 a.float-right").First().AttrOr("href", "")
	if href == "" {
		return "", source.ErrNotFound
	}
	return href, nil
}
