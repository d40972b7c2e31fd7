package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/key"
	"github.com/spf13/viper"
)

// Session is a cookie-holding HTTP client scoped to one provider call.
// Acquire it with NewSession and release it with Close; nothing is shared between sessions.
type Session struct {
	mu      sync.RWMutex
	client  *http.Client
	jar     *cookiejar.Jar
	headers http.Header
	closed  bool
}

// RequestOption tweaks a single request.
type RequestOption func(*http.Request)

// WithReferer sets the Referer header.
func WithReferer(referer string) RequestOption {
	return func(r *http.Request) {
		if referer != "" {
			r.Header.Set("Referer", referer)
		}
	}
}

// WithHeader sets an arbitrary header.
func WithHeader(name, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(name, value)
	}
}

// WithXHR marks the request as an XMLHttpRequest, which several players require.
func WithXHR() RequestOption {
	return WithHeader("X-Requested-With", "XMLHttpRequest")
}

// WithCookies attaches cookies in addition to the ones in the session jar.
func WithCookies(cookies map[string]string) RequestOption {
	return func(r *http.Request) {
		for name, value := range cookies {
			r.AddCookie(&http.Cookie{Name: name, Value: value})
		}
	}
}

// NewSession returns a session with an empty cookie jar and the configured User-Agent.
func NewSession() *Session {
	jar, _ := cookiejar.New(nil)

	headers := http.Header{}
	headers.Set("User-Agent", viper.GetString(key.NetworkUserAgent))
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return &Session{
		client: &http.Client{
			Timeout:   timeout(),
			Transport: roundTripper(),
			Jar:       jar,
		},
		jar:     jar,
		headers: headers,
	}
}

// Close drops the cookie jar. Further requests return ErrClosed.
// Pooled connections belong to the shared transport and stay open for other sessions.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.client.Jar = nil
	s.jar = nil
}

// Do sends a request and fails with a *StatusError on non-2xx responses.
// The caller closes the body.
func (s *Session) Do(ctx context.Context, method, rawURL string, body io.Reader, opts ...RequestOption) (*http.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for name, values := range s.headers {
		req.Header[name] = values
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	return resp, nil
}

// Get is a GET through Do.
func (s *Session) Get(ctx context.Context, rawURL string, opts ...RequestOption) (*http.Response, error) {
	return s.Do(ctx, http.MethodGet, rawURL, nil, opts...)
}

// PostForm sends form as application/x-www-form-urlencoded.
func (s *Session) PostForm(ctx context.Context, rawURL string, form url.Values, opts ...RequestOption) (*http.Response, error) {
	opts = append([]RequestOption{WithHeader("Content-Type", "application/x-www-form-urlencoded")}, opts...)
	return s.Do(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()), opts...)
}

// Text returns the body of a GET as a string.
func (s *Session) Text(ctx context.Context, rawURL string, opts ...RequestOption) (string, error) {
	resp, err := s.Get(ctx, rawURL, opts...)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(b), nil
}

// Document fetches rawURL and parses it as HTML.
func (s *Session) Document(ctx context.Context, rawURL string, opts ...RequestOption) (*goquery.Document, error) {
	resp, err := s.Get(ctx, rawURL, opts...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseDocument(resp)
}

// PostDocument posts form and parses the response as HTML.
func (s *Session) PostDocument(ctx context.Context, rawURL string, form url.Values, opts ...RequestOption) (*goquery.Document, error) {
	resp, err := s.PostForm(ctx, rawURL, form, opts...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseDocument(resp)
}

// JSON decodes the body of a GET into target.
func (s *Session) JSON(ctx context.Context, rawURL string, target any, opts ...RequestOption) error {
	opts = append([]RequestOption{WithHeader("Accept", "application/json")}, opts...)
	resp, err := s.Get(ctx, rawURL, opts...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeJSON(resp, target)
}

// PostFormJSON posts form and decodes the JSON answer into target.
func (s *Session) PostFormJSON(ctx context.Context, rawURL string, form url.Values, target any, opts ...RequestOption) error {
	resp, err := s.PostForm(ctx, rawURL, form, opts...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeJSON(resp, target)
}

// PostJSON sends payload as JSON and decodes the answer into target.
func (s *Session) PostJSON(ctx context.Context, rawURL string, payload, target any, opts ...RequestOption) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	opts = append([]RequestOption{
		WithHeader("Content-Type", "application/json"),
		WithHeader("Accept", "application/json"),
	}, opts...)

	resp, err := s.Do(ctx, http.MethodPost, rawURL, strings.NewReader(string(body)), opts...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeJSON(resp, target)
}

// Cookies returns the jar cookies that would be sent to rawURL.
func (s *Session) Cookies(rawURL string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cookies := make(map[string]string)
	if s.jar == nil {
		return cookies
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return cookies
	}

	for _, c := range s.jar.Cookies(u) {
		cookies[c.Name] = c.Value
	}
	return cookies
}

// ParseHTML parses an HTML fragment, e.g. markup stored in a data attribute.
func ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func parseDocument(resp *http.Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc.Url = resp.Request.URL
	return doc, nil
}

func decodeJSON(resp *http.Response, target any) error {
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", resp.Request.URL, err)
	}
	return nil
}
