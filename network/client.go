// Package network is the HTTP plumbing shared by providers: a tuned client,
// an optional Chrome TLS fingerprint and per-call cookie sessions.
package network

import (
	"net/http"
	"time"

	"github.com/kurasora/kurasora/key"
	"github.com/spf13/viper"
)

// Client is used for plain API calls that need no cookies (version check, metadata APIs).
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: transport,
}

var transport = newTransport()

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// roundTripper picks the transport according to network.spoof_tls.
func roundTripper() http.RoundTripper {
	if viper.GetBool(key.NetworkSpoofTLS) {
		return SpoofedTransport()
	}
	return transport
}

func timeout() time.Duration {
	if seconds := viper.GetInt(key.NetworkTimeout); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return time.Minute
}
