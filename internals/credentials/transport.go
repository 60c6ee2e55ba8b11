package credentials

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Transport adds the stored credentials to requests for known hosts
type Transport struct {
	Base  http.RoundTripper
	Store *Store
}

// RoundTrip authenticates requests to hosts with credentials.
// Tokens are sent as bearer tokens, user and password with basic auth
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	creds, err := t.Store.Get(req.URL.Host)
	if err != nil || req.Header.Get("Authorization") != "" {
		return base.RoundTrip(req)
	}

	if creds.Token != nil {
		auth := &oauth2.Transport{
			Source: oauth2.StaticTokenSource(creds.Token),
			Base:   base,
		}
		return auth.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.SetBasicAuth(creds.User, creds.Password)
	return base.RoundTrip(req)
}

// WrapClient returns a copy of client that uses the Transport
func (s *Store) WrapClient(client *http.Client) *http.Client {
	wrapped := *client
	wrapped.Transport = &Transport{Base: client.Transport, Store: s}
	return &wrapped
}
