package ownhttp

import (
	"net"
	"net/http"
	"time"
)

// UserAgent is sent with every request of clients created by New
var UserAgent = "xsboot/dev"

// AddHeaderTransport sets default headers on every request
type AddHeaderTransport struct {
	T       http.RoundTripper
	Headers http.Header
}

// RoundTrip sets the headers (if they are not set already) and delegates to T
func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, values := range adt.Headers {
		if req.Header.Get(key) != "" {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport returns a transport that sets the User-Agent header
func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = defaultTransport
	}
	headers := http.Header{}
	headers.Set("User-Agent", UserAgent)
	return &AddHeaderTransport{T, headers}
}

var defaultTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	TLSHandshakeTimeout:   20 * time.Second,
	ResponseHeaderTimeout: 60 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	MaxIdleConnsPerHost:   16,
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}

// NewThrottled is like New but limits requests to perSecond requests per second.
// A perSecond value <= 0 disables throttling
func NewThrottled(perSecond float64) *http.Client {
	if perSecond <= 0 {
		return New()
	}
	return &http.Client{Transport: NewAddHeaderTransport(NewThrottleTransport(nil, NewLimiter(perSecond)))}
}
