package ownhttp

import (
	"math"
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport waits for the limiter before every request
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := tt.limiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}

	return tt.T.RoundTrip(req)
}

// NewThrottleTransport wraps T (or the default transport if T is nil)
func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = defaultTransport
	}
	return &ThrottleTransport{T, limiter}
}

// NewLimiter allows perSecond requests per second with bursts of the same size
func NewLimiter(perSecond float64) *rate.Limiter {
	burst := int(math.Ceil(perSecond))
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
