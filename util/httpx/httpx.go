// Package httpx holds the shared outbound HTTP client used by the
// payment gateway repository.
package httpx

import (
	"net"
	"net/http"
	"time"
)

var transport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:        50,
	MaxConnsPerHost:     50,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

var shared = &http.Client{
	Timeout:   15 * time.Second,
	Transport: transport,
}

// Client returns the shared client. Callers must not mutate it.
func Client() *http.Client { return shared }

// WithTimeout returns a client on the shared transport with its own
// overall deadline.
func WithTimeout(d time.Duration) *http.Client {
	return &http.Client{Timeout: d, Transport: transport}
}
