package osm

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

// newTestClient creates a client pointed at a test server with rate limiting
// disabled.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(
		WithNominatimURL(srv.URL),
		WithOverpassURL(srv.URL+"/api/interpreter"),
		WithUserAgent("parking-zones-test"),
	)
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c, srv
}
