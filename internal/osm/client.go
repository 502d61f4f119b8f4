// Package osm queries OpenStreetMap services: Nominatim for geocoding and
// Overpass for the named streets around a point.
package osm

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	defaultUserAgent    = "parking-zones/1.0"
	defaultTimeout      = 60 * time.Second

	// timeoutSlack keeps the HTTP client waiting past the Overpass
	// [timeout:N] so the server's own timeout remark can arrive.
	timeoutSlack = 10 * time.Second
)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for Nominatim and Overpass requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithNominatimURL overrides the Nominatim base URL.
func WithNominatimURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.nominatimURL = u
		}
	}
}

// WithOverpassURL overrides the Overpass interpreter URL.
func WithOverpassURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.overpassURL = u
		}
	}
}

// WithUserAgent sets the User-Agent header. The public OSM services reject
// requests without an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the server-side Overpass timeout. The default HTTP client
// waits timeoutSlack longer.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit sets the requests-per-second limit shared by both services.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			burst := int(rps)
			if burst < 1 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// Client talks to Nominatim and Overpass.
type Client struct {
	httpClient   *http.Client
	nominatimURL string
	overpassURL  string
	userAgent    string
	timeout      time.Duration
	limiter      *rate.Limiter
}

// NewClient creates a new OSM client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		nominatimURL: defaultNominatimURL,
		overpassURL:  defaultOverpassURL,
		userAgent:    defaultUserAgent,
		timeout:      defaultTimeout,
		limiter:      rate.NewLimiter(1, 1), // Nominatim usage policy: 1 req/s
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout + timeoutSlack}
	}
	return c
}
