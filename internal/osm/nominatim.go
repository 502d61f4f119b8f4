package osm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parking-zones/internal/model"
)

// Place is a geocoding result.
type Place struct {
	Point       model.Point
	DisplayName string
	Matched     bool
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text location with Nominatim. A query with no
// result is not an error; the returned Place has Matched set to false.
func (c *Client) Geocode(ctx context.Context, query string) (*Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Place{Matched: false}, nil
	}

	params := url.Values{
		"q":      {query},
		"format": {"jsonv2"},
		"limit":  {"1"},
	}
	reqURL := strings.TrimRight(c.nominatimURL, "/") + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "osm: nominatim build request")
	}

	body, err := c.do(ctx, req, "nominatim")
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, eris.Wrap(err, "osm: nominatim parse response")
	}
	if len(results) == 0 {
		return &Place{Matched: false}, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "osm: nominatim invalid lat %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "osm: nominatim invalid lon %q", results[0].Lon)
	}

	return &Place{
		Point:       model.Point{Lat: lat, Lon: lon},
		DisplayName: results[0].DisplayName,
		Matched:     true,
	}, nil
}
