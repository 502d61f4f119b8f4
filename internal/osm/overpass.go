package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/parking-zones/internal/model"
)

type overpassResponse struct {
	Remark   string            `json:"remark"`
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"geometry"`
}

// streetQuery builds an Overpass QL query for every named highway way within
// radiusMeters of center, returned with inline geometry.
func streetQuery(center model.Point, radiusMeters int, timeoutSecs int) string {
	return fmt.Sprintf(
		"[out:json][timeout:%d];way(around:%d,%.7f,%.7f)[\"highway\"][\"name\"];out tags geom;",
		timeoutSecs, radiusMeters, center.Lat, center.Lon,
	)
}

// FetchStreets returns the named streets within radiusMeters of center.
func (c *Client) FetchStreets(ctx context.Context, center model.Point, radiusMeters int) ([]model.Street, error) {
	timeoutSecs := int(c.timeout.Seconds())
	if timeoutSecs < 1 {
		timeoutSecs = 1
	}
	query := streetQuery(center, radiusMeters, timeoutSecs)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "osm: overpass build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	zap.L().Info("osm: retrieving street data",
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Int("radius_m", radiusMeters),
	)

	body, err := c.do(ctx, req, "overpass")
	if err != nil {
		return nil, err
	}

	var resp overpassResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "osm: overpass parse response")
	}

	// Overpass reports query timeouts and memory exhaustion as a remark on
	// an otherwise successful response.
	if resp.Remark != "" && strings.Contains(resp.Remark, "error") {
		return nil, &TransientError{
			Service: "overpass",
			Remark:  resp.Remark,
			Err:     eris.Errorf("osm: overpass %s", resp.Remark),
		}
	}

	streets := parseStreets(resp.Elements)
	zap.L().Info("osm: street data retrieved",
		zap.Int("elements", len(resp.Elements)),
		zap.Int("streets", len(streets)),
	)
	return streets, nil
}

// parseStreets converts named ways with at least two vertices into streets.
func parseStreets(elements []overpassElement) []model.Street {
	streets := make([]model.Street, 0, len(elements))
	for _, el := range elements {
		if el.Type != "way" {
			continue
		}
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}

		flat := make([]float64, 0, len(el.Geometry)*2)
		for _, pt := range el.Geometry {
			flat = append(flat, pt.Lon, pt.Lat)
		}

		s := model.Street{
			OSMID:    el.ID,
			Name:     name,
			Highway:  el.Tags["highway"],
			Geometry: geom.NewLineStringFlat(geom.XY, flat),
		}
		if s.NumPoints() < 2 {
			continue
		}
		streets = append(streets, s)
	}
	return streets
}
