// Package render produces the interactive Leaflet map for a zone
// classification as a standalone HTML document.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html"
	"html/template"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/parking-zones/internal/model"
)

//go:embed map.html.tmpl
var mapTemplate string

var pageTmpl = template.Must(template.New("map").Parse(mapTemplate))

const defaultZoom = 14

// Options controls the map presentation.
type Options struct {
	Title        string
	Center       model.Point
	RadiusMeters int
	Zoom         int
	Tile         TileProvider
	LegendTitle  string
	MarkerPopup  string
	LineWeight   float64
	LineOpacity  float64
}

type pageData struct {
	Title       string
	LegendTitle string
	Legend      []legendEntry
	Map         mapData
}

type legendEntry struct {
	Label string
	Color string
}

type mapData struct {
	Center    [2]float64    `json:"center"`
	Zoom      int           `json:"zoom"`
	MaxBounds [2][2]float64 `json:"maxBounds"`
	Tile      TileProvider  `json:"tile"`
	Layers    []layerData   `json:"layers"`
	Marker    markerData    `json:"marker"`
	Weight    float64       `json:"weight"`
	Opacity   float64       `json:"opacity"`
}

type layerData struct {
	ZoneID   string          `json:"zoneId"`
	Label    string          `json:"label"`
	Color    string          `json:"color"`
	Count    int             `json:"count"`
	Features json.RawMessage `json:"features"`
}

type markerData struct {
	Popup string `json:"popup"`
}

// Render writes the map document for the assigned streets. One layer is
// emitted per zone in zones order, including zones with no streets.
func Render(w io.Writer, opts Options, zones []model.Zone, assigned map[string][]model.Street) error {
	if opts.Zoom <= 0 {
		opts.Zoom = defaultZoom
	}

	data := pageData{
		Title:       opts.Title,
		LegendTitle: opts.LegendTitle,
		Map: mapData{
			Center:    [2]float64{opts.Center.Lat, opts.Center.Lon},
			Zoom:      opts.Zoom,
			MaxBounds: viewportBounds(opts.Center, opts.RadiusMeters),
			Tile:      opts.Tile,
			Marker:    markerData{Popup: opts.MarkerPopup},
			Weight:    opts.LineWeight,
			Opacity:   opts.LineOpacity,
		},
	}

	for _, z := range zones {
		features, err := zoneFeatures(z, assigned[z.ID])
		if err != nil {
			return err
		}
		label := z.Label
		if label == "" {
			label = zoneTitle(z.ID)
		}
		data.Legend = append(data.Legend, legendEntry{Label: label, Color: z.Color})
		data.Map.Layers = append(data.Map.Layers, layerData{
			ZoneID:   z.ID,
			Label:    label,
			Color:    z.Color,
			Count:    len(assigned[z.ID]),
			Features: features,
		})
	}

	if err := pageTmpl.Execute(w, data); err != nil {
		return eris.Wrap(err, "render: execute map template")
	}
	return nil
}

// RenderBytes renders the map document into memory.
func RenderBytes(opts Options, zones []model.Zone, assigned map[string][]model.Street) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, opts, zones, assigned); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// zoneFeatures encodes the streets of one zone as a GeoJSON FeatureCollection.
func zoneFeatures(z model.Zone, streets []model.Street) (json.RawMessage, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(streets))}
	title := zoneTitle(z.ID)
	for _, s := range streets {
		if s.Geometry == nil {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: s.Geometry,
			Properties: map[string]any{
				"osm_id": s.OSMID,
				"name":   s.Name,
				"zone":   z.ID,
				"popup":  popupHTML(s.Name, title),
			},
		})
	}

	raw, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrapf(err, "render: encode zone %s features", z.ID)
	}
	return raw, nil
}

// popupHTML builds the escaped popup body for a street.
func popupHTML(street, zone string) string {
	return "Улица: " + html.EscapeString(street) + "<br>Зона: " + html.EscapeString(zone)
}

// zoneTitle capitalizes a zone ID for display, e.g. "red" -> "Red".
func zoneTitle(id string) string {
	return cases.Title(language.Und).String(id)
}

// viewportBounds returns the south-west and north-east corners of the box
// enclosing the search radius, as [lat, lon] pairs.
func viewportBounds(center model.Point, radiusMeters int) [2][2]float64 {
	if radiusMeters <= 0 {
		return [2][2]float64{{center.Lat, center.Lon}, {center.Lat, center.Lon}}
	}
	b := geo.NewBoundAroundPoint(orb.Point{center.Lon, center.Lat}, float64(radiusMeters))
	return [2][2]float64{
		{b.Min.Lat(), b.Min.Lon()},
		{b.Max.Lat(), b.Max.Lon()},
	}
}
