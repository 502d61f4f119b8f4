// Package mapgen runs one map generation: validate the request, fetch the
// streets, classify them into zones and render the map document.
package mapgen

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/parking-zones/internal/config"
	"github.com/sells-group/parking-zones/internal/model"
	"github.com/sells-group/parking-zones/internal/osm"
	"github.com/sells-group/parking-zones/internal/render"
	"github.com/sells-group/parking-zones/internal/zone"
)

// StreetFetcher returns the named streets around a point.
type StreetFetcher interface {
	FetchStreets(ctx context.Context, center model.Point, radiusMeters int) ([]model.Street, error)
}

// Geocoder resolves a free-text location.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*osm.Place, error)
}

// Request holds the per-invocation parameters.
type Request struct {
	Center       model.Point
	RadiusMeters int `validate:"gt=0,lte=20000"`
	TileProvider string
	// Place, when set, is geocoded and replaces Center.
	Place string
}

// Result is a generated map.
type Result struct {
	HTML           []byte
	Center         model.Point
	PlaceName      string
	Tile           render.TileProvider
	Streets        int
	Classification zone.Result
}

// Generator produces parking zone maps. It is safe for concurrent use; each
// call works on its own data.
type Generator struct {
	cfg      *config.Config
	fetcher  StreetFetcher
	geocoder Geocoder
	validate *validator.Validate
}

// New creates a Generator. cfg is read but never modified.
func New(cfg *config.Config, fetcher StreetFetcher, geocoder Geocoder) *Generator {
	return &Generator{
		cfg:      cfg,
		fetcher:  fetcher,
		geocoder: geocoder,
		validate: validator.New(),
	}
}

// DefaultRequest builds a request from the configured map settings.
func (g *Generator) DefaultRequest() Request {
	return Request{
		Center:       g.cfg.Map.Center(),
		RadiusMeters: g.cfg.Map.RadiusMeters,
		TileProvider: g.cfg.Map.TileProvider,
	}
}

// Generate runs the full pipeline and returns the rendered map.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, newError(KindConfiguration, "validate zones", err)
	}

	res := &Result{}

	if strings.TrimSpace(req.Place) != "" {
		place, err := g.geocode(ctx, req.Place)
		if err != nil {
			return nil, err
		}
		req.Center = place.Point
		res.PlaceName = place.DisplayName
	}

	if err := g.validate.Struct(req); err != nil {
		return nil, newError(KindInput, "validate request", eris.Wrap(err, "mapgen: invalid coordinates or radius"))
	}

	tile, err := render.LookupProvider(req.TileProvider)
	if err != nil {
		return nil, newError(KindConfiguration, "resolve tile provider", err)
	}

	log := zap.L().With(
		zap.Float64("lat", req.Center.Lat),
		zap.Float64("lon", req.Center.Lon),
		zap.Int("radius_m", req.RadiusMeters),
		zap.String("tile", tile.ID),
	)

	streets, err := g.fetcher.FetchStreets(ctx, req.Center, req.RadiusMeters)
	if err != nil {
		fe := newError(KindDataFetch, "fetch streets", eris.Wrap(err, "mapgen: street data unavailable"))
		fe.Transient = osm.IsTransient(err)
		return nil, fe
	}
	if len(streets) == 0 {
		return nil, newError(KindDataFetch, "fetch streets", eris.New("mapgen: no named streets found in the search area"))
	}
	log.Info("mapgen: streets fetched", zap.Int("streets", len(streets)))

	for _, name := range zone.Overlaps(g.cfg.Zones) {
		log.Warn("mapgen: street configured in several zones, first zone wins", zap.String("street", name))
	}

	classification := zone.Classify(streets, g.cfg.Zones)
	classification.LogSummary(g.cfg.Zones)
	log.Debug("mapgen: classification complete",
		zap.Int("assigned", classification.Total()),
		zap.Int("unassigned", classification.Unassigned),
		zap.Int("missing", len(classification.Missing)),
	)

	html, err := render.RenderBytes(render.Options{
		Title:        g.cfg.Map.Title,
		Center:       req.Center,
		RadiusMeters: req.RadiusMeters,
		Zoom:         g.cfg.Map.ZoomStart,
		Tile:         tile,
		LegendTitle:  g.cfg.Map.LegendTitle,
		MarkerPopup:  g.cfg.Map.MarkerPopup,
		LineWeight:   g.cfg.Map.LineWeight,
		LineOpacity:  g.cfg.Map.LineOpacity,
	}, g.cfg.Zones, classification.Zones)
	if err != nil {
		return nil, newError(KindConfiguration, "render map", err)
	}

	res.HTML = html
	res.Center = req.Center
	res.Tile = tile
	res.Streets = len(streets)
	res.Classification = classification
	return res, nil
}

func (g *Generator) geocode(ctx context.Context, query string) (*osm.Place, error) {
	if g.geocoder == nil {
		return nil, newError(KindConfiguration, "geocode place", eris.New("mapgen: no geocoder configured"))
	}

	place, err := g.geocoder.Geocode(ctx, query)
	if err != nil {
		fe := newError(KindDataFetch, "geocode place", eris.Wrapf(err, "mapgen: geocode %q", query))
		fe.Transient = osm.IsTransient(err)
		return nil, fe
	}
	if place == nil || !place.Matched {
		return nil, newError(KindInput, "geocode place", eris.Errorf("mapgen: location %q not found", query))
	}

	zap.L().Info("mapgen: location geocoded",
		zap.String("query", query),
		zap.String("display_name", place.DisplayName),
	)
	return place, nil
}
