package mapgen

import (
	"context"

	"github.com/twpayne/go-geom"

	"github.com/sells-group/parking-zones/internal/model"
	"github.com/sells-group/parking-zones/internal/osm"
)

type fakeFetcher struct {
	streets []model.Street
	err     error
	calls   int
	center  model.Point
	radius  int
}

func (f *fakeFetcher) FetchStreets(_ context.Context, center model.Point, radiusMeters int) ([]model.Street, error) {
	f.calls++
	f.center = center
	f.radius = radiusMeters
	return f.streets, f.err
}

type fakeGeocoder struct {
	place *osm.Place
	err   error
	calls int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (*osm.Place, error) {
	f.calls++
	return f.place, f.err
}

func testStreet(id int64, name string) model.Street {
	return model.Street{
		OSMID:    id,
		Name:     name,
		Highway:  "residential",
		Geometry: geom.NewLineStringFlat(geom.XY, []float64{20.39, 45.38, 20.40, 45.39}),
	}
}
