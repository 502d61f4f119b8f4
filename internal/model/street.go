// Package model defines the value types shared by the street fetcher, the
// zone classifier and the map renderer.
package model

import "github.com/twpayne/go-geom"

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

// Street is a named way returned by the street data source.
type Street struct {
	OSMID    int64
	Name     string
	Highway  string
	Geometry *geom.LineString // XY layout: X = lon, Y = lat
}

// NumPoints returns the number of vertices in the street geometry.
func (s Street) NumPoints() int {
	if s.Geometry == nil {
		return 0
	}
	return s.Geometry.NumCoords()
}
