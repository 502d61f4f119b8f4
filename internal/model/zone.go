package model

// Zone groups the streets that share a parking regulation. Streets holds the
// canonical street names as they appear in OpenStreetMap.
type Zone struct {
	ID      string   `json:"id" yaml:"id" mapstructure:"id"`
	Label   string   `json:"label" yaml:"label" mapstructure:"label"`
	Color   string   `json:"color" yaml:"color" mapstructure:"color"`
	Streets []string `json:"streets" yaml:"streets" mapstructure:"streets"`
}

// Location is a predefined map center offered by the web form.
type Location struct {
	Name string  `json:"name" yaml:"name" mapstructure:"name"`
	Lat  float64 `json:"lat" yaml:"lat" mapstructure:"lat"`
	Lon  float64 `json:"lon" yaml:"lon" mapstructure:"lon"`
}

// Point returns the location as a coordinate.
func (l Location) Point() Point {
	return Point{Lat: l.Lat, Lon: l.Lon}
}
