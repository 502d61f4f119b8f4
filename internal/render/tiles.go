package render

import (
	"sort"

	"github.com/rotisserie/eris"
)

// TileProvider describes a raster basemap.
type TileProvider struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Subdomains  string `json:"subdomains"`
	MaxZoom     int    `json:"max_zoom"`
}

const osmAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

var providers = map[string]TileProvider{
	"openstreetmap": {
		ID:          "openstreetmap",
		Name:        "OpenStreetMap",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: osmAttribution,
		MaxZoom:     19,
	},
	"cyclosm": {
		ID:          "cyclosm",
		Name:        "CyclOSM",
		URL:         "https://{s}.tile-cyclosm.openstreetmap.fr/cyclosm/{z}/{x}/{y}.png",
		Attribution: `<a href="https://github.com/cyclosm/cyclosm-cartocss-style/releases">CyclOSM</a> | Map data: ` + osmAttribution,
		Subdomains:  "abc",
		MaxZoom:     20,
	},
	"cartodb-positron": {
		ID:          "cartodb-positron",
		Name:        "CartoDB Positron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
}

// LookupProvider returns the tile provider registered under id.
func LookupProvider(id string) (TileProvider, error) {
	p, ok := providers[id]
	if !ok {
		return TileProvider{}, eris.Errorf("render: unsupported tile provider %q (supported: %v)", id, ProviderIDs())
	}
	return p, nil
}

// Providers returns all tile providers sorted by ID.
func Providers() []TileProvider {
	out := make([]TileProvider, 0, len(providers))
	for _, p := range providers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ProviderIDs returns the supported provider IDs, sorted.
func ProviderIDs() []string {
	ids := make([]string, 0, len(providers))
	for id := range providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
