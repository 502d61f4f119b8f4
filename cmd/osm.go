package main

import (
	"time"

	"github.com/sells-group/parking-zones/internal/config"
	"github.com/sells-group/parking-zones/internal/osm"
)

func newOSMClient(c config.OSMConfig) *osm.Client {
	return osm.NewClient(
		osm.WithNominatimURL(c.NominatimURL),
		osm.WithOverpassURL(c.OverpassURL),
		osm.WithUserAgent(c.UserAgent),
		osm.WithTimeout(time.Duration(c.TimeoutSecs)*time.Second),
		osm.WithRateLimit(c.RateLimit),
	)
}
