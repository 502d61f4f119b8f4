package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/parking-zones/internal/config"
	"github.com/sells-group/parking-zones/internal/mapgen"
)

var genFlags struct {
	lat    float64
	lon    float64
	output string
	tile   string
	radius int
	place  string
}

func init() {
	f := rootCmd.Flags()
	f.Float64Var(&genFlags.lat, "lat", config.DefaultCenterLat, "latitude of the map center")
	f.Float64Var(&genFlags.lon, "lon", config.DefaultCenterLon, "longitude of the map center")
	f.StringVarP(&genFlags.output, "output", "o", config.DefaultOutput, "output HTML file")
	f.StringVarP(&genFlags.tile, "tile-provider", "t", config.DefaultTile, "map tile provider (openstreetmap, cyclosm, cartodb-positron)")
	f.IntVar(&genFlags.radius, "radius", 0, "search radius in meters (default from config)")
	f.StringVar(&genFlags.place, "place", "", "free-text location to geocode instead of --lat/--lon")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := generateRequest(cmd)
	output := cfg.Map.Output
	if cmd.Flags().Changed("output") || output == "" {
		output = genFlags.output
	}

	client := newOSMClient(cfg.OSM)
	gen := mapgen.New(cfg, client, client)

	zap.L().Info("generating parking zones map",
		zap.Float64("lat", req.Center.Lat),
		zap.Float64("lon", req.Center.Lon),
		zap.String("place", req.Place),
		zap.Int("radius_m", req.RadiusMeters),
		zap.String("tile", req.TileProvider),
		zap.String("output", output),
	)

	res, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	if err := mapgen.WriteFile(output, res.HTML); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Map saved to %s (%d streets assigned, %d missing)\n",
		output, res.Classification.Total(), len(res.Classification.Missing))
	return nil
}

// generateRequest merges command flags over the configured map settings.
// Flags win only when set explicitly.
func generateRequest(cmd *cobra.Command) mapgen.Request {
	flags := cmd.Flags()

	center := cfg.Map.Center()
	if flags.Changed("lat") {
		center.Lat = genFlags.lat
	}
	if flags.Changed("lon") {
		center.Lon = genFlags.lon
	}

	radius := cfg.Map.RadiusMeters
	if flags.Changed("radius") {
		radius = genFlags.radius
	}

	tile := cfg.Map.TileProvider
	if flags.Changed("tile-provider") || tile == "" {
		tile = genFlags.tile
	}

	return mapgen.Request{
		Center:       center,
		RadiusMeters: radius,
		TileProvider: tile,
		Place:        genFlags.place,
	}
}
