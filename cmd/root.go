package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/parking-zones/internal/config"
	"github.com/sells-group/parking-zones/internal/mapgen"
	"github.com/sells-group/parking-zones/internal/osm"
)

var cfg *config.Config

var (
	verbose   bool
	zonesFile string
)

var rootCmd = &cobra.Command{
	Use:   "parking-zones",
	Short: "Generate an interactive parking zones map",
	Long: "Fetches named streets around a center point from OpenStreetMap, assigns them to the configured " +
		"parking zones by name and writes a standalone HTML map with colored overlays and a legend.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return &mapgen.Error{Kind: mapgen.KindConfiguration, Op: "load config", Err: err}
		}

		if zonesFile != "" {
			zones, err := config.LoadZonesFile(zonesFile)
			if err != nil {
				return &mapgen.Error{Kind: mapgen.KindConfiguration, Op: "load zones file", Err: err}
			}
			c.Zones = zones
		}
		if verbose {
			c.Log.Level = "debug"
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return &mapgen.Error{Kind: mapgen.KindConfiguration, Op: "init logger", Err: err}
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&zonesFile, "zones-file", "", "YAML file with zone definitions (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(mapgen.ExitCode(err))
	}
}

// errorMessage formats err for the terminal.
func errorMessage(err error) string {
	msg := "Error: " + err.Error()
	if !mapgen.IsTransient(err) {
		return msg
	}

	msg += "\nThe map data service may be temporarily unavailable"
	if te := osm.AsTransient(err); te != nil {
		msg += " (" + te.Reason() + ")"
	}
	return msg + ". Check your internet connection and try again."
}
