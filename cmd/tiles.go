package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/parking-zones/internal/render"
)

var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "List the supported map tile providers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatTiles(cmd.OutOrStdout(), render.Providers(), cfg.Map.TileProvider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tilesCmd)
}

func formatTiles(out io.Writer, providers []render.TileProvider, current string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tMAX ZOOM\tURL")
	_, _ = fmt.Fprintln(w, "--\t----\t--------\t---")

	for _, p := range providers {
		id := p.ID
		if id == current {
			id += " *"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", id, p.Name, p.MaxZoom, p.URL)
	}
	_ = w.Flush()
}
