package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/parking-zones/internal/model"
	"github.com/sells-group/parking-zones/internal/zone"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the configured parking zones and their streets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatZones(cmd.OutOrStdout(), cfg.Zones)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(zonesCmd)
}

func formatZones(out io.Writer, zones []model.Zone) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tLABEL\tCOLOR\tSTREETS")
	_, _ = fmt.Fprintln(w, "--\t-----\t-----\t-------")

	for _, z := range zones {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", z.ID, z.Label, z.Color, len(z.Streets))
	}
	_ = w.Flush()

	for _, z := range zones {
		_, _ = fmt.Fprintf(out, "\n%s:\n", z.Label)
		for _, s := range z.Streets {
			_, _ = fmt.Fprintf(out, "  %s\n", s)
		}
	}

	if overlaps := zone.Overlaps(zones); len(overlaps) > 0 {
		_, _ = fmt.Fprintf(out, "\nlisted in more than one zone (first zone wins): %s\n", strings.Join(overlaps, ", "))
	}
}
