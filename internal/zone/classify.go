// Package zone assigns fetched streets to configured parking zones by name.
package zone

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/parking-zones/internal/model"
)

// Result is the outcome of a classification pass.
type Result struct {
	// Zones maps a zone ID to the streets assigned to it. Every configured
	// zone has an entry, possibly empty.
	Zones map[string][]model.Street

	// Missing lists configured street names that matched no fetched street,
	// in configuration order. Each name appears once.
	Missing []string

	// Unassigned counts fetched streets whose name belongs to no zone.
	Unassigned int
}

// Classify matches streets against the zones. A configured name claimed by
// an earlier zone is skipped by later zones (first-matching-zone-wins), so a
// street is assigned to at most one zone. All streets sharing a matched name
// are kept; OSM splits one street into many ways.
func Classify(streets []model.Street, zones []model.Zone) Result {
	index := make(map[string][]model.Street, len(streets))
	for _, s := range streets {
		key := Normalize(s.Name)
		if key == "" {
			continue
		}
		index[key] = append(index[key], s)
	}

	res := Result{Zones: make(map[string][]model.Street, len(zones))}
	claimed := make(map[string]string)

	for _, z := range zones {
		assigned := res.Zones[z.ID]
		if assigned == nil {
			assigned = []model.Street{}
		}

		for _, name := range z.Streets {
			key := Normalize(name)
			if key == "" {
				continue
			}
			if owner, ok := claimed[key]; ok {
				if owner != z.ID {
					zap.L().Debug("zone: street already claimed by earlier zone",
						zap.String("street", name),
						zap.String("zone", z.ID),
						zap.String("owner", owner),
					)
				}
				continue
			}
			claimed[key] = z.ID

			matches, ok := index[key]
			if !ok {
				res.Missing = append(res.Missing, name)
				continue
			}
			assigned = append(assigned, matches...)
		}

		res.Zones[z.ID] = assigned
	}

	for key, matches := range index {
		if _, ok := claimed[key]; !ok {
			res.Unassigned += len(matches)
		}
	}

	return res
}

// Overlaps returns the normalized street names configured in more than one
// zone, sorted.
func Overlaps(zones []model.Zone) []string {
	seen := make(map[string]string)
	dup := make(map[string]bool)
	for _, z := range zones {
		for _, name := range z.Streets {
			key := Normalize(name)
			if key == "" {
				continue
			}
			if owner, ok := seen[key]; ok && owner != z.ID {
				dup[key] = true
				continue
			}
			seen[key] = z.ID
		}
	}

	out := make([]string, 0, len(dup))
	for key := range dup {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Counts returns the number of street segments assigned to each zone.
func (r Result) Counts() map[string]int {
	counts := make(map[string]int, len(r.Zones))
	for id, streets := range r.Zones {
		counts[id] = len(streets)
	}
	return counts
}

// Total returns the number of street segments assigned to any zone.
func (r Result) Total() int {
	n := 0
	for _, streets := range r.Zones {
		n += len(streets)
	}
	return n
}

// LogSummary writes per-zone segment counts and the missing street names to
// the global logger.
func (r Result) LogSummary(zones []model.Zone) {
	for _, z := range zones {
		zap.L().Info("zone: street segments found",
			zap.String("zone", z.ID),
			zap.Int("segments", len(r.Zones[z.ID])),
		)
	}

	if len(r.Missing) == 0 {
		return
	}

	missing := append([]string(nil), r.Missing...)
	sort.Strings(missing)
	zap.L().Warn("zone: no map data for configured streets", zap.Int("count", len(missing)))
	for _, name := range missing {
		zap.L().Warn("zone: missing street", zap.String("street", name))
	}
}
