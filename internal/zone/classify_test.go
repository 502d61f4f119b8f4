package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/parking-zones/internal/model"
)

func street(id int64, name string, coords ...float64) model.Street {
	if len(coords) == 0 {
		coords = []float64{20.39, 45.38, 20.40, 45.39}
	}
	return model.Street{
		OSMID:    id,
		Name:     name,
		Highway:  "residential",
		Geometry: geom.NewLineStringFlat(geom.XY, coords),
	}
}

func ids(streets []model.Street) []int64 {
	out := make([]int64, 0, len(streets))
	for _, s := range streets {
		out = append(out, s.OSMID)
	}
	return out
}

func TestClassify_MatchAndMissing(t *testing.T) {
	zones := []model.Zone{{ID: "red", Streets: []string{"Main St", "Oak Ave"}}}
	streets := []model.Street{street(1, "Main St"), street(2, "Elm St")}

	res := Classify(streets, zones)

	require.Contains(t, res.Zones, "red")
	assert.Equal(t, []int64{1}, ids(res.Zones["red"]))
	assert.Equal(t, []string{"Oak Ave"}, res.Missing)
	assert.Equal(t, 1, res.Unassigned)
}

func TestClassify_EmptyStreets(t *testing.T) {
	zones := []model.Zone{
		{ID: "red", Streets: []string{"Пупинова", "Немањина"}},
		{ID: "green", Streets: []string{"Обилићева"}},
	}

	res := Classify(nil, zones)

	assert.ElementsMatch(t, []string{"Пупинова", "Немањина", "Обилићева"}, res.Missing)
	assert.Empty(t, res.Zones["red"])
	assert.Empty(t, res.Zones["green"])
	assert.Equal(t, 0, res.Total())
}

func TestClassify_EmptyZones(t *testing.T) {
	res := Classify([]model.Street{street(1, "Main St")}, nil)

	assert.Empty(t, res.Zones)
	assert.Empty(t, res.Missing)
	assert.Equal(t, 1, res.Unassigned)
}

func TestClassify_DuplicateSegmentsAllKept(t *testing.T) {
	zones := []model.Zone{{ID: "yellow", Streets: []string{"Цара Душана"}}}
	streets := []model.Street{
		street(10, "Цара Душана"),
		street(11, "Цара Душана", 20.41, 45.37, 20.42, 45.38),
		street(12, "Цара Душана"),
	}

	res := Classify(streets, zones)

	assert.Equal(t, []int64{10, 11, 12}, ids(res.Zones["yellow"]))
	assert.Empty(t, res.Missing)
}

func TestClassify_CaseAndWhitespaceInsensitive(t *testing.T) {
	zones := []model.Zone{{ID: "red", Streets: []string{"  краља   петра првог "}}}
	streets := []model.Street{street(1, "Краља Петра Првог")}

	res := Classify(streets, zones)

	assert.Equal(t, []int64{1}, ids(res.Zones["red"]))
	assert.Empty(t, res.Missing)
}

func TestClassify_NoSpuriousColoring(t *testing.T) {
	zones := []model.Zone{
		{ID: "red", Streets: []string{"Main St"}},
		{ID: "green", Streets: []string{"Oak Ave"}},
	}
	streets := []model.Street{street(1, "Main St"), street(2, "Elm St"), street(3, "Oak Ave"), street(4, "")}

	res := Classify(streets, zones)

	for id, assigned := range res.Zones {
		for _, s := range assigned {
			assert.NotEqual(t, "Elm St", s.Name, "zone %s colored an unconfigured street", id)
			assert.NotEmpty(t, s.Name)
		}
	}
	assert.Equal(t, 1, res.Unassigned)
}

func TestClassify_OverlapFirstZoneWins(t *testing.T) {
	zones := []model.Zone{
		{ID: "red", Streets: []string{"Main St"}},
		{ID: "green", Streets: []string{"main st", "Oak Ave"}},
	}
	streets := []model.Street{street(1, "Main St")}

	res := Classify(streets, zones)

	assert.Equal(t, []int64{1}, ids(res.Zones["red"]))
	assert.Empty(t, res.Zones["green"])
	assert.Equal(t, []string{"Oak Ave"}, res.Missing)
}

func TestClassify_MissingReportedOnce(t *testing.T) {
	zones := []model.Zone{
		{ID: "red", Streets: []string{"Oak Ave", "oak ave"}},
		{ID: "green", Streets: []string{"OAK AVE"}},
	}

	res := Classify(nil, zones)

	assert.Equal(t, []string{"Oak Ave"}, res.Missing)
}

func TestClassify_Deterministic(t *testing.T) {
	zones := []model.Zone{
		{ID: "red", Streets: []string{"A", "B", "C"}},
		{ID: "yellow", Streets: []string{"D", "E"}},
	}
	streets := []model.Street{street(1, "A"), street(2, "E"), street(3, "A"), street(4, "X")}

	first := Classify(streets, zones)
	second := Classify(streets, zones)

	assert.Equal(t, first.Counts(), second.Counts())
	for id := range first.Zones {
		assert.ElementsMatch(t, ids(first.Zones[id]), ids(second.Zones[id]))
	}
	assert.ElementsMatch(t, first.Missing, second.Missing)
}

func TestClassify_EveryConfiguredNameAccountedFor(t *testing.T) {
	zones := []model.Zone{
		{ID: "red", Streets: []string{"A", "B"}},
		{ID: "green", Streets: []string{"C", "D"}},
	}
	streets := []model.Street{street(1, "B"), street(2, "C")}

	res := Classify(streets, zones)

	for _, z := range zones {
		for _, name := range z.Streets {
			found := false
			for _, s := range res.Zones[z.ID] {
				if Normalize(s.Name) == Normalize(name) {
					found = true
				}
			}
			missingCount := 0
			for _, m := range res.Missing {
				if m == name {
					missingCount++
				}
			}
			if found {
				assert.Zero(t, missingCount, "matched street %q reported missing", name)
			} else {
				assert.Equal(t, 1, missingCount, "street %q should be missing exactly once", name)
			}
		}
	}
}

func TestOverlaps(t *testing.T) {
	zones := []model.Zone{
		{ID: "red", Streets: []string{"Main St", "Oak Ave", "Main St"}},
		{ID: "green", Streets: []string{"MAIN ST", "Elm St"}},
		{ID: "yellow", Streets: []string{"elm  st"}},
	}

	assert.Equal(t, []string{"elm st", "main st"}, Overlaps(zones))
	assert.Empty(t, Overlaps(zones[:1]))
}

func TestResult_CountsAndTotal(t *testing.T) {
	res := Result{Zones: map[string][]model.Street{
		"red":   {street(1, "A"), street(2, "A")},
		"green": {},
	}}

	assert.Equal(t, map[string]int{"red": 2, "green": 0}, res.Counts())
	assert.Equal(t, 2, res.Total())
}
