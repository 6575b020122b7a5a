package citygrow

import (
	"fmt"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citygrow/internal/roads"
)

var (
	// ErrNoRoads implies there is nowhere to build yet.
	ErrNoRoads = fmt.Errorf("no roads")

	// ErrNoExtractableResource implies a producer that doesn't say what it
	// extracts.
	ErrNoExtractableResource = fmt.Errorf("no extraction resource")

	// ErrNoResourceOnRoad implies no road passes over a rich enough deposit
	// of what a producer extracts.
	ErrNoResourceOnRoad = fmt.Errorf("no resource on road")

	// ErrExtractorNearby implies every suitable deposit along the roads is
	// already being worked by a building extracting the same resource.
	ErrExtractorNearby = fmt.Errorf("extractor nearby")
)

// Viable returns nil if it's worth looking for a site for the given building
// definition, otherwise an error saying why not.
//
// Producers need a road passing over their resource (richness above
// Config.MinResourceRichness) at a point with no other extractor of that
// resource within their ExtractionRadius. Residences are always viable,
// deciding if homes are needed is up to the caller.
func Viable(def *BuildingDef, net roads.View, resources Resources, buildings []*Building, cfg *Config) error {
	if net.SegmentCount() == 0 {
		return ErrNoRoads
	}
	if def.Category != Producer {
		return nil
	}
	if def.Extracts == "" {
		return ErrNoExtractableResource
	}

	onRoad := false
	for _, sid := range net.SegmentIDs() {
		samples, ok := net.Samples(sid, cfg.SearchDensity)
		if !ok {
			continue
		}
		for _, s := range samples {
			cell, ok := resources.ResourceAt(s.X, s.Z)
			if !ok || cell.Resource != def.Extracts || cell.Richness <= cfg.MinResourceRichness {
				continue
			}
			onRoad = true
			if !extractorNear(model2d.XY(s.X, s.Z), def, buildings) {
				return nil
			}
		}
	}

	if onRoad {
		return ErrExtractorNearby
	}
	return ErrNoResourceOnRoad
}

// RoadResources returns every resource found (at any richness) under the
// road network, most specific first.
func RoadResources(net roads.View, resources Resources, density int) []Resource {
	seen := map[Resource]bool{}
	found := []Resource{}

	for _, sid := range net.SegmentIDs() {
		samples, ok := net.Samples(sid, density)
		if !ok {
			continue
		}
		for _, s := range samples {
			cell, ok := resources.ResourceAt(s.X, s.Z)
			if !ok || seen[cell.Resource] {
				continue
			}
			seen[cell.Resource] = true
			found = append(found, cell.Resource)
		}
	}

	sortResources(found)
	return found
}

// extractorNear returns if a building extracting the same resource as def
// is within def's extraction radius of at
func extractorNear(at model2d.Coord, def *BuildingDef, buildings []*Building) bool {
	for _, b := range buildings {
		if b.Extracts != def.Extracts {
			continue
		}
		if b.XZ().Dist(at) < def.ExtractionRadius {
			return true
		}
	}
	return false
}
