package citygrow

import (
	"math"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citygrow/internal/obb"
	"github.com/voidshard/citygrow/internal/roads"
)

// tangents shorter than this (squared) are treated as degenerate
const minTangentSq = 0.01

// FindCandidates walks every road in the network looking for sites a
// building of the given definition could be placed on. Lots are placed
// either side of the road, facing it, set back from the centreline.
//
// Along each side of a segment, sites closer together than the lot width are
// skipped so a straight run doesn't produce a candidate at every sample.
func FindCandidates(def *BuildingDef, net roads.View, terrain Terrain, existing []obb.Rect, cfg *Config) []*Candidate {
	half := def.HalfExtents()
	minSpacing := half.X * 2
	offset := cfg.Setback + half.Y

	found := []*Candidate{}

	for _, sid := range net.SegmentIDs() {
		samples, ok := net.Samples(sid, cfg.SearchDensity)
		if !ok || len(samples) < 2 {
			continue
		}

		// last accepted lot centre on each side: [0] left, [1] right
		var last [2]*model2d.Coord

		for i := 0; i < len(samples)-1; i++ {
			p0, p1 := samples[i], samples[i+1]

			tangent := model2d.XY(p1.X-p0.X, p1.Z-p0.Z)
			if tangent.Dot(tangent) < minTangentSq {
				continue
			}
			tangent = tangent.Normalize()
			perp := model2d.XY(-tangent.Y, tangent.X)
			centre := model2d.XY(p0.X, p0.Z)
			rotation := math.Atan2(tangent.Y, tangent.X)

			for s, side := range [2]float64{-1, 1} {
				lotCentre := centre.Add(perp.Scale(side * offset))
				if last[s] != nil && lotCentre.Dist(*last[s]) < minSpacing {
					continue
				}

				rot := rotation
				if side < 0 {
					rot += math.Pi
				}

				lot := obb.Rect{Center: lotCentre, HalfExtents: half, Rotation: rot}
				if !ValidatePlacement(lot, existing, net, terrain, cfg) {
					continue
				}

				found = append(found, &Candidate{
					Position: lotPosition(lotCentre, terrain),
					Center:   lotCentre,
					Rotation: rot,
					Segment:  sid,
				})

				accepted := lotCentre
				last[s] = &accepted
			}
		}
	}

	return found
}
