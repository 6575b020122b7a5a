package citygrow

import (
	"math"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citygrow/internal/obb"
	"github.com/voidshard/citygrow/internal/roads"
)

// ValidatePlacement returns if a building could go on the given lot.
// Checks are run in order & we stop at the first failure:
//  - the lot can't overlap an existing lot
//  - no lot corner may come within a road's half width (plus clearance) of
//    the road, no road may pass through the lot & the road between samples
//    can't come within the same distance of the lot
//  - no lot corner may sit under water
//  - corner elevations can't differ by more than the max steepness
func ValidatePlacement(lot obb.Rect, existing []obb.Rect, net roads.View, terrain Terrain, cfg *Config) bool {
	for _, other := range existing {
		if obb.Overlap(lot, other) {
			return false
		}
	}

	corners := lot.Corners()
	if !clearOfRoads(lot, corners, net, cfg) {
		return false
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		h := terrain.Height(c.X, c.Y)
		if h < cfg.WaterLevel {
			return false
		}
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}

	return hi-lo <= cfg.MaxSteepness
}

// clearOfRoads returns if the lot keeps clear of every road in the network
func clearOfRoads(lot obb.Rect, corners [4]model2d.Coord, net roads.View, cfg *Config) bool {
	lotBounds := lot.Bounds()

	for _, sid := range net.SegmentIDs() {
		seg, ok := net.Segment(sid)
		if !ok {
			continue
		}
		samples, ok := net.Samples(sid, cfg.ClearanceDensity)
		if !ok {
			continue
		}

		clearance := seg.Width/2 + cfg.RoadClearance

		flat := samples2d(samples)

		// nb. the road can't touch the lot if it's bounding box (grown by
		// the clearance) doesn't reach the lot's bounding box
		if !obb.BoundsOf(flat).ExpandedByMargin(clearance).Intersects(lotBounds) {
			continue
		}

		for _, s := range flat {
			for _, c := range corners {
				if c.Dist(s) < clearance {
					return false
				}
			}
			if lot.Contains(s) {
				return false
			}
		}

		// samples can be far apart on long runs, the road between them
		// can't cut through the lot either
		for i := 0; i < len(flat)-1; i++ {
			if lot.DistToSegment(flat[i], flat[i+1]) < clearance {
				return false
			}
		}
	}

	return true
}
