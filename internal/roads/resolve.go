package roads

import (
	"fmt"
	"math"
	"sort"

	"github.com/unixpickle/model3d/model3d"
)

const (
	// crossings closer than this (as a fraction of either line) to an end
	// are ignored, so roads meeting at a shared node don't split there
	endpointEpsilon = 0.01

	// cross products below this are treated as parallel
	parallelEpsilon = 1e-6
)

var (
	// ErrTooFewWaypoints implies a road needs at least a start & end.
	ErrTooFewWaypoints = fmt.Errorf("road requires at least two waypoints")

	// ErrDegenerateRoad implies both ends of a road resolved to the same node.
	ErrDegenerateRoad = fmt.Errorf("road starts and ends on the same node")
)

// Road is a new road to commit. The first & last waypoints are the ends,
// anything between becomes spline control points.
type Road struct {
	Waypoints []model3d.Coord3D
	Surface   Surface
	Width     float64
}

// Resolution reports what a commit did to the network.
type Resolution struct {
	// nodes the road starts & ends on (possibly pre-existing)
	Start NodeID
	End   NodeID

	// segments making up the new road, in order from Start
	Segments []SegmentID

	// segments that were crossed & replaced, with the junctions made
	// where they were crossed (in the same order)
	Crossed   []SegmentID
	Junctions []NodeID
}

// crossing is where the new road passes over an existing segment
type crossing struct {
	segment SegmentID
	point   model3d.Coord3D
	distSq  float64
}

// Commit adds a road to the network. Ends snap to existing nodes within
// snapRadius. Existing segments the straight line start -> end crosses are
// split & the new road is laid as straight pieces through each crossing.
//
// Crossings are found against the network as it was before this commit;
// pieces added here aren't tested against one another.
func (g *Graph) Commit(road Road, snapRadius float64) (*Resolution, error) {
	if len(road.Waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	start := g.anchor(road.Waypoints[0], snapRadius)
	end := g.anchor(road.Waypoints[len(road.Waypoints)-1], snapRadius)
	if start == end {
		return nil, ErrDegenerateRoad
	}

	a := g.nodes[start].Position
	b := g.nodes[end].Position

	found := []*crossing{}
	for _, sid := range g.SegmentIDs() {
		seg := g.segments[sid]
		na, ok := g.nodes[seg.Nodes[0]]
		if !ok {
			continue
		}
		nb, ok := g.nodes[seg.Nodes[1]]
		if !ok {
			continue
		}

		t, _, ok := intersectXZ(a, b, na.Position, nb.Position)
		if !ok {
			continue
		}
		p := lerp(a, b, t)
		d := p.Sub(a)
		found = append(found, &crossing{segment: sid, point: p, distSq: d.Dot(d)})
	}

	res := &Resolution{Start: start, End: end}

	if len(found) == 0 {
		var controls []model3d.Coord3D
		if len(road.Waypoints) > 2 {
			controls = road.Waypoints[1 : len(road.Waypoints)-1]
		}
		res.Segments = []SegmentID{g.AddSegment(start, end, controls, road.Surface, road.Width)}
		return res, nil
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distSq < found[j].distSq
	})

	chain := []NodeID{start}
	for _, c := range found {
		junction, ok := g.SplitSegmentAt(c.segment, c.point)
		if !ok {
			continue
		}
		res.Crossed = append(res.Crossed, c.segment)
		res.Junctions = append(res.Junctions, junction)
		chain = append(chain, junction)
	}
	chain = append(chain, end)

	for i := 0; i < len(chain)-1; i++ {
		res.Segments = append(res.Segments, g.AddSegment(chain[i], chain[i+1], nil, road.Surface, road.Width))
	}

	return res, nil
}

// anchor returns the node within radius of pos, or a new node at pos
func (g *Graph) anchor(pos model3d.Coord3D, radius float64) NodeID {
	if id, ok := g.NearestNode(pos, radius); ok {
		return id
	}
	return g.AddNode(pos)
}

// intersectXZ tests lines a1->a2 & b1->b2 for a crossing in the XZ plane,
// returning how far along each line it happens. Parallel lines & crossings
// near either line's ends don't count.
func intersectXZ(a1, a2, b1, b2 model3d.Coord3D) (float64, float64, bool) {
	d1x, d1z := a2.X-a1.X, a2.Z-a1.Z
	d2x, d2z := b2.X-b1.X, b2.Z-b1.Z

	cross := d1x*d2z - d1z*d2x
	if math.Abs(cross) < parallelEpsilon {
		return 0, 0, false
	}

	dx, dz := b1.X-a1.X, b1.Z-a1.Z
	t := (dx*d2z - dz*d2x) / cross
	u := (dx*d1z - dz*d1x) / cross

	if t > endpointEpsilon && t < 1-endpointEpsilon && u > endpointEpsilon && u < 1-endpointEpsilon {
		return t, u, true
	}
	return 0, 0, false
}

// lerp between a & b by t
func lerp(a, b model3d.Coord3D, t float64) model3d.Coord3D {
	return a.Add(b.Sub(a).Scale(t))
}
