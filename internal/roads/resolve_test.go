package roads

import (
	"math"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

const snap = 3.0

func commit(t *testing.T, g *Graph, pts ...model3d.Coord3D) *Resolution {
	t.Helper()
	res, err := g.Commit(Road{Waypoints: pts, Surface: Dirt, Width: 2}, snap)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	return res
}

func TestCommitSingleRoadKeepsControlPoints(t *testing.T) {
	g := NewGraph()
	res := commit(t, g,
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(30, 0, 10),
		model3d.XYZ(60, 0, -10),
		model3d.XYZ(90, 0, 0),
	)

	if g.NodeCount() != 2 || g.SegmentCount() != 1 {
		t.Fatalf("expected 2 nodes & 1 segment, got %d & %d", g.NodeCount(), g.SegmentCount())
	}
	seg, _ := g.Segment(res.Segments[0])
	if len(seg.ControlPoints) != 2 {
		t.Errorf("expected interior waypoints as control points, got %v", seg.ControlPoints)
	}
	if len(res.Crossed) != 0 || len(res.Junctions) != 0 {
		t.Errorf("no crossings expected, got %+v", res)
	}
}

func TestCommitSnapsToExistingNode(t *testing.T) {
	g := NewGraph()
	first := commit(t, g, model3d.XYZ(0, 0, 0), model3d.XYZ(50, 0, 0))
	second := commit(t, g, model3d.XYZ(51, 0, 1), model3d.XYZ(50, 0, 50))

	if second.Start != first.End {
		t.Errorf("expected second road to start on node %d, got %d", first.End, second.Start)
	}
	if g.NodeCount() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.NodeCount())
	}
	n, _ := g.Node(first.End)
	if len(n.Segments) != 2 {
		t.Errorf("shared node should have 2 segments, got %d", len(n.Segments))
	}
}

func TestCommitCrossingMidpoint(t *testing.T) {
	g := NewGraph()
	commit(t, g, model3d.XYZ(0, 0, 0), model3d.XYZ(100, 0, 0))
	nodesBefore := g.NodeCount()

	// this road's own ends sit away from the crossed segment
	res := commit(t, g, model3d.XYZ(50, 0, -50), model3d.XYZ(50, 0, 50))

	// 2 replacing the crossed one + 2 halves of the new road
	if g.SegmentCount() != 4 {
		t.Fatalf("expected 4 segments, got %d", g.SegmentCount())
	}
	if len(res.Junctions) != 1 {
		t.Fatalf("expected 1 junction, got %d", len(res.Junctions))
	}
	// start, end & junction
	if g.NodeCount() != nodesBefore+3 {
		t.Errorf("expected %d nodes, got %d", nodesBefore+3, g.NodeCount())
	}

	j, _ := g.Node(res.Junctions[0])
	if len(j.Segments) != 4 {
		t.Errorf("junction should join 4 segments, got %d", len(j.Segments))
	}
	if math.Abs(j.Position.X-50) > 1e-9 || math.Abs(j.Position.Z) > 1e-9 {
		t.Errorf("junction at %v, expected (50, 0)", j.Position)
	}
	if err := g.Check(); err != nil {
		t.Error(err)
	}
}

func TestCommitCrossingFromExistingNode(t *testing.T) {
	g := NewGraph()
	commit(t, g, model3d.XYZ(0, 0, 0), model3d.XYZ(100, 0, 0))
	commit(t, g, model3d.XYZ(0, 0, 40), model3d.XYZ(0, 0, 80))

	// new road starts on the snapped node (0,0,40) & crosses the first road
	// once, ending on a fresh node
	res := commit(t, g, model3d.XYZ(1, 0, 40), model3d.XYZ(60, 0, -40))

	if len(res.Junctions) != 1 {
		t.Fatalf("expected 1 junction, got %d", len(res.Junctions))
	}
	// the crossed road became 2 + the second road + 2 new pieces
	if g.SegmentCount() != 5 {
		t.Errorf("expected 5 segments, got %d", g.SegmentCount())
	}
	for _, sid := range g.SegmentIDs() {
		seg, _ := g.Segment(sid)
		for _, nid := range seg.Nodes {
			if _, ok := g.Node(nid); !ok {
				t.Errorf("segment %d references missing node %d", sid, nid)
			}
		}
	}
}

func TestCommitPlusCrossing(t *testing.T) {
	g := NewGraph()
	commit(t, g, model3d.XYZ(-50, 0, 0), model3d.XYZ(50, 0, 0))
	res := commit(t, g, model3d.XYZ(0, 0, -50), model3d.XYZ(0, 0, 50))

	if len(res.Junctions) != 1 {
		t.Fatalf("expected exactly one junction, got %d", len(res.Junctions))
	}
	if g.SegmentCount() != 4 {
		t.Fatalf("expected 4 segments replacing the original 2, got %d", g.SegmentCount())
	}
	if g.NodeCount() != 5 {
		t.Errorf("expected 4 ends + 1 junction, got %d nodes", g.NodeCount())
	}
	if err := g.Check(); err != nil {
		t.Error(err)
	}
}

func TestCommitMultipleCrossingsOrdered(t *testing.T) {
	g := NewGraph()
	for _, x := range []float64{80, 20, 50} {
		commit(t, g, model3d.XYZ(x, 0, -20), model3d.XYZ(x, 0, 20))
	}

	res := commit(t, g, model3d.XYZ(0, 0, 0), model3d.XYZ(100, 0, 0))
	if len(res.Junctions) != 3 {
		t.Fatalf("expected 3 junctions, got %d", len(res.Junctions))
	}
	if len(res.Segments) != 4 {
		t.Fatalf("expected the new road in 4 pieces, got %d", len(res.Segments))
	}

	prev := -1.0
	for _, jid := range res.Junctions {
		j, _ := g.Node(jid)
		if j.Position.X <= prev {
			t.Errorf("junctions not ordered from the start: %v after %.1f", j.Position, prev)
		}
		prev = j.Position.X
	}

	// pieces chain start -> j1 -> j2 -> j3 -> end
	chain := append([]NodeID{res.Start}, res.Junctions...)
	chain = append(chain, res.End)
	for i, sid := range res.Segments {
		seg, _ := g.Segment(sid)
		if seg.Nodes[0] != chain[i] || seg.Nodes[1] != chain[i+1] {
			t.Errorf("piece %d runs %v, expected %d -> %d", i, seg.Nodes, chain[i], chain[i+1])
		}
		if len(seg.ControlPoints) != 0 {
			t.Errorf("pieces of a crossing road are straight")
		}
	}
	if err := g.Check(); err != nil {
		t.Error(err)
	}
}

func TestCommitDropsWaypointsWhenCrossing(t *testing.T) {
	g := NewGraph()
	commit(t, g, model3d.XYZ(50, 0, -20), model3d.XYZ(50, 0, 20))
	res := commit(t, g, model3d.XYZ(0, 0, 0), model3d.XYZ(25, 0, 5), model3d.XYZ(100, 0, 0))

	for _, sid := range res.Segments {
		seg, _ := g.Segment(sid)
		if len(seg.ControlPoints) != 0 {
			t.Errorf("segment %d kept control points %v", sid, seg.ControlPoints)
		}
	}
}

func TestCommitErrors(t *testing.T) {
	g := NewGraph()
	if _, err := g.Commit(Road{Waypoints: []model3d.Coord3D{model3d.XYZ(0, 0, 0)}}, snap); err != ErrTooFewWaypoints {
		t.Errorf("expected ErrTooFewWaypoints, got %v", err)
	}

	commit(t, g, model3d.XYZ(0, 0, 0), model3d.XYZ(50, 0, 0))
	_, err := g.Commit(Road{Waypoints: []model3d.Coord3D{model3d.XYZ(1, 0, 0), model3d.XYZ(0, 0, 1)}, Width: 2}, snap)
	if err != ErrDegenerateRoad {
		t.Errorf("expected ErrDegenerateRoad, got %v", err)
	}
	if g.SegmentCount() != 1 {
		t.Errorf("failed commit should not add segments")
	}
}

func TestIntersectXZ(t *testing.T) {
	cases := []struct {
		name           string
		a1, a2, b1, b2 model3d.Coord3D
		ok             bool
		t, u           float64
	}{
		{
			name: "perpendicular midpoints",
			a1:   model3d.XYZ(0, 0, 0), a2: model3d.XYZ(10, 0, 0),
			b1: model3d.XYZ(5, 0, -5), b2: model3d.XYZ(5, 0, 5),
			ok: true, t: 0.5, u: 0.5,
		},
		{
			name: "elevation ignored",
			a1:   model3d.XYZ(0, 3, 0), a2: model3d.XYZ(10, 9, 0),
			b1: model3d.XYZ(2.5, -4, -5), b2: model3d.XYZ(2.5, 0, 15),
			ok: true, t: 0.25, u: 0.25,
		},
		{
			name: "parallel",
			a1:   model3d.XYZ(0, 0, 0), a2: model3d.XYZ(10, 0, 0),
			b1: model3d.XYZ(0, 0, 1), b2: model3d.XYZ(10, 0, 1),
		},
		{
			name: "shared endpoint",
			a1:   model3d.XYZ(0, 0, 0), a2: model3d.XYZ(10, 0, 0),
			b1: model3d.XYZ(10, 0, 0), b2: model3d.XYZ(10, 0, 10),
		},
		{
			name: "miss",
			a1:   model3d.XYZ(0, 0, 0), a2: model3d.XYZ(10, 0, 0),
			b1: model3d.XYZ(20, 0, -5), b2: model3d.XYZ(20, 0, 5),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt, gu, ok := intersectXZ(tc.a1, tc.a2, tc.b1, tc.b2)
			if ok != tc.ok {
				t.Fatalf("ok = %v, expected %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if math.Abs(gt-tc.t) > 1e-9 || math.Abs(gu-tc.u) > 1e-9 {
				t.Errorf("got (%.3f, %.3f), expected (%.3f, %.3f)", gt, gu, tc.t, tc.u)
			}
		})
	}
}
