package roads

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func straightGraph(t *testing.T) (*Graph, NodeID, NodeID, SegmentID) {
	t.Helper()
	g := NewGraph()
	a := g.AddNode(model3d.XYZ(0, 0, 0))
	b := g.AddNode(model3d.XYZ(100, 0, 0))
	s := g.AddSegment(a, b, []model3d.Coord3D{model3d.XYZ(50, 0, 10)}, Dirt, 2)
	return g, a, b, s
}

func TestAddNodeMonotonicIDs(t *testing.T) {
	g := NewGraph()
	prev := g.AddNode(model3d.XYZ(0, 0, 0))
	for i := 1; i < 10; i++ {
		id := g.AddNode(model3d.XYZ(float64(i), 0, 0))
		if id <= prev {
			t.Fatalf("node id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestAddSegmentRegistersOnBothNodes(t *testing.T) {
	g, a, b, s := straightGraph(t)

	for _, nid := range []NodeID{a, b} {
		n, ok := g.Node(nid)
		if !ok {
			t.Fatalf("node %d missing", nid)
		}
		if len(n.Segments) != 1 || n.Segments[0] != s {
			t.Errorf("node %d segments = %v, expected [%d]", nid, n.Segments, s)
		}
	}
	if err := g.Check(); err != nil {
		t.Error(err)
	}
}

func TestAddSegmentMissingEndpoint(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(model3d.XYZ(0, 0, 0))
	s := g.AddSegment(a, NodeID(42), nil, Dirt, 2)

	if _, ok := g.Segment(s); !ok {
		t.Fatalf("segment should still be stored")
	}
	n, _ := g.Node(a)
	if len(n.Segments) != 1 {
		t.Errorf("existing endpoint should have the segment registered")
	}
	if _, ok := g.Path(s); ok {
		t.Errorf("path of a dangling segment should be reported missing")
	}
}

func TestRemoveSegmentKeepsNodes(t *testing.T) {
	g, a, b, s := straightGraph(t)
	g.RemoveSegment(s)

	if _, ok := g.Segment(s); ok {
		t.Errorf("segment %d should be gone", s)
	}
	for _, nid := range []NodeID{a, b} {
		n, ok := g.Node(nid)
		if !ok {
			t.Fatalf("node %d should be kept", nid)
		}
		if len(n.Segments) != 0 {
			t.Errorf("node %d still lists %v", nid, n.Segments)
		}
	}

	// removing twice is a no-op
	g.RemoveSegment(s)
	if err := g.Check(); err != nil {
		t.Error(err)
	}
}

func TestSplitSegmentAt(t *testing.T) {
	g, a, b, s := straightGraph(t)

	mid, ok := g.SplitSegmentAt(s, model3d.XYZ(50, 0, 0))
	if !ok {
		t.Fatalf("split failed")
	}

	if _, ok := g.Segment(s); ok {
		t.Errorf("original segment %d still present", s)
	}
	if g.SegmentCount() != 2 {
		t.Fatalf("expected 2 segments, got %d", g.SegmentCount())
	}

	n, ok := g.Node(mid)
	if !ok {
		t.Fatalf("split node missing")
	}
	if len(n.Segments) != 2 {
		t.Fatalf("split node should have 2 segments, got %d", len(n.Segments))
	}

	ends := map[NodeID]bool{}
	for _, sid := range n.Segments {
		seg, ok := g.Segment(sid)
		if !ok {
			t.Fatalf("segment %d missing", sid)
		}
		if len(seg.ControlPoints) != 0 {
			t.Errorf("split segments should be straight, got %v", seg.ControlPoints)
		}
		if seg.Width != 2 || seg.Surface != Dirt {
			t.Errorf("split segment lost width/surface: %+v", seg)
		}
		switch {
		case seg.Nodes[0] == a && seg.Nodes[1] == mid:
			ends[a] = true
		case seg.Nodes[0] == mid && seg.Nodes[1] == b:
			ends[b] = true
		default:
			t.Errorf("unexpected segment endpoints %v", seg.Nodes)
		}
	}
	if !ends[a] || !ends[b] {
		t.Errorf("split segments should chain %d -> %d -> %d", a, mid, b)
	}
	if err := g.Check(); err != nil {
		t.Error(err)
	}
}

func TestSplitMissingSegment(t *testing.T) {
	g := NewGraph()
	if _, ok := g.SplitSegmentAt(SegmentID(3), model3d.XYZ(0, 0, 0)); ok {
		t.Errorf("splitting a missing segment should fail")
	}
	if g.NodeCount() != 0 {
		t.Errorf("no node should be created")
	}
}

func TestNearestNode(t *testing.T) {
	g := NewGraph()
	g.AddNode(model3d.XYZ(0, 0, 0))
	near := g.AddNode(model3d.XYZ(10, 0, 0))
	g.AddNode(model3d.XYZ(20, 0, 0))

	cases := []struct {
		name   string
		pos    model3d.Coord3D
		radius float64
		want   NodeID
		found  bool
	}{
		{"closest wins", model3d.XYZ(11, 0, 1), 3, near, true},
		{"nothing in range", model3d.XYZ(5, 0, 50), 3, 0, false},
		{"exact radius excluded", model3d.XYZ(13, 0, 0), 3, 0, false},
		{"elevation counts", model3d.XYZ(10, 5, 0), 3, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := g.NearestNode(tc.pos, tc.radius)
			if ok != tc.found {
				t.Fatalf("found = %v, expected %v", ok, tc.found)
			}
			if ok && got != tc.want {
				t.Errorf("got node %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestLookupsReturnCopies(t *testing.T) {
	g, a, _, s := straightGraph(t)

	n, _ := g.Node(a)
	n.Segments[0] = SegmentID(99)
	seg, _ := g.Segment(s)
	seg.ControlPoints[0] = model3d.XYZ(-1, -1, -1)

	if err := g.Check(); err != nil {
		t.Errorf("mutating a returned node leaked into the graph: %v", err)
	}
	again, _ := g.Segment(s)
	if again.ControlPoints[0] != model3d.XYZ(50, 0, 10) {
		t.Errorf("mutating returned control points leaked into the graph")
	}
}

func TestPathAndSamples(t *testing.T) {
	g, _, _, s := straightGraph(t)

	path, ok := g.Path(s)
	if !ok || len(path) != 3 {
		t.Fatalf("expected 3 point path, got %v (%v)", path, ok)
	}
	if path[0] != model3d.XYZ(0, 0, 0) || path[2] != model3d.XYZ(100, 0, 0) {
		t.Errorf("path should run start -> controls -> end, got %v", path)
	}

	samples, ok := g.Samples(s, 4)
	if !ok || len(samples) != 9 {
		t.Fatalf("expected 9 samples, got %d", len(samples))
	}
}
