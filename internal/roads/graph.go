package roads

import (
	"fmt"
	"sort"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"

	"github.com/voidshard/citygrow/internal/spline"
)

// NodeID identifies a node in the road network.
type NodeID uint32

// SegmentID identifies a segment in the road network.
type SegmentID uint32

// Surface is the material a road is laid with. Only Dirt is placed at the
// moment, the rest exist for upgrades later on.
type Surface string

const (
	Dirt   Surface = "dirt"
	Gravel Surface = "gravel"
	Paved  Surface = "paved"
)

// Node is a junction or endpoint in the road network.
type Node struct {
	Position model3d.Coord3D

	// segments connected to this node, order is irrelevant
	Segments []SegmentID
}

// Segment is a road between two nodes. ControlPoints shape the spline between
// the endpoints (excluding the endpoints themselves), empty means straight.
type Segment struct {
	Nodes         [2]NodeID
	ControlPoints []model3d.Coord3D `json:",omitempty"`
	Surface       Surface
	Width         float64
}

// Graph owns every node & segment, keyed by id.
// Nodes & segments reference each other by id only; every mutation keeps
// both sides of that relationship in step.
type Graph struct {
	nodes    map[NodeID]*Node
	segments map[SegmentID]*Segment

	nextNode    uint32
	nextSegment uint32
}

// NewGraph returns an empty road network.
func NewGraph() *Graph {
	return &Graph{
		nodes:    map[NodeID]*Node{},
		segments: map[SegmentID]*Segment{},
	}
}

// AddNode at the given position, returning it's ID.
func (g *Graph) AddNode(pos model3d.Coord3D) NodeID {
	id := NodeID(g.nextNode)
	g.nextNode++
	g.nodes[id] = &Node{Position: pos, Segments: []SegmentID{}}
	return id
}

// AddSegment between two nodes & registers it on both of them.
// If an endpoint doesn't exist the segment is still stored but nothing is
// registered for that end, callers are expected to check ids first.
func (g *Graph) AddSegment(from, to NodeID, controlPoints []model3d.Coord3D, surface Surface, width float64) SegmentID {
	id := SegmentID(g.nextSegment)
	g.nextSegment++

	g.segments[id] = &Segment{
		Nodes:         [2]NodeID{from, to},
		ControlPoints: append([]model3d.Coord3D{}, controlPoints...),
		Surface:       surface,
		Width:         width,
	}

	if n, ok := g.nodes[from]; ok {
		n.Segments = append(n.Segments, id)
	}
	if n, ok := g.nodes[to]; ok {
		n.Segments = append(n.Segments, id)
	}

	return id
}

// RemoveSegment deletes the segment & unregisters it from it's endpoints.
// Nodes left without any segments are kept.
func (g *Graph) RemoveSegment(id SegmentID) {
	seg, ok := g.segments[id]
	if !ok {
		return
	}
	delete(g.segments, id)

	for _, nid := range seg.Nodes {
		n, ok := g.nodes[nid]
		if !ok {
			continue
		}
		for i := len(n.Segments) - 1; i >= 0; i-- {
			if n.Segments[i] == id {
				essentials.UnorderedDelete(&n.Segments, i)
			}
		}
	}
}

// SplitSegmentAt replaces a segment with two straight segments meeting at a
// new node placed at pos. Curvature of the original is dropped.
// Returns false if the segment doesn't exist.
func (g *Graph) SplitSegmentAt(id SegmentID, pos model3d.Coord3D) (NodeID, bool) {
	seg, ok := g.segments[id]
	if !ok {
		return 0, false
	}
	ends, surface, width := seg.Nodes, seg.Surface, seg.Width

	g.RemoveSegment(id)

	mid := g.AddNode(pos)
	g.AddSegment(ends[0], mid, nil, surface, width)
	g.AddSegment(mid, ends[1], nil, surface, width)

	return mid, true
}

// NearestNode returns the closest node strictly within maxDistance of pos.
func (g *Graph) NearestNode(pos model3d.Coord3D, maxDistance float64) (NodeID, bool) {
	maxSq := maxDistance * maxDistance

	var best NodeID
	bestSq := 0.0
	found := false

	for _, id := range g.NodeIDs() {
		d := g.nodes[id].Position.Sub(pos)
		distSq := d.Dot(d)
		if distSq >= maxSq {
			continue
		}
		if !found || distSq < bestSq {
			best, bestSq, found = id, distSq, true
		}
	}

	return best, found
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return Node{Position: n.Position, Segments: append([]SegmentID{}, n.Segments...)}, true
}

// Segment returns a copy of the segment with the given id.
func (g *Graph) Segment(id SegmentID) (Segment, bool) {
	s, ok := g.segments[id]
	if !ok {
		return Segment{}, false
	}
	cp := *s
	cp.ControlPoints = append([]model3d.Coord3D{}, s.ControlPoints...)
	return cp, true
}

// NodeIDs returns all node ids, lowest first.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// SegmentIDs returns all segment ids, lowest first.
func (g *Graph) SegmentIDs() []SegmentID {
	ids := make([]SegmentID, 0, len(g.segments))
	for id := range g.segments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// SegmentCount returns the number of segments.
func (g *Graph) SegmentCount() int {
	return len(g.segments)
}

// Path returns the full point sequence of a segment: start node, control
// points, end node. False if the segment or either endpoint is missing.
func (g *Graph) Path(id SegmentID) ([]model3d.Coord3D, bool) {
	seg, ok := g.segments[id]
	if !ok {
		return nil, false
	}
	a, ok := g.nodes[seg.Nodes[0]]
	if !ok {
		return nil, false
	}
	b, ok := g.nodes[seg.Nodes[1]]
	if !ok {
		return nil, false
	}

	path := make([]model3d.Coord3D, 0, len(seg.ControlPoints)+2)
	path = append(path, a.Position)
	path = append(path, seg.ControlPoints...)
	return append(path, b.Position), true
}

// Samples returns the segment's spline sampled at density points per span.
func (g *Graph) Samples(id SegmentID, density int) ([]model3d.Coord3D, bool) {
	path, ok := g.Path(id)
	if !ok {
		return nil, false
	}
	return spline.CatmullRom(path, density), true
}

// Check verifies that node -> segment & segment -> node references agree.
func (g *Graph) Check() error {
	for _, nid := range g.NodeIDs() {
		for _, sid := range g.nodes[nid].Segments {
			seg, ok := g.segments[sid]
			if !ok {
				return fmt.Errorf("node %d lists missing segment %d", nid, sid)
			}
			if seg.Nodes[0] != nid && seg.Nodes[1] != nid {
				return fmt.Errorf("node %d lists segment %d which doesn't end at it", nid, sid)
			}
		}
	}

	for _, sid := range g.SegmentIDs() {
		for _, nid := range g.segments[sid].Nodes {
			n, ok := g.nodes[nid]
			if !ok {
				return fmt.Errorf("segment %d references missing node %d", sid, nid)
			}
			if !hasSegment(n.Segments, sid) {
				return fmt.Errorf("segment %d not registered on node %d", sid, nid)
			}
		}
	}

	return nil
}

// hasSegment returns if id is in the list
func hasSegment(in []SegmentID, id SegmentID) bool {
	for _, s := range in {
		if s == id {
			return true
		}
	}
	return false
}
