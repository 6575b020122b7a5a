package roads

import (
	"github.com/unixpickle/model3d/model3d"
)

// View is read only access to a road network. Candidate search, placement
// validation & the debug raster only ever see a View; writes go through the
// Graph held by whoever commits roads.
type View interface {
	Node(id NodeID) (Node, bool)
	Segment(id SegmentID) (Segment, bool)

	// ids are returned lowest first
	NodeIDs() []NodeID
	SegmentIDs() []SegmentID

	NodeCount() int
	SegmentCount() int

	NearestNode(pos model3d.Coord3D, maxDistance float64) (NodeID, bool)
	Path(id SegmentID) ([]model3d.Coord3D, bool)
	Samples(id SegmentID, density int) ([]model3d.Coord3D, bool)
}

var _ View = (*Graph)(nil)
