package citygrow

import (
	"github.com/unixpickle/model3d/model3d"

	"github.com/voidshard/citygrow/internal/roads"
)

// Draft collects waypoints for a road before it's committed. Nothing
// touches the road network until Commit.
type Draft struct {
	s   *Settlement
	pts []model3d.Coord3D
}

// newDraft returns an empty draft for s
func newDraft(s *Settlement) *Draft {
	return &Draft{s: s, pts: []model3d.Coord3D{}}
}

// Add a waypoint. Points near an existing node snap to it. A point too close
// to the previous one is ignored & false is returned.
func (d *Draft) Add(p model3d.Coord3D) bool {
	net := d.s.graph
	if id, ok := net.NearestNode(p, d.s.cfg.SnapRadius); ok {
		n, _ := net.Node(id)
		p = n.Position
	}

	if len(d.pts) > 0 && d.pts[len(d.pts)-1].Dist(p) < d.s.cfg.MinSegmentLength {
		return false
	}

	d.pts = append(d.pts, p)
	return true
}

// Points returns a copy of the waypoints so far.
func (d *Draft) Points() []model3d.Coord3D {
	return append([]model3d.Coord3D{}, d.pts...)
}

// Len returns the number of waypoints.
func (d *Draft) Len() int {
	return len(d.pts)
}

// Reset throws away all waypoints.
func (d *Draft) Reset() {
	d.pts = d.pts[:0]
}

// Commit lays the drafted road & clears the draft. On error the waypoints
// are kept so the caller can carry on editing.
func (d *Draft) Commit() (*roads.Resolution, error) {
	res, err := d.s.CommitRoad(d.pts)
	if err != nil {
		return nil, err
	}
	d.pts = []model3d.Coord3D{}
	return res, nil
}
