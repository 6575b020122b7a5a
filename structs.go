package citygrow

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"

	"github.com/voidshard/citygrow/internal/obb"
	"github.com/voidshard/citygrow/internal/roads"
)

// Stats holds generic stats about the settlement
type Stats struct {
	// Count of buildings placed of a given category
	BuildingsByCategory map[Category]int

	// Count of buildings placed by catalog index
	BuildingsByDef map[int]int

	// Number of roads committed (one commit may make many segments)
	Roads int
}

// newStats returns blank Stats
func newStats() *Stats {
	return &Stats{
		BuildingsByCategory: map[Category]int{},
		BuildingsByDef:      map[int]int{},
	}
}

// increment counters for a newly placed building
func (s *Stats) increment(c Category, def int) {
	count, _ := s.BuildingsByCategory[c]
	s.BuildingsByCategory[c] = count + 1

	count, _ = s.BuildingsByDef[def]
	s.BuildingsByDef[def] = count + 1
}

// Count returns number of buildings by category
func (s *Stats) Count(c Category) int {
	count, _ := s.BuildingsByCategory[c]
	return count
}

// Lot is the land a building sits on. Lots don't move once placed.
type Lot struct {
	// ID for this lot, lots are numbered from 1
	ID int

	// Center on the ground plane, Center.Y holds world Z
	Center      model2d.Coord
	HalfExtents model2d.Coord
	Rotation    float64

	// ID of the building on this lot
	Building int
}

// Rect returns the lot as an oriented rectangle
func (l *Lot) Rect() obb.Rect {
	return obb.Rect{Center: l.Center, HalfExtents: l.HalfExtents, Rotation: l.Rotation}
}

// Building is a placed building. Def is the index into Config.Buildings.
type Building struct {
	// ID for this building, buildings are numbered from 1
	ID int

	Def      int
	Category Category

	// resource the building extracts, if any
	Extracts Resource `json:",omitempty"`

	// world position (elevation sampled from the terrain)
	Position model3d.Coord3D

	// ID of the lot the building sits on
	Lot int
}

// XZ returns the building's position on the ground plane
func (b *Building) XZ() model2d.Coord {
	return model2d.XY(b.Position.X, b.Position.Z)
}

// Candidate is a site we might put a building on.
type Candidate struct {
	// world position of the lot centre, elevation sampled from the terrain
	Position model3d.Coord3D

	Center   model2d.Coord
	Rotation float64

	// segment the candidate was found along
	Segment roads.SegmentID
}

// Placement is the winning candidate for a building archetype.
type Placement struct {
	Def       int
	Candidate *Candidate
	Score     float64
}
