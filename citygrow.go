package citygrow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"github.com/voidshard/citygrow/internal/obb"
	"github.com/voidshard/citygrow/internal/roads"
)

var (
	// ErrUnknownBuilding implies a building definition index that isn't in
	// the catalog.
	ErrUnknownBuilding = fmt.Errorf("unknown building definition")
)

// Settlement holds the road network, lots & buildings of a growing
// settlement. Roads are added by the caller (CommitRoad / Draft), buildings
// are added by Tick (or BestCandidate + Place).
//
// A Settlement is not safe for concurrent use.
type Settlement struct {
	cfg       *Config
	terrain   Terrain
	resources Resources
	log       *slog.Logger
	demand    Demand

	graph     *roads.Graph
	lots      []*Lot
	buildings []*Building

	Stats *Stats
}

// Option configures a Settlement
type Option func(*Settlement)

// Demand returns if more of the given building are wanted, given what has
// been built so far.
type Demand func(def *BuildingDef, buildings []*Building) bool

// WithDemand lets the caller decide which buildings are wanted each tick.
// By default every viable building is.
func WithDemand(d Demand) Option {
	return func(s *Settlement) {
		s.demand = d
	}
}

// WithLogger sets the logger, by default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Settlement) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty Settlement on the given land.
func New(cfg *Config, terrain Terrain, resources Resources, opts ...Option) (*Settlement, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Settlement{
		cfg:       cfg,
		terrain:   terrain,
		resources: resources,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		graph:     roads.NewGraph(),
		lots:      []*Lot{},
		buildings: []*Building{},
		Stats:     newStats(),
	}
	for _, o := range opts {
		o(s)
	}

	return s, nil
}

// Config returns the settlement's configuration
func (s *Settlement) Config() *Config {
	return s.cfg
}

// Network returns read access to the road network.
func (s *Settlement) Network() roads.View {
	return s.graph
}

// Lots returns all placed lots, in the order they were placed.
func (s *Settlement) Lots() []*Lot {
	return append([]*Lot{}, s.lots...)
}

// Buildings returns all placed buildings, in the order they were placed.
func (s *Settlement) Buildings() []*Building {
	return append([]*Building{}, s.buildings...)
}

// CommitRoad lays a road through the given waypoints. The first & last are
// the road ends (snapped to nearby nodes), anything between shapes the road.
func (s *Settlement) CommitRoad(waypoints []model3d.Coord3D) (*roads.Resolution, error) {
	res, err := s.graph.Commit(roads.Road{
		Waypoints: waypoints,
		Surface:   s.cfg.RoadSurface,
		Width:     s.cfg.RoadWidth,
	}, s.cfg.SnapRadius)
	if err != nil {
		s.log.Debug("road rejected", "waypoints", len(waypoints), "err", err)
		return nil, err
	}

	s.Stats.Roads++
	s.log.Info("road committed",
		"start", res.Start,
		"end", res.End,
		"segments", len(res.Segments),
		"crossings", len(res.Crossed),
	)

	if s.log.Enabled(context.Background(), slog.LevelDebug) {
		if err := s.graph.Check(); err != nil {
			s.log.Error("road network inconsistent", "err", err)
		}
	}

	return res, nil
}

// Draft starts drafting a new road.
func (s *Settlement) Draft() *Draft {
	return newDraft(s)
}

// Viable returns nil if it's worth looking for a site for the given building
// definition right now (see Viable).
func (s *Settlement) Viable(defIndex int) error {
	def, err := s.def(defIndex)
	if err != nil {
		return err
	}
	return Viable(def, s.graph, s.resources, s.buildings, s.cfg)
}

// Candidates returns every valid site for the given building definition.
func (s *Settlement) Candidates(defIndex int) ([]*Candidate, error) {
	def, err := s.def(defIndex)
	if err != nil {
		return nil, err
	}
	return FindCandidates(def, s.graph, s.terrain, s.lotRects(), s.cfg), nil
}

// BestCandidate returns the highest scoring site for the given building
// definition. False if there is nowhere to put it.
func (s *Settlement) BestCandidate(defIndex int) (*Placement, bool) {
	def, err := s.def(defIndex)
	if err != nil {
		return nil, false
	}

	found := FindCandidates(def, s.graph, s.terrain, s.lotRects(), s.cfg)
	best, score, ok := Best(found, def, s.Buildings(), s.terrain, s.resources, s.cfg)
	if !ok {
		s.log.Debug("no candidates", "building", def.Label)
		return nil, false
	}

	s.log.Debug("best candidate",
		"building", def.Label,
		"candidates", len(found),
		"score", score,
		"x", best.Position.X,
		"z", best.Position.Z,
	)
	return &Placement{Def: defIndex, Candidate: best, Score: score}, true
}

// Place commits a lot & building for the given placement. It isn't
// re-validated, placements should come from BestCandidate on the current
// state of the settlement.
func (s *Settlement) Place(p *Placement) *Building {
	def, err := s.def(p.Def)
	if err != nil || p.Candidate == nil {
		return nil
	}

	lot := &Lot{
		ID:          len(s.lots) + 1,
		Center:      p.Candidate.Center,
		HalfExtents: def.HalfExtents(),
		Rotation:    p.Candidate.Rotation,
	}
	b := &Building{
		ID:       len(s.buildings) + 1,
		Def:      p.Def,
		Category: def.Category,
		Extracts: def.Extracts,
		Position: p.Candidate.Position,
		Lot:      lot.ID,
	}
	lot.Building = b.ID

	s.lots = append(s.lots, lot)
	s.buildings = append(s.buildings, b)
	s.Stats.increment(def.Category, p.Def)

	s.log.Info("building placed",
		"building", def.Label,
		"id", b.ID,
		"x", b.Position.X,
		"z", b.Position.Z,
		"score", p.Score,
	)

	return b
}

// Tick runs one round of growth: building definitions are tried in spawn
// order & the first that is viable, wanted (see WithDemand) & has somewhere
// to go is placed.
// At most one building is placed per tick, false if nothing was.
func (s *Settlement) Tick() (*Placement, bool) {
	for _, idx := range s.cfg.SpawnOrder {
		def := s.cfg.Buildings[idx]

		if err := s.Viable(idx); err != nil {
			s.log.Debug("building not viable", "building", def.Label, "reason", err)
			continue
		}
		if s.demand != nil && !s.demand(def, s.Buildings()) {
			s.log.Debug("building not wanted", "building", def.Label)
			continue
		}

		p, ok := s.BestCandidate(idx)
		if !ok {
			continue
		}

		s.Place(p)
		return p, true
	}
	return nil, false
}

// JSON returns the settlement as json.
func (s *Settlement) JSON() ([]byte, error) {
	out := &settlementJSON{
		Nodes:     []*nodeJSON{},
		Segments:  []*segmentJSON{},
		Lots:      s.lots,
		Buildings: s.buildings,
		Stats:     s.Stats,
	}

	for _, id := range s.graph.NodeIDs() {
		n, _ := s.graph.Node(id)
		out.Nodes = append(out.Nodes, &nodeJSON{ID: id, Node: n})
	}
	for _, id := range s.graph.SegmentIDs() {
		seg, _ := s.graph.Segment(id)
		out.Segments = append(out.Segments, &segmentJSON{ID: id, Segment: seg})
	}

	return json.Marshal(out)
}

// SaveJSON writes a json file to the given path.
func (s *Settlement) SaveJSON(fpath string) error {
	data, err := s.JSON()
	if err != nil {
		return errors.Wrap(err, "encoding settlement")
	}
	return errors.Wrapf(os.WriteFile(fpath, data, 0644), "writing %s", fpath)
}

// settlementJSON is the exported form of a Settlement
type settlementJSON struct {
	Nodes     []*nodeJSON
	Segments  []*segmentJSON
	Lots      []*Lot
	Buildings []*Building
	Stats     *Stats
}

type nodeJSON struct {
	ID roads.NodeID
	roads.Node
}

type segmentJSON struct {
	ID roads.SegmentID
	roads.Segment
}

// def returns the building definition at idx
func (s *Settlement) def(idx int) (*BuildingDef, error) {
	if idx < 0 || idx >= len(s.cfg.Buildings) {
		return nil, errors.Wrapf(ErrUnknownBuilding, "index %d", idx)
	}
	return s.cfg.Buildings[idx], nil
}

// lotRects returns all placed lots as rectangles
func (s *Settlement) lotRects() []obb.Rect {
	rects := make([]obb.Rect, len(s.lots))
	for i, l := range s.lots {
		rects[i] = l.Rect()
	}
	return rects
}
