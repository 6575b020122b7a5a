package citygrow

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"gopkg.in/yaml.v3"

	"github.com/voidshard/citygrow/internal/roads"
)

var (
	// ErrInvalidConfig implies a Config that can't drive a settlement.
	ErrInvalidConfig = fmt.Errorf("invalid config")
)

// Config holds settings for a settlement. Most values have sane defaults (see
// DefaultConfig) & a YAML file need only set what it wishes to change.
type Config struct {
	// side length of the (square) map in world units, centred on the origin
	MapSize float64 `yaml:"map_size"`

	// clicks / road ends within this distance snap to an existing node
	SnapRadius float64 `yaml:"snap_radius"`

	// a drafted waypoint closer than this to the previous one is rejected
	MinSegmentLength float64 `yaml:"min_segment_length"`

	// width & surface of newly committed roads
	RoadWidth   float64       `yaml:"road_width"`
	RoadSurface roads.Surface `yaml:"road_surface"`

	// lots may not have a corner below this elevation
	WaterLevel float64 `yaml:"water_level"`

	// max difference in elevation between the corners of a lot
	MaxSteepness float64 `yaml:"max_steepness"`

	// extra space kept between a lot corner & the edge of a road
	RoadClearance float64 `yaml:"road_clearance"`

	// distance from road centreline to lot edge, half the lot depth is added
	// on top of this to find the lot centre
	Setback float64 `yaml:"setback"`

	// spline samples per span used when searching for sites & when checking
	// road clearance
	SearchDensity    int `yaml:"search_density"`
	ClearanceDensity int `yaml:"clearance_density"`

	// producers need at least this richness somewhere along a road
	MinResourceRichness float64 `yaml:"min_resource_richness"`

	Score *ScoreConfig `yaml:"score"`

	// the building catalog, order matters: placements refer to definitions
	// by their index
	Buildings []*BuildingDef `yaml:"buildings"`

	// order (by catalog index) in which archetypes are tried each tick
	SpawnOrder []int `yaml:"spawn_order"`
}

// ScoreConfig holds the weights used to rank candidate sites.
type ScoreConfig struct {
	FlatnessWeight float64 `yaml:"flatness_weight"`
	RichnessWeight float64 `yaml:"richness_weight"`

	// producers lose this much per residence within ResidentialRadius
	ResidentialPenalty float64 `yaml:"residential_penalty"`
	ResidentialRadius  float64 `yaml:"residential_radius"`

	// residences gain this much per producer within ProducerRadius, up to
	// ProducerBonusCap
	ProducerBonus    float64 `yaml:"producer_bonus"`
	ProducerBonusCap float64 `yaml:"producer_bonus_cap"`
	ProducerRadius   float64 `yaml:"producer_radius"`

	// residences gain this much per residence within ResidentialRadius, up
	// to ClusterBonusCap
	ClusterBonus    float64 `yaml:"cluster_bonus"`
	ClusterBonusCap float64 `yaml:"cluster_bonus_cap"`
}

// BuildingDef describes a building archetype. citygrow only worries about
// the land a building needs, not what it looks like.
type BuildingDef struct {
	Label    string   `yaml:"label"`
	Category Category `yaml:"category"`

	// half the lot width (along the road) & depth (away from the road)
	HalfWidth float64 `yaml:"half_width"`
	HalfDepth float64 `yaml:"half_depth"`

	// resource extracted (producers only), empty for none
	Extracts         Resource `yaml:"extracts,omitempty"`
	ExtractionRadius float64  `yaml:"extraction_radius,omitempty"`
}

// HalfExtents returns the lot half extents as (width, depth).
func (b *BuildingDef) HalfExtents() model2d.Coord {
	return model2d.XY(b.HalfWidth, b.HalfDepth)
}

// DefaultScoreConfig returns the standard weights.
func DefaultScoreConfig() *ScoreConfig {
	return &ScoreConfig{
		FlatnessWeight:     2,
		RichnessWeight:     8,
		ResidentialPenalty: 2,
		ResidentialRadius:  20,
		ProducerBonus:      2,
		ProducerBonusCap:   6,
		ProducerRadius:     50,
		ClusterBonus:       0.5,
		ClusterBonusCap:    2,
	}
}

// DefaultBuildings returns the standard building catalog.
func DefaultBuildings() []*BuildingDef {
	return []*BuildingDef{
		{
			Label:            "Logging Camp",
			Category:         Producer,
			HalfWidth:        6,
			HalfDepth:        5,
			Extracts:         Timber,
			ExtractionRadius: 60,
		},
		{
			Label:     "Worker Cottage",
			Category:  Residential,
			HalfWidth: 4,
			HalfDepth: 4,
		},
	}
}

// DefaultConfig returns a Config with every value set.
func DefaultConfig() *Config {
	return &Config{
		MapSize:             500,
		SnapRadius:          3,
		MinSegmentLength:    3,
		RoadWidth:           2,
		RoadSurface:         roads.Dirt,
		WaterLevel:          2,
		MaxSteepness:        3,
		RoadClearance:       1.5,
		Setback:             3.5,
		SearchDensity:       4,
		ClearanceDensity:    4,
		MinResourceRichness: 0.2,
		Score:               DefaultScoreConfig(),
		Buildings:           DefaultBuildings(),
		SpawnOrder:          []int{0, 1},
	}
}

// LoadConfig reads a YAML file over the top of DefaultConfig.
func LoadConfig(fpath string) (*Config, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", fpath)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the top of DefaultConfig & validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if cfg.Score == nil {
		cfg.Score = DefaultScoreConfig()
	}
	return cfg, cfg.Validate()
}

// YAML encodes the config.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate returns ErrInvalidConfig (wrapped with a reason) if the config
// can't be used.
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInvalidConfig, format, args...)
	}

	if c.MapSize <= 0 {
		return invalid("map_size must be positive")
	}
	if c.RoadWidth <= 0 {
		return invalid("road_width must be positive")
	}
	if c.SnapRadius < 0 || c.MinSegmentLength < 0 || c.RoadClearance < 0 || c.Setback < 0 {
		return invalid("distances may not be negative")
	}
	if c.SearchDensity < 1 || c.ClearanceDensity < 1 {
		return invalid("sample densities must be at least 1")
	}
	if c.Score == nil {
		return invalid("score weights required")
	}
	if len(c.Buildings) == 0 {
		return invalid("at least one building is required")
	}
	for i, b := range c.Buildings {
		if b == nil {
			return invalid("building %d is empty", i)
		}
		if !b.Category.Valid() {
			return invalid("building %d (%s) has unknown category %q", i, b.Label, b.Category)
		}
		if b.HalfWidth <= 0 || b.HalfDepth <= 0 {
			return invalid("building %d (%s) needs a positive footprint", i, b.Label)
		}
		if b.Extracts != "" && b.Extracts.ID() == 0 {
			return invalid("building %d (%s) extracts unknown resource %q", i, b.Label, b.Extracts)
		}
	}
	for _, idx := range c.SpawnOrder {
		if idx < 0 || idx >= len(c.Buildings) {
			return invalid("spawn order refers to unknown building %d", idx)
		}
	}
	return nil
}
