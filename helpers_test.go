package citygrow

import (
	"math"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

// terrainFunc is a Terrain defined by a height function, always flat
type terrainFunc func(x, z float64) float64

func (f terrainFunc) Height(x, z float64) float64 {
	return f(x, z)
}

func (f terrainFunc) Flatness(x, z float64) float64 {
	return 1
}

// flat returns ground at the given height everywhere
func flat(h float64) terrainFunc {
	return func(x, z float64) float64 { return h }
}

// resourceFunc is Resources defined by a function
type resourceFunc func(x, z float64) (ResourceCell, bool)

func (f resourceFunc) ResourceAt(x, z float64) (ResourceCell, bool) {
	return f(x, z)
}

// noResources has nothing anywhere
var noResources = resourceFunc(func(x, z float64) (ResourceCell, bool) {
	return ResourceCell{}, false
})

// timberBand has rich timber where |x| < 20
var timberBand = resourceFunc(func(x, z float64) (ResourceCell, bool) {
	if math.Abs(x) < 20 {
		return ResourceCell{Resource: Timber, Richness: 0.8}, true
	}
	return ResourceCell{}, false
})

// straightRoad returns waypoints for a road along X at z
func straightRoad(x0, x1, z float64) []model3d.Coord3D {
	return []model3d.Coord3D{model3d.XYZ(x0, 0, z), model3d.XYZ(x1, 0, z)}
}

// newTestSettlement returns a settlement with default config
func newTestSettlement(t *testing.T, terrain Terrain, resources Resources) *Settlement {
	t.Helper()
	s, err := New(DefaultConfig(), terrain, resources)
	if err != nil {
		t.Fatalf("failed to create settlement: %v", err)
	}
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
