package terrain

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Heightmap is a square grid of elevations covering a square map centred on
// the origin. Row runs along world Z, column along world X.
type Heightmap struct {
	Resolution int
	MapSize    float64
	Heights    []float64
}

// NewHeightmap returns a flat heightmap at elevation 0
func NewHeightmap(resolution int, mapSize float64) *Heightmap {
	if resolution < 2 {
		resolution = 2
	}
	return &Heightmap{
		Resolution: resolution,
		MapSize:    mapSize,
		Heights:    make([]float64, resolution*resolution),
	}
}

// CellSize returns the world distance between grid points
func (h *Heightmap) CellSize() float64 {
	return h.MapSize / float64(h.Resolution-1)
}

// At returns the elevation at row, col. Out of range indexes are clamped.
func (h *Heightmap) At(row, col int) float64 {
	return h.Heights[h.index(row, col)]
}

// Set the elevation at row, col. Out of range indexes are clamped.
func (h *Heightmap) Set(row, col int, v float64) {
	h.Heights[h.index(row, col)] = v
}

// Height samples the elevation at world (x, z), interpolating between the
// four surrounding grid points. Positions off the map are clamped to the
// edge.
func (h *Heightmap) Height(x, z float64) float64 {
	fc, fr := h.grid(x, z)

	c0, r0 := int(math.Floor(fc)), int(math.Floor(fr))
	tc, tr := fc-float64(c0), fr-float64(r0)

	top := lerp(h.At(r0, c0), h.At(r0, c0+1), tc)
	bottom := lerp(h.At(r0+1, c0), h.At(r0+1, c0+1), tc)
	return lerp(top, bottom, tr)
}

// Flatness returns the Y component of the ground normal at the grid point
// nearest world (x, z): 1 is flat, towards 0 is a cliff.
func (h *Heightmap) Flatness(x, z float64) float64 {
	fc, fr := h.grid(x, z)
	return h.cellFlatness(int(math.Round(fr)), int(math.Round(fc)))
}

// cellFlatness returns the normal Y at a grid point using it's neighbours,
// edges use the point itself in place of the missing neighbour
func (h *Heightmap) cellFlatness(row, col int) float64 {
	normal := model3d.XYZ(
		h.At(row, col-1)-h.At(row, col+1),
		2*h.CellSize(),
		h.At(row-1, col)-h.At(row+1, col),
	)
	return normal.Normalize().Y
}

// grid converts world (x, z) to fractional (col, row), clamped to the grid
func (h *Heightmap) grid(x, z float64) (float64, float64) {
	half := h.MapSize / 2
	max := float64(h.Resolution - 1)
	col := clamp((x+half)/h.CellSize(), 0, max)
	row := clamp((z+half)/h.CellSize(), 0, max)
	return col, row
}

// index returns the Heights index for row, col (clamped)
func (h *Heightmap) index(row, col int) int {
	row = clampInt(row, 0, h.Resolution-1)
	col = clampInt(col, 0, h.Resolution-1)
	return row*h.Resolution + col
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
