package terrain

import (
	"github.com/voidshard/citygrow"
)

// ground is a rough classification of a grid point
type ground int

const (
	grass ground = iota
	dirt
	rock
)

// ResourceMap is a grid of resource deposits laid over the same area as a
// heightmap. Each cell holds at most one resource.
type ResourceMap struct {
	Resolution int
	MapSize    float64
	Cells      []*citygrow.ResourceCell
}

// NewResourceMap returns an empty resource map
func NewResourceMap(resolution int, mapSize float64) *ResourceMap {
	if resolution < 1 {
		resolution = 1
	}
	return &ResourceMap{
		Resolution: resolution,
		MapSize:    mapSize,
		Cells:      make([]*citygrow.ResourceCell, resolution*resolution),
	}
}

// Set the resource at row, col (clamped)
func (m *ResourceMap) Set(row, col int, cell *citygrow.ResourceCell) {
	m.Cells[m.index(row, col)] = cell
}

// ResourceAt returns the resource in the cell holding world (x, z).
// Positions off the map use the nearest edge cell.
func (m *ResourceMap) ResourceAt(x, z float64) (citygrow.ResourceCell, bool) {
	half := m.MapSize / 2
	size := m.MapSize / float64(m.Resolution)
	col := int(clamp((x+half)/size, 0, float64(m.Resolution-1)))
	row := int(clamp((z+half)/size, 0, float64(m.Resolution-1)))

	cell := m.Cells[m.index(row, col)]
	if cell == nil {
		return citygrow.ResourceCell{}, false
	}
	return *cell, true
}

// Count returns how many cells hold the given resource
func (m *ResourceMap) Count(r citygrow.Resource) int {
	count := 0
	for _, c := range m.Cells {
		if c != nil && c.Resource == r {
			count++
		}
	}
	return count
}

func (m *ResourceMap) index(row, col int) int {
	row = clampInt(row, 0, m.Resolution-1)
	col = clampInt(col, 0, m.Resolution-1)
	return row*m.Resolution + col
}

// GenerateResources lays resources over a heightmap, one cell per grid
// point. Where more than one resource could go the most specific wins:
// coal, clay, stone, fertile land then timber.
func GenerateResources(h *Heightmap, seed int64, waterLevel, heightScale float64) *ResourceMap {
	m := NewResourceMap(h.Resolution, h.MapSize)

	timber := &Noise{Seed: seed + 100, Octaves: 4, Frequency: 4 / h.MapSize, Persistence: 0.5}
	coal := &Noise{Seed: seed + 200, Octaves: 3, Frequency: 8 / h.MapSize, Persistence: 0.6}
	clay := &Noise{Seed: seed + 300, Octaves: 3, Frequency: 6 / h.MapSize, Persistence: 0.5}
	stone := &Noise{Seed: seed + 400, Octaves: 3, Frequency: 6 / h.MapSize, Persistence: 0.5}
	fertility := &Noise{Seed: seed + 500, Octaves: 3, Frequency: 3 / h.MapSize, Persistence: 0.5}

	cell := h.CellSize()
	for row := 0; row < h.Resolution; row++ {
		for col := 0; col < h.Resolution; col++ {
			height := h.At(row, col)
			if height < waterLevel {
				continue
			}

			flatness := h.cellFlatness(row, col)
			elevation := height / heightScale
			kind := classify(flatness, elevation)
			wet := nearWater(h, row, col, 5, waterLevel)
			x, z := float64(col)*cell, float64(row)*cell

			cn := coal.At(x, z)
			cln := clay.At(x, z)
			sn := stone.At(x, z)
			fn := fertility.At(x, z)
			tn := timber.At(x, z)

			var found *citygrow.ResourceCell
			switch {
			case kind != grass && elevation > 0.4 && cn > 0.5:
				found = deposit(citygrow.Coal, (cn-0.5)/0.5, 0)
			case wet && height < waterLevel+4 && cln > 0.3:
				found = deposit(citygrow.Clay, (cln-0.3)/0.7, 0)
			case kind == rock && sn > 0.3:
				found = deposit(citygrow.Stone, (sn-0.3)/0.7, 0)
			case flatness > 0.96 && wet && height < waterLevel+6 && fn > -0.2:
				found = deposit(citygrow.FertileLand, (fn+0.2)/1.2, 0.3)
			case kind != rock && flatness > 0.88 && height > waterLevel+3 && tn > 0.2:
				found = deposit(citygrow.Timber, (tn-0.2)/0.8, 0)
			}

			if found != nil {
				m.Set(row, col, found)
			}
		}
	}

	return m
}

// deposit returns a cell with richness clamped to [min, 1]
func deposit(r citygrow.Resource, richness, min float64) *citygrow.ResourceCell {
	return &citygrow.ResourceCell{Resource: r, Richness: clamp(richness, min, 1)}
}

// classify decides what sort of ground a point is from how flat & how high
// (as a fraction of the height scale) it is
func classify(flatness, elevation float64) ground {
	switch {
	case flatness < 0.8 || elevation > 0.7:
		return rock
	case flatness < 0.92 || elevation > 0.5:
		return dirt
	}
	return grass
}

// nearWater returns if any grid point within radius of row, col is under
// water
func nearWater(h *Heightmap, row, col, radius int, waterLevel float64) bool {
	for r := row - radius; r <= row+radius; r++ {
		if r < 0 || r >= h.Resolution {
			continue
		}
		for c := col - radius; c <= col+radius; c++ {
			if c < 0 || c >= h.Resolution {
				continue
			}
			if h.At(r, c) < waterLevel {
				return true
			}
		}
	}
	return false
}

// Flat is a Terrain with the same elevation everywhere
type Flat float64

// Height returns the elevation
func (f Flat) Height(x, z float64) float64 {
	return float64(f)
}

// Flatness is always 1
func (f Flat) Flatness(x, z float64) float64 {
	return 1
}

var (
	_ citygrow.Terrain   = (*Heightmap)(nil)
	_ citygrow.Terrain   = Flat(0)
	_ citygrow.Resources = (*ResourceMap)(nil)
)
