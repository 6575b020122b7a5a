package terrain

// Options controls terrain generation
type Options struct {
	Seed        int64
	Resolution  int
	MapSize     float64
	HeightScale float64
}

// DefaultOptions returns a 256x256 grid over a 500 unit map with hills up
// to 30 units high.
func DefaultOptions() *Options {
	return &Options{
		Seed:        1,
		Resolution:  256,
		MapSize:     500,
		HeightScale: 30,
	}
}

// Generate builds a heightmap of rolling hills. The same options always
// give the same heightmap.
func Generate(opts *Options) *Heightmap {
	h := NewHeightmap(opts.Resolution, opts.MapSize)
	n := &Noise{
		Seed:        opts.Seed,
		Octaves:     5,
		Frequency:   3 / opts.MapSize,
		Persistence: 0.5,
	}

	cell := h.CellSize()
	for row := 0; row < h.Resolution; row++ {
		for col := 0; col < h.Resolution; col++ {
			x, z := float64(col)*cell, float64(row)*cell
			h.Set(row, col, (n.At(x, z)+1)/2*opts.HeightScale)
		}
	}

	return h
}
