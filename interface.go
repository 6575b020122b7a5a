package citygrow

// Terrain tells citygrow about the ground under the settlement.
// Implementations must be deterministic & side effect free, and defined over
// the whole map (clamping at the edges) since we sample freely.
type Terrain interface {
	// elevation of the ground at world (x, z)
	Height(x, z float64) float64

	// how flat the ground is around (x, z), 1 being perfectly flat & 0 a
	// vertical cliff
	Flatness(x, z float64) float64
}

// Resources tells citygrow what can be extracted where.
type Resources interface {
	// the resource at world (x, z) if there is any
	ResourceAt(x, z float64) (ResourceCell, bool)
}

// ResourceCell is what a Resources reports at a location.
type ResourceCell struct {
	Resource Resource

	// abundance from 0 to 1
	Richness float64
}
