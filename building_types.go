package citygrow

import (
	"sort"
)

// Category is the broad kind of a building. Scoring & viability rules are
// decided per category.
type Category string

const (
	Producer    Category = "producer"    // extracts a resource from the land
	Residential Category = "residential" // houses workers
)

// Resource is something the land provides that producers extract.
type Resource string

const (
	Timber      Resource = "timber"
	FertileLand Resource = "fertile-land"
	Coal        Resource = "coal"
	Clay        Resource = "clay"
	Stone       Resource = "stone"
)

var (
	allCategories = []Category{Producer, Residential}

	// resources ordered by how specific their terrain requirements are,
	// most specific first
	allResources = []Resource{Coal, Clay, Stone, FertileLand, Timber}

	resourceIndex = map[Resource]int{
		Coal:        1,
		Clay:        2,
		Stone:       3,
		FertileLand: 4,
		Timber:      5,
	}

	invResourceIndex = map[int]Resource{}

	resourceLabels = map[Resource]string{
		Timber:      "Timber",
		FertileLand: "Fertile Land",
		Coal:        "Coal",
		Clay:        "Clay",
		Stone:       "Stone",
	}
)

func init() {
	for k, v := range resourceIndex {
		invResourceIndex[v] = k
	}
}

// Valid returns if the category is one we know about
func (c Category) Valid() bool {
	for _, k := range allCategories {
		if k == c {
			return true
		}
	}
	return false
}

// AllCategories returns all known Category enums
func AllCategories() []Category {
	return allCategories
}

// ID returns the index of a resource, 0 if unknown (or none)
func (r Resource) ID() int {
	v, ok := resourceIndex[r]
	if !ok {
		return 0
	}
	return v
}

// Label returns a human friendly name
func (r Resource) Label() string {
	l, ok := resourceLabels[r]
	if !ok {
		return string(r)
	}
	return l
}

// resourceForID is the inversion of Resource.ID()
func resourceForID(i int) (Resource, bool) {
	r, ok := invResourceIndex[i]
	return r, ok
}

// AllResources returns all known Resource enums
func AllResources() []Resource {
	return allResources
}

// sortResources orders resources by specificity (see allResources)
func sortResources(in []Resource) {
	sort.Slice(in, func(a, b int) bool {
		return in[a].ID() < in[b].ID()
	})
}
