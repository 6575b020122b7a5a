package citygrow

import (
	"math"
)

// Score rates how desirable a candidate site is for the given building.
// Higher is better. All buildings like flat ground, beyond that:
//  - producers want to sit on rich deposits of what they extract & away
//    from homes
//  - residences want to be near work & near each other
func Score(c *Candidate, def *BuildingDef, buildings []*Building, terrain Terrain, resources Resources, cfg *Config) float64 {
	w := cfg.Score
	x, z := c.Position.X, c.Position.Z

	score := terrain.Flatness(x, z) * w.FlatnessWeight

	switch def.Category {
	case Producer:
		if cell, ok := resources.ResourceAt(x, z); ok && def.Extracts != "" && cell.Resource == def.Extracts {
			score += cell.Richness * w.RichnessWeight
		}
		homes := countNear(c, buildings, Residential, w.ResidentialRadius)
		score -= float64(homes) * w.ResidentialPenalty
	case Residential:
		work := countNear(c, buildings, Producer, w.ProducerRadius)
		score += math.Min(float64(work)*w.ProducerBonus, w.ProducerBonusCap)

		homes := countNear(c, buildings, Residential, w.ResidentialRadius)
		score += math.Min(float64(homes)*w.ClusterBonus, w.ClusterBonusCap)
	}

	return score
}

// Best scores each candidate & returns the highest. If more than one
// candidate shares the top score the first wins.
func Best(candidates []*Candidate, def *BuildingDef, buildings []*Building, terrain Terrain, resources Resources, cfg *Config) (*Candidate, float64, bool) {
	var best *Candidate
	bestScore := 0.0

	for _, c := range candidates {
		s := Score(c, def, buildings, terrain, resources, cfg)
		if best == nil || s > bestScore {
			best, bestScore = c, s
		}
	}

	return best, bestScore, best != nil
}

// countNear returns how many buildings of the given category are strictly
// within radius of the candidate on the ground plane
func countNear(c *Candidate, buildings []*Building, cat Category, radius float64) int {
	at := c.Center
	count := 0
	for _, b := range buildings {
		if b.Category != cat {
			continue
		}
		if b.XZ().Dist(at) < radius {
			count++
		}
	}
	return count
}
