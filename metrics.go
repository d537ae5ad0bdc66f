package upgrade_evolve

import (
	sm "github.com/xrash/smetrics"
)

// RunMetrics summarizes a finished optimization run.
type RunMetrics struct {
	BestFitness  float64
	GenomeLength int
	Health       float64
	Attack       float64
	Defense      float64
}

// MeasureRun applies the winning genome to a clone of base and reports the
// resulting stats alongside the fitness.
func MeasureRun(base *Character, best Genome, reg *UpgradeRegistry) (*RunMetrics, error) {
	clone := base.Clone()
	for _, id := range best {
		if err := reg.Apply(id, clone); err != nil {
			return nil, err
		}
	}
	return &RunMetrics{
		BestFitness:  clone.Attack + clone.Defense,
		GenomeLength: len(best),
		Health:       clone.Health,
		Attack:       clone.Attack,
		Defense:      clone.Defense,
	}, nil
}

// GenomeDistance is the Wagner-Fischer edit distance between the joined id
// strings of two genomes (insert/delete cost 1, substitute cost 2). The
// archive uses it to suppress near-duplicate entries.
func GenomeDistance(a, b Genome) int {
	return sm.WagnerFischer(a.String(), b.String(), 1, 1, 2)
}

// ComboDiversity is the mean pairwise genome distance across all registered
// combos. A registry of identical sequences scores 0, as does a registry
// with fewer than two combos.
func ComboDiversity(reg *ComboRegistry) float64 {
	names := reg.ListNames()
	if len(names) < 2 {
		return 0
	}

	var total, pairs float64
	for i := 0; i < len(names); i++ {
		a, _ := reg.Get(names[i])
		for j := i + 1; j < len(names); j++ {
			b, _ := reg.Get(names[j])
			total += float64(GenomeDistance(Genome(a.UpgradeIDs), Genome(b.UpgradeIDs)))
			pairs++
		}
	}
	return total / pairs
}
