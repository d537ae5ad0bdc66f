package upgrade_evolve

import (
	"fmt"
	"log"
	"sort"
	str "strings"
)

// Genome is an ordered candidate sequence of upgrade ids. Unlike a Combo it
// is never registered anywhere; genomes live and die inside a single
// optimization run. Duplicates are allowed and order matters, since effects
// may read the stats they write.
type Genome []string

func (g Genome) Contains(id string) bool {
	for _, known := range g {
		if known == id {
			return true
		}
	}
	return false
}

// String joins the ids with single spaces. The archive and genome distance
// both work over this form.
func (g Genome) String() string {
	return str.Join(g, " ")
}

type OptimizerConfig struct {
	PopulationSize uint   `toml:"population_size"`
	Generations    uint   `toml:"generations"`
	Seed           uint32 `toml:"seed"`
}

type Optimizer struct {
	Config *OptimizerConfig
}

// NewOptimizerFromConfig fills zero-valued fields with the package
// defaults. A nil config gets defaults across the board.
func NewOptimizerFromConfig(config *OptimizerConfig) *Optimizer {
	if config == nil {
		config = &OptimizerConfig{}
	}
	if config.PopulationSize == 0 {
		config.PopulationSize = DefaultPopulationSize
	}
	if config.Generations == 0 {
		config.Generations = DefaultGenerations
	}
	if config.Seed == 0 {
		config.Seed = DefaultSeed
	}
	return &Optimizer{Config: config}
}

// Fitness scores a genome as the attack + defense remaining after applying
// every upgrade, in order, to a clone of base. Health does not contribute.
// The clone keeps the caller's character untouched.
func Fitness(base *Character, genome Genome, reg *UpgradeRegistry) float64 {
	clone := base.Clone()
	for _, id := range genome {
		if err := reg.Apply(id, clone); err != nil {
			// Genomes only ever hold ids from the run's registry snapshot,
			// so a miss means the registry was mutated mid-run.
			panic(fmt.Errorf("fitness hit unknown upgrade: %w", err))
		}
	}
	return clone.Attack + clone.Defense
}

// Optimize searches upgrade-id sequences for the one maximizing Fitness
// against base. The registry is only read; base is never mutated. Every
// random decision consumes exactly one Next() in a fixed order, so
// identical seeds and registry contents reproduce identical results.
func (o *Optimizer) Optimize(base *Character, reg *UpgradeRegistry) (Genome, error) {
	ids := reg.ListIDs()
	if len(ids) == 0 {
		return nil, ErrNoUpgrades
	}

	rng := NewRand(o.Config.Seed)
	size := int(o.Config.PopulationSize)

	population := make([]Genome, size)
	for i := range population {
		population[i] = randomGenome(rng, ids)
	}

	survivors := size / 2
	if survivors < 1 {
		survivors = 1
	}

	for gen := uint(0); gen < o.Config.Generations; gen++ {
		rank(base, reg, population)
		population = population[:survivors]
		for len(population) < size {
			population = append(population, breed(rng, ids, population[:survivors]))
		}
		if DEBUG {
			log.Printf("Generation %d best fitness: %v", gen, Fitness(base, population[0], reg))
		}
	}

	rank(base, reg, population)
	return population[0], nil
}

type rankedGenome struct {
	genome  Genome
	fitness float64
}

// rank orders genomes by descending fitness. The sort is stable so that
// equal-fitness genomes keep their prior order, keeping runs reproducible.
func rank(base *Character, reg *UpgradeRegistry, population []Genome) {
	ranked := make([]rankedGenome, len(population))
	for i, g := range population {
		ranked[i] = rankedGenome{genome: g, fitness: Fitness(base, g, reg)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].fitness > ranked[j].fitness
	})
	for i := range ranked {
		population[i] = ranked[i].genome
	}
}

// randomGenome draws a length in [1, len(ids)], shuffles a copy of the id
// pool, and keeps the prefix. The shuffle is a randomized-comparator
// insertion sort: each comparison consumes one draw and swaps left when the
// draw lands below 0.5. Not a uniform shuffle, but a fixed draw sequence.
func randomGenome(rng *Rand, ids []string) Genome {
	length := int(rng.Next() * float64(len(ids)))
	if length < 1 {
		length = 1
	}

	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	for i := 1; i < len(shuffled); i++ {
		for j := i; j > 0 && rng.Next()-0.5 < 0; j-- {
			shuffled[j], shuffled[j-1] = shuffled[j-1], shuffled[j]
		}
	}

	return Genome(shuffled[:length])
}

// breed crosses two survivors at a random cut point and occasionally
// mutates the child. Parents may be the same genome. The child is always a
// fresh slice; nothing aliases the parents.
func breed(rng *Rand, ids []string, survivors []Genome) Genome {
	parent1 := survivors[int(rng.Next()*float64(len(survivors)))]
	parent2 := survivors[int(rng.Next()*float64(len(survivors)))]
	cut := int(rng.Next() * float64(len(parent1)))

	child := make(Genome, 0, len(parent1)+len(parent2))
	child = append(child, parent1[:cut]...)
	if cut < len(parent2) {
		child = append(child, parent2[cut:]...)
	}

	if rng.Next() < MutationChance {
		if rng.Next() < RemovalChance && len(child) > 1 {
			at := int(rng.Next() * float64(len(child)))
			child = append(child[:at], child[at+1:]...)
		} else {
			id := ids[int(rng.Next()*float64(len(ids)))]
			if !child.Contains(id) {
				child = append(child, id)
			}
		}
	}

	return child
}
