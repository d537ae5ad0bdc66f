package upgrade_evolve

const (
	DEBUG = false

	DefaultPopulationSize uint   = 10
	DefaultGenerations    uint   = 10
	DefaultSeed           uint32 = 1

	// MutationChance gates whether a freshly bred child is perturbed at
	// all; RemovalChance then decides between dropping an id and adding
	// one.
	MutationChance = 0.3
	RemovalChance  = 0.5
)
