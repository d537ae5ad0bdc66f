package upgrade_evolve

import (
	cp "github.com/jinzhu/copier"
)

// Character is the mutable stat block that upgrades operate on. Stats are
// unbounded and may go negative; effects apply without clamping.
type Character struct {
	Health  float64
	Attack  float64
	Defense float64
}

func (c *Character) Clone() *Character {
	clone := &Character{}
	cp.Copy(clone, c)
	return clone
}
