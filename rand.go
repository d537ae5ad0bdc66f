package upgrade_evolve

// Rand is a mulberry32 generator over explicit 32-bit state. The same seed
// always yields the same draw sequence, which the optimizer depends on for
// reproducible runs, so every consumer takes a *Rand rather than reaching
// for a shared source.
type Rand struct {
	state uint32
}

func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Next advances the state and returns a float64 in the half-open interval
// [0, 1). All intermediate arithmetic wraps at 32 bits.
func (r *Rand) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}
