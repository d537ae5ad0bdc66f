package upgrade_evolve

import "fmt"

// Effect mutates a character in place. Effects compound: applying the same
// upgrade twice runs its effect twice.
type Effect func(*Character)

type Upgrade struct {
	ID     string
	Name   string
	Effect Effect
}

// UpgradeRegistry holds upgrades keyed by id, preserving registration
// order. The optimizer consumes ListIDs() as its candidate pool, so
// iteration order must match registration order. Not synchronized; callers
// sharing a registry across goroutines must serialize writes themselves.
type UpgradeRegistry struct {
	order []string
	byID  map[string]*Upgrade
}

func NewUpgradeRegistry() *UpgradeRegistry {
	return &UpgradeRegistry{byID: make(map[string]*Upgrade)}
}

func (r *UpgradeRegistry) Add(u *Upgrade) error {
	if _, ok := r.byID[u.ID]; ok {
		return fmt.Errorf("%w: %q", ErrUpgradeExists, u.ID)
	}
	r.order = append(r.order, u.ID)
	r.byID[u.ID] = u
	return nil
}

func (r *UpgradeRegistry) Remove(id string) error {
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUpgradeNotFound, id)
	}
	delete(r.byID, id)
	for i, known := range r.order {
		if known == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *UpgradeRegistry) Get(id string) (*Upgrade, bool) {
	u, ok := r.byID[id]
	return u, ok
}

func (r *UpgradeRegistry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Apply runs the named upgrade's effect against the passed character,
// mutating it in place.
func (r *UpgradeRegistry) Apply(id string, c *Character) error {
	u, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUpgradeNotFound, id)
	}
	u.Effect(c)
	return nil
}

// ListIDs returns the registered ids in registration order. The returned
// slice is a copy, safe to hold across later registry mutation.
func (r *UpgradeRegistry) ListIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}
