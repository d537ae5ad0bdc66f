package upgrade_evolve

import "fmt"

// Combo is a named, fixed ordered sequence of upgrade ids meant for direct
// execution against a character.
type Combo struct {
	Name       string
	UpgradeIDs []string
}

// ComboRegistry holds combos keyed by name. Upgrade ids are validated
// against the upgrade registry at Add time only; removing an upgrade
// afterwards leaves a dangling reference that surfaces as
// ErrUpgradeNotFound when Execute reaches that id.
type ComboRegistry struct {
	upgrades *UpgradeRegistry
	order    []string
	byName   map[string]*Combo
}

func NewComboRegistry(upgrades *UpgradeRegistry) *ComboRegistry {
	return &ComboRegistry{
		upgrades: upgrades,
		byName:   make(map[string]*Combo),
	}
}

// Add validates every upgrade id before inserting, so a failed Add leaves
// the registry untouched. The error names the first unresolved id.
func (r *ComboRegistry) Add(c *Combo) error {
	if _, ok := r.byName[c.Name]; ok {
		return fmt.Errorf("%w: %q", ErrComboExists, c.Name)
	}
	for _, id := range c.UpgradeIDs {
		if !r.upgrades.Contains(id) {
			return fmt.Errorf("%w: %q", ErrMissingUpgrade, id)
		}
	}
	r.order = append(r.order, c.Name)
	r.byName[c.Name] = c
	return nil
}

// Execute applies the combo's upgrades in declared order, mutating the
// character sequentially and cumulatively.
func (r *ComboRegistry) Execute(name string, c *Character) error {
	combo, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrComboNotFound, name)
	}
	for _, id := range combo.UpgradeIDs {
		if err := r.upgrades.Apply(id, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *ComboRegistry) Remove(name string) error {
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrComboNotFound, name)
	}
	delete(r.byName, name)
	for i, known := range r.order {
		if known == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ComboRegistry) Get(name string) (*Combo, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// ListNames returns the registered combo names in registration order.
func (r *ComboRegistry) ListNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
