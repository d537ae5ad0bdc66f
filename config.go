package upgrade_evolve

import "fmt"

// ToolConfig is the aggregate the cmd tools decode from TOML.
type ToolConfig struct {
	Persistence *PersistenceConfig `toml:"persistence"`
	Optimizer   *OptimizerConfig   `toml:"optimizer"`
	Base        *CharacterConfig   `toml:"base"`
	Upgrades    []*UpgradeConfig   `toml:"upgrades"`
	Combos      []*ComboConfig     `toml:"combos"`
}

type CharacterConfig struct {
	Health  float64 `toml:"health"`
	Attack  float64 `toml:"attack"`
	Defense float64 `toml:"defense"`
}

func (cc *CharacterConfig) ToCharacter() *Character {
	return &Character{Health: cc.Health, Attack: cc.Attack, Defense: cc.Defense}
}

// UpgradeConfig describes an upgrade as data: which stat it touches and
// how. ToUpgrade compiles it into an effect closure.
type UpgradeConfig struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name"`
	Stat   string  `toml:"stat"`
	Op     string  `toml:"op"`
	Amount float64 `toml:"amount"`
}

type ComboConfig struct {
	Name       string   `toml:"name"`
	UpgradeIDs []string `toml:"upgrade_ids"`
}

func (uc *UpgradeConfig) ToUpgrade() (*Upgrade, error) {
	var pick func(c *Character) *float64
	switch uc.Stat {
	case "health":
		pick = func(c *Character) *float64 { return &c.Health }
	case "attack":
		pick = func(c *Character) *float64 { return &c.Attack }
	case "defense":
		pick = func(c *Character) *float64 { return &c.Defense }
	default:
		return nil, fmt.Errorf("unknown stat %q for upgrade %q", uc.Stat, uc.ID)
	}

	amount := uc.Amount
	var effect Effect
	switch uc.Op {
	case "add":
		effect = func(c *Character) { *pick(c) += amount }
	case "mul":
		effect = func(c *Character) { *pick(c) *= amount }
	default:
		return nil, fmt.Errorf("unknown op %q for upgrade %q", uc.Op, uc.ID)
	}

	return &Upgrade{ID: uc.ID, Name: uc.Name, Effect: effect}, nil
}

// BuildRegistries compiles the configured upgrades and combos into live
// registries. Combos validate against the upgrade registry as they are
// added, so a config referencing an unknown id fails here.
func (tc *ToolConfig) BuildRegistries() (*UpgradeRegistry, *ComboRegistry, error) {
	upgrades := NewUpgradeRegistry()
	for _, uc := range tc.Upgrades {
		u, err := uc.ToUpgrade()
		if err != nil {
			return nil, nil, err
		}
		if err := upgrades.Add(u); err != nil {
			return nil, nil, err
		}
	}

	combos := NewComboRegistry(upgrades)
	for _, cc := range tc.Combos {
		if err := combos.Add(&Combo{Name: cc.Name, UpgradeIDs: cc.UpgradeIDs}); err != nil {
			return nil, nil, err
		}
	}

	return upgrades, combos, nil
}
