package upgrade_evolve

import "errors"

var (
	ErrUpgradeExists   = errors.New("upgrade already registered")
	ErrUpgradeNotFound = errors.New("upgrade not found")
	ErrComboExists     = errors.New("combo already registered")
	ErrComboNotFound   = errors.New("combo not found")
	ErrMissingUpgrade  = errors.New("combo references unregistered upgrade")
	ErrNoUpgrades      = errors.New("no upgrades available")
)
