package upgrade_evolve

import (
	"errors"
	mop "reflect"
	test "testing"
)

func attackUpgrade(id string, amount float64) *Upgrade {
	return &Upgrade{
		ID:     id,
		Name:   id,
		Effect: func(c *Character) { c.Attack += amount },
	}
}

func defenseUpgrade(id string, amount float64) *Upgrade {
	return &Upgrade{
		ID:     id,
		Name:   id,
		Effect: func(c *Character) { c.Defense += amount },
	}
}

func TestUpgradeRegistryAddDuplicate(t *test.T) {
	reg := NewUpgradeRegistry()
	if err := reg.Add(attackUpgrade("sharpen", 2)); err != nil {
		t.Fatalf("First Add failed: %v", err)
	}

	err := reg.Add(attackUpgrade("sharpen", 5))
	if !errors.Is(err, ErrUpgradeExists) {
		t.Errorf("Expected ErrUpgradeExists from duplicate Add, got %v", err)
	}
}

func TestUpgradeRegistryRemoveAndReAdd(t *test.T) {
	reg := NewUpgradeRegistry()
	if err := reg.Add(attackUpgrade("sharpen", 2)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := reg.Remove("sharpen"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if reg.Contains("sharpen") {
		t.Errorf("Registry still contains removed id")
	}

	if err := reg.Remove("sharpen"); !errors.Is(err, ErrUpgradeNotFound) {
		t.Errorf("Expected ErrUpgradeNotFound from second Remove, got %v", err)
	}

	if err := reg.Add(attackUpgrade("sharpen", 2)); err != nil {
		t.Errorf("Re-Add after Remove failed: %v", err)
	}
}

func TestUpgradeRegistryGet(t *test.T) {
	reg := NewUpgradeRegistry()
	reg.Add(attackUpgrade("sharpen", 2))

	if u, ok := reg.Get("sharpen"); !ok || u.ID != "sharpen" {
		t.Errorf("Get for a present id returned (%v, %v)", u, ok)
	}

	if u, ok := reg.Get("ghost"); ok || u != nil {
		t.Errorf("Get for a missing id returned (%v, %v), expected (nil, false)", u, ok)
	}
}

func TestUpgradeRegistryApply(t *test.T) {
	reg := NewUpgradeRegistry()
	reg.Add(attackUpgrade("sharpen", 2))

	c := &Character{Health: 10, Attack: 1, Defense: 1}
	if err := reg.Apply("sharpen", c); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if c.Attack != 3 {
		t.Errorf("Attack after Apply is %v, expected 3", c.Attack)
	}

	// Effects compound on repeat application.
	if err := reg.Apply("sharpen", c); err != nil {
		t.Fatalf("Second Apply failed: %v", err)
	}
	if c.Attack != 5 {
		t.Errorf("Attack after second Apply is %v, expected 5", c.Attack)
	}

	if err := reg.Apply("ghost", c); !errors.Is(err, ErrUpgradeNotFound) {
		t.Errorf("Expected ErrUpgradeNotFound applying missing id, got %v", err)
	}
}

func TestUpgradeRegistryListIDsOrder(t *test.T) {
	reg := NewUpgradeRegistry()
	for _, id := range []string{"c", "a", "b"} {
		reg.Add(attackUpgrade(id, 1))
	}

	expected := []string{"c", "a", "b"}
	if actual := reg.ListIDs(); !mop.DeepEqual(expected, actual) {
		t.Errorf("ListIDs order does not match registration order:\nExpected: %v\nActual: %v", expected, actual)
	}

	reg.Remove("a")
	expected = []string{"c", "b"}
	if actual := reg.ListIDs(); !mop.DeepEqual(expected, actual) {
		t.Errorf("ListIDs after Remove:\nExpected: %v\nActual: %v", expected, actual)
	}
}

func TestUpgradeRegistryListIDsIsACopy(t *test.T) {
	reg := NewUpgradeRegistry()
	reg.Add(attackUpgrade("a", 1))
	reg.Add(attackUpgrade("b", 1))

	ids := reg.ListIDs()
	ids[0] = "mangled"

	if actual := reg.ListIDs(); actual[0] != "a" {
		t.Errorf("Mutating a ListIDs result leaked into the registry: %v", actual)
	}
}
