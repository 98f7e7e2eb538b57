// Package components defines ECS components for the player population.
package components

import "github.com/pthm-cable/dilemma/strategy"

// Identity names a player. ID is unique for the lifetime of a run and
// orders the population by creation.
type Identity struct {
	ID   uint32
	Name string
}

// Strategy binds a player to its strategy kind and policy.
type Strategy struct {
	Kind   strategy.Kind
	Policy strategy.Policy
}

// Lineage records where a player came from.
type Lineage struct {
	Born     int    // Season the player first plays in (0 = founder)
	ParentID uint32 // Player whose fitness spawned this one (0 = founder)
}
