// Package joshentity implements the entity, prototype and event-handler
// model of spec §3: mutable entities keyed by (state, attribute, event)
// handler groups, advanced through an ordered sequence of substeps.
package joshentity

import "fmt"

// Substep names one of the five phases an entity's attributes are evaluated
// in, in the fixed order given by spec §4.7. Each shares its name with a
// reserved event name (spec §6); `constant` precedes the other four. Build
// evaluates no handlers: `constant` handlers run when the entity is
// fast-forwarded through the `constant` substep.
type Substep string

const (
	SubstepConstant Substep = "constant"
	SubstepInit     Substep = "init"
	SubstepStart    Substep = "start"
	SubstepStep     Substep = "step"
	SubstepEnd      Substep = "end"
)

// Order lists every substep in evaluation order, per spec §4.7.
var Order = []Substep{SubstepConstant, SubstepInit, SubstepStart, SubstepStep, SubstepEnd}

// indexOf returns s's position in Order, or -1 if s is not a recognized
// substep.
func indexOf(s Substep) int {
	for i, o := range Order {
		if o == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the five recognized substeps.
func (s Substep) Valid() bool {
	return indexOf(s) >= 0
}

func (s Substep) String() string {
	return string(s)
}

// validateSubstep returns an error naming s if it isn't recognized.
func validateSubstep(s Substep) error {
	if !s.Valid() {
		return fmt.Errorf("joshentity: %q is not a recognized substep", s)
	}
	return nil
}
