// Package joshff brings a newly created entity's attributes up to date with
// the substep the creating handler is currently running in (spec §4.7): a
// patch created mid-`step` must already have its `constant`/`init`/`start`
// attributes evaluated, and its `step` substep open for the remainder of
// the creator's own evaluation.
package joshff

import (
	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshscope"
)

// FastForward runs entity's substeps, in order, from wherever it last left
// off through target inclusive. Every substep strictly before target is
// opened, has every one of its attribute handler groups evaluated, and is
// closed; target itself is opened, evaluated, and left open so the caller's
// own handler can keep writing into it.
//
// Calling FastForward again with the same target on an entity already
// sitting open at target is a no-op (spec §8: fast-forward idempotence).
func FastForward(entity *joshentity.Entity, converter *joshconvert.Converter, target joshentity.Substep) error {
	if !target.Valid() {
		return josherrors.State("fast_forward", "%q is not a recognized substep", target)
	}
	targetIdx := substepIndex(target)

	startIdx := 0
	if current := entity.CurrentSubstep(); current != "" {
		curIdx := substepIndex(current)
		switch {
		case curIdx == targetIdx && entity.SubstepOpen():
			return nil
		case curIdx == targetIdx:
			startIdx = targetIdx
		default:
			startIdx = curIdx + 1
		}
	}
	if startIdx > targetIdx {
		return nil
	}

	for i := startIdx; i <= targetIdx; i++ {
		sub := joshentity.Order[i]
		if err := entity.StartSubstep(sub); err != nil {
			return err
		}
		if err := touchAttributes(entity, converter, sub); err != nil {
			return err
		}
		if i != targetIdx {
			if err := entity.EndSubstep(); err != nil {
				return err
			}
		}
	}
	return nil
}

func substepIndex(s joshentity.Substep) int {
	for i, candidate := range joshentity.Order {
		if candidate == s {
			return i
		}
	}
	return -1
}

// touchAttributes forces evaluation of every handler group whose event
// matches sub, writing each result back onto the entity so later reads
// observe the substep's effects rather than a stale or zero value.
func touchAttributes(entity *joshentity.Entity, converter *joshconvert.Converter, sub joshentity.Substep) error {
	scope := joshscope.NewEntityScope(entity, converter)
	for key, group := range entity.Groups() {
		if key.Event != string(sub) {
			continue
		}
		handler, ok, err := group.Select(scope)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		value, err := handler.Callable(scope)
		if err != nil {
			return err
		}
		entity.SetAttribute(key.Attribute, value)
	}
	return nil
}
