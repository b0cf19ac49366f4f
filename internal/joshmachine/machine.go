// Package joshmachine implements the single-threaded push-down evaluation
// machine of spec §4.6: a stack of EngineValues driven by a fixed operator
// catalog, with conversion-group unit normalization, a shared deterministic
// RNG, and the set-once bridge indirection from §4.3/§9.
package joshmachine

import (
	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshbridge"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshscope"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// HandlerAction is a compiled action: a function from machine to machine,
// composed sequentially by the compile visitor (spec §4.4).
type HandlerAction func(m *Machine) error

// conversionGroup tracks the target units for an in-progress conversion
// group (spec §4.6): the first pop inside the group fixes the target: every
// later pop inside the same group is converted to match.
type conversionGroup struct {
	target joshvalue.Units
	fixed  bool
}

// Machine is one push-down evaluator for one handler invocation (spec §5:
// "one machine per handler invocation; no concurrency within a machine").
type Machine struct {
	stack []*joshvalue.EngineValue

	local *joshscope.LocalScope

	bridge        *joshbridge.FutureBridge
	rng           *Random
	currentEntity *joshentity.Entity

	group *conversionGroup
	ended bool
}

// New builds a Machine evaluating against scope, using bridge for
// conversions/prototypes/external data and rng for any randomness ops. Both
// bridge and rng are shared across every machine in a simulation run (spec
// §5: "converter tables and prototype stores are read-only after program
// construction"; "the only shared mutable resource is the bridge's RNG").
// currentEntity is the entity whose handler is running, used by
// create_entity to fast-forward newly built entities to the right substep;
// it may be nil for simulation-level handlers that never create entities.
func New(scope joshentity.Scope, bridge *joshbridge.FutureBridge, rng *Random, currentEntity *joshentity.Entity) *Machine {
	return &Machine{
		local:         joshscope.NewLocalScope(scope),
		bridge:        bridge,
		rng:           rng,
		currentEntity: currentEntity,
	}
}

// Scope exposes the machine's current scope (the local-binding layer over
// whatever scope it was constructed with), for building a ValueResolver
// against an identifier action.
func (m *Machine) Scope() joshentity.Scope {
	return m.local
}

// Push places v on top of the stack. Compiled literal/identifier actions use
// this directly; every other operator pushes its own result.
func (m *Machine) Push(v *joshvalue.EngineValue) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() (*joshvalue.EngineValue, error) {
	if len(m.stack) == 0 {
		return nil, josherrors.State("pop", "stack is empty")
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) bridgeOrErr() (joshbridge.Bridge, error) {
	return m.bridge.Get()
}

func (m *Machine) factory() (*joshvalue.Factory, error) {
	b, err := m.bridgeOrErr()
	if err != nil {
		return nil, err
	}
	return b.EngineValueFactory(), nil
}

// openGroup begins a conversion group. Nested conversion groups are
// forbidden (spec §4.6, §7: "conversion-group nesting violation").
func (m *Machine) openGroup() error {
	if m.group != nil {
		return josherrors.State("conversion_group", "conversion groups cannot be nested")
	}
	m.group = &conversionGroup{}
	return nil
}

// closeGroup ends the current conversion group, clearing its target.
func (m *Machine) closeGroup() error {
	if m.group == nil {
		return josherrors.State("conversion_group", "no conversion group is open")
	}
	m.group = nil
	return nil
}

// popConv pops a value inside an open conversion group: the first call
// fixes the group's target units from the popped value; later calls convert
// their popped value to that target if units differ.
func (m *Machine) popConv() (*joshvalue.EngineValue, error) {
	v, err := m.pop()
	if err != nil {
		return nil, err
	}
	if m.group == nil {
		return nil, josherrors.State("conversion_group", "popConv used outside an open conversion group")
	}
	if !m.group.fixed {
		m.group.target = v.GetUnits()
		m.group.fixed = true
		return v, nil
	}
	if v.GetUnits().Equal(m.group.target) {
		return v, nil
	}
	b, err := m.bridgeOrErr()
	if err != nil {
		return nil, err
	}
	return b.Convert(v, m.group.target)
}

// convertSingle normalizes v to targetUnits via the bridge directly,
// without opening a conversion group — used for the lone "→count units" /
// "→meters" normalizations the operator catalog calls out for count and
// distance operands (spec §4.6) that are not part of a two-sided group.
func (m *Machine) convertSingle(v *joshvalue.EngineValue, targetUnits joshvalue.Units) (*joshvalue.EngineValue, error) {
	if v.GetUnits().Equal(targetUnits) {
		return v, nil
	}
	b, err := m.bridgeOrErr()
	if err != nil {
		return nil, err
	}
	return b.Convert(v, targetUnits)
}

// End marks the machine as ended. Calling End twice is a state error (spec
// §4.6: "`end` transitions is_ended false→true exactly once").
func (m *Machine) End() error {
	if m.ended {
		return josherrors.State("end", "machine has already ended")
	}
	m.ended = true
	return nil
}

// IsEnded reports whether End has run.
func (m *Machine) IsEnded() bool {
	return m.ended
}

// GetResult returns the top of the stack without popping it. It requires
// IsEnded and a non-empty stack (spec §4.6).
func (m *Machine) GetResult() (*joshvalue.EngineValue, error) {
	if !m.ended {
		return nil, josherrors.State("get_result", "machine has not ended")
	}
	if len(m.stack) == 0 {
		return nil, josherrors.State("get_result", "stack is empty")
	}
	return m.stack[len(m.stack)-1], nil
}

// SaveLocal pops a value and binds it to name in the machine's LocalScope
// (spec §4.6). It does not use a conversion group.
func (m *Machine) SaveLocal(name string) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	m.local.DefineConstant(name, v)
	return nil
}

// Condition pops a boolean and, iff true, runs pos against the machine.
func (m *Machine) Condition(pos HandlerAction) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	cond, err := v.AsBool()
	if err != nil {
		return err
	}
	if cond {
		return pos(m)
	}
	return nil
}

// Branch pops a boolean and runs pos or neg accordingly.
func (m *Machine) Branch(pos, neg HandlerAction) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	cond, err := v.AsBool()
	if err != nil {
		return err
	}
	if cond {
		return pos(m)
	}
	return neg(m)
}
