package joshcompile

import (
	"github.com/joshsim/joshc/internal/joshbridge"
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshmachine"
	"github.com/joshsim/joshc/internal/joshscope"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Context carries everything the compile visitor needs across one program
// compilation: the shared factory/bridge-getter/RNG every compiled callable
// closes over, the converter table under construction, and the three
// pre-computed constants spec §4.5 names (single_count, all_string,
// true_value).
type Context struct {
	Factory *joshvalue.Factory
	Bridge  *joshbridge.FutureBridge
	RNG     *joshmachine.Random

	Converter *joshconvert.Converter

	singleCount *joshvalue.EngineValue
	allString   *joshvalue.EngineValue
	trueValue   *joshvalue.EngineValue
}

// NewContext builds a compile Context. bridge is typically unbound at
// compile time (spec §4.3, §9: the program is compiled before its bridge
// exists) — every CompiledCallable this Context produces reads it lazily,
// on first use, at invocation time.
func NewContext(factory *joshvalue.Factory, bridge *joshbridge.FutureBridge, rng *joshmachine.Random) *Context {
	return &Context{
		Factory:     factory,
		Bridge:      bridge,
		RNG:         rng,
		Converter:   joshconvert.NewConverter(),
		singleCount: factory.BuildScalar(1, joshvalue.Count),
		allString:   factory.BuildString("all"),
		trueValue:   factory.BuildBoolean(true),
	}
}

// buildMachine constructs a fresh Machine for one handler/selector
// invocation, deriving currentEntity from scope when scope wraps a concrete
// *joshentity.Entity (spec §4.6's create_entity needs this; a bare
// simulation-level scope that isn't an EntityScope yields a nil
// currentEntity, matching joshmachine.New's documented contract).
func (c *Context) buildMachine(scope joshentity.Scope) *joshmachine.Machine {
	return joshmachine.New(scope, c.Bridge, c.RNG, entityFromScope(scope))
}

func entityFromScope(scope joshentity.Scope) *joshentity.Entity {
	es, ok := scope.(*joshscope.EntityScope)
	if !ok {
		return nil
	}
	ent, ok := es.Unwrap().(*joshentity.Entity)
	if !ok {
		return nil
	}
	return ent
}

// runToCallable turns a composed action sequence into a CompiledCallable:
// it builds a fresh machine over the invocation scope, runs the actions in
// order, stopping early once the machine ends, then returns the result.
// If the actions leave the machine open, this function ends it itself, so
// a bare-expression body yields the value it pushed. A body that finishes
// without ending the machine is not reported as an error: its top stack
// value is returned, and only an empty stack fails (in GetResult).
func (c *Context) runToCallable(action joshmachine.HandlerAction) joshentity.CompiledCallable {
	return func(scope joshentity.Scope) (*joshvalue.EngineValue, error) {
		m := c.buildMachine(scope)
		if err := action(m); err != nil {
			return nil, err
		}
		if !m.IsEnded() {
			if err := m.End(); err != nil {
				return nil, err
			}
		}
		return m.GetResult()
	}
}

// runToSelector turns a condition action into a CompiledSelector: it builds
// a fresh machine, runs the action, and coerces the resulting value to a
// bool.
func (c *Context) runToSelector(action joshmachine.HandlerAction) joshentity.CompiledSelector {
	return func(scope joshentity.Scope) (bool, error) {
		m := c.buildMachine(scope)
		if err := action(m); err != nil {
			return false, err
		}
		if err := m.End(); err != nil {
			return false, err
		}
		result, err := m.GetResult()
		if err != nil {
			return false, err
		}
		return result.AsBool()
	}
}
