// Package josh is the public, embeddable facade over the Josh compiler and
// machine: a host builds an Engine, binds its own EngineBridge
// implementation, compiles a program's syntax tree, and drives individual
// entities' event handlers against it. The grammar/parser front end and the
// EngineBridge implementation itself remain the host's responsibility
// (spec's Non-goals); this package only wires together the pieces this
// module owns.
package josh

import (
	"fmt"

	"github.com/joshsim/joshc/internal/joshast"
	"github.com/joshsim/joshc/internal/joshbridge"
	"github.com/joshsim/joshc/internal/joshcompile"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshmachine"
	"github.com/joshsim/joshc/internal/joshscope"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Engine bundles the shared, compile-time-bound state a host needs: the
// value factory, the RNG, a set-once bridge cell, and the compile Context
// built over both. A program may be compiled before Bind is ever called
// (spec §4.3, §9); a compiled program's callables only touch the bridge
// when they actually run.
type Engine struct {
	Factory *joshvalue.Factory
	Bridge  *joshbridge.FutureBridge
	RNG     *joshmachine.Random
	Context *joshcompile.Context
}

// Option configures New.
type Option func(*config)

type config struct {
	favorBigDecimal bool
	seed            int64
}

// WithFavorBigDecimal selects exact-decimal rendering for scalar coercions
// (spec §4.1); the default favors IEEE-754 double rendering.
func WithFavorBigDecimal(favor bool) Option {
	return func(c *config) { c.favorBigDecimal = favor }
}

// WithSeed fixes the Engine's RNG seed, for reproducible rand_uniform/
// rand_norm/sample draws. The default seed is 1.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// New builds an Engine. Its bridge starts unbound; call Bind before
// running any compiled callable that applies a machine operator, since
// operators read the value factory or converter from the bound bridge.
// Bodies that only push literals, resolve names or save locals run
// without it.
func New(opts ...Option) *Engine {
	cfg := config{seed: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := joshvalue.NewFactory(cfg.favorBigDecimal)
	bridge := joshbridge.NewFutureBridge()
	rng := joshmachine.NewRandom(cfg.seed)
	return &Engine{
		Factory: factory,
		Bridge:  bridge,
		RNG:     rng,
		Context: joshcompile.NewContext(factory, bridge, rng),
	}
}

// Bind attaches the host's EngineBridge implementation. It may be called at
// most once; a second call returns an error rather than silently replacing
// the first binding (spec §9's set-once bridge contract).
func (e *Engine) Bind(bridge joshbridge.Bridge) error {
	return e.Bridge.Set(bridge)
}

// Compile compiles prog's entity, unit and simulation stanzas into a
// Program (spec §6).
func (e *Engine) Compile(prog joshast.Program) (*joshcompile.Program, error) {
	return e.Context.CompileProgram(prog)
}

// NewEntity builds an entity of the given prototype, tagged with name. The
// returned entity carries no attributes until its handlers run.
func (e *Engine) NewEntity(proto *joshentity.EntityPrototype, name string) *joshentity.Entity {
	return proto.Build(name)
}

// RunHandler selects and runs the handler registered under key on entity,
// returning the value its body produced. It reports ok=false (not an
// error) when no handler in the group matches — the caller's convention
// for "this entity has no applicable handler for this event", matching
// EventHandlerGroup.Select's own contract.
func (e *Engine) RunHandler(entity *joshentity.Entity, key joshentity.EventKey) (value *joshvalue.EngineValue, ok bool, err error) {
	group, has := entity.HandlerGroup(key)
	if !has {
		return nil, false, nil
	}
	scope := joshscope.NewEntityScope(entity, e.Context.Converter)
	handler, matched, err := group.Select(scope)
	if err != nil {
		return nil, false, fmt.Errorf("selecting handler for %+v: %w", key, err)
	}
	if !matched {
		return nil, false, nil
	}
	value, err = handler.Callable(scope)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
