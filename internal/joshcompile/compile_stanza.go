package joshcompile

import (
	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshast"
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshmachine"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// compileHandlerMember compiles one member of an event-handler group's
// source list: If/Elif produce a selector-guarded EventHandler, Else/Plain
// produce an unconditional one (spec §3, §4.5).
func (c *Context) compileHandlerMember(state string, member joshast.HandlerMember) (joshentity.EventKey, joshentity.EventHandler, error) {
	key := joshentity.ParseEventName(state, member.Name)

	bodyAction, err := c.CompileStmt(member.Body)
	if err != nil {
		return key, joshentity.EventHandler{}, err
	}
	callable := c.runToCallable(bodyAction)

	switch member.Kind {
	case joshast.MemberIf, joshast.MemberElif:
		if member.Selector == nil {
			return key, joshentity.EventHandler{}, josherrors.Compile(pos(member.Pos()), "handler_member",
				"%s member %q must carry a selector", member.Kind, member.Name)
		}
		selectorAction, err := c.CompileExpr(member.Selector)
		if err != nil {
			return key, joshentity.EventHandler{}, err
		}
		return key, joshentity.EventHandler{
			Selector: c.runToSelector(selectorAction),
			Callable: callable,
		}, nil

	case joshast.MemberElse, joshast.MemberPlain:
		if member.Selector != nil {
			return key, joshentity.EventHandler{}, josherrors.Compile(pos(member.Pos()), "handler_member",
				"non-conditional member %q must not carry a selector", member.Name)
		}
		return key, joshentity.EventHandler{Callable: callable}, nil

	default:
		return key, joshentity.EventHandler{}, josherrors.Compile(pos(member.Pos()), "handler_member",
			"unknown handler member kind %q", member.Kind)
	}
}

// compileHandlerGroups folds a flat list of handler members (all belonging
// to one state, "" for the stateless top level) into the EventKey-keyed
// group table an EntityPrototype stores, preserving declaration order
// within each group (spec §3, §4.5).
func (c *Context) compileHandlerGroups(state string, members []joshast.HandlerMember) (map[joshentity.EventKey]*joshentity.EventHandlerGroup, error) {
	groups := make(map[joshentity.EventKey]*joshentity.EventHandlerGroup)
	for _, member := range members {
		key, handler, err := c.compileHandlerMember(state, member)
		if err != nil {
			return nil, err
		}
		group, ok := groups[key]
		if !ok {
			group = joshentity.NewEventHandlerGroup(key)
			groups[key] = group
		}
		group.Add(handler)
	}
	return groups, nil
}

// CompileEntityStanza composes an entity stanza's top-level and per-state
// handler members into a single EntityPrototype, registering it on ctx's
// prototype table (spec §3, §4.5).
func (c *Context) CompileEntityStanza(n joshast.EntityStanza) (*joshentity.EntityPrototype, error) {
	groups, err := c.compileHandlerGroups("", n.Members)
	if err != nil {
		return nil, err
	}
	for _, state := range n.States {
		stateGroups, err := c.compileHandlerGroups(state.Name, state.Members)
		if err != nil {
			return nil, err
		}
		for key, group := range stateGroups {
			groups[key] = group
		}
	}
	proto := joshentity.NewEntityPrototype(n.TypeName, groups)
	if n.EmbedsParent {
		proto = proto.WithEmbeddedParent()
	}
	return proto, nil
}

// CompileSimulationStanza compiles a simulation's top-level handler members
// into an EntityPrototype of type joshentity.TypeSimulation — a simulation
// is built exactly once per run, by the host, never via create_entity (spec
// §6: "agent, disturbance, external, patch, simulation").
func (c *Context) CompileSimulationStanza(n joshast.SimulationStanza) (*joshentity.EntityPrototype, error) {
	groups, err := c.compileHandlerGroups("", n.Members)
	if err != nil {
		return nil, err
	}
	return joshentity.NewEntityPrototype(joshentity.TypeSimulation, groups), nil
}

// numberScope is the minimal Scope a conversion's body compiles and runs
// against: it exposes the implicit "current" identifier bound to the
// number under conversion, in the conversion's source units (spec §3's
// Conversion model).
type numberScope struct {
	factory   *joshvalue.Factory
	converter *joshconvert.Converter
	units     joshvalue.Units
	value     float64
}

func (s numberScope) Get(name string) (*joshvalue.EngineValue, error) {
	if name == "current" {
		return s.factory.BuildScalar(s.value, s.units), nil
	}
	return nil, josherrors.Resolution(name, s.Attributes())
}
func (s numberScope) Has(name string) bool           { return name == "current" }
func (s numberScope) Attributes() []string           { return []string{"current"} }
func (s numberScope) Converter() *joshconvert.Converter { return s.converter }

// CompileUnitStanza compiles a unit stanza's conversions and registers each
// on ctx.Converter, keyed by source units (spec §3, §4.5). A conversion
// whose Body is nil is a Noop alias; otherwise its Body computes the
// destination number from the implicit "current" identifier.
func (c *Context) CompileUnitStanza(n joshast.UnitStanza) ([]joshconvert.Conversion, error) {
	conversions := make([]joshconvert.Conversion, 0, len(n.Conversions))
	for _, decl := range n.Conversions {
		if decl.Body == nil {
			conv := joshconvert.NewNoop(joshvalue.Units(decl.DestUnits))
			c.Converter.Register(conv)
			conversions = append(conversions, conv)
			continue
		}
		bodyAction, err := c.CompileStmt(decl.Body)
		if err != nil {
			return nil, err
		}
		sourceUnits := joshvalue.Units(decl.SourceUnits)
		destUnits := joshvalue.Units(decl.DestUnits)
		factory := c.Factory
		converter := c.Converter
		// ConversionFunc is a bare float64 → float64 function (spec §3); a
		// failure here means the body's compiled action violated an
		// invariant this package is otherwise responsible for preventing,
		// so it panics rather than silently returning a wrong number. A
		// body that leaves the machine open is ended here, as in
		// runToCallable.
		fn := func(number float64) float64 {
			scope := numberScope{factory: factory, converter: converter, units: sourceUnits, value: number}
			m := joshmachine.New(scope, c.Bridge, c.RNG, nil)
			if err := bodyAction(m); err != nil {
				panic(err)
			}
			if !m.IsEnded() {
				if err := m.End(); err != nil {
					panic(err)
				}
			}
			result, err := m.GetResult()
			if err != nil {
				panic(err)
			}
			out, err := result.AsDouble()
			if err != nil {
				panic(err)
			}
			return out
		}
		conv := joshconvert.NewDirect(sourceUnits, destUnits, fn)
		c.Converter.Register(conv)
		conversions = append(conversions, conv)
	}
	return conversions, nil
}

// CompileProgram compiles every entity, unit and simulation stanza in prog
// into a Program (spec §6: "get_converter(), get_simulations(),
// get_prototypes()").
func (c *Context) CompileProgram(prog joshast.Program) (*Program, error) {
	prototypes := make(map[string]*joshentity.EntityPrototype, len(prog.Entities))
	for _, entity := range prog.Entities {
		proto, err := c.CompileEntityStanza(entity)
		if err != nil {
			return nil, err
		}
		prototypes[entity.TypeName] = proto
	}
	for _, unit := range prog.Units {
		if _, err := c.CompileUnitStanza(unit); err != nil {
			return nil, err
		}
	}
	simulations := make(map[string]*joshentity.EntityPrototype, len(prog.Simulations))
	for _, sim := range prog.Simulations {
		proto, err := c.CompileSimulationStanza(sim)
		if err != nil {
			return nil, err
		}
		simulations[sim.Name] = proto
	}
	return &Program{
		Converter:   c.Converter,
		Simulations: simulations,
		Prototypes:  prototypes,
	}, nil
}
