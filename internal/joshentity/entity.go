package joshentity

import (
	"fmt"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Reserved entity type names (spec §6).
const (
	TypeAgent       = "agent"
	TypeDisturbance = "disturbance"
	TypeExternal    = "external"
	TypePatch       = "patch"
	TypeSimulation  = "simulation"
)

// Geometry is an opaque handle to a spatial shape, produced by the bridge's
// geometry factory (spec §4.3). The interpreter never inspects its
// contents — only the bridge and a spatial-query implementation do.
type Geometry interface {
	// GeometryKind lets a bridge-side implementation type-switch without
	// exposing its internals to this package.
	GeometryKind() string
}

// Entity is a mutable object carrying a type, a name, an optional
// geographic key and geometry, attribute values, an open/closed substep,
// and event handler groups (spec §3).
type Entity struct {
	Type     string
	Name     string
	GeoKey   *string
	Geometry Geometry
	Parent   *Entity

	attributes map[string]*joshvalue.EngineValue
	groups     map[EventKey]*EventHandlerGroup

	currentSubstep Substep
	substepOpen    bool
}

// NewEntity constructs an entity of the given type and name, sharing the
// prototype's read-only handler group table (groups are never mutated per
// entity — spec §5: "prototype stores are read-only after program
// construction").
func NewEntity(entityType, name string, groups map[EventKey]*EventHandlerGroup) *Entity {
	return &Entity{
		Type:       entityType,
		Name:       name,
		attributes: make(map[string]*joshvalue.EngineValue),
		groups:     groups,
	}
}

// EntityTypeName implements joshvalue.EntityHandle.
func (e *Entity) EntityTypeName() string { return e.Type }

// EntityName implements joshvalue.EntityHandle.
func (e *Entity) EntityName() string { return e.Name }

// Get resolves an attribute name directly against this entity, the lookup
// an EntityScope delegates to (spec §4.2: "EntityScope exposes an entity's
// attributes").
func (e *Entity) Get(name string) (*joshvalue.EngineValue, error) {
	v, ok := e.attributes[name]
	if !ok {
		return nil, josherrors.Resolution(name, e.Attributes())
	}
	return v, nil
}

// Has reports whether name is a currently-set attribute.
func (e *Entity) Has(name string) bool {
	_, ok := e.attributes[name]
	return ok
}

// Attributes lists every attribute name currently set on this entity.
func (e *Entity) Attributes() []string {
	names := make([]string, 0, len(e.attributes))
	for name := range e.attributes {
		names = append(names, name)
	}
	return names
}

// SetAttribute assigns an attribute's value. Handlers write attributes this
// way as they evaluate.
func (e *Entity) SetAttribute(name string, value *joshvalue.EngineValue) {
	e.attributes[name] = value
}

// CurrentSubstep reports the most recently started substep, whether it is
// still open or already ended, or "" if no substep has been started yet.
// SubstepOpen tells the two apart.
func (e *Entity) CurrentSubstep() Substep {
	return e.currentSubstep
}

// SubstepOpen reports whether a substep is currently open.
func (e *Entity) SubstepOpen() bool {
	return e.substepOpen
}

// StartSubstep opens s. Only one substep may be open at a time (spec §3);
// starting a new one before the previous is closed is a StateError.
func (e *Entity) StartSubstep(s Substep) error {
	if err := validateSubstep(s); err != nil {
		return err
	}
	if e.substepOpen {
		return josherrors.State("start_substep", "entity %q already has substep %q open", e.Name, e.currentSubstep)
	}
	e.currentSubstep = s
	e.substepOpen = true
	return nil
}

// EndSubstep closes the currently open substep. Ending when none is open is
// a StateError.
func (e *Entity) EndSubstep() error {
	if !e.substepOpen {
		return josherrors.State("end_substep", "entity %q has no open substep to end", e.Name)
	}
	e.substepOpen = false
	return nil
}

// HandlerGroup returns the handler group registered for key, if any.
func (e *Entity) HandlerGroup(key EventKey) (*EventHandlerGroup, bool) {
	g, ok := e.groups[key]
	return g, ok
}

// Groups exposes the entity's full handler-group table, keyed by
// EventKey — used by the fast-forwarder to enumerate every attribute that
// needs to be touched during a substep.
func (e *Entity) Groups() map[EventKey]*EventHandlerGroup {
	return e.groups
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s(%s)", e.Type, e.Name)
}
