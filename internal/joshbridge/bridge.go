// Package joshbridge defines the contract between the push-down machine and
// its hosting simulation environment (spec §4.3): unit conversion, entity
// prototypes, geometry, prior-step patches, external data, optional
// configuration, timestep bookkeeping, and the value factory. The machine
// holds exactly one Bridge, obtained indirectly through a FutureBridge so
// the compiled program and the bridge that depends on it can be built in
// either order.
package joshbridge

import (
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Geometry is the spatial shape a bridge's geometry factory builds and
// against which prior-step patches and spatial queries are evaluated.
// Concrete geometry kinds are a collaborator concern; the machine only
// needs GeometryKind for dispatch.
type Geometry interface {
	GeometryKind() string
}

// GeometryFactory builds a Geometry from the arguments a `make_position` or
// spatial-query action supplies.
type GeometryFactory interface {
	Build(args ...*joshvalue.EngineValue) (Geometry, error)
}

// Bridge is the opaque object (spec §4.3) the machine consults for
// everything it cannot derive from the value stack and the current scope
// alone.
type Bridge interface {
	// Convert normalizes value to targetUnits via the bridge's converter.
	Convert(value *joshvalue.EngineValue, targetUnits joshvalue.Units) (*joshvalue.EngineValue, error)

	// GetPrototype returns the entity prototype registered for
	// entityTypeName, or an error if none exists.
	GetPrototype(entityTypeName string) (*joshentity.EntityPrototype, error)

	// GeometryFactory exposes the bridge's geometry builder.
	GeometryFactory() GeometryFactory

	// GetPriorPatches returns the patches from the previous completed step
	// intersecting geometry.
	GetPriorPatches(geometry Geometry) ([]*joshentity.Entity, error)

	// GetExternal resolves an external data value for geoKey/name at step.
	GetExternal(geoKey, name string, step int64) (*joshvalue.EngineValue, error)

	// GetConfigOptional resolves an optional configuration value by name,
	// returning ok=false (not an error) when the value is absent — the
	// caller supplies the default (spec §7: "config-with-default").
	GetConfigOptional(name string) (value *joshvalue.EngineValue, ok bool)

	// GetAbsoluteTimestep returns the simulation-wide step counter.
	GetAbsoluteTimestep() int64

	// GetCurrentTimestep returns the step counter relative to the current
	// run (may differ from GetAbsoluteTimestep under replay/resume).
	GetCurrentTimestep() int64

	// EngineValueFactory returns the factory the bridge uses to build
	// values, so the machine constructs values with the same
	// favor-big-decimal setting as the rest of the simulation.
	EngineValueFactory() *joshvalue.Factory

	// Converter exposes the bridge's unit converter directly, for
	// components (like the compile visitor's conversion stanzas) that need
	// to register conversions rather than apply one.
	Converter() *joshconvert.Converter
}
