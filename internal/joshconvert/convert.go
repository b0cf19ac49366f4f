// Package joshconvert implements the Conversion and Converter contracts of
// spec §3: a Noop (self-identity under a unit alias) or Direct (a callable
// transform) conversion between two units tags, indexed by (source,
// destination) pairs.
package joshconvert

import (
	"fmt"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// ConversionFunc transforms a scalar number from source units into
// destination units.
type ConversionFunc func(number float64) float64

// Conversion is either Noop (an alias: the destination is the same physical
// unit as the source, just spelled differently) or Direct (a callable that
// rescales the number).
type Conversion struct {
	Source      joshvalue.Units
	Destination joshvalue.Units
	fn          ConversionFunc // nil for Noop
}

// NewNoop builds a self-identity conversion under a unit alias.
func NewNoop(units joshvalue.Units) Conversion {
	return Conversion{Source: units, Destination: units, fn: nil}
}

// NewDirect builds a conversion with an explicit numeric transform.
func NewDirect(source, destination joshvalue.Units, fn ConversionFunc) Conversion {
	return Conversion{Source: source, Destination: destination, fn: fn}
}

// IsNoop reports whether this conversion is a self-identity alias.
func (c Conversion) IsNoop() bool {
	return c.fn == nil
}

// Apply transforms v (which must carry c.Source's units) into c.Destination.
func (c Conversion) Apply(f *joshvalue.Factory, v *joshvalue.EngineValue) (*joshvalue.EngineValue, error) {
	if v.GetUnits() != c.Source {
		return nil, fmt.Errorf("conversion %s->%s cannot be applied to a value in %s", c.Source, c.Destination, v.GetUnits())
	}
	if c.IsNoop() {
		return v.ReplaceUnits(c.Destination), nil
	}
	number, err := v.AsDouble()
	if err != nil {
		return nil, fmt.Errorf("conversion %s->%s requires a scalar: %w", c.Source, c.Destination, err)
	}
	return f.BuildScalar(c.fn(number), c.Destination), nil
}

// key identifies a (source, destination) pair in the Converter's index.
type key struct {
	source      joshvalue.Units
	destination joshvalue.Units
}

// Converter indexes conversions by (source, destination) and is read-only
// after program construction (spec §5): it is built once by the compile
// visitor from `unit` stanzas and then shared, unmutated, across every
// machine invocation.
type Converter struct {
	table map[key]Conversion
}

// NewConverter builds an empty Converter.
func NewConverter() *Converter {
	return &Converter{table: make(map[key]Conversion)}
}

// Register adds a conversion to the table. A conversion already registered
// for the same (source, destination) pair is overwritten — unit stanzas are
// expected to be compiled once, in source order, and a later redeclaration
// wins, mirroring how the compile visitor composes conversions keyed by
// source units (spec §4.5).
func (c *Converter) Register(conv Conversion) {
	c.table[key{conv.Source, conv.Destination}] = conv
}

// Lookup returns the conversion from source to destination, if registered.
func (c *Converter) Lookup(source, destination joshvalue.Units) (Conversion, bool) {
	if source == destination {
		return NewNoop(source), true
	}
	conv, ok := c.table[key{source, destination}]
	return conv, ok
}

// Convert looks up and applies the conversion from v's current units to
// destination. It fails with a UnitsError-shaped error when no Direct or
// Noop conversion connects the two (spec §7: UnitsError — "conversion
// missing in the converter when a conversion group demands it").
func (c *Converter) Convert(f *joshvalue.Factory, v *joshvalue.EngineValue, destination joshvalue.Units) (*joshvalue.EngineValue, error) {
	conv, ok := c.Lookup(v.GetUnits(), destination)
	if !ok {
		return nil, josherrors.Units(v.GetUnits().String(), destination.String())
	}
	return conv.Apply(f, v)
}
