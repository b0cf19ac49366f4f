// Package joshscope implements the scope chain and dotted-path value
// resolver of spec §4.2: LocalScope (owns shadowing local bindings),
// EntityScope (exposes an entity's attributes), and ValueResolver (memoized
// longest-prefix dotted-path lookup).
package joshscope

import (
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Scope mirrors joshentity.Scope. It is redeclared here (rather than
// imported) so this package has no dependency on joshentity — an
// EntityScope only needs duck-typed Get/Has/Attributes access to whatever
// entity-shaped value it wraps, not the concrete Entity type.
type Scope interface {
	Get(name string) (*joshvalue.EngineValue, error)
	Has(name string) bool
	Attributes() []string
	Converter() *joshconvert.Converter
}

// attributeSource is the duck-typed shape joshentity.Entity satisfies,
// letting EntityScope wrap an entity without importing joshentity.
type attributeSource interface {
	Get(name string) (*joshvalue.EngineValue, error)
	Has(name string) bool
	Attributes() []string
}
