package joshscope

import (
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// EntityScope exposes an entity's attributes as a Scope, pairing it with the
// ambient unit converter that travels alongside evaluation (spec §4.2, §4.3).
// It wraps any entity-shaped value duck-typed via attributeSource, so this
// package never needs to import joshentity.
type EntityScope struct {
	entity    attributeSource
	converter *joshconvert.Converter
}

// NewEntityScope builds a Scope over entity using converter for any unit
// normalization its values require.
func NewEntityScope(entity attributeSource, converter *joshconvert.Converter) *EntityScope {
	return &EntityScope{entity: entity, converter: converter}
}

// Get resolves name directly against the wrapped entity's own attributes.
func (s *EntityScope) Get(name string) (*joshvalue.EngineValue, error) {
	return s.entity.Get(name)
}

// Has reports whether name is one of the wrapped entity's own attributes.
func (s *EntityScope) Has(name string) bool {
	return s.entity.Has(name)
}

// Attributes lists the wrapped entity's own attribute names.
func (s *EntityScope) Attributes() []string {
	return s.entity.Attributes()
}

// Converter returns the ambient unit converter supplied at construction.
func (s *EntityScope) Converter() *joshconvert.Converter {
	return s.converter
}

// Unwrap returns the wrapped entity-shaped value as its original type.
// Callers that need more than attribute access — the compile visitor
// building a Machine for create_entity's fast-forward target, for instance —
// type-assert the result back to the concrete type they expect, since this
// package only knows the duck-typed attributeSource shape.
func (s *EntityScope) Unwrap() any {
	return s.entity
}
