package joshscope

import (
	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// LocalScope wraps a parent Scope and owns local bindings that shadow it for
// the remainder of a handler invocation (spec §3, §4.2). Names bound via
// DefineConstant live only as long as this LocalScope does — there is no
// mutation of the parent.
type LocalScope struct {
	parent Scope
	locals map[string]*joshvalue.EngineValue
}

// NewLocalScope builds a LocalScope enclosed by parent.
func NewLocalScope(parent Scope) *LocalScope {
	return &LocalScope{parent: parent, locals: make(map[string]*joshvalue.EngineValue)}
}

// DefineConstant binds name to value in this scope, shadowing any same-named
// binding in the parent for the remainder of the handler invocation (spec
// §4.2). Redefining an already-bound local name simply overwrites it —
// `save_local` (spec §4.6) is expected to run at most once per name within a
// well-formed compiled body.
func (s *LocalScope) DefineConstant(name string, value *joshvalue.EngineValue) {
	s.locals[name] = value
}

// Get resolves name against this scope's own bindings first, falling back to
// the parent.
func (s *LocalScope) Get(name string) (*joshvalue.EngineValue, error) {
	if v, ok := s.locals[name]; ok {
		return v, nil
	}
	if s.parent != nil && s.parent.Has(name) {
		return s.parent.Get(name)
	}
	return nil, josherrors.Resolution(name, s.Attributes())
}

// Has reports whether name is bound in this scope or any ancestor.
func (s *LocalScope) Has(name string) bool {
	if _, ok := s.locals[name]; ok {
		return true
	}
	return s.parent != nil && s.parent.Has(name)
}

// Attributes lists every name visible from this scope: its own locals plus
// everything the parent chain exposes.
func (s *LocalScope) Attributes() []string {
	seen := make(map[string]bool)
	var names []string
	for name := range s.locals {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if s.parent != nil {
		for _, name := range s.parent.Attributes() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Converter returns the ambient unit converter, inherited from the parent
// scope (LocalScope never carries its own).
func (s *LocalScope) Converter() *joshconvert.Converter {
	if s.parent == nil {
		return nil
	}
	return s.parent.Converter()
}
