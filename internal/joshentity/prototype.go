package joshentity

// EntityPrototype is a builder that produces entities of one type,
// optionally decorated by an embedded parent (the creator becomes the new
// entity's parent) and a shadowing scope (a snapshot of the creator's local
// variables, visible to the new entity's `init` handlers) — spec §3.
type EntityPrototype struct {
	TypeName string
	groups   map[EventKey]*EventHandlerGroup

	embedParent bool
	shadowScope Scope
}

// NewEntityPrototype builds a prototype for typeName backed by groups (the
// compiled, read-only handler-group table built by the compile visitor from
// an entity stanza).
func NewEntityPrototype(typeName string, groups map[EventKey]*EventHandlerGroup) *EntityPrototype {
	return &EntityPrototype{TypeName: typeName, groups: groups}
}

// WithEmbeddedParent returns a decorated copy that embeds the creator as the
// new entity's parent.
func (p *EntityPrototype) WithEmbeddedParent() *EntityPrototype {
	cp := *p
	cp.embedParent = true
	return &cp
}

// WithShadowScope returns a decorated copy that snapshots shadow as the
// scope new entities' `init` handlers see their creator's locals through.
func (p *EntityPrototype) WithShadowScope(shadow Scope) *EntityPrototype {
	cp := *p
	cp.shadowScope = shadow
	return &cp
}

// ShadowScope returns the decorator's snapshotted scope, or nil.
func (p *EntityPrototype) ShadowScope() Scope {
	return p.shadowScope
}

// EmbedsParent reports whether this prototype embeds the creator as parent.
func (p *EntityPrototype) EmbedsParent() bool {
	return p.embedParent
}

// Build constructs a new, bare entity (no substep open, no attributes set).
// The caller (the push-down machine's create_entity handling, spec §4.6) is
// responsible for setting parent from the creator when EmbedsParent is true,
// and for fast-forwarding the result to the caller's current substep (spec
// §4.7) before handing it back.
func (p *EntityPrototype) Build(name string) *Entity {
	return NewEntity(p.TypeName, name, p.groups)
}
