package joshentity

import "testing"

func TestPrototypeBuildIsBare(t *testing.T) {
	group := NewEventHandlerGroup(EventKey{Attribute: "age", Event: "init"})
	groups := map[EventKey]*EventHandlerGroup{group.Key: group}
	proto := NewEntityPrototype(TypeAgent, groups)

	e := proto.Build("deer1")
	if e.Type != TypeAgent || e.Name != "deer1" {
		t.Fatalf("Build() = %+v, want type=agent name=deer1", e)
	}
	if e.SubstepOpen() {
		t.Error("a freshly built entity should have no open substep")
	}
	if _, ok := e.HandlerGroup(group.Key); !ok {
		t.Error("Build should share the prototype's handler groups")
	}
}

func TestPrototypeDecoratorsAreImmutable(t *testing.T) {
	base := NewEntityPrototype(TypeAgent, nil)
	decorated := base.WithEmbeddedParent()

	if base.EmbedsParent() {
		t.Error("WithEmbeddedParent must not mutate the receiver")
	}
	if !decorated.EmbedsParent() {
		t.Error("the decorated copy should embed the parent")
	}
}
