package joshentity

import (
	"testing"

	"github.com/joshsim/joshc/internal/joshvalue"
)

func TestEntityAttributeAccess(t *testing.T) {
	e := NewEntity(TypeAgent, "deer1", nil)
	f := joshvalue.NewFactory(false)

	if e.Has("age") {
		t.Fatal("new entity should have no attributes")
	}
	if _, err := e.Get("age"); err == nil {
		t.Fatal("Get on an unset attribute should fail")
	}

	e.SetAttribute("age", f.BuildScalar(3, joshvalue.Units("years")))
	if !e.Has("age") {
		t.Fatal("Has should report true after SetAttribute")
	}
	v, err := e.Get("age")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got, _ := v.AsDouble()
	if got != 3 {
		t.Errorf("Get(\"age\") = %v, want 3", got)
	}
}

func TestSubstepSingleOpenInvariant(t *testing.T) {
	e := NewEntity(TypeAgent, "deer1", nil)

	if err := e.StartSubstep(SubstepInit); err != nil {
		t.Fatalf("StartSubstep: %v", err)
	}
	if err := e.StartSubstep(SubstepStart); err == nil {
		t.Fatal("starting a second substep while one is open should fail")
	}
	if err := e.EndSubstep(); err != nil {
		t.Fatalf("EndSubstep: %v", err)
	}
	if err := e.EndSubstep(); err == nil {
		t.Fatal("ending an already-closed substep should fail")
	}
	if err := e.StartSubstep(SubstepStart); err != nil {
		t.Fatalf("StartSubstep after close: %v", err)
	}
	if e.CurrentSubstep() != SubstepStart {
		t.Errorf("CurrentSubstep() = %v, want start", e.CurrentSubstep())
	}
}

func TestEntityImplementsValueEntityHandle(t *testing.T) {
	e := NewEntity(TypePatch, "p1", nil)
	var handle joshvalue.EntityHandle = e
	if handle.EntityTypeName() != TypePatch {
		t.Errorf("EntityTypeName() = %v, want patch", handle.EntityTypeName())
	}
	if handle.EntityName() != "p1" {
		t.Errorf("EntityName() = %v, want p1", handle.EntityName())
	}
}
