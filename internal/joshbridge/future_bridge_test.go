package joshbridge

import (
	"testing"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshvalue"
)

func TestFutureBridgeGetBeforeSetFails(t *testing.T) {
	f := NewFutureBridge()
	if _, err := f.Get(); err == nil {
		t.Fatal("Get before Set should fail")
	}
	if f.IsBound() {
		t.Error("IsBound should be false before Set")
	}
}

func TestFutureBridgeSetThenGet(t *testing.T) {
	f := NewFutureBridge()
	factory := joshvalue.NewFactory(false)
	bridge := newMemBridge(factory, joshconvert.NewConverter(), "")

	if err := f.Set(bridge); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !f.IsBound() {
		t.Error("IsBound should be true after Set")
	}
	got, err := f.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != Bridge(bridge) {
		t.Error("Get should return the bridge bound by Set")
	}
}

func TestFutureBridgeRebindFails(t *testing.T) {
	f := NewFutureBridge()
	factory := joshvalue.NewFactory(false)
	bridge := newMemBridge(factory, joshconvert.NewConverter(), "")

	if err := f.Set(bridge); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	err := f.Set(bridge)
	if err == nil {
		t.Fatal("rebinding a FutureBridge should fail")
	}
	if !josherrors.Is(err, josherrors.KindState) {
		t.Errorf("rebind error kind = %v, want state", err)
	}
}
