package joshbridge

import "github.com/joshsim/joshc/internal/josherrors"

// FutureBridge is the set-once indirection spec §4.3/§9 describes for
// breaking the cycle between a compiled program and the bridge that depends
// on it: the program is compiled against a FutureBridge before any concrete
// Bridge exists, and the concrete Bridge is bound into it once built.
// Rebinding after the first Set fails with a state error.
type FutureBridge struct {
	bridge Bridge
	set    bool
}

// NewFutureBridge returns an unbound FutureBridge.
func NewFutureBridge() *FutureBridge {
	return &FutureBridge{}
}

// Set binds bridge as the FutureBridge's concrete Bridge. Calling Set a
// second time is a state error (spec §7: "bridge/program set twice").
func (f *FutureBridge) Set(bridge Bridge) error {
	if f.set {
		return josherrors.State("set_bridge", "bridge already bound, cannot rebind")
	}
	f.bridge = bridge
	f.set = true
	return nil
}

// Get returns the bound Bridge, or a state error if Set has not yet run
// (spec §7: "machine... fetched before end" / "bridge... not set when
// fetched").
func (f *FutureBridge) Get() (Bridge, error) {
	if !f.set {
		return nil, josherrors.State("get_bridge", "bridge requested before it was bound")
	}
	return f.bridge, nil
}

// IsBound reports whether Set has already run.
func (f *FutureBridge) IsBound() bool {
	return f.set
}
