package joshmachine

import "github.com/joshsim/joshc/internal/josherrors"

// PushConfig pops nothing and pushes the bridge's optional config value for
// name, failing if it isn't set (spec §4.5: "config ... compile to
// push_config(name)").
func (m *Machine) PushConfig(name string) error {
	bridge, err := m.bridgeOrErr()
	if err != nil {
		return err
	}
	value, ok := bridge.GetConfigOptional(name)
	if !ok {
		return josherrors.Resolution(name, nil)
	}
	m.Push(value)
	return nil
}

// PushConfigWithDefault pushes the bridge's config value for name if set,
// otherwise runs fallback — the pre-compiled default action from spec §4.5's
// "push_config_with_default(name) (with the default pre-compiled and pushed
// first)". Spec §7: "config-with-default (missing config is recovered by the
// provided default)".
func (m *Machine) PushConfigWithDefault(name string, fallback HandlerAction) error {
	bridge, err := m.bridgeOrErr()
	if err != nil {
		return err
	}
	if value, ok := bridge.GetConfigOptional(name); ok {
		m.Push(value)
		return nil
	}
	return fallback(m)
}

// PushExternal pushes the bridge's external data value for name at either
// the current timestep or a literal one popped from the stack, keyed by the
// owning entity's geo key (spec §4.3, §4.5).
func (m *Machine) PushExternal(name string, useCurrentStep bool) error {
	bridge, err := m.bridgeOrErr()
	if err != nil {
		return err
	}
	var step int64
	if useCurrentStep {
		step = bridge.GetCurrentTimestep()
	} else {
		raw, err := m.pop()
		if err != nil {
			return err
		}
		step, err = raw.AsInt()
		if err != nil {
			return err
		}
	}
	if m.currentEntity == nil || m.currentEntity.GeoKey == nil {
		return josherrors.State("push_external", "no geo key available for external lookup")
	}
	value, err := bridge.GetExternal(*m.currentEntity.GeoKey, name, step)
	if err != nil {
		return err
	}
	m.Push(value)
	return nil
}
