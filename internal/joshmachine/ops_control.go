package joshmachine

import (
	"math/rand"

	"github.com/joshsim/joshc/internal/joshmap"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Cast pops subject (no conversion group) and pushes it under newUnits:
// forced casts simply relabel the units; unforced casts convert through the
// bridge (spec §4.6).
func (m *Machine) Cast(newUnits joshvalue.Units, force bool) error {
	subject, err := m.pop()
	if err != nil {
		return err
	}
	if force {
		m.Push(subject.ReplaceUnits(newUnits))
		return nil
	}
	bridge, err := m.bridgeOrErr()
	if err != nil {
		return err
	}
	converted, err := bridge.Convert(subject, newUnits)
	if err != nil {
		return err
	}
	m.Push(converted)
	return nil
}

// Bound pops upper (if hasUpper), lower (if hasLower), then target — all
// inside one conversion group — and pushes target clamped to [lower,
// upper] (spec §4.6).
func (m *Machine) Bound(hasLower, hasUpper bool) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	if err := m.openGroup(); err != nil {
		return err
	}
	var upper, lower *joshvalue.EngineValue
	if hasUpper {
		upper, err = m.popConv()
		if err != nil {
			return err
		}
	}
	if hasLower {
		lower, err = m.popConv()
		if err != nil {
			return err
		}
	}
	target, err := m.popConv()
	if err != nil {
		return err
	}
	if err := m.closeGroup(); err != nil {
		return err
	}

	result := target
	if hasLower {
		if lt, err := f.Lt(result, lower); err == nil {
			if matched, _ := lt.AsBool(); matched {
				result = lower
			}
		}
	}
	if hasUpper {
		if gt, err := f.Gt(result, upper); err == nil {
			if matched, _ := gt.AsBool(); matched {
				result = upper
			}
		}
	}
	m.Push(result)
	return nil
}

// ApplyMap pops an optional method-parameter boolean (when hasMethodParam),
// then to_high/to_low inside one conversion group, then
// from_high/from_low/operand inside a second, and pushes the mapped scalar
// carrying the (converted) to_low's units (spec §4.6, §8 scenario 1).
func (m *Machine) ApplyMap(strategyName string, hasMethodParam bool) error {
	f, err := m.factory()
	if err != nil {
		return err
	}

	methodParam := false
	if hasMethodParam {
		raw, err := m.pop()
		if err != nil {
			return err
		}
		methodParam, err = raw.AsBool()
		if err != nil {
			return err
		}
	}

	if err := m.openGroup(); err != nil {
		return err
	}
	toHigh, err := m.popConv()
	if err != nil {
		return err
	}
	toLow, err := m.popConv()
	if err != nil {
		return err
	}
	if err := m.closeGroup(); err != nil {
		return err
	}

	if err := m.openGroup(); err != nil {
		return err
	}
	fromHigh, err := m.popConv()
	if err != nil {
		return err
	}
	fromLow, err := m.popConv()
	if err != nil {
		return err
	}
	operand, err := m.popConv()
	if err != nil {
		return err
	}
	if err := m.closeGroup(); err != nil {
		return err
	}

	strategy, err := joshmap.Lookup(strategyName, methodParam)
	if err != nil {
		return err
	}
	operandNum, err := operand.AsDouble()
	if err != nil {
		return err
	}
	fromLowNum, err := fromLow.AsDouble()
	if err != nil {
		return err
	}
	fromHighNum, err := fromHigh.AsDouble()
	if err != nil {
		return err
	}
	toLowNum, err := toLow.AsDouble()
	if err != nil {
		return err
	}
	toHighNum, err := toHigh.AsDouble()
	if err != nil {
		return err
	}

	result, err := strategy.Map(operandNum, fromLowNum, fromHighNum, toLowNum, toHighNum)
	if err != nil {
		return err
	}
	m.Push(f.BuildScalar(result, toLow.GetUnits()))
	return nil
}

// RandUniform pops high then low inside a conversion group and pushes a
// scalar drawn uniformly from [low, high), carrying low's units.
func (m *Machine) RandUniform() error {
	return m.randDraw(func(low, high float64) float64 {
		var out float64
		m.rng.Do(func(r *rand.Rand) { out = low + r.Float64()*(high-low) })
		return out
	})
}

// RandNorm pops std then mean inside a conversion group and pushes a scalar
// drawn from a normal distribution, carrying mean's units.
func (m *Machine) RandNorm() error {
	return m.randDraw(func(mean, std float64) float64 {
		var out float64
		m.rng.Do(func(r *rand.Rand) { out = mean + r.NormFloat64()*std })
		return out
	})
}

func (m *Machine) randDraw(draw func(a, b float64) float64) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	if err := m.openGroup(); err != nil {
		return err
	}
	second, err := m.popConv()
	if err != nil {
		return err
	}
	first, err := m.popConv()
	if err != nil {
		return err
	}
	if err := m.closeGroup(); err != nil {
		return err
	}
	firstNum, err := first.AsDouble()
	if err != nil {
		return err
	}
	secondNum, err := second.AsDouble()
	if err != nil {
		return err
	}
	m.Push(f.BuildScalar(draw(firstNum, secondNum), first.GetUnits()))
	return nil
}
