package joshmachine

import "github.com/joshsim/joshc/internal/joshvalue"

// Arithmetic, comparison and boolean operators from the §4.6 catalog. Pop
// order is right operand then left, matching the catalog table; conversion
// groups are used exactly where the table marks "yes".

// binaryConv pops right then left inside a conversion group, applies fn, and
// pushes the result. Used by add/subtract/concat/eq/neq/gt/gte/lt/lte.
func (m *Machine) binaryConv(apply func(f *joshvalue.Factory, left, right *joshvalue.EngineValue) (*joshvalue.EngineValue, error)) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	if err := m.openGroup(); err != nil {
		return err
	}
	right, err := m.popConv()
	if err != nil {
		return err
	}
	left, err := m.popConv()
	if err != nil {
		return err
	}
	if err := m.closeGroup(); err != nil {
		return err
	}
	result, err := apply(f, left, right)
	if err != nil {
		return err
	}
	m.Push(result)
	return nil
}

// binaryPlain pops right then left with no conversion group, applies fn, and
// pushes the result. Used by multiply/divide/and/or/xor.
func (m *Machine) binaryPlain(apply func(f *joshvalue.Factory, left, right *joshvalue.EngineValue) (*joshvalue.EngineValue, error)) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	right, err := m.pop()
	if err != nil {
		return err
	}
	left, err := m.pop()
	if err != nil {
		return err
	}
	result, err := apply(f, left, right)
	if err != nil {
		return err
	}
	m.Push(result)
	return nil
}

// unary pops a single value with no conversion group, applies fn, and pushes
// the result. Used by abs/ceil/floor/round/log10/ln.
func (m *Machine) unary(apply func(f *joshvalue.Factory, v *joshvalue.EngineValue) (*joshvalue.EngineValue, error)) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	result, err := apply(f, v)
	if err != nil {
		return err
	}
	m.Push(result)
	return nil
}

func (m *Machine) Add() error      { return m.binaryConv((*joshvalue.Factory).Add) }
func (m *Machine) Subtract() error { return m.binaryConv((*joshvalue.Factory).Subtract) }

func (m *Machine) Multiply() error { return m.binaryPlain((*joshvalue.Factory).Multiply) }
func (m *Machine) Divide() error   { return m.binaryPlain((*joshvalue.Factory).Divide) }

// Pow pops the exponent then the base, with no conversion group (the
// exponent must simply be dimensionless).
func (m *Machine) Pow() error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	exponent, err := m.pop()
	if err != nil {
		return err
	}
	base, err := m.pop()
	if err != nil {
		return err
	}
	result, err := f.RaiseToPower(base, exponent)
	if err != nil {
		return err
	}
	m.Push(result)
	return nil
}

func (m *Machine) And() error { return m.binaryPlain((*joshvalue.Factory).And) }
func (m *Machine) Or() error  { return m.binaryPlain((*joshvalue.Factory).Or) }
func (m *Machine) Xor() error { return m.binaryPlain((*joshvalue.Factory).Xor) }

func (m *Machine) Eq() error  { return m.binaryConv((*joshvalue.Factory).Eq) }
func (m *Machine) Neq() error { return m.binaryConv((*joshvalue.Factory).Neq) }
func (m *Machine) Gt() error  { return m.binaryConv((*joshvalue.Factory).Gt) }
func (m *Machine) Gte() error { return m.binaryConv((*joshvalue.Factory).Gte) }
func (m *Machine) Lt() error  { return m.binaryConv((*joshvalue.Factory).Lt) }
func (m *Machine) Lte() error { return m.binaryConv((*joshvalue.Factory).Lte) }

func (m *Machine) Abs() error   { return m.unary((*joshvalue.Factory).Abs) }
func (m *Machine) Ceil() error  { return m.unary((*joshvalue.Factory).Ceil) }
func (m *Machine) Floor() error { return m.unary((*joshvalue.Factory).Floor) }
func (m *Machine) Round() error { return m.unary((*joshvalue.Factory).Round) }
func (m *Machine) Log10() error { return m.unary((*joshvalue.Factory).Log10) }
func (m *Machine) Ln() error    { return m.unary((*joshvalue.Factory).Ln) }

// Concat pops right then left distributions inside a conversion group and
// pushes a realized distribution of left's elements followed by right's,
// carrying right's (the group target's) units.
func (m *Machine) Concat() error {
	if err := m.openGroup(); err != nil {
		return err
	}
	right, err := m.popConv()
	if err != nil {
		return err
	}
	left, err := m.popConv()
	if err != nil {
		return err
	}
	if err := m.closeGroup(); err != nil {
		return err
	}
	f, err := m.factory()
	if err != nil {
		return err
	}
	rightDist, err := right.AsDistribution()
	if err != nil {
		return err
	}
	leftDist, err := left.AsDistribution()
	if err != nil {
		return err
	}
	rightItems, err := rightDist.Items()
	if err != nil {
		return err
	}
	leftItems, err := leftDist.Items()
	if err != nil {
		return err
	}
	combined := make([]*joshvalue.EngineValue, 0, len(leftItems)+len(rightItems))
	combined = append(combined, leftItems...)
	combined = append(combined, rightItems...)
	m.Push(f.BuildRealizedDistribution(combined, right.GetUnits()))
	return nil
}
