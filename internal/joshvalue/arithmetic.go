package joshvalue

import (
	"fmt"
	"math"

	"github.com/joshsim/joshc/internal/josherrors"
)

// Add requires left and right to already carry matching units (the push-down
// machine's conversion groups are responsible for normalizing them
// upstream, spec §4.6). Adding two realized distributions concatenates
// element-wise is NOT supported here — that's `concat`, a distinct operator;
// Add over distributions sums element-wise when both are the same size.
func (f *Factory) Add(left, right *EngineValue) (*EngineValue, error) {
	return f.binaryNumeric("add", left, right, func(a, b float64) float64 { return a + b })
}

// Subtract mirrors Add.
func (f *Factory) Subtract(left, right *EngineValue) (*EngineValue, error) {
	return f.binaryNumeric("subtract", left, right, func(a, b float64) float64 { return a - b })
}

func (f *Factory) binaryNumeric(op string, left, right *EngineValue, combine func(a, b float64) float64) (*EngineValue, error) {
	if left.kind == TypeDistribution || right.kind == TypeDistribution {
		return f.binaryNumericDistribution(op, left, right, combine)
	}
	if left.kind != TypeScalar || right.kind != TypeScalar {
		return nil, fmt.Errorf("%s: operands must be scalar, got %s and %s", op, left.kind, right.kind)
	}
	if !left.units.Equal(right.units) {
		return nil, josherrors.Units(left.units.String(), right.units.String())
	}
	return f.BuildScalar(combine(left.number, right.number), left.units), nil
}

func (f *Factory) binaryNumericDistribution(op string, left, right *EngineValue, combine func(a, b float64) float64) (*EngineValue, error) {
	leftItems, err := asItemSlice(left)
	if err != nil {
		return nil, err
	}
	rightItems, err := asItemSlice(right)
	if err != nil {
		return nil, err
	}
	if left.kind != TypeDistribution {
		for len(leftItems) < len(rightItems) {
			leftItems = append(leftItems, left)
		}
	}
	if right.kind != TypeDistribution {
		for len(rightItems) < len(leftItems) {
			rightItems = append(rightItems, right)
		}
	}
	if len(leftItems) != len(rightItems) {
		return nil, fmt.Errorf("%s: distributions have different sizes (%d vs %d)", op, len(leftItems), len(rightItems))
	}
	out := make([]*EngineValue, len(leftItems))
	for i := range leftItems {
		v, err := f.binaryNumeric(op, leftItems[i], rightItems[i], combine)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	units := left.units
	if left.kind != TypeDistribution {
		units = right.units
	}
	return f.BuildRealizedDistribution(out, units), nil
}

// asItemSlice views a scalar as a single-element slice or a realized
// distribution as its element slice, so Add/Subtract can treat "scalar op
// distribution" uniformly: binaryNumericDistribution repeats a scalar's
// single element to the distribution's size.
func asItemSlice(v *EngineValue) ([]*EngineValue, error) {
	if v.kind == TypeDistribution {
		return v.dist.Items()
	}
	return []*EngineValue{v}, nil
}

// Multiply computes a product; per spec §4.6 multiply/divide do not use a
// conversion group, and per §9 open question (b) units are computed from the
// operands (dimensionless × X = X) rather than required to match.
func (f *Factory) Multiply(left, right *EngineValue) (*EngineValue, error) {
	if left.kind != TypeScalar || right.kind != TypeScalar {
		return nil, fmt.Errorf("multiply: operands must be scalar, got %s and %s", left.kind, right.kind)
	}
	return f.BuildScalar(left.number*right.number, combineUnits(left.units, right.units, "*")), nil
}

// Divide mirrors Multiply.
func (f *Factory) Divide(left, right *EngineValue) (*EngineValue, error) {
	if left.kind != TypeScalar || right.kind != TypeScalar {
		return nil, fmt.Errorf("divide: operands must be scalar, got %s and %s", left.kind, right.kind)
	}
	if right.number == 0 {
		return nil, fmt.Errorf("divide: division by zero")
	}
	return f.BuildScalar(left.number/right.number, combineUnits(left.units, right.units, "/")), nil
}

// combineUnits derives a result unit tag for multiply/divide: dimensionless
// operands are absorbed, matching units on both sides cancel to
// dimensionless under division, and otherwise the units are joined
// symbolically (an implementation-defined but consistent scheme, per
// spec §4.1).
func combineUnits(left, right Units, op string) Units {
	switch {
	case left.IsDimensionless() && right.IsDimensionless():
		return Dimensionless
	case left.IsDimensionless():
		if op == "/" {
			return Units("1/" + right.String())
		}
		return right
	case right.IsDimensionless():
		return left
	case left.Equal(right) && op == "/":
		return Dimensionless
	default:
		return Units(left.String() + op + right.String())
	}
}

// RaiseToPower requires a dimensionless exponent (spec §4.1).
func (f *Factory) RaiseToPower(base, exponent *EngineValue) (*EngineValue, error) {
	if base.kind != TypeScalar || exponent.kind != TypeScalar {
		return nil, fmt.Errorf("pow: operands must be scalar")
	}
	if !exponent.units.IsDimensionless() {
		return nil, josherrors.Domain("pow", "exponent must be dimensionless, got %s", exponent.units)
	}
	return f.BuildScalar(math.Pow(base.number, exponent.number), base.units), nil
}

func (f *Factory) unaryMath(op string, v *EngineValue, fn func(float64) float64) (*EngineValue, error) {
	if v.kind == TypeDistribution {
		return nil, josherrors.Domain(op, "cannot apply %s to a distribution", op)
	}
	if v.kind != TypeScalar {
		return nil, fmt.Errorf("%s: operand must be scalar, got %s", op, v.kind)
	}
	return f.BuildScalar(fn(v.number), v.units), nil
}

// Abs, Ceil, Floor and Round operate on a scalar and preserve its units.
func (f *Factory) Abs(v *EngineValue) (*EngineValue, error) { return f.unaryMath("abs", v, math.Abs) }

func (f *Factory) Ceil(v *EngineValue) (*EngineValue, error) { return f.unaryMath("ceil", v, math.Ceil) }

func (f *Factory) Floor(v *EngineValue) (*EngineValue, error) {
	return f.unaryMath("floor", v, math.Floor)
}

func (f *Factory) Round(v *EngineValue) (*EngineValue, error) {
	return f.unaryMath("round", v, math.Round)
}

// Log10 and Ln fail for non-positive operands (spec §4.1).
func (f *Factory) Log10(v *EngineValue) (*EngineValue, error) {
	return f.logarithm("log10", v, math.Log10)
}

func (f *Factory) Ln(v *EngineValue) (*EngineValue, error) {
	return f.logarithm("ln", v, math.Log)
}

func (f *Factory) logarithm(op string, v *EngineValue, fn func(float64) float64) (*EngineValue, error) {
	if v.kind == TypeDistribution {
		return nil, josherrors.Domain(op, "cannot apply %s to a distribution", op)
	}
	if v.kind != TypeScalar {
		return nil, fmt.Errorf("%s: operand must be scalar, got %s", op, v.kind)
	}
	if v.number <= 0 {
		return nil, josherrors.Domain(op, "%s of non-positive value %v", op, v.number)
	}
	return f.BuildScalar(fn(v.number), v.units), nil
}
