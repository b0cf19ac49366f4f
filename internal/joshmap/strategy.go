// Package joshmap implements the linear, quadratic and sigmoid domain-range
// interpolation strategies apply_map dispatches to (spec §4.6). Every
// strategy operates on already unit-conformed float64s: the caller (the
// push-down machine) is responsible for running the two conversion groups
// that bring operand/from_low/from_high into one unit system and
// to_low/to_high into another before calling a strategy.
package joshmap

import (
	"math"

	"github.com/joshsim/joshc/internal/josherrors"
)

// Strategy maps operand from the domain [fromLow, fromHigh] onto the range
// [toLow, toHigh].
type Strategy interface {
	Map(operand, fromLow, fromHigh, toLow, toHigh float64) (float64, error)
}

// Linear implements percent = (operand - fromLow) / (fromHigh - fromLow);
// result = toLow + percent * (toHigh - toLow).
type Linear struct{}

func (Linear) Map(operand, fromLow, fromHigh, toLow, toHigh float64) (float64, error) {
	span := fromHigh - fromLow
	if span == 0 {
		return 0, josherrors.Domain("apply_map", "linear map has a zero-width domain [%v, %v]", fromLow, fromHigh)
	}
	percent := (operand - fromLow) / span
	return toLow + percent*(toHigh-toLow), nil
}

// Quadratic places the parabola's vertex at the domain midpoint and scales
// it so the domain endpoints land exactly on the range endpoints. CenterMax
// flips the parabola so the vertex is the range's maximum rather than its
// minimum.
type Quadratic struct {
	CenterMax bool
}

func (q Quadratic) Map(operand, fromLow, fromHigh, toLow, toHigh float64) (float64, error) {
	domainSpan := fromHigh - fromLow
	if domainSpan == 0 {
		return 0, josherrors.Domain("apply_map", "quadratic map has a zero-width domain [%v, %v]", fromLow, fromHigh)
	}
	mid := (fromLow + fromHigh) / 2
	// Normalize to [-1, 1] around the midpoint, square, then rescale into
	// the range. A normalized distance of 0 (at the vertex) maps to one
	// range endpoint; a distance of 1 (at either domain endpoint) maps to
	// the other.
	normalized := (operand - mid) / (domainSpan / 2)
	shaped := normalized * normalized

	low, high := toLow, toHigh
	if q.CenterMax {
		low, high = toHigh, toLow
	}
	return low + shaped*(high-low), nil
}

// Sigmoid maps the domain through a logistic curve centered on the domain
// midpoint, scaled into the range. Steep selects a sharper slope.
type Sigmoid struct {
	Steep bool
}

func (s Sigmoid) Map(operand, fromLow, fromHigh, toLow, toHigh float64) (float64, error) {
	domainSpan := fromHigh - fromLow
	if domainSpan == 0 {
		return 0, josherrors.Domain("apply_map", "sigmoid map has a zero-width domain [%v, %v]", fromLow, fromHigh)
	}
	mid := (fromLow + fromHigh) / 2
	slope := 6.0
	if s.Steep {
		slope = 12.0
	}
	x := (operand - mid) / (domainSpan / 2)
	logistic := 1 / (1 + math.Exp(-slope*x))
	return toLow + logistic*(toHigh-toLow), nil
}

// Lookup resolves a strategy by the name and method parameter the compile
// visitor pushed (spec §4.5/§4.6): "linear" ignores the parameter; quadratic
// and sigmoid read it as a boolean (center_max / steep respectively).
func Lookup(name string, methodParam bool) (Strategy, error) {
	switch name {
	case "linear":
		return Linear{}, nil
	case "quadratic":
		return Quadratic{CenterMax: methodParam}, nil
	case "sigmoid":
		return Sigmoid{Steep: methodParam}, nil
	default:
		return nil, josherrors.Compile(josherrors.Position{}, "apply_map", "unsupported map strategy %q", name)
	}
}
