package joshvalue

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Generator lazily produces elements of a virtualized distribution. Size
// returns (n, true) when the total count happens to be known in advance;
// virtualized distributions are typically used precisely because it is not.
type Generator interface {
	// Next returns the next element, or ok=false when exhausted (a generator
	// used purely for random sampling may never report exhaustion).
	Next() (value *EngineValue, ok bool)
	// Size reports a known size, if any.
	Size() (n int, known bool)
}

// Distribution is either realized (a finite ordered sequence known in
// memory) or virtualized (a lazy generator of possibly-unknown size). Spec
// §3, §9: statistics are all-or-nothing — if GetSize is absent for a
// virtualized distribution, so are all of min/max/mean/std/sum/count.
type Distribution struct {
	realized []*EngineValue // nil when virtualized
	gen      Generator      // nil when realized
}

// NewRealizedDistribution wraps an in-memory, ordered sequence.
func NewRealizedDistribution(items []*EngineValue) *Distribution {
	cp := make([]*EngineValue, len(items))
	copy(cp, items)
	return &Distribution{realized: cp}
}

// NewVirtualizedDistribution wraps a lazy generator.
func NewVirtualizedDistribution(gen Generator) *Distribution {
	return &Distribution{gen: gen}
}

// IsRealized reports whether the distribution is backed by an in-memory
// sequence rather than a lazy generator.
func (d *Distribution) IsRealized() bool {
	return d.realized != nil
}

// Items returns the realized elements. It fails for a virtualized
// distribution.
func (d *Distribution) Items() ([]*EngineValue, error) {
	if !d.IsRealized() {
		return nil, fmt.Errorf("distribution is virtualized: no in-memory element list")
	}
	return d.realized, nil
}

// Size reports the number of elements. It fails for a virtualized
// distribution whose generator cannot report a known size.
func (d *Distribution) Size() (int, error) {
	if d.IsRealized() {
		return len(d.realized), nil
	}
	if n, known := d.gen.Size(); known {
		return n, nil
	}
	return 0, fmt.Errorf("get_size: virtualized distribution has unknown size")
}

// Sample draws a single element uniformly at random.
func (d *Distribution) Sample(rng *rand.Rand) (*EngineValue, error) {
	if d.IsRealized() {
		if len(d.realized) == 0 {
			return nil, fmt.Errorf("sample: distribution is empty")
		}
		return d.realized[rng.Intn(len(d.realized))], nil
	}
	v, ok := d.gen.Next()
	if !ok {
		return nil, fmt.Errorf("sample: virtualized distribution is exhausted")
	}
	return v, nil
}

// SampleMultiple draws n elements, with or without replacement. Sampling
// without replacement from any virtualized distribution, of known size or
// not, is unsupported, since its population isn't enumerable.
func (d *Distribution) SampleMultiple(rng *rand.Rand, n int, withReplacement bool) ([]*EngineValue, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample: negative count %d", n)
	}
	if withReplacement || d.IsRealized() {
		out := make([]*EngineValue, 0, n)
		for i := 0; i < n; i++ {
			v, err := d.Sample(rng)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			if !withReplacement && d.IsRealized() {
				d.removeOne(v)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("sample: without-replacement sampling requires a realized distribution")
}

// removeOne deletes the first occurrence of v (by pointer identity) from a
// realized distribution's backing slice, used to implement sampling without
// replacement without mutating the caller's original slice reference.
func (d *Distribution) removeOne(v *EngineValue) {
	for i, item := range d.realized {
		if item == v {
			d.realized = append(d.realized[:i:i], d.realized[i+1:]...)
			return
		}
	}
}

func (d *Distribution) scalars() ([]float64, error) {
	items, err := d.Items()
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		n, err := item.AsDouble()
		if err != nil {
			return nil, fmt.Errorf("statistic requires scalar elements: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Count returns the number of elements, identical to Size but named to match
// the §4.6 `count` operator.
func (d *Distribution) Count() (int, error) {
	return d.Size()
}

// Min returns the smallest scalar element.
func (d *Distribution) Min() (float64, error) {
	vals, err := d.scalars()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("min: distribution is empty")
	}
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Min(m, v)
	}
	return m, nil
}

// Max returns the largest scalar element.
func (d *Distribution) Max() (float64, error) {
	vals, err := d.scalars()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("max: distribution is empty")
	}
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Max(m, v)
	}
	return m, nil
}

// Sum returns the sum of the scalar elements.
func (d *Distribution) Sum() (float64, error) {
	vals, err := d.scalars()
	if err != nil {
		return 0, err
	}
	var s float64
	for _, v := range vals {
		s += v
	}
	return s, nil
}

// Mean returns the arithmetic mean of the scalar elements.
func (d *Distribution) Mean() (float64, error) {
	vals, err := d.scalars()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("mean: distribution is empty")
	}
	sum, _ := d.Sum()
	return sum / float64(len(vals)), nil
}

// Std returns the population standard deviation of the scalar elements.
func (d *Distribution) Std() (float64, error) {
	vals, err := d.scalars()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("std: distribution is empty")
	}
	mean, _ := d.Mean()
	var sq float64
	for _, v := range vals {
		diff := v - mean
		sq += diff * diff
	}
	return math.Sqrt(sq / float64(len(vals))), nil
}

func (d *Distribution) String() string {
	if !d.IsRealized() {
		return "<virtualized distribution>"
	}
	parts := make([]string, len(d.realized))
	for i, v := range d.realized {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
