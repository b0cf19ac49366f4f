package joshmachine

import (
	"math/rand"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Slice pops selections then subject (no conversion group) and pushes a
// realized distribution of subject's elements at the positions where
// selections' same-indexed element is a true boolean — a boolean mask over
// subject, the most direct reading of "filtered distribution" the catalog
// describes (spec §4.6).
func (m *Machine) Slice() error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	selections, err := m.pop()
	if err != nil {
		return err
	}
	subject, err := m.pop()
	if err != nil {
		return err
	}
	subjectDist, err := subject.AsDistribution()
	if err != nil {
		return err
	}
	maskDist, err := selections.AsDistribution()
	if err != nil {
		return err
	}
	items, err := subjectDist.Items()
	if err != nil {
		return err
	}
	mask, err := maskDist.Items()
	if err != nil {
		return err
	}
	if len(items) != len(mask) {
		return josherrors.Domain("slice", "subject has %d elements but the selection mask has %d", len(items), len(mask))
	}
	var filtered []*joshvalue.EngineValue
	for i, item := range items {
		keep, err := mask[i].AsBool()
		if err != nil {
			return err
		}
		if keep {
			filtered = append(filtered, item)
		}
	}
	m.Push(f.BuildRealizedDistribution(filtered, subject.GetUnits()))
	return nil
}

// Sample pops count (normalized to count units) then subject, and pushes
// withReplacement-controlled samples: a bare scalar when count is exactly
// 1, otherwise a realized distribution of the sampled elements (spec §4.6,
// §8 scenario 3).
func (m *Machine) Sample(withReplacement bool) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	rawCount, err := m.pop()
	if err != nil {
		return err
	}
	countValue, err := m.convertSingle(rawCount, joshvalue.Count)
	if err != nil {
		return err
	}
	n, err := countValue.AsInt()
	if err != nil {
		return err
	}
	if n < 0 {
		return josherrors.Domain("sample", "negative sample count %d", n)
	}
	subject, err := m.pop()
	if err != nil {
		return err
	}
	dist, err := subject.AsDistribution()
	if err != nil {
		return err
	}

	var sampled []*joshvalue.EngineValue
	var sampleErr error
	m.rng.Do(func(r *rand.Rand) {
		sampled, sampleErr = dist.SampleMultiple(r, int(n), withReplacement)
	})
	if sampleErr != nil {
		return sampleErr
	}

	if n == 1 {
		m.Push(sampled[0])
		return nil
	}
	m.Push(f.BuildRealizedDistribution(sampled, subject.GetUnits()))
	return nil
}

// distributionStat pops a distribution and pushes a scalar computed by stat,
// in the units resultUnits picks (count units for count, the subject's units
// otherwise). Used by count/max/mean/min/std/sum.
func (m *Machine) distributionStat(stat func(d *joshvalue.Distribution) (float64, error), resultUnits func(subject *joshvalue.EngineValue) joshvalue.Units) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	subject, err := m.pop()
	if err != nil {
		return err
	}
	dist, err := subject.AsDistribution()
	if err != nil {
		return err
	}
	n, err := stat(dist)
	if err != nil {
		return err
	}
	m.Push(f.BuildScalar(n, resultUnits(subject)))
	return nil
}

func sameUnits(subject *joshvalue.EngineValue) joshvalue.Units { return subject.GetUnits() }
func countUnits(*joshvalue.EngineValue) joshvalue.Units        { return joshvalue.Count }

func (m *Machine) Count() error {
	return m.distributionStat(func(d *joshvalue.Distribution) (float64, error) {
		n, err := d.Count()
		return float64(n), err
	}, countUnits)
}

func (m *Machine) Max() error {
	return m.distributionStat((*joshvalue.Distribution).Max, sameUnits)
}

func (m *Machine) Mean() error {
	return m.distributionStat((*joshvalue.Distribution).Mean, sameUnits)
}

func (m *Machine) Min() error {
	return m.distributionStat((*joshvalue.Distribution).Min, sameUnits)
}

func (m *Machine) Std() error {
	return m.distributionStat((*joshvalue.Distribution).Std, sameUnits)
}

func (m *Machine) Sum() error {
	return m.distributionStat((*joshvalue.Distribution).Sum, sameUnits)
}
