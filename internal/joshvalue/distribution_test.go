package joshvalue

import (
	"math/rand"
	"testing"
)

func realizedCount(f *Factory, vals ...float64) *EngineValue {
	items := make([]*EngineValue, len(vals))
	for i, v := range vals {
		items[i] = f.BuildScalar(v, Units("count"))
	}
	return f.BuildRealizedDistribution(items, Units("count"))
}

func TestDistributionStatistics(t *testing.T) {
	f := NewFactory(false)
	v := realizedCount(f, 1, 2, 3)
	dist, err := v.AsDistribution()
	if err != nil {
		t.Fatalf("AsDistribution: %v", err)
	}

	if n, _ := dist.Count(); n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
	if min, _ := dist.Min(); min != 1 {
		t.Errorf("Min() = %v, want 1", min)
	}
	if max, _ := dist.Max(); max != 3 {
		t.Errorf("Max() = %v, want 3", max)
	}
	if sum, _ := dist.Sum(); sum != 6 {
		t.Errorf("Sum() = %v, want 6", sum)
	}
	if mean, _ := dist.Mean(); mean != 2 {
		t.Errorf("Mean() = %v, want 2", mean)
	}
}

func TestVirtualizedDistributionStatisticsFail(t *testing.T) {
	gen := &countingGenerator{}
	f := NewFactory(false)
	v := f.BuildVirtualizedDistribution(gen, Units("count"))
	dist, err := v.AsDistribution()
	if err != nil {
		t.Fatalf("AsDistribution: %v", err)
	}

	if _, err := dist.Size(); err == nil {
		t.Error("Size() on a virtualized distribution of unknown size should fail")
	}
	if _, err := dist.Min(); err == nil {
		t.Error("Min() on a virtualized distribution should fail")
	}
	if _, err := dist.Mean(); err == nil {
		t.Error("Mean() on a virtualized distribution should fail")
	}
}

func TestSampleWithReplacement(t *testing.T) {
	f := NewFactory(false)
	v := realizedCount(f, 1, 2, 3)
	dist, _ := v.AsDistribution()

	rng := rand.New(rand.NewSource(1))
	samples, err := dist.SampleMultiple(rng, 100, true)
	if err != nil {
		t.Fatalf("SampleMultiple: %v", err)
	}
	if len(samples) != 100 {
		t.Fatalf("len(samples) = %d, want 100", len(samples))
	}
	for _, s := range samples {
		n, _ := s.AsDouble()
		if n != 1 && n != 2 && n != 3 {
			t.Errorf("sample %v not in {1,2,3}", n)
		}
		if s.GetUnits() != Units("count") {
			t.Errorf("sample units = %v, want count", s.GetUnits())
		}
	}
}

func TestSampleWithoutReplacementExhaustsSource(t *testing.T) {
	f := NewFactory(false)
	v := realizedCount(f, 1, 2, 3)
	dist, _ := v.AsDistribution()

	rng := rand.New(rand.NewSource(1))
	samples, err := dist.SampleMultiple(rng, 3, false)
	if err != nil {
		t.Fatalf("SampleMultiple: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("len(samples) = %d, want 3", len(samples))
	}
	if _, err := dist.Sample(rng); err == nil {
		t.Error("sampling a fourth time without replacement should fail")
	}
}

type countingGenerator struct{ n int }

func (g *countingGenerator) Next() (*EngineValue, bool) {
	g.n++
	f := NewFactory(false)
	return f.BuildScalar(float64(g.n), Units("count")), true
}

func (g *countingGenerator) Size() (int, bool) { return 0, false }
