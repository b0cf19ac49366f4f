package joshmap

import (
	"math"
	"testing"
)

func TestLinearMapScenario(t *testing.T) {
	// spec §8 scenario 1: 5 m in [0,10] m onto [100,200] degC -> 150 degC.
	got, err := Linear{}.Map(5, 0, 10, 100, 200)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got != 150 {
		t.Errorf("Linear.Map(5, 0, 10, 100, 200) = %v, want 150", got)
	}
}

func TestLinearMapZeroWidthDomainFails(t *testing.T) {
	if _, err := (Linear{}).Map(5, 3, 3, 0, 1); err == nil {
		t.Fatal("expected an error for a zero-width domain")
	}
}

func TestQuadraticMapEndpointsLandOnRange(t *testing.T) {
	q := Quadratic{}
	low, err := q.Map(0, 0, 10, 0, 100)
	if err != nil {
		t.Fatalf("Map(low): %v", err)
	}
	if low != 100 {
		t.Errorf("Quadratic.Map at domain low = %v, want 100 (parabola opens upward from the midpoint vertex)", low)
	}
	mid, err := q.Map(5, 0, 10, 0, 100)
	if err != nil {
		t.Fatalf("Map(mid): %v", err)
	}
	if mid != 0 {
		t.Errorf("Quadratic.Map at the domain midpoint = %v, want 0", mid)
	}
	high, err := q.Map(10, 0, 10, 0, 100)
	if err != nil {
		t.Fatalf("Map(high): %v", err)
	}
	if high != 100 {
		t.Errorf("Quadratic.Map at domain high = %v, want 100", high)
	}
}

func TestQuadraticCenterMaxPeaksAtRangeHigh(t *testing.T) {
	q := Quadratic{CenterMax: true}
	mid, err := q.Map(5, 0, 10, 0, 100)
	if err != nil {
		t.Fatalf("Map(mid): %v", err)
	}
	if mid != 100 {
		t.Errorf("CenterMax vertex = %v, want 100 (peaking at range high)", mid)
	}
	low, err := q.Map(0, 0, 10, 0, 100)
	if err != nil {
		t.Fatalf("Map(low): %v", err)
	}
	if low != 0 {
		t.Errorf("CenterMax endpoint = %v, want 0", low)
	}
}

func TestSigmoidMapMidpointIsRangeCenter(t *testing.T) {
	s := Sigmoid{}
	mid, err := s.Map(5, 0, 10, 0, 100)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if math.Abs(mid-50) > 1e-9 {
		t.Errorf("Sigmoid midpoint = %v, want 50", mid)
	}
}

func TestSigmoidSteepIsSharperThanShallow(t *testing.T) {
	shallow, _ := Sigmoid{Steep: false}.Map(7, 0, 10, 0, 100)
	steep, _ := Sigmoid{Steep: true}.Map(7, 0, 10, 0, 100)
	if steep <= shallow {
		t.Errorf("steep sigmoid(7) = %v should exceed shallow sigmoid(7) = %v past the midpoint", steep, shallow)
	}
}

func TestLookupDispatchesByName(t *testing.T) {
	if _, err := Lookup("linear", false); err != nil {
		t.Errorf("Lookup(linear): %v", err)
	}
	q, err := Lookup("quadratic", true)
	if err != nil {
		t.Fatalf("Lookup(quadratic): %v", err)
	}
	if qv, ok := q.(Quadratic); !ok || !qv.CenterMax {
		t.Errorf("Lookup(quadratic, true) = %#v, want CenterMax=true", q)
	}
	if _, err := Lookup("unknown", false); err == nil {
		t.Fatal("Lookup of an unsupported strategy should fail")
	}
}
