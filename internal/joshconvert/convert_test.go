package joshconvert

import (
	"testing"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshvalue"
)

func TestConverterDirectAndNoop(t *testing.T) {
	f := joshvalue.NewFactory(false)
	c := NewConverter()
	c.Register(NewDirect("km", "m", func(n float64) float64 { return n * 1000 }))
	c.Register(NewNoop("m"))

	km := f.BuildScalar(2, joshvalue.Units("km"))
	m, err := c.Convert(f, km, joshvalue.Units("m"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	got, _ := m.AsDouble()
	if got != 2000 {
		t.Errorf("Convert(2 km -> m) = %v, want 2000", got)
	}

	same, err := c.Convert(f, m, joshvalue.Units("m"))
	if err != nil {
		t.Fatalf("Convert (identity): %v", err)
	}
	if g, _ := same.AsDouble(); g != 2000 {
		t.Errorf("identity conversion changed the value: %v", g)
	}
}

func TestConverterMissingConversionIsUnitsError(t *testing.T) {
	f := joshvalue.NewFactory(false)
	c := NewConverter()
	v := f.BuildScalar(1, joshvalue.Units("furlongs"))

	_, err := c.Convert(f, v, joshvalue.Units("m"))
	if err == nil {
		t.Fatal("expected an error for a missing conversion")
	}
	if !josherrors.Is(err, josherrors.KindUnits) {
		t.Errorf("expected a UnitsError, got %v", err)
	}
}

func TestConverterIdentityWithoutRegistration(t *testing.T) {
	f := joshvalue.NewFactory(false)
	c := NewConverter()
	v := f.BuildScalar(5, joshvalue.Units("meters"))

	same, err := c.Convert(f, v, joshvalue.Units("meters"))
	if err != nil {
		t.Fatalf("same-units conversion should always succeed: %v", err)
	}
	if g, _ := same.AsDouble(); g != 5 {
		t.Errorf("Convert(5 meters -> meters) = %v, want 5", g)
	}
}
