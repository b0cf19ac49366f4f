package joshvalue

import "testing"

func TestBuildScalarRoundTrip(t *testing.T) {
	f := NewFactory(false)
	v := f.BuildScalar(5, Units("meters"))

	if v.Kind() != TypeScalar {
		t.Fatalf("Kind() = %v, want %v", v.Kind(), TypeScalar)
	}
	got, err := v.AsDouble()
	if err != nil {
		t.Fatalf("AsDouble: %v", err)
	}
	if got != 5 {
		t.Errorf("AsDouble() = %v, want 5", got)
	}
	if v.GetUnits() != Units("meters") {
		t.Errorf("GetUnits() = %v, want meters", v.GetUnits())
	}
}

func TestReplaceUnits(t *testing.T) {
	f := NewFactory(false)
	v := f.BuildScalar(10, Units("meters"))
	replaced := v.ReplaceUnits(Units("feet"))

	if replaced.GetUnits() != Units("feet") {
		t.Errorf("GetUnits() = %v, want feet", replaced.GetUnits())
	}
	got, _ := replaced.AsDouble()
	if got != 10 {
		t.Errorf("ReplaceUnits must not convert the numeric value, got %v", got)
	}
	if v.GetUnits() != Units("meters") {
		t.Error("ReplaceUnits must not mutate the receiver")
	}
}

func TestAsCoercionsFailOnWrongKind(t *testing.T) {
	f := NewFactory(false)
	b := f.BuildBoolean(true)

	if _, err := b.AsDouble(); err == nil {
		t.Error("AsDouble() on a boolean should fail")
	}
	if _, err := b.AsString(); err == nil {
		t.Error("AsString() on a boolean should fail")
	}
}

func TestGetSizeScalarIsOne(t *testing.T) {
	f := NewFactory(false)
	v := f.BuildScalar(1, Dimensionless)
	n, err := v.GetSize()
	if err != nil {
		t.Fatalf("GetSize: %v", err)
	}
	if n != 1 {
		t.Errorf("GetSize() = %d, want 1", n)
	}
}

func TestUnitsNormalize(t *testing.T) {
	if Normalize("Meters") != Normalize("METERS") {
		t.Error("Normalize should fold case")
	}
	if Normalize("  meters  ") != Units("meters") {
		t.Errorf("Normalize should trim whitespace, got %q", Normalize("  meters  "))
	}
	if Normalize("") != Dimensionless {
		t.Error("Normalize(\"\") should be Dimensionless")
	}
}
