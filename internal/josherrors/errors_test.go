package josherrors

import "testing"

func TestPositionString(t *testing.T) {
	if got := (Position{}).String(); got != "" {
		t.Errorf("zero position String() = %q, want empty", got)
	}
	if got := (Position{Line: 3, Column: 9}).String(); got != "3:9" {
		t.Errorf("String() = %q, want 3:9", got)
	}
}

func TestDomainError(t *testing.T) {
	err := Domain("ln", "logarithm of non-positive value %v", -1.0)
	if err.Kind() != KindDomain {
		t.Fatalf("Kind() = %v, want %v", err.Kind(), KindDomain)
	}
	if err.Op != "ln" {
		t.Errorf("Op = %q, want ln", err.Op)
	}
}

func TestUnitsError(t *testing.T) {
	err := Units("meters", "count")
	if err.Kind() != KindUnits {
		t.Fatalf("Kind() = %v, want %v", err.Kind(), KindUnits)
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestResolutionError(t *testing.T) {
	err := Resolution("meta.population", []string{"here", "step"})
	msg := err.Error()
	if !contains(msg, "declare") {
		t.Errorf("Error() = %q, want a hint to declare the attribute on the simulation", msg)
	}
	if !contains(msg, "here") || !contains(msg, "step") {
		t.Errorf("Error() = %q, want available attribute names listed", msg)
	}
}

func TestIs(t *testing.T) {
	err := State("end", "machine already ended")
	if !Is(err, KindState) {
		t.Error("Is(err, KindState) = false, want true")
	}
	if Is(err, KindDomain) {
		t.Error("Is(err, KindDomain) = true, want false")
	}
	if Is(nil, KindState) {
		t.Error("Is(nil, ...) = true, want false")
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
