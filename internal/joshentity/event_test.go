package joshentity

import (
	"testing"

	"github.com/joshsim/joshc/internal/joshvalue"
)

func TestParseEventNameWithReservedSuffix(t *testing.T) {
	cases := []struct {
		name     string
		state    string
		wantAttr string
		wantEvt  string
	}{
		{"population.init", "", "population", "init"},
		{"population.step", "", "population", "step"},
		{"age", "", "age", "constant"},
		{"height.removed", "", "height.removed", "constant"}, // "removed" isn't a reserved keyword
		{"remove", "", "", "remove"},
	}
	for _, tc := range cases {
		key := ParseEventName(tc.state, tc.name)
		if key.Attribute != tc.wantAttr || key.Event != tc.wantEvt {
			t.Errorf("ParseEventName(%q) = {%q, %q}, want {%q, %q}",
				tc.name, key.Attribute, key.Event, tc.wantAttr, tc.wantEvt)
		}
	}
}

func constCallable(s string) CompiledCallable {
	f := joshvalue.NewFactory(false)
	return func(Scope) (*joshvalue.EngineValue, error) {
		return f.BuildString(s), nil
	}
}

func TestEventHandlerGroupSelectFirstMatch(t *testing.T) {
	group := NewEventHandlerGroup(EventKey{Attribute: "x", Event: "step"})
	group.Add(EventHandler{
		Selector: func(Scope) (bool, error) { return false, nil },
		Callable: constCallable("first"),
	})
	group.Add(EventHandler{
		Selector: func(Scope) (bool, error) { return true, nil },
		Callable: constCallable("second"),
	})
	group.Add(EventHandler{
		Callable: constCallable("else"),
	})

	h, ok, err := group.Select(nil)
	if err != nil || !ok {
		t.Fatalf("Select: ok=%v err=%v", ok, err)
	}
	result, _ := h.Callable(nil)
	got, _ := result.AsString()
	if got != "second" {
		t.Errorf("Select chose %v, want \"second\"", got)
	}
}

func TestEventHandlerGroupNoMatchIsNoOp(t *testing.T) {
	group := NewEventHandlerGroup(EventKey{Attribute: "x", Event: "step"})
	group.Add(EventHandler{
		Selector: func(Scope) (bool, error) { return false, nil },
		Callable: constCallable("never"),
	})

	_, ok, err := group.Select(nil)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if ok {
		t.Error("Select should report no match when every selector is false and there is no else")
	}
}

func TestEventHandlerGroupFailingSelectorSurfaces(t *testing.T) {
	group := NewEventHandlerGroup(EventKey{Attribute: "x", Event: "step"})
	wantErr := errSentinel{}
	group.Add(EventHandler{
		Selector: func(Scope) (bool, error) { return false, wantErr },
		Callable: constCallable("never"),
	})
	group.Add(EventHandler{
		Callable: constCallable("else"),
	})

	_, _, err := group.Select(nil)
	if err != wantErr {
		t.Errorf("Select() err = %v, want the selector's error to surface, not be swallowed", err)
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }
