package joshentity

import (
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// Scope is the minimal contract an evaluation context must satisfy for a
// CompiledCallable or CompiledSelector to run against it (spec §4.2). The
// concrete LocalScope/EntityScope implementations live in package
// joshscope; the interface is declared here, at the consumer, so this
// package and joshscope don't import each other in a cycle.
type Scope interface {
	// Get resolves name directly against this scope (no dotted-path
	// traversal — that's ValueResolver's job).
	Get(name string) (*joshvalue.EngineValue, error)
	// Has reports whether name is bound directly in this scope.
	Has(name string) bool
	// Attributes lists every name bound directly in this scope.
	Attributes() []string
	// Converter exposes the ambient unit converter (spec §4.2).
	Converter() *joshconvert.Converter
}

// CompiledCallable is a compiled event-handler body: the visitor-compiled
// action tree for one `if`/`elif`/`else`/unconditional member of an event
// key's handler list (spec §4.4, §4.5).
type CompiledCallable func(scope Scope) (*joshvalue.EngineValue, error)

// CompiledSelector is the compiled `if`/`elif` condition guarding a
// CompiledCallable. A handler without a selector (an `else`, or the sole
// member of an unconditional group) has a nil Selector.
type CompiledSelector func(scope Scope) (bool, error)

// EventKey is the triple an entity's handler groups are stored under (spec
// §3): State is empty when the handler applies regardless of the entity's
// declared state; Event is one of the reserved event names, defaulting to
// "constant" per the name-parsing rule in spec §4.5.
type EventKey struct {
	State     string
	Attribute string
	Event     string
}

// ParseEventName splits a dotted handler name into its EventKey per spec
// §4.5: if the final segment is a reserved event keyword it is the event and
// the prefix is the attribute, otherwise the whole name is the attribute and
// the event defaults to "constant".
func ParseEventName(state, name string) EventKey {
	attribute, event := splitEventSuffix(name)
	return EventKey{State: state, Attribute: attribute, Event: event}
}

var reservedEvents = map[string]bool{
	"init": true, "start": true, "step": true, "end": true, "remove": true, "constant": true,
}

func splitEventSuffix(name string) (attribute, event string) {
	idx := lastDot(name)
	if idx < 0 {
		if reservedEvents[name] {
			return "", name
		}
		return name, "constant"
	}
	prefix, suffix := name[:idx], name[idx+1:]
	if reservedEvents[suffix] {
		return prefix, suffix
	}
	return name, "constant"
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

// EventHandler pairs a compiled body with its optional guarding selector.
type EventHandler struct {
	Selector CompiledSelector // nil for an unconditional handler
	Callable CompiledCallable
}

// EventHandlerGroup holds the ordered list of handlers registered under one
// EventKey (spec §3). Selection is first-match-wins (spec §4.5, §7):
// handlers are tried in declaration order, and the first whose selector
// returns true (or which carries no selector at all) runs.
type EventHandlerGroup struct {
	Key      EventKey
	Handlers []EventHandler
}

// NewEventHandlerGroup builds an empty group for key.
func NewEventHandlerGroup(key EventKey) *EventHandlerGroup {
	return &EventHandlerGroup{Key: key}
}

// Add appends a handler to the group, preserving source order.
func (g *EventHandlerGroup) Add(h EventHandler) {
	g.Handlers = append(g.Handlers, h)
}

// Select runs each handler's selector in order and returns the first whose
// selector is true or which carries no selector; ok is false if no handler
// matches (the group is a no-op for this scope). A failing selector
// propagates immediately rather than being skipped (spec §7: "a failing
// selector is surfaced, not swallowed").
func (g *EventHandlerGroup) Select(scope Scope) (handler *EventHandler, ok bool, err error) {
	for i := range g.Handlers {
		h := &g.Handlers[i]
		if h.Selector == nil {
			return h, true, nil
		}
		matched, err := h.Selector(scope)
		if err != nil {
			return nil, false, err
		}
		if matched {
			return h, true, nil
		}
	}
	return nil, false, nil
}
