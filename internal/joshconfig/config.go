// Package joshconfig loads a ".jshc" configuration document and exposes it
// as the dotted-name, EngineValue-typed lookup the bridge's
// get_config_optional contract needs (spec §4.3).
package joshconfig

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/joshsim/joshc/internal/joshvalue"
)

// entry is one parsed config leaf: a scalar (with optional units), a
// boolean, a string, or a distribution of scalars.
type entry struct {
	numbers []float64
	units   joshvalue.Units
	boolean *bool
	str     *string
}

// Provider answers get_config_optional lookups over a flattened document.
// Nested YAML maps are flattened into dotted names ("weather.wind.speed"),
// matching the dotted attribute paths the rest of the interpreter uses.
type Provider struct {
	factory *joshvalue.Factory
	entries map[string]entry
}

// Load parses the ".jshc" YAML document in data and builds a Provider that
// coerces its leaves with factory.
func Load(data []byte, factory *joshvalue.Factory) (*Provider, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("joshconfig: parsing config: %w", err)
	}
	p := &Provider{factory: factory, entries: make(map[string]entry)}
	flatten("", doc, p.entries)
	return p, nil
}

// flatten walks a decoded YAML map, writing one entry per leaf path into
// out. A nested map recurses with an extended dotted prefix; anything else
// is classified by classify.
func flatten(prefix string, node map[string]any, out map[string]entry) {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(path, nested, out)
			continue
		}
		if e, ok := classify(value); ok {
			out[path] = e
		}
	}
}

// classify coerces one decoded YAML leaf value into an entry. A YAML
// sequence of numbers becomes a distribution entry (possibly carrying
// units via a trailing string element, e.g. `[1, 2, 3, "m"]`); a bare
// number optionally carries units the same way via a two-element
// `[value, "units"]` sequence; everything else maps directly to a
// bool/string entry.
func classify(value any) (entry, bool) {
	switch v := value.(type) {
	case bool:
		b := v
		return entry{boolean: &b}, true
	case string:
		s := v
		return entry{str: &s}, true
	case int:
		return entry{numbers: []float64{float64(v)}}, true
	case int64:
		return entry{numbers: []float64{float64(v)}}, true
	case uint64:
		return entry{numbers: []float64{float64(v)}}, true
	case float64:
		return entry{numbers: []float64{v}}, true
	case []any:
		return classifySequence(v)
	default:
		return entry{}, false
	}
}

func classifySequence(items []any) (entry, bool) {
	if len(items) == 0 {
		return entry{}, false
	}
	units := joshvalue.Dimensionless
	body := items
	if tail, ok := items[len(items)-1].(string); ok {
		units = joshvalue.Normalize(tail)
		body = items[:len(items)-1]
	}
	numbers := make([]float64, 0, len(body))
	for _, item := range body {
		n, ok := toFloat(item)
		if !ok {
			return entry{}, false
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return entry{}, false
	}
	return entry{numbers: numbers, units: units}, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// GetConfigOptional implements the joshbridge.Bridge lookup contract: it
// reports ok=false (not an error) when name has no entry, letting the
// caller supply its own default.
func (p *Provider) GetConfigOptional(name string) (*joshvalue.EngineValue, bool) {
	e, ok := p.entries[name]
	if !ok {
		return nil, false
	}
	switch {
	case e.boolean != nil:
		return p.factory.BuildBoolean(*e.boolean), true
	case e.str != nil:
		return p.factory.BuildString(*e.str), true
	case len(e.numbers) == 1:
		return p.factory.BuildScalar(e.numbers[0], e.units), true
	case len(e.numbers) > 1:
		items := make([]*joshvalue.EngineValue, len(e.numbers))
		for i, n := range e.numbers {
			items[i] = p.factory.BuildScalar(n, e.units)
		}
		return p.factory.BuildRealizedDistribution(items, e.units), true
	default:
		return nil, false
	}
}

// Names returns every dotted config name this Provider can answer, for
// "did you mean" style resolution errors.
func (p *Provider) Names() []string {
	names := make([]string, 0, len(p.entries))
	for name := range p.entries {
		names = append(names, name)
	}
	return names
}
