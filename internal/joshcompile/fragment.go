// Package joshcompile implements the compile visitor (spec §4.5, C5): a
// total mapping from joshast node kinds to Fragment values (spec §4.4, C4),
// the composable compiled-action tree the push-down machine (joshmachine)
// executes at run time.
package joshcompile

import (
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshmachine"
)

// FragmentKind discriminates the union of values the compile visitor
// returns (spec §4.4). Like joshast.Node, this is a closed tagged union
// rather than a set of virtual methods (spec §9).
type FragmentKind string

const (
	FragAction      FragmentKind = "action"
	FragCallable    FragmentKind = "callable"
	FragSelector    FragmentKind = "selector"
	FragGroup       FragmentKind = "group"
	FragState       FragmentKind = "state"
	FragEntity      FragmentKind = "entity"
	FragConversion  FragmentKind = "conversion"
	FragConversions FragmentKind = "conversions"
	FragProgram     FragmentKind = "program"
)

// Fragment is the visitor's return type. Only the field matching Kind is
// populated; the rest are zero.
type Fragment struct {
	Kind FragmentKind

	Action   joshmachine.HandlerAction
	Callable joshentity.CompiledCallable
	Selector joshentity.CompiledSelector
	Group    *joshentity.EventHandlerGroup
	// State carries one state stanza's name alongside its handler groups, so
	// an entity stanza visitor can fold it into the prototype's full group
	// table before States is discarded.
	State struct {
		Name   string
		Groups map[joshentity.EventKey]*joshentity.EventHandlerGroup
	}
	Entity      *joshentity.EntityPrototype
	Conversion  joshconvert.Conversion
	Conversions []joshconvert.Conversion
	Program     *Program
}

// actionFragment wraps a single compiled HandlerAction.
func actionFragment(a joshmachine.HandlerAction) Fragment {
	return Fragment{Kind: FragAction, Action: a}
}

// seq composes actions into one, run in order on the same machine — the
// "every compound action is defined by composing child actions sequentially
// on the same machine" rule of spec §4.4. A nil action is skipped so
// optional child nodes (e.g. LimitExpr's absent bound) compose cleanly.
func seq(actions ...joshmachine.HandlerAction) joshmachine.HandlerAction {
	return func(m *joshmachine.Machine) error {
		for _, a := range actions {
			if a == nil {
				continue
			}
			if err := a(m); err != nil {
				return err
			}
		}
		return nil
	}
}

// Program is the compiled-program contract of spec §6: "get_converter(),
// get_simulations() → store keyed by simulation name, get_prototypes()".
type Program struct {
	Converter   *joshconvert.Converter
	Simulations map[string]*joshentity.EntityPrototype
	Prototypes  map[string]*joshentity.EntityPrototype
}

func (p *Program) GetConverter() *joshconvert.Converter { return p.Converter }
func (p *Program) GetSimulations() map[string]*joshentity.EntityPrototype {
	return p.Simulations
}
func (p *Program) GetPrototypes() map[string]*joshentity.EntityPrototype { return p.Prototypes }
