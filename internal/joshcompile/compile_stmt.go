package joshcompile

import (
	"github.com/joshsim/joshc/internal/joshast"
	"github.com/joshsim/joshc/internal/joshmachine"
)

// CompileStmt maps a statement-shaped joshast.Node to a HandlerAction. Unlike
// CompileExpr, a statement need not leave a value on the stack (save_local)
// or may end the machine (return).
func (c *Context) CompileStmt(node joshast.Node) (joshmachine.HandlerAction, error) {
	switch n := node.(type) {
	case joshast.SaveLocalStmt:
		value, err := c.CompileExpr(n.Value)
		if err != nil {
			return nil, err
		}
		name := n.Name
		return seq(value, func(m *joshmachine.Machine) error { return m.SaveLocal(name) }), nil

	case joshast.ReturnStmt:
		value, err := c.CompileExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return seq(value, (*joshmachine.Machine).End), nil

	case joshast.ConditionalChain:
		return c.compileConditionalChain(n)

	case joshast.Body:
		return c.compileBody(n)

	default:
		return c.CompileExpr(node)
	}
}

// compileBody runs each statement in source order, stopping as soon as the
// machine ends (spec §4.5: "breaking out as soon as the machine is ended").
func (c *Context) compileBody(n joshast.Body) (joshmachine.HandlerAction, error) {
	actions := make([]joshmachine.HandlerAction, 0, len(n.Statements))
	for _, stmt := range n.Statements {
		action, err := c.CompileStmt(stmt)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return func(m *joshmachine.Machine) error {
		for _, action := range actions {
			if err := action(m); err != nil {
				return err
			}
			if m.IsEnded() {
				return nil
			}
		}
		return nil
	}, nil
}

// compileConditionalChain implements the ChainingConditionalBuilder (spec
// §4.8): each branch's selector runs in order via Branch, and the
// first whose condition is true runs its body, ending evaluation there. An
// else arm is modeled as a branch whose selector pushes the pre-computed
// true_value constant (spec §9's design note on the else-as-predicate
// trick), so the whole chain reduces to one nested sequence of
// machine.Branch calls with no special-casing for the final arm.
func (c *Context) compileConditionalChain(n joshast.ConditionalChain) (joshmachine.HandlerAction, error) {
	if len(n.Branches) == 0 && n.Else == nil {
		return func(*joshmachine.Machine) error { return nil }, nil
	}

	type compiledBranch struct {
		selector joshmachine.HandlerAction
		body     joshmachine.HandlerAction
	}
	branches := make([]compiledBranch, 0, len(n.Branches)+1)
	for _, b := range n.Branches {
		selector, err := c.CompileExpr(b.Selector)
		if err != nil {
			return nil, err
		}
		body, err := c.CompileStmt(b.Body)
		if err != nil {
			return nil, err
		}
		branches = append(branches, compiledBranch{selector, body})
	}
	if n.Else != nil {
		body, err := c.CompileStmt(n.Else)
		if err != nil {
			return nil, err
		}
		trueValue := c.trueValue
		branches = append(branches, compiledBranch{
			selector: func(m *joshmachine.Machine) error { m.Push(trueValue); return nil },
			body:     body,
		})
	}

	// Build right-to-left so each branch's "else" is "try the next branch".
	var rest joshmachine.HandlerAction = func(*joshmachine.Machine) error { return nil }
	for i := len(branches) - 1; i >= 0; i-- {
		b := branches[i]
		next := rest
		rest = func(m *joshmachine.Machine) error {
			if err := b.selector(m); err != nil {
				return err
			}
			return m.Branch(b.body, next)
		}
	}
	return rest, nil
}
