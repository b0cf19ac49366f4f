package joshcompile

import (
	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshast"
	"github.com/joshsim/joshc/internal/joshmachine"
	"github.com/joshsim/joshc/internal/joshscope"
	"github.com/joshsim/joshc/internal/joshvalue"
)

func pos(p joshast.Position) josherrors.Position {
	return josherrors.Position{Line: p.Line, Column: p.Column}
}

// CompileExpr maps a joshast.Node to a HandlerAction that, run on a machine,
// leaves the node's value on top of the stack (spec §4.5). It is total over
// the expression-shaped node kinds; any other kind is a CompileError.
func (c *Context) CompileExpr(node joshast.Node) (joshmachine.HandlerAction, error) {
	switch n := node.(type) {
	case joshast.NumberLiteral:
		units := joshvalue.Units(n.Units)
		return func(m *joshmachine.Machine) error {
			m.Push(c.Factory.BuildScalar(n.Value, units))
			return nil
		}, nil

	case joshast.StringLiteral:
		return func(m *joshmachine.Machine) error {
			m.Push(c.Factory.BuildString(n.Value))
			return nil
		}, nil

	case joshast.BoolLiteral:
		return func(m *joshmachine.Machine) error {
			m.Push(c.Factory.BuildBoolean(n.Value))
			return nil
		}, nil

	case joshast.AllLiteral:
		return func(m *joshmachine.Machine) error {
			m.Push(c.allString)
			return nil
		}, nil

	case joshast.PositionLiteral:
		return c.compilePositionLiteral(n)

	case joshast.Identifier:
		return c.compileIdentifier(n)

	case joshast.BinaryExpr:
		return c.compileBinary(n)

	case joshast.UnaryExpr:
		return c.compileUnary(n)

	case joshast.DistributionStatExpr:
		return c.compileDistributionStat(n)

	case joshast.MapExpr:
		return c.compileMap(n)

	case joshast.SampleExpr:
		return c.compileSample(n)

	case joshast.RandExpr:
		return c.compileRand(n)

	case joshast.LimitExpr:
		return c.compileLimit(n)

	case joshast.CastExpr:
		return c.compileCast(n)

	case joshast.CreateEntityExpr:
		return c.compileCreateEntity(n)

	case joshast.AttributeExpr:
		return c.compileAttribute(n)

	case joshast.SpatialQueryExpr:
		return c.compileSpatialQuery(n)

	case joshast.ConfigRef:
		return c.compileConfigRef(n)

	case joshast.ExternalRef:
		return c.compileExternalRef(n)

	default:
		return nil, josherrors.Compile(pos(node.Pos()), "compile_expr", "unsupported expression node %T", node)
	}
}

// compileIdentifier builds a ValueResolver over the machine's current scope
// at every invocation (the scope differs per handler call) and resolves
// name against it immediately, pushing the result (spec §4.5).
func (c *Context) compileIdentifier(n joshast.Identifier) (joshmachine.HandlerAction, error) {
	name := n.Name
	return func(m *joshmachine.Machine) error {
		resolver := joshscope.NewValueResolver(m.Scope())
		value, err := resolver.Get(name)
		if err != nil {
			return err
		}
		m.Push(value)
		return nil
	}, nil
}

func (c *Context) compilePositionLiteral(n joshast.PositionLiteral) (joshmachine.HandlerAction, error) {
	val1, err := c.CompileExpr(n.Value1)
	if err != nil {
		return nil, err
	}
	val2, err := c.CompileExpr(n.Value2)
	if err != nil {
		return nil, err
	}
	type1, type2 := n.Type1, n.Type2
	return func(m *joshmachine.Machine) error {
		if err := val1(m); err != nil {
			return err
		}
		m.Push(c.Factory.BuildString(type1))
		if err := val2(m); err != nil {
			return err
		}
		m.Push(c.Factory.BuildString(type2))
		return m.MakePosition()
	}, nil
}

func (c *Context) compileBinary(n joshast.BinaryExpr) (joshmachine.HandlerAction, error) {
	left, err := c.CompileExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.CompileExpr(n.Right)
	if err != nil {
		return nil, err
	}
	op, err := binaryOp(n.Op)
	if err != nil {
		return nil, err
	}
	return seq(left, right, op), nil
}

func binaryOp(op joshast.BinaryOp) (joshmachine.HandlerAction, error) {
	switch op {
	case joshast.OpAdd:
		return (*joshmachine.Machine).Add, nil
	case joshast.OpSubtract:
		return (*joshmachine.Machine).Subtract, nil
	case joshast.OpMultiply:
		return (*joshmachine.Machine).Multiply, nil
	case joshast.OpDivide:
		return (*joshmachine.Machine).Divide, nil
	case joshast.OpPow:
		return (*joshmachine.Machine).Pow, nil
	case joshast.OpConcat:
		return (*joshmachine.Machine).Concat, nil
	case joshast.OpAnd:
		return (*joshmachine.Machine).And, nil
	case joshast.OpOr:
		return (*joshmachine.Machine).Or, nil
	case joshast.OpXor:
		return (*joshmachine.Machine).Xor, nil
	case joshast.OpEq:
		return (*joshmachine.Machine).Eq, nil
	case joshast.OpNeq:
		return (*joshmachine.Machine).Neq, nil
	case joshast.OpGt:
		return (*joshmachine.Machine).Gt, nil
	case joshast.OpGte:
		return (*joshmachine.Machine).Gte, nil
	case joshast.OpLt:
		return (*joshmachine.Machine).Lt, nil
	case joshast.OpLte:
		return (*joshmachine.Machine).Lte, nil
	case joshast.OpSlice:
		return (*joshmachine.Machine).Slice, nil
	default:
		return nil, josherrors.Compile(josherrors.Position{}, "binary_op", "unknown binary operator %q", op)
	}
}

func (c *Context) compileUnary(n joshast.UnaryExpr) (joshmachine.HandlerAction, error) {
	operand, err := c.CompileExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	var op joshmachine.HandlerAction
	switch n.Op {
	case joshast.OpAbs:
		op = (*joshmachine.Machine).Abs
	case joshast.OpCeil:
		op = (*joshmachine.Machine).Ceil
	case joshast.OpFloor:
		op = (*joshmachine.Machine).Floor
	case joshast.OpRound:
		op = (*joshmachine.Machine).Round
	case joshast.OpLog10:
		op = (*joshmachine.Machine).Log10
	case joshast.OpLn:
		op = (*joshmachine.Machine).Ln
	default:
		return nil, josherrors.Compile(pos(n.Pos()), "unary_op", "unknown unary operator %q", n.Op)
	}
	return seq(operand, op), nil
}

func (c *Context) compileDistributionStat(n joshast.DistributionStatExpr) (joshmachine.HandlerAction, error) {
	subject, err := c.CompileExpr(n.Subject)
	if err != nil {
		return nil, err
	}
	var op joshmachine.HandlerAction
	switch n.Stat {
	case joshast.StatCount:
		op = (*joshmachine.Machine).Count
	case joshast.StatMax:
		op = (*joshmachine.Machine).Max
	case joshast.StatMean:
		op = (*joshmachine.Machine).Mean
	case joshast.StatMin:
		op = (*joshmachine.Machine).Min
	case joshast.StatStd:
		op = (*joshmachine.Machine).Std
	case joshast.StatSum:
		op = (*joshmachine.Machine).Sum
	default:
		return nil, josherrors.Compile(pos(n.Pos()), "distribution_stat", "unknown statistic %q", n.Stat)
	}
	return seq(subject, op), nil
}

func (c *Context) compileMap(n joshast.MapExpr) (joshmachine.HandlerAction, error) {
	operand, err := c.CompileExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	fromLow, err := c.CompileExpr(n.FromLow)
	if err != nil {
		return nil, err
	}
	fromHigh, err := c.CompileExpr(n.FromHigh)
	if err != nil {
		return nil, err
	}
	toLow, err := c.CompileExpr(n.ToLow)
	if err != nil {
		return nil, err
	}
	toHigh, err := c.CompileExpr(n.ToHigh)
	if err != nil {
		return nil, err
	}
	var methodParam joshmachine.HandlerAction
	if n.MethodParam != nil {
		methodParam, err = c.CompileExpr(n.MethodParam)
		if err != nil {
			return nil, err
		}
	}
	strategy := n.Strategy
	hasMethodParam := n.MethodParam != nil
	return seq(
		operand, fromLow, fromHigh,
		toLow, toHigh,
		methodParam,
		func(m *joshmachine.Machine) error { return m.ApplyMap(strategy, hasMethodParam) },
	), nil
}

func (c *Context) compileSample(n joshast.SampleExpr) (joshmachine.HandlerAction, error) {
	subject, err := c.CompileExpr(n.Subject)
	if err != nil {
		return nil, err
	}
	count, err := c.compileCountOrSingle(n.Count)
	if err != nil {
		return nil, err
	}
	withReplacement := n.WithReplacement
	return seq(subject, count, func(m *joshmachine.Machine) error { return m.Sample(withReplacement) }), nil
}

func (c *Context) compileRand(n joshast.RandExpr) (joshmachine.HandlerAction, error) {
	low, err := c.CompileExpr(n.Low)
	if err != nil {
		return nil, err
	}
	high, err := c.CompileExpr(n.High)
	if err != nil {
		return nil, err
	}
	var op joshmachine.HandlerAction
	switch n.Op {
	case joshast.RandUniform:
		op = (*joshmachine.Machine).RandUniform
	case joshast.RandNorm:
		op = (*joshmachine.Machine).RandNorm
	default:
		return nil, josherrors.Compile(pos(n.Pos()), "rand_op", "unknown rand operator %q", n.Op)
	}
	return seq(low, high, op), nil
}

func (c *Context) compileLimit(n joshast.LimitExpr) (joshmachine.HandlerAction, error) {
	target, err := c.CompileExpr(n.Target)
	if err != nil {
		return nil, err
	}
	var upper, lower joshmachine.HandlerAction
	hasUpper, hasLower := n.Upper != nil, n.Lower != nil
	if hasUpper {
		upper, err = c.CompileExpr(n.Upper)
		if err != nil {
			return nil, err
		}
	}
	if hasLower {
		lower, err = c.CompileExpr(n.Lower)
		if err != nil {
			return nil, err
		}
	}
	return seq(target, lower, upper, func(m *joshmachine.Machine) error {
		return m.Bound(hasLower, hasUpper)
	}), nil
}

func (c *Context) compileCast(n joshast.CastExpr) (joshmachine.HandlerAction, error) {
	operand, err := c.CompileExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	newUnits := joshvalue.Units(n.NewUnits)
	force := n.Force
	return seq(operand, func(m *joshmachine.Machine) error { return m.Cast(newUnits, force) }), nil
}

func (c *Context) compileCreateEntity(n joshast.CreateEntityExpr) (joshmachine.HandlerAction, error) {
	count, err := c.compileCountOrSingle(n.Count)
	if err != nil {
		return nil, err
	}
	typeName := n.TypeName
	return seq(count, func(m *joshmachine.Machine) error { return m.CreateEntity(typeName) }), nil
}

// compileCountOrSingle compiles node, or — when node is nil (the bare
// `create T` / single-sample form) — pushes the pre-computed single_count
// constant directly (spec §4.5: "create T" and plain "sample" default to a
// count of one without re-deriving it).
func (c *Context) compileCountOrSingle(node joshast.Node) (joshmachine.HandlerAction, error) {
	if node == nil {
		return func(m *joshmachine.Machine) error {
			m.Push(c.singleCount)
			return nil
		}, nil
	}
	return c.CompileExpr(node)
}

func (c *Context) compileAttribute(n joshast.AttributeExpr) (joshmachine.HandlerAction, error) {
	subject, err := c.CompileExpr(n.Subject)
	if err != nil {
		return nil, err
	}
	path := n.Path
	return seq(subject, func(m *joshmachine.Machine) error { return m.PushAttribute(path) }), nil
}

func (c *Context) compileSpatialQuery(n joshast.SpatialQueryExpr) (joshmachine.HandlerAction, error) {
	distance, err := c.CompileExpr(n.Distance)
	if err != nil {
		return nil, err
	}
	path := n.Path
	return seq(distance, func(m *joshmachine.Machine) error { return m.ExecuteSpatialQuery(path) }), nil
}

func (c *Context) compileConfigRef(n joshast.ConfigRef) (joshmachine.HandlerAction, error) {
	name := n.Name
	if n.Default == nil {
		return func(m *joshmachine.Machine) error { return m.PushConfig(name) }, nil
	}
	fallback, err := c.CompileExpr(n.Default)
	if err != nil {
		return nil, err
	}
	return func(m *joshmachine.Machine) error {
		return m.PushConfigWithDefault(name, fallback)
	}, nil
}

func (c *Context) compileExternalRef(n joshast.ExternalRef) (joshmachine.HandlerAction, error) {
	name := n.Name
	if n.Step == nil {
		return func(m *joshmachine.Machine) error { return m.PushExternal(name, true) }, nil
	}
	step, err := c.CompileExpr(n.Step)
	if err != nil {
		return nil, err
	}
	return seq(step, func(m *joshmachine.Machine) error { return m.PushExternal(name, false) }), nil
}
