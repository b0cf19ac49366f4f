// Package josherrors formats and classifies the error kinds produced while
// compiling and evaluating a Josh program: ParseError, CompileError,
// StateError, DomainError, UnitsError and ResolutionError.
package josherrors

import (
	"fmt"
	"sort"
	"strings"
)

// Position locates an error in source text. Line and Column are 1-indexed;
// a zero Position means "no position available" (e.g. a runtime error raised
// deep inside the machine, far from any syntax node).
type Position struct {
	Line   int
	Column int
}

// IsZero reports whether p carries no location information.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

func (p Position) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind identifies the category of a Josh error, matching spec §7.
type Kind string

const (
	KindParse      Kind = "ParseError"
	KindCompile    Kind = "CompileError"
	KindState      Kind = "StateError"
	KindDomain     Kind = "DomainError"
	KindUnits      Kind = "UnitsError"
	KindResolution Kind = "ResolutionError"
)

// JoshError is the single concrete error type used throughout the
// interpreter. Every Josh error carries a Kind, a human message, an optional
// Position, and an optional operator/attribute summary for diagnostics.
type JoshError struct {
	ErrKind Kind
	Message string
	Pos     Position

	// Op names the operator or construct involved (e.g. "add", "create_entity"),
	// when applicable. Empty for errors that aren't operator-shaped.
	Op string

	// Available lists the scope's attribute names, populated only for
	// ResolutionError so callers can render a "did you mean" style hint.
	Available []string

	// Path is the dotted resolver path that failed to resolve, populated only
	// for ResolutionError.
	Path string
}

// Error implements the error interface, formatting in the teacher's
// caret-less single-line style (CLI formatting with source context is a
// collaborator's concern, not this package's).
func (e *JoshError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.ErrKind))
	if !e.Pos.IsZero() {
		fmt.Fprintf(&sb, " at %s", e.Pos)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Op != "" {
		fmt.Fprintf(&sb, " (op=%s)", e.Op)
	}
	if e.ErrKind == KindResolution && e.Path != "" {
		fmt.Fprintf(&sb, " (path=%q)", e.Path)
		if len(e.Available) > 0 {
			sorted := append([]string(nil), e.Available...)
			sort.Strings(sorted)
			fmt.Fprintf(&sb, " (available: %s)", strings.Join(sorted, ", "))
		}
		if strings.HasPrefix(e.Path, "meta.") {
			attr := strings.TrimPrefix(e.Path, "meta.")
			fmt.Fprintf(&sb, " — declare %q on the simulation", attr)
		}
	}
	return sb.String()
}

// Kind reports the error's category.
func (e *JoshError) Kind() Kind {
	return e.ErrKind
}

func newErr(kind Kind, op string, pos Position, format string, args ...any) *JoshError {
	return &JoshError{
		ErrKind: kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		Op:      op,
	}
}

// Parse wraps an error surfaced by the (external) grammar/parser collaborator
// as a fatal-prefixed ParseError, per spec §7.
func Parse(pos Position, format string, args ...any) *JoshError {
	return newErr(KindParse, "", pos, format, args...)
}

// Compile reports a mismatched stanza, unknown entity type, unknown
// operator, or other error detected while compiling the syntax tree.
func Compile(pos Position, op string, format string, args ...any) *JoshError {
	return newErr(KindCompile, op, pos, format, args...)
}

// State reports machine/bridge/program misuse: rebinding a set-once value,
// using a machine past `end`, nesting conversion groups, or mismanaging an
// entity's open substep.
func State(op string, format string, args ...any) *JoshError {
	return newErr(KindState, op, Position{}, format, args...)
}

// Domain reports an operator applied outside its domain: log of a
// non-positive number, a distribution passed to abs/ceil/floor/round/ln/
// log10, statistics requested of a virtualized distribution, or a negative
// entity-creation count.
func Domain(op string, format string, args ...any) *JoshError {
	return newErr(KindDomain, op, Position{}, format, args...)
}

// Units reports a conversion group that needed a conversion the Converter
// does not have registered.
func Units(source, destination string) *JoshError {
	return newErr(KindUnits, "convert", Position{}, "no conversion registered from %q to %q", source, destination)
}

// Resolution reports a ValueResolver that could not locate any prefix of its
// path in the given scope. available is the scope's attribute listing, used
// to build a "did you mean" hint; path is the full dotted path that failed.
func Resolution(path string, available []string) *JoshError {
	e := newErr(KindResolution, "resolve", Position{}, "cannot resolve %q", path)
	e.Path = path
	e.Available = available
	return e
}

// Is reports whether err is a *JoshError of the given kind. It follows the
// standard library errors.Is convention loosely: only direct *JoshError
// values are matched, since the interpreter never wraps these errors.
func Is(err error, kind Kind) bool {
	je, ok := err.(*JoshError)
	return ok && je.ErrKind == kind
}
