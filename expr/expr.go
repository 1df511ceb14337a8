// Package expr parses and evaluates the restricted surface formulas
// accepted by zplot.
//
// The grammar is a left-associative chain of terms joined by '*' or '/':
//
//	formula := ["z" "="] term { op term }
//	op      := "*" | "/"
//	term    := "x" | "y" | decimal
//
// There is no precedence between '*' and '/': "a / b * c" is "(a / b) * c".
// Evaluation follows IEEE 754, so division by zero yields ±Inf or NaN and
// callers are expected to filter such values.
package expr

import (
	"strconv"
	"strings"
)

// Expr is a parsed formula node. It is implemented by Const, Var and Binary.
type Expr interface {
	String() string
	isExpr()
}

// Const is a numeric literal.
type Const struct {
	Value float64
}

func (Const) isExpr() {}

func (c Const) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// VarName identifies one of the two free variables.
type VarName byte

// Free variables.
const (
	X VarName = 'x'
	Y VarName = 'y'
)

// Var is a reference to x or y.
type Var struct {
	Name VarName
}

func (Var) isExpr() {}

func (v Var) String() string { return string(rune(v.Name)) }

// Op is a binary operator.
type Op byte

// Operators.
const (
	Mul Op = '*'
	Div Op = '/'
)

func (o Op) String() string { return string(rune(o)) }

// Binary applies Op to two operands.
type Binary struct {
	Op          Op
	Left, Right Expr
}

func (Binary) isExpr() {}

// String renders the node fully parenthesized, e.g. "((x * y) / 2)".
func (b Binary) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(b.Left.String())
	sb.WriteByte(' ')
	sb.WriteByte(byte(b.Op))
	sb.WriteByte(' ')
	sb.WriteString(b.Right.String())
	sb.WriteByte(')')
	return sb.String()
}

// Eval evaluates e with the given variable bindings.
// Results are not sanitized: NaN and ±Inf propagate to the caller.
func Eval(e Expr, x, y float64) float64 {
	switch n := e.(type) {
	case Const:
		return n.Value
	case Var:
		if n.Name == X {
			return x
		}
		return y
	case Binary:
		l := Eval(n.Left, x, y)
		r := Eval(n.Right, x, y)
		if n.Op == Mul {
			return l * r
		}
		return l / r
	}
	return 0
}

// Surface wraps a parsed expression so it can be handed to samplers that
// only need point evaluation.
type Surface struct {
	Expr Expr
}

// Eval evaluates the wrapped expression at (x, y).
func (s Surface) Eval(x, y float64) float64 {
	return Eval(s.Expr, x, y)
}

// Func adapts a plain function to the evaluator interface used by the
// samplers. It is meant for surfaces outside the formula grammar, such as
// test fixtures.
type Func func(x, y float64) float64

// Eval calls f(x, y).
func (f Func) Eval(x, y float64) float64 { return f(x, y) }
