package expr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Sentinel parse failures, wrapped by ParseError.
var (
	ErrEmpty           = errors.New("expr: empty expression")
	ErrInvalidToken    = errors.New("expr: invalid token")
	ErrUnexpectedToken = errors.New("expr: unexpected token")
	ErrMissingOperand  = errors.New("expr: missing operand")
)

// ParseError describes why a formula was rejected.
type ParseError struct {
	Input string // formula as given to Parse
	Token string // offending token, empty for ErrEmpty
	Index int    // token index, -1 when not tied to a token
	Err   error  // one of the sentinel errors above
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v in %q", e.Err, e.Input)
	}
	return fmt.Sprintf("%v %q at token %d in %q", e.Err, e.Token, e.Index, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	prefixRE  = regexp.MustCompile(`^\s*z\s*=\s*`)
	decimalRE = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// Parse parses a formula such as "z = x * y", "x*y" or "x / 2 * y".
// The optional "z =" prefix is stripped before tokenization.
func Parse(text string) (Expr, error) {
	rhs := prefixRE.ReplaceAllLiteralString(text, "")
	toks := tokenize(rhs)
	if len(toks) == 0 {
		return nil, &ParseError{Input: text, Index: -1, Err: ErrEmpty}
	}

	left, err := parseTerm(text, toks, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(toks); i += 2 {
		op, ok := toOp(toks[i])
		if !ok {
			return nil, &ParseError{Input: text, Token: toks[i], Index: i, Err: ErrUnexpectedToken}
		}
		if i+1 >= len(toks) {
			return nil, &ParseError{Input: text, Token: toks[i], Index: i, Err: ErrMissingOperand}
		}
		right, err := parseTerm(text, toks, i+1)
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Expr {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

// tokenize splits on whitespace and isolates '*' and '/' so that
// "x*y" and "x * y" yield the same tokens.
func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '*' || r == '/':
			flush()
			toks = append(toks, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func parseTerm(input string, toks []string, i int) (Expr, error) {
	tok := toks[i]
	switch tok {
	case "x":
		return Var{Name: X}, nil
	case "y":
		return Var{Name: Y}, nil
	case "*", "/":
		// An operator where a term belongs means its left operand is absent.
		return nil, &ParseError{Input: input, Token: tok, Index: i, Err: ErrMissingOperand}
	}
	if !decimalRE.MatchString(tok) {
		return nil, &ParseError{Input: input, Token: tok, Index: i, Err: ErrInvalidToken}
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		// Out-of-range literals such as 1e999.
		return nil, &ParseError{Input: input, Token: tok, Index: i, Err: ErrInvalidToken}
	}
	return Const{Value: v}, nil
}

func toOp(tok string) (Op, bool) {
	switch tok {
	case "*":
		return Mul, true
	case "/":
		return Div, true
	}
	return 0, false
}
