package expr

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
)

var (
	// ErrAtomMismatch means the literals used differ from the presented
	// atoms as a multiset.
	ErrAtomMismatch = errors.New("numbers used do not match the numbers given")

	// ErrWrongValue means the expression evaluates to something else.
	ErrWrongValue = errors.New("expression has the wrong value")
)

// SyntaxError wraps a failure to read the text as an expression at all.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("couldn't parse your answer: %v", e.Err) }

func (e *SyntaxError) Unwrap() error { return e.Err }

// DisallowedError names a construct outside the grammar of integer
// literals, +, -, * and parentheses.
type DisallowedError struct {
	Construct string
}

func (e *DisallowedError) Error() string {
	return fmt.Sprintf("%s is not allowed", e.Construct)
}

var decimalRe = regexp.MustCompile(`^[0-9]+$`)

// Syntax reports whether text is a syntactically valid expression,
// without restricting the constructs it uses.
func Syntax(text string) error {
	if _, err := parser.ParseExpr(text); err != nil {
		return &SyntaxError{Err: err}
	}
	return nil
}

// Parse reads text into a tree. Anything but decimal integer literals,
// binary +, -, * and parentheses is rejected with a *DisallowedError.
func Parse(text string) (*Expr, error) {
	node, err := parser.ParseExpr(text)
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return build(node)
}

// Verify checks a candidate answer: restricted grammar, every atom used
// exactly once, and value equal to target.
func Verify(text string, atoms []int64, target int64) error {
	e, err := Parse(text)
	if err != nil {
		return err
	}
	if !sameMultiset(e.Atoms(), atoms) {
		return ErrAtomMismatch
	}
	if e.Eval() != target {
		return ErrWrongValue
	}
	return nil
}

func build(n ast.Expr) (*Expr, error) {
	switch x := n.(type) {
	case *ast.ParenExpr:
		return build(x.X)

	case *ast.BasicLit:
		if x.Kind != token.INT || !decimalRe.MatchString(x.Value) {
			return nil, &DisallowedError{Construct: fmt.Sprintf("the literal %s", x.Value)}
		}
		v, err := strconv.ParseInt(x.Value, 10, 64)
		if err != nil {
			return nil, &DisallowedError{Construct: fmt.Sprintf("the literal %s", x.Value)}
		}
		return Leaf(v), nil

	case *ast.BinaryExpr:
		var op Op
		switch x.Op {
		case token.ADD:
			op = Add
		case token.SUB:
			op = Sub
		case token.MUL:
			op = Mult
		default:
			return nil, &DisallowedError{Construct: "the operator " + x.Op.String()}
		}
		left, err := build(x.X)
		if err != nil {
			return nil, err
		}
		right, err := build(x.Y)
		if err != nil {
			return nil, err
		}
		return Binary(op, left, right), nil

	case *ast.UnaryExpr:
		return nil, &DisallowedError{Construct: "unary " + x.Op.String()}
	case *ast.Ident:
		return nil, &DisallowedError{Construct: "the name " + x.Name}
	case *ast.CallExpr:
		return nil, &DisallowedError{Construct: "a function call"}
	default:
		return nil, &DisallowedError{Construct: "this kind of expression"}
	}
}

func sameMultiset(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int64]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
