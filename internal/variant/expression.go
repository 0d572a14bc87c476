package variant

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/cogtests/internal/expr"
	"github.com/abhisek/cogtests/internal/question"
)

// Expression asks for an arithmetic expression that uses every atom
// exactly once and evaluates to Target.
type Expression struct {
	Tree   *expr.Expr
	Target int64
	// Atoms is the presentation order. It is not part of the identity.
	Atoms []int64
}

// NewExpression poses tree, presenting its atoms in the given order. A nil
// order presents them ascending.
func NewExpression(tree *expr.Expr, order []int64) *Expression {
	atoms := order
	if atoms == nil {
		atoms = tree.Atoms()
		slices.Sort(atoms)
	}
	return &Expression{Tree: tree, Target: tree.Eval(), Atoms: atoms}
}

func (q *Expression) Kind() string { return KindExpression }

func (q *Expression) Key() string {
	return encodeKey(expressionKey{Expr: q.Tree.Render()})
}

// CorrectAnswer is one valid construction.
func (q *Expression) CorrectAnswer() any { return q.Tree.Render() }

func (q *Expression) Render() string {
	return fmt.Sprintf("Make %d out of the numbers %s", q.Target, q.atomList())
}

// Parse only rejects text that is not an expression at all. Grammar and
// atom use are judged by Check.
func (q *Expression) Parse(raw string) (any, error) {
	text := strings.TrimSpace(raw)
	if err := expr.Syntax(text); err != nil {
		return nil, &question.ParseError{Reason: "syntax", Err: err}
	}
	return text, nil
}

func (q *Expression) Check(answer any) bool {
	s, ok := answer.(string)
	if !ok {
		return false
	}
	return expr.Verify(s, q.Atoms, q.Target) == nil
}

func (q *Expression) Complain(out question.Output, err error) {
	var se *expr.SyntaxError
	if errors.As(err, &se) {
		out.Println(se.Error())
		return
	}
	complainWith(out, err)
}

func (q *Expression) GiveAway(out question.Output) {
	out.Println(fmt.Sprintf("A correct answer was %s", q.Tree.Render()))
}

func (q *Expression) Clarify(out question.Output) {
	out.Paragraph(fmt.Sprintf("Find an arithmetic expression using the operators +, *, -, parentheses, and the numbers %s each exactly once, whose value is %d", q.atomList(), q.Target))
	out.Println("")
	out.Paragraph("Note that you can't use - to make a negative number directly, e.g. -3*4, and you can't use / or ^.")
}

func (q *Expression) atomList() string {
	parts := make([]string, len(q.Atoms))
	for i, a := range q.Atoms {
		parts[i] = strconv.FormatInt(a, 10)
	}
	return strings.Join(parts, ", ")
}

type expressionKey struct {
	Expr string `json:"expr"`
}

// ExpressionFactory builds trees with Size leaves drawn from Atoms.
type ExpressionFactory struct {
	Size  int
	Atoms []int64
}

// DefaultExpression returns five atoms drawn from 1..12.
func DefaultExpression() ExpressionFactory {
	atoms := make([]int64, 12)
	for i := range atoms {
		atoms[i] = int64(i + 1)
	}
	return ExpressionFactory{Size: 5, Atoms: atoms}
}

func (f ExpressionFactory) Kind() string { return KindExpression }

func (f ExpressionFactory) New(rng *rand.Rand) (question.Question, error) {
	if f.Size < 1 || len(f.Atoms) == 0 {
		return nil, fmt.Errorf("expression: invalid parameters %+v", f)
	}
	tree := expr.Random(rng, f.Size, f.Atoms)
	order := tree.Atoms()
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return NewExpression(tree, order), nil
}

func (f ExpressionFactory) Decode(key string) (question.Question, error) {
	var k expressionKey
	if err := decodeKey(key, &k); err != nil {
		return nil, err
	}
	tree, err := expr.Parse(k.Expr)
	if err != nil {
		return nil, err
	}
	return NewExpression(tree, nil), nil
}
