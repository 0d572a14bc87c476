// Package expr builds random arithmetic expression trees over a pool of
// atoms and checks user-written expressions against a restricted grammar.
package expr

import (
	"math/rand/v2"
	"strconv"
)

// Op is the node kind of an expression tree.
type Op int

const (
	Atom Op = iota
	Add
	Sub
	Mult
)

// Symbol returns the operator as written in rendered expressions.
func (o Op) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	default:
		return ""
	}
}

// weightedOps favors multiplication and addition over subtraction.
var weightedOps = []Op{Mult, Mult, Sub, Add, Add}

// Expr is a binary expression tree. Leaves have Op == Atom and carry Value.
type Expr struct {
	Op    Op
	Left  *Expr
	Right *Expr
	Value int64
}

// Leaf returns an atom node.
func Leaf(v int64) *Expr { return &Expr{Op: Atom, Value: v} }

// Binary returns an operator node.
func Binary(op Op, left, right *Expr) *Expr {
	return &Expr{Op: op, Left: left, Right: right}
}

// Random builds a tree with exactly size leaves, each drawn from atoms.
// size must be at least 1 and atoms non-empty.
func Random(rng *rand.Rand, size int, atoms []int64) *Expr {
	if size <= 1 {
		return Leaf(atoms[rng.IntN(len(atoms))])
	}
	op := weightedOps[rng.IntN(len(weightedOps))]
	left := 1 + rng.IntN(size-1)
	return Binary(op, Random(rng, left, atoms), Random(rng, size-left, atoms))
}

// Render returns the fully parenthesized text of e. It is the canonical
// form used for equality.
func (e *Expr) Render() string {
	if e.Op == Atom {
		return strconv.FormatInt(e.Value, 10)
	}
	return "(" + e.Left.Render() + " " + e.Op.Symbol() + " " + e.Right.Render() + ")"
}

func (e *Expr) String() string { return e.Render() }

// Eval computes the value of e.
func (e *Expr) Eval() int64 {
	switch e.Op {
	case Add:
		return e.Left.Eval() + e.Right.Eval()
	case Sub:
		return e.Left.Eval() - e.Right.Eval()
	case Mult:
		return e.Left.Eval() * e.Right.Eval()
	default:
		return e.Value
	}
}

// Atoms returns the leaf values left to right.
func (e *Expr) Atoms() []int64 {
	if e.Op == Atom {
		return []int64{e.Value}
	}
	return append(e.Left.Atoms(), e.Right.Atoms()...)
}

// Size is the number of leaves.
func (e *Expr) Size() int {
	if e.Op == Atom {
		return 1
	}
	return e.Left.Size() + e.Right.Size()
}

// Equal compares by canonical rendering, not tree shape.
func (e *Expr) Equal(o *Expr) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.Render() == o.Render()
}
