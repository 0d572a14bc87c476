// Package stringop implements the string transforms behind analogy
// questions: five atomic operations and ordered chains of them.
package stringop

import (
	"fmt"
	"strings"
)

// Op transforms a string. Atomic ops are comparable values; use Equal to
// compare ops that may be composites.
type Op interface {
	Apply(s string) string
	// Size is 1 for atomic ops and the sum of the children for composites.
	Size() int
	String() string

	transform(r []rune)
}

// Transposition swaps positions I and J.
type Transposition struct{ I, J int }

// Shift advances the symbol at position I by D steps around Alphabet.
type Shift struct {
	I, D     int
	Alphabet string
}

// Exchange swaps every occurrence of A with B and vice versa.
type Exchange struct{ A, B rune }

// Rotation rotates the whole string left by D positions.
type Rotation struct{ D int }

// Reflection reverses the string.
type Reflection struct{}

// Composite applies Ops in order.
type Composite struct{ Ops []Op }

func (t Transposition) Apply(s string) string { return apply(t, s) }
func (t Shift) Apply(s string) string         { return apply(t, s) }
func (t Exchange) Apply(s string) string      { return apply(t, s) }
func (t Rotation) Apply(s string) string      { return apply(t, s) }
func (t Reflection) Apply(s string) string    { return apply(t, s) }
func (c Composite) Apply(s string) string     { return apply(c, s) }

func (Transposition) Size() int { return 1 }
func (Shift) Size() int         { return 1 }
func (Exchange) Size() int      { return 1 }
func (Rotation) Size() int      { return 1 }
func (Reflection) Size() int    { return 1 }

func (c Composite) Size() int {
	n := 0
	for _, op := range c.Ops {
		n += op.Size()
	}
	return n
}

func (t Transposition) String() string { return fmt.Sprintf("Swap(%d,%d)", t.I, t.J) }
func (t Shift) String() string         { return fmt.Sprintf("Shift(%d,%d)", t.I, t.D) }
func (t Exchange) String() string      { return fmt.Sprintf("Exchange(%c,%c)", t.A, t.B) }
func (t Rotation) String() string      { return fmt.Sprintf("Rotate(%d)", t.D) }
func (Reflection) String() string      { return "Reflect" }

func (c Composite) String() string {
	parts := make([]string, len(c.Ops))
	for i, op := range c.Ops {
		parts[i] = op.String()
	}
	return "(" + strings.Join(parts, ".") + ")"
}

func (t Transposition) transform(r []rune) {
	if !inRange(t.I, r) || !inRange(t.J, r) {
		return
	}
	r[t.I], r[t.J] = r[t.J], r[t.I]
}

func (t Shift) transform(r []rune) {
	if !inRange(t.I, r) {
		return
	}
	alpha := []rune(t.Alphabet)
	pos := indexRune(alpha, r[t.I])
	if pos < 0 {
		return
	}
	r[t.I] = alpha[mod(pos+t.D, len(alpha))]
}

func (t Exchange) transform(r []rune) {
	for i, c := range r {
		switch c {
		case t.A:
			r[i] = t.B
		case t.B:
			r[i] = t.A
		}
	}
}

func (t Rotation) transform(r []rune) {
	if len(r) == 0 {
		return
	}
	src := append([]rune(nil), r...)
	for i := range r {
		r[i] = src[mod(i+t.D, len(src))]
	}
}

func (Reflection) transform(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

func (c Composite) transform(r []rune) {
	for _, op := range c.Ops {
		op.transform(r)
	}
}

// Equal reports whether a and b are the same operation with the same
// parameters.
func Equal(a, b Op) bool {
	ca, aok := a.(Composite)
	cb, bok := b.(Composite)
	if aok != bok {
		return false
	}
	if !aok {
		return a == b
	}
	if len(ca.Ops) != len(cb.Ops) {
		return false
	}
	for i := range ca.Ops {
		if !Equal(ca.Ops[i], cb.Ops[i]) {
			return false
		}
	}
	return true
}

func apply(op Op, s string) string {
	r := []rune(s)
	op.transform(r)
	return string(r)
}

func inRange(i int, r []rune) bool { return i >= 0 && i < len(r) }

func indexRune(rs []rune, c rune) int {
	for i, r := range rs {
		if r == c {
			return i
		}
	}
	return -1
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
