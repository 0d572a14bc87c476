package variant

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/abhisek/cogtests/internal/question"
)

// Multiplication asks for the product of its multiplicands.
type Multiplication struct {
	question.Exact[int64]
	Multiplicands []int64
}

// NewMultiplication returns the question for the given multiplicands.
func NewMultiplication(multiplicands ...int64) *Multiplication {
	product := int64(1)
	for _, m := range multiplicands {
		product *= m
	}
	return &Multiplication{
		Exact:         question.Exact[int64]{Value: product},
		Multiplicands: multiplicands,
	}
}

func (q *Multiplication) Kind() string { return KindMultiplication }

func (q *Multiplication) Key() string {
	return encodeKey(multiplicationKey{Multiplicands: q.Multiplicands})
}

func (q *Multiplication) Render() string {
	parts := make([]string, len(q.Multiplicands))
	for i, m := range q.Multiplicands {
		parts[i] = strconv.FormatInt(m, 10)
	}
	return fmt.Sprintf("What is %s?", strings.Join(parts, " * "))
}

// Parse accepts a single integer literal only.
func (q *Multiplication) Parse(raw string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, &question.ParseError{Reason: "integer", Err: err}
	}
	return n, nil
}

type multiplicationKey struct {
	Multiplicands []int64 `json:"multiplicands"`
}

// MultiplicationFactory draws N multiplicands uniformly from [Lower, Upper].
type MultiplicationFactory struct {
	Lower, Upper int64
	N            int
}

// DefaultMultiplication returns two multiplicands in 11..99.
func DefaultMultiplication() MultiplicationFactory {
	return MultiplicationFactory{Lower: 11, Upper: 99, N: 2}
}

func (f MultiplicationFactory) Kind() string { return KindMultiplication }

func (f MultiplicationFactory) New(rng *rand.Rand) (question.Question, error) {
	if f.N < 1 || f.Upper < f.Lower {
		return nil, fmt.Errorf("multiplication: invalid parameters %+v", f)
	}
	ms := make([]int64, f.N)
	for i := range ms {
		ms[i] = f.Lower + rng.Int64N(f.Upper-f.Lower+1)
	}
	return NewMultiplication(ms...), nil
}

func (f MultiplicationFactory) Decode(key string) (question.Question, error) {
	var k multiplicationKey
	if err := decodeKey(key, &k); err != nil {
		return nil, err
	}
	if len(k.Multiplicands) == 0 {
		return nil, fmt.Errorf("multiplication: no multiplicands")
	}
	return NewMultiplication(k.Multiplicands...), nil
}
