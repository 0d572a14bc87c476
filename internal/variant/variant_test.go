package variant

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cogtests/internal/dictionary"
	"github.com/abhisek/cogtests/internal/expr"
	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/question/questiontest"
	"github.com/abhisek/cogtests/internal/stringop"
)

func newRNG(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed+1)) }

func parseAndCheck(t *testing.T, q question.Question, raw string) (bool, error) {
	t.Helper()
	answer, err := q.Parse(raw)
	if err != nil {
		return false, err
	}
	return q.Check(answer), nil
}

func TestMultiplication(t *testing.T) {
	q := NewMultiplication(7, 8)
	assert.Equal(t, "What is 7 * 8?", q.Render())
	assert.Equal(t, int64(56), q.CorrectAnswer())

	ok, err := parseAndCheck(t, q, "56")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = parseAndCheck(t, q, " 54 ")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = parseAndCheck(t, q, "7*8")
	var pe *question.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "integer", pe.Reason)
}

func TestMultiplicationFactory(t *testing.T) {
	rng := newRNG(1)
	f := DefaultMultiplication()
	for range 200 {
		q, err := f.New(rng)
		require.NoError(t, err)
		m := q.(*Multiplication)
		require.Len(t, m.Multiplicands, 2)
		for _, v := range m.Multiplicands {
			assert.GreaterOrEqual(t, v, int64(11))
			assert.LessOrEqual(t, v, int64(99))
		}
		assert.Equal(t, m.Multiplicands[0]*m.Multiplicands[1], q.CorrectAnswer())
	}

	_, err := MultiplicationFactory{Lower: 5, Upper: 1, N: 2}.New(rng)
	assert.Error(t, err)
}

func TestIdentityAcrossInstances(t *testing.T) {
	words := dictionary.FromWords("listen", "silent", "enlist")
	op := stringop.Composite{Ops: []stringop.Op{stringop.Reflection{}, stringop.Transposition{I: 0, J: 2}}}
	a1, err := NewAnalogy(op, []string{"abcabc"}, "aabbcc", "abc")
	require.NoError(t, err)
	a2, err := NewAnalogy(op, []string{"abcabc"}, "aabbcc", "abc")
	require.NoError(t, err)

	tree := expr.Binary(expr.Add, expr.Leaf(3), expr.Leaf(4))
	tests := []struct {
		name   string
		a, b   question.Question
		differ question.Question
	}{
		{"multiplication", NewMultiplication(7, 8), NewMultiplication(7, 8), NewMultiplication(8, 7)},
		{"anagram", NewAnagram(words, "listen", "tsline"), NewAnagram(words, "listen", "tsline"), NewAnagram(words, "listen", "nstile")},
		{"analogy", a1, a2, mustAnalogy(t, op, []string{"abcabc"}, "ccbbaa")},
		{"expression", NewExpression(tree, []int64{3, 4}), NewExpression(tree, []int64{4, 3}), NewExpression(expr.Binary(expr.Add, expr.Leaf(4), expr.Leaf(3)), nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.a.Kind(), tt.b.Kind())
			assert.Equal(t, tt.a.Key(), tt.b.Key())
			assert.NotEqual(t, tt.a.Key(), tt.differ.Key())
		})
	}
}

func mustAnalogy(t *testing.T, op stringop.Op, examples []string, test string) *Analogy {
	t.Helper()
	q, err := NewAnalogy(op, examples, test, "abc")
	require.NoError(t, err)
	return q
}

func TestRegistryRoundTrip(t *testing.T) {
	rng := newRNG(7)
	reg := Defaults(dictionary.New(""))
	assert.Equal(t, []string{KindMultiplication, KindAnagram, KindAnalogy, KindExpression}, reg.Kinds())

	for _, kind := range reg.Kinds() {
		f, ok := reg.Get(kind)
		require.True(t, ok)
		for range 25 {
			q, err := f.New(rng)
			require.NoError(t, err, kind)
			back, err := reg.Decode(q.Kind(), q.Key())
			require.NoError(t, err, kind)
			assert.Equal(t, q.Key(), back.Key(), kind)
			assert.Equal(t, q.CorrectAnswer(), back.CorrectAnswer(), kind)
		}
	}
}

func TestRegistryErrors(t *testing.T) {
	reg := Defaults(dictionary.FromWords("stone"))

	_, err := reg.Decode("riddle", "{}")
	assert.True(t, errors.Is(err, ErrUnknownKind))

	_, err = reg.Decode(KindMultiplication, "not json")
	assert.Error(t, err)

	_, err = reg.Decode(KindAnagram, `{"original":"stone","scrambled":"tones1"}`)
	assert.Error(t, err)

	_, err = reg.Decode(KindExpression, `{"expr":"(3 / 4)"}`)
	assert.Error(t, err)

	_, err = reg.Decode(KindAnalogy, `{"op":{"op":"twist"},"examples":[],"test":"abc","alphabet":"abc"}`)
	assert.Error(t, err)
}

func TestAnagramCheck(t *testing.T) {
	words := dictionary.FromWords("listen", "silent", "enlist", "tinsel", "stone")
	q := NewAnagram(words, "listen", "tsline")
	assert.Equal(t, "Anagram tsline.", q.Render())

	tests := []struct {
		answer string
		want   bool
	}{
		{"listen", true},
		{"silent", true},
		{"enlist", true},
		{" tinsel ", true},
		{"tsline", false}, // permutation, not a word
		{"stone", false},  // word, not a permutation
		{"listens", false},
		{"", false},
	}
	for _, tt := range tests {
		ok, err := parseAndCheck(t, q, tt.answer)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, tt.answer)
	}
}

func TestAnagramFromOtherWordList(t *testing.T) {
	reg := Defaults(dictionary.FromWords("stone", "notes"))
	q, err := reg.Decode(KindAnagram, `{"original":"lemon","scrambled":"melon"}`)
	require.NoError(t, err)

	ok, err := parseAndCheck(t, q, "lemon")
	require.NoError(t, err)
	assert.True(t, ok, "the original word is always accepted")

	ok, err = parseAndCheck(t, q, "melon")
	require.NoError(t, err)
	assert.False(t, ok, "other permutations still need the local dictionary")
}

func TestAnagramFactory(t *testing.T) {
	words := dictionary.FromWords("stone", "notes", "lemon")
	rng := newRNG(3)
	for range 50 {
		q, err := AnagramFactory{Dictionary: words}.New(rng)
		require.NoError(t, err)
		a := q.(*Anagram)
		assert.True(t, words.Contains(a.Original))
		assert.True(t, sameLetters(a.Original, a.Scrambled))
		assert.True(t, q.Check(a.Original))
	}

	_, err := AnagramFactory{}.New(rng)
	assert.Error(t, err)
	_, err = AnagramFactory{Dictionary: dictionary.FromWords()}.New(rng)
	assert.ErrorIs(t, err, dictionary.ErrEmpty)
}

func TestAnalogyExamplesReproduce(t *testing.T) {
	rng := newRNG(11)
	f := DefaultAnalogy()
	for range 200 {
		q, err := f.New(rng)
		require.NoError(t, err)
		a := q.(*Analogy)
		require.Len(t, a.Examples, f.Examples)
		assert.Equal(t, f.Length, a.Op.Size())
		for _, p := range a.Examples {
			assert.Equal(t, p.Label, a.Op.Apply(p.Example))
			assert.Len(t, p.Example, f.Size)
		}
		assert.Equal(t, a.Op.Apply(a.Test), a.CorrectAnswer())
		assert.True(t, q.Check(a.CorrectAnswer()))
	}
}

func TestAnalogyParse(t *testing.T) {
	q := mustAnalogy(t, stringop.Reflection{}, []string{"aabbc"}, "abcab")
	assert.Equal(t, "Complete the pattern:\naabbc --> cbbaa\nabcab --> ?", q.Render())

	tests := []struct {
		raw    string
		reason string
	}{
		{"bacba", ""},
		{" bacba ", ""},
		{"bacb", "length"},
		{"bacbaa", "length"},
		{"bacbd", "charset"},
		{"BACBA", "charset"},
	}
	for _, tt := range tests {
		_, err := q.Parse(tt.raw)
		if tt.reason == "" {
			assert.NoError(t, err, tt.raw)
			continue
		}
		var pe *question.ParseError
		require.ErrorAs(t, err, &pe, tt.raw)
		assert.Equal(t, tt.reason, pe.Reason, tt.raw)
	}

	ok, err := parseAndCheck(t, q, "bacba")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = parseAndCheck(t, q, "abcab")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAnalogyFeedback(t *testing.T) {
	q := mustAnalogy(t, stringop.Reflection{}, []string{"aabbc"}, "abcab")
	out := &questiontest.Recorder{}
	eng := question.NewEngine(questiontest.NewScript("ab", "abcdd", "help", "pass"), out)

	in, err := eng.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, question.StatusGiveUp, in.Status)
	assert.Empty(t, in.Responses)
	assert.Equal(t, 1, out.Count("You should enter a string of length 5 (not 2)"))
	assert.Equal(t, 1, out.Count("Your string should use only letters a, b, c"))
	assert.Equal(t, 1, out.Count("a->b->c->a"))
	assert.Equal(t, 1, out.Count("The hidden transformation was Reflect"))
	assert.Equal(t, 1, out.Count("The answer was bacba"))
}

func TestExpressionCheck(t *testing.T) {
	// ((3 * 4) + (5 - 2)) = 15
	tree := expr.Binary(expr.Add,
		expr.Binary(expr.Mult, expr.Leaf(3), expr.Leaf(4)),
		expr.Binary(expr.Sub, expr.Leaf(5), expr.Leaf(2)))
	q := NewExpression(tree, []int64{5, 3, 2, 4})
	assert.Equal(t, "Make 15 out of the numbers 5, 3, 2, 4", q.Render())

	tests := []struct {
		raw  string
		want bool
	}{
		{"((3 * 4) + (5 - 2))", true},
		{"3*4+5-2", true},
		{"5*3+4-2*2", false}, // reuses 2
		{"5*3+4-4", false},   // wrong atoms
		{"3*4+5", false},     // omits 2
		{"15", false},        // restates target
		{"3*4+5-2+0", false},
		{"(3*4*2-5)/1", false},
		{"3*4+5+2", false}, // wrong value
	}
	for _, tt := range tests {
		ok, err := parseAndCheck(t, q, tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, ok, tt.raw)
	}

	_, err := q.Parse("3 * (4")
	var pe *question.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "syntax", pe.Reason)
}

func TestExpressionFactory(t *testing.T) {
	rng := newRNG(5)
	f := DefaultExpression()
	for range 200 {
		q, err := f.New(rng)
		require.NoError(t, err)
		e := q.(*Expression)
		assert.Equal(t, f.Size, e.Tree.Size())
		assert.Len(t, e.Atoms, f.Size)
		assert.Equal(t, e.Tree.Eval(), e.Target)
		assert.True(t, q.Check(e.Tree.Render()))
	}
}

func TestExpressionFeedback(t *testing.T) {
	tree := expr.Binary(expr.Mult, expr.Leaf(6), expr.Leaf(7))
	q := NewExpression(tree, nil)
	out := &questiontest.Recorder{}
	eng := question.NewEngine(questiontest.NewScript("6 *", "explain", "6+7", "give up"), out)

	in, err := eng.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, question.StatusGiveUp, in.Status)
	require.Len(t, in.Responses, 1)
	assert.Equal(t, 1, out.Count("couldn't parse your answer"))
	assert.Equal(t, 1, out.Count("the numbers 6, 7 each exactly once, whose value is 42"))
	assert.Equal(t, 1, out.Count("[-] Incorrect!"))
	assert.Equal(t, 1, out.Count("A correct answer was (6 * 7)"))
	assert.True(t, strings.HasPrefix(in.Responses[0].Raw, "6+7"))
}
