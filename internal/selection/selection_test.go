package selection

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/variant"
)

func newRNG(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, 99)) }

// countingFactory wraps a factory and counts fresh generations.
type countingFactory struct {
	variant.Factory
	made int
	err  error
}

func (f *countingFactory) New(rng *rand.Rand) (question.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.made++
	return f.Factory.New(rng)
}

func TestPoolTakeFavorsHighestCount(t *testing.T) {
	q := variant.NewMultiplication(12, 13)
	r := variant.NewMultiplication(14, 15)

	for seed := range uint64(50) {
		p := NewPool()
		p.Add(q, 3)
		p.Add(r, 2)
		p.Add(variant.NewMultiplication(12, 13), 2) // same question, counts merge
		require.Equal(t, 2, p.Len())
		require.Equal(t, 5, p.Count(q))

		rng := newRNG(seed)
		first, ok := p.Take(rng)
		require.True(t, ok)
		assert.Equal(t, q.Key(), first.Key())
		assert.Equal(t, 0, p.Count(q))

		second, ok := p.Take(rng)
		require.True(t, ok)
		assert.Equal(t, r.Key(), second.Key())

		_, ok = p.Take(rng)
		assert.False(t, ok)
	}
}

func TestPoolTakeUniformAmongTies(t *testing.T) {
	seen := make(map[string]int)
	for seed := range uint64(200) {
		p := NewPool()
		p.Add(variant.NewMultiplication(11, 11), 4)
		p.Add(variant.NewMultiplication(22, 22), 4)
		p.Add(variant.NewMultiplication(33, 33), 1)
		q, ok := p.Take(newRNG(seed))
		require.True(t, ok)
		seen[q.Key()]++
	}
	assert.Len(t, seen, 2)
	for _, n := range seen {
		assert.Greater(t, n, 50)
	}
}

func TestCorpusAddGroupsByKind(t *testing.T) {
	c := Corpus{}
	c.Add(variant.NewMultiplication(11, 12), 1)
	c.Add(variant.NewMultiplication(11, 13), 1)
	c.Add(variant.NewMultiplication(11, 12), 1)
	require.Contains(t, c, variant.KindMultiplication)
	assert.Equal(t, 2, c[variant.KindMultiplication].Len())
	assert.Equal(t, 2, c[variant.KindMultiplication].Count(variant.NewMultiplication(11, 12)))
}

func TestEngineUsesPoolThenFallsBack(t *testing.T) {
	pooled := variant.NewMultiplication(50, 50)
	c := Corpus{}
	c.Add(pooled, 5)

	f := &countingFactory{Factory: variant.DefaultMultiplication()}
	e := NewEngine(newRNG(1), c)

	q, err := e.Next(f)
	require.NoError(t, err)
	assert.Equal(t, pooled.Key(), q.Key())
	assert.Equal(t, 0, f.made)
	assert.Equal(t, 0, e.Remaining(variant.KindMultiplication))

	_, err = e.Next(f)
	require.NoError(t, err)
	assert.Equal(t, 1, f.made)

	e.Reset(nil)
	_, err = e.Next(f)
	require.NoError(t, err)
	assert.Equal(t, 2, f.made)
}

func TestEngineGenerationError(t *testing.T) {
	boom := errors.New("boom")
	e := NewEngine(newRNG(1), nil)
	_, err := e.Next(&countingFactory{Factory: variant.DefaultMultiplication(), err: boom})
	assert.ErrorIs(t, err, boom)
}

func interaction(q question.Question, d time.Duration) *question.Interaction {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return question.NewInteraction(q, start).Resolve(question.StatusCorrect, start.Add(d))
}

func TestMedleyPrefersLeastPracticed(t *testing.T) {
	factories := []variant.Factory{
		variant.DefaultMultiplication(),
		variant.DefaultAnalogy(),
		variant.DefaultExpression(),
	}
	history := []*question.Interaction{
		interaction(variant.NewMultiplication(11, 12), 2*time.Minute),
		{Question: nil}, // menu selection
		interaction(variant.NewMultiplication(11, 13), time.Minute),
		interaction(mustExpression(t), 5*time.Minute),
	}

	for seed := range uint64(100) {
		m := &Medley{Engine: NewEngine(newRNG(seed), nil), Factories: factories}
		assert.Equal(t, variant.KindAnalogy, m.Pick(history).Kind())

		q, err := m.Next(history)
		require.NoError(t, err)
		assert.Equal(t, variant.KindAnalogy, q.Kind())
	}
}

func TestMedleyEmptyHistoryVaries(t *testing.T) {
	factories := []variant.Factory{
		variant.DefaultMultiplication(),
		variant.DefaultAnalogy(),
		variant.DefaultExpression(),
	}
	picked := make(map[string]bool)
	for seed := range uint64(100) {
		m := &Medley{Engine: NewEngine(newRNG(seed), nil), Factories: factories}
		picked[m.Pick(nil).Kind()] = true
	}
	assert.Len(t, picked, 3)
}

func TestMedleyNoFactories(t *testing.T) {
	m := &Medley{Engine: NewEngine(newRNG(1), nil)}
	_, err := m.Next(nil)
	assert.Error(t, err)
}

func mustExpression(t *testing.T) question.Question {
	t.Helper()
	q, err := variant.DefaultExpression().New(newRNG(42))
	require.NoError(t, err)
	return q
}
