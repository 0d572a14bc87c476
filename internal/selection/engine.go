package selection

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/variant"
)

// Engine serves questions from a session-local corpus snapshot. Questions
// taken from the snapshot are never returned to it.
type Engine struct {
	rng    *rand.Rand
	corpus Corpus
}

// NewEngine returns an engine over corpus. A nil corpus means every
// question is generated fresh.
func NewEngine(rng *rand.Rand, corpus Corpus) *Engine {
	if corpus == nil {
		corpus = Corpus{}
	}
	return &Engine{rng: rng, corpus: corpus}
}

// Reset replaces the snapshot, e.g. after the user changes.
func (e *Engine) Reset(corpus Corpus) {
	if corpus == nil {
		corpus = Corpus{}
	}
	e.corpus = corpus
}

// Remaining is the number of pooled questions left for kind.
func (e *Engine) Remaining(kind string) int {
	if p, ok := e.corpus[kind]; ok {
		return p.Len()
	}
	return 0
}

// Rand is the random source shared by the engine and its callers.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Next returns a pooled question of f's kind, or a fresh one from f when
// the pool is empty.
func (e *Engine) Next(f variant.Factory) (question.Question, error) {
	if p, ok := e.corpus[f.Kind()]; ok {
		if q, ok := p.Take(e.rng); ok {
			return q, nil
		}
	}
	q, err := f.New(e.rng)
	if err != nil {
		return nil, fmt.Errorf("generate %s question: %w", f.Kind(), err)
	}
	return q, nil
}

// Medley picks the kind practiced least this session and delegates to the
// engine for it.
type Medley struct {
	Engine    *Engine
	Factories []variant.Factory
}

// Pick returns the factory with the smallest jittered time-on-task in
// history. The score is t*(1+0.2u)+u seconds for uniform u, so the least
// practiced kind is strongly preferred and near ties are broken randomly.
func (m *Medley) Pick(history []*question.Interaction) variant.Factory {
	spent := make(map[string]time.Duration)
	for _, in := range history {
		if in == nil || in.Question == nil {
			continue
		}
		spent[in.Question.Kind()] += in.Duration()
	}

	var best variant.Factory
	bestScore := 0.0
	rng := m.Engine.Rand()
	for _, f := range m.Factories {
		t := spent[f.Kind()].Seconds()
		score := t*(1+0.2*rng.Float64()) + rng.Float64()
		if best == nil || score < bestScore {
			best, bestScore = f, score
		}
	}
	return best
}

// Next poses the next medley question.
func (m *Medley) Next(history []*question.Interaction) (question.Question, error) {
	f := m.Pick(history)
	if f == nil {
		return nil, fmt.Errorf("medley has no question kinds")
	}
	return m.Engine.Next(f)
}
