// Package selection decides which concrete question to pose next: reused
// questions other users have seen, or fresh ones, balanced across kinds.
package selection

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/cogtests/internal/question"
)

// Pool holds previously posed questions of one kind, keyed by identity,
// with the number of other sessions that posed each.
type Pool struct {
	entries map[string]*entry
}

type entry struct {
	q     question.Question
	count int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{entries: make(map[string]*entry)}
}

// Add records n more occurrences of q.
func (p *Pool) Add(q question.Question, n int) {
	if e, ok := p.entries[q.Key()]; ok {
		e.count += n
		return
	}
	p.entries[q.Key()] = &entry{q: q, count: n}
}

// Len is the number of distinct questions left.
func (p *Pool) Len() int { return len(p.entries) }

// Count returns the occurrences recorded for q.
func (p *Pool) Count(q question.Question) int {
	if e, ok := p.entries[q.Key()]; ok {
		return e.count
	}
	return 0
}

// Take removes and returns a question drawn uniformly among those with the
// highest count.
func (p *Pool) Take(rng *rand.Rand) (question.Question, bool) {
	best := -1
	var keys []string
	for k, e := range p.entries {
		switch {
		case e.count > best:
			best = e.count
			keys = append(keys[:0], k)
		case e.count == best:
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, false
	}
	// Map order is random; sort so a seeded rng reproduces the pick.
	slices.Sort(keys)
	k := keys[rng.IntN(len(keys))]
	q := p.entries[k].q
	delete(p.entries, k)
	return q, true
}

// Corpus maps question kinds to pools.
type Corpus map[string]*Pool

// Add records n occurrences of q in the pool for its kind.
func (c Corpus) Add(q question.Question, n int) {
	p, ok := c[q.Kind()]
	if !ok {
		p = NewPool()
		c[q.Kind()] = p
	}
	p.Add(q, n)
}

// CorpusProvider builds the corpus for a user: questions posed in other
// sessions that the user has never been posed, counted per session.
type CorpusProvider interface {
	OpenQuestions(ctx context.Context, user string, fromOnline bool) (Corpus, error)
}
