package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/selection"
	"github.com/abhisek/cogtests/internal/variant"
)

// Corpus builds selection corpora from stored transcripts.
type Corpus struct {
	store    *Store
	registry *variant.Registry
	// Warn receives one line per load that had to skip sessions.
	Warn io.Writer
}

// Corpus returns a provider decoding questions with reg.
func (s *Store) Corpus(reg *variant.Registry) *Corpus {
	return &Corpus{store: s, registry: reg, Warn: os.Stderr}
}

var _ selection.CorpusProvider = (*Corpus)(nil)

// OpenQuestions counts, per question, the sessions that posed it, leaving
// out every question user has been posed. Only sessions recorded on this
// machine are read unless fromOnline is set. Sessions that cannot be read
// are skipped whole.
func (c *Corpus) OpenQuestions(ctx context.Context, user string, fromOnline bool) (selection.Corpus, error) {
	var filter TranscriptFilter
	if !fromOnline {
		filter.Origin = OriginLocal
	}
	ts, err := c.store.Transcripts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	type posed struct {
		user      string
		questions map[string]question.Question
	}
	var sessions []posed
	seen := make(map[string]bool)
	skipped := 0
	for _, t := range ts {
		qs, err := c.decode(t)
		if err != nil {
			skipped++
			continue
		}
		sessions = append(sessions, posed{user: t.User, questions: qs})
		if t.User == user {
			for id := range qs {
				seen[id] = true
			}
		}
	}
	if skipped > 0 && c.Warn != nil {
		fmt.Fprintf(c.Warn, "warning: skipped %d unreadable sessions\n", skipped)
	}

	corpus := selection.Corpus{}
	for _, s := range sessions {
		if s.user == user {
			continue
		}
		for id, q := range s.questions {
			if !seen[id] {
				corpus.Add(q, 1)
			}
		}
	}
	return corpus, nil
}

// decode returns the distinct questions of t keyed by kind and key.
func (c *Corpus) decode(t *Transcript) (map[string]question.Question, error) {
	if err := t.Compatible(); err != nil {
		return nil, err
	}
	qs := make(map[string]question.Question)
	for _, r := range t.Interactions {
		if r.Kind == "" {
			continue
		}
		id := r.Kind + "\x00" + r.Key
		if _, ok := qs[id]; ok {
			continue
		}
		q, err := c.registry.Decode(r.Kind, r.Key)
		if err != nil {
			return nil, err
		}
		qs[id] = q
	}
	return qs, nil
}
