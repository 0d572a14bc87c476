package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/cogtests/internal/question"
)

// KindStats summarizes one user's interactions with one question kind.
type KindStats struct {
	Kind      string
	Total     int
	Correct   int
	GaveUp    int
	Incorrect int
	TotalTime time.Duration
}

// MeanTime is the average time per interaction.
func (k KindStats) MeanTime() time.Duration {
	if k.Total == 0 {
		return 0
	}
	return k.TotalTime / time.Duration(k.Total)
}

// Accuracy is the fraction of interactions answered correctly.
func (k KindStats) Accuracy() float64 {
	if k.Total == 0 {
		return 0
	}
	return float64(k.Correct) / float64(k.Total)
}

type statRow struct {
	Kind      string `sql:"kind"`
	Status    string `sql:"status"`
	StartTime int64  `sql:"start_time"`
	EndTime   int64  `sql:"end_time"`
}

// Stats summarizes user's question interactions per kind, ordered by kind.
func (s *Store) Stats(ctx context.Context, user string) ([]KindStats, error) {
	owned := builder.Select("id").
		From(entsql.Table(sessionsTable.Name)).
		Where(entsql.EQ("user_name", user))
	sel := builder.Select("kind", "status", "start_time", "end_time").
		From(entsql.Table(interactionsTable.Name)).
		Where(entsql.And(
			entsql.In("session_id", owned),
			entsql.NEQ("kind", ""),
		))

	var rows []statRow
	if err := scan(ctx, s.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	byKind := make(map[string]*KindStats)
	for _, r := range rows {
		k, ok := byKind[r.Kind]
		if !ok {
			k = &KindStats{Kind: r.Kind}
			byKind[r.Kind] = k
		}
		k.Total++
		switch question.ParseStatus(r.Status) {
		case question.StatusCorrect:
			k.Correct++
		case question.StatusGiveUp:
			k.GaveUp++
		case question.StatusIncorrect:
			k.Incorrect++
		}
		if r.EndTime > r.StartTime {
			k.TotalTime += time.Duration(r.EndTime - r.StartTime)
		}
	}

	out := make([]KindStats, 0, len(byKind))
	for _, k := range byKind {
		out = append(out, *k)
	}
	slices.SortFunc(out, func(a, b KindStats) int { return cmp.Compare(a.Kind, b.Kind) })
	return out, nil
}
