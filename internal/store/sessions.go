package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type sessionRow struct {
	ID        string `sql:"id"`
	User      string `sql:"user_name"`
	Origin    string `sql:"origin"`
	Format    string `sql:"format"`
	StartTime int64  `sql:"start_time"`
	EndTime   int64  `sql:"end_time"`
	Survey    string `sql:"survey"`
}

type interactionRow struct {
	SessionID string `sql:"session_id"`
	Seq       int    `sql:"seq"`
	Kind      string `sql:"kind"`
	Key       string `sql:"question_key"`
	Status    string `sql:"status"`
	StartTime int64  `sql:"start_time"`
	EndTime   int64  `sql:"end_time"`
	Responses string `sql:"responses"`
}

// TranscriptFilter narrows Transcripts. The zero value matches everything.
type TranscriptFilter struct {
	ID     string
	User   string
	Origin Origin
}

// SaveTranscript inserts t, replacing any session with the same ID.
func (s *Store) SaveTranscript(ctx context.Context, t *Transcript) error {
	survey, err := json.Marshal(t.Survey)
	if err != nil {
		return fmt.Errorf("marshal survey: %w", err)
	}
	format := t.Format
	if format == "" {
		format = FormatVersion
	}
	origin := t.Origin
	if origin == "" {
		origin = OriginLocal
	}

	ins := builder.Insert(interactionsTable.Name).
		Columns("session_id", "seq", "kind", "question_key", "status", "start_time", "end_time", "responses")
	for i, r := range t.Interactions {
		responses, err := json.Marshal(r.Responses)
		if err != nil {
			return fmt.Errorf("marshal responses: %w", err)
		}
		ins.Values(t.ID, i, r.Kind, r.Key, r.Status, unixNano(r.StartTime), unixNano(r.EndTime), string(responses))
	}

	return s.inTx(ctx, func(tx dialect.Tx) error {
		stale := []querier{
			builder.Delete(interactionsTable.Name).Where(entsql.EQ("session_id", t.ID)),
			builder.Delete(sessionsTable.Name).Where(entsql.EQ("id", t.ID)),
		}
		for _, q := range stale {
			if err := exec(ctx, tx, q); err != nil {
				return fmt.Errorf("replace session %s: %w", t.ID, err)
			}
		}
		row := builder.Insert(sessionsTable.Name).
			Columns("id", "user_name", "origin", "format", "start_time", "end_time", "survey").
			Values(t.ID, t.User, string(origin), format, unixNano(t.StartTime), unixNano(t.EndTime), string(survey))
		if err := exec(ctx, tx, row); err != nil {
			return fmt.Errorf("save session %s: %w", t.ID, err)
		}
		if len(t.Interactions) == 0 {
			return nil
		}
		if err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("save interactions of %s: %w", t.ID, err)
		}
		return nil
	})
}

// Transcripts returns the matching sessions ordered by start time. A session
// with unreadable interactions is returned with Err set.
func (s *Store) Transcripts(ctx context.Context, f TranscriptFilter) ([]*Transcript, error) {
	sel := builder.Select(sessionColumns()...).
		From(entsql.Table(sessionsTable.Name)).
		OrderBy("start_time", "id")
	var preds []*entsql.Predicate
	if f.ID != "" {
		preds = append(preds, entsql.EQ("id", f.ID))
	}
	if f.User != "" {
		preds = append(preds, entsql.EQ("user_name", f.User))
	}
	if f.Origin != "" {
		preds = append(preds, entsql.EQ("origin", string(f.Origin)))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	var rows []sessionRow
	if err := scan(ctx, s.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]any, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	isel := builder.Select(interactionColumns()...).
		From(entsql.Table(interactionsTable.Name)).
		Where(entsql.In("session_id", ids...)).
		OrderBy("session_id", "seq")
	var irows []interactionRow
	if err := scan(ctx, s.drv, isel, &irows); err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}

	byID := make(map[string]*Transcript, len(rows))
	out := make([]*Transcript, len(rows))
	for i, r := range rows {
		t := &Transcript{
			ID:        r.ID,
			Format:    r.Format,
			User:      r.User,
			Origin:    Origin(r.Origin),
			StartTime: fromUnixNano(r.StartTime),
			EndTime:   fromUnixNano(r.EndTime),
		}
		if err := json.Unmarshal([]byte(r.Survey), &t.Survey); err != nil {
			// A damaged survey does not make the questions unreadable.
			t.Survey = nil
		}
		byID[r.ID] = t
		out[i] = t
	}
	for _, r := range irows {
		t := byID[r.SessionID]
		rec := InteractionRecord{
			Kind:      r.Kind,
			Key:       r.Key,
			Status:    r.Status,
			StartTime: fromUnixNano(r.StartTime),
			EndTime:   fromUnixNano(r.EndTime),
		}
		if err := json.Unmarshal([]byte(r.Responses), &rec.Responses); err != nil {
			if t.Err == nil {
				t.Err = fmt.Errorf("%w: session %s interaction %d: %v", ErrIncompatibleRecord, r.SessionID, r.Seq, err)
			}
			continue
		}
		t.Interactions = append(t.Interactions, rec)
	}
	return out, nil
}

// Transcript returns one session by ID.
func (s *Store) Transcript(ctx context.Context, id string) (*Transcript, error) {
	ts, err := s.Transcripts(ctx, TranscriptFilter{ID: id})
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return ts[0], nil
}

// TranscriptIDs returns the IDs of the matching sessions.
func (s *Store) TranscriptIDs(ctx context.Context, origin Origin) (map[string]bool, error) {
	sel := builder.Select("id").From(entsql.Table(sessionsTable.Name))
	if origin != "" {
		sel.Where(entsql.EQ("origin", string(origin)))
	}
	var ids []string
	if err := scan(ctx, s.drv, sel, &ids); err != nil {
		return nil, fmt.Errorf("query session ids: %w", err)
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// DeleteTranscripts removes every session and its interactions.
func (s *Store) DeleteTranscripts(ctx context.Context) error {
	return s.inTx(ctx, func(tx dialect.Tx) error {
		if err := exec(ctx, tx, builder.Delete(interactionsTable.Name)); err != nil {
			return fmt.Errorf("delete interactions: %w", err)
		}
		if err := exec(ctx, tx, builder.Delete(sessionsTable.Name)); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		return nil
	})
}

func sessionColumns() []string {
	return []string{"id", "user_name", "origin", "format", "start_time", "end_time", "survey"}
}

func interactionColumns() []string {
	return []string{"session_id", "seq", "kind", "question_key", "status", "start_time", "end_time", "responses"}
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
