// Package remote shares session transcripts between machines through a
// common database, so that every user's corpus includes other users'
// questions.
package remote

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/cogtests/internal/store"
)

// Remote is the shared transcript collection.
type Remote interface {
	// IDs returns the IDs of every stored session.
	IDs(ctx context.Context) (map[string]bool, error)
	// Push stores ts. Sessions already present are left alone.
	Push(ctx context.Context, ts []*store.Transcript) error
	// Fetch returns every session not in exclude and the number of
	// documents that could not be decoded.
	Fetch(ctx context.Context, exclude map[string]bool) ([]*store.Transcript, int, error)
}

// Local is the part of the local store a sync touches.
type Local interface {
	Transcripts(ctx context.Context, f store.TranscriptFilter) ([]*store.Transcript, error)
	TranscriptIDs(ctx context.Context, origin store.Origin) (map[string]bool, error)
	SaveTranscript(ctx context.Context, t *store.Transcript) error
	LastSync(ctx context.Context) (time.Time, error)
	SetLastSync(ctx context.Context, at time.Time) error
}

// Result summarizes one sync.
type Result struct {
	Pushed   int
	Imported int
	Skipped  int
}

// Syncer exchanges transcripts between the local store and a remote.
type Syncer struct {
	Local  Local
	Remote Remote
	// Out receives progress lines. Nil silences them.
	Out io.Writer
	Now func() time.Time
}

// Due reports whether the last sync is older than interval.
func (s *Syncer) Due(ctx context.Context, interval time.Duration) (bool, error) {
	last, err := s.Local.LastSync(ctx)
	if err != nil {
		return false, err
	}
	return last.IsZero() || s.now().Sub(last) > interval, nil
}

// Sync pushes local sessions the remote lacks, then imports remote sessions
// this machine lacks. Sessions written in an incompatible format are
// skipped and counted.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	var res Result
	s.printf("Syncing with database...\n")

	remoteIDs, err := s.Remote.IDs(ctx)
	if err != nil {
		return res, err
	}
	local, err := s.Local.Transcripts(ctx, store.TranscriptFilter{Origin: store.OriginLocal})
	if err != nil {
		return res, fmt.Errorf("load local sessions: %w", err)
	}
	var push []*store.Transcript
	for _, t := range local {
		if t.Err != nil {
			res.Skipped++
			continue
		}
		if !remoteIDs[t.ID] {
			push = append(push, t)
		}
	}
	if err := s.Remote.Push(ctx, push); err != nil {
		return res, err
	}
	res.Pushed = len(push)
	s.printf("...wrote %d sessions to database...\n", res.Pushed)

	known, err := s.Local.TranscriptIDs(ctx, "")
	if err != nil {
		return res, fmt.Errorf("load local session ids: %w", err)
	}
	fetched, corrupt, err := s.Remote.Fetch(ctx, known)
	if err != nil {
		return res, err
	}
	res.Skipped += corrupt
	for _, t := range fetched {
		if err := t.Compatible(); err != nil {
			res.Skipped++
			continue
		}
		t.Origin = store.OriginRemote
		if err := s.Local.SaveTranscript(ctx, t); err != nil {
			return res, fmt.Errorf("import session %s: %w", t.ID, err)
		}
		res.Imported++
	}
	s.printf("...loaded %d sessions from database.\n", res.Imported)
	if res.Skipped > 0 {
		s.printf("warning: skipped %d unreadable sessions\n", res.Skipped)
	}

	if err := s.Local.SetLastSync(ctx, s.now()); err != nil {
		return res, err
	}
	return res, nil
}

func (s *Syncer) printf(format string, args ...any) {
	if s.Out != nil {
		fmt.Fprintf(s.Out, format, args...)
	}
}

func (s *Syncer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
