package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cogtests/internal/store"
)

// memRemote is an in-memory Remote.
type memRemote struct {
	docs    map[string]*store.Transcript
	corrupt int
	pushErr error
}

func newMemRemote(ts ...*store.Transcript) *memRemote {
	r := &memRemote{docs: make(map[string]*store.Transcript)}
	for _, t := range ts {
		r.docs[t.ID] = t
	}
	return r
}

func (r *memRemote) IDs(context.Context) (map[string]bool, error) {
	ids := make(map[string]bool)
	for id := range r.docs {
		ids[id] = true
	}
	return ids, nil
}

func (r *memRemote) Push(_ context.Context, ts []*store.Transcript) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	for _, t := range ts {
		if _, ok := r.docs[t.ID]; !ok {
			cp := *t
			cp.Origin = ""
			r.docs[t.ID] = &cp
		}
	}
	return nil
}

func (r *memRemote) Fetch(_ context.Context, exclude map[string]bool) ([]*store.Transcript, int, error) {
	var out []*store.Transcript
	for id, t := range r.docs {
		if !exclude[id] {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, r.corrupt, nil
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func transcript(id, user string) *store.Transcript {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &store.Transcript{
		ID:        id,
		Format:    store.FormatVersion,
		User:      user,
		StartTime: start,
		EndTime:   start.Add(time.Minute),
		Origin:    store.OriginLocal,
	}
}

func TestSyncExchangesSessions(t *testing.T) {
	ctx := context.Background()
	local := openStore(t)
	require.NoError(t, local.SaveTranscript(ctx, transcript("mine", "alice")))
	require.NoError(t, local.SaveTranscript(ctx, transcript("shared", "alice")))

	future := transcript("future", "zed")
	future.Format = "v3.1.0"
	remote := newMemRemote(transcript("shared", "alice"), transcript("theirs", "bob"), future)
	remote.corrupt = 1

	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	s := &Syncer{Local: local, Remote: remote, Out: &out, Now: func() time.Time { return now }}

	res, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Pushed: 1, Imported: 1, Skipped: 2}, res)
	assert.Contains(t, remote.docs, "mine")
	assert.Contains(t, out.String(), "skipped 2 unreadable sessions")

	imported, err := local.Transcript(ctx, "theirs")
	require.NoError(t, err)
	assert.Equal(t, store.OriginRemote, imported.Origin)
	assert.Equal(t, "bob", imported.User)

	_, err = local.Transcript(ctx, "future")
	assert.ErrorIs(t, err, store.ErrNotFound)

	last, err := local.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, last.Equal(now))

	// A second sync has nothing left to do, and never re-pushes imports.
	res, err = s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Pushed)
	assert.Equal(t, 0, res.Imported)
}

func TestSyncPushFailureKeepsLastSync(t *testing.T) {
	ctx := context.Background()
	local := openStore(t)
	require.NoError(t, local.SaveTranscript(ctx, transcript("mine", "alice")))

	boom := errors.New("network down")
	remote := newMemRemote()
	remote.pushErr = boom
	s := &Syncer{Local: local, Remote: remote}

	_, err := s.Sync(ctx)
	assert.ErrorIs(t, err, boom)
	last, err := local.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestSyncSkipsDamagedLocalSession(t *testing.T) {
	ctx := context.Background()
	local := openStore(t)
	damaged := transcript("damaged", "alice")
	damaged.Interactions = []store.InteractionRecord{{Status: "correct", StartTime: damaged.StartTime, EndTime: damaged.EndTime}}
	require.NoError(t, local.SaveTranscript(ctx, damaged))
	require.NoError(t, local.SaveTranscript(ctx, transcript("fine", "alice")))
	_, err := local.DB().Exec(`UPDATE interactions SET responses = '{broken' WHERE session_id = 'damaged'`)
	require.NoError(t, err)

	remote := newMemRemote()
	s := &Syncer{Local: local, Remote: remote}

	res, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Pushed: 1, Skipped: 1}, res)
	assert.Contains(t, remote.docs, "fine")
	assert.NotContains(t, remote.docs, "damaged")
}

func TestDue(t *testing.T) {
	ctx := context.Background()
	local := openStore(t)
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	s := &Syncer{Local: local, Remote: newMemRemote(), Now: func() time.Time { return now }}

	due, err := s.Due(ctx, 10*time.Hour)
	require.NoError(t, err)
	assert.True(t, due, "never synced")

	require.NoError(t, local.SetLastSync(ctx, now.Add(-time.Hour)))
	due, err = s.Due(ctx, 10*time.Hour)
	require.NoError(t, err)
	assert.False(t, due)

	require.NoError(t, local.SetLastSync(ctx, now.Add(-11*time.Hour)))
	due, err = s.Due(ctx, 10*time.Hour)
	require.NoError(t, err)
	assert.True(t, due)
}
