package session

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cogtests/internal/catalog"
	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/remote"
	"github.com/abhisek/cogtests/internal/selection"
	"github.com/abhisek/cogtests/internal/store"
	"github.com/abhisek/cogtests/internal/variant"
)

// Store is the part of the local store a session reads and writes.
type Store interface {
	Users(ctx context.Context) ([]*store.User, error)
	DefaultUser(ctx context.Context) (*store.User, error)
	SetDefaultUser(ctx context.Context, name string) error
	SaveUser(ctx context.Context, u *store.User) error
	SaveTranscript(ctx context.Context, t *store.Transcript) error
}

// Syncer exchanges sessions with the shared database.
type Syncer interface {
	Due(ctx context.Context, interval time.Duration) (bool, error)
	Sync(ctx context.Context) (remote.Result, error)
}

// Options configures a Session.
type Options struct {
	Store    Store
	Corpus   selection.CorpusProvider
	Registry *variant.Registry

	In  question.Input
	Out question.Output

	// Syncer is optional. Without it the sync option only explains how to
	// configure one.
	Syncer       Syncer
	SyncInterval time.Duration

	// Attempts is the attempt budget per question. Zero means unbounded.
	Attempts int

	// Rand seeds question generation. Nil means a random seed.
	Rand *rand.Rand
	Now  func() time.Time
}

// Session tracks the runtime state of one sitting: who is answering, what
// they were asked and how their survey reads.
type Session struct {
	ID           string
	User         *store.User
	StartTime    time.Time
	EndTime      time.Time
	Interactions []*question.Interaction
	Survey       map[string]string

	opts     Options
	engine   *question.Engine
	selector *selection.Engine
	plan     []catalog.Generator
}

// New creates a session. No input is read until Run.
func New(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	engine := question.NewEngine(opts.In, opts.Out)
	engine.Attempts = opts.Attempts
	engine.Now = opts.Now

	s := &Session{
		ID:       uuid.NewString(),
		Survey:   map[string]string{},
		opts:     opts,
		engine:   engine,
		selector: selection.NewEngine(opts.Rand, nil),
	}
	s.plan = s.menuPlan()
	return s
}

// Selector is the session's selection engine.
func (s *Session) Selector() *selection.Engine { return s.selector }

// History is every interaction recorded so far.
func (s *Session) History() []*question.Interaction { return s.Interactions }

// Duration is the session length so far, or its final length once ended.
func (s *Session) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return s.opts.Now().Sub(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

var _ catalog.Env = (*Session)(nil)
