package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/abhisek/cogtests/internal/catalog"
	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/store"
)

// Run drives the whole session: intro and sync on start, the main menu
// loop, and saving on the way out. Closing the input ends the session like
// quitting the main menu does.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	err := s.loop(ctx)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return errors.Join(err, s.End(ctx))
}

// Start shows the intro to first-time users, syncs when due and settles
// who is answering.
func (s *Session) Start(ctx context.Context) error {
	s.StartTime = s.opts.Now()

	users, err := s.opts.Store.Users(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		if err := Intro(ctx, s.opts.In, s.opts.Out); err != nil {
			return err
		}
	}

	s.syncIfDue(ctx)

	u, err := s.resolveUser(ctx)
	if err != nil {
		return err
	}
	s.Survey = maps.Clone(u.LastSurvey)
	if s.Survey == nil {
		s.Survey = map[string]string{}
	}
	return s.setUser(ctx, u)
}

func (s *Session) loop(ctx context.Context) error {
	s.opts.Out.Println(fmt.Sprintf("\nWelcome, %s!", s.User.Name))
	s.opts.Out.Paragraph("Type 'help' for help, 'exit' to quit, or 'pass' to give up on a problem.")

	menu := catalog.Menu(s.plan)
	for {
		in, err := s.engine.Ask(ctx, menu)
		if err != nil {
			return err
		}
		if in.Status == question.StatusQuit {
			return nil
		}
		opt, ok := menu.Selected(in)
		if !ok {
			continue
		}
		s.record(in)
		if err := s.pose(ctx, opt.Value.(catalog.Generator)); err != nil {
			return err
		}
	}
}

// pose asks prompts from gen until one is quit, or just once for
// generators that do not repeat.
func (s *Session) pose(ctx context.Context, gen catalog.Generator) error {
	for {
		p, err := gen.Make(ctx, s)
		if err != nil {
			s.opts.Out.Println(fmt.Sprintf("Sorry, that isn't available right now: %v", err))
			return nil
		}
		in, err := s.engine.Ask(ctx, p)
		if err != nil {
			return err
		}
		if in.Status == question.StatusQuit {
			return nil
		}
		s.record(in)
		if !gen.Repeat {
			return nil
		}
	}
}

func (s *Session) record(in *question.Interaction) {
	s.Interactions = append(s.Interactions, in)
}

// End stamps the session, saves it and the user, and reports its length
// and the results per question kind.
func (s *Session) End(ctx context.Context) error {
	s.EndTime = s.opts.Now()

	var errs []error
	if s.User != nil {
		s.User.LastSurvey = maps.Clone(s.Survey)
		s.User.LastActivity = s.EndTime
		if err := s.opts.Store.SaveUser(ctx, s.User); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.opts.Store.SaveTranscript(ctx, s.Transcript()); err != nil {
		errs = append(errs, fmt.Errorf("save session: %w", err))
	}

	sum := BuildSummary(s)
	s.opts.Out.Println("Your session lasted for " + RenderTime(sum.Duration))
	if sum.TotalQuestions > 0 {
		s.opts.Out.Println(fmt.Sprintf("You answered %d of %d questions correctly (%.0f%%).",
			sum.TotalCorrect, sum.TotalQuestions, 100*sum.Accuracy))
		for _, kp := range sum.Kinds {
			s.opts.Out.Println(fmt.Sprintf("  %s: %d of %d correct (%.0f%%), %d given up, %s per question",
				kp.Kind, kp.Correct, kp.Attempted, 100*kp.Accuracy, kp.GaveUp, RenderTime(kp.MeanTime())))
		}
	}
	return errors.Join(errs...)
}

// Transcript is the persisted form of the session.
func (s *Session) Transcript() *store.Transcript {
	t := &store.Transcript{
		ID:        s.ID,
		Format:    store.FormatVersion,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Survey:    maps.Clone(s.Survey),
		Origin:    store.OriginLocal,
	}
	if s.User != nil {
		t.User = s.User.Name
	}
	for _, in := range s.Interactions {
		t.Interactions = append(t.Interactions, store.Record(in))
	}
	return t
}
