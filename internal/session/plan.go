package session

import (
	"context"
	"fmt"

	"github.com/abhisek/cogtests/internal/catalog"
	"github.com/abhisek/cogtests/internal/question"
)

// SurveyQuestions are asked by the survey, in menu order.
var SurveyQuestions = []string{
	"When did you last eat?",
	"When did you wake up?",
	"How long did you sleep?",
	"What is the background noise?",
	"If you're listening to music, what?",
	"What drug have you taken recently, if any?",
	"If so, at what dose?",
	"If so, when did you take it?",
	"Where are you sitting?",
	"Any other notes?",
}

const surveyClarification = "The survey is a set of questions evaluating your current state, " +
	"to help determine what conditions lead to improved or impaired performance"

const togglesHelp = "Enter the number to the left of a setting to toggle the indicated setting " +
	"or perform the indicated operation."

// menuPlan is the main menu: every question kind, the medley, the survey
// and the options.
func (s *Session) menuPlan() []catalog.Generator {
	var plan []catalog.Generator
	if s.opts.Registry != nil {
		plan = catalog.Defaults(s.opts.Registry)
	}
	return append(plan,
		catalog.New("Take the survey.", surveyClarification, false, func(ctx context.Context, _ catalog.Env) (question.Prompt, error) {
			return s.surveyMenu(ctx), nil
		}),
		catalog.New("Options", "", false, func(ctx context.Context, _ catalog.Env) (question.Prompt, error) {
			return s.optionsMenu(ctx), nil
		}),
	)
}

// surveyMenu lists the survey questions with their current answers.
// Choosing one asks it again.
func (s *Session) surveyMenu(ctx context.Context) *question.Menu {
	opts := make([]question.Option, len(SurveyQuestions))
	for i, q := range SurveyQuestions {
		opts[i] = question.Option{
			Text:    q + " %v",
			Display: func() any { return s.Survey[q] },
			Action: func() {
				answer, err := s.opts.In.ReadLine(ctx, q)
				if err != nil {
					return
				}
				s.Survey[q] = answer
			},
		}
	}
	return question.NewToggles(togglesHelp, opts...)
}

func (s *Session) optionsMenu(ctx context.Context) *question.Menu {
	return question.NewToggles(togglesHelp,
		question.Option{
			Text:    "Use questions from online? Currently: %v",
			Display: func() any { return s.User.FromOnline },
			Action: func() {
				s.User.FromOnline = !s.User.FromOnline
				s.warn(s.refresh(ctx))
			},
		},
		question.Option{
			Text:   "Sync with database now.",
			Action: func() { s.syncNow(ctx) },
		},
		question.Option{
			Text:    "Change user. Currently: %v",
			Display: func() any { return s.User.Name },
			Action: func() {
				u, err := s.pickUser(ctx)
				if err == nil {
					err = s.setUser(ctx, u)
				}
				s.warn(err)
			},
		},
	)
}

// syncIfDue syncs on start when the last sync is older than the interval.
// Failures only warn; the session works offline.
func (s *Session) syncIfDue(ctx context.Context) {
	if s.opts.Syncer == nil {
		return
	}
	due, err := s.opts.Syncer.Due(ctx, s.opts.SyncInterval)
	if err != nil {
		s.warn(err)
		return
	}
	if due {
		s.sync(ctx)
	}
}

// syncNow syncs on request and reloads the pools with what arrived.
func (s *Session) syncNow(ctx context.Context) {
	if s.opts.Syncer == nil {
		s.opts.Out.Paragraph("No shared database is configured. Set COGTESTS_MONGO_URI to sync.")
		return
	}
	s.sync(ctx)
	s.warn(s.refresh(ctx))
}

func (s *Session) sync(ctx context.Context) {
	if _, err := s.opts.Syncer.Sync(ctx); err != nil {
		s.warn(fmt.Errorf("sync failed: %w", err))
	}
}

func (s *Session) warn(err error) {
	if err != nil {
		question.Warn(s.opts.Out, err.Error())
	}
}
