package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/store"
)

// newUserChoice is the picker value for creating a user.
type newUserChoice struct{}

// resolveUser returns the remembered default user, asking who is answering
// when there is none.
func (s *Session) resolveUser(ctx context.Context) (*store.User, error) {
	u, err := s.opts.Store.DefaultUser(ctx)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load default user: %w", err)
	}
	return s.pickUser(ctx)
}

// pickUser offers every known user plus a new one. With no users yet it
// goes straight to creating one.
func (s *Session) pickUser(ctx context.Context) (*store.User, error) {
	users, err := s.opts.Store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		return s.newUser(ctx)
	}

	opts := make([]question.Option, 0, len(users)+1)
	for _, u := range users {
		opts = append(opts, question.Option{Text: u.Name, Value: u})
	}
	opts = append(opts, question.Option{Text: "New user", Value: newUserChoice{}})
	menu := question.NewPicker("Enter the number to the left of your name, or pick a new user.", opts...)

	for {
		in, err := s.engine.Ask(ctx, menu)
		if err != nil {
			return nil, err
		}
		opt, ok := menu.Selected(in)
		if !ok {
			continue
		}
		if u, ok := opt.Value.(*store.User); ok {
			return u, nil
		}
		return s.newUser(ctx)
	}
}

// newUser asks for a name. Naming an existing user selects that user.
func (s *Session) newUser(ctx context.Context) (*store.User, error) {
	for {
		raw, err := s.opts.In.ReadLine(ctx, "What username do you want to use?")
		if err != nil {
			return nil, fmt.Errorf("read username: %w", err)
		}
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		users, err := s.opts.Store.Users(ctx)
		if err != nil {
			return nil, fmt.Errorf("load users: %w", err)
		}
		for _, u := range users {
			if u.Name == name {
				return u, nil
			}
		}

		u := store.NewUser(name, s.opts.Now())
		if err := s.opts.Store.SaveUser(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
}

// setUser makes u the session's user and the default for later sessions,
// then reloads the question pools for them.
func (s *Session) setUser(ctx context.Context, u *store.User) error {
	s.User = u
	if err := s.opts.Store.SetDefaultUser(ctx, u.Name); err != nil {
		return fmt.Errorf("set default user: %w", err)
	}
	return s.refresh(ctx)
}

// refresh rebuilds the selection pools for the current user.
func (s *Session) refresh(ctx context.Context) error {
	if s.opts.Corpus == nil {
		s.selector.Reset(nil)
		return nil
	}
	corpus, err := s.opts.Corpus.OpenQuestions(ctx, s.User.Name, s.User.FromOnline)
	if err != nil {
		return fmt.Errorf("load questions for %s: %w", s.User.Name, err)
	}
	s.selector.Reset(corpus)
	return nil
}
