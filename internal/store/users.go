package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Setting names.
const (
	SettingDefaultUser = "default_user"
	SettingLastSync    = "last_sync"
)

// User is a named participant.
type User struct {
	Name string
	// FromOnline includes sessions imported by a sync in the user's corpus.
	FromOnline   bool
	LastActivity time.Time
	LastSurvey   map[string]string
	CreatedAt    time.Time
}

// NewUser returns a user with default preferences.
func NewUser(name string, now time.Time) *User {
	return &User{Name: name, FromOnline: true, LastActivity: now, CreatedAt: now, LastSurvey: map[string]string{}}
}

type userRow struct {
	Name         string `sql:"name"`
	FromOnline   bool   `sql:"from_online"`
	LastActivity int64  `sql:"last_activity"`
	LastSurvey   string `sql:"last_survey"`
	CreatedAt    int64  `sql:"created_at"`
}

// SaveUser inserts or updates u.
func (s *Store) SaveUser(ctx context.Context, u *User) error {
	survey, err := json.Marshal(u.LastSurvey)
	if err != nil {
		return fmt.Errorf("marshal survey: %w", err)
	}
	created := u.CreatedAt
	if created.IsZero() {
		created = u.LastActivity
	}
	ins := builder.Insert(usersTable.Name).
		Columns("name", "from_online", "last_activity", "last_survey", "created_at").
		Values(u.Name, u.FromOnline, unixNano(u.LastActivity), string(survey), unixNano(created)).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWith(func(set *entsql.UpdateSet) {
				set.SetExcluded("from_online")
				set.SetExcluded("last_activity")
				set.SetExcluded("last_survey")
			}),
		)
	if err := exec(ctx, s.drv, ins); err != nil {
		return fmt.Errorf("save user %s: %w", u.Name, err)
	}
	return nil
}

// Users returns every user ordered by name.
func (s *Store) Users(ctx context.Context) ([]*User, error) {
	return s.users(ctx, nil)
}

// User returns the named user.
func (s *Store) User(ctx context.Context, name string) (*User, error) {
	us, err := s.users(ctx, entsql.EQ("name", name))
	if err != nil {
		return nil, err
	}
	if len(us) == 0 {
		return nil, fmt.Errorf("user %s: %w", name, ErrNotFound)
	}
	return us[0], nil
}

func (s *Store) users(ctx context.Context, where *entsql.Predicate) ([]*User, error) {
	sel := builder.Select("name", "from_online", "last_activity", "last_survey", "created_at").
		From(entsql.Table(usersTable.Name)).
		OrderBy("name")
	if where != nil {
		sel.Where(where)
	}
	var rows []userRow
	if err := scan(ctx, s.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	out := make([]*User, len(rows))
	for i, r := range rows {
		u := &User{
			Name:         r.Name,
			FromOnline:   r.FromOnline,
			LastActivity: fromUnixNano(r.LastActivity),
			CreatedAt:    fromUnixNano(r.CreatedAt),
		}
		if err := json.Unmarshal([]byte(r.LastSurvey), &u.LastSurvey); err != nil || u.LastSurvey == nil {
			u.LastSurvey = map[string]string{}
		}
		out[i] = u
	}
	return out, nil
}

// DefaultUser returns the user remembered by SetDefaultUser.
func (s *Store) DefaultUser(ctx context.Context) (*User, error) {
	name, err := s.Setting(ctx, SettingDefaultUser)
	if err != nil {
		return nil, err
	}
	return s.User(ctx, name)
}

// SetDefaultUser remembers name as the user of the next session.
func (s *Store) SetDefaultUser(ctx context.Context, name string) error {
	return s.SetSetting(ctx, SettingDefaultUser, name)
}

// LastSync returns when the last successful sync finished. The zero time
// means never.
func (s *Store) LastSync(ctx context.Context) (time.Time, error) {
	v, err := s.Setting(ctx, SettingLastSync)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return fromUnixNano(n), nil
}

// SetLastSync records a successful sync.
func (s *Store) SetLastSync(ctx context.Context, at time.Time) error {
	return s.SetSetting(ctx, SettingLastSync, strconv.FormatInt(unixNano(at), 10))
}

// Setting returns a stored setting.
func (s *Store) Setting(ctx context.Context, name string) (string, error) {
	sel := builder.Select("value").
		From(entsql.Table(settingsTable.Name)).
		Where(entsql.EQ("name", name))
	var values []string
	if err := scan(ctx, s.drv, sel, &values); err != nil {
		return "", fmt.Errorf("query setting %s: %w", name, err)
	}
	if len(values) == 0 {
		return "", fmt.Errorf("setting %s: %w", name, ErrNotFound)
	}
	return values[0], nil
}

// SetSetting stores a setting.
func (s *Store) SetSetting(ctx context.Context, name, value string) error {
	ins := builder.Insert(settingsTable.Name).
		Columns("name", "value").
		Values(name, value).
		OnConflict(entsql.ConflictColumns("name"), entsql.ResolveWithNewValues())
	if err := exec(ctx, s.drv, ins); err != nil {
		return fmt.Errorf("save setting %s: %w", name, err)
	}
	return nil
}

// DeleteUsers removes every user and setting.
func (s *Store) DeleteUsers(ctx context.Context) error {
	if err := exec(ctx, s.drv, builder.Delete(usersTable.Name)); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	if err := exec(ctx, s.drv, builder.Delete(settingsTable.Name)); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}
