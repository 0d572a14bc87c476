package store

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/cogtests/internal/question"
)

// FormatVersion is the transcript format written by this build. Records
// with a different major version are not read.
const FormatVersion = "v1.0.0"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIncompatibleRecord marks a stored transcript this build cannot read.
	ErrIncompatibleRecord = errors.New("incompatible record")
)

// Origin tells where a transcript was recorded.
type Origin string

const (
	OriginLocal  Origin = "local"  // Recorded on this machine
	OriginRemote Origin = "remote" // Imported by a sync
)

// Transcript is the persisted form of one session.
type Transcript struct {
	ID           string              `json:"id" bson:"_id"`
	Format       string              `json:"format" bson:"format"`
	User         string              `json:"user" bson:"user"`
	StartTime    time.Time           `json:"start_time" bson:"start_time"`
	EndTime      time.Time           `json:"end_time" bson:"end_time"`
	Survey       map[string]string   `json:"survey,omitempty" bson:"survey,omitempty"`
	Interactions []InteractionRecord `json:"interactions" bson:"interactions"`

	// Origin is local bookkeeping and never leaves the machine.
	Origin Origin `json:"-" bson:"-"`
	// Err is set when part of the stored record could not be read. Such a
	// transcript is incomplete and is not used for selection or sync.
	Err error `json:"-" bson:"-"`
}

// InteractionRecord is the persisted form of a question.Interaction.
// Menu selections have an empty Kind and Key.
type InteractionRecord struct {
	Kind      string           `json:"kind,omitempty" bson:"kind,omitempty"`
	Key       string           `json:"key,omitempty" bson:"key,omitempty"`
	Status    string           `json:"status" bson:"status"`
	StartTime time.Time        `json:"start_time" bson:"start_time"`
	EndTime   time.Time        `json:"end_time" bson:"end_time"`
	Responses []ResponseRecord `json:"responses,omitempty" bson:"responses,omitempty"`
}

// ResponseRecord is one counted attempt.
type ResponseRecord struct {
	Raw  string    `json:"raw" bson:"raw"`
	Time time.Time `json:"time" bson:"time"`
}

// Record converts a resolved interaction.
func Record(in *question.Interaction) InteractionRecord {
	r := InteractionRecord{
		Status:    in.Status.String(),
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	if in.Question != nil {
		r.Kind = in.Question.Kind()
		r.Key = in.Question.Key()
	}
	for _, resp := range in.Responses {
		r.Responses = append(r.Responses, ResponseRecord{Raw: resp.Raw, Time: resp.Time})
	}
	return r
}

// Duration is the time spent on the interaction.
func (r InteractionRecord) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// Compatible reports whether t was written in a readable format.
func (t *Transcript) Compatible() error {
	if t.Err != nil {
		return t.Err
	}
	if !semver.IsValid(t.Format) {
		return fmt.Errorf("%w: session %s has format %q", ErrIncompatibleRecord, t.ID, t.Format)
	}
	if semver.Major(t.Format) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: session %s has format %s, want %s", ErrIncompatibleRecord, t.ID, t.Format, semver.Major(FormatVersion))
	}
	return nil
}

// Duration is the session length.
func (t *Transcript) Duration() time.Duration {
	if t.EndTime.IsZero() {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}
