// Package variant implements the four generated question types and the
// registry that rebuilds them from their persisted keys.
package variant

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/cogtests/internal/question"
)

// Question kinds, used as corpus pool names and persisted with every
// interaction.
const (
	KindMultiplication = "multiplication"
	KindAnagram        = "anagram"
	KindAnalogy        = "analogy"
	KindExpression     = "expression"
)

// ErrUnknownKind is returned when decoding a question of a kind no factory
// is registered for.
var ErrUnknownKind = errors.New("unknown question kind")

// Factory makes questions of one kind, either freshly at random or from a
// key produced by Question.Key.
type Factory interface {
	Kind() string
	New(rng *rand.Rand) (question.Question, error)
	Decode(key string) (question.Question, error)
}

// Registry maps kinds to factories. Registration order is kept.
type Registry struct {
	factories map[string]Factory
	kinds     []string
}

// NewRegistry returns a registry holding fs. A later factory replaces an
// earlier one of the same kind.
func NewRegistry(fs ...Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	for _, f := range fs {
		r.Register(f)
	}
	return r
}

// Register adds f.
func (r *Registry) Register(f Factory) {
	if _, ok := r.factories[f.Kind()]; !ok {
		r.kinds = append(r.kinds, f.Kind())
	}
	r.factories[f.Kind()] = f
}

// Get returns the factory for kind.
func (r *Registry) Get(kind string) (Factory, bool) {
	f, ok := r.factories[kind]
	return f, ok
}

// Kinds returns registered kinds in registration order.
func (r *Registry) Kinds() []string {
	return append([]string(nil), r.kinds...)
}

// Decode rebuilds a persisted question.
func (r *Registry) Decode(kind, key string) (question.Question, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	q, err := f.Decode(key)
	if err != nil {
		return nil, fmt.Errorf("decode %s question: %w", kind, err)
	}
	return q, nil
}

// Defaults returns the registry of the four variants with their standard
// parameters.
func Defaults(words Dictionary) *Registry {
	return NewRegistry(
		DefaultMultiplication(),
		AnagramFactory{Dictionary: words},
		DefaultAnalogy(),
		DefaultExpression(),
	)
}

// encodeKey marshals a parameter record. Records are plain structs of
// strings, numbers and pre-encoded JSON, so marshaling cannot fail.
func encodeKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("variant: encode key: %v", err))
	}
	return string(b)
}

func decodeKey(key string, v any) error {
	if err := json.Unmarshal([]byte(key), v); err != nil {
		return fmt.Errorf("parse key: %w", err)
	}
	return nil
}

// complainWith prints the user-facing part of a parse error.
func complainWith(out question.Output, err error) {
	var pe *question.ParseError
	if errors.As(err, &pe) && pe.Message != "" {
		out.Println(pe.Message)
		return
	}
	out.Println("That isn't a valid response!")
}
