// Package catalog binds question sources to the descriptions shown in the
// session's main menu.
package catalog

import (
	"context"
	"fmt"

	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/selection"
	"github.com/abhisek/cogtests/internal/variant"
)

// Env is the running session as seen by generators.
type Env interface {
	Selector() *selection.Engine
	History() []*question.Interaction
}

// MakeFunc builds the next prompt for a session. ctx bounds any input the
// prompt's own actions read.
type MakeFunc func(ctx context.Context, env Env) (question.Prompt, error)

// Generator is one entry of the main menu.
type Generator struct {
	Description   string
	Clarification string
	// Repeat keeps posing new prompts until the user quits one.
	Repeat bool

	build MakeFunc
}

// New returns a generator around an arbitrary prompt builder.
func New(description, clarification string, repeat bool, build MakeFunc) Generator {
	return Generator{Description: description, Clarification: clarification, Repeat: repeat, build: build}
}

// ForVariant poses questions of one kind through the selection engine.
func ForVariant(description string, f variant.Factory) Generator {
	return New(description, "", true, func(_ context.Context, env Env) (question.Prompt, error) {
		return env.Selector().Next(f)
	})
}

// ForMedley poses a balanced mix of fs.
func ForMedley(description, clarification string, fs ...variant.Factory) Generator {
	return New(description, clarification, true, func(_ context.Context, env Env) (question.Prompt, error) {
		m := &selection.Medley{Engine: env.Selector(), Factories: fs}
		return m.Next(env.History())
	})
}

// Make builds the next prompt.
func (g Generator) Make(ctx context.Context, env Env) (question.Prompt, error) {
	if g.build == nil {
		return nil, fmt.Errorf("generator %q has nothing to make", g.Description)
	}
	return g.build(ctx, env)
}

// Defaults returns the four variants plus the medley, in menu order.
func Defaults(reg *variant.Registry) []Generator {
	descriptions := map[string]string{
		variant.KindMultiplication: "Arithmetic",
		variant.KindAnagram:        "Anagrams",
		variant.KindAnalogy:        "Analogies",
		variant.KindExpression:     "Make N",
	}

	var gens []Generator
	var all []variant.Factory
	for _, kind := range reg.Kinds() {
		f, _ := reg.Get(kind)
		desc, ok := descriptions[kind]
		if !ok {
			desc = kind
		}
		gens = append(gens, ForVariant(desc, f))
		all = append(all, f)
	}
	return append(gens, ForMedley("Medley", "Medley is a balanced mix of the other problems", all...))
}

// Menu returns the picker over gens. Its value is the chosen Generator.
func Menu(gens []Generator) *question.Menu {
	opts := make([]question.Option, len(gens))
	for i, g := range gens {
		opts[i] = question.Option{Text: g.Description, Value: g, Clarification: g.Clarification}
	}
	return question.NewPicker("Enter the number to the left of a question type to answer questions of that type.", opts...)
}
