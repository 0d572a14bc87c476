package variant

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/cogtests/internal/question"
	"github.com/abhisek/cogtests/internal/stringop"
)

// Pair is one labeled example of an analogy.
type Pair struct {
	Example string `json:"example"`
	Label   string `json:"label"`
}

// Analogy shows examples of a hidden transformation and asks for its
// image of a test string.
type Analogy struct {
	question.Exact[string]
	Op       stringop.Op
	Examples []Pair
	Test     string
	Alphabet string

	key string
}

// NewAnalogy applies op to every example and to test.
func NewAnalogy(op stringop.Op, examples []string, test, alphabet string) (*Analogy, error) {
	if utf8.RuneCountInString(alphabet) < 2 {
		return nil, fmt.Errorf("analogy: alphabet %q too small", alphabet)
	}
	encoded, err := stringop.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("analogy: %w", err)
	}

	q := &Analogy{
		Exact:    question.Exact[string]{Value: op.Apply(test)},
		Op:       op,
		Test:     test,
		Alphabet: alphabet,
	}
	for _, ex := range examples {
		q.Examples = append(q.Examples, Pair{Example: ex, Label: op.Apply(ex)})
	}
	q.key = encodeKey(analogyKey{
		Op:       encoded,
		Examples: examples,
		Test:     test,
		Alphabet: alphabet,
	})
	return q, nil
}

func (q *Analogy) Kind() string { return KindAnalogy }
func (q *Analogy) Key() string  { return q.key }

func (q *Analogy) Render() string {
	var b strings.Builder
	b.WriteString("Complete the pattern:\n")
	for _, p := range q.Examples {
		fmt.Fprintf(&b, "%s --> %s\n", p.Example, p.Label)
	}
	fmt.Fprintf(&b, "%s --> ?", q.Test)
	return b.String()
}

// Parse restricts answers to the answer's length and the alphabet.
func (q *Analogy) Parse(raw string) (any, error) {
	answer := strings.TrimSpace(raw)
	want, got := utf8.RuneCountInString(q.Value), utf8.RuneCountInString(answer)
	if got != want {
		return nil, question.Malformed("length", "You should enter a string of length %d (not %d)", want, got)
	}
	for _, r := range answer {
		if !strings.ContainsRune(q.Alphabet, r) {
			return nil, question.Malformed("charset", "Your string should use only letters %s", q.letters(", "))
		}
	}
	return answer, nil
}

func (q *Analogy) Complain(out question.Output, err error) { complainWith(out, err) }

func (q *Analogy) GiveAway(out question.Output) {
	out.Println(fmt.Sprintf("The hidden transformation was %s", q.Op))
	out.Println(fmt.Sprintf("The answer was %s", q.Value))
}

func (q *Analogy) Clarify(out question.Output) {
	alpha := []rune(q.Alphabet)
	out.Paragraph("There is a simple rule that relates each string on the left hand side to its partner on the right hand side.")
	out.Println(`Find the rule, and determine what string should replace "?".`)
	out.Paragraph(fmt.Sprintf("The rule consists of up to %d atomic operations, each of which is one of:", q.Op.Size()))
	out.Println(" (*) Switching two positions in the string")
	out.Println(" (*) Reversing the string")
	out.Println(" (*) Rotating the whole string a random distance to the left or right")
	out.Println("     (e.g. shifting each symbol one step to the right, and replacing the first with the last)")
	out.Println(fmt.Sprintf(" (*) Applying the substitution %s->%c (or its reverse) at one index", q.letters("->"), alpha[0]))
	if len(alpha) > 2 {
		out.Println(fmt.Sprintf(" (*) Replacing each %c with %c and vice versa (or %c with %c, etc.)", alpha[0], alpha[1], alpha[1], alpha[2]))
	} else {
		out.Println(fmt.Sprintf(" (*) Replacing each %c with %c and vice versa", alpha[0], alpha[1]))
	}
}

func (q *Analogy) letters(sep string) string {
	return strings.Join(strings.Split(q.Alphabet, ""), sep)
}

type analogyKey struct {
	Op       json.RawMessage `json:"op"`
	Examples []string        `json:"examples"`
	Test     string          `json:"test"`
	Alphabet string          `json:"alphabet"`
}

// AnalogyFactory draws a chain of Length operations over strings of Size
// symbols from Alphabet, with Examples labeled pairs.
type AnalogyFactory struct {
	Size     int
	Alphabet string
	Length   int
	Examples int
}

// DefaultAnalogy returns 8-symbol strings over "abc", four operations and
// four examples.
func DefaultAnalogy() AnalogyFactory {
	return AnalogyFactory{Size: 8, Alphabet: "abc", Length: 4, Examples: 4}
}

func (f AnalogyFactory) Kind() string { return KindAnalogy }

func (f AnalogyFactory) New(rng *rand.Rand) (question.Question, error) {
	if f.Size < 2 || f.Length < 1 || utf8.RuneCountInString(f.Alphabet) < 2 {
		return nil, fmt.Errorf("analogy: invalid parameters %+v", f)
	}
	op := stringop.RandomChain(rng, f.Size, f.Alphabet, f.Length)
	examples := make([]string, f.Examples)
	for i := range examples {
		examples[i] = stringop.RandomString(rng, f.Size, f.Alphabet)
	}
	return NewAnalogy(op, examples, stringop.RandomString(rng, f.Size, f.Alphabet), f.Alphabet)
}

func (f AnalogyFactory) Decode(key string) (question.Question, error) {
	var k analogyKey
	if err := decodeKey(key, &k); err != nil {
		return nil, err
	}
	op, err := stringop.Unmarshal(k.Op)
	if err != nil {
		return nil, err
	}
	return NewAnalogy(op, k.Examples, k.Test, k.Alphabet)
}
