package variant

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/cogtests/internal/question"
)

// Dictionary is the word source anagram questions draw from and check
// against. *dictionary.Cache implements it.
type Dictionary interface {
	Random(rng *rand.Rand) (string, error)
	Contains(word string) bool
}

// Anagram shows a scrambled word. The original word and any dictionary
// word with the same letters are accepted. The original may be missing
// from the local dictionary when the question came from another machine.
type Anagram struct {
	Original  string
	Scrambled string

	words Dictionary
}

// NewAnagram returns the question for a word and its scrambling.
func NewAnagram(words Dictionary, original, scrambled string) *Anagram {
	return &Anagram{Original: original, Scrambled: scrambled, words: words}
}

func (q *Anagram) Kind() string { return KindAnagram }

func (q *Anagram) Key() string {
	return encodeKey(anagramKey{Original: q.Original, Scrambled: q.Scrambled})
}

func (q *Anagram) CorrectAnswer() any { return q.Original }

func (q *Anagram) Render() string { return fmt.Sprintf("Anagram %s.", q.Scrambled) }

func (q *Anagram) Parse(raw string) (any, error) {
	return strings.TrimSpace(raw), nil
}

func (q *Anagram) Check(answer any) bool {
	s, ok := answer.(string)
	if !ok {
		return false
	}
	if s == q.Original {
		return true
	}
	return sameLetters(s, q.Original) && q.words != nil && q.words.Contains(s)
}

func (q *Anagram) Clarify(out question.Output) {
	out.Paragraph(fmt.Sprintf("Rearrange the letters %q to make an English word or proper noun.", q.Scrambled))
}

func sameLetters(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	slices.Sort(ra)
	slices.Sort(rb)
	return slices.Equal(ra, rb)
}

type anagramKey struct {
	Original  string `json:"original"`
	Scrambled string `json:"scrambled"`
}

// AnagramFactory draws words from Dictionary and shuffles their letters.
type AnagramFactory struct {
	Dictionary Dictionary
}

func (f AnagramFactory) Kind() string { return KindAnagram }

func (f AnagramFactory) New(rng *rand.Rand) (question.Question, error) {
	if f.Dictionary == nil {
		return nil, errors.New("anagram: no dictionary")
	}
	word, err := f.Dictionary.Random(rng)
	if err != nil {
		return nil, fmt.Errorf("anagram: %w", err)
	}
	letters := []rune(word)
	rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
	return NewAnagram(f.Dictionary, word, string(letters)), nil
}

func (f AnagramFactory) Decode(key string) (question.Question, error) {
	var k anagramKey
	if err := decodeKey(key, &k); err != nil {
		return nil, err
	}
	if !sameLetters(k.Original, k.Scrambled) {
		return nil, fmt.Errorf("anagram: %q is not a scrambling of %q", k.Scrambled, k.Original)
	}
	return NewAnagram(f.Dictionary, k.Original, k.Scrambled), nil
}
