// Package dictionary provides the word list behind anagram questions.
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

//go:embed words.txt
var embedded string

// Words strictly longer than 4 and strictly shorter than 8 letters are kept.
const (
	MinLength = 5
	MaxLength = 7
)

// ErrEmpty is returned when no eligible word was loaded.
var ErrEmpty = errors.New("dictionary has no eligible words")

// Cache loads a word list on first use and keeps it for its lifetime.
// The zero value is not usable; create one with New or FromWords.
type Cache struct {
	path string

	once  sync.Once
	words []string
	set   map[string]struct{}
	err   error
}

// New returns a cache over the file at path, or over the built-in list
// when path is empty. Nothing is read until the first lookup.
func New(path string) *Cache {
	return &Cache{path: path}
}

// FromWords returns a cache over an in-memory list.
func FromWords(words ...string) *Cache {
	c := &Cache{}
	c.once.Do(func() { c.index(words) })
	return c
}

// Path reports the file backing the cache. Empty means the built-in list.
func (c *Cache) Path() string { return c.path }

// Words returns the sorted eligible words.
func (c *Cache) Words() ([]string, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	return c.words, nil
}

// Contains reports whether word is an eligible dictionary word. A cache
// that failed to load contains nothing.
func (c *Cache) Contains(word string) bool {
	c.once.Do(c.load)
	_, ok := c.set[word]
	return ok
}

// Random draws one eligible word uniformly.
func (c *Cache) Random(rng *rand.Rand) (string, error) {
	words, err := c.Words()
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", ErrEmpty
	}
	return words[rng.IntN(len(words))], nil
}

// Eligible reports whether word has an allowed length.
func Eligible(word string) bool {
	n := utf8.RuneCountInString(word)
	return n >= MinLength && n <= MaxLength
}

func (c *Cache) load() {
	var r io.Reader = strings.NewReader(embedded)
	if c.path != "" {
		f, err := os.Open(c.path)
		if err != nil {
			c.err = fmt.Errorf("open dictionary: %w", err)
			return
		}
		defer f.Close()
		r = f
	}

	words, err := readWords(r)
	if err != nil {
		c.err = fmt.Errorf("read dictionary %s: %w", c.path, err)
		return
	}
	c.index(words)
}

func (c *Cache) index(words []string) {
	c.set = make(map[string]struct{}, len(words))
	for _, w := range words {
		if Eligible(w) {
			c.set[w] = struct{}{}
		}
	}
	c.words = make([]string, 0, len(c.set))
	for w := range c.set {
		c.words = append(c.words, w)
	}
	slices.Sort(c.words)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	return words, sc.Err()
}
