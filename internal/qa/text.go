package qa

import (
	"regexp"
	"strings"

	"github.com/mohammad-safakhou/factlens/models"
)

const (
	minSentenceLength = 20
	minKeywordLength  = 3
)

var (
	whitespaceRun    = regexp.MustCompile(`[\s\p{Z}\x{FEFF}\x{0B}]+`)
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
	nonWord          = regexp.MustCompile(`\W+`)
	defaultStopWords = []string{"what", "who", "when", "where", "why", "how", "is", "are", "was", "were", "the", "a", "an", "in", "on", "at", "to", "for", "of"}
)

// Normalize collapses whitespace runs to a single space and trims.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Sentences splits normalized text on runs of . ! or ? and keeps trimmed
// pieces longer than 20 characters, in order.
func Sentences(text string) []string {
	var out []string
	for _, part := range sentenceBoundary.Split(Normalize(text), -1) {
		part = strings.TrimSpace(part)
		if models.TextLength(part) > minSentenceLength {
			out = append(out, part)
		}
	}
	return out
}

// words lowercases s and splits it on non-word runs.
func words(s string) []string {
	return nonWord.Split(strings.ToLower(s), -1)
}

// Keywords returns the lowercase question tokens longer than two characters
// that are not stop words. Order and repeats are preserved.
func Keywords(question string) []string {
	return keywords(question, stopWordSet(defaultStopWords))
}

func keywords(question string, stop map[string]struct{}) []string {
	var out []string
	for _, w := range words(question) {
		if len(w) < minKeywordLength {
			continue
		}
		if _, skip := stop[w]; skip {
			continue
		}
		out = append(out, w)
	}
	return out
}

func stopWordSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// orderedSet keeps the first insertion position of each sentence.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) Add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) Len() int { return len(s.items) }

// First returns up to n members in insertion order.
func (s *orderedSet) First(n int) []string {
	if n > len(s.items) {
		n = len(s.items)
	}
	return append([]string(nil), s.items[:n]...)
}
