// Package qa answers free-text questions about an article by picking the
// sentences that share keywords with the question.
package qa

import (
	"strings"
	"time"

	"github.com/mohammad-safakhou/factlens/models"
)

// NoAnswer is returned when no sentence shares a keyword with the question.
const NoAnswer = "I couldn't find a specific answer to this question in the article. Try rephrasing your question or check if the article contains this information."

const maxExcerpts = 3

type Engine struct {
	stopWords map[string]struct{}
	now       func() time.Time
}

type Option func(*Engine)

// WithStopWords replaces the question stop-word list.
func WithStopWords(words []string) Option {
	return func(e *Engine) {
		if len(words) > 0 {
			e.stopWords = stopWordSet(words)
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{stopWords: stopWordSet(defaultStopWords), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify maps the first space-separated word of the question to a
// question type. Anything else is general.
func Classify(question string) models.QuestionType {
	first := strings.Split(strings.ToLower(question), " ")[0]
	switch t := models.QuestionType(first); t {
	case models.QuestionWhat, models.QuestionWho, models.QuestionWhen,
		models.QuestionWhere, models.QuestionWhy, models.QuestionHow:
		return t
	}
	return models.QuestionGeneral
}

// Answer runs the question against content. Blank question or content is a
// validation error.
func (e *Engine) Answer(question, content string) (models.QuestionAnswer, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(content) == "" {
		return models.QuestionAnswer{}, &models.ValidationError{
			Code:    "Missing data",
			Message: "Please provide both question and article content",
		}
	}

	sentences := Sentences(content)
	tokens := keywords(question, e.stopWords)
	relevant := relevantSentences(sentences, tokens)
	context := contextSet(sentences, relevant)
	qtype := Classify(question)

	answer := NoAnswer
	if len(relevant) > 0 {
		answer = synthesize(qtype, relevant)
	}

	excerpts := context.First(maxExcerpts)
	if excerpts == nil {
		excerpts = []string{}
	}
	if tokens == nil {
		tokens = []string{}
	}
	return models.QuestionAnswer{
		Question:         question,
		Type:             qtype,
		Answer:           answer,
		Confidence:       confidence(len(relevant), len(tokens), context.Len()),
		RelevantExcerpts: excerpts,
		Keywords:         tokens,
		AnalyzedAt:       e.now().UTC(),
	}, nil
}

// relevantSentences keeps every sentence (duplicates included) with at
// least one word equal to a question token.
func relevantSentences(sentences, tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		want[t] = struct{}{}
	}
	var out []string
	for _, s := range sentences {
		for _, w := range words(s) {
			if _, ok := want[w]; ok {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// contextSet adds predecessor, sentence and successor for each relevant
// sentence. Neighbours are taken around the sentence's first occurrence.
func contextSet(sentences, relevant []string) *orderedSet {
	firstIndex := make(map[string]int, len(sentences))
	for i, s := range sentences {
		if _, ok := firstIndex[s]; !ok {
			firstIndex[s] = i
		}
	}
	set := newOrderedSet()
	for _, s := range relevant {
		i := firstIndex[s]
		if i > 0 {
			set.Add(sentences[i-1])
		}
		set.Add(s)
		if i < len(sentences)-1 {
			set.Add(sentences[i+1])
		}
	}
	return set
}

func synthesize(qtype models.QuestionType, relevant []string) string {
	first := relevant[0]
	fallback := "According to the article, " + first
	switch qtype {
	case models.QuestionWhat:
		answer := "Based on the article, " + first
		if len(relevant) > 1 {
			answer += " Furthermore, " + relevant[1]
		}
		return answer
	case models.QuestionWho:
		if s, ok := find(relevant, LooksLikePersonName); ok {
			return "The article mentions that " + s
		}
		return fallback
	case models.QuestionWhen:
		if s, ok := find(relevant, LooksLikeDate); ok {
			return "The article indicates that " + s
		}
		return fallback
	case models.QuestionWhere:
		if s, ok := find(relevant, LooksLikeLocation); ok {
			return "The location mentioned in the article is: " + s
		}
		return fallback
	case models.QuestionWhy:
		if s, ok := find(relevant, HasCausalConnective); ok {
			return "The article explains that " + s
		}
		return "Based on the article, " + strings.Join(relevant, " ")
	case models.QuestionHow:
		return "The article describes that " + strings.Join(relevant, " ")
	default:
		return "According to the article: " + strings.Join(relevant, " ")
	}
}

func find(sentences []string, pred func(string) bool) (string, bool) {
	for _, s := range sentences {
		if pred(s) {
			return s, true
		}
	}
	return "", false
}

func confidence(relevant, tokens, context int) int {
	return min(100, relevant*20+tokens*10+context*5)
}
