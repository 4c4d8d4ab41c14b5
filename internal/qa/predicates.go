package qa

import (
	"regexp"
	"strings"
)

var (
	personNamePattern = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)
	datePattern       = regexp.MustCompile(`\b\d{4}\b|\b(January|February|March|April|May|June|July|August|September|October|November|December)\b|\b\d{1,2}(st|nd|rd|th)\b`)
	locationPattern   = regexp.MustCompile(`\b[A-Z][a-z]+(,\s*[A-Z][a-z]+)*\b`)
	causalConnectives = []string{"because", "due to", "as a result", "therefore", "since"}
)

// LooksLikePersonName reports two adjacent capitalised words.
func LooksLikePersonName(s string) bool { return personNamePattern.MatchString(s) }

// LooksLikeDate reports a four-digit year, a month name or an ordinal day.
func LooksLikeDate(s string) bool { return datePattern.MatchString(s) }

// LooksLikeLocation reports a capitalised word, optionally followed by
// comma-separated capitalised words ("Paris, France"). It is deliberately
// loose: almost any sentence that starts with a capital letter matches.
func LooksLikeLocation(s string) bool { return locationPattern.MatchString(s) }

// HasCausalConnective reports whether s contains a causal phrase, case-insensitively.
func HasCausalConnective(s string) bool {
	lower := strings.ToLower(s)
	for _, c := range causalConnectives {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}
