package credibility

import "github.com/mohammad-safakhou/factlens/models"

const (
	InsightHighSource     = "High credibility source domain"
	InsightModerateSource = "Moderate credibility source domain"
	InsightDetailed       = "Article contains detailed information with dates and statistics"
	InsightManyCitations  = "Multiple credible sources cited"
	InsightSomeCitations  = "Some sources referenced"
	InsightStrongFactual  = "Strong factual evidence and data presented"
	InsightSomeFactual    = "Contains some factual indicators"
	InsightHighOverall    = "High credibility article with strong sourcing and evidence"
	InsightModerate       = "Moderately credible article with some supporting evidence"
	InsightLimited        = "Limited credibility indicators found - verify with additional sources"
)

// Insights turns a score into observations ordered source, content,
// citations, factual. The overall assessment is always last.
func Insights(score models.CredibilityScore) []string {
	b := score.Breakdown
	var out []string

	if s := tier(b.Source, InsightHighSource, InsightModerateSource); s != "" {
		out = append(out, s)
	}
	if b.Content > 15 {
		out = append(out, InsightDetailed)
	}
	if s := tier(b.Citations, InsightManyCitations, InsightSomeCitations); s != "" {
		out = append(out, s)
	}
	if s := tier(b.Factual, InsightStrongFactual, InsightSomeFactual); s != "" {
		out = append(out, s)
	}

	switch {
	case score.Total >= 80:
		out = append(out, InsightHighOverall)
	case score.Total >= 60:
		out = append(out, InsightModerate)
	default:
		out = append(out, InsightLimited)
	}
	return out
}

func tier(v int, high, moderate string) string {
	switch {
	case v > 15:
		return high
	case v > 5:
		return moderate
	}
	return ""
}
