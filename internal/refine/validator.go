package refine

import (
	"fmt"
	"regexp"
	"strings"
)

// speculativeKeywords flag uncertain language that has no place in a
// factual newsletter.
var speculativeKeywords = []string{
	"might", "could", "possibly", "perhaps", "probably",
	"likely", "may", "seems", "appears", "suggests",
	"apparently", "supposedly", "allegedly", "rumor",
}

// technicalTerms is the vocabulary checked for source consistency, in a
// fixed order so findings are deterministic.
var technicalTerms = []string{
	// monitoring
	"metrics", "latency", "throughput", "uptime", "availability",
	// architecture
	"microservices", "monolith", "distributed", "scalability", "resilience",
	// cloud
	"aws", "azure", "gcp", "kubernetes", "docker", "container",
	// database
	"sql", "nosql", "relational", "time-series",
}

const (
	maxSpeculativeExamples = 10
	maxTerminologyIssues   = 5
	contextWindow          = 50
)

// Issue is one accuracy finding.
type Issue struct {
	Type        string `json:"type"`
	Count       int    `json:"count,omitempty"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// TermIssue flags a technical term used in output but absent from the
// source material.
type TermIssue struct {
	Term     string `json:"term"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
}

// Review is the outcome of an accuracy check.
type Review struct {
	IsAccurate         bool        `json:"is_accurate"`
	Issues             []Issue     `json:"issues_found"`
	SpeculativeContent []string    `json:"speculative_content"`
	TerminologyIssues  []TermIssue `json:"terminology_issues"`
	ConfidenceScore    float64     `json:"confidence_score"`
	Recommendations    []string    `json:"recommendations"`
}

// Validator checks refined content against the source material.
type Validator struct {
	speculative []*regexp.Regexp
}

func NewValidator() *Validator {
	patterns := make([]*regexp.Regexp, len(speculativeKeywords))
	for i, kw := range speculativeKeywords {
		patterns[i] = regexp.MustCompile(`(?i)\b` + kw + `\b`)
	}
	return &Validator{speculative: patterns}
}

// Validate checks content for speculative language and terminology that
// does not appear in the source. The confidence score starts at 1.0 and
// loses 0.1 per issue class, floored at 0.5.
func (v *Validator) Validate(content, source string) Review {
	review := Review{
		IsAccurate:         true,
		Issues:             []Issue{},
		SpeculativeContent: []string{},
		TerminologyIssues:  []TermIssue{},
		Recommendations:    []string{},
	}

	if spec := v.findSpeculative(content); len(spec) > 0 {
		review.SpeculativeContent = spec
		review.IsAccurate = false
		review.Issues = append(review.Issues, Issue{
			Type:        "speculative_content",
			Count:       len(spec),
			Severity:    "medium",
			Description: "Content contains speculative or uncertain language",
		})
	}

	if terms := checkTerminology(content, source); len(terms) > 0 {
		review.TerminologyIssues = terms
		review.IsAccurate = false
		review.Issues = append(review.Issues, Issue{
			Type:        "terminology_inconsistency",
			Count:       len(terms),
			Severity:    "low",
			Description: "Some technical terms may not match source exactly",
		})
	}

	review.ConfidenceScore = 1.0 - float64(len(review.Issues))*0.1
	if review.ConfidenceScore < 0.5 {
		review.ConfidenceScore = 0.5
	}
	review.Recommendations = recommendations(review)

	return review
}

// findSpeculative returns context windows around speculative keywords,
// capped at maxSpeculativeExamples.
func (v *Validator) findSpeculative(content string) []string {
	var found []string
	for _, pattern := range v.speculative {
		for _, loc := range pattern.FindAllStringIndex(content, -1) {
			start := loc[0] - contextWindow
			if start < 0 {
				start = 0
			}
			end := loc[1] + contextWindow
			if end > len(content) {
				end = len(content)
			}
			found = append(found, strings.TrimSpace(content[start:end]))
			if len(found) == maxSpeculativeExamples {
				return found
			}
		}
	}
	return found
}

// checkTerminology flags technical vocabulary present in the output but
// missing from the source, capped at maxTerminologyIssues.
func checkTerminology(content, source string) []TermIssue {
	contentLower := strings.ToLower(content)
	sourceLower := strings.ToLower(source)

	var issues []TermIssue
	for _, term := range technicalTerms {
		if !strings.Contains(contentLower, term) {
			continue
		}
		if strings.Contains(sourceLower, term) {
			continue
		}
		issues = append(issues, TermIssue{
			Term:     term,
			Type:     "not_in_source",
			Severity: "medium",
		})
		if len(issues) == maxTerminologyIssues {
			break
		}
	}
	return issues
}

func recommendations(review Review) []string {
	recs := []string{}
	if len(review.SpeculativeContent) > 0 {
		recs = append(recs, "Remove or replace speculative language with definitive statements from source material")
	}
	if len(review.TerminologyIssues) > 0 {
		recs = append(recs, "Verify technical terminology matches source material exactly")
	}
	if review.ConfidenceScore < 0.8 {
		recs = append(recs, "Conduct manual review of extracted content against source")
	}
	if !review.IsAccurate {
		recs = append(recs, "Flag content for editorial review before publication")
	}
	return recs
}

// Summary renders the review as a short log-friendly line.
func (r Review) Summary() string {
	return fmt.Sprintf("accurate=%t confidence=%.0f%% issues=%d", r.IsAccurate, r.ConfidenceScore*100, len(r.Issues))
}
