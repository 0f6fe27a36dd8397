// Package refine polishes extracted knowledge for publication: casual
// language is replaced with professional phrasing, titles are cased,
// action items get strong leading verbs, and the result is checked for
// speculative language against the source material.
package refine

import (
	"regexp"
	"strings"

	"github.com/pressroom-labs/pressroom/internal/extract"
)

// replacement rewrites one casual or filler pattern.
type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// professionalReplacements maps conversational phrasing onto newsletter
// register. Order matters: fillers are removed after substitutions run.
var professionalReplacements = []replacement{
	{regexp.MustCompile(`(?i)\bwanna\b`), "want to"},
	{regexp.MustCompile(`(?i)\bgotta\b`), "have to"},
	{regexp.MustCompile(`(?i)\bkinda\b`), "somewhat"},
	{regexp.MustCompile(`(?i)\bsorta\b`), "somewhat"},
	{regexp.MustCompile(`(?i)\bguys?\b`), "team members"},
	{regexp.MustCompile(`(?i)\bstuff\b`), "items"},
	{regexp.MustCompile(`(?i)\bthings?\b`), "components"},
	{regexp.MustCompile(`(?i)\blots?\s+of\b`), "many"},
	{regexp.MustCompile(`(?i)\ba\s+lot\b`), "significantly"},
	{regexp.MustCompile(`(?i)\byou\s+know\b`), ""},
	{regexp.MustCompile(`(?i)\bI\s+mean\b`), ""},
	{regexp.MustCompile(`(?i)\bbasically\b`), ""},
	{regexp.MustCompile(`(?i)\bactually\b`), ""},
}

var (
	multiSpace     = regexp.MustCompile(`\s+`)
	sentenceSplit  = regexp.MustCompile(`(?:[.!?])\s+`)
	weakOpening    = regexp.MustCompile(`(?i)^(The content covers|This newsletter discusses|This document presents)\s+`)
	strongVerbs    = regexp.MustCompile(`(?i)^(Review|Implement|Evaluate|Plan|Schedule|Document|Analyze|Monitor|Test|Update|Develop|Establish|Define|Create|Deploy|Optimize)\b`)
	minorTitleWord = map[string]bool{
		"a": true, "an": true, "the": true, "and": true, "or": true,
		"but": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	}
)

// Refiner rewrites knowledge fields in place.
type Refiner struct{}

func NewRefiner() *Refiner { return &Refiner{} }

// Refine polishes every field of the knowledge record. The record is
// mutated in place and returned for chaining.
func (r *Refiner) Refine(k *extract.ExtractedKnowledge) *extract.ExtractedKnowledge {
	k.ExecutiveSummary = r.Summary(k.ExecutiveSummary)

	for i, h := range k.KeyHighlights {
		k.KeyHighlights[i].Title = r.Title(h.Title)
		k.KeyHighlights[i].Description = r.Description(h.Description)
	}
	for i, a := range k.FeatureArticles {
		k.FeatureArticles[i].Title = r.Title(a.Title)
		k.FeatureArticles[i].Context = r.Description(a.Context)
		k.FeatureArticles[i].KeyIdeas = extract.FlexString(r.Description(a.KeyIdeas.String()))
		k.FeatureArticles[i].Benefits = extract.FlexString(r.Description(a.Benefits.String()))
		k.FeatureArticles[i].BestPractices = extract.FlexString(r.Description(a.BestPractices.String()))
		k.FeatureArticles[i].CallToAction = r.Description(a.CallToAction)
	}

	k.ActionItems.EngineeringTeams = r.actionItems(k.ActionItems.EngineeringTeams)
	k.ActionItems.ArchitectureTeams = r.actionItems(k.ActionItems.ArchitectureTeams)
	k.ActionItems.Leadership = r.actionItems(k.ActionItems.Leadership)

	return k
}

// Summary rewrites the executive summary sentence by sentence: casual
// language out, sentences capitalised, weak generic openings dropped.
func (r *Refiner) Summary(text string) string {
	text = weakOpening.ReplaceAllString(strings.TrimSpace(text), "")
	if text == "" {
		return ""
	}

	sentences := splitSentences(text)
	for i, s := range sentences {
		s = removeCasual(s)
		sentences[i] = capitalize(s)
	}
	return strings.Join(sentences, " ")
}

// Title applies the replacement table and then title-cases major words.
func (r *Refiner) Title(title string) string {
	title = removeCasual(title)
	words := strings.Fields(title)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && minorTitleWord[lower] {
			words[i] = lower
			continue
		}
		words[i] = capitalize(lower)
	}
	return strings.Join(words, " ")
}

// Description cleans a body field and guarantees terminal punctuation.
func (r *Refiner) Description(text string) string {
	text = removeCasual(text)
	if text == "" {
		return ""
	}
	if !strings.ContainsAny(text[len(text)-1:], ".!?") {
		text += "."
	}
	return text
}

// ActionItem forces a strong leading verb. The verb is picked from the
// item's own vocabulary: tools get evaluated, processes get established,
// everything else gets implemented.
func (r *Refiner) ActionItem(item string) string {
	item = removeCasual(item)
	if item == "" {
		return ""
	}

	if !strongVerbs.MatchString(item) {
		lower := strings.ToLower(item)
		lowered := strings.ToLower(item[:1]) + item[1:]
		switch {
		case strings.Contains(lower, "tool"), strings.Contains(lower, "solution"):
			item = "Evaluate " + lowered
		case strings.Contains(lower, "process"):
			item = "Establish " + lowered
		default:
			item = "Implement " + lowered
		}
	}

	if !strings.ContainsAny(item[len(item)-1:], ".!?") {
		item += "."
	}
	return item
}

func (r *Refiner) actionItems(items extract.FlexStrings) extract.FlexStrings {
	out := make(extract.FlexStrings, len(items))
	for i, item := range items {
		out[i] = r.ActionItem(item)
	}
	return out
}

func removeCasual(text string) string {
	for _, rep := range professionalReplacements {
		text = rep.pattern.ReplaceAllString(text, rep.with)
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(text, " "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// splitSentences breaks text on sentence-ending punctuation, keeping the
// punctuation with its sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	locs := sentenceSplit.FindAllStringIndex(text, -1)
	for _, loc := range locs {
		// loc[0] is the punctuation mark, keep it.
		out = append(out, strings.TrimSpace(text[start:loc[0]+1]))
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
