package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/pressroom-labs/pressroom/internal/chunk"
)

// Category identifies one extraction goal.
type Category string

const (
	CategoryExecutiveSummary  Category = "executive_summary"
	CategoryKeyHighlights     Category = "key_highlights"
	CategoryFeatureArticles   Category = "feature_articles"
	CategoryQuickBites        Category = "quick_bites"
	CategoryActionItems       Category = "action_items"
	CategoryTechnologies      Category = "technologies"
	CategoryArchitectures     Category = "architectures"
	CategoryBestPractices     Category = "best_practices"
	CategoryDiagrams          Category = "diagrams"
	CategoryStrategicInsights Category = "strategic_insights"
)

// systemPrompt is shared by every extraction request.
const systemPrompt = "You are an expert enterprise technology analyst and technical writer. " +
	"Extract only factual information from the content provided."

// styleContract is appended to every task prompt. It encodes the editorial
// register the newsletter demands.
const styleContract = `
Style requirements:
- Write in an assertive, analytical register backed by concrete data points from the content.
- Never use hedging language: "might", "could", "possibly", "maybe", "probably".
- No vague or generic claims; every statement must be specific to this content.
- Items must not repeat or rephrase their siblings.`

// contentMarker is replaced with the selected context when a prompt is
// built.
const contentMarker = "{content}"

// Task is the static configuration of one extraction pass: which chunks
// it sees, how much context it gets, how it prompts, and how its response
// is parsed. Context limits live here, table-driven, rather than inline
// at call sites.
type Task struct {
	Category     Category
	ContextLimit int
	MaxTokens    int
	Temperature  float64
	Template     string
}

// Tasks returns the fixed task table in pass order.
func Tasks() []Task {
	return []Task{
		{
			Category:     CategoryExecutiveSummary,
			ContextLimit: 8000,
			MaxTokens:    900,
			Temperature:  0.3,
			Template: `Based on the following content, provide a 2-3 paragraph executive summary focusing on:
- What this content covers
- Why it matters for enterprise IT decision makers
- Key business and technical value
` + styleContract + `

Content:
{content}

Executive Summary:`,
		},
		{
			Category:     CategoryKeyHighlights,
			ContextLimit: 8000,
			MaxTokens:    1200,
			Temperature:  0.5,
			Template: `Based on the following content, list 5-7 key highlights. For each, provide:
- title: Short impactful title (5-8 words)
- description: 1-2 line explanation of impact and relevance
- category: One-word topic label

Return as JSON array of objects with "title", "description" and "category" keys.
` + styleContract + `

Content:
{content}

Key Highlights (JSON):`,
		},
		{
			Category:     CategoryFeatureArticles,
			ContextLimit: 10000,
			MaxTokens:    2000,
			Temperature:  0.5,
			Template: `Based on the following content, identify 2-4 major topics for deep dive feature articles. For each, provide:
- title: Section title
- context: Problem statement or background
- key_ideas: Main architectural or technical concepts
- benefits: Business and technical benefits
- best_practices: Recommended practices
- call_to_action: Concrete next step

Return as JSON array of objects.
` + styleContract + `

Content:
{content}

Feature Articles (JSON):`,
		},
		{
			Category:     CategoryQuickBites,
			ContextLimit: 6000,
			MaxTokens:    600,
			Temperature:  0.5,
			Template: `Based on the following content, list 3-5 short updates, tips, or minor announcements (1-2 sentences each).
` + styleContract + `

Content:
{content}

Quick Bites:`,
		},
		{
			Category:     CategoryActionItems,
			ContextLimit: 6000,
			MaxTokens:    800,
			Temperature:  0.5,
			Template: `Based on the following content, identify concrete action items for:
- engineering_teams: Actions for developers and engineers
- architecture_teams: Actions for architects and strategy teams
- leadership: Actions for decision makers and leadership

Return as JSON object with these three keys, each containing an array of action items.
` + styleContract + `

Content:
{content}

Action Items (JSON):`,
		},
		{
			Category:     CategoryTechnologies,
			ContextLimit: 6000,
			MaxTokens:    400,
			Temperature:  0.4,
			Template: `Based on the following content, list all technologies, tools, platforms, and services mentioned.
Return as JSON array of strings.

Content:
{content}

Technologies (JSON):`,
		},
		{
			Category:     CategoryArchitectures,
			ContextLimit: 6000,
			MaxTokens:    1000,
			Temperature:  0.5,
			Template: `Based on the following content, identify key architectures or design patterns. For each, provide:
- name: Architecture or pattern name
- description: Brief description
- components: Key components or services
- use_case: When to use this

Return as JSON array of objects.
` + styleContract + `

Content:
{content}

Architectures (JSON):`,
		},
		{
			Category:     CategoryBestPractices,
			ContextLimit: 6000,
			MaxTokens:    600,
			Temperature:  0.5,
			Template: `Based on the following content, list 4-6 best practices or recommendations mentioned.
` + styleContract + `

Content:
{content}

Best Practices:`,
		},
		{
			Category:     CategoryDiagrams,
			ContextLimit: 6000,
			MaxTokens:    1200,
			Temperature:  0.5,
			Template: `Based on the following content, suggest 3-4 technical diagrams that would help explain the content. For each:
- type: "architecture" | "workflow" | "integration" | "security"
- title: Diagram title
- purpose: What it explains and who it's for
- elements: List of key components/nodes
- description: How to recreate it

Return as JSON array of objects.

Content:
{content}

Diagrams (JSON):`,
		},
		{
			Category:     CategoryStrategicInsights,
			ContextLimit: 8000,
			MaxTokens:    1000,
			Temperature:  0.3,
			Template: `Based on the following content, provide strategic insights for executive readers:
- business_impact: The single most important business consequence ("so what?")
- risk_factors: Concrete risks the content surfaces
- strategic_opportunities: Opportunities worth leadership attention
- key_metrics: Numbers and measures that matter

Return as JSON object with these four keys.
` + styleContract + `

Content:
{content}

Strategic Insights (JSON):`,
		},
	}
}

// Prompt builds the task's prompt with the selected context embedded.
func (t Task) Prompt(context string) string {
	return strings.Replace(t.Template, contentMarker, context, 1)
}

// SelectContext applies the task's fixed chunk-selection policy and
// truncates the result to the task's context limit. chunks are in
// document order, ranked in descending relevance order, and raw is the
// full document (only the strategic pass reads it directly).
func (t Task) SelectContext(chunks, ranked []chunk.Chunk, raw string) string {
	var selected []chunk.Chunk

	switch t.Category {
	case CategoryExecutiveSummary:
		selected = append(byPosition(chunks, chunk.PositionEarly, 2),
			byPosition(chunks, chunk.PositionLate, 2)...)
	case CategoryKeyHighlights:
		selected = head(ranked, 5)
	case CategoryFeatureArticles:
		middle := byPosition(chunks, chunk.PositionMiddle, 4)
		if len(middle) < 2 {
			middle = head(chunks, 4)
		}
		selected = middle
	case CategoryStrategicInsights:
		return truncate(raw, t.ContextLimit)
	default:
		// quick_bites, action_items, technologies, architectures,
		// best_practices, diagrams: first 6 chunks in document order.
		selected = head(chunks, 6)
	}

	parts := make([]string, len(selected))
	for i, ch := range selected {
		parts[i] = ch.Text
	}
	return truncate(strings.Join(parts, "\n\n"), t.ContextLimit)
}

// byPosition returns up to n chunks with the given position tag, in
// document order.
func byPosition(chunks []chunk.Chunk, pos chunk.Position, n int) []chunk.Chunk {
	out := make([]chunk.Chunk, 0, n)
	for _, ch := range chunks {
		if ch.Position == pos {
			out = append(out, ch)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// head returns up to n leading chunks.
func head(chunks []chunk.Chunk, n int) []chunk.Chunk {
	if n > len(chunks) {
		n = len(chunks)
	}
	return chunks[:n]
}

// truncate bounds s to at most n bytes, backing off to a rune boundary
// so a multi-byte character is never cut mid-sequence.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
