// Package rank orders chunks by keyword-weighted relevance so high-value
// extraction passes can select the most business-relevant context first.
package rank

import (
	"sort"
	"strings"

	"github.com/pressroom-labs/pressroom/internal/chunk"
)

// Keyword weights. Business-impact terms count double because the
// newsletter's highlight passes favour business framing over raw
// technical detail.
const (
	businessWeight  = 2
	technicalWeight = 1
)

// businessKeywords are terms that signal business impact.
var businessKeywords = []string{
	"impact", "cost", "revenue", "efficiency", "risk", "strategic",
	"roi", "opportunity", "growth", "competitive", "advantage",
	"savings", "investment", "business", "customer", "market", "value",
}

// technicalKeywords are terms that signal technical substance.
var technicalKeywords = []string{
	"architecture", "scalability", "performance", "security",
	"reliability", "availability", "integration", "deployment",
	"infrastructure", "system", "platform", "service", "api",
}

// Ranker scores chunks by weighted keyword occurrence.
type Ranker struct{}

// NewRanker creates a Ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Score returns the relevance score for a piece of text. Matching is
// substring-based and case-insensitive; every occurrence counts.
func (r *Ranker) Score(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range businessKeywords {
		score += businessWeight * strings.Count(lower, kw)
	}
	for _, kw := range technicalKeywords {
		score += technicalWeight * strings.Count(lower, kw)
	}
	return score
}

// Rank returns up to topK chunks ordered by descending relevance score.
// The input slice is never mutated; scored copies are sorted with a
// stable sort so ties preserve original chunk order and repeated calls
// are deterministic. A topK <= 0 returns all chunks.
func (r *Ranker) Rank(chunks []chunk.Chunk, topK int) []chunk.Chunk {
	scored := make([]chunk.Chunk, len(chunks))
	for i, ch := range chunks {
		ch.Score = r.Score(ch.Text)
		scored[i] = ch
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK <= 0 || topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}
