package render

import (
	"encoding/json"
	"time"

	"github.com/pressroom-labs/pressroom/internal/diagram"
	"github.com/pressroom-labs/pressroom/internal/extract"
	"github.com/pressroom-labs/pressroom/internal/refine"
)

// envelope is the machine-readable newsletter document.
type envelope struct {
	ID                 string                       `json:"id"`
	Title              string                       `json:"title"`
	Subtitle           string                       `json:"subtitle"`
	GeneratedAt        time.Time                    `json:"generated_at"`
	ExecutiveSummary   string                       `json:"executive_summary"`
	KeyHighlights      []extract.Highlight          `json:"key_highlights"`
	FeatureArticles    []extract.FeatureArticle     `json:"feature_articles"`
	QuickBites         []string                     `json:"quick_bites"`
	ActionItems        extract.ActionItems          `json:"action_items"`
	Technologies       []string                     `json:"technologies"`
	Architectures      []extract.Architecture       `json:"architectures"`
	BestPractices      []string                     `json:"best_practices"`
	StrategicInsights  extract.StrategicInsights    `json:"strategic_insights"`
	Diagrams           []diagram.Spec               `json:"diagrams"`
	DiagramSuggestions []extract.DiagramSuggestion  `json:"diagram_suggestions"`
	AccuracyReview     *refine.Review               `json:"accuracy_review,omitempty"`
	Metadata           extract.Metadata             `json:"metadata"`
}

// JSON renders the issue as an indented JSON document.
func (n *Newsletter) JSON() ([]byte, error) {
	k := n.Knowledge
	env := envelope{
		ID:                 n.ID,
		Title:              n.Title,
		Subtitle:           n.Subtitle,
		GeneratedAt:        n.GeneratedAt,
		ExecutiveSummary:   k.ExecutiveSummary,
		KeyHighlights:      k.KeyHighlights,
		FeatureArticles:    k.FeatureArticles,
		QuickBites:         k.QuickBites,
		ActionItems:        k.ActionItems,
		Technologies:       k.Technologies,
		Architectures:      k.Architectures,
		BestPractices:      k.BestPractices,
		StrategicInsights:  k.StrategicInsights,
		Diagrams:           n.Diagrams,
		DiagramSuggestions: k.DiagramSuggestions,
		AccuracyReview:     n.Review,
		Metadata:           k.Metadata,
	}
	if env.Diagrams == nil {
		env.Diagrams = []diagram.Spec{}
	}
	return json.MarshalIndent(env, "", "  ")
}
