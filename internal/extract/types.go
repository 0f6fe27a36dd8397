// Package extract implements the multi-pass knowledge-extraction pipeline:
// chunking and ranking feed a fixed table of extraction tasks, each issuing
// one completion request and parsing the response defensively into a typed
// knowledge structure. Downstream refinement, diagram, and render stages
// consume the result.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString is a string field that tolerates model output returning a
// JSON array instead of a string. Lists are resolved once, here at the
// data-model boundary, into a single joined string so consumers never
// branch on shape.
type FlexString string

// UnmarshalJSON accepts a string, an array (joined with spaces), or any
// other scalar (kept as its literal token).
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, v := range list {
			parts = append(parts, fmt.Sprint(v))
		}
		*f = FlexString(strings.Join(parts, " "))
		return nil
	}
	*f = FlexString(strings.Trim(string(data), `"`))
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexStrings is a string-list field that tolerates a single string where
// a JSON array was requested. A lone string is split on commas, which is
// how models typically flatten short label lists.
type FlexStrings []string

// UnmarshalJSON accepts an array of values or a single string.
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, v := range list {
			out = append(out, fmt.Sprint(v))
		}
		*f = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*f = out
		return nil
	}
	*f = FlexStrings{}
	return nil
}

// Highlight is one key-highlight entry.
type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// FeatureArticle is one deep-dive article candidate.
type FeatureArticle struct {
	Title         string     `json:"title"`
	Context       string     `json:"context"`
	KeyIdeas      FlexString `json:"key_ideas"`
	Benefits      FlexString `json:"benefits"`
	BestPractices FlexString `json:"best_practices"`
	CallToAction  string     `json:"call_to_action"`
}

// ActionItems groups follow-ups by audience. The keys are fixed.
type ActionItems struct {
	EngineeringTeams  FlexStrings `json:"engineering_teams"`
	ArchitectureTeams FlexStrings `json:"architecture_teams"`
	Leadership        FlexStrings `json:"leadership"`
}

// Architecture describes an architecture or design pattern found in the
// source material.
type Architecture struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Components  FlexStrings `json:"components"`
	UseCase     string      `json:"use_case"`
}

// Valid diagram suggestion types.
const (
	DiagramArchitecture = "architecture"
	DiagramWorkflow     = "workflow"
	DiagramIntegration  = "integration"
	DiagramSecurity     = "security"
)

// DiagramSuggestion is data for the diagram-rendering collaborator; this
// package never renders diagrams itself.
type DiagramSuggestion struct {
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Purpose     string      `json:"purpose"`
	Elements    FlexStrings `json:"elements"`
	Description string      `json:"description"`
}

// StrategicInsights is the dedicated business-framing pass output,
// distinct from the general executive summary.
type StrategicInsights struct {
	BusinessImpact         FlexString `json:"business_impact"`
	RiskFactors            FlexString `json:"risk_factors"`
	StrategicOpportunities FlexString `json:"strategic_opportunities"`
	KeyMetrics             FlexString `json:"key_metrics"`
}

// Metadata carries document-level counts.
type Metadata struct {
	TotalWords int `json:"total_words"`
	TotalChars int `json:"total_chars"`
}

// ExtractedKnowledge is the pipeline's output record. Every field has a
// safe empty default: a run where every extraction task fails still
// returns a complete, well-typed structure.
type ExtractedKnowledge struct {
	ExecutiveSummary   string              `json:"executive_summary"`
	KeyHighlights      []Highlight         `json:"key_highlights"`
	FeatureArticles    []FeatureArticle    `json:"feature_articles"`
	QuickBites         []string            `json:"quick_bites"`
	ActionItems        ActionItems         `json:"action_items"`
	Technologies       []string            `json:"technologies"`
	Architectures      []Architecture      `json:"architectures"`
	BestPractices      []string            `json:"best_practices"`
	DiagramSuggestions []DiagramSuggestion `json:"diagram_suggestions"`
	StrategicInsights  StrategicInsights   `json:"strategic_insights"`
	Metadata           Metadata            `json:"metadata"`
}

// NewExtractedKnowledge returns a fully constructed record with empty
// (non-nil) collections.
func NewExtractedKnowledge() *ExtractedKnowledge {
	return &ExtractedKnowledge{
		KeyHighlights:      []Highlight{},
		FeatureArticles:    []FeatureArticle{},
		QuickBites:         []string{},
		Technologies:       []string{},
		Architectures:      []Architecture{},
		BestPractices:      []string{},
		DiagramSuggestions: []DiagramSuggestion{},
		ActionItems: ActionItems{
			EngineeringTeams:  FlexStrings{},
			ArchitectureTeams: FlexStrings{},
			Leadership:        FlexStrings{},
		},
	}
}
