// Package diagram turns diagram suggestions into Mermaid code, with a
// deterministic fallback when the completion service is unavailable, and
// writes the results as a markdown guide.
package diagram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pressroom-labs/pressroom/internal/extract"
	"github.com/pressroom-labs/pressroom/internal/logging"
)

// mermaidTypes maps suggestion types onto Mermaid diagram headers.
var mermaidTypes = map[string]string{
	extract.DiagramArchitecture: "graph TD",
	extract.DiagramWorkflow:     "sequenceDiagram",
	extract.DiagramIntegration:  "graph LR",
	extract.DiagramSecurity:     "graph TB",
}

const defaultMermaidType = "graph TD"

const mermaidSystemPrompt = "You are an expert in creating technical diagrams " +
	"using Mermaid.js syntax. Generate clear, accurate diagrams."

var (
	mermaidFenceOpen  = regexp.MustCompile("^```(?:mermaid)?\\s*\n")
	mermaidFenceClose = regexp.MustCompile("\n```\\s*$")
	unsafeFilename    = regexp.MustCompile(`[^\w\s-]`)
)

// Spec is one generated diagram in its renderable forms.
type Spec struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Purpose     string   `json:"purpose"`
	Elements    []string `json:"elements"`
	Description string   `json:"description"`
	MermaidCode string   `json:"mermaid_code"`
	ASCII       string   `json:"ascii_diagram"`
}

// Generator builds diagram specs from extraction suggestions.
type Generator struct {
	completer extract.Completer
	logger    *logging.Logger
}

// NewGenerator builds a Generator. A nil completer degrades to the
// deterministic fallback templates, mirroring the unavailable service
// mode; a nil logger falls back to a no-op.
func NewGenerator(completer extract.Completer, logger *logging.Logger) *Generator {
	if completer == nil {
		completer = extract.NewCompleter(extract.CompleterConfig{})
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{completer: completer, logger: logger.Named("diagram")}
}

// Generate produces a spec for every suggestion. Each diagram is
// independent; a failed Mermaid generation falls back to the
// deterministic template for its type.
func (g *Generator) Generate(ctx context.Context, suggestions []extract.DiagramSuggestion, technologies []string) []Spec {
	specs := make([]Spec, 0, len(suggestions))
	for _, s := range suggestions {
		specs = append(specs, g.generateOne(ctx, s, technologies))
	}
	return specs
}

func (g *Generator) generateOne(ctx context.Context, s extract.DiagramSuggestion, technologies []string) Spec {
	title := s.Title
	if title == "" {
		title = "Technical Diagram"
	}

	spec := Spec{
		Title:       title,
		Type:        s.Type,
		Purpose:     s.Purpose,
		Elements:    s.Elements,
		Description: s.Description,
		ASCII:       asciiDiagram(s.Elements),
	}
	spec.MermaidCode = g.mermaid(ctx, spec, technologies)
	return spec
}

// mermaid asks the completion service for diagram code, stripping any
// code fence from the response. Unavailable or failing service yields
// the fallback template.
func (g *Generator) mermaid(ctx context.Context, spec Spec, technologies []string) string {
	if !g.completer.Available() {
		return fallbackMermaid(spec.Type, spec.Elements)
	}

	resp, err := g.completer.Complete(ctx, extract.CompletionRequest{
		System:      mermaidSystemPrompt,
		Prompt:      mermaidPrompt(spec, technologies),
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		g.logger.Warn("mermaid generation failed, using fallback",
			zap.String("title", spec.Title), zap.Error(err))
		return fallbackMermaid(spec.Type, spec.Elements)
	}

	code := strings.TrimSpace(resp)
	code = mermaidFenceOpen.ReplaceAllString(code, "")
	code = mermaidFenceClose.ReplaceAllString(code, "")
	if code == "" {
		return fallbackMermaid(spec.Type, spec.Elements)
	}
	return code
}

func mermaidPrompt(spec Spec, technologies []string) string {
	header, ok := mermaidTypes[spec.Type]
	if !ok {
		header = defaultMermaidType
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a Mermaid.js diagram for the following specification.\n\n")
	fmt.Fprintf(&b, "Diagram Title: %s\n", spec.Title)
	fmt.Fprintf(&b, "Diagram Type: %s\n", spec.Type)
	fmt.Fprintf(&b, "Key Elements: %s\n", strings.Join(spec.Elements, ", "))
	fmt.Fprintf(&b, "Description: %s\n", spec.Description)
	if len(technologies) > 0 {
		if len(technologies) > 10 {
			technologies = technologies[:10]
		}
		fmt.Fprintf(&b, "Technologies: %s\n", strings.Join(technologies, ", "))
	}
	fmt.Fprintf(&b, "\nREQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Use %s syntax\n", header)
	b.WriteString(`- Use actual component names from elements
- Show relationships and data flow
- Keep it concise (max 15 nodes)

Return ONLY the Mermaid.js code, no explanation.

MERMAID.JS DIAGRAM:`)
	return b.String()
}

// fallbackMermaid builds a minimal valid diagram from the elements.
// Workflows get a canned request/response sequence; everything else gets
// a chain of up to five nodes.
func fallbackMermaid(diagramType string, elements []string) string {
	if diagramType == extract.DiagramWorkflow {
		return `sequenceDiagram
    participant User
    participant System
    User->>System: Request
    System-->>User: Response`
	}

	header, ok := mermaidTypes[diagramType]
	if !ok {
		header = defaultMermaidType
	}

	if len(elements) < 2 {
		return header + `
    A[Component A]-->B[Component B]
    B-->C[Component C]`
	}

	if len(elements) > 5 {
		elements = elements[:5]
	}
	var b strings.Builder
	b.WriteString(header)
	for i, elem := range elements {
		fmt.Fprintf(&b, "\n    %c[%s]", 'A'+i, elem)
	}
	for i := 0; i < len(elements)-1; i++ {
		fmt.Fprintf(&b, "\n    %c-->%c", 'A'+i, 'A'+i+1)
	}
	return b.String()
}

// asciiDiagram renders a text-only chain of up to five elements.
func asciiDiagram(elements []string) string {
	if len(elements) < 2 {
		return "[Component A] --> [Component B] --> [Component C]"
	}
	if len(elements) > 5 {
		elements = elements[:5]
	}
	parts := make([]string, len(elements))
	for i, elem := range elements {
		parts[i] = "[" + elem + "]"
	}
	return strings.Join(parts, " --> ")
}

// Guide renders markdown documentation for the diagram set.
func Guide(specs []Spec) string {
	var b strings.Builder
	b.WriteString("# Technical Diagrams\n\n")
	b.WriteString("This document contains specifications for all suggested technical diagrams.\n\n---\n\n")

	for i, spec := range specs {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, spec.Title)
		fmt.Fprintf(&b, "**Type:** %s\n\n", capitalize(spec.Type))
		fmt.Fprintf(&b, "**Purpose:** %s\n\n", spec.Purpose)
		if len(spec.Elements) > 0 {
			b.WriteString("**Key Elements:**\n")
			for _, elem := range spec.Elements {
				fmt.Fprintf(&b, "- %s\n", elem)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**Description:**\n\n%s\n\n", spec.Description)
		fmt.Fprintf(&b, "```mermaid\n%s\n```\n\n", spec.MermaidCode)
		fmt.Fprintf(&b, "```\n%s\n```\n\n---\n\n", spec.ASCII)
	}
	return b.String()
}

// WriteFiles saves each diagram as a standalone mermaid markdown file
// plus a combined guide, under dir.
func WriteFiles(dir string, specs []Spec) error {
	if len(specs) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating diagram directory: %w", err)
	}

	for _, spec := range specs {
		name := sanitizeFilename(spec.Title) + ".mermaid.md"
		content := fmt.Sprintf("# %s\n\n```mermaid\n%s\n```\n", spec.Title, spec.MermaidCode)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing diagram %s: %w", name, err)
		}
	}

	guidePath := filepath.Join(dir, "diagrams_guide.md")
	if err := os.WriteFile(guidePath, []byte(Guide(specs)), 0o644); err != nil {
		return fmt.Errorf("writing diagram guide: %w", err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sanitizeFilename converts a title into a safe lowercase filename.
func sanitizeFilename(title string) string {
	title = unsafeFilename.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, " ", "_")
	return strings.ToLower(title)
}
