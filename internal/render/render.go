// Package render formats a newsletter into its publishable outputs:
// markdown, HTML from the embedded template, and a JSON envelope.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pressroom-labs/pressroom/internal/diagram"
	"github.com/pressroom-labs/pressroom/internal/extract"
	"github.com/pressroom-labs/pressroom/internal/refine"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Newsletter is the assembled issue handed to the renderers.
type Newsletter struct {
	ID          string
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Knowledge   *extract.ExtractedKnowledge
	Diagrams    []diagram.Spec
	Review      *refine.Review
}

// NewNewsletter stamps the issue with an id and generation time.
func NewNewsletter(title, subtitle string, knowledge *extract.ExtractedKnowledge, diagrams []diagram.Spec) *Newsletter {
	if title == "" {
		title = "Technology Newsletter"
	}
	if subtitle == "" {
		subtitle = "Enterprise IT Update"
	}
	return &Newsletter{
		ID:          uuid.New().String(),
		Title:       title,
		Subtitle:    subtitle,
		GeneratedAt: time.Now(),
		Knowledge:   knowledge,
		Diagrams:    diagrams,
	}
}

// Write renders the newsletter in each requested format under dir and
// returns the written paths keyed by format.
func (n *Newsletter) Write(dir string, formats []string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stamp := n.GeneratedAt.Format("20060102_150405")
	paths := make(map[string]string, len(formats))

	for _, format := range formats {
		var (
			content []byte
			ext     string
			err     error
		)
		switch format {
		case FormatMarkdown:
			content, ext = []byte(n.Markdown()), "md"
		case FormatHTML:
			content, err = n.HTML()
			ext = "html"
		case FormatJSON:
			content, err = n.JSON()
			ext = "json"
		default:
			return nil, fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", format, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("newsletter_%s.%s", stamp, ext))
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s output: %w", format, err)
		}
		paths[format] = path
	}
	return paths, nil
}
