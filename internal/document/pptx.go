package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tsawler/tabula/pptx"
)

// readPPTX extracts slide text from a PowerPoint deck, slide titles
// included. The document title comes from the deck's core properties
// when set, falling back to the filename.
func readPPTX(path string) (*Document, error) {
	reader, err := pptx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pptx: %w", err)
	}
	defer reader.Close()

	content, err := reader.Text()
	if err != nil {
		return nil, fmt.Errorf("extracting slide text: %w", err)
	}

	title := strings.TrimSpace(reader.Metadata().Title)
	if title == "" {
		title = titleFromFilename(path)
	}

	return &Document{
		Content:   content,
		FileName:  filepath.Base(path),
		Format:    "pptx",
		Type:      TypePresentation,
		Title:     title,
		WordCount: len(strings.Fields(content)),
	}, nil
}
