package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"
)

// readPDF extracts the text layer of a PDF. Scanned pages with no text
// layer yield empty content; OCR is out of scope. Extraction warnings
// (damaged objects, unknown fonts) are tolerated as long as some text
// comes back.
func readPDF(path string) (*Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer r.Close()

	text, _, err := tabula.FromReader(r).Text()
	if err != nil {
		return nil, fmt.Errorf("extracting pdf text: %w", err)
	}

	return &Document{
		Content:   text,
		FileName:  filepath.Base(path),
		Format:    "pdf",
		Type:      TypeDocument,
		Title:     titleFromFilename(path),
		WordCount: len(strings.Fields(text)),
	}, nil
}
