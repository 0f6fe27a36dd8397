// Package document loads source material for the newsletter pipeline.
// Meeting transcripts, Word documents, PDFs, slide decks, and plain
// text or markdown notes all reduce to one flat Document whose content
// feeds extraction.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Type classifies the source material.
type Type string

const (
	TypeTranscript   Type = "transcript"
	TypeDocument     Type = "document"
	TypePresentation Type = "presentation"
	TypeText         Type = "text"
	TypeMarkdown     Type = "markdown"
	TypeCombined     Type = "combined"
)

// ErrUnsupportedFormat is returned for file extensions the loader does
// not recognise.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is one loaded source. Content is the flat text the pipeline
// consumes; the rest is provenance for the rendered output.
type Document struct {
	Content   string
	FileName  string
	Format    string
	Type      Type
	Title     string
	Speakers  []string
	WordCount int
}

// Read loads a single file, dispatching on its extension. Supported
// formats are .vtt, .docx, .pdf, .pptx, .txt, and .md.
func Read(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtt":
		return readVTT(path)
	case ".docx":
		return readDOCX(path)
	case ".pdf":
		return readPDF(path)
	case ".pptx":
		return readPPTX(path)
	case ".txt":
		return readText(path)
	case ".md", ".markdown":
		return readMarkdown(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: .vtt, .docx, .pdf, .pptx, .txt, .md)", ErrUnsupportedFormat, ext)
	}
}

// ReadAll loads every path and combines the results into one document.
func ReadAll(paths []string) (*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		doc, err := Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return Combine(docs), nil
}

// Combine merges documents into a single one, separating each source
// with a labelled divider so extraction can still attribute content.
func Combine(docs []*Document) *Document {
	var b strings.Builder
	speakers := map[string]bool{}
	totalWords := 0

	for _, doc := range docs {
		b.WriteString(fmt.Sprintf("\n\n=== Source: %s ===\n\n", doc.FileName))
		b.WriteString(doc.Content)
		for _, s := range doc.Speakers {
			speakers[s] = true
		}
		totalWords += doc.WordCount
	}

	return &Document{
		Content:   b.String(),
		FileName:  fmt.Sprintf("%d combined sources", len(docs)),
		Format:    "combined",
		Type:      TypeCombined,
		Speakers:  sortedKeys(speakers),
		WordCount: totalWords,
	}
}

func readText(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Document{
		Content:   string(content),
		FileName:  filepath.Base(path),
		Format:    "txt",
		Type:      TypeText,
		Title:     titleFromFilename(path),
		WordCount: len(strings.Fields(string(content))),
	}, nil
}

func readMarkdown(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Content:   string(content),
		FileName:  filepath.Base(path),
		Format:    "md",
		Type:      TypeMarkdown,
		Title:     firstHeading(string(content)),
		WordCount: len(strings.Fields(string(content))),
	}
	if doc.Title == "" {
		doc.Title = titleFromFilename(path)
	}
	return doc, nil
}

// firstHeading returns the first markdown heading's text, if any.
func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	return ""
}

// titleFromFilename turns "q3_platform-review.txt" into "q3 platform review".
func titleFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
