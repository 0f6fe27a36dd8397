package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// documentXML mirrors the paragraph/run/text nesting of
// word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxCoreProps struct {
	Title string `xml:"title"`
}

// readDOCX extracts paragraph text from a Word document. The file is a
// ZIP archive; the body lives in word/document.xml and the title, when
// set, in docProps/core.xml.
func readDOCX(path string) (*Document, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx archive: %w", err)
	}
	defer reader.Close()

	content, err := docxBodyText(&reader.Reader)
	if err != nil {
		return nil, err
	}

	title := docxTitle(&reader.Reader)
	if title == "" {
		title = titleFromFilename(path)
	}

	return &Document{
		Content:   content,
		FileName:  filepath.Base(path),
		Format:    "docx",
		Type:      TypeDocument,
		Title:     title,
		WordCount: len(strings.Fields(content)),
	}, nil
}

func docxBodyText(reader *zip.Reader) (string, error) {
	raw, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", fmt.Errorf("docx archive has no word/document.xml")
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parsing document body: %w", err)
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, run := range para.Runs {
			for _, text := range run.Text {
				b.WriteString(text.Content)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

func docxTitle(reader *zip.Reader) string {
	raw, err := readArchiveFile(reader, "docProps/core.xml")
	if err != nil || raw == nil {
		return ""
	}
	var core docxCoreProps
	if err := xml.Unmarshal(raw, &core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}

// readArchiveFile returns the named archive entry's bytes, or nil when
// the entry does not exist.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, nil
}
