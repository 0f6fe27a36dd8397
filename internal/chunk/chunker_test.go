package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewChunker(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{name: "defaults", size: DefaultSize, overlap: DefaultOverlap},
		{name: "zero size", size: 0, overlap: 10, wantErr: true},
		{name: "negative size", size: -5, overlap: 0, wantErr: true},
		{name: "negative overlap clamped", size: 100, overlap: -1},
		{name: "overlap exceeds size", size: 10, overlap: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChunker(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewChunker() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Fatal("NewChunker() returned nil chunker")
			}
		})
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	c, _ := NewChunker(100, 10)
	for _, doc := range []string{"", "   ", "\n\n\t"} {
		if _, err := c.Split(doc); err != ErrEmptyDocument {
			t.Errorf("Split(%q) error = %v, want ErrEmptyDocument", doc, err)
		}
	}
}

func TestSplitSingleChunk(t *testing.T) {
	c, _ := NewChunker(1000, 100)
	chunks, err := c.Split("short document")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Split() produced %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "short document" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].ID != 0 {
		t.Errorf("chunk ID = %d, want 0", chunks[0].ID)
	}
	if chunks[0].CharCount != len("short document") {
		t.Errorf("CharCount = %d", chunks[0].CharCount)
	}
}

// TestSplitCoverage checks that the concatenation of chunk texts, once each
// chunk's leading overlap is removed, reconstructs the source exactly.
func TestSplitCoverage(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		doc     string
	}{
		{name: "paragraphs", size: 80, overlap: 10, doc: strings.Repeat("First paragraph here.\n\nSecond paragraph with more words in it.\n\n", 8)},
		{name: "sentences no overlap", size: 50, overlap: 0, doc: strings.Repeat("One sentence. Another sentence follows. ", 12)},
		{name: "single word blob", size: 32, overlap: 8, doc: strings.Repeat("x", 500)},
		{name: "words", size: 40, overlap: 5, doc: strings.Repeat("alpha beta gamma delta epsilon ", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChunker(tt.size, tt.overlap)
			if err != nil {
				t.Fatal(err)
			}
			chunks, err := c.Split(tt.doc)
			if err != nil {
				t.Fatal(err)
			}

			var sb strings.Builder
			prev := ""
			for _, ch := range chunks {
				text := ch.Text
				if prev != "" {
					tail := overlapTail(prev, tt.overlap)
					if strings.HasPrefix(text, tail) {
						text = text[len(tail):]
					}
				}
				sb.WriteString(text)
				prev = ch.Text
			}
			if sb.String() != tt.doc {
				t.Errorf("reconstructed document does not match source\ngot  %d chars\nwant %d chars", sb.Len(), len(tt.doc))
			}
		})
	}
}

// TestSplitBoundedness checks no chunk exceeds size by more than one
// atomic piece plus the overlap seed.
func TestSplitBoundedness(t *testing.T) {
	c, _ := NewChunker(60, 12)
	doc := strings.Repeat("some words that keep going onward. ", 30)
	chunks, err := c.Split(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range chunks {
		if ch.CharCount > 2*c.Size() {
			t.Errorf("chunk %d length %d grossly exceeds size %d", ch.ID, ch.CharCount, c.Size())
		}
	}
}

func TestSplitOverlapSeedsNextChunk(t *testing.T) {
	c, _ := NewChunker(50, 10)
	doc := strings.Repeat("word ", 60)
	chunks, err := c.Split(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		tail := overlapTail(chunks[i-1].Text, c.Overlap())
		if !strings.HasPrefix(chunks[i].Text, tail) {
			t.Errorf("chunk %d does not start with the trailing overlap of chunk %d", i, i-1)
		}
	}
}

// TestSplitForwardProgress guards the degenerate overlap >= size case.
func TestSplitForwardProgress(t *testing.T) {
	c, _ := NewChunker(10, 50)
	doc := strings.Repeat("ab cd ef gh ij kl ", 40)
	chunks, err := c.Split(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	// There are finitely many pieces, so the chunk count must be bounded
	// by the piece count: each chunk consumes at least one new piece.
	if len(chunks) > len(doc) {
		t.Fatalf("chunk count %d exceeds document length %d", len(chunks), len(doc))
	}
}

func TestSplitPositions(t *testing.T) {
	c, _ := NewChunker(40, 0)
	doc := strings.Repeat("alpha beta gamma delta. ", 40)
	chunks, err := c.Split(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Position != PositionEarly {
		t.Errorf("first chunk position = %q, want early", chunks[0].Position)
	}
	last := chunks[len(chunks)-1]
	if last.Position != PositionLate {
		t.Errorf("trailing chunk position = %q, want late", last.Position)
	}
	for _, ch := range chunks {
		if ch.PositionPct < 0 || ch.PositionPct > 1 {
			t.Errorf("chunk %d PositionPct = %f, want [0,1]", ch.ID, ch.PositionPct)
		}
	}
}

func TestSplitSequentialIDs(t *testing.T) {
	c, _ := NewChunker(30, 5)
	chunks, err := c.Split(strings.Repeat("content flows here. ", 20))
	if err != nil {
		t.Fatal(err)
	}
	for i, ch := range chunks {
		if ch.ID != i {
			t.Errorf("chunk at index %d has ID %d", i, ch.ID)
		}
	}
}

// TestSplitUTF8Boundaries forces the character-level fallback on a
// document of multi-byte runes and checks no chunk begins or ends
// mid-character.
func TestSplitUTF8Boundaries(t *testing.T) {
	c, _ := NewChunker(33, 7)
	doc := strings.Repeat("é", 400)
	chunks, err := c.Split(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for _, ch := range chunks {
		if !utf8.ValidString(ch.Text) {
			t.Errorf("chunk %d is not valid UTF-8", ch.ID)
		}
	}

	// Coverage still holds once each chunk's leading overlap is removed.
	var sb strings.Builder
	prev := ""
	for _, ch := range chunks {
		text := ch.Text
		if prev != "" {
			tail := overlapTail(prev, c.Overlap())
			if strings.HasPrefix(text, tail) {
				text = text[len(tail):]
			}
		}
		sb.WriteString(text)
		prev = ch.Text
	}
	if sb.String() != doc {
		t.Errorf("reconstructed document does not match source: got %d bytes, want %d", sb.Len(), len(doc))
	}
}

func TestOverlapTailRuneBoundary(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{name: "ascii tail", s: "abcdef", n: 2, want: "ef"},
		{name: "whole string", s: "ab", n: 5, want: "ab"},
		{name: "zero", s: "abc", n: 0, want: ""},
		{name: "advances past mid-rune start", s: "ééé", n: 3, want: "é"},
		{name: "boundary start", s: "ééé", n: 4, want: "éé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlapTail(tt.s, tt.n)
			if got != tt.want {
				t.Errorf("overlapTail(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("overlapTail(%q, %d) produced invalid UTF-8", tt.s, tt.n)
			}
		})
	}
}
