// Package chunk splits normalized document text into bounded, overlapping
// segments along semantic boundaries, tagging each segment with a coarse
// document position. It is the first stage of the knowledge-extraction
// pipeline; ranking and task selection operate on its output.
package chunk

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default chunking configuration.
const (
	DefaultSize    = 1500
	DefaultOverlap = 200
)

// ErrEmptyDocument is returned when the document contains no content.
var ErrEmptyDocument = errors.New("document is empty")

// Position is the coarse location of a chunk within the document.
type Position string

const (
	PositionEarly  Position = "early"
	PositionMiddle Position = "middle"
	PositionLate   Position = "late"
)

// Position thresholds over the fractional piece index.
const (
	earlyBoundary  = 0.33
	middleBoundary = 0.67
)

// Chunk is a bounded contiguous segment of the source document, plus the
// overlap carried over from its predecessor. Chunks are immutable after
// creation; the ranker annotates copies, never the originals.
type Chunk struct {
	Text        string
	ID          int
	CharCount   int
	Position    Position
	PositionPct float64
	Score       int
}

// separators are tried coarsest to finest. The empty string is a
// character-level fallback for text with no split points at all.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Chunker splits text into overlapping chunks of bounded size.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker. A non-positive size is a programming error
// and fails fast; a negative overlap is clamped to zero.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured chunk size in characters.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap in characters.
func (c *Chunker) Overlap() int { return c.overlap }

// Split chunks the document. Pieces produced by recursive separator descent
// are merged into a running buffer; when appending the next piece would
// exceed the chunk size the buffer is closed and the next one is seeded
// with the trailing overlap characters followed by the triggering piece.
// Each chunk therefore consumes at least one full piece of new content,
// which guarantees forward progress even when overlap >= size.
//
// The position tag is derived from the index of the chunk's first new piece
// among all intermediate pieces, not from the final chunk index. The two
// differ once merging is uneven; the piece-index behaviour is kept for
// parity with the reference pipeline.
func (c *Chunker) Split(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	pieces := c.split(text, 0)
	total := len(pieces)

	var (
		chunks []Chunk
		buf    strings.Builder
		start  int // index of the first new piece in the current buffer
	)

	for i, piece := range pieces {
		if buf.Len() > 0 && buf.Len()+len(piece) > c.size {
			chunks = append(chunks, c.newChunk(buf.String(), len(chunks), start, total, false))
			tail := overlapTail(buf.String(), c.overlap)
			buf.Reset()
			buf.WriteString(tail)
			start = i
		}
		if buf.Len() == 0 {
			start = i
		}
		buf.WriteString(piece)
	}

	if buf.Len() > 0 {
		chunks = append(chunks, c.newChunk(buf.String(), len(chunks), start, total, true))
	}

	return chunks, nil
}

// split recursively divides text using progressively finer separators,
// descending only for pieces that still exceed the chunk size.
func (c *Chunker) split(text string, sepIdx int) []string {
	if len(text) <= c.size {
		return []string{text}
	}
	if sepIdx >= len(separators) {
		return []string{text}
	}

	sep := separators[sepIdx]
	if sep == "" {
		// Character-level fallback: cut into size-length runs on rune
		// boundaries. A chunk size smaller than one rune still consumes
		// that rune whole, so the loop always advances.
		var out []string
		for len(text) > c.size {
			cut := c.size
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(text)
			}
			out = append(out, text[:cut])
			text = text[cut:]
		}
		if text != "" {
			out = append(out, text)
		}
		return out
	}

	parts := strings.Split(text, sep)
	pieces := make([]string, 0, len(parts))
	for i, part := range parts {
		// Reattach the separator so concatenating all pieces
		// reconstructs the source exactly.
		if i < len(parts)-1 {
			part += sep
		}
		if part == "" {
			continue
		}
		if len(part) > c.size {
			pieces = append(pieces, c.split(part, sepIdx+1)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// newChunk builds a chunk closed at piece index start out of totalPieces.
// The trailing buffer is always tagged late.
func (c *Chunker) newChunk(text string, id, start, totalPieces int, trailing bool) Chunk {
	pct := 0.0
	if totalPieces > 0 {
		pct = float64(start) / float64(totalPieces)
	}

	pos := PositionLate
	if !trailing {
		switch {
		case pct < earlyBoundary:
			pos = PositionEarly
		case pct < middleBoundary:
			pos = PositionMiddle
		}
	}

	return Chunk{
		Text:        text,
		ID:          id,
		CharCount:   len(text),
		Position:    pos,
		PositionPct: pct,
	}
}

// overlapTail returns at most the last n bytes of s, advancing to a
// rune boundary so the tail never begins mid-character.
func overlapTail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
