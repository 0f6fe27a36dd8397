package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pressroom-labs/pressroom/internal/chunk"
	"github.com/pressroom-labs/pressroom/internal/logging"
	"github.com/pressroom-labs/pressroom/internal/rank"
)

// ErrEmptyDocument is returned when Extract is handed a blank document.
var ErrEmptyDocument = chunk.ErrEmptyDocument

// Engine orchestrates the multi-pass extraction protocol: chunk, rank,
// then run the fixed task table against the completion service and
// assemble the typed knowledge structure.
type Engine struct {
	chunker   *chunk.Chunker
	ranker    *rank.Ranker
	completer Completer
	logger    *logging.Logger
	tasks     []Task
}

// NewEngine wires the pipeline. A nil logger gets a no-op one; a nil
// completer is a programming error.
func NewEngine(chunker *chunk.Chunker, completer Completer, logger *logging.Logger) (*Engine, error) {
	if chunker == nil {
		return nil, errors.New("chunker is required")
	}
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Engine{
		chunker:   chunker,
		ranker:    rank.NewRanker(),
		completer: completer,
		logger:    logger.Named("extract"),
		tasks:     Tasks(),
	}, nil
}

// Extract runs the five-pass protocol over the document and returns a
// fully populated knowledge structure. Individual task failures are
// swallowed at the task boundary: the affected field keeps its empty
// default and the run continues. The only operation-level error is a
// blank document (or a chunking contract violation).
//
// Passes are independent; when the context is done between passes the
// remaining ones are abandoned and whatever has been assembled so far is
// returned.
func (e *Engine) Extract(ctx context.Context, content string) (*ExtractedKnowledge, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDocument
	}

	chunks, err := e.chunker.Split(content)
	if err != nil {
		return nil, fmt.Errorf("chunking failed: %w", err)
	}
	ranked := e.ranker.Rank(chunks, 0)

	knowledge := NewExtractedKnowledge()
	knowledge.Metadata = Metadata{
		TotalWords: len(strings.Fields(content)),
		TotalChars: len(content),
	}

	e.logger.Info("starting extraction",
		zap.Int("chunks", len(chunks)),
		zap.Int("total_chars", knowledge.Metadata.TotalChars),
		zap.Bool("llm_available", e.completer.Available()),
	)

	// Pass order: summary, highlights, articles, the six first-6-chunk
	// sub-extractions, then strategic insights over the raw prefix.
	for _, task := range e.tasks {
		if ctx.Err() != nil {
			e.logger.Warn("deadline reached, returning partial result",
				zap.String("next_category", string(task.Category)))
			break
		}
		raw := e.runTask(ctx, task, chunks, ranked, content)
		e.populate(knowledge, task.Category, raw)
	}

	return knowledge, nil
}

// runTask selects context, builds the prompt, and issues one completion
// request. Every failure path collapses to an empty string so a single
// category can never abort the run.
func (e *Engine) runTask(ctx context.Context, task Task, chunks, ranked []chunk.Chunk, raw string) string {
	if !e.completer.Available() {
		return ""
	}

	req := CompletionRequest{
		System:      systemPrompt,
		Prompt:      task.Prompt(task.SelectContext(chunks, ranked, raw)),
		MaxTokens:   task.MaxTokens,
		Temperature: task.Temperature,
	}

	resp, err := e.completer.Complete(ctx, req)
	if err != nil {
		e.logger.Warn("extraction task failed",
			zap.String("category", string(task.Category)),
			zap.Error(err))
		return ""
	}

	e.logger.Debug("extraction task complete",
		zap.String("category", string(task.Category)),
		zap.Int("response_chars", len(resp)))
	return resp
}

// populate parses one raw response into its knowledge field. Parse
// failures leave the field's empty default in place.
func (e *Engine) populate(k *ExtractedKnowledge, category Category, raw string) {
	switch category {
	case CategoryExecutiveSummary:
		k.ExecutiveSummary = strings.TrimSpace(raw)
	case CategoryKeyHighlights:
		var highlights []Highlight
		if DecodeJSON(raw, &highlights) {
			k.KeyHighlights = highlights
		}
	case CategoryFeatureArticles:
		var articles []FeatureArticle
		if DecodeJSON(raw, &articles) {
			k.FeatureArticles = articles
		}
	case CategoryQuickBites:
		k.QuickBites = ParseList(raw)
	case CategoryActionItems:
		var items ActionItems
		if DecodeJSON(raw, &items) {
			k.ActionItems = items
		}
	case CategoryTechnologies:
		var techs []string
		if DecodeJSON(raw, &techs) {
			k.Technologies = techs
		}
	case CategoryArchitectures:
		var archs []Architecture
		if DecodeJSON(raw, &archs) {
			k.Architectures = archs
		}
	case CategoryBestPractices:
		k.BestPractices = ParseList(raw)
	case CategoryDiagrams:
		var diagrams []DiagramSuggestion
		if DecodeJSON(raw, &diagrams) {
			k.DiagramSuggestions = diagrams
		}
	case CategoryStrategicInsights:
		var insights StrategicInsights
		if DecodeJSON(raw, &insights) {
			k.StrategicInsights = insights
		}
	}
}
