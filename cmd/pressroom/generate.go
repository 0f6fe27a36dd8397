package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pressroom-labs/pressroom/internal/chunk"
	"github.com/pressroom-labs/pressroom/internal/config"
	"github.com/pressroom-labs/pressroom/internal/diagram"
	"github.com/pressroom-labs/pressroom/internal/document"
	"github.com/pressroom-labs/pressroom/internal/extract"
	"github.com/pressroom-labs/pressroom/internal/logging"
	"github.com/pressroom-labs/pressroom/internal/refine"
	"github.com/pressroom-labs/pressroom/internal/render"
)

var (
	genConfigPath string
	genTitle      string
	genSubtitle   string
	genOutputDir  string
	genFormats    []string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config file (YAML)")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "Newsletter title (defaults to the document title)")
	generateCmd.Flags().StringVar(&genSubtitle, "subtitle", "Enterprise IT Update", "Newsletter subtitle")
	generateCmd.Flags().StringVar(&genOutputDir, "output", "", "Output directory (overrides config)")
	generateCmd.Flags().StringSliceVar(&genFormats, "format", nil, "Output formats: markdown, html, json (overrides config)")
}

var generateCmd = &cobra.Command{
	Use:   "generate <file>...",
	Short: "Generate a newsletter from input documents",
	Long: `Generate a newsletter from one or more input documents.

Supported formats: .vtt (meeting transcripts), .docx, .pdf, .pptx,
.txt, .md.
Multiple inputs are combined into a single issue.

Examples:
  # Single transcript
  pressroom generate standup.vtt

  # Combined sources with a custom title
  pressroom generate notes.md review.docx --title "Q3 Platform Review"

  # Markdown only, custom output directory
  pressroom generate notes.txt --format markdown --output ./issues`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Credentials commonly live in a local .env during development.
	_ = godotenv.Load()

	cfg, err := config.Load(genConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if genOutputDir != "" {
		cfg.Output.Dir = genOutputDir
	}
	if len(genFormats) > 0 {
		cfg.Output.Formats = genFormats
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := document.ReadAll(args)
	if err != nil {
		return err
	}
	logger.Info("documents loaded",
		zap.Int("sources", len(args)),
		zap.Int("words", doc.WordCount),
		zap.String("type", string(doc.Type)))

	chunker, err := chunk.NewChunker(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}
	completer := extract.NewCompleter(extract.CompleterConfig{
		Provider: cfg.Extraction.Provider,
		Model:    cfg.Extraction.Model,
		APIKey:   cfg.Extraction.APIKey,
		BaseURL:  cfg.Extraction.BaseURL,
		Timeout:  time.Duration(cfg.Extraction.TimeoutSeconds) * time.Second,
	})
	if !completer.Available() {
		logger.Warn("no usable API credential, running in degraded mode")
	}

	engine, err := extract.NewEngine(chunker, completer, logger)
	if err != nil {
		return fmt.Errorf("building extraction engine: %w", err)
	}
	knowledge, err := engine.Extract(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("extracting knowledge: %w", err)
	}

	var review *refine.Review
	if !cfg.Refine.Disabled {
		refine.NewRefiner().Refine(knowledge)

		checked := knowledge.ExecutiveSummary
		for _, h := range knowledge.KeyHighlights {
			checked += "\n" + h.Description
		}
		r := refine.NewValidator().Validate(checked, doc.Content)
		review = &r
		logger.Info("accuracy review complete", zap.String("result", r.Summary()))
	}

	var diagrams []diagram.Spec
	if !cfg.Diagrams.Disabled && len(knowledge.DiagramSuggestions) > 0 {
		diagrams = diagram.NewGenerator(completer, logger).
			Generate(ctx, knowledge.DiagramSuggestions, knowledge.Technologies)
		if err := diagram.WriteFiles(filepath.Join(cfg.Output.Dir, "diagrams"), diagrams); err != nil {
			return fmt.Errorf("writing diagram files: %w", err)
		}
	}

	title := genTitle
	if title == "" {
		title = doc.Title
	}
	newsletter := render.NewNewsletter(title, genSubtitle, knowledge, diagrams)
	newsletter.Review = review

	paths, err := newsletter.Write(cfg.Output.Dir, cfg.Output.Formats)
	if err != nil {
		return fmt.Errorf("writing newsletter: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Newsletter generated: %s\n", newsletter.Title)
	for _, format := range cfg.Output.Formats {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %s\n", format, paths[format])
	}
	if len(diagrams) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  diagrams %s\n", filepath.Join(cfg.Output.Dir, "diagrams"))
	}
	return nil
}
