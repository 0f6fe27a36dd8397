// Package main implements the pressroom CLI, which turns meeting
// transcripts and documents into an enterprise technology newsletter.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pressroom",
	Short: "Generate enterprise technology newsletters from documents",
	Long: `pressroom extracts structured knowledge from meeting transcripts,
Word documents, and notes, and renders it as an enterprise newsletter
in markdown, HTML, and JSON.

The pipeline runs in five passes: executive summary, key highlights,
feature articles, targeted sub-extractions, and strategic insights.
Without an API key the pipeline still runs end to end and produces a
newsletter skeleton with document metadata.`,
	Version: version,
}
