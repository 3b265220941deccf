package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryWords int

var summaryCmd = &cobra.Command{
	Use:   "summary [path]",
	Short: "Ingest a document and print its summary",
	Long: `Ingest the document and print a bounded word summary, prefixed with the
CGPA line when a grade-point value is found anywhere in the text.

Examples:
  docqa summary resume.pdf
  docqa summary report.pdf --words 60`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&summaryWords, "words", 0, "summary length in words (default from config)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	session, ingestor, cleanup, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := ingestPath(ingestor, args[0]); err != nil {
		return err
	}

	words := cfg.Summary.Words
	if summaryWords > 0 {
		words = summaryWords
	}

	summary := session.Summarize(words)
	if summary == "" {
		fmt.Println("No text could be extracted from the document.")
		return nil
	}
	fmt.Println(summary)
	return nil
}
