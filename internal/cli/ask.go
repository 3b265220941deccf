package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docqa/internal/usecase"
)

var (
	askQuestion string
	askTopK     int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [path]",
	Short: "Ingest a document and answer a question about it",
	Long: `Ingest the document (or every matching document under a directory) and
answer the question. Exact field extraction is tried before semantic search.

Examples:
  docqa ask resume.pdf -q "What is the CGPA?"
  docqa ask ./docs -q "What is the email?" -k 3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of semantic results (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	session, ingestor, cleanup, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := ingestPath(ingestor, args[0]); err != nil {
		return err
	}

	topK := cfg.Query.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	results := session.Answer(askQuestion, topK)

	if askJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No answer found.")
		return nil
	}

	top := results[0]
	fmt.Printf("Answer: %s\n", top.Answer)
	if top.Score != nil {
		fmt.Printf("Score:  %.4f\n", *top.Score)
	}
	fmt.Printf("\nContext:\n%s\n", top.Context)

	if len(results) > 1 {
		fmt.Printf("\n(%d more candidates, use --json to see all)\n", len(results)-1)
	}
	return nil
}

// ingestPath ingests a single file, or every matching file when path is a
// directory.
func ingestPath(ingestor *usecase.Ingestor, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	if !info.IsDir() {
		if _, err := ingestor.IngestFile(path); err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		return nil
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Ingesting"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)
	results, err := ingestor.IngestDir(path, func(string) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no ingestable documents under %s", path)
	}
	return nil
}
