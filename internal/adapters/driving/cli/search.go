package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

var (
	searchLimit    int
	searchJSON     bool
	searchLanguage string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed library",
	Long: `Performs semantic search across all indexed images and PDFs.
The query is embedded and matched against every stored chunk.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVarP(&searchLanguage, "language", "l", "", "restrict results to a language (en, hi, mixed)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := domain.SearchOptions{Limit: searchLimit}
	if searchLanguage != "" {
		lang := domain.Language(searchLanguage)
		if !lang.Valid() {
			return fmt.Errorf("unknown language %q (want en, hi, or mixed)", searchLanguage)
		}
		opts.Language = lang
	}

	results, err := a.search.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

type searchOutput struct {
	Kind       string     `json:"kind"`
	Resource   string     `json:"resource"`
	Language   string     `json:"language"`
	Score      float64    `json:"score"`
	Text       string     `json:"text"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
	Paragraph  int        `json:"paragraph,omitempty"`
	Timestamp  string     `json:"timestamp,omitempty"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]searchOutput, len(results))
	for i, r := range results {
		base := r.Base()
		out[i] = searchOutput{
			Kind:     string(r.Kind()),
			Resource: base.ResourceName,
			Language: string(base.Language),
			Score:    base.Score,
			Text:     base.Text,
		}
		switch v := r.(type) {
		case domain.ImageResult:
			out[i].RecordedAt = v.RecordedAt
		case domain.BookResult:
			out[i].Paragraph = v.Paragraph
		case domain.TranscriptResult:
			out[i].Timestamp = v.Timestamp
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		base := r.Base()

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, base.ResourceName, base.Score)
		switch v := r.(type) {
		case domain.ImageResult:
			if v.RecordedAt != nil {
				cmd.Printf("      image, recorded %s\n", v.RecordedAt.Format("2006-01-02 15:04"))
			} else {
				cmd.Println("      image")
			}
		case domain.BookResult:
			cmd.Printf("      book, paragraph %d\n", v.Paragraph)
		case domain.TranscriptResult:
			cmd.Printf("      transcript, at %s\n", v.Timestamp)
		}
		cmd.Printf("      %s\n", snippet(base.Text, 120))
		cmd.Println()
	}
	return nil
}

// snippet truncates text to at most n runes on a rune boundary.
func snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
