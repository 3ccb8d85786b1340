// Package cli implements the granthika command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/granthika-labs/granthika/internal/logger"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "granthika",
	Short: "Semantic search over a scanned personal library",
	Long: `Granthika indexes scanned images and PDFs for semantic search.

Images are OCR'd, PDFs are split into paragraphs or transcript
segments, and everything is embedded locally through Ollama. Search
and chat work from the terminal, the TUI, or the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Execute runs the CLI with the given build version. Called once from
// main.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.granthika/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
