package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Index images and PDFs",
	Long: `Indexes the supported files under a directory, or a single file.

Already-indexed paths are skipped. Files that fail to process are
reported at the end without aborting the rest of the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var report domain.IngestReport
	if info.IsDir() {
		report, err = a.ingest.IngestDirectory(cmd.Context(), path)
	} else {
		report, err = a.ingest.IngestFile(cmd.Context(), path)
	}
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Processed %d files (%d chunks), skipped %d already indexed.\n",
		report.FilesProcessed, report.ChunksCreated, report.FilesSkipped)

	if len(report.Errors) > 0 {
		cmd.Printf("%d files failed:\n", len(report.Errors))
		for _, fe := range report.Errors {
			cmd.Printf("  %s: %v\n", fe.Path, fe.Err)
		}
	}
	return nil
}
