package cli

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index statistics",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	resources, err := a.store.ListResources(ctx)
	if err != nil {
		return err
	}
	chunks, err := a.store.CountChunks(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Database:   %s\n", a.store.Path())
	cmd.Printf("Resources:  %d\n", len(resources))
	cmd.Printf("Chunks:     %d\n", chunks)
	cmd.Printf("Vectors:    %d (snapshot at %s)\n", a.index.Len(), a.snapshotPath)
	cmd.Printf("Embedding:  %s (%d dimensions)\n", a.embedder.ModelName(), a.embedder.Dimensions())
	cmd.Printf("Chat model: %s\n", a.llm.ModelName())
	return nil
}
