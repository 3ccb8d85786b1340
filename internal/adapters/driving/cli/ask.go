package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in the indexed library",
	Long: `Retrieves the most relevant excerpts for the question and streams
an answer from the local chat model. Questions in Devanagari are
answered in Hindi.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	messages := []domain.ChatMessage{{Role: "user", Content: args[0]}}
	tokens, errs, err := a.chat.Chat(cmd.Context(), messages)
	if err != nil {
		if errors.Is(err, domain.ErrChatUnavailable) {
			return errors.New("chat model unreachable; is Ollama running?")
		}
		return err
	}

	for token := range tokens {
		cmd.Print(token)
	}
	cmd.Println()

	if err := <-errs; err != nil {
		return fmt.Errorf("reply interrupted: %w", err)
	}
	return nil
}
