package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
	"github.com/granthika-labs/granthika/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// chatContextSize is how many retrieved chunks ground each reply.
const chatContextSize = 5

// ChatService answers questions grounded in the indexed corpus.
type ChatService struct {
	searchService driving.SearchService
	llmService    driven.LLMService
}

// NewChatService creates a new chat service.
func NewChatService(searchService driving.SearchService, llmService driven.LLMService) *ChatService {
	return &ChatService{
		searchService: searchService,
		llmService:    llmService,
	}
}

// Chat retrieves context for the latest user message and streams a
// grounded reply. The model backend is probed before any retrieval so
// unavailability surfaces as a clean error instead of a broken stream.
func (s *ChatService) Chat(ctx context.Context, messages []domain.ChatMessage) (<-chan string, <-chan error, error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("chat messages: %w", domain.ErrInvalidInput)
	}
	last := messages[len(messages)-1]
	if last.Role != "user" || strings.TrimSpace(last.Content) == "" {
		return nil, nil, fmt.Errorf("chat must end with a user message: %w", domain.ErrInvalidInput)
	}

	if s.llmService == nil {
		return nil, nil, domain.ErrChatUnavailable
	}
	if err := s.llmService.Ping(ctx); err != nil {
		logger.Warn("chat backend unreachable: %v", err)
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrChatUnavailable, err)
	}

	results, err := s.searchService.Search(ctx, last.Content, domain.SearchOptions{Limit: chatContextSize})
	if err != nil {
		return nil, nil, fmt.Errorf("retrieving chat context: %w", err)
	}
	logger.Debug("chat grounded on %d chunks", len(results))

	prompt := buildSystemPrompt(results, last.Content)

	llmMessages := make([]domain.ChatMessage, 0, len(messages)+1)
	llmMessages = append(llmMessages, domain.ChatMessage{Role: "system", Content: prompt})
	llmMessages = append(llmMessages, messages...)

	tokens, errs := s.llmService.ChatStream(ctx, llmMessages)
	return tokens, errs, nil
}

// Status reports whether the model backend is reachable.
func (s *ChatService) Status(ctx context.Context) bool {
	return s.llmService != nil && s.llmService.Ping(ctx) == nil
}

// buildSystemPrompt assembles the retrieval context, tagging each
// excerpt with its source file so the model can cite it. The reply
// language follows the question's script.
func buildSystemPrompt(results []domain.SearchResult, question string) string {
	var b strings.Builder
	b.WriteString("You are Granthika, an assistant answering questions about a personal library ")
	b.WriteString("of books, talk transcripts, and photographed documents. ")
	b.WriteString("Answer using only the excerpts below. If they do not contain the answer, say so.\n")

	if domain.HasDevanagari(question) {
		b.WriteString("The user asked in Hindi; reply in Hindi.\n")
	} else {
		b.WriteString("Reply in English.\n")
	}

	if len(results) == 0 {
		b.WriteString("\nNo relevant excerpts were found in the library.\n")
		return b.String()
	}

	b.WriteString("\nExcerpts:\n")
	for i, r := range results {
		base := r.Base()
		fmt.Fprintf(&b, "\n[%d] From %s:\n%s\n", i+1, base.ResourceName, base.Text)
	}
	return b.String()
}
