package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// fakeSearch returns canned results.
type fakeSearch struct {
	results []domain.SearchResult
	err     error
	query   string
}

func (f *fakeSearch) Search(_ context.Context, query string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	f.query = query
	return f.results, f.err
}

func userMsg(content string) []domain.ChatMessage {
	return []domain.ChatMessage{{Role: "user", Content: content}}
}

func TestChatStreamsGroundedReply(t *testing.T) {
	search := &fakeSearch{results: []domain.SearchResult{
		domain.BookResult{ResultBase: domain.ResultBase{ChunkID: "c1", ResourceName: "gita.pdf", Text: "excerpt text"}},
	}}
	llm := &fakeLLM{tokens: []string{"The ", "answer"}}

	svc := NewChatService(search, llm)
	tokens, errs, err := svc.Chat(context.Background(), userMsg("what does it say?"))
	require.NoError(t, err)

	var b strings.Builder
	for tok := range tokens {
		b.WriteString(tok)
	}
	require.NoError(t, <-errs)
	assert.Equal(t, "The answer", b.String())

	// Retrieval used the latest user message.
	assert.Equal(t, "what does it say?", search.query)

	// The system prompt carries the excerpt tagged with its file.
	require.NotEmpty(t, llm.gotMsgs)
	assert.Equal(t, "system", llm.gotMsgs[0].Role)
	assert.Contains(t, llm.gotMsgs[0].Content, "gita.pdf")
	assert.Contains(t, llm.gotMsgs[0].Content, "excerpt text")
	assert.Contains(t, llm.gotMsgs[0].Content, "Reply in English")
}

func TestChatHindiQuestionGetsHindiHint(t *testing.T) {
	search := &fakeSearch{}
	llm := &fakeLLM{tokens: []string{"उत्तर"}}

	svc := NewChatService(search, llm)
	tokens, errs, err := svc.Chat(context.Background(), userMsg("यह क्या कहता है?"))
	require.NoError(t, err)
	for range tokens {
	}
	require.NoError(t, <-errs)

	assert.Contains(t, llm.gotMsgs[0].Content, "reply in Hindi")
}

func TestChatUnavailableBackend(t *testing.T) {
	svc := NewChatService(&fakeSearch{}, &fakeLLM{pingErr: errors.New("connection refused")})

	_, _, err := svc.Chat(context.Background(), userMsg("hello"))
	assert.ErrorIs(t, err, domain.ErrChatUnavailable)
}

func TestChatStatus(t *testing.T) {
	ctx := context.Background()

	assert.True(t, NewChatService(&fakeSearch{}, &fakeLLM{}).Status(ctx))
	assert.False(t, NewChatService(&fakeSearch{}, &fakeLLM{pingErr: errors.New("down")}).Status(ctx))
	assert.False(t, NewChatService(&fakeSearch{}, nil).Status(ctx))
}

func TestChatNilBackend(t *testing.T) {
	svc := NewChatService(&fakeSearch{}, nil)
	_, _, err := svc.Chat(context.Background(), userMsg("hello"))
	assert.ErrorIs(t, err, domain.ErrChatUnavailable)
}

func TestChatInvalidMessages(t *testing.T) {
	svc := NewChatService(&fakeSearch{}, &fakeLLM{})

	_, _, err := svc.Chat(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = svc.Chat(context.Background(), []domain.ChatMessage{{Role: "assistant", Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = svc.Chat(context.Background(), userMsg("   "))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChatEmptyRetrievalStillAnswers(t *testing.T) {
	search := &fakeSearch{}
	llm := &fakeLLM{tokens: []string{"no idea"}}

	svc := NewChatService(search, llm)
	tokens, errs, err := svc.Chat(context.Background(), userMsg("obscure question"))
	require.NoError(t, err)
	for range tokens {
	}
	require.NoError(t, <-errs)

	assert.Contains(t, llm.gotMsgs[0].Content, "No relevant excerpts")
}
