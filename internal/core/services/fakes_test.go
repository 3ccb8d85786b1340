package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
)

// fakeRecordStore is an in-memory RecordStore for service tests.
type fakeRecordStore struct {
	mu            sync.Mutex
	resources     map[string]domain.Resource // by ID
	chunks        map[string]domain.Chunk    // by ID
	users         map[int64]domain.User
	conversations map[int64]domain.Conversation
	prices        map[string]domain.ResourcePrice
	purchases     []domain.Purchase
	nextID        int64

	commitErr error
	lookupErr error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		resources:     make(map[string]domain.Resource),
		chunks:        make(map[string]domain.Chunk),
		users:         make(map[int64]domain.User),
		conversations: make(map[int64]domain.Conversation),
		prices:        make(map[string]domain.ResourcePrice),
	}
}

var _ driven.RecordStore = (*fakeRecordStore)(nil)

func (f *fakeRecordStore) CommitResource(_ context.Context, resource domain.Resource, chunks []domain.Chunk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return f.commitErr
	}
	for _, r := range f.resources {
		if r.FilePath == resource.FilePath {
			return domain.ErrAlreadyExists
		}
	}
	f.resources[resource.ID] = resource
	for _, c := range chunks {
		f.chunks[c.ID] = c
	}
	return nil
}

func (f *fakeRecordStore) GetResourceByPath(_ context.Context, path string) (domain.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return domain.Resource{}, f.lookupErr
	}
	for _, r := range f.resources {
		if r.FilePath == path {
			return r, nil
		}
	}
	return domain.Resource{}, domain.ErrNotFound
}

func (f *fakeRecordStore) GetResourceByID(_ context.Context, id string) (domain.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resources[id]
	if !ok {
		return domain.Resource{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRecordStore) ListResources(_ context.Context) ([]domain.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Resource, 0, len(f.resources))
	for _, r := range f.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecordStore) AllFilePaths(_ context.Context) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	paths := make(map[string]struct{})
	for _, r := range f.resources {
		paths[r.FilePath] = struct{}{}
	}
	return paths, nil
}

func (f *fakeRecordStore) ChunksByIDs(_ context.Context, ids []string) ([]domain.ChunkWithResource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChunkWithResource
	for _, id := range ids {
		c, ok := f.chunks[id]
		if !ok {
			continue
		}
		out = append(out, domain.ChunkWithResource{Chunk: c, Resource: f.resources[c.ResourceID]})
	}
	return out, nil
}

func (f *fakeRecordStore) CountChunks(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chunks), nil
}

func (f *fakeRecordStore) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.User{}, domain.ErrAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeRecordStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeRecordStore) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeRecordStore) TouchLastLogin(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	u.LastLogin = &now
	f.users[id] = u
	return nil
}

func (f *fakeRecordStore) SaveConversation(_ context.Context, conv domain.Conversation) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	conv.ID = f.nextID
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}
	f.conversations[conv.ID] = conv
	return conv, nil
}

func (f *fakeRecordStore) ListConversations(_ context.Context, userID int64) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Conversation
	for _, c := range f.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecordStore) DeleteConversation(_ context.Context, userID, convID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conversations[convID]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.conversations, convID)
	return nil
}

func (f *fakeRecordStore) GetResourcePrice(_ context.Context, resourceID string) (domain.ResourcePrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prices[resourceID]
	if !ok {
		return domain.ResourcePrice{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeRecordStore) SetResourcePrice(_ context.Context, price domain.ResourcePrice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[price.ResourceID] = price
	return nil
}

func (f *fakeRecordStore) RecordPurchase(_ context.Context, p domain.Purchase) (domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.purchases = append(f.purchases, p)
	return p, nil
}

func (f *fakeRecordStore) ListPurchases(_ context.Context, userID int64) ([]domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Purchase
	for i := len(f.purchases) - 1; i >= 0; i-- {
		if f.purchases[i].UserID == userID {
			out = append(out, f.purchases[i])
		}
	}
	return out, nil
}

func (f *fakeRecordStore) HasPurchased(_ context.Context, userID int64, resourceID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.purchases {
		if p.UserID == userID && p.ResourceID == resourceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecordStore) Close() error { return nil }

// fakeEmbedder returns deterministic vectors derived from the text.
type fakeEmbedder struct {
	dims    int
	err     error
	byText  map[string][]float32
	embeds  int
	failFor string
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.failFor != "" && strings.Contains(text, f.failFor) {
		return nil, domain.ErrEmptyInput
	}
	f.embeds++
	if v, ok := f.byText[text]; ok {
		return v, nil
	}
	vec := make([]float32, f.dims)
	vec[0] = 1
	return vec, nil
}

func (f *fakeEmbedder) Dimensions() int                { return f.dims }
func (f *fakeEmbedder) ModelName() string              { return "fake" }
func (f *fakeEmbedder) Ping(_ context.Context) error   { return nil }
func (f *fakeEmbedder) Close() error                   { return nil }

// fakeScanner serves a fixed path list.
type fakeScanner struct {
	paths []string
	err   error
}

var _ driven.Scanner = (*fakeScanner)(nil)

func (f *fakeScanner) Scan(_ context.Context, _ string) ([]string, error) {
	return f.paths, f.err
}

func (f *fakeScanner) Watch(_ context.Context, _ string) (<-chan string, error) {
	ch := make(chan string)
	close(ch)
	return ch, nil
}

// fakeSegmenter returns canned chunks per path.
type fakeSegmenter struct {
	resources map[string]*domain.Resource
	chunks    map[string][]domain.Chunk
	errs      map[string]error
}

var _ driven.Segmenter = (*fakeSegmenter)(nil)

func (f *fakeSegmenter) Segment(_ context.Context, path string) (*domain.Resource, []domain.Chunk, error) {
	if err := f.errs[path]; err != nil {
		return nil, nil, err
	}
	return f.resources[path], f.chunks[path], nil
}

// fakeLLM streams canned tokens.
type fakeLLM struct {
	tokens    []string
	pingErr   error
	streamErr error
	gotMsgs   []domain.ChatMessage
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) ChatStream(_ context.Context, messages []domain.ChatMessage) (<-chan string, <-chan error) {
	f.gotMsgs = messages
	tokens := make(chan string, len(f.tokens))
	errs := make(chan error, 1)
	for _, tok := range f.tokens {
		tokens <- tok
	}
	close(tokens)
	if f.streamErr != nil {
		errs <- f.streamErr
	}
	close(errs)
	return tokens, errs
}

func (f *fakeLLM) ModelName() string            { return "fake" }
func (f *fakeLLM) Ping(_ context.Context) error { return f.pingErr }
func (f *fakeLLM) Close() error                 { return nil }
