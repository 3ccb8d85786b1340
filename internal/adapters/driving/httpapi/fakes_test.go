package httpapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
)

type fakeSearch struct {
	results  []domain.SearchResult
	err      error
	gotQuery string
	gotOpts  domain.SearchOptions
}

var _ driving.SearchService = (*fakeSearch)(nil)

func (f *fakeSearch) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	f.gotQuery = query
	f.gotOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeChat struct {
	tokens      []string
	err         error
	streamErr   error
	available   bool
	gotMessages []domain.ChatMessage
}

var _ driving.ChatService = (*fakeChat)(nil)

func (f *fakeChat) Status(context.Context) bool { return f.available }

func (f *fakeChat) Chat(_ context.Context, messages []domain.ChatMessage) (<-chan string, <-chan error, error) {
	f.gotMessages = messages
	if f.err != nil {
		return nil, nil, f.err
	}

	tokens := make(chan string, len(f.tokens))
	for _, tok := range f.tokens {
		tokens <- tok
	}
	close(tokens)

	errs := make(chan error, 1)
	if f.streamErr != nil {
		errs <- f.streamErr
	}
	close(errs)
	return tokens, errs, nil
}

// fakeAuth keeps accounts, history, and access decisions in memory.
type fakeAuth struct {
	mu sync.Mutex

	users       map[int64]domain.User
	nextUserID  int64
	registerErr error
	loginErr    error

	convs      []domain.Conversation
	nextConvID int64

	free      map[string]bool
	prices    map[string]domain.ResourcePrice
	purchased map[string]bool
	recorded  []domain.Purchase
}

var _ driving.AuthService = (*fakeAuth)(nil)

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		users:     make(map[int64]domain.User),
		free:      make(map[string]bool),
		prices:    make(map[string]domain.ResourcePrice),
		purchased: make(map[string]bool),
	}
}

func (f *fakeAuth) addUser(email string) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUserID++
	user := domain.User{ID: f.nextUserID, Email: email, CreatedAt: time.Now()}
	f.users[user.ID] = user
	return user
}

func (f *fakeAuth) Register(_ context.Context, email, _, displayName string) (domain.User, error) {
	if f.registerErr != nil {
		return domain.User{}, f.registerErr
	}
	user := f.addUser(email)
	user.DisplayName = displayName
	f.mu.Lock()
	f.users[user.ID] = user
	f.mu.Unlock()
	return user, nil
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (domain.User, error) {
	if f.loginErr != nil {
		return domain.User{}, f.loginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUnauthorized
}

func (f *fakeAuth) GetUser(_ context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeAuth) SaveConversation(_ context.Context, userID int64, messages []domain.ChatMessage) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextConvID++
	conv := domain.Conversation{ID: f.nextConvID, UserID: userID, Messages: messages, CreatedAt: time.Now()}
	f.convs = append(f.convs, conv)
	return conv, nil
}

func (f *fakeAuth) History(_ context.Context, userID int64) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Conversation
	for i := len(f.convs) - 1; i >= 0; i-- {
		if f.convs[i].UserID == userID {
			out = append(out, f.convs[i])
		}
	}
	return out, nil
}

func (f *fakeAuth) DeleteConversation(_ context.Context, userID, convID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, conv := range f.convs {
		if conv.ID == convID && conv.UserID == userID {
			f.convs = append(f.convs[:i], f.convs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeAuth) EmailAvailable(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeAuth) Purchases(_ context.Context, userID int64) ([]domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Purchase
	for _, p := range f.recorded {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAuth) ResourcePrice(_ context.Context, resourceID string) (domain.ResourcePrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if price, ok := f.prices[resourceID]; ok {
		return price, nil
	}
	return domain.ResourcePrice{ResourceID: resourceID, Free: true}, nil
}

func (f *fakeAuth) ResourceAccess(_ context.Context, userID int64, resourceID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.free[resourceID] {
		return true, nil
	}
	return f.purchased[purchaseKey(userID, resourceID)], nil
}

func (f *fakeAuth) RecordPurchase(_ context.Context, userID int64, resourceID string, amount float64, paymentID string) (domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchased[purchaseKey(userID, resourceID)] = true
	p := domain.Purchase{
		ID:         int64(len(f.recorded) + 1),
		UserID:     userID,
		ResourceID: resourceID,
		Amount:     amount,
		PaymentID:  paymentID,
		Status:     "completed",
		CreatedAt:  time.Now(),
	}
	f.recorded = append(f.recorded, p)
	return p, nil
}

func purchaseKey(userID int64, resourceID string) string {
	return fmt.Sprintf("%d/%s", userID, resourceID)
}

// fakeResources implements just the lookups the handlers use.
type fakeResources struct {
	resources map[string]domain.Resource
}

var _ driven.ResourceStore = (*fakeResources)(nil)

func newFakeResources() *fakeResources {
	return &fakeResources{resources: make(map[string]domain.Resource)}
}

func (f *fakeResources) CommitResource(context.Context, domain.Resource, []domain.Chunk) error {
	return nil
}

func (f *fakeResources) GetResourceByPath(context.Context, string) (domain.Resource, error) {
	return domain.Resource{}, domain.ErrNotFound
}

func (f *fakeResources) GetResourceByID(_ context.Context, id string) (domain.Resource, error) {
	r, ok := f.resources[id]
	if !ok {
		return domain.Resource{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeResources) ListResources(context.Context) ([]domain.Resource, error) {
	out := make([]domain.Resource, 0, len(f.resources))
	for _, r := range f.resources {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResources) AllFilePaths(context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (f *fakeResources) ChunksByIDs(context.Context, []string) ([]domain.ChunkWithResource, error) {
	return nil, nil
}

func (f *fakeResources) CountChunks(context.Context) (int, error) {
	return 0, nil
}
