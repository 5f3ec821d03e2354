package application_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock implementations ---

type mockCredentialVault struct {
	credentials map[model.Platform]string
	loadErr     error
	saveErr     error
	saves       int
}

func (m *mockCredentialVault) Save(_ context.Context, credentials map[model.Platform]string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.credentials = credentials
	return nil
}

func (m *mockCredentialVault) Load(_ context.Context) (map[model.Platform]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[model.Platform]string, len(m.credentials))
	for k, v := range m.credentials {
		out[k] = v
	}
	return out, nil
}

func (m *mockCredentialVault) Get(ctx context.Context, platform model.Platform) (string, error) {
	credentials, err := m.Load(ctx)
	if err != nil {
		return "", err
	}
	credential, ok := credentials[platform]
	if !ok {
		return "", driven.ErrMissingCredential
	}
	return credential, nil
}

type mockTokenVault struct {
	mu     sync.Mutex
	tokens map[model.Platform]model.Token
	now    time.Time
	saves  int
}

func newMockTokenVault(now time.Time) *mockTokenVault {
	return &mockTokenVault{tokens: make(map[model.Platform]model.Token), now: now}
}

func (m *mockTokenVault) Save(_ context.Context, tokens map[model.Platform]model.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.tokens = make(map[model.Platform]model.Token, len(tokens))
	for k, v := range tokens {
		m.tokens[k] = v
	}
	return nil
}

func (m *mockTokenVault) Load(_ context.Context) (map[model.Platform]model.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[model.Platform]model.Token, len(m.tokens))
	for k, v := range m.tokens {
		out[k] = v
	}
	return out, nil
}

func (m *mockTokenVault) Status(ctx context.Context, platform model.Platform) (model.AuthStatus, error) {
	tokens, err := m.Load(ctx)
	if err != nil {
		return model.AuthStatus{}, err
	}
	token, ok := tokens[platform]
	if !ok {
		return model.AuthStatus{Authorized: false, NeedsRefresh: true}, nil
	}
	if token.Expired(m.now) {
		return model.AuthStatus{Authorized: false, NeedsRefresh: true, ExpiresAt: token.ExpiresAt}, nil
	}
	return model.AuthStatus{Authorized: true, ExpiresAt: token.ExpiresAt}, nil
}

type mockPlatformClient struct {
	platform   model.Platform
	limit      int
	validateFn func(credential string) bool
	authorize  func(ctx context.Context, credential string) model.AuthResult
	post       func(ctx context.Context, token, text string, mediaFiles []string) model.PostResult

	mu             sync.Mutex
	authorizeCalls int
	postCalls      int
}

func (m *mockPlatformClient) Platform() model.Platform { return m.platform }

func (m *mockPlatformClient) ValidateCredential(_ context.Context, credential string) bool {
	if m.validateFn == nil {
		return true
	}
	return m.validateFn(credential)
}

func (m *mockPlatformClient) Authorize(ctx context.Context, credential string) model.AuthResult {
	m.mu.Lock()
	m.authorizeCalls++
	m.mu.Unlock()
	if m.authorize == nil {
		return model.AuthResult{Success: true, Token: "token-for-" + string(m.platform)}
	}
	return m.authorize(ctx, credential)
}

func (m *mockPlatformClient) Post(ctx context.Context, token, text string, mediaFiles []string) model.PostResult {
	m.mu.Lock()
	m.postCalls++
	m.mu.Unlock()
	if m.post == nil {
		return model.PostResult{Success: true, PostID: "post-1", PostURL: "https://example.com/post-1"}
	}
	return m.post(ctx, token, text, mediaFiles)
}

func (m *mockPlatformClient) CharacterLimit() int {
	if m.limit == 0 {
		return model.DefaultCharacterLimit
	}
	return m.limit
}

type mockRegistry struct {
	clients map[model.Platform]driven.PlatformClient
}

func newMockRegistry(clients ...driven.PlatformClient) *mockRegistry {
	m := make(map[model.Platform]driven.PlatformClient, len(clients))
	for _, c := range clients {
		m[c.Platform()] = c
	}
	return &mockRegistry{clients: m}
}

func (m *mockRegistry) Client(platform model.Platform) (driven.PlatformClient, bool) {
	c, ok := m.clients[platform]
	return c, ok
}

type mockHistoryStore struct {
	mu      sync.Mutex
	records []model.PostRecord
	err     error
}

func (m *mockHistoryStore) Record(_ context.Context, rec model.PostRecord) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockHistoryStore) List(_ context.Context, limit int) ([]model.PostRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.PostRecord(nil), m.records...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockDraftStore struct {
	drafts []model.Draft
}

func (m *mockDraftStore) Save(_ context.Context, text string, mediaFiles []string) (model.Draft, error) {
	draft := model.Draft{ID: "1", Text: text, MediaFiles: mediaFiles, CreatedAt: time.Unix(1700000000, 0)}
	m.drafts = append(m.drafts, draft)
	return draft, nil
}

func (m *mockDraftStore) List(_ context.Context) ([]model.Draft, error) {
	return m.drafts, nil
}
