package handler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/demo"
	"github.com/payrail/payrail/internal/model"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/repository"
	"github.com/payrail/payrail/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User

	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	s.users[user.Email] = user
	return nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeGateway struct {
	mu sync.Mutex

	account      *payments.Account
	linkURL      string
	createErr    error
	updateErr    error
	getErr       error
	linkErr      error
	updateCalled bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		account: &payments.Account{ID: "acct_test_1"},
		linkURL: "https://onboard.example.com/setup/abc",
	}
}

func (g *fakeGateway) CreateAccount(ctx context.Context, platform payments.Platform, params *payments.AccountParams) (*payments.Account, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.account, nil
}

func (g *fakeGateway) UpdateAccount(ctx context.Context, platform payments.Platform, accountID string, params *payments.AccountParams) (*payments.Account, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updateCalled = true
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return g.account, nil
}

func (g *fakeGateway) GetAccount(ctx context.Context, platform payments.Platform, accountID string) (*payments.Account, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.getErr != nil {
		return nil, g.getErr
	}
	return g.account, nil
}

func (g *fakeGateway) CreateAccountLink(ctx context.Context, platform payments.Platform, params *payments.AccountLinkParams) (*payments.AccountLink, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.linkErr != nil {
		return nil, g.linkErr
	}
	return &payments.AccountLink{URL: g.linkURL}, nil
}

type fakeRequirementsCache struct {
	mu      sync.Mutex
	entries map[string]bool
	deleted []string
}

func newFakeRequirementsCache() *fakeRequirementsCache {
	return &fakeRequirementsCache{entries: make(map[string]bool)}
}

func (c *fakeRequirementsCache) GetRequirementsStatus(ctx context.Context, accountID string) (*bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[accountID]; ok {
		return &v, nil
	}
	return nil, nil
}

func (c *fakeRequirementsCache) SetRequirementsStatus(ctx context.Context, accountID string, outstanding bool, currentlyDue []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[accountID] = outstanding
	return nil
}

func (c *fakeRequirementsCache) DeleteRequirementsStatus(ctx context.Context, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, accountID)
	c.deleted = append(c.deleted, accountID)
	return nil
}

func newRegistrationService(t *testing.T, store *fakeUserStore, gw *fakeGateway, demoMode bool) *service.RegistrationService {
	t.Helper()
	return service.NewRegistrationService(store, gw, demo.Policy{Enabled: demoMode}, nil, discardLogger())
}

func newOnboardingService(t *testing.T, gw *fakeGateway, cache *fakeRequirementsCache, demoMode bool, baseURL string) *service.OnboardingService {
	t.Helper()
	return service.NewOnboardingService(gw, demo.Policy{Enabled: demoMode}, cache, baseURL, nil, discardLogger())
}

func testSession() auth.Session {
	return auth.Session{
		Email:            "jenny@example.com",
		Country:          "US",
		FinancialProduct: payments.FinancialProductEmbeddedFinance,
		AccountID:        "acct_test_1",
		Platform:         payments.PlatformUS,
	}
}
