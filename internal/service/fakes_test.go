package service

import (
	"context"
	"sync"

	"github.com/payrail/payrail/internal/model"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/repository"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu        sync.Mutex
	users     map[string]*model.User // keyed by email
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeGateway records provider calls and returns canned responses.
type fakeGateway struct {
	mu sync.Mutex

	createCalls []*payments.AccountParams
	updateCalls []*payments.AccountParams
	linkCalls   []*payments.AccountLinkParams
	getCalls    []string

	createErr error
	updateErr error
	linkErr   error
	getErr    error

	nextAccountID string
	account       *payments.Account
	linkURL       string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		nextAccountID: "acct_test_1",
		linkURL:       "https://onboard.example.com/setup/abc",
	}
}

func (f *fakeGateway) CreateAccount(ctx context.Context, platform payments.Platform, params *payments.AccountParams) (*payments.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createCalls = append(f.createCalls, params)
	return &payments.Account{ID: f.nextAccountID, Country: params.Country, Email: params.Email}, nil
}

func (f *fakeGateway) UpdateAccount(ctx context.Context, platform payments.Platform, accountID string, params *payments.AccountParams) (*payments.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updateCalls = append(f.updateCalls, params)
	return &payments.Account{ID: accountID}, nil
}

func (f *fakeGateway) GetAccount(ctx context.Context, platform payments.Platform, accountID string) (*payments.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls = append(f.getCalls, accountID)
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.account != nil {
		return f.account, nil
	}
	return &payments.Account{ID: accountID}, nil
}

func (f *fakeGateway) CreateAccountLink(ctx context.Context, platform payments.Platform, params *payments.AccountLinkParams) (*payments.AccountLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.linkErr != nil {
		return nil, f.linkErr
	}
	f.linkCalls = append(f.linkCalls, params)
	return &payments.AccountLink{URL: f.linkURL}, nil
}

// fakeRequirementsCache is an in-memory RequirementsCache.
type fakeRequirementsCache struct {
	mu      sync.Mutex
	entries map[string]bool
	sets    int
	deletes int
}

func newFakeRequirementsCache() *fakeRequirementsCache {
	return &fakeRequirementsCache{entries: make(map[string]bool)}
}

func (f *fakeRequirementsCache) GetRequirementsStatus(ctx context.Context, accountID string) (*bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.entries[accountID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeRequirementsCache) SetRequirementsStatus(ctx context.Context, accountID string, outstanding bool, currentlyDue []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[accountID] = outstanding
	f.sets++
	return nil
}

func (f *fakeRequirementsCache) DeleteRequirementsStatus(ctx context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, accountID)
	f.deletes++
	return nil
}
