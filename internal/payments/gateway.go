package payments

import "context"

// Gateway abstracts the remote payments provider's connected-account
// operations. The production implementation is Client; tests use fakes.
type Gateway interface {
	// CreateAccount creates a new connected account on the platform.
	CreateAccount(ctx context.Context, platform Platform, params *AccountParams) (*Account, error)

	// UpdateAccount applies params to an existing account.
	UpdateAccount(ctx context.Context, platform Platform, accountID string, params *AccountParams) (*Account, error)

	// GetAccount retrieves the current account state, including
	// outstanding requirements.
	GetAccount(ctx context.Context, platform Platform, accountID string) (*Account, error)

	// CreateAccountLink issues a single-use hosted onboarding URL.
	CreateAccountLink(ctx context.Context, platform Platform, params *AccountLinkParams) (*AccountLink, error)
}
