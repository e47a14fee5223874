package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/demo"
	"github.com/payrail/payrail/internal/metrics"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/validate"
)

// ErrRedirectBaseUnset is returned when the hosted-onboarding path is
// reached without a configured base redirect URL. This is a fatal
// configuration error, not a client mistake.
var ErrRedirectBaseUnset = errors.New("base redirect URL is not configured")

// RequirementsCache caches remote requirements probes.
type RequirementsCache interface {
	GetRequirementsStatus(ctx context.Context, accountID string) (*bool, error)
	SetRequirementsStatus(ctx context.Context, accountID string, outstanding bool, currentlyDue []string) error
	DeleteRequirementsStatus(ctx context.Context, accountID string) error
}

// OnboardingService drives KYC collection for connected accounts:
// hosted onboarding links in real mode, synthesized data and optional
// bypass in demo mode.
type OnboardingService struct {
	gateway         payments.Gateway
	policy          demo.Policy
	cache           RequirementsCache
	baseRedirectURL string
	metrics         metrics.Recorder
	logger          *slog.Logger
}

// NewOnboardingService creates an OnboardingService. baseRedirectURL
// may be empty; the hosted-link path then fails with
// ErrRedirectBaseUnset.
func NewOnboardingService(gateway payments.Gateway, policy demo.Policy, cache RequirementsCache, baseRedirectURL string, recorder metrics.Recorder, logger *slog.Logger) *OnboardingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &OnboardingService{
		gateway:         gateway,
		policy:          policy,
		cache:           cache,
		baseRedirectURL: strings.TrimSuffix(baseRedirectURL, "/"),
		metrics:         recorder,
		logger:          logger,
	}
}

// OnboardInput defines the onboarding request body.
type OnboardInput struct {
	BusinessName   string
	SkipOnboarding bool
}

// Onboard updates the session's connected account and returns the
// redirect target: the application root when onboarding is bypassed
// (demo mode only), otherwise a hosted onboarding URL.
func (s *OnboardingService) Onboard(ctx context.Context, sess auth.Session, input OnboardInput) (string, error) {
	schema := validate.ForOnboarding(s.policy.Enabled)
	if err := schema.Validate(validate.OnboardingInput{
		BusinessName:   input.BusinessName,
		SkipOnboarding: input.SkipOnboarding,
	}); err != nil {
		return "", err
	}

	skip := input.SkipOnboarding && s.policy.SkipAllowed()

	params := &payments.AccountParams{
		BusinessProfile: &payments.BusinessProfileParams{Name: input.BusinessName},
	}
	s.policy.OnboardingOverlay(params, sess.Email, sess.Country)
	s.policy.SkipOverlay(params, skip, sess.FinancialProduct)

	start := time.Now()
	_, err := s.gateway.UpdateAccount(ctx, sess.Platform, sess.AccountID, params)
	s.metrics.ObserveGatewayDuration("update_account", time.Since(start))
	if err != nil {
		s.metrics.IncGatewayError("update_account")
		return "", fmt.Errorf("update connected account: %w", err)
	}

	// The account state changed; any cached probe is stale now.
	if s.cache != nil {
		if err := s.cache.DeleteRequirementsStatus(ctx, sess.AccountID); err != nil {
			s.logger.Warn("invalidate requirements cache", "account_id", sess.AccountID, "error", err)
		}
	}

	if skip {
		s.metrics.IncOnboardingSkipped()
		s.logger.Info("onboarding_skipped", "account_id", sess.AccountID)
		return "/", nil
	}

	if s.baseRedirectURL == "" {
		return "", ErrRedirectBaseUnset
	}

	start = time.Now()
	link, err := s.gateway.CreateAccountLink(ctx, sess.Platform, &payments.AccountLinkParams{
		Account:    sess.AccountID,
		RefreshURL: s.baseRedirectURL + "/onboard",
		ReturnURL:  s.baseRedirectURL + "/",
		Type:       "account_onboarding",
	})
	s.metrics.ObserveGatewayDuration("create_account_link", time.Since(start))
	if err != nil {
		s.metrics.IncGatewayError("create_account_link")
		return "", fmt.Errorf("create onboarding link: %w", err)
	}

	s.metrics.IncOnboardingLinkIssued()
	s.logger.Info("onboarding_link_issued", "account_id", sess.AccountID)

	return link.URL, nil
}

// HasOutstandingRequirements reports whether the account still has
// currently-due requirements other than the ignorable payout
// destination. This is a read-only probe; results are cached briefly.
func (s *OnboardingService) HasOutstandingRequirements(ctx context.Context, sess auth.Session) (bool, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRequirementsStatus(ctx, sess.AccountID)
		if err == nil && cached != nil {
			s.metrics.IncRequirementsProbe("cache")
			return *cached, nil
		}
	}

	start := time.Now()
	acct, err := s.gateway.GetAccount(ctx, sess.Platform, sess.AccountID)
	s.metrics.ObserveGatewayDuration("get_account", time.Since(start))
	if err != nil {
		s.metrics.IncGatewayError("get_account")
		return false, fmt.Errorf("retrieve account: %w", err)
	}
	s.metrics.IncRequirementsProbe("provider")

	due := payments.OutstandingRequirements(acct)
	outstanding := len(due) > 0

	if s.cache != nil {
		if err := s.cache.SetRequirementsStatus(ctx, sess.AccountID, outstanding, due); err != nil {
			s.logger.Warn("cache requirements status", "account_id", sess.AccountID, "error", err)
		}
	}

	return outstanding, nil
}

// InvalidateRequirements drops the cached probe for an account. Called
// by the provider-event webhook when an account changes.
func (s *OnboardingService) InvalidateRequirements(ctx context.Context, accountID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteRequirementsStatus(ctx, accountID)
}
