// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/demo"
	"github.com/payrail/payrail/internal/metrics"
	"github.com/payrail/payrail/internal/model"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/repository"
	"github.com/payrail/payrail/internal/validate"
)

// Service errors.
var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the persistence surface the services need.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// RegistrationService creates platform users and their remote
// connected accounts.
type RegistrationService struct {
	store   UserStore
	gateway payments.Gateway
	policy  demo.Policy
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(store UserStore, gateway payments.Gateway, policy demo.Policy, recorder metrics.Recorder, logger *slog.Logger) *RegistrationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RegistrationService{
		store:   store,
		gateway: gateway,
		policy:  policy,
		metrics: recorder,
		logger:  logger,
	}
}

// RegisterInput defines input for registration.
type RegisterInput struct {
	Email    string
	Password string
	Country  string
}

// Register validates the input, creates a remote connected account and
// persists the local user row. The remote account is created first so
// a user row never exists without one; the reverse window (remote
// account without a user row) is logged, not compensated.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) error {
	if err := validate.Registration(validate.RegistrationInput{
		Email:    input.Email,
		Password: input.Password,
		Country:  input.Country,
	}); err != nil {
		return err
	}

	// Duplicate registration must not leave partial state behind, so
	// the existence check runs before any provider call.
	_, err := s.store.GetUserByEmail(ctx, input.Email)
	if err == nil {
		s.metrics.IncRegistrationConflict()
		return ErrAccountExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("check existing user: %w", err)
	}

	platform, err := payments.PlatformForCountry(input.Country)
	if err != nil {
		// Country was validated above; reaching this means the
		// validation and platform tables disagree.
		return fmt.Errorf("resolve platform for %s: %w", input.Country, err)
	}

	capabilities := []string{payments.CapabilityTransfers, payments.CapabilityCardIssuing}

	params := &payments.AccountParams{
		Type:    "custom",
		Country: input.Country,
		Email:   input.Email,
		Capabilities: &payments.CapabilitiesParams{
			Transfers:   &payments.CapabilityParams{Requested: true},
			CardIssuing: &payments.CapabilityParams{Requested: true},
		},
	}
	s.policy.RegistrationOverlay(params)

	start := time.Now()
	acct, err := s.gateway.CreateAccount(ctx, platform, params)
	s.metrics.ObserveGatewayDuration("create_account", time.Since(start))
	if err != nil {
		s.metrics.IncGatewayError("create_account")
		return fmt.Errorf("create connected account: %w", err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:             ulid.Make().String(),
		Email:          input.Email,
		HashedPassword: hashed,
		AccountID:      acct.ID,
		Country:        input.Country,
		Capabilities:   capabilities,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		// The remote account now exists with no local row. There is
		// no compensation path; flag it loudly for reconciliation.
		s.logger.Error("orphaned connected account: user insert failed after remote creation",
			"account_id", acct.ID,
			"email", input.Email,
			"error", err,
		)
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncRegistrationConflict()
			return ErrAccountExists
		}
		return fmt.Errorf("persist user: %w", err)
	}

	s.metrics.IncUserRegistered()
	s.logger.Info("user_registered",
		"user_id", user.ID,
		"account_id", acct.ID,
		"country", input.Country,
		"demo_mode", s.policy.Enabled,
	)

	return nil
}

// Authenticate verifies credentials and returns the matching user.
// Lookup and verification failures collapse into ErrInvalidCredentials
// so callers cannot distinguish unknown emails from wrong passwords.
func (s *RegistrationService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if err := validate.Credentials(email, password); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.HashedPassword)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
