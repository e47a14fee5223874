// Command seed-demo-user inserts a user row directly, bypassing the
// registration endpoint. Useful for local development against a
// pre-existing connected account.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/model"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/repository"
)

type output struct {
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	AccountID string   `json:"account_id"`
	Country   string   `json:"country"`
	Platform  string   `json:"platform"`
	Caps      []string `json:"capabilities"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "demo@payrail.local", "User email")
		password    = flag.String("password", "", "Login password (required)")
		accountID   = flag.String("account-id", "", "Existing connected account ID (required)")
		country     = flag.String("country", "US", "Two-letter country code (US or GB)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}
	if *accountID == "" {
		fmt.Fprintln(os.Stderr, "-account-id is required")
		os.Exit(1)
	}

	platform, err := payments.PlatformForCountry(*country)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unsupported country %q; supported: %s\n",
			*country, strings.Join(payments.SupportedCountries(), ", "))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		ID:             ulid.Make().String(),
		Email:          *email,
		HashedPassword: hashed,
		AccountID:      *accountID,
		Country:        *country,
		Capabilities:   []string{payments.CapabilityTransfers, payments.CapabilityCardIssuing},
		CreatedAt:      time.Now().UTC(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	out := output{
		UserID:    user.ID,
		Email:     user.Email,
		AccountID: user.AccountID,
		Country:   user.Country,
		Platform:  string(platform),
		Caps:      user.Capabilities,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
