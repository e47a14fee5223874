// Package validate checks incoming request payloads against named
// schemas. Validation is eager: every field is checked and all
// violations are collected before any side effect occurs.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/payrail/payrail/internal/payments"
)

// Field limits.
const (
	MaxEmailLength        = 255
	MaxPasswordLength     = 255
	MinPasswordLength     = 8
	MaxBusinessNameLength = 255
)

// emailPattern is a pragmatic email shape check, not a full RFC 5322
// parser. Deliverability is the provider's problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FieldError describes a single field-level violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors aggregates field violations. It satisfies the error interface
// so services can return it directly; handlers render it as a single
// human-readable message.
type Errors []FieldError

// Error joins all violations into one message.
func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// orNil returns the collected errors, or nil when the payload is clean.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// RegistrationInput is the registration payload to validate.
type RegistrationInput struct {
	Email    string
	Password string
	Country  string
}

// Registration validates a registration payload.
func Registration(in RegistrationInput) error {
	var errs Errors

	errs = append(errs, checkEmail(in.Email)...)
	errs = append(errs, checkPassword(in.Password)...)
	errs = append(errs, checkCountry(in.Country)...)

	return errs.orNil()
}

// Credentials validates a login payload. Only presence is checked; the
// stored hash decides correctness.
func Credentials(email, password string) error {
	var errs Errors

	if email == "" {
		errs = append(errs, FieldError{"email", "is required"})
	}
	if password == "" {
		errs = append(errs, FieldError{"password", "is required"})
	}

	return errs.orNil()
}

// OnboardingInput is the onboarding payload to validate.
type OnboardingInput struct {
	BusinessName   string
	SkipOnboarding bool
}

// OnboardingSchema is a tagged validation variant for the onboarding
// payload. The strict variant rejects the skip flag; the demo variant
// honors it. Selection is a pure function of the demo-mode flag.
type OnboardingSchema struct {
	allowSkip bool
}

// ForOnboarding returns the schema variant for the given demo-mode flag.
func ForOnboarding(demoMode bool) OnboardingSchema {
	return OnboardingSchema{allowSkip: demoMode}
}

// AllowsSkip reports whether this variant honors the skip flag.
func (s OnboardingSchema) AllowsSkip() bool {
	return s.allowSkip
}

// Validate checks an onboarding payload against this schema variant.
func (s OnboardingSchema) Validate(in OnboardingInput) error {
	var errs Errors

	if in.BusinessName == "" {
		errs = append(errs, FieldError{"businessName", "is required"})
	} else if len(in.BusinessName) > MaxBusinessNameLength {
		errs = append(errs, FieldError{"businessName", "must be at most 255 characters"})
	}

	if in.SkipOnboarding && !s.allowSkip {
		errs = append(errs, FieldError{"skipOnboarding", "is not permitted"})
	}

	return errs.orNil()
}

func checkEmail(email string) Errors {
	var errs Errors

	if email == "" {
		return Errors{{"email", "is required"}}
	}
	if len(email) > MaxEmailLength {
		errs = append(errs, FieldError{"email", "must be at most 255 characters"})
	}
	if !emailPattern.MatchString(email) {
		errs = append(errs, FieldError{"email", "must be a valid email address"})
	}
	return errs
}

func checkPassword(password string) Errors {
	var errs Errors

	if password == "" {
		return Errors{{"password", "is required"}}
	}
	if len(password) < MinPasswordLength {
		errs = append(errs, FieldError{"password", "must be at least 8 characters"})
	}
	if len(password) > MaxPasswordLength {
		errs = append(errs, FieldError{"password", "must be at most 255 characters"})
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit {
		errs = append(errs, FieldError{"password", "must contain a digit"})
	}
	if !hasLower {
		errs = append(errs, FieldError{"password", "must contain a lowercase letter"})
	}
	if !hasUpper {
		errs = append(errs, FieldError{"password", "must contain an uppercase letter"})
	}
	return errs
}

func checkCountry(country string) Errors {
	if country == "" {
		return Errors{{"country", "is required"}}
	}
	if !payments.IsSupportedCountry(country) {
		return Errors{{"country", "is not supported"}}
	}
	return nil
}
