// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// Response is the JSON envelope for every API response.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a human-readable error message.
type ErrorBody struct {
	Message string `json:"message"`
}

// RegisterRequest is the body for POST /api/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Country  string `json:"country"`
}

// LoginRequest is the body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse reports the session's account context.
type LoginResponse struct {
	Email     string `json:"email"`
	Country   string `json:"country"`
	AccountID string `json:"accountId"`
}

// OnboardRequest is the body for POST /api/onboard.
type OnboardRequest struct {
	BusinessName   string `json:"businessName"`
	SkipOnboarding bool   `json:"skipOnboarding,omitempty"`
}

// OnboardResponse carries the post-onboarding redirect target.
type OnboardResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// OnboardStatusResponse reports whether KYC requirements remain.
type OnboardStatusResponse struct {
	Outstanding bool `json:"outstanding"`
}
