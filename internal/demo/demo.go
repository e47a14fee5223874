// Package demo implements the demo-mode policy: when enabled, synthetic
// KYC data replaces real user input and hosted onboarding may be
// bypassed entirely. The policy is fixed at process start.
package demo

import (
	"time"

	"github.com/payrail/payrail/internal/payments"
)

// Synthetic KYC constants recognized by the provider's test mode.
const (
	// testTaxID passes test-mode business and personal verification.
	testTaxID = "000000000"

	// autoVerifyAddressLine1 signals "verify this address" to the
	// provider's test mode.
	autoVerifyAddressLine1 = "address_full_match"

	// testMCC is the merchant category code for computer software stores.
	testMCC = "5734"

	testProductDescription = "Payrail demo merchant"
	testBusinessURL        = "https://demo.payrail.dev"

	testFirstName = "Jenny"
	testLastName  = "Rosen"
	testPhone     = "0000000000"
)

// testDOB is the provider's magic date of birth that always verifies.
var testDOB = payments.DOBParams{Day: 1, Month: 1, Year: 1901}

// tosAcceptedAt is the fixed acceptance date recorded when onboarding
// is bypassed in demo mode.
var tosAcceptedAt = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

// tosAcceptedIP is the fixed IP recorded with bypassed ToS acceptance.
const tosAcceptedIP = "127.0.0.1"

// Policy is the process-wide demo-mode flag, threaded through
// constructors rather than read from a global.
type Policy struct {
	Enabled bool
}

// SkipAllowed reports whether the skip-onboarding bypass is honored.
func (p Policy) SkipAllowed() bool {
	return p.Enabled
}

// RegistrationOverlay mutates account-creation params with synthetic
// KYC data: a test tax id and an individual business type. No-op when
// demo mode is off.
func (p Policy) RegistrationOverlay(params *payments.AccountParams) {
	if !p.Enabled {
		return
	}

	params.BusinessType = payments.BusinessTypeIndividual
	params.Company = &payments.CompanyParams{TaxID: testTaxID}
}

// OnboardingOverlay mutates account-update params with a full synthetic
// KYC profile: business profile details, a verifiable individual, and a
// test-mode auto-verify address. email and country come from the
// session; everything else is fixed. No-op when demo mode is off.
func (p Policy) OnboardingOverlay(params *payments.AccountParams, email, country string) {
	if !p.Enabled {
		return
	}

	if params.BusinessProfile == nil {
		params.BusinessProfile = &payments.BusinessProfileParams{}
	}
	params.BusinessProfile.MCC = testMCC
	params.BusinessProfile.ProductDescription = testProductDescription
	params.BusinessProfile.URL = testBusinessURL

	params.Company = &payments.CompanyParams{TaxID: testTaxID}

	dob := testDOB
	params.Individual = &payments.IndividualParams{
		FirstName: testFirstName,
		LastName:  testLastName,
		Email:     email,
		Phone:     testPhone,
		IDNumber:  testTaxID,
		DOB:       &dob,
		Address:   syntheticAddress(country),
	}
}

// SkipOverlay records terms-of-service acceptance so the provider
// treats onboarding as complete: on the account root, in card-issuing
// settings, and in treasury settings when the financial product
// includes treasury. No-op unless demo mode is on and skip requested.
func (p Policy) SkipOverlay(params *payments.AccountParams, skipRequested bool, financialProduct string) {
	if !p.Enabled || !skipRequested {
		return
	}

	tos := payments.TOSAcceptanceParams{Date: tosAcceptedAt, IP: tosAcceptedIP}

	params.TOSAcceptance = &tos

	if params.Settings == nil {
		params.Settings = &payments.SettingsParams{}
	}
	cardTOS := tos
	params.Settings.CardIssuing = &payments.CardIssuingSettingsParams{TOSAcceptance: &cardTOS}

	if financialProduct == payments.FinancialProductEmbeddedFinance {
		treasuryTOS := tos
		params.Settings.Treasury = &payments.TreasurySettingsParams{TOSAcceptance: &treasuryTOS}
	}
}

// syntheticAddress returns a test-mode address for the country. The
// line1 sentinel triggers auto-verification; city and postal fields are
// filled for countries the demo recognizes, country-only otherwise.
func syntheticAddress(country string) *payments.AddressParams {
	addr := &payments.AddressParams{
		Line1:   autoVerifyAddressLine1,
		Country: country,
	}

	switch country {
	case "US":
		addr.City = "South San Francisco"
		addr.State = "CA"
		addr.PostalCode = "94080"
	case "GB":
		addr.City = "London"
		addr.PostalCode = "WC1B 5DA"
	}

	return addr
}
