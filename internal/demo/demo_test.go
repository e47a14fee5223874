package demo

import (
	"testing"

	"github.com/payrail/payrail/internal/payments"
)

func TestRegistrationOverlay_Disabled(t *testing.T) {
	t.Parallel()

	params := &payments.AccountParams{Type: "custom", Country: "US"}
	Policy{Enabled: false}.RegistrationOverlay(params)

	if params.BusinessType != "" || params.Company != nil {
		t.Errorf("overlay applied with demo mode off: %+v", params)
	}
}

func TestRegistrationOverlay_Enabled(t *testing.T) {
	t.Parallel()

	params := &payments.AccountParams{Type: "custom", Country: "US"}
	Policy{Enabled: true}.RegistrationOverlay(params)

	if params.BusinessType != payments.BusinessTypeIndividual {
		t.Errorf("business_type = %q, want individual", params.BusinessType)
	}
	if params.Company == nil || params.Company.TaxID != testTaxID {
		t.Errorf("company = %+v, want test tax id", params.Company)
	}
}

func TestOnboardingOverlay(t *testing.T) {
	t.Parallel()

	params := &payments.AccountParams{
		BusinessProfile: &payments.BusinessProfileParams{Name: "Rocket Rides"},
	}
	Policy{Enabled: true}.OnboardingOverlay(params, "user@example.com", "US")

	if params.BusinessProfile.Name != "Rocket Rides" {
		t.Error("overlay must not replace the supplied business name")
	}
	if params.BusinessProfile.MCC != testMCC {
		t.Errorf("mcc = %q", params.BusinessProfile.MCC)
	}

	ind := params.Individual
	if ind == nil {
		t.Fatal("individual not set")
	}
	if ind.Email != "user@example.com" {
		t.Errorf("individual email = %q, want session email", ind.Email)
	}
	if ind.DOB == nil || ind.DOB.Year != 1901 || ind.DOB.Month != 1 || ind.DOB.Day != 1 {
		t.Errorf("dob = %+v, want 1901-01-01", ind.DOB)
	}
	if ind.Address == nil || ind.Address.Line1 != autoVerifyAddressLine1 {
		t.Errorf("address = %+v, want auto-verify line1", ind.Address)
	}
}

func TestOnboardingOverlay_AddressByCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		country    string
		wantCity   string
		wantState  string
		wantPostal string
	}{
		{"US", "South San Francisco", "CA", "94080"},
		{"GB", "London", "", "WC1B 5DA"},
		{"SG", "", "", ""}, // unrecognized: country code only
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.country, func(t *testing.T) {
			t.Parallel()

			params := &payments.AccountParams{}
			Policy{Enabled: true}.OnboardingOverlay(params, "u@example.com", tt.country)

			addr := params.Individual.Address
			if addr.Country != tt.country {
				t.Errorf("country = %q", addr.Country)
			}
			if addr.City != tt.wantCity || addr.State != tt.wantState || addr.PostalCode != tt.wantPostal {
				t.Errorf("address = %+v", addr)
			}
		})
	}
}

func TestSkipOverlay(t *testing.T) {
	t.Parallel()

	t.Run("demo off", func(t *testing.T) {
		params := &payments.AccountParams{}
		Policy{Enabled: false}.SkipOverlay(params, true, payments.FinancialProductEmbeddedFinance)
		if params.TOSAcceptance != nil || params.Settings != nil {
			t.Error("skip overlay applied with demo mode off")
		}
	})

	t.Run("skip not requested", func(t *testing.T) {
		params := &payments.AccountParams{}
		Policy{Enabled: true}.SkipOverlay(params, false, payments.FinancialProductEmbeddedFinance)
		if params.TOSAcceptance != nil {
			t.Error("skip overlay applied without skip request")
		}
	})

	t.Run("embedded finance gets treasury tos", func(t *testing.T) {
		params := &payments.AccountParams{}
		Policy{Enabled: true}.SkipOverlay(params, true, payments.FinancialProductEmbeddedFinance)

		if params.TOSAcceptance == nil || params.TOSAcceptance.IP != tosAcceptedIP {
			t.Errorf("root tos = %+v", params.TOSAcceptance)
		}
		if params.Settings == nil || params.Settings.CardIssuing == nil || params.Settings.CardIssuing.TOSAcceptance == nil {
			t.Error("card issuing tos not set")
		}
		if params.Settings.Treasury == nil || params.Settings.Treasury.TOSAcceptance == nil {
			t.Error("treasury tos not set for Embedded Finance")
		}
	})

	t.Run("other product skips treasury tos", func(t *testing.T) {
		params := &payments.AccountParams{}
		Policy{Enabled: true}.SkipOverlay(params, true, "Expense Cards")

		if params.Settings.CardIssuing == nil {
			t.Error("card issuing tos not set")
		}
		if params.Settings.Treasury != nil {
			t.Error("treasury tos must only be set for Embedded Finance")
		}
	})
}
