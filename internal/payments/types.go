// Package payments provides a typed client for the remote payments
// provider's connected-account API.
package payments

// Capability names requested for every connected account.
const (
	CapabilityTransfers   = "transfers"
	CapabilityCardIssuing = "card_issuing"
)

// BusinessType values accepted by the provider.
const (
	BusinessTypeIndividual = "individual"
	BusinessTypeCompany    = "company"
)

// FinancialProductEmbeddedFinance is the product tier that includes
// treasury accounts. Accounts on this tier need a treasury ToS record
// when onboarding is bypassed.
const FinancialProductEmbeddedFinance = "Embedded Finance"

// Account is the provider's representation of a connected account.
// Only the fields this application reads are decoded.
type Account struct {
	ID           string            `json:"id"`
	Country      string            `json:"country"`
	Email        string            `json:"email"`
	BusinessType string            `json:"business_type"`
	Requirements *Requirements     `json:"requirements"`
	Capabilities map[string]string `json:"capabilities"`
}

// Requirements reports outstanding verification state for an account.
type Requirements struct {
	CurrentlyDue   []string `json:"currently_due"`
	EventuallyDue  []string `json:"eventually_due,omitempty"`
	DisabledReason string   `json:"disabled_reason,omitempty"`
}

// AccountParams is the request body for account create/update calls.
// Nil fields are omitted from the request.
type AccountParams struct {
	Type            string                 `json:"type,omitempty"`
	Country         string                 `json:"country,omitempty"`
	Email           string                 `json:"email,omitempty"`
	BusinessType    string                 `json:"business_type,omitempty"`
	BusinessProfile *BusinessProfileParams `json:"business_profile,omitempty"`
	Company         *CompanyParams         `json:"company,omitempty"`
	Individual      *IndividualParams      `json:"individual,omitempty"`
	Capabilities    *CapabilitiesParams    `json:"capabilities,omitempty"`
	TOSAcceptance   *TOSAcceptanceParams   `json:"tos_acceptance,omitempty"`
	Settings        *SettingsParams        `json:"settings,omitempty"`
}

// BusinessProfileParams describes the business behind an account.
type BusinessProfileParams struct {
	Name               string `json:"name,omitempty"`
	MCC                string `json:"mcc,omitempty"`
	ProductDescription string `json:"product_description,omitempty"`
	URL                string `json:"url,omitempty"`
}

// CompanyParams carries company-level KYC fields.
type CompanyParams struct {
	TaxID string `json:"tax_id,omitempty"`
}

// IndividualParams carries person-level KYC fields.
type IndividualParams struct {
	FirstName string         `json:"first_name,omitempty"`
	LastName  string         `json:"last_name,omitempty"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	IDNumber  string         `json:"id_number,omitempty"`
	DOB       *DOBParams     `json:"dob,omitempty"`
	Address   *AddressParams `json:"address,omitempty"`
}

// DOBParams is a date of birth split into components.
type DOBParams struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// AddressParams is a postal address.
type AddressParams struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CapabilitiesParams requests capabilities on an account.
type CapabilitiesParams struct {
	Transfers   *CapabilityParams `json:"transfers,omitempty"`
	CardIssuing *CapabilityParams `json:"card_issuing,omitempty"`
	Treasury    *CapabilityParams `json:"treasury,omitempty"`
}

// CapabilityParams marks a single capability as requested.
type CapabilityParams struct {
	Requested bool `json:"requested"`
}

// TOSAcceptanceParams records acceptance of the provider's terms.
type TOSAcceptanceParams struct {
	Date int64  `json:"date"`
	IP   string `json:"ip"`
}

// SettingsParams carries per-product account settings.
type SettingsParams struct {
	CardIssuing *CardIssuingSettingsParams `json:"card_issuing,omitempty"`
	Treasury    *TreasurySettingsParams    `json:"treasury,omitempty"`
}

// CardIssuingSettingsParams holds card-issuing settings.
type CardIssuingSettingsParams struct {
	TOSAcceptance *TOSAcceptanceParams `json:"tos_acceptance,omitempty"`
}

// TreasurySettingsParams holds treasury settings.
type TreasurySettingsParams struct {
	TOSAcceptance *TOSAcceptanceParams `json:"tos_acceptance,omitempty"`
}

// AccountLinkParams is the request body for hosted-onboarding links.
type AccountLinkParams struct {
	Account    string `json:"account"`
	RefreshURL string `json:"refresh_url"`
	ReturnURL  string `json:"return_url"`
	Type       string `json:"type"`
}

// AccountLink is a single-use hosted onboarding URL.
type AccountLink struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

// ignorableRequirement is reported by the provider for every account
// until a payout destination is attached; it does not block onboarding.
const ignorableRequirement = "external_account"

// OutstandingRequirements returns the currently-due requirement list
// with the ignorable external-account entry filtered out.
func OutstandingRequirements(acct *Account) []string {
	if acct == nil || acct.Requirements == nil {
		return nil
	}

	var due []string
	for _, req := range acct.Requirements.CurrentlyDue {
		if req == ignorableRequirement {
			continue
		}
		due = append(due, req)
	}
	return due
}
