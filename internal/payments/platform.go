package payments

// Platform identifies the tenant configuration used for provider calls.
// Each platform has its own API credentials and serves one country.
type Platform string

// Supported platforms.
const (
	PlatformUS Platform = "US"
	PlatformGB Platform = "GB"
)

// countryPlatforms maps supported country codes to their platform.
var countryPlatforms = map[string]Platform{
	"US": PlatformUS,
	"GB": PlatformGB,
}

// PlatformForCountry resolves the platform serving a country code.
func PlatformForCountry(country string) (Platform, error) {
	p, ok := countryPlatforms[country]
	if !ok {
		return "", ErrUnsupportedCountry
	}
	return p, nil
}

// IsSupportedCountry reports whether registrations are accepted for
// the given country code.
func IsSupportedCountry(country string) bool {
	_, ok := countryPlatforms[country]
	return ok
}

// SupportedCountries returns the country codes with an active platform.
func SupportedCountries() []string {
	codes := make([]string, 0, len(countryPlatforms))
	for code := range countryPlatforms {
		codes = append(codes, code)
	}
	return codes
}
