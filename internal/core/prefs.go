package core

// Preferences is the per-user settings singleton: loaded at startup, mutated
// on explicit update, never deleted.
type Preferences struct {
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

const (
	DefaultCurrency = "USD"
	DefaultTheme    = "neon"
)

var supportedCurrencies = []string{"USD", "EUR", "GBP", "INR", "JPY", "AUD", "CAD"}

var supportedThemes = []string{"neon", "light", "dark-castle"}

// DefaultPreferences returns the preferences used before any are stored.
func DefaultPreferences() Preferences {
	return Preferences{Currency: DefaultCurrency, Theme: DefaultTheme}
}

// Currencies returns the supported ISO 4217 currency codes.
func Currencies() []string {
	return append([]string(nil), supportedCurrencies...)
}

// Merge fills blank fields from the defaults, mirroring how stored
// preferences are layered over the built-in ones on load.
func (p Preferences) Merge() Preferences {
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	return p
}

// Validate checks both fields against their closed sets.
func (p Preferences) Validate() error {
	if !contains(supportedCurrencies, p.Currency) {
		return &ValidationError{Field: "currency", Reason: ErrInvalidCurrency}
	}
	if !contains(supportedThemes, p.Theme) {
		return &ValidationError{Field: "theme", Reason: ErrInvalidTheme}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
