package schema

// Settings is the user-level backend configuration. Only the fields the
// client reads are modelled; unknown fields are ignored on decode.
type Settings struct {
	Version              int      `json:"version"`
	LastWriteTs          int64    `json:"lastWriteTs"`
	LastBalanceSave      int64    `json:"lastBalanceSave"`
	LastDataUploadTs     int64    `json:"lastDataUploadTs"`
	MainCurrency         string   `json:"mainCurrency"`
	UIFloatingPrecision  int      `json:"uiFloatingPrecision"`
	BalanceSaveFrequency int      `json:"balanceSaveFrequency"`
	DateDisplayFormat    string   `json:"dateDisplayFormat"`
	SubmitUsageAnalytics bool     `json:"submitUsageAnalytics"`
	PremiumShouldSync    bool     `json:"premiumShouldSync"`
	ActiveModules        []string `json:"activeModules"`
}

// Validate implements Validatable.
func (s *Settings) Validate() error {
	if s.MainCurrency == "" {
		return invalid("settings", "missing main currency")
	}
	if s.UIFloatingPrecision < 0 {
		return invalid("settings", "negative display precision %d", s.UIFloatingPrecision)
	}
	if s.BalanceSaveFrequency < 0 {
		return invalid("settings", "negative balance save frequency %d", s.BalanceSaveFrequency)
	}
	return nil
}

// SettingsUpdate is the request body of a settings change. Pointer fields
// distinguish "leave unchanged" from a zero value.
type SettingsUpdate struct {
	MainCurrency         *string  `json:"mainCurrency,omitempty"`
	UIFloatingPrecision  *int     `json:"uiFloatingPrecision,omitempty"`
	BalanceSaveFrequency *int     `json:"balanceSaveFrequency,omitempty"`
	DateDisplayFormat    *string  `json:"dateDisplayFormat,omitempty"`
	SubmitUsageAnalytics *bool    `json:"submitUsageAnalytics,omitempty"`
	PremiumShouldSync    *bool    `json:"premiumShouldSync,omitempty"`
	ActiveModules        []string `json:"activeModules,omitempty"`
}
