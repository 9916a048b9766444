package lint

// Config controls which rules run and at what severity. Precedence per
// rule: Disable beats Enable beats the rule's own default.
type Config struct {
	// DisabledRules contains rule IDs to skip.
	DisabledRules map[string]bool

	// EnabledRules force-enables rules that are disabled by default.
	EnabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules.
	SeverityOverrides map[string]Severity
}

// NewConfig creates an empty configuration: every rule keeps its own
// defaults.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		EnabledRules:      make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
	}
}

// IsEnabled resolves the effective enabled state for a rule given its
// default.
func (c *Config) IsEnabled(ruleID string, defaultEnabled bool) bool {
	if c == nil {
		return defaultEnabled
	}
	if c.DisabledRules[ruleID] {
		return false
	}
	if c.EnabledRules[ruleID] {
		return true
	}
	return defaultEnabled
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// Enable force-enables a rule by ID.
func (c *Config) Enable(ruleID string) *Config {
	c.EnabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}
