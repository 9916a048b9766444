package lint

import "fmt"

// Registry is the catalog of known rules for one linting setup. It is
// an explicit object: the hosting process constructs it once, registers
// rules, and passes it by reference to every consumer. There is no
// package-level registry.
//
// Registration order is preserved and defines result order for a run,
// so output is deterministic for a given input and configuration.
// A Registry must be fully constructed before it is shared; after that
// it is read-only and safe for concurrent use.
type Registry struct {
	rules  []Rule
	byID   map[string]Rule
	config *Config
}

// NewRegistry creates an empty registry. cfg supplies enable/disable
// state and severity overrides; nil means every rule keeps its
// defaults.
func NewRegistry(cfg *Config) *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		config: cfg,
	}
}

// Register adds a rule to the catalog. Registering two rules with the
// same ID is a programming error and is rejected.
func (r *Registry) Register(rule Rule) error {
	id := rule.Config().ID
	if id == "" {
		return fmt.Errorf("rule has empty ID")
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("rule %q already registered", id)
	}
	r.byID[id] = rule
	r.rules = append(r.rules, rule)
	return nil
}

// MustRegister is Register that panics on error, for use during
// assembly of a built-in catalog.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Rules returns all registered rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// EnabledRules returns the rules enabled under the registry's
// configuration, in registration order.
func (r *Registry) EnabledRules() []Rule {
	var out []Rule
	for _, rule := range r.rules {
		cfg := rule.Config()
		if r.config.IsEnabled(cfg.ID, cfg.Enabled) {
			out = append(out, rule)
		}
	}
	return out
}

// RuleByID returns the rule registered under id.
func (r *Registry) RuleByID(id string) (Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}

// Severity returns the effective severity for a rule after overrides.
// ok is false when the id is not registered; since every emitted
// result's RuleID is guaranteed registered, callers treat that as a
// programming error.
func (r *Registry) Severity(id string) (Severity, bool) {
	rule, ok := r.byID[id]
	if !ok {
		return SeverityWarning, false
	}
	cfg := rule.Config()
	return r.config.GetSeverity(cfg.ID, cfg.Severity), true
}

// IsEnabled resolves the effective enabled state for a registered
// rule. Unregistered ids are never enabled.
func (r *Registry) IsEnabled(id string) bool {
	rule, ok := r.byID[id]
	if !ok {
		return false
	}
	cfg := rule.Config()
	return r.config.IsEnabled(cfg.ID, cfg.Enabled)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}
