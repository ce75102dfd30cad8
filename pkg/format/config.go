package format

// =============================================================================
// Config Export / Import
// =============================================================================

// RuleEntry is an (id, rule) pair in export order.
type RuleEntry struct {
	ID   string `json:"id"`
	Rule Rule   `json:"rule"`
}

// ScaleEntry is a (name, scale) pair in export order.
type ScaleEntry struct {
	Name  string     `json:"name"`
	Scale ColorScale `json:"scale"`
}

// ThresholdEntry is an (id, threshold) pair in export order.
type ThresholdEntry struct {
	ID        string    `json:"id"`
	Threshold Threshold `json:"threshold"`
}

// Config is the engine's portable configuration: each store serialized as
// an ordered sequence of (id, value) pairs plus the current scale. Custom
// condition callbacks and value formatters survive in-memory round-trips
// but are dropped by JSON serialization.
type Config struct {
	Rules             []RuleEntry      `json:"rules,omitempty"`
	ColorScales       []ScaleEntry     `json:"colorScales,omitempty"`
	Thresholds        []ThresholdEntry `json:"thresholds,omitempty"`
	CurrentColorScale *ColorScale      `json:"currentColorScale,omitempty"`
}

// ExportConfig snapshots the engine's stores in insertion order.
// Importing the result into any engine reproduces identical evaluation
// behavior, though object identity is not preserved.
func (e *Engine) ExportConfig() Config {
	cfg := Config{}

	e.rules.each(func(id string, r storedRule) {
		cfg.Rules = append(cfg.Rules, RuleEntry{ID: id, Rule: r.Rule})
	})
	e.scales.each(func(name string, s ColorScale) {
		cfg.ColorScales = append(cfg.ColorScales, ScaleEntry{Name: name, Scale: s})
	})
	e.thresholds.each(func(id string, t Threshold) {
		cfg.Thresholds = append(cfg.Thresholds, ThresholdEntry{ID: id, Threshold: t})
	})

	if e.current != nil {
		scale := *e.current
		cfg.CurrentColorScale = &scale
	}
	return cfg
}

// ImportConfig replaces the engine's stores wholesale from the config. A
// nil field leaves the corresponding store untouched; a non-nil empty
// slice clears it. Rule conditions are re-resolved on import, and the
// RulesApplied metric is not advanced — importing is a replacement, not a
// registration.
func (e *Engine) ImportConfig(cfg Config) {
	if cfg.Rules != nil {
		e.rules = newOrderedMap[storedRule]()
		for _, entry := range cfg.Rules {
			r := entry.Rule
			if r.ID == "" {
				r.ID = entry.ID
			}
			e.rules.set(entry.ID, storedRule{Rule: r, match: r.Condition.compile()})
		}
	}
	if cfg.ColorScales != nil {
		e.scales = newOrderedMap[ColorScale]()
		for _, entry := range cfg.ColorScales {
			e.scales.set(entry.Name, entry.Scale)
		}
	}
	if cfg.Thresholds != nil {
		e.thresholds = newOrderedMap[Threshold]()
		for _, entry := range cfg.Thresholds {
			e.thresholds.set(entry.ID, entry.Threshold)
		}
	}
	if cfg.CurrentColorScale != nil {
		scale := *cfg.CurrentColorScale
		e.current = &scale
	}
}
