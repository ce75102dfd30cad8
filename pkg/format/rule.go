package format

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lmeyer/cascade/pkg/waterfall"
)

// =============================================================================
// Conditions
// =============================================================================

// CustomCondition is the callback form of a rule condition. It receives the
// extracted value, the item, its index, and the whole dataset, and reports
// whether the rule matches.
type CustomCondition func(value float64, item waterfall.Item, index int, dataset []waterfall.Item) bool

// Condition is the matching logic attached to a rule. It is a tagged
// variant: when Custom is non-nil the callback decides the match,
// otherwise Op and Value describe a structural comparison against the
// item's numeric value.
//
// Literal operators are ">", ">=", "<", "<=", "==", "===", "!=", and "!==".
// The strict variants are aliases here since all comparisons are numeric.
// An unrecognized operator never matches; it is not an error.
type Condition struct {
	Op     string          `json:"op,omitempty"`
	Value  float64         `json:"value,omitempty"`
	Custom CustomCondition `json:"-"`
}

// matcher is a condition resolved into a closure. Resolution happens once
// when the rule is added, not on every evaluation.
type matcher func(value float64, item waterfall.Item, index int, dataset []waterfall.Item) bool

// compile resolves the condition's tagged variant into a matcher.
func (c Condition) compile() matcher {
	if c.Custom != nil {
		return matcher(c.Custom)
	}
	cmp := c.Value
	switch c.Op {
	case ">":
		return func(v float64, _ waterfall.Item, _ int, _ []waterfall.Item) bool { return v > cmp }
	case ">=":
		return func(v float64, _ waterfall.Item, _ int, _ []waterfall.Item) bool { return v >= cmp }
	case "<":
		return func(v float64, _ waterfall.Item, _ int, _ []waterfall.Item) bool { return v < cmp }
	case "<=":
		return func(v float64, _ waterfall.Item, _ int, _ []waterfall.Item) bool { return v <= cmp }
	case "==", "===":
		return func(v float64, _ waterfall.Item, _ int, _ []waterfall.Item) bool { return v == cmp }
	case "!=", "!==":
		return func(v float64, _ waterfall.Item, _ int, _ []waterfall.Item) bool { return v != cmp }
	default:
		// Unknown operator: non-match, by contract.
		return func(float64, waterfall.Item, int, []waterfall.Item) bool { return false }
	}
}

// =============================================================================
// Rules
// =============================================================================

// Rule is a declarative formatting rule. Rules are never mutated in place:
// re-adding a rule with the same ID replaces it (keeping its position in
// export order).
//
// The zero value of Disabled means the rule is active, so literal Rule
// construction yields enabled rules by default.
type Rule struct {
	ID        string    `json:"id"`
	Condition Condition `json:"condition"`
	Style     Style     `json:"style,omitempty"`
	Priority  int       `json:"priority,omitempty"`
	Disabled  bool      `json:"disabled,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// storedRule pairs a rule with its condition resolved at add time.
type storedRule struct {
	Rule
	match matcher
}

// AddRule registers a formatting rule. An empty ID is assigned a fresh
// UUID; a zero CreatedAt is stamped with the current time. The returned ID
// identifies the rule for RemoveRule.
//
// Registration increments the RulesApplied metric. That counter has always
// tracked registrations rather than per-pass matches, and consumers read it
// that way, so the behavior is kept despite the name.
func (e *Engine) AddRule(r Rule) string {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	e.rules.set(r.ID, storedRule{Rule: r, match: r.Condition.compile()})
	e.metrics.RulesApplied++
	return r.ID
}

// RemoveRule deletes a rule by ID. Removing an unknown ID is a no-op.
func (e *Engine) RemoveRule(id string) {
	e.rules.delete(id)
}

// Rules returns all registered rules in insertion order.
func (e *Engine) Rules() []Rule {
	stored := e.rules.values()
	out := make([]Rule, len(stored))
	for i, s := range stored {
		out[i] = s.Rule
	}
	return out
}

// evaluateRules returns every enabled rule matching the value, ordered by
// priority descending with insertion order breaking ties. All matches are
// collected; evaluation does not stop at the first hit, since multiple
// rules may style the same item.
func (e *Engine) evaluateRules(value float64, item waterfall.Item, index int, dataset []waterfall.Item) []Rule {
	candidates := make([]storedRule, 0, e.rules.len())
	for _, r := range e.rules.values() {
		if !r.Disabled {
			candidates = append(candidates, r)
		}
	}
	// Stable sort: equal priorities keep store order.
	slices.SortStableFunc(candidates, func(a, b storedRule) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	var matched []Rule
	for _, r := range candidates {
		if r.match(value, item, index, dataset) {
			matched = append(matched, r.Rule)
		}
	}
	return matched
}
