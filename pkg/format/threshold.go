package format

import "github.com/google/uuid"

// Threshold is a single-condition style trigger: a comparison of the item
// value against a fixed number. Thresholds sit outside the rule-priority
// mechanism entirely — they evaluate in insertion order and their Priority
// field is informational only.
type Threshold struct {
	ID       string  `json:"id"`
	Value    float64 `json:"value"`
	Op       string  `json:"op,omitempty"` // defaults to ">="
	Style    Style   `json:"style,omitempty"`
	Priority int     `json:"priority,omitempty"`
}

// AddThreshold registers a threshold. An empty ID is assigned a fresh UUID.
// Re-adding an existing ID replaces the threshold in place.
func (e *Engine) AddThreshold(t Threshold) string {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	e.thresholds.set(t.ID, t)
	return t.ID
}

// RemoveThreshold deletes a threshold by ID. Unknown IDs are a no-op.
func (e *Engine) RemoveThreshold(id string) {
	e.thresholds.delete(id)
}

// Thresholds returns all registered thresholds in insertion order.
func (e *Engine) Thresholds() []Threshold {
	return e.thresholds.values()
}

// evaluateThresholds returns every threshold matching the value, in
// insertion order.
func (e *Engine) evaluateThresholds(value float64) []Threshold {
	var matched []Threshold
	for _, t := range e.thresholds.values() {
		if compareThreshold(t.Op, value, t.Value) {
			matched = append(matched, t)
		}
	}
	return matched
}

// compareThreshold applies a threshold operator. Unlike rule conditions,
// an unknown operator falls back to ">=" instead of a non-match. The two
// stores have always diverged here and configs in the wild depend on it.
func compareThreshold(op string, value, limit float64) bool {
	switch op {
	case ">":
		return value > limit
	case "<":
		return value < limit
	case "<=":
		return value <= limit
	case "==", "===":
		return value == limit
	case ">=":
		return value >= limit
	default:
		return value >= limit
	}
}
