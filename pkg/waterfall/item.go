package waterfall

import "encoding/json"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Item kinds.
const (
	// KindDelta is a regular change bar, floating on the running total.
	KindDelta = "delta"

	// KindSubtotal drops to the baseline and shows the running total so far.
	KindSubtotal = "subtotal"

	// KindTotal drops to the baseline and shows the final total.
	KindTotal = "total"
)

// =============================================================================
// Item - Unified Data Item Type
// =============================================================================

// Item is a single waterfall chart entry.
//
// Value is a pointer so that "no direct value" is distinguishable from an
// explicit zero: items sourced from stacked datasets carry their numbers in
// Stacks instead. See Amount for the extraction rules.
type Item struct {
	Label  string         `json:"label,omitempty"`
	Value  *float64       `json:"value,omitempty"`
	Stacks []Stack        `json:"stacks,omitempty"`
	Kind   string         `json:"kind,omitempty"` // "delta", "subtotal", "total", or empty (delta)
	Meta   map[string]any `json:"meta,omitempty"`
}

// Stack is one segment of a stacked waterfall bar.
type Stack struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Amount returns the numeric value of the item: the direct value when set,
// otherwise the first stack entry, otherwise 0.
func (it Item) Amount() float64 {
	if it.Value != nil {
		return *it.Value
	}
	if len(it.Stacks) > 0 {
		return it.Stacks[0].Value
	}
	return 0
}

// IsTotal returns true for subtotal and total items.
func (it Item) IsTotal() bool {
	return it.Kind == KindSubtotal || it.Kind == KindTotal
}

// Number is a convenience constructor for a direct-valued item pointer field.
func Number(v float64) *float64 { return &v }

// =============================================================================
// Series - Running Totals
// =============================================================================

// Bar is an item with its resolved vertical extent in value space.
type Bar struct {
	Item
	Start float64 `json:"start"` // running total before the item
	End   float64 `json:"end"`   // running total after the item
}

// Series computes the running start/end positions for each item.
//
// Delta items float: Start is the running total before the item and End is
// Start plus the item amount. Subtotal and total items drop to the baseline:
// Start is 0 and End is the running total, which they do not advance.
// Output preserves input order and length.
func Series(items []Item) []Bar {
	bars := make([]Bar, len(items))
	running := 0.0
	for i, it := range items {
		if it.IsTotal() {
			bars[i] = Bar{Item: it, Start: 0, End: running}
			continue
		}
		v := it.Amount()
		bars[i] = Bar{Item: it, Start: running, End: running + v}
		running += v
	}
	return bars
}

// Values extracts the numeric value of every item, preserving order.
// This is the dataset the formatting engine normalizes against.
func Values(items []Item) []float64 {
	vals := make([]float64, len(items))
	for i, it := range items {
		vals[i] = it.Amount()
	}
	return vals
}

// MarshalItems serializes items to canonical JSON.
func MarshalItems(items []Item) ([]byte, error) {
	return json.Marshal(items)
}

// UnmarshalItems parses items from JSON.
func UnmarshalItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
