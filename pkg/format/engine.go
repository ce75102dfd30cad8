package format

import (
	"time"

	"github.com/lmeyer/cascade/pkg/observability"
	"github.com/lmeyer/cascade/pkg/waterfall"
)

// =============================================================================
// Engine
// =============================================================================

// ValueFormatter converts an item's numeric value into a display value.
// It receives the extracted value, the item, and the item's index.
type ValueFormatter func(value float64, item waterfall.Item, index int) any

// Engine is the conditional formatting engine. Each chart instance owns
// exactly one Engine; the engine owns its rule store, threshold store,
// color-scale registry, and formatter selection. It holds no reference to
// the rendering layer beyond an optional attachment pointer to its host.
//
// Engines are not safe for concurrent mutation. Callers must serialize
// store changes against Apply.
type Engine struct {
	scales     *orderedMap[ColorScale]
	current    *ColorScale
	rules      *orderedMap[storedRule]
	thresholds *orderedMap[Threshold]
	formatter  ValueFormatter
	host       any
	metrics    Metrics
}

// NewEngine creates an engine with the built-in color scales registered
// and no current scale, rules, or thresholds.
func NewEngine() *Engine {
	e := &Engine{
		scales:     newOrderedMap[ColorScale](),
		rules:      newOrderedMap[storedRule](),
		thresholds: newOrderedMap[Threshold](),
	}
	for _, entry := range builtinScales() {
		e.scales.set(entry.Name, entry.Scale)
	}
	return e
}

// Attach records the host object the engine is installed on. The pointer
// is only used so a host can expose the engine's methods as its own; the
// engine never calls back into it.
func (e *Engine) Attach(host any) *Engine {
	e.host = host
	return e
}

// Host returns the attachment pointer, if any.
func (e *Engine) Host() any { return e.host }

// SetValueFormatter installs the custom value formatter. A nil formatter
// disables custom formatting.
func (e *Engine) SetValueFormatter(fn ValueFormatter) {
	e.formatter = fn
}

// ValueFormatterFunc returns the installed formatter, or nil.
func (e *Engine) ValueFormatterFunc() ValueFormatter {
	return e.formatter
}

// =============================================================================
// Formatting Pass
// =============================================================================

// FormattedItem is a data item annotated with everything the formatting
// pass computed for it.
type FormattedItem struct {
	waterfall.Item
	ComputedColor    string      `json:"computedColor,omitempty"`
	AppliedRules     []Rule      `json:"appliedRules,omitempty"`
	ThresholdStyles  []Threshold `json:"thresholdStyles,omitempty"`
	FormattedValue   any         `json:"formattedValue,omitempty"`
	ConditionalStyle Style       `json:"conditionalStyle"`
}

// Metrics records engine bookkeeping. RulesApplied counts rule
// registrations (see AddRule), ProcessingTime is the wall-clock duration
// of the last Apply pass, and LastUpdate is when that pass finished.
type Metrics struct {
	RulesApplied   int           `json:"rulesApplied"`
	ProcessingTime time.Duration `json:"processingTimeMs"`
	LastUpdate     time.Time     `json:"lastUpdate"`
}

// Metrics returns a copy of the engine's metrics.
func (e *Engine) Metrics() Metrics { return e.metrics }

// Apply runs the formatting pass over the dataset and returns one
// FormattedItem per input item, preserving order and length. For each item
// it extracts the value, computes a color when a current scale is set,
// collects matching rules and thresholds, applies the custom value
// formatter when one is installed, and merges the partial styles into the
// final ConditionalStyle.
//
// Apply is a pure function of the engine's configuration and the input,
// except for the wall-clock metrics it records and any side effects inside
// caller-supplied conditions or formatters. A pass always runs to
// completion over the whole dataset.
func (e *Engine) Apply(items []waterfall.Item) []FormattedItem {
	start := time.Now()
	observability.Formatter().OnApplyStart(len(items))

	values := waterfall.Values(items)
	scale, hasScale := e.CurrentScale()

	out := make([]FormattedItem, len(items))
	for i, item := range items {
		v := values[i]
		f := FormattedItem{Item: item}

		// Fixed merge order: computed color first, then rule styles in
		// priority-descending order, then threshold styles in insertion
		// order. Later parts win on key conflicts.
		parts := make([]Style, 0, 4)

		if hasScale {
			if pos, ok := Normalize(v, values, scale); ok {
				f.ComputedColor = Interpolate(pos, scale)
				parts = append(parts, Style{"color": f.ComputedColor})
			}
		}

		f.AppliedRules = e.evaluateRules(v, item, i, items)
		for _, r := range f.AppliedRules {
			parts = append(parts, r.Style)
		}

		f.ThresholdStyles = e.evaluateThresholds(v)
		for _, t := range f.ThresholdStyles {
			parts = append(parts, t.Style)
		}

		if e.formatter != nil {
			f.FormattedValue = e.formatter(v, item, i)
		}

		f.ConditionalStyle = MergeStyles(parts...)
		out[i] = f
	}

	e.metrics.ProcessingTime = time.Since(start)
	e.metrics.LastUpdate = time.Now()
	observability.Formatter().OnApplyComplete(len(items), e.metrics.ProcessingTime)
	return out
}

// ApplyAny is the dynamic-input form of Apply for boundaries where the
// payload shape is not known statically (the HTTP API, scripted configs).
// Inputs that are not a []waterfall.Item slice are returned unchanged.
func (e *Engine) ApplyAny(v any) any {
	items, ok := v.([]waterfall.Item)
	if !ok {
		return v
	}
	return e.Apply(items)
}
