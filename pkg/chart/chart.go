// Package chart provides the waterfall chart host object.
//
// A Chart owns a dataset and exactly one formatting engine. On creation it
// attaches the engine to itself and exposes the engine's capability hooks
// as fluent chart methods, so callers configure formatting without
// touching the engine directly:
//
//	c := chart.New("Q3 revenue bridge").
//		SetItems(items).
//		SetColorScale(format.ScaleProfitLoss).
//		AddRule(format.Rule{ID: "loss", Condition: format.Condition{Op: "<", Value: 0},
//			Style: format.Style{"fontWeight": "bold"}}).
//		AddThreshold(format.Threshold{ID: "big", Value: 1e6, Style: format.Style{"color": "#2ecc71"}})
//	formatted := c.Format()
package chart

import (
	"github.com/lmeyer/cascade/pkg/format"
	"github.com/lmeyer/cascade/pkg/waterfall"
)

// Chart is a waterfall chart definition: titled item data plus one
// attached formatting engine. The chart is the engine's single owner;
// concurrent configuration from multiple goroutines is the caller's
// problem to serialize, as with the engine itself.
type Chart struct {
	Title string
	Items []waterfall.Item

	engine *format.Engine
}

// New creates a chart with a fresh engine attached.
func New(title string) *Chart {
	c := &Chart{Title: title}
	c.engine = format.NewEngine()
	c.engine.Attach(c)
	return c
}

// Engine exposes the attached formatting engine for direct access.
func (c *Chart) Engine() *format.Engine { return c.engine }

// SetItems replaces the chart's dataset.
func (c *Chart) SetItems(items []waterfall.Item) *Chart {
	c.Items = items
	return c
}

// AddItem appends an item to the dataset.
func (c *Chart) AddItem(item waterfall.Item) *Chart {
	c.Items = append(c.Items, item)
	return c
}

// =============================================================================
// Engine Capability Hooks
// =============================================================================

// ColorScale returns the engine's current scale, if one is set.
func (c *Chart) ColorScale() (format.ColorScale, bool) {
	return c.engine.CurrentScale()
}

// SetColorScale selects the current scale by preset name (string) or by a
// ColorScale value supplied directly.
func (c *Chart) SetColorScale(nameOrScale any) *Chart {
	c.engine.SetColorScale(nameOrScale)
	return c
}

// AddRule registers a formatting rule on the attached engine.
func (c *Chart) AddRule(r format.Rule) *Chart {
	c.engine.AddRule(r)
	return c
}

// RemoveRule removes a rule by ID from the attached engine.
func (c *Chart) RemoveRule(id string) *Chart {
	c.engine.RemoveRule(id)
	return c
}

// AddThreshold registers a threshold on the attached engine.
func (c *Chart) AddThreshold(t format.Threshold) *Chart {
	c.engine.AddThreshold(t)
	return c
}

// FormatValue installs the custom value formatter.
func (c *Chart) FormatValue(fn format.ValueFormatter) *Chart {
	c.engine.SetValueFormatter(fn)
	return c
}

// ValueFormatter returns the installed custom value formatter, or nil.
func (c *Chart) ValueFormatter() format.ValueFormatter {
	return c.engine.ValueFormatterFunc()
}

// =============================================================================
// Formatting
// =============================================================================

// Format runs the formatting pass over the chart's items.
func (c *Chart) Format() []format.FormattedItem {
	return c.engine.Apply(c.Items)
}

// Series computes the running start/end positions for the chart's items.
func (c *Chart) Series() []waterfall.Bar {
	return waterfall.Series(c.Items)
}
