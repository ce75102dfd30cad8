// Package chartfile loads waterfall chart definitions from TOML files.
//
// A chart file declares the dataset and the formatting configuration in
// one document:
//
//	title = "Q3 Revenue Bridge"
//	scale = "profit-loss"
//
//	[[items]]
//	label = "Opening"
//	value = 120.0
//
//	[[items]]
//	label = "EMEA"
//	value = -18.5
//
//	[[items]]
//	label = "Closing"
//	kind = "total"
//
//	[[rules]]
//	id = "loss"
//	op = "<"
//	value = 0.0
//	priority = 5
//	[rules.style]
//	fontWeight = "bold"
//
//	[[thresholds]]
//	id = "material"
//	value = 50.0
//	[thresholds.style]
//	color = "#2ecc71"
//
//	[scales.company]
//	family = "diverging"
//	domain = [-1.0, 0.0, 1.0]
//	range = ["#b03a2e", "#f7dc6f", "#1e8449"]
//
// Custom condition callbacks and value formatters cannot be expressed in
// files; those are wired programmatically against the chart host.
package chartfile

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/lmeyer/cascade/pkg/chart"
	"github.com/lmeyer/cascade/pkg/errors"
	"github.com/lmeyer/cascade/pkg/format"
	"github.com/lmeyer/cascade/pkg/waterfall"
)

// Document is the decoded shape of a chart file.
type Document struct {
	Title      string                       `toml:"title"`
	Scale      string                       `toml:"scale"`
	Items      []Item                       `toml:"items"`
	Rules      []Rule                       `toml:"rules"`
	Thresholds []Threshold                  `toml:"thresholds"`
	Scales     map[string]format.ColorScale `toml:"scales"`
}

// Item is one dataset entry. Value is optional so stacked items can omit
// it, matching the engine's extraction rules.
type Item struct {
	Label  string   `toml:"label"`
	Value  *float64 `toml:"value"`
	Stacks []Stack  `toml:"stacks"`
	Kind   string   `toml:"kind"`
}

// Stack is one segment of a stacked bar.
type Stack struct {
	Label string  `toml:"label"`
	Value float64 `toml:"value"`
	Color string  `toml:"color"`
}

// Rule declares a literal-condition formatting rule.
type Rule struct {
	ID       string         `toml:"id"`
	Op       string         `toml:"op"`
	Value    float64        `toml:"value"`
	Priority int            `toml:"priority"`
	Disabled bool           `toml:"disabled"`
	Style    map[string]any `toml:"style"`
}

// Threshold declares a single-condition style trigger.
type Threshold struct {
	ID       string         `toml:"id"`
	Op       string         `toml:"op"`
	Value    float64        `toml:"value"`
	Priority int            `toml:"priority"`
	Style    map[string]any `toml:"style"`
}

// Load reads and decodes a chart file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChartFile, err, "reading chart file %s", path)
	}
	return Parse(data)
}

// Parse decodes a chart file from raw TOML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChartFile, err, "decoding chart file")
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// validate rejects documents the engine could not make sense of. The
// checks are deliberately light: the engine degrades gracefully on odd
// numeric data, so only structural problems are errors here.
func (d *Document) validate() error {
	for i, r := range d.Rules {
		if r.ID == "" {
			return errors.New(errors.ErrCodeInvalidRule, "rules[%d] is missing an id", i)
		}
	}
	for i, t := range d.Thresholds {
		if t.ID == "" {
			return errors.New(errors.ErrCodeInvalidRule, "thresholds[%d] is missing an id", i)
		}
	}
	if d.Scale != "" {
		if _, builtin := builtinScaleNames[d.Scale]; !builtin {
			if _, ok := d.Scales[d.Scale]; !ok {
				return errors.New(errors.ErrCodeScaleNotFound, "no scale named %q", d.Scale)
			}
		}
	}
	return nil
}

// stacks converts document stack entries to the waterfall representation.
func stacks(in []Stack) []waterfall.Stack {
	if len(in) == 0 {
		return nil
	}
	out := make([]waterfall.Stack, len(in))
	for i, s := range in {
		out[i] = waterfall.Stack(s)
	}
	return out
}

var builtinScaleNames = map[string]struct{}{
	format.ScaleProfitLoss:  {},
	format.ScaleBlues:       {},
	format.ScalePerformance: {},
	format.ScaleHeat:        {},
}

// Build constructs a chart host from the document: items become the
// dataset, declared scales are registered (sorted by name for determinism,
// since TOML tables are unordered), rules and thresholds are added in
// declaration order, and the named scale is selected.
func (d *Document) Build() *chart.Chart {
	c := chart.New(d.Title)

	items := make([]waterfall.Item, len(d.Items))
	for i, it := range d.Items {
		items[i] = waterfall.Item{
			Label:  it.Label,
			Value:  it.Value,
			Kind:   it.Kind,
			Stacks: stacks(it.Stacks),
		}
	}
	c.SetItems(items)

	names := make([]string, 0, len(d.Scales))
	for name := range d.Scales {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.Engine().RegisterScale(name, d.Scales[name])
	}

	for _, r := range d.Rules {
		c.AddRule(format.Rule{
			ID:        r.ID,
			Condition: format.Condition{Op: r.Op, Value: r.Value},
			Style:     format.Style(r.Style),
			Priority:  r.Priority,
			Disabled:  r.Disabled,
		})
	}
	for _, t := range d.Thresholds {
		c.AddThreshold(format.Threshold{
			ID:       t.ID,
			Op:       t.Op,
			Value:    t.Value,
			Style:    format.Style(t.Style),
			Priority: t.Priority,
		})
	}

	if d.Scale != "" {
		c.SetColorScale(d.Scale)
	}
	return c
}
