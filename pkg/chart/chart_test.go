package chart

import (
	"testing"

	"github.com/lmeyer/cascade/pkg/format"
	"github.com/lmeyer/cascade/pkg/waterfall"
)

func TestNewAttachesEngine(t *testing.T) {
	c := New("revenue bridge")
	if c.Engine() == nil {
		t.Fatal("New should create an engine")
	}
	if c.Engine().Host() != c {
		t.Error("engine should be attached to the chart")
	}
}

func TestFluentConfiguration(t *testing.T) {
	items := []waterfall.Item{
		{Label: "open", Value: waterfall.Number(100)},
		{Label: "down", Value: waterfall.Number(-40)},
	}

	c := New("bridge").
		SetItems(items).
		SetColorScale(format.ScaleProfitLoss).
		AddRule(format.Rule{
			ID:        "loss",
			Condition: format.Condition{Op: "<", Value: 0},
			Style:     format.Style{"fontWeight": "bold"},
		}).
		AddThreshold(format.Threshold{
			ID:    "material",
			Value: 50,
			Style: format.Style{"color": "#2ecc71"},
		})

	out := c.Format()
	if len(out) != 2 {
		t.Fatalf("Format returned %d items, want 2", len(out))
	}

	// The loss item matches the rule; the opening item matches the threshold.
	if out[1].ConditionalStyle["fontWeight"] != "bold" {
		t.Error("loss item should carry the rule style")
	}
	if out[0].ConditionalStyle["color"] != "#2ecc71" {
		t.Error("opening item should carry the threshold style")
	}
}

func TestColorScaleGetterSetter(t *testing.T) {
	c := New("t")
	if _, ok := c.ColorScale(); ok {
		t.Error("fresh chart should have no current scale")
	}

	c.SetColorScale(format.ScaleBlues)
	scale, ok := c.ColorScale()
	if !ok {
		t.Fatal("scale should be set")
	}
	if scale.Family != format.ScaleSequential {
		t.Errorf("scale family = %q, want sequential", scale.Family)
	}

	custom := format.ColorScale{Family: format.ScaleDiverging, Domain: []float64{-1, 1}, Range: []string{"#000000", "#ffffff"}}
	c.SetColorScale(custom)
	scale, _ = c.ColorScale()
	if scale.Family != format.ScaleDiverging {
		t.Error("SetColorScale should accept a scale value directly")
	}
}

func TestRemoveRule(t *testing.T) {
	c := New("t")
	c.AddRule(format.Rule{ID: "r", Condition: format.Condition{Op: ">", Value: 0}})
	c.RemoveRule("r")
	if len(c.Engine().Rules()) != 0 {
		t.Error("RemoveRule should delegate to the engine")
	}
}

func TestFormatValueHook(t *testing.T) {
	c := New("t")
	if c.ValueFormatter() != nil {
		t.Error("fresh chart should have no formatter")
	}
	c.FormatValue(func(v float64, _ waterfall.Item, _ int) any { return int(v) })
	if c.ValueFormatter() == nil {
		t.Fatal("FormatValue should install the formatter")
	}

	c.AddItem(waterfall.Item{Value: waterfall.Number(3.7)})
	out := c.Format()
	if out[0].FormattedValue != 3 {
		t.Errorf("FormattedValue = %v, want 3", out[0].FormattedValue)
	}
}

func TestSeries(t *testing.T) {
	c := New("t").
		AddItem(waterfall.Item{Value: waterfall.Number(10)}).
		AddItem(waterfall.Item{Kind: waterfall.KindTotal})

	bars := c.Series()
	if len(bars) != 2 {
		t.Fatalf("Series returned %d bars", len(bars))
	}
	if bars[1].End != 10 {
		t.Errorf("total bar end = %v, want 10", bars[1].End)
	}
}
