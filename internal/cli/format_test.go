package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lmeyer/cascade/pkg/format"
)

const testChartTOML = `
title = "Bridge"
scale = "profit-loss"

[[items]]
label = "Opening"
value = 100.0

[[items]]
label = "Churn"
value = -25.0

[[items]]
label = "Closing"
kind = "total"

[[rules]]
id = "loss"
op = "<"
value = 0.0
priority = 5
[rules.style]
fontWeight = "bold"

[[thresholds]]
id = "material"
value = 50.0
[thresholds.style]
textDecoration = "underline"
`

func writeTestChart(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.toml")
	if err := os.WriteFile(path, []byte(testChartTOML), 0o644); err != nil {
		t.Fatalf("writing chart file: %v", err)
	}
	return path
}

func testContext() context.Context {
	return withLogger(context.Background(), newLogger(io.Discard, log.ErrorLevel))
}

func TestRunFormat(t *testing.T) {
	chartPath := writeTestChart(t)
	outPath := filepath.Join(t.TempDir(), "out.json")

	err := runFormat(testContext(), chartPath, &formatOpts{output: outPath, series: true})
	if err != nil {
		t.Fatalf("runFormat() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var out struct {
		Title  string                 `json:"title"`
		Items  []format.FormattedItem `json:"items"`
		Series []json.RawMessage      `json:"series"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if out.Title != "Bridge" {
		t.Errorf("title = %q, want %q", out.Title, "Bridge")
	}
	if len(out.Items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(out.Items))
	}
	if len(out.Series) != 3 {
		t.Errorf("len(series) = %d, want 3", len(out.Series))
	}

	churn := out.Items[1]
	if len(churn.AppliedRules) != 1 || churn.AppliedRules[0].ID != "loss" {
		t.Errorf("churn applied rules = %+v, want the loss rule", churn.AppliedRules)
	}
	if churn.ComputedColor == "" {
		t.Error("churn should have a computed color from the profit-loss scale")
	}
	if got := churn.ConditionalStyle["fontWeight"]; got != "bold" {
		t.Errorf("churn fontWeight = %v, want bold", got)
	}

	opening := out.Items[0]
	if len(opening.ThresholdStyles) != 1 {
		t.Errorf("opening threshold matches = %d, want 1", len(opening.ThresholdStyles))
	}
}

func TestRunFormatMissingFile(t *testing.T) {
	err := runFormat(testContext(), filepath.Join(t.TempDir(), "nope.toml"), &formatOpts{})
	if err == nil {
		t.Fatal("runFormat() on a missing file should error")
	}
}
