package format

import "testing"

func TestThresholdsEvaluateInInsertionOrder(t *testing.T) {
	e := NewEngine()
	// Priorities are deliberately out of order: thresholds must NOT be
	// priority-sorted, unlike rules.
	e.AddThreshold(Threshold{ID: "low", Value: 0, Priority: 1})
	e.AddThreshold(Threshold{ID: "high", Value: 10, Priority: 100})

	matched := e.evaluateThresholds(50)
	if len(matched) != 2 {
		t.Fatalf("matched %d thresholds, want 2", len(matched))
	}
	if matched[0].ID != "low" || matched[1].ID != "high" {
		t.Errorf("order = [%s, %s], want insertion order [low, high]", matched[0].ID, matched[1].ID)
	}
}

func TestThresholdDefaultOperator(t *testing.T) {
	e := NewEngine()
	e.AddThreshold(Threshold{ID: "t", Value: 10})

	if len(e.evaluateThresholds(10)) != 1 {
		t.Error("empty operator should default to >= (10 >= 10)")
	}
	if len(e.evaluateThresholds(9)) != 0 {
		t.Error("9 >= 10 should not match")
	}
}

func TestThresholdUnknownOperatorDefaults(t *testing.T) {
	// Unknown operators fall back to >= rather than failing - the
	// opposite policy from rule conditions.
	e := NewEngine()
	e.AddThreshold(Threshold{ID: "t", Value: 10, Op: "between"})

	if len(e.evaluateThresholds(15)) != 1 {
		t.Error("unknown operator should behave as >=")
	}
}

func TestThresholdOperators(t *testing.T) {
	cases := []struct {
		op    string
		value float64
		limit float64
		want  bool
	}{
		{">", 11, 10, true},
		{">", 10, 10, false},
		{">=", 10, 10, true},
		{"<", 9, 10, true},
		{"<=", 10, 10, true},
		{"==", 10, 10, true},
		{"===", 10, 10, true},
		{"==", 10, 11, false},
	}
	for _, tc := range cases {
		if got := compareThreshold(tc.op, tc.value, tc.limit); got != tc.want {
			t.Errorf("compareThreshold(%q, %v, %v) = %v, want %v", tc.op, tc.value, tc.limit, got, tc.want)
		}
	}
}

func TestAddThresholdAssignsID(t *testing.T) {
	e := NewEngine()
	id := e.AddThreshold(Threshold{Value: 5})
	if id == "" {
		t.Fatal("AddThreshold should assign an ID")
	}
	if len(e.Thresholds()) != 1 {
		t.Fatal("threshold not stored")
	}
}

func TestRemoveThreshold(t *testing.T) {
	e := NewEngine()
	e.AddThreshold(Threshold{ID: "t", Value: 5})
	e.RemoveThreshold("t")
	if len(e.Thresholds()) != 0 {
		t.Error("RemoveThreshold should delete the threshold")
	}
}
