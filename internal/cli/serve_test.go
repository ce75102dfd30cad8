package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lmeyer/cascade/pkg/cache"
	"github.com/lmeyer/cascade/pkg/format"
	"github.com/lmeyer/cascade/pkg/waterfall"
)

func testAPIServer(t *testing.T) *apiServer {
	t.Helper()

	engine := format.NewEngine()
	engine.AddRule(format.Rule{
		ID:        "loss",
		Condition: format.Condition{Op: "<", Value: 0.0},
		Style:     format.Style{"fontWeight": "bold"},
	})

	logger := newLogger(io.Discard, log.ErrorLevel)
	return newAPIServer(engine, cache.NewMemoryCache(), time.Minute, logger)
}

func postFormat(t *testing.T, h http.Handler, body formatRequest) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/format", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := testAPIServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry an X-Request-ID header")
	}
}

func TestHandleFormat(t *testing.T) {
	srv := testAPIServer(t)
	router := srv.router()

	items := []waterfall.Item{
		{Label: "Opening", Value: waterfall.Number(100)},
		{Label: "Churn", Value: waterfall.Number(-25)},
	}
	rec := postFormat(t, router, formatRequest{Items: items})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp formatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(resp.Items))
	}
	if len(resp.Items[0].AppliedRules) != 0 {
		t.Errorf("positive item matched %d rules, want 0", len(resp.Items[0].AppliedRules))
	}
	if len(resp.Items[1].AppliedRules) != 1 {
		t.Errorf("negative item matched %d rules, want 1", len(resp.Items[1].AppliedRules))
	}
}

func TestHandleFormatCacheHit(t *testing.T) {
	srv := testAPIServer(t)
	router := srv.router()

	items := []waterfall.Item{{Label: "A", Value: waterfall.Number(10)}}

	first := postFormat(t, router, formatRequest{Items: items})
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}

	second := postFormat(t, router, formatRequest{Items: items})
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached response should match the original byte for byte")
	}
}

func TestHandleFormatConfigOverlay(t *testing.T) {
	srv := testAPIServer(t)
	router := srv.router()

	items := []waterfall.Item{{Label: "Spike", Value: waterfall.Number(500)}}
	overlay := &format.Config{
		Thresholds: []format.ThresholdEntry{
			{ID: "big", Threshold: format.Threshold{
				ID: "big", Value: 100, Style: format.Style{"color": "#2ecc71"},
			}},
		},
	}

	rec := postFormat(t, router, formatRequest{Items: items, Config: overlay})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp formatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Items[0].ThresholdStyles) != 1 {
		t.Fatalf("overlay threshold did not apply: %d matches", len(resp.Items[0].ThresholdStyles))
	}

	// The overlay must not leak into the shared config.
	if len(srv.engine.Thresholds()) != 0 {
		t.Error("per-request config overlay mutated the server engine")
	}
}

func TestHandleFormatInvalidBody(t *testing.T) {
	srv := testAPIServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/format", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Error.Code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", resp.Error.Code)
	}
}

func TestHandleConfig(t *testing.T) {
	srv := testAPIServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/config", nil)
	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var cfg format.Config
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decoding config: %v", err)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].ID != "loss" {
		t.Errorf("exported rules = %+v, want the single seeded rule", cfg.Rules)
	}
}
