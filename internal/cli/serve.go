package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lmeyer/cascade/pkg/cache"
	"github.com/lmeyer/cascade/pkg/chartfile"
	"github.com/lmeyer/cascade/pkg/errors"
	"github.com/lmeyer/cascade/pkg/format"
	"github.com/lmeyer/cascade/pkg/observability"
	"github.com/lmeyer/cascade/pkg/waterfall"
)

// serveOptions holds the serve command configuration.
type serveOptions struct {
	addr     string
	chart    string
	redis    string
	cacheTTL time.Duration
	noCache  bool
}

// newServeCmd creates the serve command: a small HTTP API that runs
// formatting passes for callers. POST /v1/format formats a dataset,
// GET /v1/config returns the server engine's exported configuration, and
// GET /healthz reports liveness.
func newServeCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the formatting API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.chart, "chart", "", "chart file seeding the server's formatting config")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for shared response caching")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", 5*time.Minute, "response cache TTL")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable response caching")
	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	logger := loggerFromContext(ctx)

	engine := format.NewEngine()
	if opts.chart != "" {
		doc, err := chartfile.Load(opts.chart)
		if err != nil {
			return err
		}
		engine.ImportConfig(doc.Build().Engine().ExportConfig())
		logger.Info("seeded formatting config", "chart", opts.chart)
	}

	store, err := openCache(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := newAPIServer(engine, store, opts.cacheTTL, logger)

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// openCache selects the response cache backend from flags: redis when an
// address is given, otherwise in-process memory, or nothing at all.
func openCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		return cache.NewRedisCache(ctx, opts.redis)
	}
	return cache.NewMemoryCache(), nil
}

// =============================================================================
// API Server
// =============================================================================

// apiServer runs formatting passes over HTTP. The engine is shared across
// requests, so passes are serialized with a mutex. Responses for identical
// (config, dataset) pairs are served from the cache.
type apiServer struct {
	mu     sync.Mutex
	engine *format.Engine
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

func newAPIServer(engine *format.Engine, store cache.Cache, ttl time.Duration, logger *log.Logger) *apiServer {
	return &apiServer{
		engine: engine,
		cache:  store,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    ttl,
		logger: logger,
	}
}

func (s *apiServer) router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/format", s.handleFormat)
		r.Get("/config", s.handleConfig)
	})
	return r
}

// requestLogger tags each request with an ID, logs it, and feeds the HTTP
// observability hooks.
func (s *apiServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, duration)
		s.logger.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", duration)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *apiServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cfg := s.engine.ExportConfig()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, cfg)
}

// formatRequest is the POST /v1/format body. Config is an optional
// overlay applied on top of the server's base configuration for this
// request only.
type formatRequest struct {
	Items  []waterfall.Item `json:"items"`
	Config *format.Config   `json:"config,omitempty"`
}

// formatResponse is the POST /v1/format reply.
type formatResponse struct {
	Items []format.FormattedItem `json:"items"`
}

func (s *apiServer) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	s.mu.Lock()
	engine := s.engine
	if req.Config != nil {
		// Per-request overlay: clone the base engine so the shared
		// config is untouched.
		engine = format.NewEngine()
		engine.ImportConfig(s.engine.ExportConfig())
		engine.ImportConfig(*req.Config)
	}
	cfg := engine.ExportConfig()
	s.mu.Unlock()

	configHash, datasetHash, err := hashFormatInputs(cfg, req.Items)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "hashing request"))
		return
	}
	key := s.keyer.ResultKey(configHash, datasetHash)

	ctx := r.Context()
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache get failed", "error", err)
	} else if ok {
		observability.Cache().OnCacheHit(ctx, "result")
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	} else {
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	s.mu.Lock()
	formatted := engine.Apply(req.Items)
	s.mu.Unlock()

	body, err := json.Marshal(formatResponse{Items: formatted})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encoding response"))
		return
	}

	if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
		s.logger.Warn("cache set failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "result", len(body))
	}

	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// hashFormatInputs derives the response cache key parts: one hash over
// the effective engine config and one over the dataset.
func hashFormatInputs(cfg format.Config, items []waterfall.Item) (string, string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", "", err
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", "", err
	}
	return cache.Hash(cfgJSON), cache.Hash(itemsJSON), nil
}

// =============================================================================
// Response Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidConfig),
		errors.Is(err, errors.ErrCodeInvalidFormat):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound),
		errors.Is(err, errors.ErrCodeFileNotFound),
		errors.Is(err, errors.ErrCodeScaleNotFound),
		errors.Is(err, errors.ErrCodeRuleNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
