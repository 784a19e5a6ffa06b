package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/vntok/internal/config"
	"github.com/example/vntok/internal/tokenizer"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Tokenizer segments text into words and sentences.
type Tokenizer interface {
	Tokenize(text string) tokenizer.Result
	Stats() tokenizer.Stats
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes   int
	workers        int
	requestTimeout time.Duration
	cacheSize      int
	registry       *prometheus.Registry
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   65536,
		workers:        4,
		requestTimeout: 10 * time.Second,
		cacheSize:      1024,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /tokenize.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent tokenize calls.
// Zero or less disables throttling.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request tokenize deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithCacheSize sets the number of results kept in the LRU cache. Zero disables it.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithRegistry registers the handler's collectors on reg and serves reg on
// /metrics. By default each handler gets its own registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	tok     Tokenizer
	opts    options
	sem     chan struct{} // semaphore for worker pool
	cache   *resultCache
	metrics *Metrics
	log     *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /lexicon,
// POST /tokenize and /metrics.
func NewHandler(tok Tokenizer, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	if opts.registry == nil {
		opts.registry = prometheus.NewRegistry()
	}

	h := &handler{
		tok:     tok,
		opts:    opts,
		cache:   newResultCache(opts.cacheSize),
		metrics: MustNewMetrics(opts.registry),
		log:     opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/lexicon", h.handleLexicon)
	mux.HandleFunc("/tokenize", h.handleTokenize)
	mux.Handle("/metrics", promhttp.HandlerFor(opts.registry, promhttp.HandlerOpts{}))
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleLexicon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats := h.tok.Stats()
	if stats.Entities == nil {
		stats.Entities = []string{}
	}
	writeJSON(w, http.StatusOK, stats)
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

type tokenizeResponse struct {
	Words     []string `json:"words"`
	Sentences []string `json:"sentences"`
	Tokens    []string `json:"tokens"`
	Joined    string   `json:"joined"`
}

func newTokenizeResponse(res tokenizer.Result) tokenizeResponse {
	return tokenizeResponse{
		Words:     res.Words,
		Sentences: res.Sentences,
		Tokens:    res.Tokens,
		Joined:    res.Joined(),
	}
}

func (h *handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		h.metrics.ObserveRequest(strconv.Itoa(status), time.Since(start))
	}()

	fail := func(code int, msg string) {
		status = code
		writeError(w, code, msg)
	}

	if r.Method != http.MethodPost {
		fail(http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil || r.Body == http.NoBody {
		fail(http.StatusBadRequest, "request body is required")
		return
	}

	// JSON escapes can take up to six bytes per input byte.
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.opts.maxTextBytes)*6+1024)

	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(http.StatusRequestEntityTooLarge,
				fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
			return
		}
		fail(http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		fail(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	if res, ok := h.cache.get(req.Text); ok {
		h.metrics.IncCache(true)
		h.logResult(r.Context(), req.Text, res, true, start)
		writeJSON(w, http.StatusOK, newTokenizeResponse(res))
		return
	}
	if h.cache != nil {
		h.metrics.IncCache(false)
	}

	// The request timeout covers both the wait for a worker and the work.
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
		case <-ctx.Done():
			fail(http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
	}

	// Tokenize cannot be interrupted, so the goroutine keeps the worker slot
	// until it returns, even after the handler has answered 504.
	done := make(chan tokenizer.Result, 1)
	go func() {
		if h.sem != nil {
			defer func() { <-h.sem }()
		}
		done <- h.tok.Tokenize(req.Text)
	}()

	var res tokenizer.Result
	select {
	case res = <-done:
	case <-ctx.Done():
		h.log.WarnContext(r.Context(), "tokenize timed out",
			slog.Int("text_len", len(req.Text)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.String("error", ctx.Err().Error()),
		)
		fail(http.StatusGatewayTimeout, "tokenize timed out")
		return
	}

	if h.cache != nil {
		h.cache.add(req.Text, res)
		h.metrics.SetCacheEntries(h.cache.len())
	}
	h.logResult(r.Context(), req.Text, res, false, start)
	writeJSON(w, http.StatusOK, newTokenizeResponse(res))
}

func (h *handler) logResult(ctx context.Context, text string, res tokenizer.Result, cacheHit bool, start time.Time) {
	h.log.InfoContext(ctx, "tokenize complete",
		slog.Int("text_len", len(text)),
		slog.Int("words", len(res.Tokens)),
		slog.Int("sentences", len(res.Sentences)),
		slog.Bool("cache_hit", cacheHit),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server wires the handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	tok             Tokenizer
	shutdownTimeout time.Duration
}

func New(cfg config.Config, tok Tokenizer) *Server {
	return &Server{
		cfg:             cfg,
		tok:             tok,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) handlerOptions() []Option {
	return []Option{
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout) * time.Second),
		WithCacheSize(s.cfg.Server.CacheSize),
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s.tok == nil {
		return errors.New("server: tokenizer is required")
	}

	h := NewHandler(s.tok, s.handlerOptions()...)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	slog.Info("server listening", slog.String("addr", s.cfg.Server.ListenAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
