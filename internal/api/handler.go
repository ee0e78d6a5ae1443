package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/crmrelay/internal/config"
	"github.com/gyaneshwarpardhi/crmrelay/internal/metrics"
	"github.com/gyaneshwarpardhi/crmrelay/internal/render"
	"github.com/gyaneshwarpardhi/crmrelay/internal/slack"
)

// Poster delivers a rendered message to a webhook URL.
type Poster interface {
	Post(ctx context.Context, url string, msg slack.Message) error
}

// state is swapped as a unit on config reload.
type state struct {
	cfg       *config.Resolved
	renderers *render.Registry
}

// Handler holds all HTTP handler dependencies.
type Handler struct {
	state  atomic.Pointer[state]
	poster Poster
	loader *config.Loader
	getenv config.Getenv
	logger *slog.Logger
	now    func() time.Time
	mux    *http.ServeMux
	root   http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for diagnostics and request logs.
func WithLogger(l *slog.Logger) Option { return func(h *Handler) { h.logger = l } }

// WithClock overrides the wall clock used for message footers.
func WithClock(now func() time.Time) Option { return func(h *Handler) { h.now = now } }

// WithEnv overrides environment lookups for webhook URLs.
func WithEnv(getenv config.Getenv) Option { return func(h *Handler) { h.getenv = getenv } }

// WithLoader enables POST /v1/config/reload and applies every config the loader reports.
func WithLoader(l *config.Loader) Option { return func(h *Handler) { h.loader = l } }

// New creates an HTTP handler serving cfg and registers all routes.
func New(cfg *config.RelayConfig, poster Poster, opts ...Option) (*Handler, error) {
	h := &Handler{
		poster: poster,
		logger: slog.Default(),
		now:    time.Now,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.Apply(cfg); err != nil {
		return nil, err
	}
	if h.loader != nil {
		h.loader.OnChange(func(c *config.RelayConfig) {
			if err := h.Apply(c); err != nil {
				metrics.ConfigReloads.WithLabelValues("rejected").Inc()
				h.logger.Warn("hot-reload skipped: config invalid", "err", err)
				return
			}
			metrics.ConfigReloads.WithLabelValues("applied").Inc()
			h.logger.Info("config hot-reloaded", "routes", len(c.Routes))
		})
	}

	h.mux.HandleFunc("/", h.relay)
	h.mux.HandleFunc("GET /v1/routes", h.listRoutes)
	h.mux.HandleFunc("POST /v1/config/reload", h.reloadConfig)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	h.root = loggingMiddleware(h.logger, h.mux)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

// Apply validates cfg, resolves its webhook URLs and swaps it in atomically.
func (h *Handler) Apply(cfg *config.RelayConfig) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	res, err := config.Resolve(cfg, h.getenv)
	if err != nil {
		return err
	}
	for _, rt := range res.Routes {
		if !rt.Configured() {
			h.logger.Warn("route has no webhook destination", "route", rt.ID, "env", rt.WebhookEnv)
		}
	}
	h.state.Store(&state{cfg: res, renderers: render.Default(res.Location, res.ZoneLabel)})
	metrics.RoutesConfigured.Set(float64(len(res.Routes) - len(res.Unconfigured())))
	return nil
}

type routeView struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	Configured  bool   `json:"configured"`
	URLSource   string `json:"url_source,omitempty"`
	Destination string `json:"destination,omitempty"` // host only; webhook paths are secrets
}

// GET /v1/routes — list resolved relay routes.
func (h *Handler) listRoutes(w http.ResponseWriter, r *http.Request) {
	cfg := h.state.Load().cfg
	views := make([]routeView, 0, len(cfg.Routes))
	for _, rt := range cfg.Routes {
		v := routeView{ID: rt.ID, Path: rt.Path, Kind: rt.Kind, Configured: rt.Configured(), URLSource: rt.URLSource}
		if u, err := url.Parse(rt.URL); err == nil {
			v.Destination = u.Host
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": cfg.Version,
		"routes":  views,
	})
}

// POST /v1/config/reload — re-read the config file.
func (h *Handler) reloadConfig(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, http.StatusServiceUnavailable, "config reload unavailable: no config file")
		return
	}
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The loader callback has already applied a valid config.
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":     true,
		"routes_count": len(cfg.Routes),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 if any route lacks a webhook destination.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	missing := h.state.Load().cfg.Unconfigured()
	if len(missing) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":       "unconfigured",
			"unconfigured": missing,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
