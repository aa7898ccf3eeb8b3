// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/asselect/internal/fetcher"
	"github.com/sells-group/asselect/internal/model"
	"github.com/sells-group/asselect/internal/openair"
	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/store"
	"github.com/sells-group/asselect/internal/yaixm"
)

// maxSettingsBody caps the size of a POST /openair request body.
const maxSettingsBody = 1 << 20

// Options configures a Server.
type Options struct {
	// Source is the dataset location served by every request.
	Source         string
	DatasetTTL     time.Duration
	AllowedOrigins []string
	Opener         *fetcher.Opener
	// Store records runs and resolves ?profile= lookups. Optional.
	Store store.Store
}

// Server is the HTTP API.
type Server struct {
	source   string
	origins  []string
	store    store.Store
	datasets *datasetCache
	metrics  *Metrics
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.DatasetTTL <= 0 {
		opts.DatasetTTL = time.Hour
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	m := NewMetrics()
	return &Server{
		source:   opts.Source,
		origins:  opts.AllowedOrigins,
		store:    opts.Store,
		datasets: newDatasetCache(opts.Opener, m, opts.DatasetTTL),
		metrics:  m,
	}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/names/{kind}", s.handleNames)
	r.Post("/openair", s.handleOpenAir)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server: shutdown")
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	ds, err := s.datasets.Get(r.Context(), s.source)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}

	names, err := yaixm.Names(ds, chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleOpenAir(w http.ResponseWriter, r *http.Request) {
	st, profile, err := s.requestSettings(r)
	if err != nil {
		status := http.StatusBadRequest
		if eris.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, r, status, err)
		return
	}

	ds, err := s.datasets.Get(r.Context(), s.source)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}

	run := &model.Run{
		ID:        uuid.NewString(),
		Profile:   profile,
		Source:    s.source,
		AIRAC:     ds.Release.AIRACDate,
		Format:    string(st.Options.Format),
		CreatedAt: time.Now().UTC(),
	}

	start := time.Now()
	out, err := openair.Convert(ds, st)
	elapsed := time.Since(start)
	s.metrics.ConversionDuration.Observe(elapsed.Seconds())

	if err != nil {
		s.metrics.Conversions.WithLabelValues(run.Format, string(model.RunStatusFailed)).Inc()
		run.Fail(err, elapsed)
		s.recordRun(r.Context(), run)
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.metrics.Conversions.WithLabelValues(run.Format, string(model.RunStatusComplete)).Inc()
	run.Complete(out, elapsed)
	s.recordRun(r.Context(), run)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=openair.txt")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out.Text)
}

// requestSettings reads the settings for a conversion: a stored profile
// when ?profile= is given, otherwise a JSON body applied over the defaults.
// An empty body means the defaults.
func (s *Server) requestSettings(r *http.Request) (settings.Settings, string, error) {
	if name := r.URL.Query().Get("profile"); name != "" {
		if s.store == nil {
			return settings.Settings{}, "", eris.New("server: profiles are not available")
		}
		p, err := s.store.GetProfile(r.Context(), name)
		if err != nil {
			return settings.Settings{}, "", err
		}
		return p.Settings, p.Name, nil
	}

	st := settings.Default()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxSettingsBody))
	if err := dec.Decode(&st); err != nil && !errors.Is(err, io.EOF) {
		return settings.Settings{}, "", eris.Wrap(err, "server: decode settings")
	}
	if err := st.Validate(); err != nil {
		return settings.Settings{}, "", err
	}
	return st, "", nil
}

func (s *Server) recordRun(ctx context.Context, run *model.Run) {
	if s.store == nil {
		return
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		zap.L().Warn("server: record run failed", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	zap.L().Debug("request failed",
		zap.String("request_id", RequestID(r.Context())),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeJSON(w, status, map[string]string{"error": fmt.Sprint(err)})
}
