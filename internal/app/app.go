// Package app wires configuration, storage and services into a running
// journal. Both binaries build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/GuotongWu/CookNote/internal/analyzer"
	"github.com/GuotongWu/CookNote/internal/auth"
	"github.com/GuotongWu/CookNote/internal/config"
	"github.com/GuotongWu/CookNote/internal/httpapi"
	"github.com/GuotongWu/CookNote/internal/journal"
	"github.com/GuotongWu/CookNote/internal/metrics"
	"github.com/GuotongWu/CookNote/internal/repository"
	"github.com/GuotongWu/CookNote/internal/storage"
	"github.com/GuotongWu/CookNote/internal/storage/memory"
	"github.com/GuotongWu/CookNote/internal/storage/sqlite"
)

// App is an opened journal with its collaborators.
type App struct {
	Config   *config.Config
	Journal  *journal.Service
	Analyzer analyzer.Analyzer
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	store   storage.KV
	recipes *repository.RecipeRepository
	members *repository.MemberRegistry
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	store storage.KV
	now   func() time.Time
}

// WithStore uses kv instead of opening the SQLite database at cfg.DBPath.
func WithStore(kv storage.KV) Option {
	return func(o *openOptions) { o.store = kv }
}

// WithClock sets the time source for repositories and the journal.
func WithClock(now func() time.Time) Option {
	return func(o *openOptions) { o.now = now }
}

// InMemory returns an option backing the journal with a fresh memory store.
func InMemory() Option {
	return WithStore(memory.New())
}

// Open builds an App from cfg.
func Open(cfg *config.Config, opts ...Option) (*App, error) {
	o := openOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	kv := o.store
	if kv == nil {
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		slog.Debug("Storage initialized", "database", cfg.DBPath)
		kv = store
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	recipes := repository.NewRecipeRepository(kv, repository.WithClock(o.now), repository.WithMetrics(m))
	members := repository.NewMemberRegistry(kv, repository.WithClock(o.now), repository.WithMetrics(m))

	var an analyzer.Analyzer
	if cfg.UseMockAnalyzer {
		an = &analyzer.Mock{}
	} else {
		an = analyzer.NewClient(cfg.AnalyzeURL,
			analyzer.WithTimeout(cfg.AnalyzeTimeout),
			analyzer.WithMetrics(m),
		)
	}

	return &App{
		Config: cfg,
		Journal: journal.New(recipes, members,
			journal.WithClock(o.now),
			journal.WithOrphanPolicy(cfg.OrphanPolicy),
		),
		Analyzer: an,
		Metrics:  m,
		Registry: reg,
		store:    kv,
		recipes:  recipes,
		members:  members,
	}, nil
}

// Close waits for background seed writes and closes the store.
func (a *App) Close() error {
	a.recipes.Wait()
	a.members.Wait()
	return a.store.Close()
}

// Handler returns the HTTP API handler, with bearer auth when an API secret
// is configured, wrapped for HTTP/2 without TLS.
func (a *App) Handler() (http.Handler, error) {
	opts := []httpapi.Option{httpapi.WithMetrics(a.Metrics, a.Registry)}
	if a.Config.AuthEnabled() {
		jm, err := auth.NewJWTManager(a.Config.APISecret, a.Config.TokenTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, httpapi.WithAuth(jm))
	}
	h := httpapi.New(a.Journal, a.Analyzer, opts...).Handler()
	return h2c.NewHandler(h, &http2.Server{}), nil
}

// Serve runs the HTTP API on cfg.ListenAddr until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	h, err := a.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              a.Config.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting",
			"address", a.Config.ListenAddr,
			"auth", a.Config.AuthEnabled(),
			"mock_analyzer", a.Config.UseMockAnalyzer,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// KeyStatus describes one stored collection.
type KeyStatus struct {
	Key       string    `json:"key" yaml:"key"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Status lists the stored collections and when each was last written.
// ok is false when the backend does not track write times.
func (a *App) Status(ctx context.Context) (statuses []KeyStatus, ok bool, err error) {
	a.recipes.Wait()
	a.members.Wait()

	insp, ok := a.store.(storage.Inspector)
	if !ok {
		return nil, false, nil
	}
	keys, err := insp.Keys(ctx)
	if err != nil {
		return nil, true, err
	}
	for _, k := range keys {
		at, err := insp.UpdatedAt(ctx, k)
		if err != nil {
			return nil, true, err
		}
		statuses = append(statuses, KeyStatus{Key: k, UpdatedAt: at})
	}
	return statuses, true, nil
}
