package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/GuotongWu/CookNote/internal/analyzer"
	"github.com/GuotongWu/CookNote/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBPath:          filepath.Join(t.TempDir(), "cooknote.db"),
		ListenAddr:      "127.0.0.1:0",
		AnalyzeTimeout:  time.Second,
		UseMockAnalyzer: true,
		TokenTTL:        time.Hour,
		OrphanPolicy:    config.TolerateOrphans,
	}
}

func TestOpen_SQLitePersists(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := a.Analyzer.(*analyzer.Mock); !ok {
		t.Errorf("analyzer = %T, want mock", a.Analyzer)
	}
	if err := a.Journal.DeleteRecipe(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if got := len(reopened.Journal.Recipes(ctx)); got != 4 {
		t.Errorf("recipes after reopen = %d, want 4", got)
	}
}

func TestOpen_RealAnalyzer(t *testing.T) {
	cfg := testConfig(t)
	cfg.UseMockAnalyzer = false
	cfg.AnalyzeURL = "http://127.0.0.1:1/analyze"

	a, err := Open(cfg, InMemory())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if _, ok := a.Analyzer.(*analyzer.Client); !ok {
		t.Errorf("analyzer = %T, want *analyzer.Client", a.Analyzer)
	}
}

func TestHandler_Auth(t *testing.T) {
	cfg := testConfig(t)
	cfg.APISecret = "secret"

	a, err := Open(cfg, InMemory())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	h, err := a.Handler()
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/metrics status = %d, want 200", rec.Code)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	a, err := Open(testConfig(t), InMemory())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestStatus(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	a.Journal.Recipes(ctx)
	a.Journal.Members(ctx)

	statuses, ok, err := a.Status(ctx)
	if err != nil || !ok {
		t.Fatalf("Status() = %v, %v", ok, err)
	}
	if len(statuses) != 2 {
		t.Fatalf("statuses = %+v, want both collections", statuses)
	}
	for _, s := range statuses {
		if s.UpdatedAt.IsZero() {
			t.Errorf("%s has no write time", s.Key)
		}
	}

	mem, err := Open(cfg, InMemory())
	if err != nil {
		t.Fatal(err)
	}
	defer mem.Close()
	if _, ok, _ := mem.Status(ctx); ok {
		t.Error("memory store should not report write times")
	}
}
