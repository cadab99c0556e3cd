package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/config"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                       config.EnvDev,
		HTTPAddr:                     ":0",
		StorageDriver:                config.StorageMemory,
		CacheEnabled:                 true,
		CacheTTL:                     time.Minute,
		CatalogTimeout:               time.Second,
		CatalogCircuitEnabled:        true,
		CatalogCircuitFailureCount:   3,
		CatalogCircuitOpenTimeout:    time.Second,
		CatalogCircuitHalfOpenMaxReq: 1,
		Rules:                        fantasy.DefaultRules(),
		FinalizationEnabled:          true,
		FinalizationInterval:         time.Hour,
		FinalizationGrace:            time.Hour,
		FinalizationMaxWorkers:       2,
		FinalizationLeagueTimeout:    time.Minute,
		InternalJobToken:             "token",
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	application, err := New(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if application.Scheduler == nil {
		t.Fatalf("expected scheduler when finalization is enabled")
	}

	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from leagues, got %d: %s", rec.Code, rec.Body.String())
	}

	application.Start(t.Context())
	if err := application.Shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNew_FinalizationDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.FinalizationEnabled = false
	cfg.CacheEnabled = false

	application, err := New(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if application.Scheduler != nil {
		t.Fatalf("expected no scheduler when finalization is disabled")
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/finalization-sweep", nil)
	req.Header.Set("X-Internal-Job-Token", "token")
	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without scheduler, got %d", rec.Code)
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
