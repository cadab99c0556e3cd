package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	const origin = "https://fantasy-tour.example.com"

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
		wantVary   bool
	}{
		{name: "configured origin", allowed: []string{origin}, method: http.MethodGet, origin: origin, wantStatus: http.StatusOK, wantAllow: origin, wantVary: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: origin, wantStatus: http.StatusNoContent, wantAllow: "*"},
		{name: "unknown origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: origin, wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/v1/squads", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tc.allowed, okHandler).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantAllow {
				t.Fatalf("unexpected Access-Control-Allow-Origin %q", got)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tc.wantVary {
				t.Fatalf("unexpected Vary header %q", rec.Header().Get("Vary"))
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for path, want := range map[string]bool{
		"/healthz":    false,
		" /READYZ ":   false,
		"/livez":      false,
		"/v1/leagues": true,
		"/":           true,
	} {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "not configured", configured: "", provided: "anything", wantStatus: http.StatusServiceUnavailable},
		{name: "missing", configured: "secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong", configured: "secret", provided: "guess", wantStatus: http.StatusUnauthorized},
		{name: "match", configured: "secret", provided: " secret ", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/finalization-sweep", nil)
			if tc.provided != "" {
				req.Header.Set(jobTokenHeader, tc.provided)
			}
			rec := httptest.NewRecorder()

			RequireInternalJobToken(tc.configured, okHandler).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		want   zapcore.Level
	}{
		{status: http.StatusOK, want: zapcore.InfoLevel},
		{status: http.StatusConflict, want: zapcore.WarnLevel},
		{status: http.StatusServiceUnavailable, want: zapcore.ErrorLevel},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logger := logging.FromZap(zap.New(core))
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("body"))
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
			req.Header.Set(userIDHeader, "user-1")
			RequestLogging(logger, next).ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("expected one entry, got %d", len(entries))
			}
			if entries[0].Level != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, entries[0].Level)
			}
			fields := entries[0].ContextMap()
			if fields["status"] != int64(tc.status) || fields["bytes"] != int64(4) || fields["user_id"] != "user-1" {
				t.Fatalf("unexpected fields: %v", fields)
			}
		})
	}
}
