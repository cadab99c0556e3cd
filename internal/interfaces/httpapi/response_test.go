package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(t.Context(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body["apiVersion"] != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
		wantReason string
		hidden     bool
	}{
		{"invalid input", fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), 400, "INVALID_ARGUMENT", "invalidInput", false},
		{"roster violation", &fantasy.Violation{Reason: fantasy.ReasonDuplicatePlayer, PlayerID: "p1"}, 400, "INVALID_ARGUMENT", string(fantasy.ReasonDuplicatePlayer), false},
		{"unknown boost", fmt.Errorf("apply: %w", boost.ErrUnknownKind), 400, "INVALID_ARGUMENT", "invalidInput", false},
		{"not found", fmt.Errorf("%w: squad", usecase.ErrNotFound), 404, "NOT_FOUND", "notFound", false},
		{"unauthorized", usecase.ErrUnauthorized, 401, "UNAUTHENTICATED", "unauthorized", false},
		{"forbidden", usecase.ErrForbidden, 403, "PERMISSION_DENIED", "forbidden", false},
		{"conflict", fmt.Errorf("%w: tour locked", usecase.ErrConflict), 409, "ABORTED", "conflict", false},
		{"unavailable", usecase.ErrDependencyUnavailable, 503, "UNAVAILABLE", "dependencyUnavailable", false},
		{"invariant", fmt.Errorf("%w: snapshot exists", usecase.ErrInvariantViolation), 500, "INTERNAL", "invariantViolation", true},
		{"unknown", errors.New("pq: connection reset"), 500, "INTERNAL", "internalError", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(t.Context(), rec, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}

			var body envelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.Error == nil || len(body.Error.Errors) != 1 {
				t.Fatalf("expected one error item, got %+v", body.Error)
			}
			if body.Error.Status != tc.wantStatus || body.Error.Errors[0].Reason != tc.wantReason {
				t.Fatalf("unexpected error body %+v", body.Error)
			}
			if hiddenMessage := body.Error.Message == internalMessage; hiddenMessage != tc.hidden {
				t.Fatalf("unexpected message exposure: %q", body.Error.Message)
			}
		})
	}
}
