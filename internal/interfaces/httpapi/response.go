package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

// Responses follow the Google JSON style guide: {"apiVersion", "data"} on
// success and {"apiVersion", "error"} on failure.
const (
	apiVersion      = "2.0"
	errorDomain     = "fantasy-tour"
	internalMessage = "internal server error"
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass is how one family of errors is rendered. Hidden classes never
// echo the error text to the client.
type errorClass struct {
	httpStatus int
	status     string
	reason     string
	hidden     bool
}

var (
	classInvalid     = errorClass{http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput", false}
	classNotFound    = errorClass{http.StatusNotFound, "NOT_FOUND", "notFound", false}
	classUnauth      = errorClass{http.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized", false}
	classForbidden   = errorClass{http.StatusForbidden, "PERMISSION_DENIED", "forbidden", false}
	classConflict    = errorClass{http.StatusConflict, "ABORTED", "conflict", false}
	classUnavailable = errorClass{http.StatusServiceUnavailable, "UNAVAILABLE", "dependencyUnavailable", false}
	classInvariant   = errorClass{http.StatusInternalServerError, "INTERNAL", "invariantViolation", true}
	classInternal    = errorClass{http.StatusInternalServerError, "INTERNAL", "internalError", true}
)

// errorClasses is checked in order; the first match wins.
var errorClasses = []struct {
	target error
	class  errorClass
}{
	{usecase.ErrInvalidInput, classInvalid},
	{boost.ErrUnknownKind, classInvalid},
	{fantasy.ErrCaptainIsVice, classInvalid},
	{fantasy.ErrCaptainNotInSquad, classInvalid},
	{fantasy.ErrViceNotInSquad, classInvalid},
	{usecase.ErrNotFound, classNotFound},
	{usecase.ErrUnauthorized, classUnauth},
	{usecase.ErrForbidden, classForbidden},
	{usecase.ErrConflict, classConflict},
	{usecase.ErrDependencyUnavailable, classUnavailable},
	{usecase.ErrInvariantViolation, classInvariant},
}

// classify picks the rendering for err. Roster violations report their
// reason code so clients can show a precise message.
func classify(err error) errorClass {
	if reason, ok := fantasy.ReasonOf(err); ok {
		c := classInvalid
		c.reason = string(reason)
		return c
	}
	for _, candidate := range errorClasses {
		if errors.Is(err, candidate.target) {
			return candidate.class
		}
	}
	return classInternal
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":500,"message":"encode response","status":"INTERNAL"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeError(_ context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	message := internalMessage
	if !class.hidden && err != nil {
		message = err.Error()
	}

	writeJSON(w, class.httpStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.httpStatus,
			Message: message,
			Status:  class.status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: class.reason, Message: message}},
		},
	})
}
