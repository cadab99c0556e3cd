package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
	"github.com/riskibarqy/fantasy-tour/internal/scheduler"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// SweepTrigger is the scheduler surface exposed to operators.
type SweepTrigger interface {
	RunOnce(ctx context.Context) (usecase.SweepResult, bool, error)
	Status() scheduler.Status
}

type Handler struct {
	catalogService      *usecase.CatalogService
	rosterService       *usecase.RosterService
	squadService        *usecase.SquadService
	transferService     *usecase.TransferService
	boostService        *usecase.BoostService
	scoringService      *usecase.ScoringService
	tourService         *usecase.TourService
	finalizationService *usecase.FinalizationService
	sweeps              SweepTrigger
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	rosterService *usecase.RosterService,
	squadService *usecase.SquadService,
	transferService *usecase.TransferService,
	boostService *usecase.BoostService,
	scoringService *usecase.ScoringService,
	tourService *usecase.TourService,
	finalizationService *usecase.FinalizationService,
	sweeps SweepTrigger,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:      catalogService,
		rosterService:       rosterService,
		squadService:        squadService,
		transferService:     transferService,
		boostService:        boostService,
		scoringService:      scoringService,
		tourService:         tourService,
		finalizationService: finalizationService,
		sweeps:              sweeps,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it. An empty body is
// accepted when allowEmpty is set.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (principal, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return p, nil
}
