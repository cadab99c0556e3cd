package usecase

import (
	"context"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/platform/resilience"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInvariantViolation    = errors.New("invariant violation")
)

// wrapRepoErr classifies a storage or catalog failure. Dependency outages
// become retryable, corrupted state becomes an invariant violation and
// anything else keeps its chain under op.
func wrapRepoErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case crerr.Is(err, resilience.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	case errors.Is(err, fantasy.ErrDuplicateSnapshot), crerr.HasAssertionFailure(err):
		return fmt.Errorf("%w: %s: %w", ErrInvariantViolation, op, err)
	default:
		return crerr.Wrap(err, op)
	}
}
