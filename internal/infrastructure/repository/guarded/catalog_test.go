package guarded

import (
	"context"
	"errors"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	matchmock "github.com/riskibarqy/fantasy-tour/internal/mocks/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/platform/resilience"
)

func TestMatchRepository_BreakerOpensAfterFailures(t *testing.T) {
	next := matchmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "m-1").Return(match.Match{}, false, errors.New("connection refused")).Twice()

	guard := resilience.NewGuard(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, time.Second)
	repo := NewMatchRepository(next, guard)

	for range 2 {
		_, _, err := repo.GetByID(t.Context(), "m-1")
		require.True(t, crerr.Is(err, resilience.ErrUnavailable))
	}
	require.Equal(t, resilience.CircuitStateOpen, guard.State())

	// the third call never reaches the repository
	_, _, err := repo.GetByID(t.Context(), "m-1")
	require.True(t, crerr.Is(err, resilience.ErrUnavailable))
}

func TestMatchRepository_TimeoutApplied(t *testing.T) {
	next := matchmock.NewRepository(t)
	next.On("ListByTour", mock.Anything, "tour-1").
		Return(func(ctx context.Context, _ string) ([]match.Match, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

	repo := NewMatchRepository(next, resilience.NewGuard(resilience.CircuitBreakerConfig{}, 10*time.Millisecond))

	_, err := repo.ListByTour(t.Context(), "tour-1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, crerr.Is(err, resilience.ErrUnavailable))
}

func TestMatchRepository_SuccessPassesThrough(t *testing.T) {
	next := matchmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "m-2").Return(match.Match{ID: "m-2"}, true, nil).Once()

	repo := NewMatchRepository(next, nil)

	got, ok, err := repo.GetByID(t.Context(), "m-2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "m-2", got.ID)
}
