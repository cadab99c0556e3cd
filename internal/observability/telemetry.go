// Package observability starts tracing, continuous profiling and the pprof
// debug server according to config.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-tour/internal/config"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

type stopFunc func(ctx context.Context) error

// Telemetry holds whatever Setup started. Shutdown stops it in reverse order.
type Telemetry struct {
	logger    *logging.Logger
	stops     []namedStop
	pprofAddr string
}

type namedStop struct {
	name string
	stop stopFunc
}

// Setup starts each enabled component. If one fails, the ones already
// started are stopped before the error is returned.
func Setup(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (stopFunc, error)
	}{
		{"uptrace", startTracing},
		{"pyroscope", startProfiling},
		{"pprof", t.startDebugServer},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("start %s: %w", step.name, err), t.Shutdown(ctx))
		}
		if stop != nil {
			t.stops = append(t.stops, namedStop{name: step.name, stop: stop})
		}
	}
	return t, nil
}

// PprofAddr is the bound debug server address, or "" when pprof is off.
func (t *Telemetry) PprofAddr() string {
	return t.pprofAddr
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.stops) - 1; i >= 0; i-- {
		s := t.stops[i]
		if err := s.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.name, err))
			continue
		}
		t.logger.Info("telemetry stopped", "component", s.name)
	}
	t.stops = nil
	return errors.Join(errs...)
}
