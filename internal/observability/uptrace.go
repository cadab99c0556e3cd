package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/fantasy-tour/internal/config"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

// startTracing installs the global OpenTelemetry providers exporting to
// Uptrace. Without a DSN tracing stays on the no-op provider.
func startTracing(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	dsn := strings.TrimSpace(cfg.UptraceDSN)
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return nil, nil
	case dsn == "":
		logger.Warn("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("uptrace enabled", "service", cfg.ServiceName, "environment", cfg.AppEnv)

	return func(ctx context.Context) error { return uptrace.Shutdown(ctx) }, nil
}
