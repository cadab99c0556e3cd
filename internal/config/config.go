package config

import (
	"errors"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	StorageDriver                string
	DBURL                        string
	DBSSLMode                    string
	DBBootstrapSeed              bool
	CacheEnabled                 bool
	CacheTTL                     time.Duration
	CatalogTimeout               time.Duration
	CatalogCircuitEnabled        bool
	CatalogCircuitFailureCount   int
	CatalogCircuitOpenTimeout    time.Duration
	CatalogCircuitHalfOpenMaxReq int
	Rules                        fantasy.Rules
	FinalizationEnabled          bool
	FinalizationInterval         time.Duration
	FinalizationGrace            time.Duration
	FinalizationMaxWorkers       int
	FinalizationLeagueTimeout    time.Duration
	InternalJobToken             string
	CORSAllowedOrigins           []string
	PprofEnabled                 bool
	PprofAddr                    string
	UptraceEnabled               bool
	UptraceDSN                   string
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	LogLevel                     logging.Level
}

// Load reads the environment. Every invalid variable is reported, not just
// the first.
func Load() (Config, error) {
	env := &envReader{}

	cfg := Config{
		AppEnv:         env.oneOf("APP_ENV", EnvDev, EnvDev, EnvStage, EnvProd),
		ServiceName:    env.str("APP_SERVICE_NAME", "fantasy-tour-api"),
		ServiceVersion: env.str("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       env.str("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    env.duration("APP_READ_TIMEOUT", 10*time.Second, positive),
		WriteTimeout:   env.duration("APP_WRITE_TIMEOUT", 15*time.Second, positive),
		LogLevel:       logging.ParseLevel(env.str("APP_LOG_LEVEL", "info")),

		StorageDriver:   env.oneOf("STORAGE_DRIVER", StorageMemory, StorageMemory, StoragePostgres),
		DBURL:           env.str("DB_URL", ""),
		DBSSLMode:       env.str("DB_SSLMODE", "disable"),
		DBBootstrapSeed: env.boolean("DB_BOOTSTRAP_SEED", false),

		CacheEnabled:                 env.boolean("CACHE_ENABLED", true),
		CacheTTL:                     env.duration("CACHE_TTL", time.Minute, positive),
		CatalogTimeout:               env.duration("CATALOG_TIMEOUT", 3*time.Second, positive),
		CatalogCircuitEnabled:        env.boolean("CATALOG_CIRCUIT_ENABLED", true),
		CatalogCircuitFailureCount:   env.integer("CATALOG_CIRCUIT_FAILURE_COUNT", 5, 1),
		CatalogCircuitOpenTimeout:    env.duration("CATALOG_CIRCUIT_OPEN_TIMEOUT", 15*time.Second, positive),
		CatalogCircuitHalfOpenMaxReq: env.integer("CATALOG_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1),

		FinalizationEnabled:       env.boolean("FINALIZATION_ENABLED", true),
		FinalizationInterval:      env.duration("FINALIZATION_INTERVAL", time.Hour, positive),
		FinalizationGrace:         env.duration("FINALIZATION_GRACE", 2*time.Hour, nonNegative),
		FinalizationMaxWorkers:    env.integer("FINALIZATION_MAX_WORKERS", 4, 1),
		FinalizationLeagueTimeout: env.duration("FINALIZATION_LEAGUE_TIMEOUT", 2*time.Minute, positive),

		InternalJobToken:   env.str("INTERNAL_JOB_TOKEN", ""),
		CORSAllowedOrigins: parseCSV(env.str("CORS_ALLOWED_ORIGINS", "*")),

		PprofEnabled: env.boolean("PPROF_ENABLED", false),
		PprofAddr:    env.str("PPROF_ADDR", ":6060"),

		UptraceEnabled: env.boolean("UPTRACE_ENABLED", false),
		UptraceDSN:     env.str("UPTRACE_DSN", ""),

		PyroscopeEnabled:           env.boolean("PYROSCOPE_ENABLED", false),
		PyroscopeServerAddress:     env.str("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAuthToken:         env.str("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     env.str("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: env.str("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        env.duration("PYROSCOPE_UPLOAD_RATE", 15*time.Second, positive),
	}
	cfg.PyroscopeAppName = env.str("PYROSCOPE_APP_NAME", cfg.ServiceName)
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(env.str("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	cfg.Rules = loadRules(env)

	env.require(cfg.StorageDriver != StoragePostgres || cfg.DBURL != "", "DB_URL is required when STORAGE_DRIVER=postgres")
	env.require(!cfg.PprofEnabled || cfg.PprofAddr != "", "PPROF_ADDR is required when PPROF_ENABLED=true")
	env.require(!cfg.UptraceEnabled || cfg.UptraceDSN != "", "UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	env.require(!cfg.PyroscopeEnabled || cfg.PyroscopeServerAddress != "", "PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	env.require(cfg.AppEnv != EnvProd || cfg.InternalJobToken != "", "INTERNAL_JOB_TOKEN is required when APP_ENV=prod")

	if err := env.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadRules overlays RULES_* variables on the default game rules.
func loadRules(env *envReader) fantasy.Rules {
	rules := fantasy.DefaultRules()

	rules.InitialBudget = env.integer64("RULES_INITIAL_BUDGET", rules.InitialBudget, 1)
	rules.InitialFreeReplacements = env.integer("RULES_INITIAL_FREE_REPLACEMENTS", rules.InitialFreeReplacements, 0)
	rules.FreeReplacementsPerTour = env.integer("RULES_FREE_REPLACEMENTS_PER_TOUR", rules.FreeReplacementsPerTour, 0)
	rules.MaxFreeReplacements = env.integer("RULES_MAX_FREE_REPLACEMENTS", rules.MaxFreeReplacements, 0)
	rules.PenaltyPerTransfer = env.integer("RULES_PENALTY_PER_TRANSFER", rules.PenaltyPerTransfer, 0)
	rules.MaxPlayersPerTeam = env.integer("RULES_MAX_PLAYERS_PER_CLUB", rules.MaxPlayersPerTeam, 1)
	rules.TransfersPlusExtra = env.integer("RULES_TRANSFERS_PLUS_EXTRA", rules.TransfersPlusExtra, 0)
	rules.GoldTourBonus = env.integer("RULES_GOLD_TOUR_BONUS", rules.GoldTourBonus, 0)

	env.require(rules.InitialFreeReplacements <= rules.MaxFreeReplacements,
		"RULES_INITIAL_FREE_REPLACEMENTS must be <= RULES_MAX_FREE_REPLACEMENTS")
	return rules
}

func parseCSV(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseUptraceDSNFromOTLPHeaders picks uptrace-dsn out of a comma separated
// key=value header list.
func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}

var errInvalid = errors.New("invalid configuration")
