package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/courtflow/nba-stats-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	// Usage logging is optional: an empty DB_URL runs the API without
	// a database and usage capture becomes a no-op.
	DBURL string

	CacheMaxEntries int
	CacheTTL        time.Duration

	CORSAllowedOrigins []string

	NBAStatsBaseURL             string
	NBAStatsAPIKey              string
	NBAStatsTimeout             time.Duration
	NBAStatsCircuitEnabled      bool
	NBAStatsCircuitFailureCount int
	NBAStatsCircuitOpenTimeout  time.Duration

	RecommendScanWorkers int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_READ_TIMEOUT must be > 0")
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_WRITE_TIMEOUT must be > 0")
	}

	cacheMaxEntries, err := getEnvAsInt("CACHE_MAX_ENTRIES", 1024)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_MAX_ENTRIES: %w", err)
	}
	if cacheMaxEntries < 1 {
		return Config{}, fmt.Errorf("CACHE_MAX_ENTRIES must be >= 1")
	}
	cacheTTL := time.Duration(0)
	if raw := strings.TrimSpace(getEnv("CACHE_TTL", "")); raw != "" {
		cacheTTL, err = time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		if cacheTTL < 0 {
			return Config{}, fmt.Errorf("CACHE_TTL must be >= 0")
		}
	}

	nbaStatsTimeout, err := time.ParseDuration(getEnv("NBA_STATS_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_STATS_TIMEOUT: %w", err)
	}
	if nbaStatsTimeout <= 0 {
		return Config{}, fmt.Errorf("NBA_STATS_TIMEOUT must be > 0")
	}
	nbaStatsCircuitEnabled, err := strconv.ParseBool(getEnv("NBA_STATS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_STATS_CIRCUIT_ENABLED: %w", err)
	}
	nbaStatsCircuitFailureCount, err := getEnvAsInt("NBA_STATS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_STATS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if nbaStatsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NBA_STATS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	nbaStatsCircuitOpenTimeout, err := time.ParseDuration(getEnv("NBA_STATS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_STATS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if nbaStatsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NBA_STATS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	recommendScanWorkers, err := getEnvAsInt("RECOMMEND_SCAN_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMEND_SCAN_WORKERS: %w", err)
	}
	if recommendScanWorkers < 1 {
		return Config{}, fmt.Errorf("RECOMMEND_SCAN_WORKERS must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	serviceName := getEnv("APP_SERVICE_NAME", "nba-stats-api")

	return Config{
		AppEnv:         appEnv,
		ServiceName:    serviceName,
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		DBURL: strings.TrimSpace(getEnv("DB_URL", "")),

		CacheMaxEntries: cacheMaxEntries,
		CacheTTL:        cacheTTL,

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		NBAStatsBaseURL:             strings.TrimSpace(getEnv("NBA_STATS_BASE_URL", "")),
		NBAStatsAPIKey:              strings.TrimSpace(getEnv("NBA_STATS_API_KEY", "")),
		NBAStatsTimeout:             nbaStatsTimeout,
		NBAStatsCircuitEnabled:      nbaStatsCircuitEnabled,
		NBAStatsCircuitFailureCount: nbaStatsCircuitFailureCount,
		NBAStatsCircuitOpenTimeout:  nbaStatsCircuitOpenTimeout,

		RecommendScanWorkers: recommendScanWorkers,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		LogLevel: logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(v))
	switch normalized {
	case EnvDev, EnvStage, EnvProd:
		return normalized, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
