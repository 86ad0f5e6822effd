package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/draft-value/internal/platform/logging"
)

const (
	FetchModeFile = "file"
	FetchModeHTTP = "http"
)

// Config stores runtime configuration for the API and the batch CLI.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	Verbose            bool
	CORSAllowedOrigins []string

	LeagueSize int
	DataDir    string

	SourceFetchMode             string
	ESPNRankingsURL             string
	ESPNProjectionsURLs         []string
	FantasyProsRankingsURL      string
	FantasyProsProjectionsURLs  []string
	SourceFetchTimeout          time.Duration
	SourceUserAgent             string
	SourceCircuitEnabled        bool
	SourceCircuitFailureCount   int
	SourceCircuitOpenTimeout    time.Duration
	SourceCircuitHalfOpenMaxReq int
	SourceParseWorkers          int

	FitMaxEvaluations int
	FitWorkers        int
	QBMinPPG          float64
	RootInitialGuess  float64
	RootMaxIterations int

	ChartOutputPath string
	CacheEnabled    bool
	CacheTTL        time.Duration

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "draft-value-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DataDir:            strings.TrimSpace(getEnv("DATA_DIR", "data")),
		ChartOutputPath:    strings.TrimSpace(getEnv("CHART_OUTPUT_PATH", "Position-Specific PPG-Draft Order Trade Off Curves.html")),
		SourceUserAgent:    strings.TrimSpace(getEnv("SOURCE_USER_AGENT", "draft-value/1.0")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.Verbose, err = getEnvAsBool("VERBOSE", false); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))
	if cfg.Verbose {
		cfg.LogLevel = logging.LevelDebug
	}

	if cfg.LeagueSize, err = getEnvAsInt("LEAGUE_SIZE", 10); err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_SIZE: %w", err)
	}
	if cfg.LeagueSize < 1 {
		return Config{}, fmt.Errorf("LEAGUE_SIZE must be >= 1")
	}

	if err := loadSourceConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAnalysisConfig(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}

	if err := loadObservabilityConfig(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadSourceConfig(cfg *Config) error {
	mode := strings.ToLower(strings.TrimSpace(getEnv("SOURCE_FETCH_MODE", FetchModeFile)))
	switch mode {
	case FetchModeFile:
		if cfg.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required when SOURCE_FETCH_MODE=file")
		}
	case FetchModeHTTP:
	default:
		return fmt.Errorf("invalid SOURCE_FETCH_MODE %q: valid values are %s, %s", mode, FetchModeFile, FetchModeHTTP)
	}
	cfg.SourceFetchMode = mode

	cfg.ESPNRankingsURL = strings.TrimSpace(getEnv("ESPN_RANKINGS_URL", ""))
	cfg.ESPNProjectionsURLs = splitCSV(getEnv("ESPN_PROJECTIONS_URLS", ""))
	cfg.FantasyProsRankingsURL = strings.TrimSpace(getEnv("FANTASYPROS_RANKINGS_URL", ""))
	cfg.FantasyProsProjectionsURLs = splitCSV(getEnv("FANTASYPROS_PROJECTIONS_URLS", ""))
	if mode == FetchModeHTTP &&
		cfg.ESPNRankingsURL == "" && len(cfg.ESPNProjectionsURLs) == 0 &&
		cfg.FantasyProsRankingsURL == "" && len(cfg.FantasyProsProjectionsURLs) == 0 {
		return fmt.Errorf("at least one source URL is required when SOURCE_FETCH_MODE=http")
	}

	var err error
	if cfg.SourceFetchTimeout, err = getEnvAsDuration("SOURCE_FETCH_TIMEOUT", "20s"); err != nil {
		return err
	}
	if cfg.SourceCircuitEnabled, err = getEnvAsBool("SOURCE_CIRCUIT_ENABLED", true); err != nil {
		return err
	}
	if cfg.SourceCircuitFailureCount, err = getEnvAsPositiveInt("SOURCE_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return err
	}
	if cfg.SourceCircuitOpenTimeout, err = getEnvAsDuration("SOURCE_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.SourceCircuitHalfOpenMaxReq, err = getEnvAsPositiveInt("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return err
	}
	if cfg.SourceParseWorkers, err = getEnvAsPositiveInt("SOURCE_PARSE_WORKERS", 4); err != nil {
		return err
	}
	return nil
}

func loadAnalysisConfig(cfg *Config) error {
	var err error
	if cfg.FitMaxEvaluations, err = getEnvAsPositiveInt("FIT_MAX_EVALUATIONS", 1000000); err != nil {
		return err
	}
	if cfg.FitWorkers, err = getEnvAsPositiveInt("FIT_WORKERS", 4); err != nil {
		return err
	}
	if cfg.QBMinPPG, err = getEnvAsFloat("QB_MIN_PPG", 200); err != nil {
		return err
	}
	if cfg.RootInitialGuess, err = getEnvAsFloat("ROOT_INITIAL_GUESS", 100); err != nil {
		return err
	}
	if cfg.RootInitialGuess <= 0 {
		return fmt.Errorf("ROOT_INITIAL_GUESS must be > 0")
	}
	if cfg.RootMaxIterations, err = getEnvAsPositiveInt("ROOT_MAX_ITERATIONS", 100); err != nil {
		return err
	}
	return nil
}

func loadObservabilityConfig(cfg *Config) error {
	var err error
	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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

func getEnvAsPositiveInt(key string, fallback int) (int, error) {
	out, err := getEnvAsInt(key, fallback)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out < 1 {
		return 0, fmt.Errorf("%s must be >= 1", key)
	}
	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
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
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
