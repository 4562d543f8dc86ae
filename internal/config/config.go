package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	MetricsEnabled             bool
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	FPLBaseURL                 string
	FPLUserAgent               string
	FPLTimeout                 time.Duration
	FPLMaxRetries              int
	FPLLiveMaxRetries          int
	FPLRetryBackoff            time.Duration
	FPLRetryJitter             time.Duration
	FPLCircuitEnabled          bool
	FPLCircuitFailureCount     int
	FPLCircuitOpenTimeout      time.Duration
	FPLCircuitHalfOpenMaxReq   int
	FPLWorkers                 int
	FPLDispatchMinDelay        time.Duration
	FPLDispatchMaxDelay        time.Duration
	FPLRosterFile              string
	Participants               []leaguehistory.Participant
	SnapshotTimeout            time.Duration
	SnapshotRecordLimit        int
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "60s")
	if err != nil {
		return Config{}, err
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

	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	fplTimeout, err := getEnvAsDuration("FPL_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}
	fplLiveMaxRetries, err := getEnvAsInt("FPL_LIVE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_LIVE_MAX_RETRIES: %w", err)
	}
	if fplLiveMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_LIVE_MAX_RETRIES must be >= 0")
	}
	fplRetryBackoff, err := getEnvAsDuration("FPL_RETRY_BACKOFF", "600ms")
	if err != nil {
		return Config{}, err
	}
	fplRetryJitter, err := time.ParseDuration(getEnv("FPL_RETRY_JITTER", "250ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_RETRY_JITTER: %w", err)
	}
	if fplRetryJitter < 0 {
		return Config{}, fmt.Errorf("FPL_RETRY_JITTER must be >= 0")
	}

	fplCircuitEnabled, err := strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	fplCircuitFailureCount, err := getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if fplCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	fplCircuitOpenTimeout, err := getEnvAsDuration("FPL_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	fplCircuitHalfOpenMaxReq, err := getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if fplCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	fplWorkers, err := getEnvAsInt("FPL_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_WORKERS: %w", err)
	}
	if fplWorkers < 1 {
		return Config{}, fmt.Errorf("FPL_WORKERS must be >= 1")
	}
	fplDispatchMinDelay, err := time.ParseDuration(getEnv("FPL_DISPATCH_MIN_DELAY", "200ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_DISPATCH_MIN_DELAY: %w", err)
	}
	fplDispatchMaxDelay, err := time.ParseDuration(getEnv("FPL_DISPATCH_MAX_DELAY", "600ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_DISPATCH_MAX_DELAY: %w", err)
	}
	if fplDispatchMinDelay < 0 || fplDispatchMaxDelay < fplDispatchMinDelay {
		return Config{}, fmt.Errorf("FPL_DISPATCH_MIN_DELAY must be >= 0 and <= FPL_DISPATCH_MAX_DELAY")
	}

	rosterFile := strings.TrimSpace(getEnv("FPL_ROSTER_FILE", ""))
	var participants []leaguehistory.Participant
	if rosterFile != "" {
		participants, err = LoadRosterFile(rosterFile)
		if err != nil {
			return Config{}, fmt.Errorf("load FPL_ROSTER_FILE: %w", err)
		}
	} else {
		participants, err = parseParticipants(getEnv("FPL_PARTICIPANTS", ""))
		if err != nil {
			return Config{}, fmt.Errorf("parse FPL_PARTICIPANTS: %w", err)
		}
	}

	snapshotTimeout, err := getEnvAsDuration("SNAPSHOT_TIMEOUT", "45s")
	if err != nil {
		return Config{}, err
	}
	snapshotRecordLimit, err := getEnvAsInt("SNAPSHOT_RECORD_LIMIT", leaguehistory.DefaultRecordLimit)
	if err != nil {
		return Config{}, fmt.Errorf("parse SNAPSHOT_RECORD_LIMIT: %w", err)
	}
	if snapshotRecordLimit < 1 || snapshotRecordLimit > leaguehistory.MaxRecordLimit {
		return Config{}, fmt.Errorf("SNAPSHOT_RECORD_LIMIT must be between 1 and %d", leaguehistory.MaxRecordLimit)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "fantasy-league-snapshot"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		MetricsEnabled:             metricsEnabled,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		FPLBaseURL:                 strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLUserAgent:               strings.TrimSpace(getEnv("FPL_USER_AGENT", "fantasy-league-snapshot/1.0")),
		FPLTimeout:                 fplTimeout,
		FPLMaxRetries:              fplMaxRetries,
		FPLLiveMaxRetries:          fplLiveMaxRetries,
		FPLRetryBackoff:            fplRetryBackoff,
		FPLRetryJitter:             fplRetryJitter,
		FPLCircuitEnabled:          fplCircuitEnabled,
		FPLCircuitFailureCount:     fplCircuitFailureCount,
		FPLCircuitOpenTimeout:      fplCircuitOpenTimeout,
		FPLCircuitHalfOpenMaxReq:   fplCircuitHalfOpenMaxReq,
		FPLWorkers:                 fplWorkers,
		FPLDispatchMinDelay:        fplDispatchMinDelay,
		FPLDispatchMaxDelay:        fplDispatchMaxDelay,
		FPLRosterFile:              rosterFile,
		Participants:               participants,
		SnapshotTimeout:            snapshotTimeout,
		SnapshotRecordLimit:        snapshotRecordLimit,
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.FPLBaseURL == "" {
		return Config{}, fmt.Errorf("FPL_BASE_URL cannot be empty")
	}

	return cfg, nil
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

// getEnvAsDuration parses a strictly positive duration.
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

// parseParticipants reads "Name:entry_id,Name:entry_id" keeping the given order.
func parseParticipants(raw string) ([]leaguehistory.Participant, error) {
	out := make([]leaguehistory.Participant, 0)
	seen := make(map[string]struct{})
	for _, item := range splitCSV(raw) {
		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid participant %q, expected name:entry_id", item)
		}

		name := strings.TrimSpace(segments[0])
		entryID := strings.TrimSpace(segments[1])
		if name == "" || entryID == "" {
			return nil, fmt.Errorf("empty name or entry id in participant %q", item)
		}
		if _, err := strconv.ParseInt(entryID, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid entry id in participant %q: %w", item, err)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate participant name %q", name)
		}
		seen[name] = struct{}{}

		out = append(out, leaguehistory.Participant{Name: name, EntryID: entryID})
	}
	return out, nil
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
