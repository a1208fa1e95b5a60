package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	kafka_config "leadform/pkg/kafka/config"
	"leadform/pkg/logger"
	"leadform/pkg/middleware"
	"leadform/pkg/sanitizer"
)

type Config struct {
	ServiceName string
	Port        string

	AirtableAPIURL    string
	AirtableBaseID    string
	AirtableTableName string
	AirtablePAT       string
	AirtableTimeout   time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	CORSAllowedOrigins []string
	StaticDir          string
	SuccessRedirect    string

	// TrustedProxies lists the peers (IPs or CIDR ranges) whose
	// X-Forwarded-For header is believed. Empty means none.
	TrustedProxies []string

	RedisURL    string
	LeadLockTTL time.Duration

	Kafka *kafka_config.Config

	Log *logger.Logger
}

// Load reads .env (when present) and the process environment, validates the
// result and exits on any problem. Nothing downstream re-checks these values.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := fromEnv(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func fromEnv(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Port:        getEnvStr(EnvPort, DefaultPort),

		AirtableAPIURL:    strings.TrimSuffix(getEnvStr(EnvAirtableAPIURL, DefaultAirtableAPIURL), "/"),
		AirtableBaseID:    strings.TrimSpace(getEnvStr(EnvAirtableBaseID, "")),
		AirtableTableName: strings.TrimSpace(getEnvStr(EnvAirtableTableName, "")),
		AirtablePAT:       strings.TrimSpace(getEnvStr(EnvAirtablePAT, "")),
		AirtableTimeout:   getEnvDuration(EnvAirtableTimeout, DefaultAirtableTimeout),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		CORSAllowedOrigins: sanitizer.NormalizeOrigins(strings.Split(getEnvStr(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins), ",")),
		StaticDir:          getEnvStr(EnvStaticDir, ""),
		SuccessRedirect:    getEnvStr(EnvSuccessRedirect, DefaultSuccessRedirect),
		TrustedProxies:     sanitizer.NormalizeList(strings.Split(getEnvStr(EnvTrustedProxies, ""), ",")),

		RedisURL:    getEnvStr(EnvRedisURL, ""),
		LeadLockTTL: getEnvDuration(EnvLeadLockTTL, DefaultLeadLockTTL),

		Kafka: kafka_config.Load(),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, logger.JSON),
			AddSource: true,
			Service:   serviceName,
		}),
	}
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if err := cfg.ValidateAirtable(); err != nil {
		errs = append(errs, err.Error())
	}
	if u, err := url.Parse(cfg.AirtableAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("AirtableAPIURL must be an absolute URL, got: %s", cfg.AirtableAPIURL))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"AirtableTimeout", cfg.AirtableTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"LeadLockTTL", cfg.LeadLockTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}
	if cfg.WriteTimeout > 0 && cfg.RequestTimeout >= cfg.WriteTimeout {
		errs = append(errs, fmt.Sprintf("RequestTimeout (%s) must be shorter than WriteTimeout (%s)", cfg.RequestTimeout, cfg.WriteTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if !strings.HasPrefix(cfg.SuccessRedirect, "/") {
		errs = append(errs, fmt.Sprintf("SuccessRedirect must be a local path, got: %s", cfg.SuccessRedirect))
	}

	for _, proxy := range cfg.TrustedProxies {
		if !middleware.ValidTrustedProxy(proxy) {
			errs = append(errs, fmt.Sprintf("TrustedProxies entries must be IP addresses or CIDR ranges, got: %s", proxy))
		}
	}

	if cfg.RedisURL != "" {
		if _, err := url.Parse(cfg.RedisURL); err != nil || !regexp.MustCompile(`^rediss?://`).MatchString(cfg.RedisURL) {
			errs = append(errs, fmt.Sprintf("RedisURL must start with 'redis://' or 'rediss://', got: %s", redactURL(cfg.RedisURL)))
		}
	}

	if cfg.Kafka != nil && cfg.Kafka.Enabled() {
		if err := cfg.Kafka.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// ValidateAirtable reports which record-store settings are missing.
func (cfg *Config) ValidateAirtable() error {
	var missing []string
	if cfg.AirtableBaseID == "" {
		missing = append(missing, EnvAirtableBaseID)
	}
	if cfg.AirtableTableName == "" {
		missing = append(missing, EnvAirtableTableName)
	}
	if cfg.AirtablePAT == "" {
		missing = append(missing, EnvAirtablePAT)
	}
	if len(missing) > 0 {
		return errors.New("airtable settings missing: " + strings.Join(missing, ", "))
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"airtable_api_url", cfg.AirtableAPIURL,
		"airtable_base_id", cfg.AirtableBaseID,
		"airtable_table", cfg.AirtableTableName,
		"airtable_pat_set", cfg.AirtablePAT != "",
		"airtable_timeout", cfg.AirtableTimeout,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"static_dir", cfg.StaticDir,
		"success_redirect", cfg.SuccessRedirect,
		"trusted_proxies", cfg.TrustedProxies,
		"redis_url", redactURL(cfg.RedisURL),
		"lead_lock_ttl", cfg.LeadLockTTL,
		"kafka_enabled", cfg.Kafka != nil && cfg.Kafka.Enabled(),
	)
}

func redactURL(raw string) string {
	credentialRegex := regexp.MustCompile(`(rediss?://)[^@/]*@`)
	return credentialRegex.ReplaceAllString(raw, "${1}***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
