package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvAirtableAPIURL    = "AIRTABLE_API_URL"
	EnvAirtableBaseID    = "AIRTABLE_BASE_ID"
	EnvAirtableTableName = "AIRTABLE_TABLE_NAME"
	EnvAirtablePAT       = "AIRTABLE_PAT"
	EnvAirtableTimeout   = "AIRTABLE_TIMEOUT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvStaticDir          = "STATIC_DIR"
	EnvSuccessRedirect    = "SUCCESS_REDIRECT"
	EnvTrustedProxies     = "TRUSTED_PROXIES"

	EnvRedisURL    = "REDIS_URL"
	EnvLeadLockTTL = "LEAD_LOCK_TTL"
)
