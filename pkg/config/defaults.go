package config

import "time"

const (
	DefaultPort     = "3001"
	DefaultLogLevel = "info"

	DefaultAirtableAPIURL  = "https://api.airtable.com"
	DefaultAirtableTimeout = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 35 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCORSAllowedOrigins = "*"
	DefaultSuccessRedirect    = "/success.html"

	DefaultLeadLockTTL = 30 * time.Second
)
