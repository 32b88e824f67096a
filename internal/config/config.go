package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	IBGE      IBGEConfig      `yaml:"ibge"`
	Report    ReportConfig    `yaml:"report"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"triagem"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
}

// WebhookConfig holds inbound webhook settings.
type WebhookConfig struct {
	// Secret, when set, must match the X-Webhook-Secret header of every
	// inbound delivery. Empty disables the check.
	Secret string `yaml:"secret" env:"WEBHOOK_SECRET"`

	// SystemAddress is the triage inbox's own address. It is excluded from
	// consolidated recipient lists so that it never shows up in rankings.
	SystemAddress string `yaml:"system_address" env:"WEBHOOK_SYSTEM_ADDRESS" env-required:"true"`
}

// IBGEConfig holds settings for the IBGE localidades reference API.
type IBGEConfig struct {
	BaseURL string        `yaml:"base_url" env:"IBGE_BASE_URL" env-default:"https://servicodados.ibge.gov.br/api/v1/localidades"`
	Timeout time.Duration `yaml:"timeout"  env:"IBGE_TIMEOUT"  env-default:"10s"`
}

// ReportConfig holds dashboard reporting settings.
type ReportConfig struct {
	// TopRecipients is how many entries the recipient ranking returns.
	TopRecipients int `yaml:"top_recipients" env:"REPORT_TOP_RECIPIENTS" env-default:"3"`

	// Timezone is the IANA zone used to bucket the 7-day trend by local
	// calendar date. Empty falls back to the server's local zone.
	Timezone string `yaml:"timezone" env:"REPORT_TIMEZONE" env-default:"America/Sao_Paulo"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP rate limiting settings for the credential
// endpoints and the inbound webhook. A limit of 0 disables the check.
type RateLimitConfig struct {
	AuthPerMinute    int           `yaml:"auth_per_minute"    env:"RATELIMIT_AUTH_PER_MINUTE"    env-default:"30"`
	WebhookPerMinute int           `yaml:"webhook_per_minute" env:"RATELIMIT_WEBHOOK_PER_MINUTE" env-default:"120"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATELIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
