// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthConfig provides settings for the admin login flow.
type AuthConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetAdminEmail() string
	GetAdminPasswordHash() string
}

// AssistantConfig provides settings for the conversational assistant engine.
type AssistantConfig interface {
	GetGeminiAPIKey() string
	GetAssistantModels() []string
	GetSiteBaseURL() string
	GetSideEffectTimeout() time.Duration
}

// SlackConfig provides settings for the operator messaging channel.
type SlackConfig interface {
	GetSlackBotToken() string
	GetSlackChannelID() string
	IsSlackEnabled() bool
}

// EmailConfig provides settings for the optional operator email channel.
type EmailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetOperatorEmail() string
	IsEmailEnabled() bool
}

// StorageConfig provides settings for MinIO S3-compatible storage.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinIOPublicBaseURL() string
	GetMinIOBucketPropertyImages() string
	IsMinIOEnabled() bool
}

// SchedulerConfig provides settings for the asynq scheduler and worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetLeadFollowupDelay() time.Duration
}

// CacheConfig provides settings for the catalog read cache.
type CacheConfig interface {
	GetRedisURL() string
	GetCatalogCacheTTL() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                       string
	HTTPAddr                  string
	DatabaseURL               string
	CORSAllowAll              bool
	CORSOrigins               []string
	CORSAllowCreds            bool
	SiteBaseURL               string
	JWTSecret                 string
	AccessTokenTTL            time.Duration
	AdminEmail                string
	AdminPasswordHash         string
	GeminiAPIKey              string
	AssistantModels           []string
	SideEffectTimeout         time.Duration
	SlackBotToken             string
	SlackChannelID            string
	SMTPHost                  string
	SMTPPort                  int
	SMTPUsername              string
	SMTPPassword              string
	EmailFromName             string
	EmailFromAddress          string
	OperatorEmail             string
	MinIOEndpoint             string
	MinIOAccessKey            string
	MinIOSecretKey            string
	MinIOUseSSL               bool
	MinIOMaxFileSize          int64
	MinIOPublicBaseURL        string
	MinIOBucketPropertyImages string
	RedisURL                  string
	AsynqQueueName            string
	AsynqConcurrency          int
	LeadFollowupDelay         time.Duration
	CatalogCacheTTL           time.Duration
}

// defaultAssistantModels is the ordered fallback list tried by the assistant
// engine when ASSISTANT_MODELS is not set.
var defaultAssistantModels = []string{
	"gemini-3-flash-preview",
	"gemini-flash-latest",
	"gemini-pro-latest",
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// AuthConfig implementation
func (c *Config) GetJWTSecret() string              { return c.JWTSecret }
func (c *Config) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c *Config) GetAdminEmail() string             { return c.AdminEmail }
func (c *Config) GetAdminPasswordHash() string      { return c.AdminPasswordHash }

// AssistantConfig implementation
func (c *Config) GetGeminiAPIKey() string               { return c.GeminiAPIKey }
func (c *Config) GetAssistantModels() []string          { return c.AssistantModels }
func (c *Config) GetSiteBaseURL() string                { return c.SiteBaseURL }
func (c *Config) GetSideEffectTimeout() time.Duration   { return c.SideEffectTimeout }

// SlackConfig implementation
func (c *Config) GetSlackBotToken() string  { return c.SlackBotToken }
func (c *Config) GetSlackChannelID() string { return c.SlackChannelID }
func (c *Config) IsSlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackChannelID != ""
}

// EmailConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetOperatorEmail() string    { return c.OperatorEmail }
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.OperatorEmail != "" && c.EmailFromAddress != ""
}

// StorageConfig implementation
func (c *Config) GetMinIOEndpoint() string      { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string     { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string     { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool          { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64    { return c.MinIOMaxFileSize }
func (c *Config) GetMinIOPublicBaseURL() string { return c.MinIOPublicBaseURL }
func (c *Config) GetMinIOBucketPropertyImages() string {
	return c.MinIOBucketPropertyImages
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string                  { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string            { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int             { return c.AsynqConcurrency }
func (c *Config) GetLeadFollowupDelay() time.Duration  { return c.LeadFollowupDelay }

// CacheConfig implementation
func (c *Config) GetCatalogCacheTTL() time.Duration { return c.CatalogCacheTTL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	models := splitCSV(getEnv("ASSISTANT_MODELS", ""))
	if len(models) == 0 {
		models = defaultAssistantModels
	}

	cfg := &Config{
		Env:                       getEnv("APP_ENV", "development"),
		HTTPAddr:                  getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		CORSAllowAll:              corsAllowAll,
		CORSOrigins:               corsOrigins,
		CORSAllowCreds:            strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		SiteBaseURL:               strings.TrimRight(getEnv("SITE_BASE_URL", "http://localhost:5173"), "/"),
		JWTSecret:                 getEnv("JWT_SECRET", ""),
		AccessTokenTTL:            mustDuration(getEnv("JWT_ACCESS_TTL", "12h")),
		AdminEmail:                getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash:         getEnv("ADMIN_PASSWORD_HASH", ""),
		GeminiAPIKey:              getEnv("GEMINI_API_KEY", ""),
		AssistantModels:           models,
		SideEffectTimeout:         mustDuration(getEnv("ASSISTANT_SIDE_EFFECT_TIMEOUT", "5s")),
		SlackBotToken:             getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID:            getEnv("SLACK_CHANNEL_ID", ""),
		SMTPHost:                  getEnv("SMTP_HOST", ""),
		SMTPPort:                  mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:              getEnv("SMTP_USERNAME", ""),
		SMTPPassword:              getEnv("SMTP_PASSWORD", ""),
		EmailFromName:             getEnv("EMAIL_FROM_NAME", "Realty Portal"),
		EmailFromAddress:          getEnv("EMAIL_FROM_ADDRESS", ""),
		OperatorEmail:             getEnv("OPERATOR_EMAIL", ""),
		MinIOEndpoint:             getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:            getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:            getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:               strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:          mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinIOPublicBaseURL:        strings.TrimRight(getEnv("MINIO_PUBLIC_BASE_URL", ""), "/"),
		MinIOBucketPropertyImages: getEnv("MINIO_BUCKET_PROPERTY_IMAGES", "property-images"),
		RedisURL:                  getEnv("REDIS_URL", ""),
		AsynqQueueName:            getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:          mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		LeadFollowupDelay:         mustDuration(getEnv("LEAD_FOLLOWUP_DELAY", "24h")),
		CatalogCacheTTL:           mustDuration(getEnv("CATALOG_CACHE_TTL", "60s")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SideEffectTimeout <= 0 {
		cfg.SideEffectTimeout = 5 * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func mustInt64(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
