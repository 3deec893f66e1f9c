// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/url"
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
}

// AuthConfig provides settings for inbound bearer authentication.
// Authentication is disabled when no secret is configured.
type AuthConfig interface {
	GetAPIJWTSecret() string
	IsAPIAuthEnabled() bool
}

// RateLimitConfig provides settings for the per-IP rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// ProviderConfig provides settings for the identity provider management API.
type ProviderConfig interface {
	GetTenantDomain() string
	GetProviderDomain() string
	GetProviderBaseURL() string
	GetProviderTimeout() time.Duration
	GetManagementAPIToken() string
}

// OrganizationsConfig provides settings used by the organization manager.
type OrganizationsConfig interface {
	GetDatabaseConnectionID() string
	GetOrganizationIdentifier() string
}

// UsersConfig provides settings used by the user manager.
type UsersConfig interface {
	GetClientID() string
	GetDatabaseConnectionID() string
	GetDBConnectionName() string
	GetUserIDPrefix() string
	GetInviterName() string
	GetInvitationDefaultRole() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	DatabaseURL            string
	PostgresUser           string
	PostgresPassword       string
	PostgresHost           string
	PostgresPort           string
	PostgresName           string
	CORSAllowAll           bool
	CORSOrigins            []string
	APIJWTSecret           string
	RateLimitRPS           float64
	RateLimitBurst         int
	TenantDomain           string
	ProviderDomain         string
	ProviderBaseURL        string
	ProviderTimeout        time.Duration
	ManagementAPIToken     string
	DatabaseConnectionID   string
	DBConnectionName       string
	UserIDPrefix           string
	ClientID               string
	OrganizationIdentifier string
	InviterName            string
	InvitationDefaultRole  string
	MailGunAPIKey          string
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

// AuthConfig implementation
func (c *Config) GetAPIJWTSecret() string { return c.APIJWTSecret }
func (c *Config) IsAPIAuthEnabled() bool  { return c.APIJWTSecret != "" }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// ProviderConfig implementation
func (c *Config) GetTenantDomain() string           { return c.TenantDomain }
func (c *Config) GetProviderDomain() string         { return c.ProviderDomain }
func (c *Config) GetProviderBaseURL() string        { return c.ProviderBaseURL }
func (c *Config) GetProviderTimeout() time.Duration { return c.ProviderTimeout }
func (c *Config) GetManagementAPIToken() string     { return c.ManagementAPIToken }

// OrganizationsConfig / UsersConfig implementation
func (c *Config) GetDatabaseConnectionID() string   { return c.DatabaseConnectionID }
func (c *Config) GetOrganizationIdentifier() string { return c.OrganizationIdentifier }
func (c *Config) GetClientID() string               { return c.ClientID }
func (c *Config) GetDBConnectionName() string       { return c.DBConnectionName }
func (c *Config) GetUserIDPrefix() string           { return c.UserIDPrefix }
func (c *Config) GetInviterName() string            { return c.InviterName }
func (c *Config) GetInvitationDefaultRole() string  { return c.InvitationDefaultRole }

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	cfg := read()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads configuration without requiring the identity provider
// settings. Used by the migrate commands.
func LoadDatabase() *Config {
	return read()
}

func read() *Config {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		PostgresUser:           getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:       getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresHost:           getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:           getEnv("POSTGRES_PORT", "5432"),
		PostgresName:           getEnv("POSTGRES_NAME", "users_manager"),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		APIJWTSecret:           getEnv("API_JWT_SECRET", ""),
		RateLimitRPS:           mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:         mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		TenantDomain:           getEnv("TENANT_DOMAIN", ""),
		ProviderDomain:         getEnv("PROVIDER_DOMAIN", "eu.auth0.com"),
		ProviderBaseURL:        strings.TrimRight(getEnv("PROVIDER_BASE_URL", ""), "/"),
		ProviderTimeout:        mustDuration(getEnv("PROVIDER_TIMEOUT", "15s")),
		ManagementAPIToken:     getEnv("MANAGEMENT_API_TOKEN", ""),
		DatabaseConnectionID:   getEnv("DATABASE_ID_CONNECTION", ""),
		DBConnectionName:       getEnv("PROVIDER_DB_CONNECTION_NAME", "Username-Password-Authentication"),
		UserIDPrefix:           getEnv("PROVIDER_USER_ID_PREFIX", "auth0|"),
		ClientID:               getEnv("CLIENT_ID", ""),
		OrganizationIdentifier: getEnv("ORGANIZATION_IDENTIFIER", ""),
		InviterName:            getEnv("INVITER_NAME", "Brodacz TEAM"),
		InvitationDefaultRole:  getEnv("INVITATION_DEFAULT_ROLE", "employee"),
		MailGunAPIKey:          getEnv("MAIL_GUN_API_KEY", ""),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDatabaseURL(cfg)
	}

	return cfg
}

func (c *Config) validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"TENANT_DOMAIN", c.TenantDomain},
		{"MANAGEMENT_API_TOKEN", c.ManagementAPIToken},
		{"DATABASE_ID_CONNECTION", c.DatabaseConnectionID},
		{"CLIENT_ID", c.ClientID},
		{"ORGANIZATION_IDENTIFIER", c.OrganizationIdentifier},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return fmt.Errorf("%s is required", item.key)
		}
	}

	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be a positive duration")
	}
	if c.ProviderBaseURL != "" {
		if _, err := url.ParseRequestURI(c.ProviderBaseURL); err != nil {
			return fmt.Errorf("PROVIDER_BASE_URL is invalid: %w", err)
		}
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

func buildDatabaseURL(c *Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     c.PostgresHost + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
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
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
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
