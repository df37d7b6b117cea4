// Package config provides configuration management for the omok backend.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found during loading is collected
// and reported at once instead of failing on the first one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session store backend selectors for SESSION_STORE.
const (
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// SessionConfig holds session lifecycle and cookie settings.
type SessionConfig struct {
	// CookieName is the name of the session cookie sent to clients.
	CookieName string
	// TTL is the fixed session lifetime. Sessions are never refreshed; a
	// session created at sign-in expires TTL later regardless of activity.
	TTL time.Duration
	// Secure marks the cookie Secure. Only set under a production deployment
	// (APP_ENV=production), mirroring how the service is fronted by TLS there.
	Secure bool
	// Store selects the session backend: "postgres" (default) or "memory".
	Store string
}

// AuthConfig holds credential-hashing configuration.
type AuthConfig struct {
	// BcryptCost is the bcrypt work factor used when hashing passwords.
	BcryptCost int
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string // Port for the HTTP server
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB      *PoolConfig
	Session *SessionConfig
	Auth    *AuthConfig
	Server  *ServerConfig
}

// getRequiredEnv reads a required environment variable, appending to the
// errors slice when it is missing. This promotes a "fail fast" approach for
// critical missing configuration.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// Uses defaultValue if not set; appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("15m", "24h"). Uses defaultValue if not set; appends an
// error if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// parseAndValidatePoolSize converts a string value to an integer, validates
// and clamps it between 5 and 100. Appends an error on parse failure.
func parseAndValidatePoolSize(valueStr string, varName string, errors *[]string) int {
	if valueStr == "" {
		*errors = append(*errors, fmt.Sprintf("missing value for pool size: %s", varName))
		return 5
	}
	size, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid pool size for %s: expected integer, got '%s': %v", varName, valueStr, err))
		return 5
	}

	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		size = 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		size = 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration.
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)

	poolSize := 5
	if poolSizeStr := getOptionalEnv("DB_POOL_SIZE", "10"); poolSizeStr != "" {
		poolSize = parseAndValidatePoolSize(poolSizeStr, "DB_POOL_SIZE", &errors)
	}

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Session configuration. The 24h default TTL matches the cookie max age
	// the game clients were built against.
	sessionStore := strings.ToLower(getOptionalEnv("SESSION_STORE", SessionStorePostgres))
	if sessionStore != SessionStorePostgres && sessionStore != SessionStoreMemory {
		errors = append(errors, fmt.Sprintf("invalid value for SESSION_STORE: expected %q or %q, got '%s'",
			SessionStorePostgres, SessionStoreMemory, sessionStore))
		sessionStore = SessionStorePostgres
	}
	sessionConfig := &SessionConfig{
		CookieName: getOptionalEnv("SESSION_COOKIE_NAME", "session_id"),
		TTL:        getOptionalEnvDuration("SESSION_TTL", 24*time.Hour, &errors),
		Secure:     getOptionalEnv("APP_ENV", "development") == "production",
		Store:      sessionStore,
	}

	// Auth configuration. Cost 10 is the work factor the user base's stored
	// hashes were created with.
	bcryptCost := getOptionalEnvInt("BCRYPT_COST", 10, &errors)
	if bcryptCost < 4 || bcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("invalid value for BCRYPT_COST: must be between 4 and 31, got %d", bcryptCost))
		bcryptCost = 10
	}
	authConfig := &AuthConfig{
		BcryptCost: bcryptCost,
	}

	// Server configuration.
	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:      dbConfig,
		Session: sessionConfig,
		Auth:    authConfig,
		Server:  serverConfig,
	}, nil
}
