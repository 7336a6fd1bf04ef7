// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// SecureIDKeys is the key ring descriptor in "version:base64,version:base64" format.
	// Values are KMS ciphertexts when KMS is configured and raw 32-byte keys otherwise.
	SecureIDKeys string
	// SecureIDPrimaryKeyVersion is the key version new tokens are sealed with.
	SecureIDPrimaryKeyVersion string
	// SecureIDAlgorithm is the AEAD algorithm ("aes-gcm" or "chacha20-poly1305").
	SecureIDAlgorithm string
	// SecureIDDefaultTTL is applied to HTTP token requests without an expiration. Zero means no expiration.
	SecureIDDefaultTTL time.Duration

	// KMSProvider is the KMS provider to use (e.g., "localsecrets", "gcpkms", "awskms").
	KMSProvider string
	// KMSKeyURI is the URI of the KMS key wrapping the key ring.
	KMSKeyURI string

	// RateLimitResolveEnabled indicates whether per-IP rate limiting of the resolve endpoint is enabled.
	RateLimitResolveEnabled bool
	// RateLimitResolveRequestsPerSec is the number of resolve requests allowed per second per IP.
	RateLimitResolveRequestsPerSec float64
	// RateLimitResolveBurst is the burst size for resolve rate limiting.
	RateLimitResolveBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv(godotenv.Load)

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Secure IDs
		SecureIDKeys:              env.GetString("SECURE_ID_KEYS", ""),
		SecureIDPrimaryKeyVersion: env.GetString("SECURE_ID_PRIMARY_KEY_VERSION", ""),
		SecureIDAlgorithm:         env.GetString("SECURE_ID_ALGORITHM", string(cryptoDomain.AESGCM)),
		SecureIDDefaultTTL:        env.GetDuration("SECURE_ID_DEFAULT_TTL_SECONDS", 0, time.Second),

		// KMS configuration
		KMSProvider: env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:   env.GetString("KMS_KEY_URI", ""),

		// Rate Limiting for the resolve endpoint (IP-based, unauthenticated)
		RateLimitResolveEnabled:        env.GetBool("RATE_LIMIT_RESOLVE_ENABLED", true),
		RateLimitResolveRequestsPerSec: env.GetFloat64("RATE_LIMIT_RESOLVE_REQUESTS_PER_SEC", 10.0),
		RateLimitResolveBurst:          env.GetInt("RATE_LIMIT_RESOLVE_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "secureid"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// KeyRingConfig returns the settings needed to load the secure id key ring.
func (c *Config) KeyRingConfig() cryptoDomain.KeyRingConfig {
	return cryptoDomain.KeyRingConfig{
		Keys:           c.SecureIDKeys,
		PrimaryVersion: c.SecureIDPrimaryKeyVersion,
		KMSProvider:    c.KMSProvider,
		KMSKeyURI:      c.KMSKeyURI,
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// LoadKeyRingConfig re-reads only the key ring settings. Values from the .env file override the
// process environment so a SIGHUP picks up an edited file.
func LoadKeyRingConfig() cryptoDomain.KeyRingConfig {
	loadDotEnv(godotenv.Overload)

	return cryptoDomain.KeyRingConfig{
		Keys:           env.GetString("SECURE_ID_KEYS", ""),
		PrimaryVersion: env.GetString("SECURE_ID_PRIMARY_KEY_VERSION", ""),
		KMSProvider:    env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:      env.GetString("KMS_KEY_URI", ""),
	}
}

// loadDotEnv searches for a .env file from the current directory up to the root
// and applies the first one found with load.
func loadDotEnv(load func(filenames ...string) error) {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
