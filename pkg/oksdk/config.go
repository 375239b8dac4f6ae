package oksdk

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIServer is the production API host.
const DefaultAPIServer = "https://api.ok.ru"

// Config holds the application identity shared by every session created from
// one SDKClient. It replaces process-wide settings: pass it explicitly.
type Config struct {
	ApplicationID  string        // Required for token refresh and code exchange (client_id)
	ApplicationKey string        // Required: public key sent with every call
	SecretKey      string        // Required: application secret, never sent in clear
	APIServer      string        // Optional: base URL (default: https://api.ok.ru)
	RedirectURI    string        // Optional: redirect_uri used for authorization code exchange
	HTTPTimeout    time.Duration // Optional: per request timeout (default: 10s)
	RateLimit      float64       // Optional: client-side requests per second (0 disables)
	RateBurst      int           // Optional: burst for the limiter (default: 1)
}

// LoadConfig builds a Config from OK_* environment variables.
func LoadConfig() Config {
	cfg := Config{
		ApplicationID:  os.Getenv("OK_APPLICATION_ID"),
		ApplicationKey: os.Getenv("OK_APPLICATION_KEY"),
		SecretKey:      os.Getenv("OK_SECRET_KEY"),
		APIServer:      getEnvOrDefault("OK_API_SERVER", DefaultAPIServer),
		RedirectURI:    os.Getenv("OK_REDIRECT_URI"),
		HTTPTimeout:    getEnvDurationOrDefault("OK_HTTP_TIMEOUT", 10*time.Second),
		RateLimit:      getEnvFloatOrDefault("OK_RATE_LIMIT_RPS", 0),
		RateBurst:      getEnvIntOrDefault("OK_RATE_LIMIT_BURST", 1),
	}

	return cfg
}

// Validate reports configuration that cannot produce a signed request.
func (c Config) Validate() error {
	var errs []error
	if c.ApplicationKey == "" {
		errs = append(errs, errors.New("application key is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate limit cannot be negative"))
	}
	return errors.Join(errs...)
}

func (c Config) withDefaults() Config {
	c.APIServer = strings.TrimSuffix(c.APIServer, "/")
	if c.APIServer == "" {
		c.APIServer = DefaultAPIServer
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 1
	}
	return c
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "5s", "500ms")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
