package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default provider endpoints. All of them can be redirected through the
// environment, which the tests use to point at local stubs.
const (
	DefaultIPAPIURL   = "http://ip-api.com/json"
	DefaultIPInfoURL  = "https://ipinfo.io"
	DefaultIPifyURL   = "https://api.ipify.org"
	DefaultHTTPBinURL = "https://httpbin.org/ip"
)

type Config struct {
	DataDir       string
	IPAPIURL      string
	IPInfoURL     string
	IPifyURL      string
	HTTPBinURL    string
	LookupTimeout time.Duration
	Port          string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine for a local tool; every key has a default.
	_ = godotenv.Load()

	config := &Config{
		DataDir:       getEnv("OSINT_DATA_DIR", "osint_data"),
		IPAPIURL:      getEnv("IP_API_URL", DefaultIPAPIURL),
		IPInfoURL:     getEnv("IPINFO_URL", DefaultIPInfoURL),
		IPifyURL:      getEnv("IPIFY_URL", DefaultIPifyURL),
		HTTPBinURL:    getEnv("HTTPBIN_URL", DefaultHTTPBinURL),
		LookupTimeout: 10 * time.Second,
		Port:          getEnv("PORT", "3008"),
	}

	if raw := os.Getenv("LOOKUP_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, &InvalidValueError{Key: "LOOKUP_TIMEOUT_SECONDS", Value: raw}
		}
		config.LookupTimeout = time.Duration(secs) * time.Second
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// InvalidValueError reports an environment variable that could not be parsed
type InvalidValueError struct {
	Key   string
	Value string
}

func (e *InvalidValueError) Error() string {
	return "invalid value for " + e.Key + ": " + e.Value
}
