package cachegw

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	defaultHTTPPort      = 8080
	defaultEventsSubject = "cachegw.artifacts.usage"
)

// Config controls runtime behaviour for the gateway handlers.
type Config struct {
	// AuthToken is the shared bearer token required on every request.
	AuthToken string
	// Bucket is the object-store bucket holding all artifacts.
	Bucket string
	// Port is the HTTP listen port.
	Port int
	// PublicURL is the externally reachable base URL used to build
	// self-referential artifact download links. No trailing slash.
	PublicURL string
	// NATSURL enables usage-event publishing when non-empty.
	NATSURL string
	// EventsSubject is the NATS subject usage events are published to.
	EventsSubject string
}

// LoadConfig resolves gateway configuration from the environment once at
// startup. Missing credentials fail here, not on individual requests.
func LoadConfig() (Config, error) {
	cfg := Config{}

	cfg.AuthToken = strings.TrimSpace(os.Getenv("CACHE_AUTH_TOKEN"))
	if cfg.AuthToken == "" {
		return Config{}, errors.New("CACHE_AUTH_TOKEN is required")
	}

	cfg.Bucket = strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if cfg.Bucket == "" {
		return Config{}, errors.New("S3_BUCKET is required")
	}

	cfg.Port = getEnvInt("CACHE_HTTP_PORT", defaultHTTPPort)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid CACHE_HTTP_PORT: %d", cfg.Port)
	}

	cfg.PublicURL = strings.TrimRight(getEnv("CACHE_PUBLIC_URL", fmt.Sprintf("http://127.0.0.1:%d", cfg.Port)), "/")
	if _, err := url.Parse(cfg.PublicURL); err != nil {
		return Config{}, fmt.Errorf("invalid CACHE_PUBLIC_URL: %w", err)
	}

	cfg.NATSURL = strings.TrimSpace(os.Getenv("CACHE_NATS_URL"))
	cfg.EventsSubject = getEnv("CACHE_NATS_SUBJECT", defaultEventsSubject)

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
