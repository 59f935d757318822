package cachegw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CACHE_AUTH_TOKEN", "tkn")
	t.Setenv("S3_BUCKET", "build-cache")
	t.Setenv("CACHE_HTTP_PORT", "")
	t.Setenv("CACHE_PUBLIC_URL", "")
	t.Setenv("CACHE_NATS_URL", "")
	t.Setenv("CACHE_NATS_SUBJECT", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "tkn", cfg.AuthToken)
	assert.Equal(t, "build-cache", cfg.Bucket)
	assert.Equal(t, defaultHTTPPort, cfg.Port)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.PublicURL)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, defaultEventsSubject, cfg.EventsSubject)
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CACHE_HTTP_PORT", "9090")
	t.Setenv("CACHE_PUBLIC_URL", "https://cache.example.com/")
	t.Setenv("CACHE_NATS_URL", "nats://127.0.0.1:4222")
	t.Setenv("CACHE_NATS_SUBJECT", "ci.cache.usage")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://cache.example.com", cfg.PublicURL, "trailing slash must be trimmed")
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATSURL)
	assert.Equal(t, "ci.cache.usage", cfg.EventsSubject)
}

func TestLoadConfigRequiredValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CACHE_AUTH_TOKEN", "")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "CACHE_AUTH_TOKEN")

	setBaseEnv(t)
	t.Setenv("S3_BUCKET", "")

	_, err = LoadConfig()
	require.ErrorContains(t, err, "S3_BUCKET")
}

func TestLoadConfigInvalidPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CACHE_HTTP_PORT", "70000")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "CACHE_HTTP_PORT")
}
