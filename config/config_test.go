package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test_key")

	conf, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "clima", conf.ServiceName)
	assert.Equal(t, "0.0.0.0:3000", conf.ServerAddress)
	assert.Equal(t, "5432", conf.DBPort)
	assert.Equal(t, "http://api.openweathermap.org", conf.OpenWeatherBaseURL)
	assert.Equal(t, "test_key", conf.OpenWeatherAPIKey)
	assert.Equal(t, time.Duration(0), conf.ProviderTimeout)
	assert.Equal(t, 3*time.Second, conf.NotificationDuration)
	assert.Equal(t, 30*time.Minute, conf.SessionTTL)
	assert.Equal(t, time.Minute, conf.SessionCleanupInterval)
	assert.Equal(t, 175*time.Second, conf.HTTPTimeoutDuration())
	assert.False(t, conf.DatabaseEnabled())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test_key")
	t.Setenv("OPENWEATHER_BASE_URL", "http://localhost:9999")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("NOTIFICATION_DURATION", "1500ms")
	t.Setenv("DATABASE_HOST", "localhost")
	t.Setenv("HTTP_TIMEOUT", "10")

	conf, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", conf.OpenWeatherBaseURL)
	assert.Equal(t, 5*time.Second, conf.ProviderTimeout)
	assert.Equal(t, 1500*time.Millisecond, conf.NotificationDuration)
	assert.Equal(t, 10*time.Second, conf.HTTPTimeoutDuration())
	assert.True(t, conf.DatabaseEnabled())
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "OPENWEATHER_API_KEY is required")
}

func TestLoadConfigRejectsNonPositiveNotificationDuration(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test_key")
	t.Setenv("NOTIFICATION_DURATION", "0s")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "NOTIFICATION_DURATION must be positive")
}
