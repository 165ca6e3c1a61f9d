package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetupViper(v, "")

	cfg, err := New(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ExternalURL)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 6060, cfg.AdminPort)
	assert.False(t, cfg.EnableGzip)
	assert.Equal(t, "./creatives", cfg.Creatives.Directory)
	assert.Equal(t, 0, cfg.Metrics.Prometheus.Port)
	assert.True(t, cfg.CORS.Enabled)
}

func TestTrackingOriginFallsBackToExternalURL(t *testing.T) {
	cfg := Configuration{ExternalURL: "https://ads.example.com"}
	assert.Equal(t, "https://ads.example.com", cfg.TrackingOrigin())

	cfg.Tracking.Origin = "https://track.example.com"
	assert.Equal(t, "https://track.example.com", cfg.TrackingOrigin())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(v *viper.Viper)
		expected string
	}{
		{
			name:     "bad_port",
			mutate:   func(v *viper.Viper) { v.Set("port", 0) },
			expected: "port must be positive",
		},
		{
			name:     "bad_admin_port",
			mutate:   func(v *viper.Viper) { v.Set("admin_port", -1) },
			expected: "admin_port must be positive",
		},
		{
			name: "no_origin",
			mutate: func(v *viper.Viper) {
				v.Set("external_url", "")
				v.Set("tracking.origin", "")
			},
			expected: "external_url or tracking.origin must be set",
		},
		{
			name:     "no_creatives_dir",
			mutate:   func(v *viper.Viper) { v.Set("creatives.directory", "") },
			expected: "creatives.directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetupViper(v, "")
			tt.mutate(v)

			_, err := New(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("CTV_PORT", "9100")

	v := viper.New()
	SetupViper(v, "")

	cfg, err := New(v)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
}
