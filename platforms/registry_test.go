package platforms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsmood/ctv-vast-engine/errortypes"
)

func TestLookupKnownPlatform(t *testing.T) {
	registry := NewRegistry()

	spec, err := registry.Lookup("roku")
	require.NoError(t, err)
	assert.Equal(t, "roku", spec.ID)
	assert.Equal(t, "4.0", spec.VastVersion)
	assert.True(t, spec.InteractivitySupport)
	require.NotNil(t, spec.SkipOffsetSeconds)
	assert.Equal(t, 5, *spec.SkipOffsetSeconds)
}

func TestLookupUnknownPlatformFailsClosed(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Lookup("betamax")
	require.Error(t, err)

	var unknown *errortypes.UnknownPlatform
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, errortypes.UnknownPlatformErrorCode, errortypes.ReadCode(err))
}

func TestLookupEmptyIDFailsClosed(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Lookup("")
	var unknown *errortypes.UnknownPlatform
	assert.ErrorAs(t, err, &unknown)
}

func TestIDsSorted(t *testing.T) {
	registry := NewRegistry()

	ids := registry.IDs()
	assert.Equal(t, []string{"androidtv", "appletv", "firetv", "lg", "roku", "samsung", "vizio"}, ids)
}

func TestEveryCoreSpecIsWellFormed(t *testing.T) {
	registry := NewRegistry()

	for _, id := range registry.IDs() {
		spec, err := registry.Lookup(id)
		require.NoError(t, err)
		assert.NoError(t, validateSpec(spec), "platform %s", id)
		assert.NotEmpty(t, spec.VideoFormats, "platform %s", id)
	}
}

func TestNewRegistryFromDirOverride(t *testing.T) {
	dir := t.TempDir()
	override := `
name: Roku
vast_version: "4.2"
interactivity_support: false
max_duration_seconds: 15
video_formats:
  - codec: h264
    width: 1280
    height: 720
    fps: 30
    max_bitrate_mbps: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roku.yaml"), []byte(override), 0o644))

	registry, err := NewRegistryFromDir(dir)
	require.NoError(t, err)

	spec, err := registry.Lookup("roku")
	require.NoError(t, err)
	assert.Equal(t, "4.2", spec.VastVersion)
	assert.False(t, spec.InteractivitySupport)
	assert.Equal(t, 15, spec.MaxDurationSeconds)

	// Built-ins not overridden are untouched.
	firetv, err := registry.Lookup("firetv")
	require.NoError(t, err)
	assert.Equal(t, "4.0", firetv.VastVersion)
}

func TestNewRegistryFromDirNewPlatform(t *testing.T) {
	dir := t.TempDir()
	newPlatform := `
name: Comcast X1
vast_version: "3.0"
max_duration_seconds: 30
video_formats:
  - codec: h264
    width: 1920
    height: 1080
    fps: 30
    max_bitrate_mbps: 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x1.yaml"), []byte(newPlatform), 0o644))

	registry, err := NewRegistryFromDir(dir)
	require.NoError(t, err)

	spec, err := registry.Lookup("x1")
	require.NoError(t, err)
	assert.Equal(t, "x1", spec.ID)
	assert.False(t, spec.InteractivitySupport)
}

func TestNewRegistryFromDirRejectsBadSpec(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "bad_vast_version",
			file:    "weird.yaml",
			content: "vast_version: \"2.0\"\nmax_duration_seconds: 30\n",
		},
		{
			name:    "missing_duration",
			file:    "weird.yaml",
			content: "vast_version: \"4.0\"\n",
		},
		{
			name:    "mismatched_id",
			file:    "weird.yaml",
			content: "id: other\nvast_version: \"4.0\"\nmax_duration_seconds: 30\n",
		},
		{
			name:    "invalid_yaml",
			file:    "weird.yaml",
			content: "vast_version: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0o644))

			_, err := NewRegistryFromDir(dir)
			assert.Error(t, err)
		})
	}
}
