package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/bandcamp-track-extractor/internal/audio"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "BandcampTrackExtractor", s.UserAgent)
	assert.Equal(t, 60, s.RequestTimeoutSeconds)
	assert.Equal(t, 3, s.FetchMaxRetries)
	assert.Equal(t, 4, s.MaxConcurrentLookups)
	assert.Equal(t, "yaml", s.OutputFormat)
	assert.True(t, s.M3UExtended)
	assert.NoError(t, s.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().UserAgent, s.UserAgent)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
user_agent: custom-agent
output_format: json
playlist_format: pls
m3u_extended: false
max_concurrent_lookups: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom-agent", s.UserAgent)
	assert.Equal(t, "json", s.OutputFormat)
	assert.Equal(t, audio.FormatPLS, s.ToPlaylistFormat())
	assert.False(t, s.M3UExtended)
	assert.Equal(t, 8, s.MaxConcurrentLookups)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60, s.RequestTimeoutSeconds)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "user_agent: [unterminated"},
		{"bad output format", "output_format: xml"},
		{"zero concurrency", "max_concurrent_lookups: 0"},
		{"file output without path", "log_output: file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BANDCAMP_USER_AGENT", "env-agent")
	t.Setenv("BANDCAMP_LOG_LEVEL", "DEBUG")

	s, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-agent", s.UserAgent)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	s := DefaultSettings()
	s.OutputFormat = "json"
	s.FileNameFormat = "{title}"
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", loaded.OutputFormat)
	assert.Equal(t, "{title}.json", loaded.ToFileNameConfig().Format)
}

func TestToHTTPOptions(t *testing.T) {
	s := DefaultSettings()
	s.ProxyAddress = "http://127.0.0.1:8080"

	opts := s.ToHTTPOptions()
	assert.Equal(t, 60*time.Second, opts.Timeout)
	assert.Equal(t, "http://127.0.0.1:8080", opts.Proxy)
	assert.Equal(t, s.UserAgent, opts.UserAgent)
}

func TestToCoverOptions(t *testing.T) {
	s := DefaultSettings()
	s.CoverArtInTagsMaxSize = 500

	opts := s.ToCoverOptions()
	assert.True(t, opts.Resize)
	assert.Equal(t, 500, opts.MaxSize)
	assert.True(t, opts.ConvertToJPG)
}

func TestToFileNameConfig(t *testing.T) {
	s := DefaultSettings()
	s.OutputFormat = "json"

	assert.Equal(t, "{artist} - {title}.json", s.ToFileNameConfig().Format)
}
