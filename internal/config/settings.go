package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/handiism/bandcamp-track-extractor/internal/audio"
	"github.com/handiism/bandcamp-track-extractor/internal/http"
	ioutils "github.com/handiism/bandcamp-track-extractor/internal/io"
	"github.com/handiism/bandcamp-track-extractor/internal/logger"
	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Fetch settings
	UserAgent             string  `yaml:"user_agent" default:"BandcampTrackExtractor" validate:"required"`
	RequestTimeoutSeconds int     `yaml:"request_timeout_seconds" default:"60" validate:"gte=1,lte=600"`
	FetchMaxRetries       int     `yaml:"fetch_max_retries" default:"3" validate:"gte=0,lte=10"`
	FetchRetryCooldown    float64 `yaml:"fetch_retry_cooldown" default:"0.2" validate:"gte=0"`
	FetchRetryExponent    float64 `yaml:"fetch_retry_exponent" default:"4" validate:"gte=1"`
	RequestsPerSecond     float64 `yaml:"requests_per_second" default:"2" validate:"gte=0"`
	MaxConcurrentLookups  int     `yaml:"max_concurrent_lookups" default:"4" validate:"gte=1,lte=32"`
	ProxyAddress          string  `yaml:"proxy_address" validate:"omitempty,url"`

	// Output settings
	OutputFormat   string `yaml:"output_format" default:"yaml" validate:"oneof=yaml json"`
	FileNameFormat string `yaml:"file_name_format" default:"{artist} - {title}" validate:"required"`

	// Playlist settings
	PlaylistFormat string `yaml:"playlist_format" default:"m3u" validate:"oneof=m3u pls wpl zpl"`
	M3UExtended    bool   `yaml:"m3u_extended" default:"true"`

	// Tag settings
	SaveCoverArtInTags    bool `yaml:"save_cover_art_in_tags" default:"true"`
	CoverArtInTagsResize  bool `yaml:"cover_art_in_tags_resize" default:"true"`
	CoverArtInTagsMaxSize int  `yaml:"cover_art_in_tags_max_size" default:"1000" validate:"gte=16"`
	ConvertCoverArtToJPG  bool `yaml:"convert_cover_art_to_jpg" default:"true"`

	// Log settings
	LogLevel  string `yaml:"log_level" default:"info" validate:"oneof=debug info warn warning error"`
	LogOutput string `yaml:"log_output" default:"stderr" validate:"oneof=stdout stderr file discard"`
	LogFile   string `yaml:"log_file" validate:"required_if=LogOutput file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	s := &Settings{}
	if err := defaults.Set(s); err != nil {
		panic(err) // struct tags are static
	}
	return s
}

// Load reads settings from a YAML file.
//
// A missing file yields the defaults. Environment variables take precedence
// over file values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	if err == nil {
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	settings.OverrideFromEnv()

	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return settings, nil
}

// OverrideFromEnv overrides config values with environment variables.
func (s *Settings) OverrideFromEnv() {
	if v := os.Getenv("BANDCAMP_USER_AGENT"); v != "" {
		s.UserAgent = v
	}
	if v := os.Getenv("BANDCAMP_LOG_LEVEL"); v != "" {
		s.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("BANDCAMP_PROXY"); v != "" {
		s.ProxyAddress = v
	}
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding settings")
	}

	return os.WriteFile(path, data, 0644)
}

// ToHTTPOptions converts settings to http.Options.
func (s *Settings) ToHTTPOptions() http.Options {
	return http.Options{
		UserAgent:         s.UserAgent,
		Timeout:           time.Duration(s.RequestTimeoutSeconds) * time.Second,
		MaxRetries:        s.FetchMaxRetries,
		RetryCooldown:     s.FetchRetryCooldown,
		RetryExponent:     s.FetchRetryExponent,
		RequestsPerSecond: s.RequestsPerSecond,
		Proxy:             s.ProxyAddress,
	}
}

// ToLoggerConfig converts settings to logger.Config.
func (s *Settings) ToLoggerConfig() logger.Config {
	return logger.Config{
		Output: s.LogOutput,
		Level:  s.LogLevel,
		File:   s.LogFile,
	}
}

// ToFileNameConfig converts settings to a model.FileNameConfig whose
// extension matches the output format.
func (s *Settings) ToFileNameConfig() *model.FileNameConfig {
	return &model.FileNameConfig{
		Format: s.FileNameFormat + "." + s.OutputFormat,
	}
}

// ToCoverOptions converts the cover-art settings used for ID3 embedding.
func (s *Settings) ToCoverOptions() ioutils.CoverOptions {
	return ioutils.CoverOptions{
		Resize:       s.CoverArtInTagsResize,
		MaxSize:      s.CoverArtInTagsMaxSize,
		ConvertToJPG: s.ConvertCoverArtToJPG,
	}
}

// ToPlaylistFormat converts the playlist format name.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	switch s.PlaylistFormat {
	case "pls":
		return audio.FormatPLS
	case "wpl":
		return audio.FormatWPL
	case "zpl":
		return audio.FormatZPL
	default:
		return audio.FormatM3U
	}
}
