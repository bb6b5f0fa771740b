// Package config provides configuration management for bandcamp-track-extractor.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values (struct tags, via creasty/defaults)
//   - Validation (go-playground/validator)
//   - Environment overrides (BANDCAMP_USER_AGENT, BANDCAMP_LOG_LEVEL, BANDCAMP_PROXY)
//   - Conversion to the option types of other packages
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // invalid file; a missing file yields defaults
//	}
//
// # Saving Settings
//
//	settings.OutputFormat = "json"
//	err := settings.Save("/path/to/config.yaml")
package config
