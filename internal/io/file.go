package ioutils

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// Metadata output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an output format other than yaml or json.
var ErrUnknownFormat = errors.New("unknown output format")

// EncodeMetadata serializes meta as YAML or JSON.
//
// JSON output is indented with two spaces and ends with a newline so it can
// be printed or written as-is.
func EncodeMetadata(meta *model.TrackMetadata, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(meta)
		if err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode json")
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// WriteMetadata encodes meta and writes it to path, creating parent
// directories as needed.
//
// Example:
//
//	path := meta.FilePath("/out", settings.ToFileNameConfig())
//	err := WriteMetadata(ctx, path, meta, settings.OutputFormat)
func WriteMetadata(ctx context.Context, path string, meta *model.TrackMetadata, format string) error {
	data, err := EncodeMetadata(meta, format)
	if err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return WriteFile(ctx, path, data)
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. A cancelled ctx skips the write.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, "create directory %s", path)
	}
	return nil
}
