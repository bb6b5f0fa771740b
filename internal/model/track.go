package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TrackMetadata is the full record extracted from a single Bandcamp track page.
//
// TrackMetadata contains:
//   - Name, URL and uploader identity
//   - Publish date, both as published and parsed
//   - Artwork and avatar URLs
//   - Description, category, license and tags
//   - The single playable audio source
//   - Related items recommended by the page
//
// Example:
//
//	meta, err := track.Metadata()
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s by %s (%s)\n", meta.Name, meta.UploaderName, meta.License)
type TrackMetadata struct {
	Name              string        `json:"name" yaml:"name"`
	URL               string        `json:"url" yaml:"url"`
	UploaderURL       string        `json:"uploader_url" yaml:"uploader_url"`
	UploaderName      string        `json:"uploader_name" yaml:"uploader_name"`
	TextualUploadDate string        `json:"textual_upload_date" yaml:"textual_upload_date"`
	UploadDate        *time.Time    `json:"upload_date,omitempty" yaml:"upload_date,omitempty"`
	Duration          float64       `json:"duration" yaml:"duration"` // seconds, 0 when unknown
	ThumbnailURL      string        `json:"thumbnail_url" yaml:"thumbnail_url"`
	UploaderAvatarURL string        `json:"uploader_avatar_url" yaml:"uploader_avatar_url"`
	Description       Description   `json:"description" yaml:"description"`
	Category          string        `json:"category" yaml:"category"`
	License           string        `json:"license" yaml:"license"`
	Tags              []string      `json:"tags" yaml:"tags"`
	StreamType        StreamType    `json:"stream_type" yaml:"stream_type"`
	AudioStreams      []AudioStream `json:"audio_streams" yaml:"audio_streams"`
	VideoStreams      []VideoStream `json:"video_streams" yaml:"video_streams"`
	RelatedItems      []RelatedItem `json:"related_items" yaml:"related_items"`
	Warnings          []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"` // fields the page lacked
}

// HasArtwork returns true if the track has cover art available for download.
func (m *TrackMetadata) HasArtwork() bool {
	return m.ThumbnailURL != ""
}

// StreamURL returns the URL of the first audio source, or "" if there is none.
func (m *TrackMetadata) StreamURL() string {
	if len(m.AudioStreams) == 0 {
		return ""
	}
	return m.AudioStreams[0].URL
}

// FileNameConfig holds metadata file naming settings.
//
// The Format supports placeholders that are replaced with actual values:
//   - {title} - Track title
//   - {artist} - Uploader name
//   - {year}, {month}, {day} - Publish date components (empty when unknown)
//
// Example:
//
//	cfg := &FileNameConfig{Format: "{artist} - {title}.yaml"}
//	// Results in filenames like "The Beatles - Come Together.yaml"
type FileNameConfig struct {
	// Format is the template for metadata filenames, including the extension.
	Format string
}

// FilePath computes the path of the metadata file inside dir.
//
// Invalid filename characters are automatically replaced with underscores.
// Paths are truncated if they exceed Windows path length limits (260 for files).
func (m *TrackMetadata) FilePath(dir string, cfg *FileNameConfig) string {
	fileName := m.parseFileName(cfg)
	filePath := filepath.Join(dir, fileName)

	// Limit total path length for Windows compatibility (MAX_PATH = 260)
	if len(filePath) >= 260 {
		ext := filepath.Ext(filePath)
		maxLen := 11 - len(ext) // Leave room for path separator and extension
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(dir, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

// parseFileName computes the filename from the config template.
func (m *TrackMetadata) parseFileName(cfg *FileNameConfig) string {
	var year, month, day string
	if m.UploadDate != nil {
		year = m.UploadDate.Format("2006")
		month = m.UploadDate.Format("01")
		day = m.UploadDate.Format("02")
	}

	fileName := cfg.Format
	fileName = strings.ReplaceAll(fileName, "{year}", year)
	fileName = strings.ReplaceAll(fileName, "{month}", month)
	fileName = strings.ReplaceAll(fileName, "{day}", day)
	fileName = strings.ReplaceAll(fileName, "{artist}", m.UploaderName)
	fileName = strings.ReplaceAll(fileName, "{title}", m.Name)
	return SanitizeFileName(fileName)
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
