package model

// StreamType describes what kind of content a stream page carries.
type StreamType string

const (
	// StreamTypeAudio is an audio-only stream. Bandcamp tracks are always this.
	StreamTypeAudio StreamType = "audio"
)

// MediaFormat identifies the container/codec of a stream.
type MediaFormat string

const (
	// MediaFormatMP3 is MPEG-1 Audio Layer III.
	MediaFormatMP3 MediaFormat = "mp3"
)

// MimeType returns the MIME type for the format.
func (f MediaFormat) MimeType() string {
	switch f {
	case MediaFormatMP3:
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// AudioStream is one playable audio source.
type AudioStream struct {
	URL     string      `json:"url" yaml:"url"`
	Format  MediaFormat `json:"format" yaml:"format"`
	Bitrate int         `json:"bitrate" yaml:"bitrate"` // kbps
}

// VideoStream is one playable video source. Bandcamp never provides any.
type VideoStream struct {
	URL    string      `json:"url" yaml:"url"`
	Format MediaFormat `json:"format" yaml:"format"`
}

// Description is a text body together with its markup type.
type Description struct {
	Content string `json:"content" yaml:"content"`
	Type    string `json:"type" yaml:"type"`
}

// DescriptionPlainText marks a Description whose content is plain text.
const DescriptionPlainText = "plain_text"

// RelatedItem is a lightweight descriptor of content recommended by a page.
type RelatedItem struct {
	Title        string `json:"title" yaml:"title"`
	URL          string `json:"url" yaml:"url"`
	ThumbnailURL string `json:"thumbnail_url" yaml:"thumbnail_url"`
	UploaderName string `json:"uploader_name,omitempty" yaml:"uploader_name,omitempty"`
}
