package dto

import (
	"encoding/json"
	"strings"
	"time"
)

// Mp3Codec is the file key under which Bandcamp publishes its streamable
// 128 kbps MP3.
const Mp3Codec = "mp3-128"

// BandcampTime is a custom time type that handles Bandcamp's date format.
//
// Unlike time.Time it never fails to decode: an empty, unparseable or
// non-string value leaves Valid false. Raw keeps the original text.
type BandcampTime struct {
	time.Time
	Raw   string
	Valid bool
}

// UnmarshalJSON parses Bandcamp's date format: "01 Jan 2023 00:00:00 GMT"
func (bt *BandcampTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*bt = BandcampTime{}
		return nil
	}

	bt.Raw = s
	bt.Time, bt.Valid = ParseTime(s)
	return nil
}

var timeLayouts = []string{
	"02 Jan 2006 15:04:05 MST",  // "01 Jan 2023 00:00:00 GMT"
	"2 Jan 2006 15:04:05 MST",   // "1 Jan 2023 00:00:00 GMT"
	time.RFC3339,                // Standard format
	"2006-01-02T15:04:05Z07:00", // ISO format
}

// ParseTime tries each known Bandcamp layout in turn.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// JSONTrackInfo represents the deserialized data-tralbum blob of a track page.
//
// Every field is optional on the wire, so everything is a pointer, an
// Optional value or a collection and absence is left to the caller to
// interpret. Fields that have a fallback use the Optional types, which read
// a value of the wrong JSON type as absent instead of failing the blob.
type JSONTrackInfo struct {
	URL     *string        `json:"url"`
	Artist  OptionalString `json:"artist"`
	ArtID   OptionalInt    `json:"art_id"`
	Current *JSONCurrent   `json:"current"`
	Tracks  []JSONTrack    `json:"trackinfo"`
}

// JSONCurrent contains the metadata of the item the page is about.
type JSONCurrent struct {
	Title       *string        `json:"title"`
	About       OptionalString `json:"about"`
	Lyrics      OptionalString `json:"lyrics"`
	Credits     OptionalString `json:"credits"`
	PublishDate *BandcampTime  `json:"publish_date"`
	LicenseType OptionalInt    `json:"license_type"`
}

// JSONTrack represents one trackinfo entry.
type JSONTrack struct {
	Duration OptionalFloat     `json:"duration"`
	File     map[string]string `json:"file"`
}

// FileURL returns the URL published for codec, fixing protocol-relative
// links. ok is false when the track has no such file (e.g. preorders).
func (jt *JSONTrack) FileURL(codec string) (url string, ok bool) {
	url, ok = jt.File[codec]
	if !ok || url == "" {
		return "", false
	}
	// Fix URL if it starts with "//"
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}
	return url, true
}
