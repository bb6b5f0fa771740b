package bandcamp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/handiism/bandcamp-track-extractor/internal/bandcamp/dto"
)

const (
	imageURLStart = "https://f4.bcbits.com/img/"
	// imageURLEnd selects the large (1200px) variant.
	imageURLEnd = "_10.jpg"
)

// ImageURL builds the URL of a Bandcamp image from its numeric id.
//
// Album and track artwork ids live under an "a" prefix; other images
// (band photos, for example) do not.
//
// Example:
//
//	ImageURL(1234567890, true) // "https://f4.bcbits.com/img/a1234567890_10.jpg"
func ImageURL(id int64, album bool) string {
	prefix := ""
	if album {
		prefix = "a"
	}
	return fmt.Sprintf("%s%s%010d%s", imageURLStart, prefix, id, imageURLEnd)
}

// ParseDate parses a Bandcamp date such as "01 Jan 2023 00:00:00 GMT".
// ok is false for empty or unrecognized text.
func ParseDate(text string) (t time.Time, ok bool) {
	return dto.ParseTime(text)
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// UploaderURL reduces a Bandcamp page URL to the artist's root page:
//
//	https://artist.bandcamp.com/track/name -> https://artist.bandcamp.com/
//
// The URL must split into at least three "/" separated segments with a
// non-empty host; anything shorter is reported as ErrDataMalformed.
func UploaderURL(pageURL string) (string, error) {
	// https: (/) (/) artist.bandcamp.com (/) and leave out the rest
	parts := strings.Split(pageURL, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", malformed("uploader url", errors.Newf("%q has no host segment", pageURL))
	}
	return "https://" + parts[2] + "/", nil
}

// IsTrackURL reports whether rawURL points at a single Bandcamp track page.
//
// Artists may use custom domains, so only the path is checked:
//
//	https://artist.bandcamp.com/track/name  -> true
//	https://music.example.com/track/name    -> true
//	https://artist.bandcamp.com/album/name  -> false
func IsTrackURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.HasPrefix(u.Path, "/track/")
}

// secureURL forces the https scheme onto an absolute or protocol-relative
// URL. Anything without a host is returned unchanged.
func secureURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = "https"
	return u.String()
}
