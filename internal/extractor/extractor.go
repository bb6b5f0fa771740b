// Package extractor defines the capability interface every supported
// content source implements and picks the implementation for a URL.
//
// Only Bandcamp track pages are supported:
//
//	ex, err := extractor.ForURL(pageURL, client)
//	if errors.Is(err, extractor.ErrUnsupportedURL) {
//	    return err
//	}
//	info, err := ex.Fetch(ctx)
package extractor

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/handiism/bandcamp-track-extractor/internal/bandcamp"
	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// ErrUnsupportedURL is returned by ForURL when no source handles the URL.
var ErrUnsupportedURL = errors.New("unsupported url")

// Fetcher performs a GET request and returns the response body as text.
type Fetcher = bandcamp.Fetcher

// StreamInfo is the read-only view of a fetched stream page.
type StreamInfo interface {
	Name() (string, error)
	URL() (string, error)
	UploaderURL() (string, error)
	UploaderName() string
	TextualUploadDate() string
	UploadDate() (time.Time, bool)
	Duration() float64
	ThumbnailURL() string
	UploaderAvatarURL() string
	Description() model.Description
	Category() (string, error)
	License() string
	Tags() []string
	AudioStreams() ([]model.AudioStream, error)
	VideoStreams() []model.VideoStream
	StreamType() model.StreamType
	RelatedItems() []model.RelatedItem
	Metadata() (*model.TrackMetadata, error)
}

// StreamExtractor fetches one page, once.
type StreamExtractor interface {
	// Fetch retrieves and validates the page.
	Fetch(ctx context.Context) (StreamInfo, error)
	// URL returns the page URL the extractor is bound to.
	URL() string
}

var _ StreamInfo = (*bandcamp.Track)(nil)

// ForURL returns the extractor for pageURL.
func ForURL(pageURL string, fetcher Fetcher) (StreamExtractor, error) {
	if bandcamp.IsTrackURL(pageURL) {
		return &bandcampExtractor{bandcamp.NewStreamExtractor(pageURL, fetcher)}, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedURL, "%q", pageURL)
}

type bandcampExtractor struct {
	*bandcamp.StreamExtractor
}

func (e *bandcampExtractor) Fetch(ctx context.Context) (StreamInfo, error) {
	track, err := e.StreamExtractor.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return track, nil
}
