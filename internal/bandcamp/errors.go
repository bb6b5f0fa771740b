package bandcamp

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrDataMissing marks a structural element the page was expected to carry
	// but does not: the data-tralbum attribute, a required JSON field, or a
	// DOM node.
	//
	// This typically occurs when:
	//   - The URL is not a Bandcamp track page
	//   - The HTML structure has changed unexpectedly
	ErrDataMissing = errors.New("data missing")

	// ErrDataMalformed marks an element that is present but cannot be used,
	// such as invalid JSON or a URL without a host.
	ErrDataMalformed = errors.New("data malformed")

	// ErrMultiTrackPage is returned by Fetch when the page lists more than one
	// track. Such a page is an album, not a track.
	ErrMultiTrackPage = errors.New("page is actually an album, not a track")

	// ErrAlreadyFetched is returned when Fetch is called more than once.
	ErrAlreadyFetched = errors.New("page already fetched")
)

// ParsingError reports that a structural expectation about the embedded
// JSON payload or the DOM was violated.
//
// Cause is always ErrDataMissing or ErrDataMalformed, so callers can tell
// the two apart with errors.Is:
//
//	_, err := bandcamp.ParseTrackInfo(html)
//	if errors.Is(err, bandcamp.ErrDataMissing) {
//	    // not a Bandcamp page, or the site changed
//	}
type ParsingError struct {
	// Field names what was being parsed, e.g. "data-tralbum" or "category".
	Field string
	// Cause is ErrDataMissing or ErrDataMalformed.
	Cause error
	// Err is the underlying error, if any.
	Err error
}

func (e *ParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %s: %v: %v", e.Field, e.Cause, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Field, e.Cause)
}

// Unwrap exposes both the cause and the underlying error.
func (e *ParsingError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Cause, e.Err}
	}
	return []error{e.Cause}
}

func missing(field string) error {
	return &ParsingError{Field: field, Cause: ErrDataMissing}
}

func malformed(field string, err error) error {
	return &ParsingError{Field: field, Cause: ErrDataMalformed, Err: err}
}

// ExtractionError reports that the fetched page is not what the extractor
// handles. It is only ever returned by Fetch.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
