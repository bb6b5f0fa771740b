// Package bandcamp extracts single-track metadata from Bandcamp track pages.
//
// # Track Page Extraction
//
// Use a StreamExtractor to fetch and parse one track page:
//
//	ex := bandcamp.NewStreamExtractor("https://artist.bandcamp.com/track/name", client)
//	track, err := ex.Fetch(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	meta, err := track.Metadata()
//
// An extractor fetches once. Pages listing more than one track are rejected
// with an *ExtractionError wrapping ErrMultiTrackPage.
//
// # Bandcamp Data Format
//
// Bandcamp embeds track data as JSON in the HTML page within a
// `data-tralbum` attribute. ParseTrackInfo extracts and decodes that JSON;
// the remaining fields (avatar, genre, tags, recommendations) come from the
// DOM through goquery.
//
// # Errors
//
// Structural problems are reported as *ParsingError with a cause of
// ErrDataMissing or ErrDataMalformed. Fields with a defined fallback
// (avatar, thumbnail, license, description, tags, date) never fail.
package bandcamp
