package bandcamp

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/handiism/bandcamp-track-extractor/internal/bandcamp/dto"
	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// mp3Bitrate is the bitrate, in kbps, of the dto.Mp3Codec file.
const mp3Bitrate = 128

// Fetcher performs a GET request and returns the response body as text.
//
// Retries, timeouts and cancellation are the fetcher's business; the
// extractor calls it exactly once.
type Fetcher interface {
	GetString(ctx context.Context, url string) (string, error)
}

// State is the lifecycle position of a StreamExtractor.
type State int

const (
	// StateCreated is the initial state: nothing fetched yet.
	StateCreated State = iota
	// StateFetched means Fetch succeeded and a Track is available.
	StateFetched
	// StateFailed means Fetch failed. The extractor cannot be reused.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateFetched:
		return "fetched"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StreamExtractor extracts a single Bandcamp track page.
//
// One StreamExtractor is bound to one URL and fetches it at most once:
//
//	ex := bandcamp.NewStreamExtractor("https://artist.bandcamp.com/track/name", client)
//
//	track, err := ex.Fetch(ctx)
//	if err != nil {
//	    var exErr *bandcamp.ExtractionError
//	    if errors.As(err, &exErr) {
//	        // an album page was passed in
//	    }
//	    return err
//	}
//
//	name, _ := track.Name()
//	fmt.Println(name, track.License())
type StreamExtractor struct {
	url     string
	fetcher Fetcher
	state   State
	track   *Track
}

// NewStreamExtractor creates an extractor for pageURL that will fetch it
// through fetcher.
func NewStreamExtractor(pageURL string, fetcher Fetcher) *StreamExtractor {
	return &StreamExtractor{
		url:     pageURL,
		fetcher: fetcher,
		state:   StateCreated,
	}
}

// URL returns the page URL the extractor is bound to.
func (e *StreamExtractor) URL() string {
	return e.url
}

// State returns the current lifecycle state.
func (e *StreamExtractor) State() State {
	return e.state
}

// Track returns the fetched track, or nil unless State is StateFetched.
func (e *StreamExtractor) Track() *Track {
	return e.track
}

// Fetch downloads the page and parses it into a Track.
//
// This method performs the following steps:
//  1. Fetches the page HTML through the Fetcher
//  2. Builds the DOM tree
//  3. Locates and decodes the data-tralbum JSON
//  4. Rejects pages listing more than one track
//
// Returns ErrAlreadyFetched if called a second time, a *ParsingError if the
// page has no usable data-tralbum blob, and an *ExtractionError if the page
// is a multi-track release.
func (e *StreamExtractor) Fetch(ctx context.Context) (*Track, error) {
	if e.state != StateCreated {
		return nil, errors.Wrapf(ErrAlreadyFetched, "state %s", e.state)
	}

	htmlContent, err := e.fetcher.GetString(ctx, e.url)
	if err != nil {
		e.state = StateFailed
		return nil, errors.Wrapf(err, "fetching %s", e.url)
	}

	track, err := ParseTrack(ctx, e.url, htmlContent)
	if err != nil {
		e.state = StateFailed
		return nil, err
	}

	e.track = track
	e.state = StateFetched
	return track, nil
}

// Track is a fetched Bandcamp track page.
//
// Every accessor is read-only and idempotent: the DOM tree and the decoded
// blob are fixed when the Track is created. Fields with a documented
// fallback never fail; Name, URL, UploaderURL, Category and AudioStreams
// return a *ParsingError when the page lacks what they need.
type Track struct {
	pageURL string
	base    *url.URL
	doc     *goquery.Document
	info    *dto.JSONTrackInfo
	current *dto.JSONCurrent
	log     zerolog.Logger
}

// ParseTrack builds a Track from the HTML of pageURL and runs the
// track-count gate.
func ParseTrack(ctx context.Context, pageURL, htmlContent string) (*Track, error) {
	logger := zerolog.Ctx(ctx).With().Str("url", pageURL).Logger()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, malformed("html", err)
	}

	info, err := parseTrackInfo(doc)
	if err != nil {
		logger.Debug().Err(err).Msg("no track data on page")
		return nil, err
	}

	if err := validateTrackCount(pageURL, info); err != nil {
		logger.Warn().Int("tracks", len(info.Tracks)).Msg("rejecting multi-track page")
		return nil, err
	}

	current := info.Current
	if current == nil {
		current = &dto.JSONCurrent{}
	}

	// Relative related-item links cannot be resolved without a base.
	base, _ := url.Parse(pageURL)

	return &Track{
		pageURL: pageURL,
		base:    base,
		doc:     doc,
		info:    info,
		current: current,
		log:     logger,
	}, nil
}

// validateTrackCount rejects album pages presented as tracks.
func validateTrackCount(pageURL string, info *dto.JSONTrackInfo) error {
	if len(info.Tracks) > 1 {
		return &ExtractionError{URL: pageURL, Err: ErrMultiTrackPage}
	}
	return nil
}

// Name returns the track title.
func (t *Track) Name() (string, error) {
	if t.current.Title == nil {
		return "", missing("title")
	}
	return *t.current.Title, nil
}

// URL returns the canonical track URL, always with an https scheme.
func (t *Track) URL() (string, error) {
	if t.info.URL == nil {
		return "", missing("url")
	}
	return secureURL(*t.info.URL), nil
}

// UploaderURL returns the root URL of the artist's Bandcamp site.
func (t *Track) UploaderURL() (string, error) {
	u, err := t.URL()
	if err != nil {
		return "", err
	}
	return UploaderURL(u)
}

// UploaderName returns the artist name, or "" if the page has none.
func (t *Track) UploaderName() string {
	return t.info.Artist.Value
}

// TextualUploadDate returns the publish date exactly as the page states it.
func (t *Track) TextualUploadDate() string {
	if t.current.PublishDate == nil {
		return ""
	}
	return t.current.PublishDate.Raw
}

// UploadDate returns the parsed publish date. ok is false when the page has
// no date or it cannot be parsed.
func (t *Track) UploadDate() (date time.Time, ok bool) {
	return ParseDate(t.TextualUploadDate())
}

// Duration returns the track length in seconds, or 0 when unknown.
func (t *Track) Duration() float64 {
	if len(t.info.Tracks) == 0 {
		return 0
	}
	return t.info.Tracks[0].Duration.Value
}

// ThumbnailURL returns the large artwork URL, or "" if the track has no art.
func (t *Track) ThumbnailURL() string {
	if !t.info.ArtID.Valid {
		return ""
	}
	return ImageURL(t.info.ArtID.Value, true)
}

// UploaderAvatarURL returns the artist's band photo, or "" if there is none.
func (t *Track) UploaderAvatarURL() string {
	src, _ := t.doc.Find(".band-photo").First().Attr("src")
	return src
}

// Description joins about, lyrics and credits, skipping empty parts,
// with a blank line between them.
func (t *Track) Description() model.Description {
	return model.Description{
		Content: JoinNonEmpty("\n\n",
			t.current.About.Value,
			t.current.Lyrics.Value,
			t.current.Credits.Value,
		),
		Type: model.DescriptionPlainText,
	}
}

// Category returns the first tag of the page's tag list, which Bandcamp
// fills with the artist's genre.
func (t *Track) Category() (string, error) {
	tags := t.doc.Find(".tralbum-tags").First()
	if tags.Length() == 0 {
		return "", missing("category")
	}
	tag := tags.Find(".tag").First()
	if tag.Length() == 0 {
		return "", missing("category")
	}
	return strings.TrimSpace(tag.Text()), nil
}

// License returns the license name of the track.
func (t *Track) License() string {
	return LicenseLabel(t.current.LicenseType)
}

// Tags returns the text of every keyword element in document order.
// Duplicates are kept.
func (t *Track) Tags() []string {
	tags := []string{}
	t.doc.Find(`[itemprop="keywords"]`).Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, strings.TrimSpace(s.Text()))
	})
	return tags
}

// AudioStreams returns the single 128 kbps MP3 stream of the track.
//
// Bandcamp publishes no other codec or bitrate for streaming. Tracks that
// are not yet streamable (preorders) carry no file and yield ErrDataMissing.
func (t *Track) AudioStreams() ([]model.AudioStream, error) {
	if len(t.info.Tracks) == 0 {
		return nil, missing("trackinfo")
	}

	streamURL, ok := t.info.Tracks[0].FileURL(dto.Mp3Codec)
	if !ok {
		return nil, missing("trackinfo file " + dto.Mp3Codec)
	}

	return []model.AudioStream{{
		URL:     streamURL,
		Format:  model.MediaFormatMP3,
		Bitrate: mp3Bitrate,
	}}, nil
}

// VideoStreams always returns an empty list.
func (t *Track) VideoStreams() []model.VideoStream {
	return []model.VideoStream{}
}

// StreamType always returns model.StreamTypeAudio.
func (t *Track) StreamType() model.StreamType {
	return model.StreamTypeAudio
}

// Metadata collects every field into one record.
//
// It fails only when the track cannot be identified: Name, URL or
// UploaderURL. A missing category or stream leaves that field empty and is
// reported in the record's Warnings.
func (t *Track) Metadata() (*model.TrackMetadata, error) {
	name, err := t.Name()
	if err != nil {
		return nil, err
	}
	canonical, err := t.URL()
	if err != nil {
		return nil, err
	}
	uploaderURL, err := t.UploaderURL()
	if err != nil {
		return nil, err
	}
	var warnings []string
	category, err := t.Category()
	if err != nil {
		t.log.Debug().Err(err).Msg("track has no category")
		warnings = append(warnings, err.Error())
	}
	audio, err := t.AudioStreams()
	if err != nil {
		t.log.Debug().Err(err).Msg("track has no stream")
		warnings = append(warnings, err.Error())
		audio = []model.AudioStream{}
	}

	meta := &model.TrackMetadata{
		Name:              name,
		URL:               canonical,
		UploaderURL:       uploaderURL,
		UploaderName:      t.UploaderName(),
		TextualUploadDate: t.TextualUploadDate(),
		Duration:          t.Duration(),
		ThumbnailURL:      t.ThumbnailURL(),
		UploaderAvatarURL: t.UploaderAvatarURL(),
		Description:       t.Description(),
		Category:          category,
		License:           t.License(),
		Tags:              t.Tags(),
		StreamType:        t.StreamType(),
		AudioStreams:      audio,
		VideoStreams:      t.VideoStreams(),
		RelatedItems:      t.RelatedItems(),
		Warnings:          warnings,
	}
	if date, ok := t.UploadDate(); ok {
		meta.UploadDate = &date
	}

	return meta, nil
}
