package lookup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/bandcamp-track-extractor/internal/config"
	"github.com/handiism/bandcamp-track-extractor/internal/extractor"
	ioutils "github.com/handiism/bandcamp-track-extractor/internal/io"
	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a lookup progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Client fetches pages and binary resources. *http.Client satisfies it.
type Client interface {
	extractor.Fetcher
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// Result is the outcome of looking up one URL.
type Result struct {
	URL      string
	Metadata *model.TrackMetadata
	Err      error
}

// Manager extracts metadata for many track URLs concurrently.
//
// Each URL gets its own extractor; a failing URL is reported in its Result
// and does not stop the others.
type Manager struct {
	settings     *config.Settings
	client       Client
	imageService *ioutils.ImageService

	total int32
	done  int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new lookup Manager. onProgress may be nil.
func NewManager(settings *config.Settings, client Client, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		client:       client,
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Lookup fetches and extracts every URL, at most MaxConcurrentLookups at a
// time. Results keep the order of urls.
//
// The returned error is non-nil only when ctx is cancelled; per-URL failures
// live in the results.
func (m *Manager) Lookup(ctx context.Context, urls []string) ([]Result, error) {
	results := make([]Result, len(urls))
	atomic.StoreInt32(&m.total, int32(len(urls)))
	atomic.StoreInt32(&m.done, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentLookups)

	for i, pageURL := range urls {
		i, pageURL := i, pageURL
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{URL: pageURL, Err: err}
				return err
			}
			results[i] = m.lookupOne(gctx, pageURL)
			atomic.AddInt32(&m.done, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (m *Manager) lookupOne(ctx context.Context, pageURL string) Result {
	log := zerolog.Ctx(ctx).With().Str("url", pageURL).Logger()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching track info: %s", pageURL), Level: LevelVerbose})

	ex, err := extractor.ForURL(pageURL, m.client)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", pageURL, err), Level: LevelWarning})
		return Result{URL: pageURL, Err: err}
	}

	info, err := ex.Fetch(log.WithContext(ctx))
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s: %v", pageURL, err), Level: LevelError})
		return Result{URL: pageURL, Err: err}
	}

	meta, err := info.Metadata()
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error parsing %s: %v", pageURL, err), Level: LevelError})
		return Result{URL: pageURL, Err: err}
	}

	for _, warning := range meta.Warnings {
		log.Warn().Str("warning", warning).Msg("incomplete track page")
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s", pageURL, warning), Level: LevelWarning})
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found track: %s - %s", meta.UploaderName, meta.Name), Level: LevelSuccess})
	return Result{URL: pageURL, Metadata: meta}
}

// Cover downloads the track artwork and prepares it for embedding according
// to the cover-art settings. It returns nil, nil when the track has no
// artwork or cover embedding is disabled.
func (m *Manager) Cover(ctx context.Context, meta *model.TrackMetadata) ([]byte, error) {
	if !m.settings.SaveCoverArtInTags || !meta.HasArtwork() {
		return nil, nil
	}

	artwork, err := m.client.DownloadBytes(ctx, meta.ThumbnailURL)
	if err != nil {
		return nil, errors.Wrapf(err, "download artwork for %s", meta.Name)
	}

	artwork, err = m.imageService.PrepareCover(ctx, artwork, m.settings.ToCoverOptions())
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded artwork for %s", meta.Name), Level: LevelVerbose})
	return artwork, nil
}

// GetProgress returns how many lookups have completed out of the total.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.done), atomic.LoadInt32(&m.total)
}

// Succeeded returns the metadata of successful results, in order.
func Succeeded(results []Result) []*model.TrackMetadata {
	var out []*model.TrackMetadata
	for _, r := range results {
		if r.Err == nil && r.Metadata != nil {
			out = append(out, r.Metadata)
		}
	}
	return out
}

// ParseInputURLs splits free-form input on whitespace and keeps the
// http(s) URLs, dropping duplicates.
func ParseInputURLs(input string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, field := range strings.Fields(input) {
		if !strings.HasPrefix(field, "http://") && !strings.HasPrefix(field, "https://") {
			continue
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		urls = append(urls, field)
	}
	return urls
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}
