package bandcamp

import (
	"context"
	"encoding/json"
	"html"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPageURL = "https://artist.bandcamp.com/track/song"

// trackBlob returns a complete single-track data-tralbum payload.
func trackBlob() map[string]any {
	return map[string]any{
		"url":    "http://artist.bandcamp.com/track/song",
		"artist": "Test Artist",
		"art_id": 1234567890,
		"current": map[string]any{
			"title":        "Test Song",
			"about":        "About",
			"lyrics":       nil,
			"credits":      "Credits",
			"publish_date": "15 May 2023 10:20:30 GMT",
			"license_type": 6,
		},
		"trackinfo": []any{
			map[string]any{
				"title":     "Test Song",
				"track_num": nil,
				"duration":  180.5,
				"file":      map[string]any{"mp3-128": "https://t4.bcbits.com/stream/abc/mp3-128/1"},
			},
		},
	}
}

// buildPage renders blob into a data-tralbum attribute the way Bandcamp
// does, followed by body.
func buildPage(t *testing.T, blob any, body string) string {
	t.Helper()
	data, err := json.Marshal(blob)
	require.NoError(t, err)
	return `<html><head><script src="x.js" data-tralbum="` + html.EscapeString(string(data)) +
		`"></script></head><body>` + body + `</body></html>`
}

// parsePage builds a Track straight from blob and body.
func parsePage(t *testing.T, blob any, body string) *Track {
	t.Helper()
	track, err := ParseTrack(context.Background(), testPageURL, buildPage(t, blob, body))
	require.NoError(t, err)
	return track
}

type fakeFetcher struct {
	body  string
	err   error
	calls int
}

func (f *fakeFetcher) GetString(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.body, f.err
}
