package audio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, false)

	content := creator.CreatePlaylist("Test", createTestTracks())

	assert.Equal(t, "https://t4.bcbits.com/stream/1/mp3-128/1\nhttps://t4.bcbits.com/stream/2/mp3-128/2\n", content)
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, true)

	content := creator.CreatePlaylist("Test", createTestTracks())

	assert.True(t, strings.HasPrefix(content, "#EXTM3U\n"))
	assert.Contains(t, content, "#EXTINF:180,Test Artist - track1\n")
	assert.Contains(t, content, "#EXTINF:200,Test Artist - track2\n")
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(FormatPLS, false)

	content := creator.CreatePlaylist("Test", createTestTracks())

	assert.True(t, strings.HasPrefix(content, "[playlist]\n"))
	assert.Contains(t, content, "File1=https://t4.bcbits.com/stream/1/mp3-128/1\n")
	assert.Contains(t, content, "Title2=Test Artist - track2\n")
	assert.Contains(t, content, "Length1=180\n")
	assert.Contains(t, content, "NumberOfEntries=2\n")
}

func TestPlaylistCreator_PLSUnknownLength(t *testing.T) {
	tracks := createTestTracks()
	tracks[0].Duration = 0

	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist("Test", tracks)

	assert.Contains(t, content, "Length1=-1\n")
}

func TestPlaylistCreator_WPL(t *testing.T) {
	creator := NewPlaylistCreator(FormatWPL, false)

	content := creator.CreatePlaylist("Test", createTestTracks())

	assert.Contains(t, content, "<?wpl")
	assert.Contains(t, content, "<title>Test</title>")
	assert.Contains(t, content, `<media src="https://t4.bcbits.com/stream/1/mp3-128/1"/>`)
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	creator := NewPlaylistCreator(FormatZPL, false)

	content := creator.CreatePlaylist("Test", createTestTracks())

	assert.Contains(t, content, "<?zpl")
	assert.Contains(t, content, `<meta name="ItemCount" content="2"/>`)
	assert.Contains(t, content, `trackTitle="track1" trackArtist="Test Artist" duration="180000"`)
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	tracks := []*model.TrackMetadata{{
		Name:         `Track & "Quote"`,
		UploaderName: "Artist <Special>",
		AudioStreams: []model.AudioStream{{URL: "https://example.com/a?x=1&y=2"}},
	}}

	content := NewPlaylistCreator(FormatZPL, false).CreatePlaylist("Mix & Match", tracks)

	assert.Contains(t, content, "<title>Mix &amp; Match</title>")
	assert.Contains(t, content, "https://example.com/a?x=1&amp;y=2")
	assert.Contains(t, content, "Track &amp; &quot;Quote&quot;")
	assert.NotContains(t, content, "<Special>")
}

func TestPlaylistCreator_SkipsTracksWithoutStream(t *testing.T) {
	tracks := append(createTestTracks(), &model.TrackMetadata{Name: "silent"}, nil)

	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist("Test", tracks)

	assert.Contains(t, content, "NumberOfEntries=2\n")
	assert.NotContains(t, content, "silent")
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := map[PlaylistFormat]string{
		FormatM3U: ".m3u",
		FormatPLS: ".pls",
		FormatWPL: ".wpl",
		FormatZPL: ".zpl",
	}
	for format, want := range tests {
		assert.Equal(t, want, format.Extension())
	}
}

func createTestTracks() []*model.TrackMetadata {
	return []*model.TrackMetadata{
		{
			Name:         "track1",
			UploaderName: "Test Artist",
			Duration:     180.4,
			AudioStreams: []model.AudioStream{{URL: "https://t4.bcbits.com/stream/1/mp3-128/1", Format: model.MediaFormatMP3, Bitrate: 128}},
		},
		{
			Name:         "track2",
			UploaderName: "Test Artist",
			Duration:     200,
			AudioStreams: []model.AudioStream{{URL: "https://t4.bcbits.com/stream/2/mp3-128/2", Format: model.MediaFormatMP3, Bitrate: 128}},
		},
	}
}
