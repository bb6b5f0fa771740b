package bandcamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/bandcamp-track-extractor/internal/bandcamp/dto"
)

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://f4.bcbits.com/img/a1234567890_10.jpg", ImageURL(1234567890, true))
	assert.Equal(t, "https://f4.bcbits.com/img/0000000042_10.jpg", ImageURL(42, false))
}

func TestJoinNonEmpty(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"none", nil, ""},
		{"all empty", []string{"", "", ""}, ""},
		{"middle empty", []string{"A", "", "C"}, "A\n\nC"},
		{"leading empty", []string{"", "B", "C"}, "B\n\nC"},
		{"trailing empty", []string{"A", "B", ""}, "A\n\nB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinNonEmpty("\n\n", tt.parts...))
		})
	}
}

func TestUploaderURL(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "https://artist.bandcamp.com/track/song", want: "https://artist.bandcamp.com/"},
		{input: "https://artist.bandcamp.com", want: "https://artist.bandcamp.com/"},
		{input: "https://music.example.com/track/a?b=c", want: "https://music.example.com/"},
		{input: "https:", wantErr: true},
		{input: "https:/", wantErr: true},
		{input: "https:///track/song", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := UploaderURL(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDataMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsTrackURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://artist.bandcamp.com/track/song", true},
		{"http://artist.bandcamp.com/track/song", true},
		{"https://music.example.com/track/song", true},
		{"https://artist.bandcamp.com/album/record", false},
		{"https://artist.bandcamp.com/", false},
		{"ftp://artist.bandcamp.com/track/song", false},
		{"/track/song", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrackURL(tt.input))
		})
	}
}

func TestLicenseLabel_Total(t *testing.T) {
	for code := int64(-5); code <= 20; code++ {
		label := LicenseLabel(dto.OptionalInt{Value: code, Valid: true})
		assert.NotEmpty(t, label)
		if _, known := licenses[code]; !known {
			assert.Equal(t, LicenseUnknown, label, "code %d", code)
		}
	}
	assert.Equal(t, LicenseUnknown, LicenseLabel(dto.OptionalInt{}))
	assert.Equal(t, LicenseUnknown, LicenseLabel(dto.OptionalInt{Value: 6}))
}

func TestSecureURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://artist.bandcamp.com/track/song", "https://artist.bandcamp.com/track/song"},
		{"https://artist.bandcamp.com/track/song", "https://artist.bandcamp.com/track/song"},
		{"HTTP://artist.bandcamp.com/track/song", "https://artist.bandcamp.com/track/song"},
		{"Https://artist.bandcamp.com/track/song", "https://artist.bandcamp.com/track/song"},
		{"//artist.bandcamp.com/track/song", "https://artist.bandcamp.com/track/song"},
		{"http://artist.bandcamp.com/track/song?from=embed", "https://artist.bandcamp.com/track/song?from=embed"},
		{"/track/song", "/track/song"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, secureURL(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	_, ok := ParseDate("")
	assert.False(t, ok)

	date, ok := ParseDate("2023-05-15T10:20:30Z")
	require.True(t, ok)
	assert.Equal(t, 2023, date.Year())
}
