package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  OptionalInt
	}{
		{name: "integer", input: `6`, want: OptionalInt{Value: 6, Valid: true}},
		{name: "large id", input: `1234567890`, want: OptionalInt{Value: 1234567890, Valid: true}},
		{name: "negative", input: `-1`, want: OptionalInt{Value: -1, Valid: true}},
		{name: "null", input: `null`},
		{name: "quoted number", input: `"6"`},
		{name: "fraction", input: `6.0001`},
		{name: "boolean", input: `true`},
		{name: "object", input: `{"code":6}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				V OptionalInt `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"v":`+tt.input+`}`), &got))
			assert.Equal(t, tt.want, got.V)
		})
	}
}

func TestOptionalString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  OptionalString
	}{
		{name: "string", input: `"Artist"`, want: OptionalString{Value: "Artist", Valid: true}},
		{name: "empty string", input: `""`, want: OptionalString{Valid: true}},
		{name: "escaped", input: `"a\nb"`, want: OptionalString{Value: "a\nb", Valid: true}},
		{name: "null", input: `null`},
		{name: "number", input: `5`},
		{name: "array", input: `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				V OptionalString `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"v":`+tt.input+`}`), &got))
			assert.Equal(t, tt.want, got.V)
		})
	}
}

func TestOptionalFloat(t *testing.T) {
	var got struct {
		A OptionalFloat `json:"a"`
		B OptionalFloat `json:"b"`
		C OptionalFloat `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":180.5,"b":"180.5"}`), &got))
	assert.Equal(t, OptionalFloat{Value: 180.5, Valid: true}, got.A)
	assert.False(t, got.B.Valid)
	assert.False(t, got.C.Valid)
}

func TestJSONTrackInfo_WrongTypesDoNotFailTheBlob(t *testing.T) {
	blob := `{
		"url": "http://a.bandcamp.com/track/s",
		"artist": 5,
		"art_id": "123",
		"current": {"title": "S", "about": ["x"], "license_type": 6.0001},
		"trackinfo": [{"duration": "long", "file": {"mp3-128": "//t4.bcbits.com/x"}}]
	}`

	var info JSONTrackInfo
	require.NoError(t, json.Unmarshal([]byte(blob), &info))

	require.NotNil(t, info.URL)
	assert.False(t, info.Artist.Valid)
	assert.False(t, info.ArtID.Valid)
	require.NotNil(t, info.Current)
	assert.False(t, info.Current.About.Valid)
	assert.False(t, info.Current.LicenseType.Valid)
	require.Len(t, info.Tracks, 1)
	assert.False(t, info.Tracks[0].Duration.Valid)

	u, ok := info.Tracks[0].FileURL(Mp3Codec)
	assert.True(t, ok)
	assert.Equal(t, "https://t4.bcbits.com/x", u)
}
