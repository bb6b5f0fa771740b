package bandcamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relatedBlock(title, href, art, artist string) string {
	block := `<li class="recommended-album">`
	if href != "" {
		block += `<a class="album-link" href="` + href + `"><img class="album-art" src="` + art + `"></a>`
	}
	if title != "" {
		block += `<div class="release-title">` + title + `</div>`
	}
	if artist != "" {
		block += `<div class="by-artist">by ` + artist + `</div>`
	}
	return block + `</li>`
}

func TestTrack_RelatedItems(t *testing.T) {
	body := `<ul class="recommended-items">` +
		relatedBlock("First", "https://one.bandcamp.com/album/first", "https://f4.bcbits.com/img/a1_9.jpg", "One") +
		relatedBlock("", "https://two.bandcamp.com/album/untitled", "", "Two") + // no title
		relatedBlock("Third", "/album/third", "https://f4.bcbits.com/img/a3_9.jpg", "") + // relative link
		relatedBlock("No Link", "", "", "Four") + // no link
		relatedBlock("Bad Scheme", "javascript:void(0)", "", "") +
		`</ul>`

	items := parsePage(t, trackBlob(), body).RelatedItems()

	// 5 candidates, 3 malformed.
	require.Len(t, items, 2)

	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "https://one.bandcamp.com/album/first", items[0].URL)
	assert.Equal(t, "https://f4.bcbits.com/img/a1_9.jpg", items[0].ThumbnailURL)
	assert.Equal(t, "One", items[0].UploaderName)

	assert.Equal(t, "Third", items[1].Title)
	assert.Equal(t, "https://artist.bandcamp.com/album/third", items[1].URL)
}

func TestTrack_RelatedItemsNone(t *testing.T) {
	items := parsePage(t, trackBlob(), "<p>nothing to see</p>").RelatedItems()
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestTrack_RelatedItemsFallbackLink(t *testing.T) {
	body := `<div class="recommended-album">
		<div class="release-title">Fallback</div>
		<a href="https://x.bandcamp.com/album/fallback">go</a>
	</div>`

	items := parsePage(t, trackBlob(), body).RelatedItems()
	require.Len(t, items, 1)
	assert.Equal(t, "https://x.bandcamp.com/album/fallback", items[0].URL)
	assert.Equal(t, "", items[0].ThumbnailURL)
}
