package bandcamp

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/handiism/bandcamp-track-extractor/internal/bandcamp/dto"
)

// dataAttribute is the HTML attribute Bandcamp serializes the page's
// metadata blob into.
const dataAttribute = "data-tralbum"

// ParseTrackInfo locates the data-tralbum JSON in a Bandcamp page and
// decodes it.
//
// Bandcamp embeds track data in the HTML like this:
//
//	<script ... data-tralbum="{...JSON...}">
//
// Returns a *ParsingError whose cause is:
//   - ErrDataMissing if no element carries the attribute
//   - ErrDataMalformed if its value, empty included, is not valid JSON
func ParseTrackInfo(htmlContent string) (*dto.JSONTrackInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, malformed("html", err)
	}
	return parseTrackInfo(doc)
}

// parseTrackInfo decodes the data-tralbum attribute of the first element
// carrying it. The HTML parser has already unescaped the value (quotes
// arrive as &quot;); JavaScript-style string concatenation is collapsed
// before decoding.
func parseTrackInfo(doc *goquery.Document) (*dto.JSONTrackInfo, error) {
	data, ok := doc.Find("[" + dataAttribute + "]").First().Attr(dataAttribute)
	if !ok {
		return nil, missing(dataAttribute)
	}

	var info dto.JSONTrackInfo
	if err := json.Unmarshal([]byte(fixJSON(data)), &info); err != nil {
		return nil, malformed(dataAttribute, err)
	}

	return &info, nil
}

// urlConcat matches `"url": "a" + "b"`, which older pages emit inside the blob.
var urlConcat = regexp.MustCompile(`("url"\s*:\s*"[^"]*)"\s*\+\s*"([^"]*")`)

// fixJSON collapses JavaScript string concatenation in URL values so the
// blob becomes valid JSON.
func fixJSON(data string) string {
	return urlConcat.ReplaceAllString(data, "${1}${2}")
}
