package bandcamp

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// relatedSelector matches the "you may also like" blocks under a track.
const relatedSelector = ".recommended-album"

// RelatedItems returns the releases the page recommends, in document order.
//
// A block that does not yield a title and an absolute link is skipped; one
// bad block never hides the others.
func (t *Track) RelatedItems() []model.RelatedItem {
	items := []model.RelatedItem{}

	t.doc.Find(relatedSelector).Each(func(i int, s *goquery.Selection) {
		item, err := extractRelatedItem(s, t.base)
		if err != nil {
			t.log.Debug().Err(err).Int("index", i).Msg("skipping related item")
			return
		}
		items = append(items, item)
	})

	return items
}

// extractRelatedItem reads one recommended-album block:
//
//	<li class="recommended-album">
//	  <a class="album-link" href="https://other.bandcamp.com/album/x">
//	    <img class="album-art" src="https://f4.bcbits.com/img/a1_9.jpg">
//	  </a>
//	  <div class="release-title">X</div>
//	  <div class="by-artist">by Other</div>
//	</li>
func extractRelatedItem(s *goquery.Selection, base *url.URL) (model.RelatedItem, error) {
	title := strings.TrimSpace(s.Find(".release-title").First().Text())
	if title == "" {
		return model.RelatedItem{}, missing("related item title")
	}

	link := s.Find(".album-link").First()
	if link.Length() == 0 {
		link = s.Find("a[href]").First()
	}
	href, ok := link.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return model.RelatedItem{}, missing("related item url")
	}

	itemURL, err := resolveURL(base, strings.TrimSpace(href))
	if err != nil {
		return model.RelatedItem{}, malformed("related item url", err)
	}

	thumbnail, _ := s.Find(".album-art").First().Attr("src")
	uploader := strings.TrimSpace(s.Find(".by-artist").First().Text())

	return model.RelatedItem{
		Title:        title,
		URL:          itemURL,
		ThumbnailURL: thumbnail,
		UploaderName: strings.TrimSpace(strings.TrimPrefix(uploader, "by ")),
	}, nil
}

// resolveURL makes href absolute against base and checks that the result
// is an http(s) URL with a host.
func resolveURL(base *url.URL, href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Newf("unsupported scheme in %q", href)
	}
	if u.Host == "" {
		return "", errors.Newf("no host in %q", href)
	}
	return u.String(), nil
}
