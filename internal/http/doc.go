// Package http provides the page fetcher used to retrieve Bandcamp pages.
//
// The Client in this package handles:
//   - User-Agent headers for Bandcamp compatibility
//   - Retries with exponential cooldown
//   - Request throttling via golang.org/x/time/rate
//   - Timeout and proxy configuration
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/track/name")
//
//	// Fetch cover art
//	art, err := client.DownloadBytes(ctx, artworkURL)
package http
