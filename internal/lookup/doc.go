// Package lookup runs metadata extraction over many track URLs.
//
// # Manager
//
//	manager := lookup.NewManager(settings, client, func(event lookup.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	results, err := manager.Lookup(ctx, lookup.ParseInputURLs(input))
//	if err != nil {
//	    return err // cancelled
//	}
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Printf("%s: %v", r.URL, r.Err)
//	    }
//	}
//
// # Concurrency
//
// Lookups run in an errgroup limited by settings.MaxConcurrentLookups. Every
// URL gets its own extractor, so no state is shared between pages.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent.
// Calls are serialized, so the callback needs no locking of its own.
package lookup
