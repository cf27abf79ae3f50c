// Package feed fetches generated feed documents from the scraping engine and caches them.
//
// # Overview
//
// FeedGate does not scrape pages itself; an external engine turns a page URL into an
// RSS document. This package holds the client for that engine and an in-memory TTL
// cache so repeated polls of the same feed do not hit the engine every time.
//
// # Generation
//
//	gen := feed.NewRemoteGenerator("http://engine:9090/generate", 30*time.Second)
//	doc, err := gen.GenerateFeed(ctx, rawURL, strategy)
//
// Engine failures wrap ErrGeneration so handlers can map them to 502 without
// inspecting error strings. Response bodies are capped at 8MB.
//
// # Caching
//
//	cache := feed.NewCache(512, 5*time.Minute)
//	if doc, ok := cache.Get(feedID); ok { ... }
//	cache.Put(feedID, doc)
//
// The cache is keyed by feed ID, which already encodes account and URL, so accounts
// never see each other's cached documents.
//
// # Related Packages
//
//   - pkg/api: serves cached or freshly generated documents
//   - pkg/feedtoken: derives the feed IDs used as cache keys
package feed
