// Package httputil fetches remote images for import.
//
// # Overview
//
//   - [Fetcher]: downloads a URL with retry and a size limit
//   - [Cache]: file-based cache of downloaded bodies with a TTL
//   - [Retry]: automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores each body in its own file, named by the SHA-256 of the key.
// Entries older than the TTL are reported as [ErrExpired] and fetched again:
//
//	c, err := httputil.NewCache(dir, 24*time.Hour)
//	f := httputil.NewFetcher(httputil.WithCache(c))
//	data, err := f.Fetch(ctx, "https://example.com/figure.svg")
//
// # Retry
//
// Transient failures (network errors, 5xx and 429 responses) are retried
// three times with a doubling delay. Other status codes fail immediately.
package httputil
