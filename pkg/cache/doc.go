// Package cache stores exported artifacts so repeated exports of an
// unchanged sheet skip rendering.
//
// Backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under $XDG_CACHE_HOME/sketchnote
//   - [RedisCache]: a shared Redis server
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the sheet content hash
// together with the export options; [ScopedKeyer] adds a namespace prefix.
//
// Remote backends report transient failures as [RetryableError];
// [RetryWithBackoff] retries those with exponential backoff.
package cache
