// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package cache provides a thread-safe, generic LRU cache with TTL expiry.

The recommendation service keeps recent responses here, keyed by the
normalized query and result count, and purges the whole cache whenever a new
catalog snapshot is published:

	responses := cache.NewLRU[*Result](1000, 10*time.Minute)
	if r, ok := responses.Get(key); ok {
	    return r, nil
	}
	...
	responses.Add(key, result)

Expired entries are removed lazily on Get, or eagerly by CleanupExpired.
*/
package cache
