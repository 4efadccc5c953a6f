// Package metadata maintains the searchable index of remote artifacts.
//
// A [Cache] owns the current [Index] snapshot. It fetches the remote listing
// through an injected [Fetcher], parses it with [Parse], and publishes the
// result with a single atomic swap, so readers never observe a half-built
// index. Snapshots younger than the configured TTL are served without a
// network call; at most one refresh is in flight at a time.
//
// Individual malformed listing entries do not fail a refresh. They are skipped
// and recorded as [Warning] values on the index. A refresh that yields no
// artifacts at all fails with a fetch error and leaves the previous snapshot
// in place.
package metadata
