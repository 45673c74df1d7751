// Package resolve implements the cache-or-fetch policy shared by every
// enrichment source.
//
// A Resolver answers lookups in a fixed order: curated table, persisted cache
// entry (including a previously stored "unknown" sentinel), then - online
// only - a live fetch whose outcome is persisted either way. Fetch failures
// degrade to an unknown value instead of propagating, so a flaky service can
// never abort a run, and the persisted sentinel bounds retries to one live
// attempt per key.
//
// Entries live in a SQLite database, one namespace per source, each keyed by
// a stable content hash of the primary term. Cache growth is incremental and
// corruption of one key cannot affect others.
package resolve
