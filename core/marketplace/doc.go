// Package marketplace implements the HTTP boundary to the marketplace
// seller API: cursor-paginated catalog listing and the batched stock and
// price update endpoints.
//
// The Client satisfies syncer.Marketplace. Pagination terminates only on
// the empty-string cursor sentinel; a non-terminal cursor followed by an
// empty page is treated as a server contract violation and fails the run.
// Dispatch observes a throughput throttle: once the total record count of
// a pass exceeds the configured threshold, a rate limiter inserts a fixed
// delay between batches.
package marketplace
