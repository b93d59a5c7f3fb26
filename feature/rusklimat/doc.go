// Package rusklimat implements the supplier connector for the rusklimat
// dealer API. Access is JWT-gated: the adapter logs in for a token,
// exchanges it for a short-lived request key, then pages through the
// stock report by page number until the reported page count is
// exhausted. Remains arrive per warehouse, with free-text labels for
// pending deliveries and "more than N" buckets.
package rusklimat
