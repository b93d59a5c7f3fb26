// Package invask implements the supplier connector for the invask stock
// API: a bearer-token REST endpoint with offset pagination driven by the
// reported total. Quantity labels arrive as either plain numbers or
// bucketed text (">10") and are decoded before the records leave the
// adapter.
package invask
