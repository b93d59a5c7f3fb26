// Package pricerules loads per-article markup rules from an Excel
// spreadsheet, either from the local filesystem or from object storage.
//
// The spreadsheet layout is configurable: one column holds the article
// (external id), another the markup percentage, with a configurable first
// data row. Rules are loaded once per run and stay immutable for its
// duration.
package pricerules
