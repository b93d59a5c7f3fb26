// Package syncer implements the reconciliation pipeline that keeps
// marketplace stock counts and prices aligned with supplier data.
//
// One run of the pipeline moves data strictly left to right:
//
//	FetchCatalog -> FetchSupplier -> Reconcile -> Batch -> Dispatch
//
// The pipeline is generic over its inputs: the marketplace side is
// abstracted behind the Marketplace interface (catalog listing and batch
// update endpoints), and the supplier side behind SourceAdapter, so the
// same orchestrator serves every connector in the repository. Connector
// variations (quantity label encodings, price rule shape) live in the
// adapters and the QuantityDecoder strategy, not in copied control flow.
//
// # Passes
//
// A run executes a stock pass, a price pass, or both. Each pass joins the
// catalog snapshot against the supplier dataset by external identifier
// (hash-indexed, first supplier occurrence wins), applies the value
// transform for its mode, and dispatches the result in bounded batches.
// Catalog items without a supplier row are skipped silently: absence from
// the feed means "no change", not an error.
//
// # Failure model
//
// Errors inside a run are fail-fast: the first UpstreamError or
// SourceError aborts the run and is reported in the RunReport. Batches
// already dispatched are not rolled back; the marketplace is the only
// write target and partial application is an accepted, visible outcome.
// The next scheduled run starts clean from the catalog fetch.
package syncer
