// Package storage provides read access to the object store that holds
// price rule spreadsheets.
//
// It wraps the MinIO Go client behind a two-method interface
// (BucketExists, GetObject) so the pricerules loader can be unit-tested
// against a fake without a running MinIO. Both AWS S3 and self-hosted
// MinIO instances work.
package storage
