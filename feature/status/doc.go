// Package status exposes the service's run health over HTTP: a liveness
// endpoint and the most recent sync run report per source. Reports live
// only in memory; restarting the process clears them.
package status
