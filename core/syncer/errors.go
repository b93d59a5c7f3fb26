package syncer

import "fmt"

// excerptLimit caps upstream response excerpts carried inside errors so a
// misbehaving server cannot flood the logs.
const excerptLimit = 512

// UpstreamError reports a malformed or non-success response from the
// marketplace (catalog listing or update endpoint). It is fatal for the
// current run.
type UpstreamError struct {
	// Stage names the pipeline stage that observed the failure.
	Stage string
	// Detail carries a capped excerpt of the upstream response.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream error at %s", e.Stage)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// SourceError reports that a supplier adapter failed to produce its
// dataset. It is fatal for the current run.
type SourceError struct {
	// Source names the connector that failed.
	Source string
	// Err is the underlying cause.
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s failed: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Excerpt truncates an upstream response body for inclusion in errors and
// log lines.
func Excerpt(body []byte) string {
	if len(body) > excerptLimit {
		return string(body[:excerptLimit]) + "..."
	}
	return string(body)
}
