// Package logger provides a structured logging facility based on Zap.
//
// Every sync run attaches run_id and source fields so one run's log
// lines can be correlated end to end; the status HTTP server attaches a
// request_id the same way via WithRequestID.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (CLI)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("sync run started", zap.String("run_id", id))
package logger
