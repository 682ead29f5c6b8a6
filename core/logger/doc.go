// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for interactive console use
// (colored, human-readable) and unattended runs (JSON), with an
// optional rotating file sink for long batch sessions.
//
// # Run Correlation
//
// Batch conversions are stamped with a run ID. The WithRunID helper
// attaches it to a logger so all entries of one run can be correlated
// when several runs interleave in the same output.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (development) or json (production)
//   - File: optional rotating file sink (size, backups, age)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("conversion finished")
//
//	// In a batch run:
//	l := logger.WithRunID(log, runID)
//	l.Warn("target not covered", zap.String("target", name))
package logger
