// Package log builds the slog loggers used by rolereport.
//
// All loggers returned by this package pass records through RedactHandler,
// which masks attributes that carry personal data about viewers (names,
// e-mail addresses) or credentials. Viewer names appear in reports, never
// in logs.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Info("report written", "viewer", user.Name, "format", "CSV")
//	// viewer=***REDACTED*** format=CSV
package log
