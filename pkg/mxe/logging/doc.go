// Package logging provides a minimal logging facade for the computation core.
//
// The Logger interface wraps the subset of log/slog used by the gateway and the
// circuit engines. Applications can supply their own implementation for
// testing, redaction, or integration with an existing logging system.
//
//	logger := logging.New(nil) // slog.Default()
//	logger.Info(ctx, "circuit invoked", "circuit", "check_match")
//
// # Redaction
//
// Circuit inputs and outputs are secret by definition. Never pass them as log
// attributes; mark the slot instead:
//
//	logger.Debug(ctx, "match computed", logging.Redacted("score"))
//	// Logs: score="[redacted]"
//
// Key references and invocation identifiers are public and may be logged.
package logging
