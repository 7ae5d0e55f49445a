// Package logging provides structured logging for gertty using slog.
//
// Loggers write human-readable, colorized text when attached to a terminal
// and JSON otherwise on request. Attribute values whose key names a secret
// (password, token, ...) are masked before they are written, so a resolved
// server password never reaches a log file.
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("resolved configuration", "server", "review")
//
// Tests use [ForTest] so log output only shows up for failing tests.
package logging
