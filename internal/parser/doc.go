// Package parser turns Heroku-style log lines into typed records.
//
// # Line Format
//
// Each line is expected to look like:
//
//	2010-09-16T15:13:46.677020+00:00 app[web.1]: Starting process
//
// The four captured fields are the RFC3339 timestamp (fractional seconds and
// a numeric offset are required), the source (word characters), the dyno
// (anything up to the closing bracket) and the free-text message.
//
// # Failure Mode
//
// Parse is total: any input either yields a Record whose Raw field is the
// exact input, or reports false. Malformed lines are not errors; callers drop
// them silently.
//
// # Levels
//
// Severity is inferred from the message with a case-insensitive keyword scan.
// The precedence is fixed, so a message mentioning both "error" and "warn"
// is always LevelError:
//
//	error, fatal, panic -> LevelError
//	warn                -> LevelWarn
//	debug, trace        -> LevelDebug
//	info                -> LevelInfo
//	otherwise           -> LevelUnknown
package parser
