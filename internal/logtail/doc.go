// Package logtail reads log lines from files and streams.
//
// # Reading
//
// Read and Tail return the last N lines of a file in one sequential pass,
// keeping only N lines in memory via a ring:
//
//	lines, offset, err := logtail.Tail("app.log", 10000)
//
// A missing file returns no lines and no error. Other failures are wrapped.
//
// # Following
//
// Follow picks up at the offset Tail returned and emits lines as they are
// appended. It watches the parent directory with fsnotify, so the file may be
// created after Follow starts, truncated, or replaced by log rotation. Lines
// without a trailing newline are held back until the newline arrives.
//
// # Streams
//
// Stream scans an io.Reader such as stdin line by line, up to 1 MiB per line.
// It returns at EOF.
package logtail
