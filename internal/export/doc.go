// Package export hands filtered records to the clipboard or to disk.
//
// Both collaborators write the records' raw lines, newline separated, so an
// export can be piped back into herotail unchanged. File optionally
// compresses with zstd.
package export
