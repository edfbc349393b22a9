package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/five82/herotail/internal/parser"
)

const fileTimestampLayout = "20060102_150405"

// File writes records to a timestamped file in Dir.
type File struct {
	Dir      string // empty uses the working directory
	Compress bool   // zstd, with a .zst suffix
	Now      func() time.Time
}

// Export implements the view's export action.
func (f File) Export(records []parser.Record) (string, error) {
	if len(records) == 0 {
		return "No logs to export", nil
	}
	path, err := f.write([]byte(FormatRaw(records)))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Exported %d log entries to %s", len(records), path), nil
}

// Path returns the file name Export would use at t.
func (f File) Path(t time.Time) string {
	name := "heroku_logs_" + t.Format(fileTimestampLayout) + ".log"
	if f.Compress {
		name += ".zst"
	}
	dir := f.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

func (f File) write(data []byte) (string, error) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	path := f.Path(now())

	if f.Compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return "", fmt.Errorf("init zstd: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		_ = enc.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
