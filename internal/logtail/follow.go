package logtail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Follow emits every complete line appended to path after offset until ctx is
// done. The parent directory is watched so the file may be created, rotated
// or truncated while following; truncation and replacement restart from the
// beginning of the new file.
func Follow(ctx context.Context, path string, offset int64, emit func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch log: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch log dir: %w", err)
	}

	f := &follower{path: target, offset: offset, emit: emit}
	if err := f.drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				f.reset()
			case ev.Has(fsnotify.Create):
				f.reset()
				if err := f.drain(); err != nil {
					return err
				}
			case ev.Has(fsnotify.Write):
				if err := f.drain(); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch log: %w", err)
		}
	}
}

type follower struct {
	path    string
	offset  int64
	partial string
	emit    func(string)
}

func (f *follower) reset() {
	f.offset = 0
	f.partial = ""
}

// drain reads from offset to EOF, emitting complete lines and holding back an
// unterminated tail until its newline arrives.
func (f *follower) drain() error {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < f.offset {
		f.reset()
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek log: %w", err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	f.offset += int64(len(data))

	text := f.partial + string(data)
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		f.emit(trimEOL(text[:i+1]))
		text = text[i+1:]
	}
	f.partial = text
	return nil
}
