package logtail

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

const maxLineBytes = 1024 * 1024

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	lines, _, err := Tail(path, maxLines)
	return lines, err
}

// Tail is Read plus the byte offset of the end of what was read, suitable for
// handing to Follow. A final line without a newline counts as a line.
func Tail(path string, maxLines int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 64*1024)
	var (
		all    []string
		ring   []string
		count  int
		idx    int
		offset int64
	)
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}
	for {
		chunk, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("read log: %w", err)
		}
		if chunk == "" {
			break
		}
		offset += int64(len(chunk))
		line := trimEOL(chunk)
		if len(line) > maxLineBytes {
			line = line[:maxLineBytes]
		}
		if ring == nil {
			all = append(all, line)
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if ring == nil {
		return all, offset, nil
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, nil
}

// Stream calls emit for every line read from r until EOF. ctx is checked
// between lines; a read already blocked on r is not interrupted.
func Stream(ctx context.Context, r io.Reader, emit func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		emit(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

func trimEOL(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}
