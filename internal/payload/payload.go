// Package payload reads and writes the text files the pipeline works on.
package payload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/docker/go-units"

	"nsco/internal/charset"
)

// Stdio is the path that stands for stdin or stdout.
const Stdio = "-"

// Read loads the file at path, trimmed of surrounding whitespace that is not
// a symbol of cs. A nil cs trims all surrounding whitespace.
// Files larger than limit bytes are rejected; limit <= 0 disables the limit.
func Read(path string, limit int64, cs *charset.Charset) (string, error) {
	var r io.Reader
	if path == Stdio {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("payload: open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("payload: read %q: %w", path, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("payload: %q is larger than %s", path, units.BytesSize(float64(limit)))
	}

	data = bytes.TrimFunc(data, func(r rune) bool {
		return unicode.IsSpace(r) && (cs == nil || !cs.Contains(r))
	})
	if !utf8.Valid(data) {
		return "", fmt.Errorf("payload: %q is not valid utf-8", path)
	}
	return string(data), nil
}

// Write stores s and a trailing newline at path, creating parent directories.
func Write(path, s string) error {
	if path == Stdio {
		_, err := io.WriteString(os.Stdout, s+"\n")
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("payload: create dir for %q: %w", path, err)
		}
	}

	err := os.WriteFile(path, []byte(s+"\n"), 0644)
	if err != nil {
		return fmt.Errorf("payload: write %q: %w", path, err)
	}
	return nil
}
