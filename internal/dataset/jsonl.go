package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadJSONL loads a newline-delimited JSON file into a slice of T.
// Blank lines are skipped.
func ReadJSONL[T any](path string) ([]T, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("dataset: empty jsonl path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	return DecodeJSONL[T](f)
}

// DecodeJSONL decodes newline-delimited JSON from r.
func DecodeJSONL[T any](r io.Reader) ([]T, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var out []T
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return out, fmt.Errorf("dataset: parse jsonl line %d: %w", len(out)+1, err)
		}
		out = append(out, item)
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// WriteJSONL writes items as newline-delimited JSON, creating parent
// directories as needed.
func WriteJSONL[T any](path string, items []T) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("dataset: empty jsonl path")
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: create dir %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("dataset: marshal item %d: %w", i, err)
		}
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("dataset: write %q: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("dataset: write %q: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("dataset: flush %q: %w", path, err)
	}
	return nil
}
