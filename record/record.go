// Package record appends one JSON line per answered request to the request
// log. The file is opened in append mode and never rewritten.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/birmacher/econ-bot/model"
)

// Writer appends log records to a line-delimited JSON file
type Writer struct {
	file *os.File
}

// Open opens path for appending, creating it and its directory if needed
func Open(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Writer{file: file}, nil
}

// Append writes rec as a single line
func (w *Writer) Append(rec model.LogRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode log record: %w", err)
	}
	line = append(line, '\n')
	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("write log record: %w", err)
	}
	return nil
}

// Path returns the file the records go to
func (w *Writer) Path() string {
	return w.file.Name()
}

func (w *Writer) Close() error {
	return w.file.Close()
}

// ReadAll loads every record from path, mostly useful for inspection and tests
func ReadAll(path string) ([]model.LogRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []model.LogRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var rec model.LogRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode log record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
