// Package export writes rendered report rows to disk.
package export

import (
	"encoding/csv"
	"os"
)

// CSVWriter streams report rows into a CSV file
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	closed bool
}

// NewCSVWriter creates the output file and writes the header row
func NewCSVWriter(path string, delimiter rune, headers []string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	writer := csv.NewWriter(file)
	if delimiter != 0 {
		writer.Comma = delimiter
	}
	if err := writer.Write(headers); err != nil {
		file.Close()
		return nil, err
	}
	return &CSVWriter{file: file, writer: writer}, nil
}

// Write appends one row
func (w *CSVWriter) Write(row []string) error {
	return w.writer.Write(row)
}

// Close flushes and closes the output file. Safe to call twice.
func (w *CSVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
