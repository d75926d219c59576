package report

import (
	"encoding/csv"
	"errors"
	"os"
	"sync"

	"github.com/goccy/go-json"
)

// Sink receives records in sweep order.
type Sink interface {
	Write(r Record) error
}

// CSVWriter writes records to a CSV file, one flushed row per record.
type CSVWriter struct {
	file       *os.File
	writer     *csv.Writer
	categories []string
	mu         sync.Mutex
}

// NewCSVWriter creates path, truncating any existing file, and writes the
// header for the given equipment categories.
func NewCSVWriter(path string, categories []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header(categories)); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &CSVWriter{
		file:       f,
		writer:     w,
		categories: append([]string(nil), categories...),
	}, nil
}

// Write writes a single record. It is safe for concurrent use.
func (cw *CSVWriter) Write(r Record) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if err := cw.writer.Write(r.Row(cw.categories)); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes and closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	return errors.Join(cw.writer.Error(), cw.file.Close())
}

// JSONLWriter writes records to a JSON Lines file.
type JSONLWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONLWriter creates path, truncating any existing file.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONLWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single record as one JSON line.
func (jw *JSONLWriter) Write(r Record) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(r)
}

// Close closes the underlying file.
func (jw *JSONLWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.file.Close()
}

// MultiSink fans each record out to every sink in order, stopping at the
// first failure.
type MultiSink []Sink

// Write implements Sink.
func (m MultiSink) Write(r Record) error {
	for _, s := range m {
		if err := s.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Collector is an in-memory Sink.
type Collector struct {
	mu      sync.Mutex
	records []Record
}

// Write implements Sink.
func (c *Collector) Write(r Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, r)
	return nil
}

// Records returns a copy of everything written so far.
func (c *Collector) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Record(nil), c.records...)
}
