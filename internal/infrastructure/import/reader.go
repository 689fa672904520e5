// Package csvimport parses and validates CSV uploads used to bulk-load
// portfolio records (tenants, units) into an owner's account.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Reader parses a CSV upload into header-keyed rows. The first row is the
// header; data rows are numbered from 2 so error messages match what the
// user sees in a spreadsheet.
type Reader struct {
	delimiter rune
	headers   []string
	headerIdx map[string]int
	line      int
	csv       *csv.Reader
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithDelimiter sets the field delimiter (comma by default)
func WithDelimiter(d rune) ReaderOption {
	return func(r *Reader) {
		r.delimiter = d
	}
}

// NewReader wraps an upload in a CSV reader. It strips a UTF-8 BOM if
// present and rejects files that are empty or not valid UTF-8.
func NewReader(src io.Reader, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		delimiter: ',',
		headerIdx: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	buf := bufio.NewReader(src)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(head) == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	sample, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(sample) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(sample) {
		return nil, ErrInvalidEncoding
	}

	r.csv = csv.NewReader(buf)
	r.csv.Comma = r.delimiter
	r.csv.LazyQuotes = true
	r.csv.TrimLeadingSpace = true
	r.csv.FieldsPerRecord = -1

	return r, nil
}

// ReadHeader consumes the header row. Header names are trimmed and
// lowercased so "Unit Number ", "unit_number" and "UNIT_NUMBER" all bind
// to the same rule column when normalized by the caller's template.
func (r *Reader) ReadHeader() error {
	record, err := r.csv.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	r.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		r.headers[i] = name
		r.headerIdx[name] = i
	}
	if len(r.headers) == 0 {
		return ErrMissingHeader
	}

	r.line = 1
	return nil
}

// Headers returns the normalized header names
func (r *Reader) Headers() []string {
	return r.headers
}

// MissingHeaders returns the required column names absent from the header
func (r *Reader) MissingHeaders(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := r.headerIdx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row is one parsed data row keyed by normalized header name
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the trimmed value of a column, or "" if absent
func (row *Row) Get(column string) string {
	return row.Data[column]
}

// IsEmpty reports whether every field in the row is blank
func (row *Row) IsEmpty() bool {
	for _, v := range row.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadAll reads every data row, skipping rows that are entirely blank.
// ReadHeader must have been called first.
func (r *Reader) ReadAll() ([]*Row, error) {
	var rows []*Row
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			break
		}
		r.line++
		if err != nil {
			return rows, fmt.Errorf("malformed row %d: %w", r.line, err)
		}

		row := &Row{
			LineNumber: r.line,
			Data:       make(map[string]string, len(r.headers)),
		}
		for i, name := range r.headers {
			if i < len(record) {
				row.Data[name] = strings.TrimSpace(record[i])
			} else {
				row.Data[name] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
