// Package csvimport reads spreadsheet exports into header-keyed rows.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row keyed by normalized header name
type Row struct {
	Line int
	Data map[string]string
}

// Get returns the value of the first present column among names
func (r *Row) Get(names ...string) string {
	for _, name := range names {
		if v, ok := r.Data[name]; ok {
			return v
		}
	}
	return ""
}

func (r *Row) isEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// File is a parsed CSV file
type File struct {
	Headers   []string
	Rows      []Row
	Delimiter rune
	// Transcoded is set when the input was not UTF-8 and was read as Windows-1252
	Transcoded bool
}

// HasHeader reports whether any of names is a column of the file
func (f *File) HasHeader(names ...string) bool {
	for _, h := range f.Headers {
		for _, name := range names {
			if h == name {
				return true
			}
		}
	}
	return false
}

// Option configures Parse
type Option func(*options)

type options struct {
	maxRows   int
	delimiter rune
}

// WithMaxRows rejects files with more than n data rows
func WithMaxRows(n int) Option {
	return func(o *options) { o.maxRows = n }
}

// WithDelimiter disables delimiter detection
func WithDelimiter(d rune) Option {
	return func(o *options) { o.delimiter = d }
}

// Parse reads a whole CSV file. Spreadsheet exports from pt-BR locales use
// ';' and are often Windows-1252, so both are detected. Headers are trimmed
// and lower-cased; completely empty rows are skipped.
func Parse(data []byte, opts ...Option) (*File, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	file := &File{}
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, ErrInvalidEncoding
		}
		data = decoded
		file.Transcoded = true
	}

	file.Delimiter = o.delimiter
	if file.Delimiter == 0 {
		file.Delimiter = detectDelimiter(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = file.Delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	file.Headers = make([]string, len(header))
	for i, h := range header {
		file.Headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErr := &RowError{Code: CodeMalformedRow, Message: err.Error()}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErr.Row = parseErr.StartLine
			}
			return nil, rowErr
		}
		// blank lines are skipped by the reader, so count physical lines
		line, _ := reader.FieldPos(0)

		row := Row{Line: line, Data: make(map[string]string, len(file.Headers))}
		for i, h := range file.Headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row.Data[h] = strings.TrimSpace(record[i])
			} else {
				row.Data[h] = ""
			}
		}
		if row.isEmpty() {
			continue
		}

		file.Rows = append(file.Rows, row)
		if o.maxRows > 0 && len(file.Rows) > o.maxRows {
			return nil, fmt.Errorf("%w: limit is %d rows", ErrTooManyRows, o.maxRows)
		}
	}

	if len(file.Rows) == 0 {
		return nil, ErrNoDataRows
	}
	return file, nil
}

// detectDelimiter picks ';' when the header line has more semicolons than commas
func detectDelimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}
