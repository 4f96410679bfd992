// Package rosterfile reads player roster CSV files as header-keyed rows.
package rosterfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	ColumnClub        = "club"
	ColumnFirstName   = "first_name"
	ColumnLastName    = "last_name"
	ColumnNationality = "nationality"
	ColumnAge         = "age"
	ColumnShirtNumber = "shirt_number"
	ColumnPosition    = "position"
)

// RequiredColumns lists the header fields every roster file must carry.
var RequiredColumns = []string{
	ColumnClub,
	ColumnFirstName,
	ColumnLastName,
	ColumnNationality,
	ColumnAge,
	ColumnShirtNumber,
	ColumnPosition,
}

var (
	ErrMissingField = errors.New("missing field")
	// ErrRead marks failures of the underlying stream, after which no further
	// rows can be read.
	ErrRead = errors.New("read roster")
)

// Row is one data record keyed by the file header.
type Row struct {
	Line   int
	header []string
	index  map[string]int
	values []string
}

// Get returns the trimmed value of field. Columns absent from the header and
// records too short to reach the column both yield ErrMissingField.
func (r Row) Get(field string) (string, error) {
	i, ok := r.index[field]
	if !ok || i >= len(r.values) {
		return "", fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return strings.TrimSpace(r.values[i]), nil
}

// String renders the row as header: value pairs, in header order.
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.header {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		if i < len(r.values) {
			b.WriteString(r.values[i])
		} else {
			b.WriteString("<missing>")
		}
	}
	for i := len(r.header); i < len(r.values); i++ {
		b.WriteString(", ")
		b.WriteString(r.values[i])
	}
	b.WriteByte('}')
	return b.String()
}

// Reader yields rows of a CSV stream whose first record is the header.
type Reader struct {
	csv    *csv.Reader
	header []string
	index  map[string]int
}

// NewReader consumes the header record of r. An empty stream gives a reader
// with no header whose Next returns io.EOF.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := &Reader{csv: cr, index: map[string]int{}}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	out.header = make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		out.header[i] = name
		if _, dup := out.index[name]; !dup {
			out.index[name] = i
		}
	}

	return out, nil
}

func (r *Reader) Header() []string {
	return append([]string(nil), r.header...)
}

// MissingColumns reports which of the wanted columns the header lacks.
func (r *Reader) MissingColumns(wanted ...string) []string {
	var out []string
	for _, name := range wanted {
		if _, ok := r.index[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Next returns the next row, or io.EOF once the stream is exhausted. A record
// that fails to parse is returned as an error carrying its line; reading can
// continue with the following record.
func (r *Reader) Next() (Row, error) {
	if r.header == nil {
		return Row{}, io.EOF
	}

	values, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return Row{Line: parseErr.StartLine, header: r.header, index: r.index}, err
		}
		return Row{}, fmt.Errorf("%w: %v", ErrRead, err)
	}

	line, _ := r.csv.FieldPos(0)
	return Row{
		Line:   line,
		header: r.header,
		index:  r.index,
		values: values,
	}, nil
}
