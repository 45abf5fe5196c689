package layout

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
)

// ErrMissingColumn is returned when a required header column is absent
var ErrMissingColumn = errors.New("missing column")

// ColumnError names the required column that could not be found in the header row
type ColumnError struct {
	Column string // Expected header name
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("layout header has no %q column", e.Column)
}

func (e *ColumnError) Unwrap() error {
	return ErrMissingColumn
}

// Columns names the two header columns the reader needs
type Columns struct {
	Layout string // Column holding the layout role
	Text   string // Column holding the recognized text
}

// DefaultColumns matches the headers of a Textract layout export
var DefaultColumns = Columns{
	Layout: "layout",
	Text:   "text",
}

// CSVReader reads layout rows from a Textract layout CSV export.
// Header names are matched case-insensitively. A quoted cell spanning several
// physical lines is returned as one row per line, each carrying its own line number.
type CSVReader struct {
	csv       *csv.Reader
	layoutIdx int
	textIdx   int
	pending   []Row // Remaining lines of a multi-line cell
}

// NewCSVReader consumes the header row of r and locates the role and text columns
func NewCSVReader(r io.Reader, cols Columns) (*CSVReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("layout input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read layout header: %w", err)
	}

	fold := cases.Fold()
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[fold.String(cleanField(name))] = i
	}

	layoutIdx, ok := index[fold.String(cols.Layout)]
	if !ok {
		return nil, &ColumnError{Column: cols.Layout}
	}
	textIdx, ok := index[fold.String(cols.Text)]
	if !ok {
		return nil, &ColumnError{Column: cols.Text}
	}

	return &CSVReader{
		csv:       cr,
		layoutIdx: layoutIdx,
		textIdx:   textIdx,
	}, nil
}

// Next returns the next physical line or io.EOF
func (r *CSVReader) Next() (Row, error) {
	if len(r.pending) > 0 {
		row := r.pending[0]
		r.pending = r.pending[1:]
		return row, nil
	}

	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("failed to read layout row: %w", err)
	}

	role := fieldAt(record, r.layoutIdx)
	if r.textIdx >= len(record) {
		line, _ := r.csv.FieldPos(0)
		return Row{Role: role, Line: line}, nil
	}
	line, _ := r.csv.FieldPos(r.textIdx)

	parts := strings.Split(record[r.textIdx], "\n")
	rows := make([]Row, len(parts))
	for i, part := range parts {
		text := strings.TrimSpace(part)
		if i == 0 {
			text = cleanField(part)
		}
		rows[i] = Row{Role: role, Text: text, Line: line + i}
	}
	r.pending = rows[1:]
	return rows[0], nil
}

// fieldAt returns the cleaned field i of record, or "" for short records
func fieldAt(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return cleanField(record[i])
}

// cleanField drops the leading quote Textract adds so spreadsheets keep values
// as strings, then trims surrounding whitespace
func cleanField(s string) string {
	s = strings.TrimPrefix(s, "'")
	return strings.TrimSpace(s)
}

// DecodeText returns data as UTF-8. Valid UTF-8 passes through with any byte order
// mark removed; anything else is treated as Windows-1252, the usual encoding of a
// layout file re-saved from a spreadsheet.
func DecodeText(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode windows-1252: %w", err)
	}
	return decoded, nil
}
