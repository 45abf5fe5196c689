// Package layout provides the record stream consumed by the NGSQ report parser.
//
// A scanned report reaches the parser as an ordered sequence of layout rows: the text
// of one physical line together with the layout role an OCR engine assigned to it
// ("Text", "Title", "Page number", "Section header", ...). Rows are produced strictly
// in document order.
//
// Key Types:
//
// - Row: One layout record (role, text, physical line number)
// - Source: Pull-style iterator over rows, returning io.EOF when exhausted
// - CSVReader: Source reading an AWS Textract layout CSV export
// - SliceSource: Source over rows already held in memory (hOCR, Document AI)
//
// Main Functions:
//
// - NewCSVReader: Opens a CSV stream and locates the role and text columns by header name
// - DecodeText: Normalizes raw input bytes to UTF-8
package layout

import "io"

// Row is one layout record of the OCR export
type Row struct {
	Role string // Layout role assigned by the OCR engine
	Text string // Recognized text of the line
	Line int    // Physical line number in the input (1-based)
}

// Source yields rows in document order. Next returns io.EOF after the last row.
type Source interface {
	Next() (Row, error)
}

// SliceSource is a Source over an in-memory slice of rows
type SliceSource struct {
	rows []Row
	pos  int
}

// NewSliceSource returns a Source that replays rows in order
func NewSliceSource(rows []Row) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next returns the next row or io.EOF
func (s *SliceSource) Next() (Row, error) {
	if s.pos >= len(s.rows) {
		return Row{}, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}
