// Package gdocai reads a scanned NGSQ report through Google Document AI and turns the
// recognized text into layout rows.
//
// Two processor shapes are understood. A Layout Parser processor returns a
// DocumentLayout tree of typed text blocks (heading-1, paragraph, footer, ...);
// block types are mapped onto the roles the line classifier skips. An OCR processor
// returns only pages and lines; each line then becomes a plain text row.
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - RowsFromProto: Converts a Document AI response into layout rows
// - ReadRows: ProcessDocument followed by RowsFromProto
// - ToJSON: Renders the raw response for debugging
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor (Layout Parser or OCR)
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
)

// ErrIncompleteConfig is returned when a processor cannot be addressed
var ErrIncompleteConfig = errors.New("incomplete Document AI configuration")

// Config addresses a Document AI processor
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Validate reports which required field is missing
func (c *Config) Validate() error {
	switch {
	case c == nil:
		return ErrIncompleteConfig
	case c.ProjectID == "":
		return fmt.Errorf("%w: project_id is empty", ErrIncompleteConfig)
	case c.Location == "":
		return fmt.Errorf("%w: location is empty", ErrIncompleteConfig)
	case c.ProcessorID == "":
		return fmt.Errorf("%w: processor_id is empty", ErrIncompleteConfig)
	}
	return nil
}

// ProcessorName is the resource name of the configured processor
func (c *Config) ProcessorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

// ReadRows processes a PDF with Document AI and returns its layout rows along with
// the raw response
func ReadRows(ctx context.Context, pdfBytes []byte, cfg *Config) ([]layout.Row, *documentaipb.Document, error) {
	doc, err := ProcessDocument(ctx, pdfBytes, cfg)
	if err != nil {
		return nil, nil, err
	}
	return RowsFromProto(doc), doc, nil
}
