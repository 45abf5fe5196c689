// ngsq2gedcom converts an OCR'd NGSQ descendant report into a GEDCOM 5.5.1 file.
//
// The report is read from a directory holding the recognized text. By default that
// is the Textract layout export (layout.csv, with "layout" and "text" columns); an
// hOCR file or the scanned PDF itself (recognized through Google Document AI) can be
// used instead.
//
// Configuration:
//
// An optional YAML file overrides the defaults:
//
//	source: csv            # csv | hocr | docai
//	files:
//	  csv: layout.csv
//	  hocr: layout.hocr
//	  docai: report.pdf
//	columns:
//	  layout: layout
//	  text: text
//	limits:
//	  name: 110
//	  note: 246
//	submitter: "Jane Researcher"
//	names:
//	  female: [Oona]
//	  male: [Ezra]
//	docai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//
// Usage:
//
//	ngsq2gedcom [flags] <report-directory>
//
// Flags:
//
//	--config string     Path to the YAML configuration file
//	--source string     Input source, overrides the config (csv, hocr, docai)
//	--output string     Write the GEDCOM file here instead of stdout
//	--pdf string        Also write a descendant chart PDF
//	--debug             Log every classified line and the finished tree
//	--debug-api string  Save the raw Document AI response as JSON
//
// Nothing is written when the report cannot be converted: the whole document is
// built in memory first.
//
// Example:
//
//	ngsq2gedcom ~/reports/smith > smith.ged
//	ngsq2gedcom --source docai --config docai.yml --pdf smith.pdf ~/reports/smith
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
