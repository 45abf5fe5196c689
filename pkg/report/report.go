// Package report renders a resolved person tree as a descendant chart PDF.
//
// Each person is printed on its own line, indented by generation, in the same
// pre-order the GEDCOM emitter uses; notes follow in a smaller font. The chart is a
// review aid for checking the OCR reconstruction against the scanned report.
//
// Main Functions:
//
// - Chart: Renders the tree and returns the PDF bytes
// - DefaultConfig: Returns the default page and font settings
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/johnandrea/ngsq2gedcom/pkg/ngsq"
)

// ErrEmptyTree is returned when there is nobody to draw
var ErrEmptyTree = errors.New("tree has no root person")

// Chart renders the descendant chart of t
func Chart(t *ngsq.Tree, cfg Config) ([]byte, error) {
	if t == nil || t.Root() == nil {
		return nil, ErrEmptyTree
	}

	pdf := fpdf.New("P", "pt", cfg.PageSize, "")
	pdf.SetMargins(36, 36, 36)
	pdf.SetAutoPageBreak(true, 36)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-30)
		pdf.SetFont(cfg.Font.Name, "I", cfg.Font.NoteSize)
		pdf.CellFormat(0, cfg.LineHeight, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	enc := &latin1{}
	root := t.Root()
	title := cfg.Title
	if title == "" {
		title = "Descendants of " + plainName(root)
	}
	pdf.SetFont(cfg.Font.Name, "B", cfg.Font.TitleSize)
	pdf.CellFormat(0, cfg.LineHeight*1.5, enc.String(title), "", 1, "L", false, 0, "")
	pdf.Ln(cfg.LineHeight / 2)

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	width := pageW - left - right

	err := t.Walk(func(p *ngsq.Person, depth int) error {
		offset := float64(min(depth, cfg.MaxDepth)) * cfg.Indent
		pdf.SetX(left + offset)
		pdf.SetFont(cfg.Font.Name, "", cfg.Font.Size)
		pdf.CellFormat(width-offset, cfg.LineHeight, enc.String(personLine(p, depth)), "", 1, "L", false, 0, "")

		if cfg.Notes && p.Notes != "" {
			pdf.SetX(left + offset + cfg.Indent)
			pdf.SetFont(cfg.Font.Name, "I", cfg.Font.NoteSize)
			pdf.MultiCell(width-offset-cfg.Indent, cfg.LineHeight*0.8, enc.String(p.Notes), "", "L", false)
		}
		return pdf.Error()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to draw chart: %w", err)
	}

	if enc.replaced > 0 && cfg.Logger != nil {
		cfg.Logger.Warn("characters outside Latin-1 replaced in chart", zap.Int("count", enc.replaced))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// personLine is "<generation>. <id> <name> (<sex>)".
func personLine(p *ngsq.Person, depth int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. [%s] %s", depth+1, p.ID, plainName(p))
	if p.Sex != ngsq.SexUnknown {
		fmt.Fprintf(&sb, " (%s)", p.Sex)
	}
	if p.ExternalID != "" {
		fmt.Fprintf(&sb, " #%s", p.ExternalID)
	}
	return sb.String()
}

func plainName(p *ngsq.Person) string {
	return strings.TrimSpace(p.Given + " " + p.Surname)
}
