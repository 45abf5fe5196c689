package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
)

// Layout roles produced from Document AI block types
const (
	RoleText          = "Text"
	RoleTitle         = "Title"
	RoleSectionHeader = "Section header"
	RolePageNumber    = "Page number"
)

// roleForBlockType maps a Layout Parser text block type onto a layout role.
// Running headers and footers hold the report title and page number.
func roleForBlockType(blockType string) string {
	switch t := strings.ToLower(blockType); {
	case t == "title" || t == "heading-1":
		return RoleTitle
	case t == "subtitle" || strings.HasPrefix(t, "heading-"):
		return RoleSectionHeader
	case t == "header" || t == "footer":
		return RolePageNumber
	default:
		return RoleText
	}
}

// RowsFromProto converts a Document AI response into layout rows numbered from 1.
// The DocumentLayout tree is used when present, otherwise the OCR page lines.
func RowsFromProto(doc *documentaipb.Document) []layout.Row {
	if doc == nil {
		return nil
	}
	var rows []layout.Row
	emit := func(role, text string) {
		for _, part := range strings.Split(text, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				rows = append(rows, layout.Row{Role: role, Text: part, Line: len(rows) + 1})
			}
		}
	}

	if blocks := doc.GetDocumentLayout().GetBlocks(); len(blocks) > 0 {
		var walk func([]*documentaipb.Document_DocumentLayout_DocumentLayoutBlock)
		walk = func(blocks []*documentaipb.Document_DocumentLayout_DocumentLayoutBlock) {
			for _, b := range blocks {
				if tb := b.GetTextBlock(); tb != nil {
					emit(roleForBlockType(tb.GetType()), tb.GetText())
					walk(tb.GetBlocks())
				}
				if lb := b.GetListBlock(); lb != nil {
					for _, entry := range lb.GetListEntries() {
						walk(entry.GetBlocks())
					}
				}
			}
		}
		walk(blocks)
		return rows
	}

	text := []rune(doc.GetText())
	for _, page := range doc.GetPages() {
		for _, line := range page.GetLines() {
			emit(RoleText, anchorText(line.GetLayout().GetTextAnchor(), text))
		}
	}
	return rows
}
