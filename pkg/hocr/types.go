package hocr

// HOCR represents the entire hOCR document structure
type HOCR struct {
	Pages []Page // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	PageNumber int    // Physical page number (1-based)
	Lines      []Line // Text lines in reading order
}

// Line is a line of text (ocr_line, ocr_header, ocr_caption, ocr_textfloat)
type Line struct {
	Role  string // Layout role
	Words []Word // Words in this line
}

// Word is a recognized word
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	Text       string  // The actual text content
	Confidence float64 // Recognition confidence (0-100), or -1 when not reported
}

// Layout roles assigned to hOCR lines
const (
	RoleText          = "Text"
	RoleTitle         = "Title"
	RoleSectionHeader = "Section header"
	RolePageNumber    = "Page number"
)

// containerRoles maps typesetting containers to the role of the lines inside them
var containerRoles = map[string]string{
	"ocr_title":         RoleTitle,
	"ocr_chapter":       RoleSectionHeader,
	"ocr_section":       RoleSectionHeader,
	"ocr_subsection":    RoleSectionHeader,
	"ocr_subsubsection": RoleSectionHeader,
	"ocr_pageno":        RolePageNumber,
}

// lineRoles lists the line-level classes and the role each one carries
var lineRoles = map[string]string{
	"ocr_line":      RoleText,
	"ocr_textfloat": RoleText,
	"ocr_caption":   RoleText,
	"ocr_header":    RoleSectionHeader,
}
