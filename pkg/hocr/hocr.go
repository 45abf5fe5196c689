// Package hocr reads hOCR documents, the HTML-based OCR output format, as an
// alternative to the Textract layout export.
//
// This package provides:
//
// - A small object model of the hOCR hierarchy down to text lines and words
// - A parser from hOCR HTML into that model
// - Conversion of the recognized lines into layout rows
//
// hOCR has no separate layout-role column. The role of a line is taken from its own
// class (ocr_header, ocr_caption, ...) or from the nearest typesetting container
// around it (ocr_title, ocr_chapter, ocr_section, ocr_pageno), so titles, headings
// and page numbers are recognized the same way the layout export tags them.
//
// Key Types:
//
// - HOCR: Top-level structure representing an entire hOCR document
// - Page: Represents a single page with class 'ocr_page'
// - Line: Represents a line of text (ocr_line and its sibling line classes)
// - Word: Represents a single word with class 'ocrx_word' and its x_wconf confidence
//
// Main Functions:
//
// - ParseHOCR: Parses hOCR data from HTML into the object model
// - Rows: Flattens the document into layout rows in reading order
package hocr
