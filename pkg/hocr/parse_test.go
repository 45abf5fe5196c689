package hocr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title>NGSQ report</title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name="ocr-system" content="tesseract 5.3.0"/>
 </head>
 <body>
  <div class="ocr_page" id="page_1" title='image "p1.png"; bbox 0 0 2480 3508; ppageno 0'>
   <div class="ocr_title" id="title_1">
    <span class="ocr_line" id="line_1_0" title="bbox 10 10 500 40">
     <span class="ocrx_word" title="bbox 10 10 100 40; x_wconf 96">Descendants</span>
     <span class="ocrx_word" title="bbox 110 10 200 40; x_wconf 95">of</span>
     <span class="ocrx_word" title="bbox 210 10 300 40; x_wconf 97">John</span>
    </span>
   </div>
   <div class="ocr_carea" id="block_1_1">
    <p class="ocr_par">
     <span class="ocr_header" id="line_1_1">
      <span class="ocrx_word">Generation</span> <span class="ocrx_word">One</span>
     </span>
     <span class="ocr_line" id="line_1_2" title="bbox 10 100 900 130">
      <span class="ocrx_word" title="bbox 10 100 40 130; x_wconf 91">1.</span>
      <span class="ocrx_word" title="bbox 50 100 120 130; x_wconf 90">John</span>
      <span class="ocrx_word" title="bbox 130 100 200 130; x_wconf 92">Smith,</span>
      <span class="ocrx_word" title="bbox 210 100 260 130; x_wconf 88">b.</span>
      <span class="ocrx_word" title="bbox 270 100 330 130; x_wconf 93"><strong>1900</strong>.</span>
     </span>
     <span class="ocr_line" id="line_1_3"><span class="ocrx_word">  </span></span>
    </p>
   </div>
   <div class="ocr_pageno"><span class="ocr_line">12</span></div>
  </div>
  <div class="ocr_page" id="page_2" title="bbox 0 0 2480 3508">
   <span class="ocr_line"><span class="ocrx_word">Children:</span></span>
  </div>
 </body>
</html>`

func TestParseHOCR(t *testing.T) {
	doc, err := ParseHOCR([]byte(sample))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)

	p1 := doc.Pages[0]
	assert.Equal(t, 1, p1.PageNumber)
	require.Len(t, p1.Lines, 5)

	assert.Equal(t, RoleTitle, p1.Lines[0].Role)
	assert.Equal(t, "Descendants of John", p1.Lines[0].Text())
	assert.Equal(t, RoleSectionHeader, p1.Lines[1].Role)
	assert.Equal(t, "1. John Smith, b. 1900.", p1.Lines[2].Text())
	assert.Equal(t, 92.0, p1.Lines[2].Words[2].Confidence)
	assert.Equal(t, "", p1.Lines[3].Text())
	assert.Equal(t, RolePageNumber, p1.Lines[4].Role)
	assert.Equal(t, "12", p1.Lines[4].Text())

	assert.Equal(t, 2, doc.Pages[1].PageNumber)
}

func TestLineMinConfidence(t *testing.T) {
	doc, err := ParseHOCR([]byte(sample))
	require.NoError(t, err)
	lines := doc.Pages[0].Lines

	assert.Equal(t, 95.0, lines[0].MinConfidence())
	assert.Equal(t, 88.0, lines[2].MinConfidence())
	// No x_wconf on the header words or on the bare page number line.
	assert.Equal(t, -1.0, lines[1].MinConfidence())
	assert.Equal(t, -1.0, lines[4].MinConfidence())
}

func TestRows(t *testing.T) {
	doc, err := ParseHOCR([]byte(sample))
	require.NoError(t, err)

	want := []layout.Row{
		{Role: RoleTitle, Text: "Descendants of John", Line: 1},
		{Role: RoleSectionHeader, Text: "Generation One", Line: 2},
		{Role: RoleText, Text: "1. John Smith, b. 1900.", Line: 3},
		{Role: RolePageNumber, Text: "12", Line: 4},
		{Role: RoleText, Text: "Children:", Line: 5},
	}
	if diff := cmp.Diff(want, Rows(doc)); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHOCRNoPages(t *testing.T) {
	_, err := ParseHOCR([]byte("<html><body><p>nothing</p></body></html>"))
	assert.Error(t, err)
}

func TestParseHOCRLatin1(t *testing.T) {
	data := []byte("<html><head><meta http-equiv=\"Content-Type\" content=\"text/html; charset=ISO-8859-1\"></head>" +
		"<body><div class=\"ocr_page\"><span class=\"ocr_line\"><span class=\"ocrx_word\">Ren\xe9</span></span></div></body></html>")
	doc, err := ParseHOCR(data)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Lines, 1)
	assert.Equal(t, "René", doc.Pages[0].Lines[0].Text())
}

func TestParseTitle(t *testing.T) {
	got := parseTitle("bbox 1 2 3 4; x_wconf 95;  ; baseline 0.01 -3")
	want := map[string][]string{
		"bbox":     {"1", "2", "3", "4"},
		"x_wconf":  {"95"},
		"baseline": {"0.01", "-3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseTitle() mismatch (-want +got):\n%s", diff)
	}
}
