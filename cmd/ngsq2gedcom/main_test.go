package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnandrea/ngsq2gedcom/pkg/config"
	"github.com/johnandrea/ngsq2gedcom/pkg/ngsq"
)

const layoutCSV = `"layout","text"
"Title","Descendants of John Smith"
"Section header","Generation One"
"Text","1. John Smith #12, He married Mary Brown."
"Text","Children:"
"Text","2 i. Anne Smith, b. 1920."
"Text","3 ii. Thomas Smith."
"Page number","7"
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func reportDir(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

func TestUsageErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "layout.csv")
	require.NoError(t, os.WriteFile(file, []byte(layoutCSV), 0o644))

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing argument", args: nil, want: ErrMissingArgument},
		{name: "path is a file", args: []string{file}, want: ErrNotDirectory},
		{name: "path does not exist", args: []string{filepath.Join(t.TempDir(), "nope")}, want: ErrNotDirectory},
		{name: "input file absent", args: []string{t.TempDir()}, want: ErrMissingInput},
		{name: "unknown source", args: []string{"--source", "xml", filepath.Dir(file)}, want: config.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, out)
		})
	}

	_, err := execute(t, "a", "b")
	assert.ErrorContains(t, err, "got 2 arguments")
}

func TestConvertToStdout(t *testing.T) {
	out, err := execute(t, reportDir(t, "layout.csv", layoutCSV))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "0 HEAD\n"))
	assert.True(t, strings.HasSuffix(out, "0 TRLR\n"))
	assert.Contains(t, out, "0 @I1@ INDI\n1 NAME John /Smith/\n")
	assert.Contains(t, out, "1 REFN 12\n")
	assert.Contains(t, out, "0 @F1@ FAM\n1 HUSB @I1@\n1 CHIL @I2@\n1 CHIL @I3@\n")
	assert.NotContains(t, out, "Generation One")
	assert.NotContains(t, out, "Descendants")
}

func TestConvertToFiles(t *testing.T) {
	dir := reportDir(t, "layout.csv", layoutCSV)
	outDir := t.TempDir()
	gedPath := filepath.Join(outDir, "smith.ged")
	pdfPath := filepath.Join(outDir, "smith.pdf")

	out, err := execute(t, "--output", gedPath, "--pdf", pdfPath, dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	ged, err := os.ReadFile(gedPath)
	require.NoError(t, err)
	assert.Contains(t, string(ged), "1 NAME Anne /Smith/")

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestConvertWithConfig(t *testing.T) {
	dir := reportDir(t, "report.csv", "Role,Content\nText,1. Oona Smith.\n")
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
files:
  csv: report.csv
columns:
  layout: Role
  text: Content
submitter: Jane Researcher
names:
  female: [Oona]
`), 0o644))

	out, err := execute(t, "--config", cfgPath, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 NAME Jane Researcher\n")
	assert.Contains(t, out, "1 SEX F\n")
}

func TestConvertHOCR(t *testing.T) {
	const page = `<html><body><div class="ocr_page">
<span class="ocr_line"><span class="ocrx_word">1.</span> <span class="ocrx_word">Mary</span> <span class="ocrx_word">Jones.</span></span>
</div></body></html>`
	out, err := execute(t, "--source", "hocr", reportDir(t, "layout.hocr", page))
	require.NoError(t, err)
	assert.Contains(t, out, "1 NAME Mary /Jones/\n")
	assert.Contains(t, out, "1 SEX F\n")
}

func TestBrokenLineProducesNoOutput(t *testing.T) {
	dir := reportDir(t, "layout.csv", "layout,text\nText,1. John Smith.\nText,Children:\nText,+\nText,stray text\n")
	gedPath := filepath.Join(t.TempDir(), "out.ged")

	out, err := execute(t, "--output", gedPath, dir)
	require.ErrorIs(t, err, ngsq.ErrBrokenLine)
	assert.Empty(t, out)
	assert.NoFileExists(t, gedPath)

	var perr *ngsq.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Line)
	assert.Equal(t, "1. John Smith.", perr.Parent)
}

func TestNoPerson(t *testing.T) {
	out, err := execute(t, reportDir(t, "layout.csv", "layout,text\nTitle,Nothing here\n"))
	assert.ErrorIs(t, err, ngsq.ErrNoPerson)
	assert.Empty(t, out)
}
