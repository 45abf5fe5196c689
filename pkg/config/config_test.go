package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnandrea/ngsq2gedcom/pkg/ngsq"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "layout.csv", cfg.InputFile())
	assert.Equal(t, 110, cfg.Limits.Name)
	assert.Equal(t, 246, cfg.Limits.Note)
	assert.Equal(t, "layout", cfg.LayoutColumns().Layout)
	assert.Equal(t, "text", cfg.LayoutColumns().Text)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
source: hocr
files:
  hocr: scan.html
columns:
  text: Content
limits:
  note: 200
submitter: Jane Researcher
names:
  female: [Oona]
  male: [Ezra]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceHOCR, cfg.Source)
	assert.Equal(t, "scan.html", cfg.InputFile())
	assert.Equal(t, "layout.csv", cfg.Files.CSV)
	assert.Equal(t, "layout", cfg.Columns.Layout)
	assert.Equal(t, "Content", cfg.Columns.Text)
	assert.Equal(t, 110, cfg.Limits.Name)

	g := cfg.GedcomOptions()
	assert.Equal(t, 200, g.NoteLimit)
	assert.Equal(t, "Jane Researcher", g.Submitter)
	assert.Equal(t, "ProgramGenerated", g.Source)

	r := cfg.ResolveOptions()
	assert.Equal(t, 110, r.NameLimit)
	assert.Equal(t, ngsq.SexFemale, r.Names.SexOf("Oona"))
	assert.Equal(t, ngsq.SexMale, r.Names.SexOf("ezra"))
	assert.Equal(t, ngsq.SexMale, r.Names.SexOf("John"))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "bad yaml", content: "source: [csv"},
		{name: "unknown source", content: "source: pdf", invalid: true},
		{name: "empty file name", content: "files:\n  csv: \"\"", invalid: true},
		{name: "empty column", content: "columns:\n  layout: \"\"", invalid: true},
		{name: "zero limit", content: "limits:\n  name: 0", invalid: true},
		{name: "docai without processor", content: "source: docai\ndocai:\n  project_id: p", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NotErrorIs(t, err, ErrInvalid)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDocAI(t *testing.T) {
	cfg, err := Load(writeConfig(t, "source: docai\ndocai:\n  project_id: p\n  processor_id: abc\n"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", cfg.InputFile())
	assert.Equal(t, "us", cfg.DocAI.Location)
	assert.Equal(t, "projects/p/locations/us/processors/abc", cfg.DocAI.ProcessorName())
}
