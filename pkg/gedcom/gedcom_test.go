package gedcom

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
	"github.com/johnandrea/ngsq2gedcom/pkg/ngsq"
)

func parse(t *testing.T, texts ...string) *ngsq.Tree {
	t.Helper()
	var rows []layout.Row
	for i, text := range texts {
		rows = append(rows, layout.Row{Role: "Text", Text: text, Line: i + 2})
	}
	tree, err := ngsq.Parse(layout.NewSliceSource(rows), ngsq.Options{})
	require.NoError(t, err)
	return tree
}

func TestMarshal(t *testing.T) {
	tree := parse(t,
		"1. John Smith #100, He married Mary.",
		"Children:",
		"3 i. Jane Smith, b. 1950 in Town.",
		"+2 ii. Pat Smith.",
		"2. Pat Smith, She married Paul.",
		"Children:",
		"4 i. Peter Jones.",
	)

	got, err := Marshal(tree, Options{Source: "Test", Submitter: "Tester"})
	require.NoError(t, err)

	want := []string{
		"0 HEAD",
		"1 SOUR Test",
		"1 SUBM @S1@",
		"1 GEDC",
		"2 VERS 5.5.1",
		"2 FORM LINEAGE-LINKED",
		"1 CHAR UTF-8",
		"0 @S1@ SUBM",
		"1 NAME Tester",
		"0 @I1@ INDI",
		"1 NAME John /Smith/",
		"2 GIVN John",
		"2 SURN Smith",
		"1 NOTE He married Mary.",
		"1 REFN 100",
		"1 SEX M",
		"1 FAMS @F1@",
		"0 @I3@ INDI",
		"1 NAME Jane /Smith/",
		"2 GIVN Jane",
		"2 SURN Smith",
		"1 NOTE b. 1950 in Town.",
		"1 SEX F",
		"1 FAMC @F1@",
		"0 @I2@ INDI",
		"1 NAME Pat /Smith/",
		"2 GIVN Pat",
		"2 SURN Smith",
		"1 NOTE Pat Smith, She married Paul.",
		"1 SEX F",
		"1 FAMC @F1@",
		"1 FAMS @F2@",
		"0 @I4@ INDI",
		"1 NAME Peter /Jones/",
		"2 GIVN Peter",
		"2 SURN Jones",
		"1 SEX M",
		"1 FAMC @F2@",
		"0 @F1@ FAM",
		"1 HUSB @I1@",
		"1 CHIL @I3@",
		"1 CHIL @I2@",
		"0 @F2@ FAM",
		"1 WIFE @I2@",
		"1 CHIL @I4@",
		"0 TRLR",
	}
	lines := strings.Split(strings.TrimSuffix(string(got), "\n"), "\n")
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalUnknownSexIsHusband(t *testing.T) {
	tree := parse(t,
		"1. Pat Smith.",
		"Children:",
		"2 i. Lee Smith.",
	)
	got, err := Marshal(tree, DefaultOptions())
	require.NoError(t, err)

	out := string(got)
	assert.Contains(t, out, "0 @F1@ FAM\n1 HUSB @I1@\n1 CHIL @I2@\n")
	assert.NotContains(t, out, "1 SEX")
	assert.Contains(t, out, "1 SOUR ProgramGenerated\n")
}

func TestMarshalSkipsOrphans(t *testing.T) {
	tree := parse(t,
		"1. John Smith.",
		"9. Lost Person, He married Ann.",
	)
	got, err := Marshal(tree, DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, string(got), "@I9@")
	assert.NotContains(t, string(got), "@F9@")
}

func TestMarshalUnresolved(t *testing.T) {
	_, err := Marshal(&ngsq.Tree{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestMarshalWrapsLongNotes(t *testing.T) {
	note := strings.Repeat("abcdefghij", 30)
	tree := parse(t, "1. John Smith.", note)

	got, err := Marshal(tree, Options{NoteLimit: 100})
	require.NoError(t, err)

	out := string(got)
	assert.Contains(t, out, "1 NOTE "+note[:100]+"\n2 CONT "+note[100:200]+"\n2 CONT "+note[200:]+"\n")
}

func TestWrapNote(t *testing.T) {
	tests := []struct {
		name  string
		note  string
		limit int
		want  []string
	}{
		{"short", "abc", 5, []string{"abc"}},
		{"exact", "abcde", 5, []string{"abcde"}},
		{"hard cut", "abcdefghijk", 5, []string{"abcde", "fghij", "k"}},
		{"multiple of limit", "abcdefghij", 5, []string{"abcde", "fghij"}},
		{"runes", "ééééé", 2, []string{"éé", "éé", "é"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapNote(tt.note, tt.limit))
		})
	}
}
