// Package gedcom serializes a resolved person tree as a GEDCOM 5.5.1 lineage-linked
// document.
//
// The document holds a fixed header with a single submitter record, one INDI record
// per person reachable from the root in pre-order (parents before their children),
// one FAM record per person who is a spouse in a family, and the trailer. Cross
// reference ids are derived from the report's person numbers: person 12 becomes
// @I12@ and the family in which person 12 is a parent becomes @F12@.
package gedcom

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/johnandrea/ngsq2gedcom/pkg/ngsq"
)

//go:embed templates/header.tmpl
var templateFS embed.FS

// DefaultNoteLimit is the longest NOTE or CONT value written on one line. A GEDCOM
// 5.5.1 line may hold 255 characters; "2 NOTE " takes 7 and 2 more are kept as
// margin.
const DefaultNoteLimit = 246

// ErrUnresolved is returned for a tree whose derived attributes were never computed
var ErrUnresolved = errors.New("tree is not resolved")

// Options controls the generated document
type Options struct {
	Source    string // HEAD.SOUR value
	Submitter string // Name of the submitter record
	NoteLimit int    // Maximum note characters per line; 0 means DefaultNoteLimit
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Source:    "ProgramGenerated",
		Submitter: "ngsq2gedcom",
		NoteLimit: DefaultNoteLimit,
	}
}

// Marshal renders the whole document into memory
func Marshal(tree *ngsq.Tree, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, tree, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the GEDCOM document for tree to w
func Encode(w io.Writer, tree *ngsq.Tree, opts Options) error {
	if !tree.Resolved() {
		return ErrUnresolved
	}
	if tree.Root() == nil {
		return ngsq.ErrNoPerson
	}
	if opts.NoteLimit <= 0 {
		opts.NoteLimit = DefaultNoteLimit
	}

	tmpl, err := template.ParseFS(templateFS, "templates/header.tmpl")
	if err != nil {
		return fmt.Errorf("error parsing GEDCOM header template: %w", err)
	}

	bw := bufio.NewWriter(w)
	if err := tmpl.Execute(bw, opts); err != nil {
		return fmt.Errorf("error rendering GEDCOM header: %w", err)
	}

	// Only persons reachable from the root are written, so every FAMC and CHIL
	// points at a record that exists.
	reachable := make(map[string]bool, tree.Len())
	err = tree.Walk(func(p *ngsq.Person, depth int) error {
		reachable[p.ID] = true
		writeIndividual(bw, p, opts.NoteLimit)
		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range tree.People() {
		if reachable[p.ID] && p.InFamilyAsSpouse {
			writeFamily(bw, p)
		}
	}

	fmt.Fprintln(bw, "0 TRLR")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write GEDCOM: %w", err)
	}
	return nil
}

func writeIndividual(w *bufio.Writer, p *ngsq.Person, noteLimit int) {
	fmt.Fprintf(w, "0 @I%s@ INDI\n", p.ID)
	fmt.Fprintf(w, "1 NAME %s\n", p.DisplayName)
	if p.Given != "" {
		fmt.Fprintf(w, "2 GIVN %s\n", p.Given)
	}
	if p.Surname != "" {
		fmt.Fprintf(w, "2 SURN %s\n", p.Surname)
	}

	if p.Notes != "" {
		prefix := "1 NOTE"
		for _, chunk := range wrapNote(p.Notes, noteLimit) {
			fmt.Fprintf(w, "%s %s\n", prefix, chunk)
			prefix = "2 CONT"
		}
	}

	if p.ExternalID != "" {
		fmt.Fprintf(w, "1 REFN %s\n", p.ExternalID)
	}
	if p.Sex != ngsq.SexUnknown {
		fmt.Fprintf(w, "1 SEX %s\n", p.Sex)
	}
	if p.FamilyAsChild != "" {
		fmt.Fprintf(w, "1 FAMC @F%s@\n", p.FamilyAsChild)
	}
	if p.InFamilyAsSpouse {
		fmt.Fprintf(w, "1 FAMS @F%s@\n", p.FamilyAsSpouse)
	}
}

// writeFamily lists p as the only spouse; unknown sex is written as husband
func writeFamily(w *bufio.Writer, p *ngsq.Person) {
	fmt.Fprintf(w, "0 @F%s@ FAM\n", p.FamilyAsSpouse)
	if p.Sex == ngsq.SexFemale {
		fmt.Fprintf(w, "1 WIFE @I%s@\n", p.ID)
	} else {
		fmt.Fprintf(w, "1 HUSB @I%s@\n", p.ID)
	}
	for _, child := range p.Children {
		fmt.Fprintf(w, "1 CHIL @I%s@\n", child)
	}
}

// wrapNote cuts note into pieces of at most limit characters. The cut is not
// word aware.
func wrapNote(note string, limit int) []string {
	runes := []rune(note)
	if len(runes) <= limit {
		return []string{note}
	}
	var chunks []string
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
