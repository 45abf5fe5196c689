package ngsq

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultNameLimit bounds the given and surname fields. GEDCOM 5.5.1 allows a
// NAME line value of 120 characters; "1 NAME //" takes 9 of them and the rest is
// kept as margin, as the note limit does.
const DefaultNameLimit = 110

var honorifics = []string{"Dr.", "Rev."}

var spaceRun = regexp.MustCompile(` {2,}`)

// ResolveOptions controls the derived attributes
type ResolveOptions struct {
	Names     *NameTables // Given-name tables; nil means DefaultNames
	NameLimit int         // Maximum length of given and surname; 0 means DefaultNameLimit
}

// Resolve computes notes, family membership, sex and the name split of every
// person. It runs once, after the whole report has been read; a second call
// returns ErrResolved and leaves the tree unchanged.
func Resolve(t *Tree, opts ResolveOptions) error {
	if t.resolved {
		return ErrResolved
	}
	names := opts.Names
	if names == nil {
		names = DefaultNames()
	}
	limit := opts.NameLimit
	if limit <= 0 {
		limit = DefaultNameLimit
	}

	for _, p := range t.people {
		resolvePerson(p, names, limit)
	}
	t.resolved = true
	return nil
}

func resolvePerson(p *Person, names *NameTables, limit int) {
	p.Notes = joinNotes(p.NoteLines)

	// "She married" is checked last and wins when both phrases occur.
	p.InFamilyAsSpouse = len(p.Children) > 0
	p.Sex = SexUnknown
	if strings.Contains(p.Notes, "He married") {
		p.InFamilyAsSpouse = true
		p.Sex = SexMale
	}
	if strings.Contains(p.Notes, "She married") {
		p.InFamilyAsSpouse = true
		p.Sex = SexFemale
	}
	if p.Sex == SexUnknown {
		if fields := strings.Fields(p.RawName); len(fields) > 0 {
			p.Sex = names.SexOf(fields[0])
		}
	}

	p.Given, p.Surname = splitName(p.RawName, limit)
	p.DisplayName = displayName(p.Given, p.Surname)
}

// joinNotes joins note lines with single spaces
func joinNotes(lines []string) string {
	joined := strings.Join(lines, " ")
	return strings.TrimSpace(spaceRun.ReplaceAllString(joined, " "))
}

// splitName drops leading honorifics and takes the last word as the surname
func splitName(raw string, limit int) (given, surname string) {
	fields := strings.Fields(raw)
	for len(fields) > 0 && slices.Contains(honorifics, fields[0]) {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return "", ""
	}
	surname = fields[len(fields)-1]
	given = strings.Join(fields[:len(fields)-1], " ")
	return truncate(given, limit), truncate(surname, limit)
}

func displayName(given, surname string) string {
	if given == "" {
		return "/" + surname + "/"
	}
	return given + " /" + surname + "/"
}

// truncate cuts s to at most limit bytes without splitting a character
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := 0
	for i := range s {
		if i > limit {
			break
		}
		cut = i
	}
	return strings.TrimSpace(s[:cut])
}
