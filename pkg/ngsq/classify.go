package ngsq

import (
	"regexp"
	"strings"

	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
)

// LineKind is the role of one physical line
type LineKind int

const (
	LineContinuation  LineKind = iota // Text belonging to the current person
	LineSkip                          // Layout noise: titles, page numbers, headers, blanks
	LineChildrenStart                 // The "Children:" cue
	LinePerson                        // "12. Name ..."
	LineChild                         // "+12 iv. Name ..." inside a children block
	LineFragment                      // A piece of a child marker split by the OCR
)

func (k LineKind) String() string {
	switch k {
	case LineContinuation:
		return "continuation"
	case LineSkip:
		return "skip"
	case LineChildrenStart:
		return "children"
	case LinePerson:
		return "person"
	case LineChild:
		return "child"
	case LineFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// FragmentKind is the shape of a broken child-marker piece
type FragmentKind int

const (
	FragmentNone       FragmentKind = iota
	FragmentPlus                    // "+"
	FragmentNumber                  // "12"
	FragmentPlusNumber              // "+12"
	FragmentRomanName               // "iv. Name ..."
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentPlus:
		return "plus"
	case FragmentNumber:
		return "number"
	case FragmentPlusNumber:
		return "plus-number"
	case FragmentRomanName:
		return "roman-name"
	default:
		return "none"
	}
}

// Line is the classification of one physical line
type Line struct {
	Kind      LineKind
	ID        string       // Person number for person and child markers
	Remainder string       // Marker text after the number
	Fragment  FragmentKind // Set for LineFragment
	Text      string       // The trimmed line text
	Number    int          // Physical line number
}

const childrenCue = "Children:"

var (
	personMarker = regexp.MustCompile(`^(\d+)\. (.*)$`)
	childMarker  = regexp.MustCompile(`^(\+)? ?(\d+) [ivxIVX]+\. ?(.*)$`)

	fragmentShapes = []struct {
		kind    FragmentKind
		pattern *regexp.Regexp
	}{
		{FragmentPlus, regexp.MustCompile(`^\+$`)},
		{FragmentNumber, regexp.MustCompile(`^\d+$`)},
		{FragmentPlusNumber, regexp.MustCompile(`^\+ ?\d+$`)},
		{FragmentRomanName, regexp.MustCompile(`^[ivxIVX]+\. ?\S.*$`)},
	}

	skippedRoles = []string{"title", "page number", "section header"}
)

// Classify assigns a role to one layout row. insideChildren is the current
// children-block mode; child markers and fragments are only recognized inside a
// children block. Classify does not change any state.
func Classify(row layout.Row, insideChildren bool) Line {
	text := strings.TrimSpace(row.Text)
	line := Line{Kind: LineContinuation, Text: text, Number: row.Line}

	role := strings.ToLower(row.Role)
	for _, prefix := range skippedRoles {
		if strings.HasPrefix(role, prefix) {
			line.Kind = LineSkip
			return line
		}
	}
	// The report's generation headings are not always tagged as section headers.
	if text == "" || strings.HasPrefix(text, "Generation ") {
		line.Kind = LineSkip
		return line
	}

	if text == childrenCue {
		line.Kind = LineChildrenStart
		return line
	}

	if m := personMarker.FindStringSubmatch(text); m != nil {
		line.Kind = LinePerson
		line.ID = m[1]
		line.Remainder = strings.TrimSpace(m[2])
		return line
	}

	if !insideChildren {
		return line
	}

	if m := childMarker.FindStringSubmatch(text); m != nil {
		line.Kind = LineChild
		line.ID = m[2]
		line.Remainder = strings.TrimSpace(m[3])
		return line
	}

	for _, shape := range fragmentShapes {
		if shape.pattern.MatchString(text) {
			line.Kind = LineFragment
			line.Fragment = shape.kind
			return line
		}
	}

	return line
}

// childrenCueSuffix reports whether a person-marker remainder carries the
// children-block cue on the same physical line, and returns the remainder
// without it
func childrenCueSuffix(remainder string) (string, bool) {
	if !strings.HasSuffix(remainder, " "+childrenCue) {
		return remainder, false
	}
	return strings.TrimSpace(strings.TrimSuffix(remainder, childrenCue)), true
}
