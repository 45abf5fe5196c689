package ngsq

import (
	"fmt"
	"slices"
)

// Sex is the GEDCOM sex code of a person
type Sex string

const (
	SexUnknown Sex = ""
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
)

// Person is one individual of the report.
//
// The structural fields are filled while the report is parsed. The derived fields
// are written exactly once by Resolve and are zero until then.
type Person struct {
	ID             string   // Person number taken from the report
	RawName        string   // Name text as captured from the marker line
	ExternalID     string   // Secondary "#digits" identifier, if present
	NoteLines      []string // Continuation text in document order
	Children       []string // Child ids in birth order
	FamilyAsSpouse string   // Family in which this person is a parent (equals ID)
	FamilyAsChild  string   // Family in which this person is a child ("" for the root)

	Notes            string // NoteLines joined with single spaces
	Sex              Sex    // Derived from notes, then from the given-name tables
	InFamilyAsSpouse bool   // Has children or married
	Given            string // Given names, length bounded
	Surname          string // Last word of the name, length bounded
	DisplayName      string // "Given /Surname/"
}

// Tree is the id-keyed person table built from one report.
// Presence of a key in the table is the "already materialized" marker.
type Tree struct {
	root     string
	people   map[string]*Person
	order    []string
	resolved bool
}

func newTree() *Tree {
	return &Tree{people: make(map[string]*Person)}
}

// add materializes p; the caller guarantees p.ID is new
func (t *Tree) add(p *Person) {
	t.people[p.ID] = p
	t.order = append(t.order, p.ID)
}

// Root returns the first person of the report, or nil for an empty tree
func (t *Tree) Root() *Person {
	return t.people[t.root]
}

// Person returns the person with the given id
func (t *Tree) Person(id string) (*Person, bool) {
	p, ok := t.people[id]
	return p, ok
}

// Len returns the number of materialized persons
func (t *Tree) Len() int {
	return len(t.people)
}

// People returns every person in the order they were first mentioned
func (t *Tree) People() []*Person {
	result := make([]*Person, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.people[id])
	}
	return result
}

// Resolved reports whether the derived attributes have been computed
func (t *Tree) Resolved() bool {
	return t.resolved
}

// Walk visits the persons reachable from the root depth-first, parents before
// their children and children in birth order. It uses an explicit stack so the
// depth of the report is not limited by the goroutine stack. Walk stops at the
// first error returned by fn.
func (t *Tree) Walk(fn func(p *Person, depth int) error) error {
	if t.root == "" {
		return nil
	}

	type entry struct {
		id    string
		depth int
	}
	stack := []entry{{id: t.root}}
	seen := make(map[string]bool, len(t.people))

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[top.id] {
			continue
		}
		seen[top.id] = true

		p, ok := t.people[top.id]
		if !ok {
			continue
		}
		if err := fn(p, top.depth); err != nil {
			return err
		}

		for i := len(p.Children) - 1; i >= 0; i-- {
			stack = append(stack, entry{id: p.Children[i], depth: top.depth + 1})
		}
	}
	return nil
}

// Orphans returns the ids of persons that are neither the root nor anyone's
// child. They come from numbered headings whose child line the OCR lost.
func (t *Tree) Orphans() []string {
	var result []string
	for _, id := range t.order {
		if id != t.root && t.people[id].FamilyAsChild == "" {
			result = append(result, id)
		}
	}
	return result
}

// Validate checks the structural invariants of the tree: a single root without a
// parent family, every child linked to exactly one parent whose family it
// references, no duplicate child entries, and no cycles
func (t *Tree) Validate() error {
	if t.root == "" {
		return ErrNoPerson
	}
	root := t.people[t.root]
	if root == nil {
		return fmt.Errorf("root %s is not materialized", t.root)
	}
	if root.FamilyAsChild != "" {
		return fmt.Errorf("root %s is a child of family %s", root.ID, root.FamilyAsChild)
	}

	parentOf := make(map[string]string, len(t.people))
	for _, id := range t.order {
		p := t.people[id]
		if p.FamilyAsSpouse != p.ID {
			return fmt.Errorf("person %s has family %s, want %s", p.ID, p.FamilyAsSpouse, p.ID)
		}
		for i, childID := range p.Children {
			if slices.Contains(p.Children[:i], childID) {
				return fmt.Errorf("person %s lists child %s twice", p.ID, childID)
			}
			if other, ok := parentOf[childID]; ok {
				return fmt.Errorf("child %s belongs to both %s and %s", childID, other, p.ID)
			}
			parentOf[childID] = p.ID

			child, ok := t.people[childID]
			if !ok {
				return fmt.Errorf("person %s lists unknown child %s", p.ID, childID)
			}
			if child.FamilyAsChild != p.FamilyAsSpouse {
				return fmt.Errorf("child %s references family %q, want %q", childID, child.FamilyAsChild, p.FamilyAsSpouse)
			}
		}
	}

	for _, id := range t.order {
		p := t.people[id]
		if p.FamilyAsChild != "" && parentOf[id] == "" {
			return fmt.Errorf("person %s references family %s but no parent lists it", id, p.FamilyAsChild)
		}
	}

	// Every person must be reachable from a person without a parent; anything
	// left over sits on a cycle.
	var stack []string
	for _, id := range t.order {
		if parentOf[id] == "" {
			stack = append(stack, id)
		}
	}
	reached := 0
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached++
		stack = append(stack, t.people[id].Children...)
	}
	if reached != len(t.order) {
		return fmt.Errorf("%d persons sit on a parent cycle", len(t.order)-reached)
	}
	return nil
}
