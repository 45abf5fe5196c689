package ngsq

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
)

// Options configures Parse
type Options struct {
	Logger  *zap.Logger    // nil disables logging
	Resolve ResolveOptions // Settings for the final resolution pass
}

// parseContext is the mutable state of one parsing pass. It is owned by a single
// Parse call and threaded through every classification and build step.
type parseContext struct {
	tree           *Tree
	insideChildren bool       // Inside a "Children:" block
	currentParent  string     // Person whose children are being listed
	currentPerson  string     // Person receiving continuation lines
	lastPersonLine string     // Most recent person-marker line, for error reports
	pending        []fragment // Consecutive broken-line fragments
	log            *zap.Logger
}

// Parse reads every row of src, builds the person tree and resolves it.
//
// Parse fails with a *ParseError when a run of broken-line fragments cannot be
// reassembled, and with ErrNoPerson when the input holds no person marker. No
// partial tree is returned on error.
func Parse(src layout.Source, opts Options) (*Tree, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := &parseContext{tree: newTree(), log: log}

	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read layout row: %w", err)
		}
		if err := ctx.feed(row); err != nil {
			return nil, err
		}
	}
	if err := ctx.flush(); err != nil {
		return nil, err
	}

	tree := ctx.tree
	if tree.root == "" {
		return nil, ErrNoPerson
	}
	for _, id := range tree.Orphans() {
		log.Warn("person is not linked to any parent", zap.String("id", id))
	}

	if err := Resolve(tree, opts.Resolve); err != nil {
		return nil, err
	}
	log.Info("report parsed", zap.Int("people", tree.Len()), zap.String("root", tree.root))

	if log.Core().Enabled(zap.DebugLevel) {
		_ = tree.Walk(func(p *Person, depth int) error {
			log.Debug("person",
				zap.Int("depth", depth),
				zap.String("id", p.ID),
				zap.String("name", p.DisplayName),
				zap.String("sex", string(p.Sex)),
				zap.String("refn", p.ExternalID),
				zap.Int("note_lines", len(p.NoteLines)),
				zap.Strings("children", p.Children))
			return nil
		})
	}
	return tree, nil
}

// feed classifies one row and applies it
func (c *parseContext) feed(row layout.Row) error {
	line := Classify(row, c.insideChildren)

	switch line.Kind {
	case LineSkip:
		// Skipped rows never interrupt a fragment run; page breaks often fall inside one.
		c.log.Debug("line skipped", zap.Int("line", line.Number), zap.String("role", row.Role), zap.String("text", line.Text))
		return nil
	case LineFragment:
		c.pending = append(c.pending, fragment{kind: line.Fragment, text: line.Text, line: line.Number})
		if line.Fragment == FragmentRomanName {
			return c.flush()
		}
		return nil
	}

	if err := c.flush(); err != nil {
		return err
	}
	return c.apply(line)
}

// flush replays buffered fragments and applies the reassembled lines. The buffer
// is cleared whether or not the run succeeds.
func (c *parseContext) flush() error {
	if len(c.pending) == 0 {
		return nil
	}
	pending := c.pending
	c.pending = nil

	lines, failed := replay(pending)
	if failed != nil {
		return &ParseError{Line: failed.line, Text: failed.text, Parent: c.lastPersonLine}
	}

	for _, rl := range lines {
		c.log.Info("reassembled broken line", zap.Int("line", rl.line), zap.String("text", rl.text))
		line := Classify(layout.Row{Text: rl.text, Line: rl.line}, c.insideChildren)
		if err := c.apply(line); err != nil {
			return err
		}
	}
	return nil
}

// apply performs the tree update for a classified line
func (c *parseContext) apply(line Line) error {
	switch line.Kind {
	case LineSkip:
		return nil
	case LineChildrenStart:
		c.insideChildren = true
		return nil
	case LinePerson:
		c.person(line)
		return nil
	case LineChild:
		c.child(line)
		return nil
	default:
		c.continuation(line)
		return nil
	}
}

// person handles a numbered heading. A heading for a person already introduced as
// a child keeps the child's name and facts; its remainder only becomes a note.
func (c *parseContext) person(line Line) {
	remainder, cue := childrenCueSuffix(line.Remainder)

	if p, ok := c.tree.people[line.ID]; ok {
		if remainder != "" {
			p.NoteLines = append(p.NoteLines, remainder)
		}
	} else {
		c.newPerson(line.ID, remainder)
		if c.tree.root == "" {
			c.tree.root = line.ID
		}
	}

	c.currentParent = line.ID
	c.currentPerson = line.ID
	c.lastPersonLine = line.Text
	c.insideChildren = cue
}

// child handles a child marker inside a children block
func (c *parseContext) child(line Line) {
	parent, ok := c.tree.people[c.currentParent]
	if !ok {
		c.log.Warn("child marker without a parent dropped", zap.Int("line", line.Number), zap.String("text", line.Text))
		return
	}

	if p, exists := c.tree.people[line.ID]; exists {
		c.log.Warn("child number already in use",
			zap.Int("line", line.Number),
			zap.String("id", line.ID),
			zap.String("parent", p.FamilyAsChild))
		if line.Remainder != "" {
			p.NoteLines = append(p.NoteLines, line.Remainder)
		}
		c.currentPerson = line.ID
		return
	}

	p := c.newPerson(line.ID, line.Remainder)
	p.FamilyAsChild = parent.FamilyAsSpouse
	parent.Children = append(parent.Children, p.ID)
	c.currentPerson = p.ID
}

// continuation appends text to the current person
func (c *parseContext) continuation(line Line) {
	p, ok := c.tree.people[c.currentPerson]
	if !ok {
		c.log.Debug("text before first person dropped", zap.Int("line", line.Number), zap.String("text", line.Text))
		return
	}
	p.NoteLines = append(p.NoteLines, line.Text)
}

// newPerson materializes a person from a marker remainder
func (c *parseContext) newPerson(id, remainder string) *Person {
	ex := Extract(remainder)
	if ex.Rule == RuleWholeText || ex.Rule == RuleShortForm {
		c.log.Debug("name extracted by fallback", zap.String("id", id), zap.String("rule", ex.Rule), zap.String("text", remainder))
	}

	p := &Person{
		ID:             id,
		RawName:        ex.Name,
		ExternalID:     ex.ExternalID,
		FamilyAsSpouse: id,
	}
	if ex.Facts != "" {
		p.NoteLines = append(p.NoteLines, ex.Facts)
	}
	c.tree.add(p)
	return p
}
