package ngsq

// fragment is one buffered piece of a broken child marker
type fragment struct {
	kind FragmentKind
	text string
	line int
}

// recovered is a logical line reassembled from fragments
type recovered struct {
	text string
	line int // physical line of the first fragment
}

// recoveryState is a node of the reassembly graph:
//
//	plus -> number -> roman+name -> done
//	number -> roman+name -> done
//	plus-and-number -> roman+name -> done
type recoveryState int

const (
	recoveryStart recoveryState = iota
	recoveryAfterPlus
	recoveryAfterNumber
)

// next returns the state reached by consuming kind, or false if the graph has no
// such edge. done reports that a logical line is complete.
func (s recoveryState) next(kind FragmentKind) (next recoveryState, done bool, ok bool) {
	switch s {
	case recoveryStart:
		switch kind {
		case FragmentPlus:
			return recoveryAfterPlus, false, true
		case FragmentNumber, FragmentPlusNumber:
			return recoveryAfterNumber, false, true
		}
	case recoveryAfterPlus:
		if kind == FragmentNumber {
			return recoveryAfterNumber, false, true
		}
	case recoveryAfterNumber:
		if kind == FragmentRomanName {
			return recoveryStart, true, true
		}
	}
	return s, false, false
}

// replay runs buffered fragments through the reassembly graph. It returns the
// logical lines completed by the run, or the fragment at which the run failed:
// the first fragment the graph cannot accept, or the last fragment when the
// buffer ends before a line is complete.
func replay(pending []fragment) ([]recovered, *fragment) {
	var (
		lines []recovered
		state = recoveryStart
		text  string
		first int
	)

	for i := range pending {
		frag := pending[i]
		next, done, ok := state.next(frag.kind)
		if !ok {
			return lines, &frag
		}

		switch {
		case state == recoveryStart:
			text = frag.text
			first = frag.line
		case state == recoveryAfterPlus:
			// "+" belongs to the number: "+5 v. Smith."
			text += frag.text
		default:
			text += " " + frag.text
		}

		if done {
			lines = append(lines, recovered{text: text, line: first})
			text = ""
		}
		state = next
	}

	if state != recoveryStart {
		last := pending[len(pending)-1]
		return lines, &last
	}
	return lines, nil
}
