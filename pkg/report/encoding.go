package report

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// latin1 converts text for the PDF core fonts, which only cover ISO-8859-1.
// Runes outside it become '?' and are counted.
type latin1 struct {
	replaced int
}

func (l *latin1) String(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			l.replaced++
			b = '?'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
