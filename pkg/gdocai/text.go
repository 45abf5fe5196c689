package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// anchorText returns the document text an anchor points at, with segment bounds
// clamped to the text. Offsets count runes; text is the document text already
// converted once so that every line of a page can share it.
func anchorText(anchor *documentaipb.Document_TextAnchor, text []rune) string {
	var sb strings.Builder
	for _, seg := range anchor.GetTextSegments() {
		start := clamp(int(seg.GetStartIndex()), 0, len(text))
		end := clamp(int(seg.GetEndIndex()), start, len(text))
		sb.WriteString(string(text[start:end]))
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
