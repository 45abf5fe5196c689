package hocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
)

// ParseHOCR converts raw hOCR data into a structured HOCR object
func ParseHOCR(data []byte) (HOCR, error) {
	var result HOCR

	decoded, err := decodeCharset(data)
	if err != nil {
		return result, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			result.Pages = append(result.Pages, processPage(n, len(result.Pages)+1))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

// Rows flattens the document into layout rows, one per non-empty line, numbered
// from 1 in reading order across all pages
func Rows(doc HOCR) []layout.Row {
	var rows []layout.Row
	for _, page := range doc.Pages {
		for _, line := range page.Lines {
			text := line.Text()
			if text == "" {
				continue
			}
			rows = append(rows, layout.Row{Role: line.Role, Text: text, Line: len(rows) + 1})
		}
	}
	return rows
}

// Text joins the words of the line with single spaces
func (l Line) Text() string {
	words := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if t := strings.TrimSpace(w.Text); t != "" {
			words = append(words, t)
		}
	}
	return strings.Join(words, " ")
}

// MinConfidence is the lowest word confidence reported for the line, or -1 when
// no word carries one
func (l Line) MinConfidence() float64 {
	lowest := -1.0
	for _, w := range l.Words {
		if w.Confidence >= 0 && (lowest < 0 || w.Confidence < lowest) {
			lowest = w.Confidence
		}
	}
	return lowest
}

// decodeCharset converts Latin-1 declared documents to UTF-8; anything else is
// passed through
func decodeCharset(data []byte) ([]byte, error) {
	enc := declaredCharset(data)
	switch enc {
	case "", "utf-8", "utf8":
		return data, nil
	case "iso-8859-1", "latin1", "latin-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", enc, err)
		}
		return decoded, nil
	case "windows-1252", "cp1252":
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", enc, err)
		}
		return decoded, nil
	default:
		return data, nil
	}
}

func declaredCharset(data []byte) string {
	lower := bytes.ToLower(data)
	i := bytes.Index(lower, []byte("charset="))
	if i < 0 {
		return ""
	}
	rest := string(lower[i+len("charset="):])
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// parseTitle breaks down an hOCR title attribute into its properties
// Example input: "bbox 100 200 300 400; x_wconf 95"
func parseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

func processPage(n *html.Node, index int) Page {
	page := Page{PageNumber: index}
	if v, ok := parseTitle(attr(n, "title"))["ppageno"]; ok && len(v) > 0 {
		if num, err := strconv.Atoi(v[0]); err == nil {
			page.PageNumber = num + 1
		}
	}

	var walk func(*html.Node, string)
	walk = func(n *html.Node, role string) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			childRole := role
			for _, class := range classes(c) {
				if r, ok := containerRoles[class]; ok {
					childRole = r
				}
			}
			if line, ok := processLine(c, childRole); ok {
				page.Lines = append(page.Lines, line)
				continue
			}
			walk(c, childRole)
		}
	}
	walk(n, RoleText)
	return page
}

// processLine reads a line element. A line inside a typesetting container takes the
// container's role; otherwise the role comes from the line class.
func processLine(n *html.Node, inherited string) (Line, bool) {
	var class string
	for _, c := range classes(n) {
		if _, ok := lineRoles[c]; ok {
			class = c
			break
		}
	}
	if class == "" {
		return Line{}, false
	}
	line := Line{Role: lineRoles[class]}
	if inherited != RoleText {
		line.Role = inherited
	}

	var words func(*html.Node)
	words = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && hasClass(c, "ocrx_word") {
				line.Words = append(line.Words, processWord(c))
				continue
			}
			words(c)
		}
	}
	words(n)

	// Engines that emit lines without word markup still carry the text.
	if len(line.Words) == 0 {
		if text := strings.TrimSpace(textContent(n)); text != "" {
			line.Words = append(line.Words, Word{Text: strings.Join(strings.Fields(text), " "), Confidence: -1})
		}
	}
	return line, true
}

func processWord(n *html.Node) Word {
	word := Word{Text: textContent(n), Confidence: -1}
	if v, ok := parseTitle(attr(n, "title"))["x_wconf"]; ok && len(v) > 0 {
		if conf, err := strconv.ParseFloat(v[0], 64); err == nil {
			word.Confidence = conf
		}
	}
	return word
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}
