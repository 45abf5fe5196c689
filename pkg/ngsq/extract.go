package ngsq

import (
	"regexp"
	"strings"
	"unicode"
)

// Extraction is the split of a marker remainder into a name and fact text
type Extraction struct {
	Name       string // Display name
	Facts      string // Everything after the name
	ExternalID string // "#digits" identifier, when the external-id rule matched
	Rule       string // Name of the rule that produced the split
}

// Rule names reported in Extraction.Rule
const (
	RuleExternalID = "external-id"
	RuleShortForm  = "short-form"
	RuleWholeText  = "whole-text"
)

// extractRule is one entry of the extraction cascade
type extractRule struct {
	name  string
	match func(text string) (Extraction, bool)
}

const months = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

// factStarts are the phrases that open the fact text of a marker, in the order the
// report uses them most. Birth forms come before the equivalent death forms; the
// order must be kept.
var factStarts = []struct {
	name    string
	pattern string
	comma   bool // the phrase must follow a comma
}{
	{"birth-year", `b\. \d{4}\b`, false},
	{"birth-about", `b\. Abt\b`, false},
	{"birth-before", `b\. Bef\b`, false},
	{"birth-after", `b\. Aft\b`, false},
	{"birth-day-month", `b\. \d{1,2} ` + months + `\b`, false},
	{"birth-month-day", `b\. ` + months + `\.? \d{1,2}\b`, false},
	{"birth-month-year", `b\. ` + months + `\.? \d{4}\b`, false},
	{"death-year", `d\. \d{4}\b`, false},
	{"death-about", `d\. Abt\b`, false},
	{"death-before", `d\. Bef\b`, false},
	{"death-after", `d\. Aft\b`, false},
	{"death-day-month", `d\. \d{1,2} ` + months + `\b`, false},
	{"death-month-day", `d\. ` + months + `\.? \d{1,2}\b`, false},
	{"death-month-year", `d\. ` + months + `\.? \d{4}\b`, false},
	{"he-married", `He married\b`, false},
	{"she-married", `She married\b`, false},
	{"single", `Single\.`, false},
	{"place-in-year", `[^,]+? in \d{4}\b`, true},
	{"when-father-died", `[^,]+? when father died\b`, true},
}

var (
	externalIDPattern = regexp.MustCompile(`^([^#]+) #(\d+)[,.]?(.*)$`)
	shortFormPattern  = regexp.MustCompile(`^((?:[\p{L}\p{M}\[\]()"'’ .,&/?!-]|\d+(?:st|nd|rd|th)\b)+?)\.?$`)

	extractRules = buildExtractRules()
)

func buildExtractRules() []extractRule {
	rules := []extractRule{{name: RuleExternalID, match: matchExternalID}}
	for _, fs := range factStarts {
		sep := `[,;.]?\s+`
		if fs.comma {
			sep = `,\s*`
		}
		pattern := regexp.MustCompile(`^(.+?)` + sep + `(` + fs.pattern + `.*)$`)
		rules = append(rules, extractRule{name: fs.name, match: boundaryMatcher(pattern)})
	}
	rules = append(rules,
		extractRule{name: RuleShortForm, match: matchShortForm},
		extractRule{name: RuleWholeText, match: matchWholeText},
	)
	return rules
}

// Extract splits the text following a marker into a display name and the fact text.
// Rules are tried in a fixed order and the first match wins; the last rule always
// matches, so Extract never fails. Both results are trimmed substrings of text.
func Extract(text string) Extraction {
	text = strings.TrimSpace(text)
	for _, rule := range extractRules {
		if ex, ok := rule.match(text); ok {
			ex.Rule = rule.name
			return ex
		}
	}
	return Extraction{Name: text, Facts: text, Rule: RuleWholeText}
}

// matchExternalID handles "Name #1234, facts"; it supersedes every other rule
func matchExternalID(text string) (Extraction, bool) {
	m := externalIDPattern.FindStringSubmatch(text)
	if m == nil {
		return Extraction{}, false
	}
	return Extraction{
		Name:       trimName(m[1]),
		ExternalID: m[2],
		Facts:      strings.TrimSpace(m[3]),
	}, true
}

func boundaryMatcher(pattern *regexp.Regexp) func(string) (Extraction, bool) {
	return func(text string) (Extraction, bool) {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			return Extraction{}, false
		}
		ex := Extraction{Name: trimName(m[1]), Facts: strings.TrimSpace(m[2])}
		if ex.Name == "" {
			return Extraction{}, false
		}
		return ex, true
	}
}

// matchShortForm handles a remainder that is only a name, with or without a
// closing period: "John Smith.", "[Unknown]", "Mary & John Smith", "John Smith 2nd".
// Digits belong to a name only as an ordinal suffix.
func matchShortForm(text string) (Extraction, bool) {
	m := shortFormPattern.FindStringSubmatch(text)
	if m == nil || !strings.ContainsFunc(m[1], unicode.IsLetter) {
		return Extraction{}, false
	}
	return Extraction{Name: trimName(m[1])}, true
}

// matchWholeText keeps everything: the name is unknown, so the whole text is
// both the name and the facts
func matchWholeText(text string) (Extraction, bool) {
	return Extraction{Name: text, Facts: text}, true
}

func trimName(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), " ,;")
}
