// Package textnorm repairs text extracted from markup: stray tags,
// words joined at tag boundaries, and runs of whitespace.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Replacement is one literal fixup applied in order during normalization.
// The table is data, not logic: callers can supply their own.
type Replacement struct {
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`
}

// DefaultReplacements lists known mis-joins observed on the source pages.
func DefaultReplacements() []Replacement {
	return []Replacement{
		{"Ourshort-term", "Our short-term"},
		{"Explore thebenefits", "Explore the benefits"},
		{"Explore oursearch", "Explore our search"},
		{"Learn more aboutPremiere", "Learn more about Premiere"},
		{"Visit ourContact", "Visit our Contact"},
		{"You cansearch", "You can search"},
		{"you cancontact", "you can contact"},
		{"Pleasecontact", "Please contact"},
		{"pleasecontact", "please contact"},
		{"pleaseget", "please get"},
		{"Click hereto", "Click here to"},
	}
}

var (
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	lowerUpperRe  = regexp.MustCompile(`([a-z])([A-Z])`)
	letterDigitRe = regexp.MustCompile(`([a-z])(\d)`)
	digitLetterRe = regexp.MustCompile(`(\d)([A-Za-z])`)
)

// Normalizer cleans raw markup text into plain, single-spaced prose.
type Normalizer struct {
	fixups []Replacement
}

func New() *Normalizer {
	return &Normalizer{fixups: DefaultReplacements()}
}

func NewWithFixups(fixups []Replacement) *Normalizer {
	return &Normalizer{fixups: fixups}
}

// Normalize always returns a string, possibly empty. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := StripTags(raw)

	text = lowerUpperRe.ReplaceAllString(text, "$1 $2")
	text = letterDigitRe.ReplaceAllString(text, "$1 $2")
	text = digitLetterRe.ReplaceAllString(text, "$1 $2")

	for _, f := range n.fixups {
		text = strings.ReplaceAll(text, f.Find, f.Replace)
	}

	return strings.Join(strings.Fields(text), " ")
}

// StripTags removes markup and returns the concatenated text content.
// Script and style bodies are dropped entirely.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return tagRe.ReplaceAllString(s, " ")
	}
	var sb strings.Builder
	collectText(doc, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
