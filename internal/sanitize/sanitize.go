package sanitize

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// voidElements are tags that never carry a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Sanitizer turns possibly HTML-bearing input into plain article text.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds a sanitizer that strips every tag.
func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// PlainText strips markup and decodes entities when input is an HTML
// fragment. Anything else is returned trimmed but otherwise unchanged, so
// prose like "a<b and c>d" or "Fish &amp; chips" survives verbatim.
func (s *Sanitizer) PlainText(input string) string {
	trimmed := strings.TrimSpace(input)
	if !IsMarkup(trimmed) {
		return trimmed
	}
	stripped := s.policy.Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(stripped))
}

// IsMarkup reports whether input parses to at least one real element: a
// tag that is closed somewhere in input, or a void tag whose attributes
// all carry values.
func IsMarkup(input string) bool {
	if !strings.ContainsRune(input, '<') {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return false
	}

	lower := strings.ToLower(input)
	found := false
	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name := goquery.NodeName(sel)
		switch name {
		case "html", "head", "body":
			return true
		}

		if voidElements[name] {
			found = hasValuedAttrs(sel)
		} else {
			found = strings.Contains(lower, "</"+name)
		}
		return !found
	})
	return found
}

func hasValuedAttrs(sel *goquery.Selection) bool {
	for _, attr := range sel.Nodes[0].Attr {
		if attr.Val == "" {
			return false
		}
	}
	return true
}
