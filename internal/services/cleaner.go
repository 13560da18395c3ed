package services

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagPattern = regexp.MustCompile(`(?i)<\s*/?\s*(html|body|div|p|br|ul|ol|li|span|h[1-6]|section|strong|b|em|a)\b[^>]*>`)

// Cleaner reduces job descriptions pasted from web pages to plain text.
type Cleaner struct{}

func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanJobDescription returns plain text unchanged apart from trimming. Text
// containing HTML is reduced to one line per block element; inline markup and
// bare text stay on the line they belong to.
func (c *Cleaner) CleanJobDescription(text string) string {
	text = strings.TrimSpace(text)
	if !htmlTagPattern.MatchString(text) {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	doc.Find("script, style, noscript, iframe, template").Remove()

	w := &lineWriter{}
	w.walk(doc.Find("body"))
	w.breakLine()

	return strings.Join(w.lines, "\n")
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// lineWriter collects text nodes into lines, breaking at block elements and
// <br>.
type lineWriter struct {
	lines   []string
	current strings.Builder
	prefix  string
}

func (w *lineWriter) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		switch name := goquery.NodeName(child); {
		case name == "#text":
			w.current.WriteString(child.Text())
		case name == "br":
			w.breakLine()
		case blockElements[name]:
			w.breakLine()
			if name == "li" {
				w.prefix = "- "
			}
			w.walk(child)
			w.breakLine()
		case strings.HasPrefix(name, "#"):
			// comments and doctype
		default:
			w.walk(child)
		}
	})
}

// breakLine ends the current line. A pending list prefix is kept until a
// non-empty line uses it.
func (w *lineWriter) breakLine() {
	line := collapseSpaces(w.current.String())
	w.current.Reset()
	if line == "" {
		return
	}

	w.lines = append(w.lines, w.prefix+line)
	w.prefix = ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
