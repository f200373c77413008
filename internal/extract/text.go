package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Blockquote: true, atom.Dd: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Fieldset: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Ol: true,
	atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Ul: true,
}

// innerText approximates the browser's innerText for a snapshot without layout:
// <br> and block boundaries become line breaks, excluded nodes are skipped.
func innerText(sel *goquery.Selection, excluded []string) string {
	skip := make(map[*html.Node]bool)
	for _, s := range excluded {
		sel.Find(s).Each(func(_ int, ex *goquery.Selection) {
			for _, n := range ex.Nodes {
				skip[n] = true
			}
		})
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if skip[n] {
			return
		}
		switch n.Type {
		case html.TextNode:
			writeText(&b, n.Data, inPre(n))
			return
		case html.ElementNode:
			if n.DataAtom == atom.Br {
				b.WriteByte('\n')
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			newline(&b)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			newline(&b)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}

var whitespaceRun = regexp.MustCompile(`[ \t\n\r\f]+`)

// writeText appends a text node the way a browser renders white-space: normal,
// collapsing whitespace runs and dropping spaces at the start of a line.
func writeText(b *strings.Builder, data string, pre bool) {
	data = strings.ReplaceAll(data, "\u00a0", " ")
	if !pre {
		data = whitespaceRun.ReplaceAllString(data, " ")
		s := b.String()
		if s == "" || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, " ") {
			data = strings.TrimLeft(data, " ")
		}
	}
	b.WriteString(data)
}

func inPre(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (p.DataAtom == atom.Pre || p.DataAtom == atom.Textarea) {
			return true
		}
	}
	return false
}

// newline ends the current line unless the builder is empty or already at a line start.
func newline(b *strings.Builder) {
	s := b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	b.WriteByte('\n')
}
