// Package htmltext inspects rendered HTML fragments: headings, paragraphs
// and plain text.
package htmltext

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a parsed body fragment.
type Fragment struct {
	nodes []*html.Node
}

// Parse parses s as the content of a <body> element.
func Parse(s string) (*Fragment, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, err
	}
	return &Fragment{nodes: nodes}, nil
}

// FirstHeading returns the collapsed text of the first element whose tag is
// one of tags, in document order, skipping empty headings.
func (f *Fragment) FirstHeading(tags ...string) string {
	var found string
	f.walk(func(n *html.Node) bool {
		if n.Type != html.ElementNode || !slices.Contains(tags, n.Data) {
			return true
		}
		if txt := Collapse(nodeText(n)); txt != "" {
			found = txt
			return false
		}
		return true
	})
	return found
}

// FirstParagraph returns the first <p> element, or nil.
func (f *Fragment) FirstParagraph() *html.Node {
	var found *html.Node
	f.walk(func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			found = n
			return false
		}
		return true
	})
	return found
}

// Text returns all text content with whitespace collapsed.
func (f *Fragment) Text() string {
	var b strings.Builder
	for _, n := range f.nodes {
		b.WriteString(nodeText(n))
		b.WriteByte(' ')
	}
	return Collapse(b.String())
}

// InlineHTML renders the children of n, unwrapping <strong>, <em>, <b> and
// <i> while keeping links and any other markup.
func InlineHTML(n *html.Node) string {
	var b strings.Builder
	var render func(*html.Node)
	render = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				b.WriteString(html.EscapeString(c.Data))
			case c.Type == html.ElementNode && isEmphasis(c.DataAtom):
				render(c)
			default:
				_ = html.Render(&b, c)
			}
		}
	}
	render(n)
	return strings.TrimSpace(b.String())
}

// NodeText returns the collapsed text content of n.
func NodeText(n *html.Node) string {
	return Collapse(nodeText(n))
}

// StripLeadingHeading removes the first <h1> of s when it is the first
// element and its text equals title. Other content is returned untouched.
func StripLeadingHeading(s, title string) string {
	trimmed := strings.TrimLeft(s, " \t\r\n")
	if !strings.HasPrefix(trimmed, "<h1") {
		return s
	}
	end := strings.Index(trimmed, "</h1>")
	if end < 0 {
		return s
	}
	heading := trimmed[:end+len("</h1>")]
	frag, err := Parse(heading)
	if err != nil || frag.FirstHeading("h1") != Collapse(title) {
		return s
	}
	return strings.TrimLeft(trimmed[len(heading):], "\r\n")
}

// Truncate shortens s to at most limit runes, appending "..." when cut.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimRight(string(r[:limit]), " ") + "..."
}

// Collapse replaces runs of whitespace with single spaces and trims.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (f *Fragment) walk(visit func(*html.Node) bool) {
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if !visit(n) {
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	for _, n := range f.nodes {
		if !walk(n) {
			return
		}
	}
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
		if c.Type == html.ElementNode && isBlock(c.DataAtom) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isEmphasis(a atom.Atom) bool {
	return a == atom.Strong || a == atom.Em || a == atom.B || a == atom.I
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Tr, atom.Td, atom.Th, atom.Blockquote, atom.Pre, atom.Br:
		return true
	}
	return false
}
