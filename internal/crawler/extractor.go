package crawler

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements contribute no text at all
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Head:     true,
	atom.Noscript: true,
	atom.Template: true,
}

// lineBreaks maps block elements to the number of newlines placed around them.
var lineBreaks = map[atom.Atom]int{
	atom.Br: 1, atom.Li: 1, atom.Tr: 1, atom.Dt: 1, atom.Dd: 1,
	atom.P: 2, atom.Div: 2, atom.Section: 2, atom.Article: 2, atom.Main: 2,
	atom.Header: 2, atom.Footer: 2, atom.Nav: 2, atom.Aside: 2,
	atom.H1: 2, atom.H2: 2, atom.H3: 2, atom.H4: 2, atom.H5: 2, atom.H6: 2,
	atom.Ul: 2, atom.Ol: 2, atom.Dl: 2, atom.Table: 2, atom.Blockquote: 2,
	atom.Pre: 2, atom.Hr: 2, atom.Form: 2, atom.Figure: 2, atom.Figcaption: 1,
}

// ExtractText parses HTML and returns the page title and its visible text.
// Script and style contents are dropped, links keep only their text.
func ExtractText(htmlContent []byte) (title string, text string, err error) {
	doc, err := html.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title = strings.TrimSpace(extractTitle(doc))

	var w textWriter
	w.walk(doc)

	return title, w.String(), nil
}

// extractTitle finds and returns the page title
func extractTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return getNodeText(n)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := extractTitle(c); title != "" {
			return title
		}
	}

	return ""
}

// getNodeText extracts all text from a node and its children
func getNodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(getNodeText(c))
	}

	return text.String()
}

// textWriter accumulates words, collapsing whitespace inside runs of text
// and emitting at most one blank line between blocks.
type textWriter struct {
	sb      strings.Builder
	space   bool
	pending int
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
	}

	breaks := 0
	if n.Type == html.ElementNode {
		breaks = lineBreaks[n.DataAtom]
	}
	w.breakLine(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	w.breakLine(breaks)
}

func (w *textWriter) text(s string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" {
			w.space = true
		}
		return
	}
	if isSpace(s[0]) {
		w.space = true
	}
	for i, word := range words {
		if i > 0 {
			w.space = true
		}
		w.word(word)
	}
	if isSpace(s[len(s)-1]) {
		w.space = true
	}
}

func (w *textWriter) word(word string) {
	if w.sb.Len() > 0 {
		if w.pending > 0 {
			w.sb.WriteString(strings.Repeat("\n", w.pending))
		} else if w.space {
			w.sb.WriteByte(' ')
		}
	}
	w.sb.WriteString(word)
	w.pending = 0
	w.space = false
}

func (w *textWriter) breakLine(n int) {
	if n > w.pending && w.sb.Len() > 0 {
		w.pending = n
	}
}

func (w *textWriter) String() string {
	return w.sb.String()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// cleanText collapses whitespace runs into single spaces
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
