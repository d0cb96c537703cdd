package searchui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HighlightClass marks highlighted matches.
const HighlightClass = "highlighted"

// Highlight wraps every case-insensitive occurrence of term in the text of
// fragment with <span class="highlighted">. term matches literally. Markup,
// attribute values and script or style bodies are left alone.
func Highlight(fragment, term string) (string, error) {
	if term == "" {
		return fragment, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	body := doc.Find("body")
	for _, n := range body.Nodes {
		highlightNode(n, re)
	}

	out, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("serialize fragment: %w", err)
	}
	return out, nil
}

func highlightNode(n *html.Node, re *regexp.Regexp) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		switch child.Type {
		case html.TextNode:
			wrapMatches(child, re)
		case html.ElementNode:
			if child.DataAtom != atom.Script && child.DataAtom != atom.Style {
				highlightNode(child, re)
			}
		}
		child = next
	}
}

// wrapMatches replaces text node t with text and span nodes.
func wrapMatches(t *html.Node, re *regexp.Regexp) {
	matches := re.FindAllStringIndex(t.Data, -1)
	if len(matches) == 0 {
		return
	}

	parent := t.Parent
	text := t.Data
	last := 0
	for _, m := range matches {
		if m[0] > last {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:m[0]]}, t)
		}
		span := &html.Node{
			Type:     html.ElementNode,
			Data:     "span",
			DataAtom: atom.Span,
			Attr:     []html.Attribute{{Key: "class", Val: HighlightClass}},
		}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: text[m[0]:m[1]]})
		parent.InsertBefore(span, t)
		last = m[1]
	}
	if last < len(text) {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:]}, t)
	}
	parent.RemoveChild(t)
}
