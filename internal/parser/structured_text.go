package parser

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	reRunsOfNewlines = regexp.MustCompile(`\n{3,}`)
	reRunsOfSpaces   = regexp.MustCompile(` {2,}`)
	rePunctNoSpace   = regexp.MustCompile(`([.!?])([A-Za-z])`)
)

// StructuredText renders a DOM subtree as plain text with markdown-like
// structure markers. Headings become #-prefixed lines, lists become
// dashed or numbered items, emphasis becomes **…**, links keep their
// href in parentheses. The output feeds the extraction prompt; it is
// never shown to end users.
func StructuredText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				parts = append(parts, t)
			}
		case html.ElementNode:
			switch c.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				level := int(c.Data[1] - '0')
				parts = append(parts, "\n"+strings.Repeat("#", level)+" "+nodeText(c)+"\n")
			case "p":
				parts = append(parts, "\n"+nodeText(c)+"\n")
			case "ul", "ol":
				parts = append(parts, renderList(c))
			case "br", "hr":
				parts = append(parts, "\n")
			case "strong", "b":
				parts = append(parts, "**"+nodeText(c)+"**")
			case "a":
				text := nodeText(c)
				href := attr(c, "href")
				if text != "" && href != "" {
					parts = append(parts, fmt.Sprintf("%s (%s)", text, href))
				} else if text != "" {
					parts = append(parts, text)
				}
			default:
				if block := StructuredText(c); block != "" {
					parts = append(parts, block)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}

// CleanText is the final cleanup pass over extracted text. It converges:
// running it on its own output produces no further change.
func CleanText(text string) string {
	text = reRunsOfNewlines.ReplaceAllString(text, "\n\n")
	text = reRunsOfSpaces.ReplaceAllString(text, " ")
	text = rePunctNoSpace.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(text)
}

func renderList(list *html.Node) string {
	var b strings.Builder
	b.WriteString("\n")
	i := 0
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		i++
		if list.Data == "ol" {
			fmt.Fprintf(&b, "%d. ", i)
		} else {
			b.WriteString("- ")
		}
		b.WriteString(nodeText(c))
		b.WriteString("\n")
	}
	return b.String()
}

// nodeText collects the text content of a subtree with whitespace collapsed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
