package importer

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML parses source and places one text item per heading, paragraph,
// and list item on the given page. It returns the number of items
// placed.
func HTML(t Target, pageIndex int, source string) (int, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return 0, err
	}
	return walkHTML(t, pageIndex, doc), nil
}

func walkHTML(t Target, pageIndex int, n *html.Node) int {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.P:
			place(t, pageIndex, extractText(n))
			return 1
		case atom.Li:
			place(t, pageIndex, bulletPrefix+extractText(n))
			return 1
		}
	}

	placed := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		placed += walkHTML(t, pageIndex, c)
	}
	return placed
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.TrimSpace(sb.String())
}
