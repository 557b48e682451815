package importer

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown parses source with goldmark and places one text item per
// block element (heading, paragraph, list item) on the given page. It
// returns the number of items placed.
func Markdown(t Target, pageIndex int, source string) (int, error) {
	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))
	return walkMarkdown(t, pageIndex, doc, src), nil
}

func walkMarkdown(t Target, pageIndex int, node ast.Node, source []byte) int {
	placed := 0
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			place(t, pageIndex, blockText(n, source))
			placed++
		case *ast.Paragraph:
			place(t, pageIndex, blockText(n, source))
			placed++
		case *ast.List:
			placed += walkMarkdown(t, pageIndex, n, source)
		case *ast.ListItem:
			place(t, pageIndex, bulletPrefix+blockText(n, source))
			placed++
		}
	}
	return placed
}

// blockText concatenates the text segments below a block node, joining
// soft and hard line breaks with a space.
func blockText(node ast.Node, source []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					sb.WriteByte(' ')
				}
				continue
			}
			walk(child)
		}
	}
	walk(node)
	return strings.TrimSpace(sb.String())
}
