// Package importer turns Markdown and HTML fragments into text
// annotation items, one item per block element.
package importer

import (
	"github.com/sushgiri-7/pdf-editor/session"
)

// Target receives the imported text items. *editor.Editor satisfies it.
type Target interface {
	AddText(pageIndex int) *session.TextItem
	UpdateText(id int, text string)
}

const bulletPrefix = "• "

func place(t Target, pageIndex int, text string) {
	if text == "" {
		return
	}
	item := t.AddText(pageIndex)
	t.UpdateText(item.ID, text)
}
