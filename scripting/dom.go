package scripting

import (
	"github.com/sushgiri-7/pdf-editor/editor"
	"github.com/sushgiri-7/pdf-editor/session"
)

// editorDOM adapts an *editor.Editor to the EditorDOM scripts see.
type editorDOM struct {
	ed    *editor.Editor
	alert func(string)
}

// Bind exposes an editor to scripts. alert may be nil when the surface
// has nowhere to show messages.
func Bind(ed *editor.Editor, alert func(string)) EditorDOM {
	return &editorDOM{ed: ed, alert: alert}
}

func (d *editorDOM) PageCount() int { return d.ed.Session().Pages.Len() }

func (d *editorDOM) AddText(pageIndex int) int {
	return d.ed.AddText(pageIndex).ID
}

func (d *editorDOM) AddImage(pageIndex int, src []byte) int {
	return d.ed.AddImage(pageIndex, src).ID
}

func (d *editorDOM) AddCheckbox(pageIndex int) int {
	return d.ed.AddCheckbox(pageIndex).ID
}

func (d *editorDOM) UpdateText(id int, text string) {
	d.ed.UpdateText(id, text)
}

func (d *editorDOM) MoveItem(kind string, id int, dx, dy float64) bool {
	return d.ed.Session().Translate(session.Kind(kind), id, dx, dy)
}

func (d *editorDOM) SetChecked(id int, checked bool) {
	d.ed.SetChecked(id, checked)
}

func (d *editorDOM) Alert(message string) {
	if d.alert != nil {
		d.alert(message)
	}
}
