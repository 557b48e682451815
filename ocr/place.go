package ocr

import (
	"github.com/sushgiri-7/pdf-editor/session"
)

// Annotate places each recognized text block into the session as a text
// item at the block's position on its page. Blocks without text are
// skipped. It returns the number of items placed.
func Annotate(sess *session.Session, results []Result) int {
	placed := 0
	for _, res := range results {
		for _, block := range res.Blocks {
			if block.Text == "" {
				continue
			}
			item := sess.AddText(res.PageIndex)
			sess.Update(session.KindText, item.ID, func(it session.Item) {
				t := it.(*session.TextItem)
				t.Text = block.Text
				if !block.Bounds.IsEmpty() {
					t.X = block.Bounds.X
					t.Y = block.Bounds.Y
				}
			})
			placed++
		}
	}
	return placed
}
