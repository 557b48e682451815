// Package flatten composites a session's raster pages and annotation
// items into a static output document.
package flatten

import (
	"fmt"

	"github.com/sushgiri-7/pdf-editor/builder"
	"github.com/sushgiri-7/pdf-editor/coords"
	"github.com/sushgiri-7/pdf-editor/ir/semantic"
	"github.com/sushgiri-7/pdf-editor/observability"
	"github.com/sushgiri-7/pdf-editor/session"
)

// Fixed overlay drawing parameters, matching the interactive rendering.
const (
	checkboxSize = 5.0
	textFontSize = 12.0
)

var checkboxFill = builder.Color{R: 1, G: 1, B: 1, A: 1}

// Engine flattens sessions.
type Engine struct {
	log observability.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log observability.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New constructs an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{log: observability.NopLogger{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Flatten draws every raster page as a full-bleed background and every
// item on top of its page, re-projected through the page's transform.
// Items whose pageIndex has no cached page are skipped silently. Within a
// page the draw order is checkbox, text, image; later draws end up on
// top.
func (e *Engine) Flatten(sess *session.Session) (*semantic.Document, error) {
	b := builder.NewBuilder()
	b.SetInfo(&semantic.DocumentInfo{Producer: "pdf-editor"})

	for _, page := range sess.Pages.Pages() {
		tr := coords.NewPageTransform(float64(page.Width()), float64(page.Height()))
		pb := b.NewPage(tr.PageWidth, tr.PageHeight)

		bg := builder.FromImage(page.Image)
		pb.DrawImage(bg, 0, 0, tr.PageWidth, tr.PageHeight, builder.ImageOptions{})

		for _, cb := range sess.CheckboxItems {
			if cb.PageIndex != page.Index {
				continue
			}
			x, y := tr.Apply(cb.X, cb.Y)
			opts := builder.RectOptions{Stroke: true}
			if cb.Checked {
				opts = builder.RectOptions{Fill: true, FillColor: checkboxFill}
			}
			pb.DrawRectangle(x, tr.PageHeight-y-checkboxSize, checkboxSize, checkboxSize, opts)
		}

		for _, txt := range sess.TextItems {
			if txt.PageIndex != page.Index {
				continue
			}
			x, y := tr.Apply(txt.X, txt.Y)
			pb.DrawText(txt.Text, x, tr.PageHeight-y, builder.TextOptions{FontSize: textFontSize})
		}

		for _, img := range sess.ImageItems {
			if img.PageIndex != page.Index {
				continue
			}
			decoded, err := builder.ImageFromBytes(img.Src)
			if err != nil {
				return nil, fmt.Errorf("flatten: image item %d: %w", img.ID, err)
			}
			x, y := tr.Apply(img.X, img.Y)
			w := img.Width * tr.ScaleX
			h := img.Height * tr.ScaleY
			pb.DrawImage(decoded, x, tr.PageHeight-y-h, w, h, builder.ImageOptions{})
		}

		pb.Finish()
	}

	doc, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}
	e.log.Debug("session flattened",
		observability.Int("pages", len(doc.Pages)),
		observability.Int("items", len(sess.Items())))
	return doc, nil
}
