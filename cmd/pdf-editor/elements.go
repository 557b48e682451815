package main

import (
	"github.com/sushgiri-7/pdf-editor/interact"
	"github.com/sushgiri-7/pdf-editor/session"
)

// termElement is the terminal stand-in for a live display element. It
// only records where the item would be rendered.
type termElement struct {
	x, y float64
	text string
}

func (e *termElement) SetPosition(x, y float64) { e.x, e.y = x, y }
func (e *termElement) Text() string             { return e.text }

type termFactory struct{}

func (termFactory) CreateElement(item session.Item) interact.Element {
	el := &termElement{}
	if t, ok := item.(*session.TextItem); ok {
		el.text = t.Text
	}
	return el
}

// keyDrags turns arrow-key presses into drag motion events for the
// subscribed element.
type keyDrags struct {
	handlers map[interact.Element]func(interact.Motion)
}

func newKeyDrags() *keyDrags {
	return &keyDrags{handlers: make(map[interact.Element]func(interact.Motion))}
}

func (d *keyDrags) Subscribe(el interact.Element, fn func(interact.Motion)) {
	d.handlers[el] = fn
}

func (d *keyDrags) Emit(el interact.Element, m interact.Motion) {
	if fn, ok := d.handlers[el]; ok {
		fn(m)
	}
}
