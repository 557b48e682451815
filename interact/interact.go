// Package interact wires live display elements to annotation items and
// translates drag gestures into item position updates.
package interact

import (
	"fmt"

	"github.com/sushgiri-7/pdf-editor/observability"
	"github.com/sushgiri-7/pdf-editor/session"
)

// Motion is one reported drag delta in raster pixels.
type Motion struct {
	DX float64
	DY float64
}

// Element is a live display element bound 1:1 to an annotation item. The
// element holds only a back-reference to the item; destroying it never
// destroys the item.
type Element interface {
	SetPosition(x, y float64)
}

// TextElement is an element that displays editable text. Its current
// content is committed back into the item when the element loses focus.
type TextElement interface {
	Element
	Text() string
}

// ElementFactory creates the display element for an item, both on fresh
// add and on session restore.
type ElementFactory interface {
	CreateElement(item session.Item) Element
}

// DragSource is the gesture collaborator. Subscribe registers a listener
// for motion deltas on one element; the listener is invoked once per
// reported delta, in report order.
type DragSource interface {
	Subscribe(el Element, fn func(Motion))
}

type elementKey struct {
	kind session.Kind
	id   int
}

// Binder attaches elements and drag handling to items and writes drag
// deltas back into the session in place.
type Binder struct {
	sess     *session.Session
	factory  ElementFactory
	drags    DragSource
	elements map[elementKey]Element
	log      observability.Logger
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the binder's logger.
func WithLogger(log observability.Logger) Option {
	return func(b *Binder) { b.log = log }
}

// New constructs a Binder over the given session and collaborators.
func New(sess *session.Session, factory ElementFactory, drags DragSource, opts ...Option) *Binder {
	b := &Binder{
		sess:     sess,
		factory:  factory,
		drags:    drags,
		elements: make(map[elementKey]Element),
		log:      observability.NopLogger{},
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Attach creates the display element for an item, positions it, and
// registers the drag subscription. Every delta is added to the item's
// coordinates and mirrored to the element.
func (b *Binder) Attach(item session.Item) Element {
	el := b.factory.CreateElement(item)
	x, y := item.At()
	el.SetPosition(x, y)
	b.elements[elementKey{item.ItemKind(), item.ItemID()}] = el

	kind, id := item.ItemKind(), item.ItemID()
	b.drags.Subscribe(el, func(m Motion) {
		b.sess.Translate(kind, id, m.DX, m.DY)
		x, y := item.At()
		el.SetPosition(x, y)
	})
	b.log.Debug("element attached",
		observability.String("kind", string(kind)),
		observability.Int("id", id))
	return el
}

// AttachAll re-creates elements for every item in the session. It is the
// restore path: a restored item with no live element would be inert.
func (b *Binder) AttachAll() {
	for _, item := range b.sess.Items() {
		b.Attach(item)
	}
}

// Element returns the live element bound to the given item, if any.
func (b *Binder) Element(kind session.Kind, id int) (Element, bool) {
	el, ok := b.elements[elementKey{kind, id}]
	return el, ok
}

// CommitText copies the displayed text of the item's element back into
// the item. It is invoked when the element loses input focus; there is no
// other commit path.
func (b *Binder) CommitText(id int) error {
	el, ok := b.elements[elementKey{session.KindText, id}]
	if !ok {
		return fmt.Errorf("interact: no element for text item %d", id)
	}
	te, ok := el.(TextElement)
	if !ok {
		return fmt.Errorf("interact: element for text item %d has no text", id)
	}
	b.sess.UpdateText(id, te.Text())
	return nil
}

// SetChecked routes a checkbox toggle through the session's unified
// update path so post-toggle state always equals the UI state.
func (b *Binder) SetChecked(id int, checked bool) {
	b.sess.SetChecked(id, checked)
}
