// Package session holds the complete, persistable state of one editing
// instance: the source document, its raster pages, the three annotation
// item collections, and their identifier counters.
package session

import (
	"github.com/sushgiri-7/pdf-editor/raster"
)

// Kind identifies one of the three annotation item variants.
type Kind string

const (
	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindCheckbox Kind = "checkbox"
)

// Item is the capability set shared by all annotation variants: placed on
// one page, positioned in raster pixel coordinates, movable by deltas.
type Item interface {
	ItemKind() Kind
	ItemID() int
	ItemPage() int
	At() (x, y float64)
	MoveBy(dx, dy float64)
}

// TextItem is an editable text annotation.
type TextItem struct {
	ID        int     `json:"id"`
	PageIndex int     `json:"pageIndex"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
}

func (t *TextItem) ItemKind() Kind         { return KindText }
func (t *TextItem) ItemID() int            { return t.ID }
func (t *TextItem) ItemPage() int          { return t.PageIndex }
func (t *TextItem) At() (float64, float64) { return t.X, t.Y }
func (t *TextItem) MoveBy(dx, dy float64)  { t.X += dx; t.Y += dy }

// ImageItem is a placed image annotation. Src holds the original encoded
// image bytes (PNG or JPEG); Width and Height are in raster pixels.
type ImageItem struct {
	ID        int     `json:"id"`
	PageIndex int     `json:"pageIndex"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Src       []byte  `json:"src"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

func (i *ImageItem) ItemKind() Kind         { return KindImage }
func (i *ImageItem) ItemID() int            { return i.ID }
func (i *ImageItem) ItemPage() int          { return i.PageIndex }
func (i *ImageItem) At() (float64, float64) { return i.X, i.Y }
func (i *ImageItem) MoveBy(dx, dy float64)  { i.X += dx; i.Y += dy }

// CheckboxItem is a toggleable checkbox annotation.
type CheckboxItem struct {
	ID        int     `json:"id"`
	PageIndex int     `json:"pageIndex"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Checked   bool    `json:"checked"`
}

func (c *CheckboxItem) ItemKind() Kind         { return KindCheckbox }
func (c *CheckboxItem) ItemID() int            { return c.ID }
func (c *CheckboxItem) ItemPage() int          { return c.PageIndex }
func (c *CheckboxItem) At() (float64, float64) { return c.X, c.Y }
func (c *CheckboxItem) MoveBy(dx, dy float64)  { c.X += dx; c.Y += dy }

// Counters hold the next identifier per item kind. Each counter only ever
// increases; they are persisted so identifiers stay unique across
// save/reload cycles.
type Counters struct {
	Text     int `json:"textCounter"`
	Image    int `json:"imageCounter"`
	Checkbox int `json:"checkboxCounter"`
}

// Session aggregates the whole editing state. It exclusively owns the
// pages and items; display elements only hold back-references into it.
type Session struct {
	Source        []byte
	Pages         *raster.Cache
	TextItems     []*TextItem
	ImageItems    []*ImageItem
	CheckboxItems []*CheckboxItem
	Counters      Counters
}

// New returns an empty session with an empty page cache.
func New() *Session {
	return &Session{Pages: raster.NewCache()}
}

// HasDocument reports whether a source document is loaded.
func (s *Session) HasDocument() bool { return len(s.Source) > 0 }

// Items returns every item of the session in checkbox, text, image order.
func (s *Session) Items() []Item {
	out := make([]Item, 0, len(s.CheckboxItems)+len(s.TextItems)+len(s.ImageItems))
	for _, c := range s.CheckboxItems {
		out = append(out, c)
	}
	for _, t := range s.TextItems {
		out = append(out, t)
	}
	for _, i := range s.ImageItems {
		out = append(out, i)
	}
	return out
}
