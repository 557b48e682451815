package raster

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// DefaultScale is the rasterization scale the editor requests from
// Rasterizer implementations: 1.5x the page's nominal size.
const DefaultScale = 1.5

// Page is one rasterized page of the source document. Pages are created
// in document order and are immutable once created; re-rasterization
// replaces the whole sequence.
type Page struct {
	Index int
	Image image.Image
}

// Width returns the raster pixel width.
func (p Page) Width() int { return p.Image.Bounds().Dx() }

// Height returns the raster pixel height.
func (p Page) Height() int { return p.Image.Bounds().Dy() }

// Rasterizer turns the raw bytes of a source document into ordered
// per-page raster images. A malformed document yields a *DecodeError.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdf []byte) ([]Page, error)
}

// DecodeError reports that the source document could not be rasterized.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rasterize: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("rasterize: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrPageOutOfRange is returned by Cache.Get for an unknown page index.
var ErrPageOutOfRange = fmt.Errorf("raster: page index out of range")

// Cache holds the ordered raster pages of the currently loaded document.
// Load replaces the entire sequence atomically: a reader never observes a
// half-replaced sequence, even if an in-flight rasterization finishes
// after a newer document was loaded.
type Cache struct {
	mu    sync.RWMutex
	pages []Page
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// Load replaces the cached page sequence. Page indices are renumbered in
// sequence order.
func (c *Cache) Load(pages []Page) {
	next := make([]Page, len(pages))
	copy(next, pages)
	for i := range next {
		next[i].Index = i
	}
	c.mu.Lock()
	c.pages = next
	c.mu.Unlock()
}

// Len reports the number of cached pages.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}

// Get returns the page at index or ErrPageOutOfRange.
func (c *Cache) Get(index int) (Page, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.pages) {
		return Page{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, len(c.pages))
	}
	return c.pages[index], nil
}

// Pages returns a snapshot copy of the page sequence.
func (c *Cache) Pages() []Page {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Surface is a live display surface a page raster is painted onto.
type Surface interface {
	// SetSize resizes the surface to the raster pixel dimensions before
	// the paint.
	SetSize(width, height int)
	// Draw paints the raster image onto the surface at the origin.
	Draw(img image.Image)
}

// SurfaceSet provides one surface per cached page. Ready is closed once
// every surface exists; RenderAll paints nothing before that.
type SurfaceSet interface {
	Ready() <-chan struct{}
	Surface(index int) Surface
}

// RenderAll paints every cached page onto its surface. It waits for the
// surface set's readiness signal first; painting on a wall-clock delay
// instead of this signal is how the paint races the surface binding.
func (c *Cache) RenderAll(ctx context.Context, set SurfaceSet) error {
	select {
	case <-set.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}
	for _, p := range c.Pages() {
		s := set.Surface(p.Index)
		if s == nil {
			return fmt.Errorf("raster: no surface for page %d", p.Index)
		}
		s.SetSize(p.Width(), p.Height())
		s.Draw(p.Image)
	}
	return nil
}
