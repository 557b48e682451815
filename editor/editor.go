// Package editor orchestrates the whole annotation workflow: loading
// and rasterizing a document, placing and binding items, persisting the
// session, and exporting the flattened result.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sushgiri-7/pdf-editor/flatten"
	"github.com/sushgiri-7/pdf-editor/interact"
	"github.com/sushgiri-7/pdf-editor/observability"
	"github.com/sushgiri-7/pdf-editor/persist"
	"github.com/sushgiri-7/pdf-editor/raster"
	"github.com/sushgiri-7/pdf-editor/session"
	"github.com/sushgiri-7/pdf-editor/writer"
)

// ErrNoDocument is returned when save or export is attempted before a
// document has been loaded. No partial output is produced.
var ErrNoDocument = errors.New("editor: no document loaded")

// Editor owns one editing session and its collaborators.
type Editor struct {
	sess       *session.Session
	binder     *interact.Binder
	rasterizer raster.Rasterizer
	store      persist.Store
	storeKey   string
	writerCfg  writer.Config
	log        observability.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(log observability.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// WithStoreKey overrides the storage key sessions are saved under.
func WithStoreKey(key string) Option {
	return func(e *Editor) { e.storeKey = key }
}

// WithWriterConfig sets the output serialization options used by Export.
func WithWriterConfig(cfg writer.Config) Option {
	return func(e *Editor) { e.writerCfg = cfg }
}

// New constructs an Editor with an empty session.
func New(rz raster.Rasterizer, factory interact.ElementFactory, drags interact.DragSource, store persist.Store, opts ...Option) *Editor {
	e := &Editor{
		sess:       session.New(),
		rasterizer: rz,
		store:      store,
		storeKey:   persist.DefaultKey,
		log:        observability.NopLogger{},
	}
	for _, o := range opts {
		o(e)
	}
	e.binder = interact.New(e.sess, factory, drags, interact.WithLogger(e.log))
	return e
}

// Session exposes the editing state for read access and direct updates.
func (e *Editor) Session() *session.Session { return e.sess }

// Binder exposes the element binder, e.g. for text commits on focus loss.
func (e *Editor) Binder() *interact.Binder { return e.binder }

// LoadDocument rasterizes pdf and makes it the session's document. The
// page cache is swapped atomically once the whole sequence exists, so an
// in-flight load never leaves a half-replaced cache. clearItems decides
// whether annotation items from the previous document are discarded;
// identifier counters are never reset either way.
func (e *Editor) LoadDocument(ctx context.Context, pdf []byte, clearItems bool) error {
	start := time.Now()
	pages, err := e.rasterizer.Rasterize(ctx, pdf)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	e.sess.Source = pdf
	e.sess.Pages.Load(pages)
	if clearItems {
		e.sess.TextItems = nil
		e.sess.ImageItems = nil
		e.sess.CheckboxItems = nil
	}
	e.log.Info("document loaded",
		observability.Int(observability.MetricPageCount, len(pages)),
		observability.Int64(observability.MetricRasterizeTime, time.Since(start).Milliseconds()))
	return nil
}

// RenderAll paints every cached page onto its display surface once the
// surface set reports readiness.
func (e *Editor) RenderAll(ctx context.Context, set raster.SurfaceSet) error {
	return e.sess.Pages.RenderAll(ctx, set)
}

// AddText places a new text item on the page and binds its element.
func (e *Editor) AddText(pageIndex int) *session.TextItem {
	item := e.sess.AddText(pageIndex)
	e.binder.Attach(item)
	return item
}

// AddImage places a new image item holding the encoded image bytes and
// binds its element.
func (e *Editor) AddImage(pageIndex int, src []byte) *session.ImageItem {
	item := e.sess.AddImage(pageIndex, src)
	e.binder.Attach(item)
	return item
}

// AddCheckbox places a new unchecked checkbox item and binds its element.
func (e *Editor) AddCheckbox(pageIndex int) *session.CheckboxItem {
	item := e.sess.AddCheckbox(pageIndex)
	e.binder.Attach(item)
	return item
}

// UpdateText overwrites a text item's content. Unknown ids are a silent
// no-op.
func (e *Editor) UpdateText(id int, text string) {
	e.sess.UpdateText(id, text)
}

// SetChecked sets a checkbox item's state through the unified update
// path.
func (e *Editor) SetChecked(id int, checked bool) {
	e.binder.SetChecked(id, checked)
}

// Save encodes the whole session and overwrites the stored blob.
func (e *Editor) Save() error {
	if !e.sess.HasDocument() {
		return ErrNoDocument
	}
	blob, err := persist.Encode(e.sess)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := e.store.Save(e.storeKey, blob); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	e.log.Info("session saved",
		observability.Int(observability.MetricSessionBytes, len(blob)))
	return nil
}

// Load restores the stored session. Counters come back first so later
// adds continue the identifier sequence, the persisted page snapshots
// fill the cache immediately, and the source document is then
// re-rasterized to replace them. Every restored item gets a fresh live
// element; a restored item without one would be inert.
func (e *Editor) Load(ctx context.Context) error {
	blob, err := e.store.Load(e.storeKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	restored, err := persist.Decode(blob)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	e.sess.Counters = restored.Counters
	e.sess.Source = restored.Source
	e.sess.Pages.Load(restored.Pages.Pages())
	e.sess.TextItems = restored.TextItems
	e.sess.ImageItems = restored.ImageItems
	e.sess.CheckboxItems = restored.CheckboxItems

	if e.sess.HasDocument() {
		pages, err := e.rasterizer.Rasterize(ctx, e.sess.Source)
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		e.sess.Pages.Load(pages)
	}

	e.binder.AttachAll()
	e.log.Info("session restored",
		observability.Int(observability.MetricPageCount, e.sess.Pages.Len()),
		observability.Int("items", len(e.sess.Items())))
	return nil
}

// Export flattens the session and writes the final document to w.
func (e *Editor) Export(ctx context.Context, w io.Writer) error {
	if !e.sess.HasDocument() {
		return ErrNoDocument
	}
	start := time.Now()
	doc, err := flatten.New(flatten.WithLogger(e.log)).Flatten(e.sess)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writer.New().Write(ctx, doc, w, e.writerCfg); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	e.log.Info("session exported",
		observability.Int64(observability.MetricFlattenTime, time.Since(start).Milliseconds()))
	return nil
}
