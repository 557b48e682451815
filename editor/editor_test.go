package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"

	"github.com/sushgiri-7/pdf-editor/interact"
	"github.com/sushgiri-7/pdf-editor/persist"
	"github.com/sushgiri-7/pdf-editor/raster"
	"github.com/sushgiri-7/pdf-editor/session"
)

type fakeRasterizer struct {
	sizes [][2]int
	err   error
	calls int
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, pdf []byte) ([]raster.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	pages := make([]raster.Page, len(f.sizes))
	for i, s := range f.sizes {
		pages[i] = raster.Page{Index: i, Image: image.NewNRGBA(image.Rect(0, 0, s[0], s[1]))}
	}
	return pages, nil
}

type fakeElement struct {
	x, y float64
}

func (f *fakeElement) SetPosition(x, y float64) { f.x, f.y = x, y }

type fakeFactory struct {
	created int
}

func (f *fakeFactory) CreateElement(item session.Item) interact.Element {
	f.created++
	return &fakeElement{}
}

type fakeDragSource struct {
	handlers map[interact.Element]func(interact.Motion)
}

func (f *fakeDragSource) Subscribe(el interact.Element, fn func(interact.Motion)) {
	if f.handlers == nil {
		f.handlers = make(map[interact.Element]func(interact.Motion))
	}
	f.handlers[el] = fn
}

func newTestEditor(rz *fakeRasterizer) (*Editor, *fakeFactory, *persist.MemStore) {
	factory := &fakeFactory{}
	store := persist.NewMemStore()
	return New(rz, factory, &fakeDragSource{}, store), factory, store
}

func TestLoadDocumentFillsCache(t *testing.T) {
	rz := &fakeRasterizer{sizes: [][2]int{{100, 200}, {200, 100}}}
	ed, _, _ := newTestEditor(rz)

	if err := ed.LoadDocument(context.Background(), []byte("%PDF"), false); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if ed.Session().Pages.Len() != 2 {
		t.Fatalf("pages = %d, want 2", ed.Session().Pages.Len())
	}
	if !ed.Session().HasDocument() {
		t.Fatal("session has no document after load")
	}
}

func TestLoadDocumentClearItemsPolicy(t *testing.T) {
	rz := &fakeRasterizer{sizes: [][2]int{{100, 200}}}
	ed, _, _ := newTestEditor(rz)
	ctx := context.Background()

	if err := ed.LoadDocument(ctx, []byte("first"), false); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	ed.AddText(0)

	if err := ed.LoadDocument(ctx, []byte("second"), false); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if len(ed.Session().TextItems) != 1 {
		t.Fatal("keep policy dropped existing items")
	}

	if err := ed.LoadDocument(ctx, []byte("third"), true); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if len(ed.Session().TextItems) != 0 {
		t.Fatal("clear policy kept stale items")
	}
	// Counters survive the clear so ids never repeat.
	if item := ed.AddText(0); item.ID != 1 {
		t.Fatalf("id after clear = %d, want 1", item.ID)
	}
}

func TestLoadDocumentPropagatesDecodeError(t *testing.T) {
	rz := &fakeRasterizer{err: &raster.DecodeError{Reason: "not a pdf"}}
	ed, _, _ := newTestEditor(rz)

	err := ed.LoadDocument(context.Background(), []byte("junk"), false)
	var decodeErr *raster.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *raster.DecodeError", err)
	}
	if ed.Session().HasDocument() {
		t.Fatal("failed load must not install a document")
	}
}

func TestAddItemsBindElements(t *testing.T) {
	rz := &fakeRasterizer{sizes: [][2]int{{100, 200}}}
	ed, factory, _ := newTestEditor(rz)
	if err := ed.LoadDocument(context.Background(), []byte("%PDF"), false); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	ed.AddText(0)
	ed.AddCheckbox(0)
	ed.AddImage(0, []byte{1})
	if factory.created != 3 {
		t.Fatalf("elements created = %d, want 3", factory.created)
	}
}

func TestSaveWithoutDocument(t *testing.T) {
	ed, _, _ := newTestEditor(&fakeRasterizer{})
	if err := ed.Save(); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("Save() error = %v, want ErrNoDocument", err)
	}
}

func TestExportWithoutDocument(t *testing.T) {
	ed, _, _ := newTestEditor(&fakeRasterizer{})
	var out bytes.Buffer
	if err := ed.Export(context.Background(), &out); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("Export() error = %v, want ErrNoDocument", err)
	}
	if out.Len() != 0 {
		t.Fatal("partial output produced")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rz := &fakeRasterizer{sizes: [][2]int{{100, 200}, {200, 100}}}
	ed, _, store := newTestEditor(rz)
	ctx := context.Background()

	if err := ed.LoadDocument(ctx, []byte("%PDF source"), false); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	ed.AddText(0)
	ed.UpdateText(0, "edited")
	cb := ed.AddCheckbox(1)
	ed.SetChecked(cb.ID, true)
	if err := ed.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	factory := &fakeFactory{}
	ed2 := New(rz, factory, &fakeDragSource{}, store)
	if err := ed2.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	sess := ed2.Session()
	if got := sess.TextItems[0].Text; got != "edited" {
		t.Fatalf("restored text = %q", got)
	}
	if !sess.CheckboxItems[0].Checked {
		t.Fatal("restored checkbox lost checked state")
	}
	if sess.Pages.Len() != 2 {
		t.Fatalf("restored pages = %d, want 2", sess.Pages.Len())
	}
	// Every restored item needs a live element or it is inert.
	if factory.created != len(sess.Items()) {
		t.Fatalf("elements created = %d, want %d", factory.created, len(sess.Items()))
	}
	// The source document is re-rasterized, not trusted from snapshots.
	if rz.calls < 2 {
		t.Fatalf("rasterizer calls = %d, want load + restore", rz.calls)
	}
	if item := ed2.AddText(0); item.ID != 1 {
		t.Fatalf("id after restore = %d, want 1", item.ID)
	}
}

func TestLoadWithEmptyStore(t *testing.T) {
	ed, _, _ := newTestEditor(&fakeRasterizer{})
	err := ed.Load(context.Background())
	var decodeErr *persist.SessionDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *persist.SessionDecodeError", err)
	}
	// The editor keeps running with the empty session.
	if ed.Session().Pages.Len() != 0 || len(ed.Session().Items()) != 0 {
		t.Fatal("failed restore dirtied the session")
	}
}

func TestExportWritesPDF(t *testing.T) {
	rz := &fakeRasterizer{sizes: [][2]int{{100, 200}}}
	ed, _, _ := newTestEditor(rz)
	ctx := context.Background()
	if err := ed.LoadDocument(ctx, []byte("%PDF"), false); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	ed.AddText(0)

	var out bytes.Buffer
	if err := ed.Export(ctx, &out); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	for _, want := range []string{"%PDF-1.7", "(New Text) Tj", "%%EOF"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}
