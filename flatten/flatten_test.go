package flatten

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/sushgiri-7/pdf-editor/ir/semantic"
	"github.com/sushgiri-7/pdf-editor/raster"
	"github.com/sushgiri-7/pdf-editor/session"
	"github.com/sushgiri-7/pdf-editor/writer"
)

func grayPage(index, w, h int) raster.Page {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xEE
	}
	return raster.Page{Index: index, Image: img}
}

func twoPageSession() *session.Session {
	sess := session.New()
	sess.Source = []byte("%PDF-fake")
	sess.Pages.Load([]raster.Page{
		grayPage(0, 100, 200),
		grayPage(1, 200, 100),
	})
	return sess
}

func TestFlattenPageGeometry(t *testing.T) {
	doc, err := New().Flatten(twoPageSession())
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
	if mb := doc.Pages[0].MediaBox; mb.URX != 210 || mb.URY != 420 {
		t.Fatalf("page 0 media box = %+v, want 210x420", mb)
	}
	if mb := doc.Pages[1].MediaBox; mb.URX != 210 || mb.URY != 105 {
		t.Fatalf("page 1 media box = %+v, want 210x105", mb)
	}
}

func TestFlattenCheckedCheckbox(t *testing.T) {
	sess := twoPageSession()
	sess.CheckboxItems = []*session.CheckboxItem{
		{ID: 0, PageIndex: 0, X: 10, Y: 10, Checked: true},
	}
	doc, err := New().Flatten(sess)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	var out bytes.Buffer
	if err := writer.New().Write(context.Background(), doc, &out, writer.Config{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	// (10,10) on a 100px-wide page projects to (21,21) from the top edge,
	// so the 5-unit square's lower-left lands at y = 420-21-5.
	for _, want := range []string{"21 394 5 5 re", "f"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFlattenUncheckedCheckboxIsStroked(t *testing.T) {
	sess := twoPageSession()
	sess.CheckboxItems = []*session.CheckboxItem{
		{ID: 0, PageIndex: 1, X: 0, Y: 0, Checked: false},
	}
	doc, err := New().Flatten(sess)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if !hasOperator(doc.Pages[1].Contents, "S") {
		t.Fatal("unchecked checkbox did not stroke")
	}
	if hasOperator(doc.Pages[0].Contents, "re") {
		t.Fatal("checkbox drawn on the wrong page")
	}
}

func TestFlattenTextBaseline(t *testing.T) {
	sess := twoPageSession()
	sess.TextItems = []*session.TextItem{
		{ID: 0, PageIndex: 0, X: 50, Y: 50, Text: "New Text"},
	}
	doc, err := New().Flatten(sess)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	var out bytes.Buffer
	if err := writer.New().Write(context.Background(), doc, &out, writer.Config{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for _, want := range []string{"(New Text) Tj", "/F1 12 Tf", "105 315 Tm"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFlattenImagePlacement(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var enc bytes.Buffer
	if err := png.Encode(&enc, src); err != nil {
		t.Fatalf("png encode: %v", err)
	}

	sess := twoPageSession()
	sess.ImageItems = []*session.ImageItem{
		{ID: 0, PageIndex: 0, X: 100, Y: 100, Src: enc.Bytes(), Width: 100, Height: 100},
	}
	doc, err := New().Flatten(sess)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	var out bytes.Buffer
	if err := writer.New().Write(context.Background(), doc, &out, writer.Config{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	// 100px at scale 2.1 is 210 output units; y = 420 - 210 - 210 = 0.
	if !bytes.Contains(out.Bytes(), []byte("210 0 0 210 210 0 cm")) {
		t.Error("image placement matrix missing")
	}
}

func TestFlattenSkipsDanglingPageIndex(t *testing.T) {
	sess := twoPageSession()
	sess.TextItems = []*session.TextItem{
		{ID: 0, PageIndex: 7, X: 50, Y: 50, Text: "ghost"},
	}
	doc, err := New().Flatten(sess)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	for _, p := range doc.Pages {
		if hasOperator(p.Contents, "Tj") {
			t.Fatal("dangling item was drawn")
		}
	}
}

func TestFlattenBadImageBytes(t *testing.T) {
	sess := twoPageSession()
	sess.ImageItems = []*session.ImageItem{
		{ID: 3, PageIndex: 0, Src: []byte("junk"), Width: 10, Height: 10},
	}
	if _, err := New().Flatten(sess); err == nil {
		t.Fatal("expected error for undecodable image item")
	}
}

func TestFlattenEmptySession(t *testing.T) {
	doc, err := New().Flatten(session.New())
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Fatalf("pages = %d, want 0", len(doc.Pages))
	}
}

func hasOperator(streams []semantic.ContentStream, operator string) bool {
	for _, cs := range streams {
		for _, op := range cs.Operations {
			if op.Operator == operator {
				return true
			}
		}
	}
	return false
}
