package writer

import (
	"bytes"
	"context"
	"testing"

	"github.com/sushgiri-7/pdf-editor/builder"
	"github.com/sushgiri-7/pdf-editor/ir/semantic"
)

func buildTwoPageDoc(t *testing.T) *semantic.Document {
	t.Helper()
	b := builder.NewBuilder()
	b.NewPage(210, 420).
		DrawText("hello", 21, 399, builder.TextOptions{FontSize: 12}).
		DrawRectangle(21, 394, 5, 5, builder.RectOptions{Fill: true}).
		Finish()
	b.NewPage(210, 105).Finish()
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return doc
}

func TestWriteBasicStructure(t *testing.T) {
	doc := buildTwoPageDoc(t)
	var out bytes.Buffer
	if err := New().Write(context.Background(), doc, &out, Config{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	pdf := out.Bytes()

	for _, want := range []string{
		"%PDF-1.7",
		"/Type /Catalog",
		"/Type /Pages",
		"/Count 2",
		"/Type /Page",
		"/BaseFont /Helvetica",
		"/MediaBox [0 0 210 420]",
		"/MediaBox [0 0 210 105]",
		"(hello) Tj",
		"21 394 5 5 re",
		"startxref",
		"%%EOF",
	} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteImageXObject(t *testing.T) {
	img := &semantic.Image{
		Subtype:          "Image",
		Width:            2,
		Height:           2,
		ColorSpace:       "DeviceRGB",
		BitsPerComponent: 8,
		Data:             bytes.Repeat([]byte{0x40}, 12),
	}
	b := builder.NewBuilder()
	b.NewPage(210, 297).DrawImage(img, 10, 20, 50, 50, builder.ImageOptions{}).Finish()
	doc, _ := b.Build()

	var out bytes.Buffer
	if err := New().Write(context.Background(), doc, &out, Config{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	pdf := out.Bytes()
	for _, want := range []string{
		"/Subtype /Image",
		"/Width 2",
		"/Height 2",
		"/ColorSpace /DeviceRGB",
		"/Filter /FlateDecode",
		"/Im1 Do",
		"50 0 0 50 10 20 cm",
	} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteCompressContent(t *testing.T) {
	doc := buildTwoPageDoc(t)
	var out bytes.Buffer
	if err := New().Write(context.Background(), doc, &out, Config{CompressContent: true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if bytes.Contains(out.Bytes(), []byte("(hello) Tj")) {
		t.Error("content stream was not compressed")
	}
}

func TestWriteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := New().Write(ctx, buildTwoPageDoc(t), &out, Config{}); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestWriteInfoDictionary(t *testing.T) {
	b := builder.NewBuilder()
	b.SetInfo(&semantic.DocumentInfo{Title: "edited_pdf", Producer: "pdf-editor"})
	b.NewPage(210, 297).Finish()
	doc, _ := b.Build()

	var out bytes.Buffer
	if err := New().Write(context.Background(), doc, &out, Config{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for _, want := range []string{"/Title (edited_pdf)", "/Producer (pdf-editor)", "/Info"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}
