package persist

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/sushgiri-7/pdf-editor/raster"
	"github.com/sushgiri-7/pdf-editor/session"
)

func sampleSession() *session.Session {
	sess := session.New()
	sess.Source = []byte("%PDF-1.7 fake body")
	sess.Pages.Load([]raster.Page{
		{Image: image.NewNRGBA(image.Rect(0, 0, 4, 8))},
		{Image: image.NewNRGBA(image.Rect(0, 0, 8, 4))},
	})
	sess.AddText(0)
	sess.AddText(1)
	sess.AddCheckbox(0)
	sess.SetChecked(0, true)
	sess.AddImage(1, []byte{0x89, 'P', 'N', 'G'})
	return sess
}

func TestRoundTrip(t *testing.T) {
	sess := sampleSession()
	blob, err := Encode(sess)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !bytes.Equal(got.Source, sess.Source) {
		t.Error("source bytes changed across round trip")
	}
	if got.Pages.Len() != 2 {
		t.Fatalf("pages = %d, want 2", got.Pages.Len())
	}
	p, _ := got.Pages.Get(1)
	if p.Width() != 8 || p.Height() != 4 {
		t.Fatalf("page 1 is %dx%d, want 8x4", p.Width(), p.Height())
	}
	if got.Counters != sess.Counters {
		t.Fatalf("counters = %+v, want %+v", got.Counters, sess.Counters)
	}
	if len(got.TextItems) != 2 || got.TextItems[1].ID != 1 {
		t.Fatalf("text items = %+v", got.TextItems)
	}
	if !got.CheckboxItems[0].Checked {
		t.Error("checked state lost")
	}
	if !bytes.Equal(got.ImageItems[0].Src, sess.ImageItems[0].Src) {
		t.Error("image source bytes changed")
	}
}

func TestCountersContinueAfterReload(t *testing.T) {
	blob, err := Encode(sampleSession())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	item := got.AddText(0)
	if item.ID != 2 {
		t.Fatalf("id after reload = %d, want 2", item.ID)
	}
}

func TestEncodeEmptySessionKeepsAllFields(t *testing.T) {
	blob, err := Encode(session.New())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for _, want := range []string{
		`"pdfFile":"data:application/pdf;base64,"`,
		`"pdfPages":[]`,
		`"textItems":[]`,
		`"imageItems":[]`,
		`"checkboxItems":[]`,
		`"textCounter":0`,
		`"imageCounter":0`,
		`"checkboxCounter":0`,
	} {
		if !strings.Contains(string(blob), want) {
			t.Errorf("blob missing %s", want)
		}
	}
}

func TestDecodeMalformedBlob(t *testing.T) {
	for name, blob := range map[string][]byte{
		"empty":       nil,
		"not json":    []byte("{{{"),
		"bad pdf url": []byte(`{"pdfFile":"ftp://x","pdfPages":[]}`),
		"bad page":    []byte(`{"pdfFile":"data:application/pdf;base64,","pdfPages":["data:image/png;base64,AAAA"]}`),
	} {
		_, err := Decode(blob)
		var decodeErr *SessionDecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("%s: error = %v, want *SessionDecodeError", name, err)
		}
	}
}

func TestDataURLRoundTrip(t *testing.T) {
	u := EncodeDataURL("image/png", []byte{1, 2, 3})
	mt, data, err := DecodeDataURL(u)
	if err != nil {
		t.Fatalf("DecodeDataURL error = %v", err)
	}
	if mt != "image/png" || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("got %q %v", mt, data)
	}
}

func TestFileStore(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if _, err := store.Load(DefaultKey); err == nil {
		t.Fatal("expected error for absent key")
	}
	if err := store.Save(DefaultKey, []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(DefaultKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != `{"x":1}` {
		t.Fatalf("Load() = %q", got)
	}
}

func TestSealedStoreRoundTrip(t *testing.T) {
	store := NewSealedStore(NewMemStore(), "hunter2")
	if err := store.Save(DefaultKey, []byte("payload")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(DefaultKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("Load() = %q", got)
	}
}

func TestSealedStoreWrongPassphrase(t *testing.T) {
	inner := NewMemStore()
	if err := NewSealedStore(inner, "right").Save(DefaultKey, []byte("payload")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	_, err := NewSealedStore(inner, "wrong").Load(DefaultKey)
	var decodeErr *SessionDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *SessionDecodeError", err)
	}
}
