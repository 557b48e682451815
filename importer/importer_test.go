package importer

import (
	"testing"

	"github.com/sushgiri-7/pdf-editor/session"
)

type fakeTarget struct {
	sess  *session.Session
	pages []int
	texts []string
}

func newFakeTarget() *fakeTarget { return &fakeTarget{sess: session.New()} }

func (f *fakeTarget) AddText(pageIndex int) *session.TextItem {
	f.pages = append(f.pages, pageIndex)
	return f.sess.AddText(pageIndex)
}

func (f *fakeTarget) UpdateText(id int, text string) {
	f.sess.UpdateText(id, text)
	f.texts = append(f.texts, text)
}

func TestMarkdownBlocks(t *testing.T) {
	target := newFakeTarget()
	src := "# Title\n\nFirst paragraph\nwith a soft break.\n\n- one\n- two\n"

	n, err := Markdown(target, 1, src)
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("placed = %d, want 4", n)
	}
	want := []string{"Title", "First paragraph with a soft break.", "• one", "• two"}
	for i, w := range want {
		if target.texts[i] != w {
			t.Errorf("item %d = %q, want %q", i, target.texts[i], w)
		}
	}
	for _, p := range target.pages {
		if p != 1 {
			t.Fatalf("item placed on page %d, want 1", p)
		}
	}
}

func TestMarkdownCascadesPositions(t *testing.T) {
	target := newFakeTarget()
	if _, err := Markdown(target, 0, "a\n\nb\n\nc\n"); err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	items := target.sess.TextItems
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Y <= items[i-1].Y {
			t.Fatalf("item %d does not cascade below item %d", i, i-1)
		}
	}
}

func TestHTMLBlocks(t *testing.T) {
	target := newFakeTarget()
	src := "<h1>Head</h1><p>Body <b>bold</b> text</p><ul><li>entry</li></ul>"

	n, err := HTML(target, 0, src)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("placed = %d, want 3", n)
	}
	want := []string{"Head", "Body bold text", "• entry"}
	for i, w := range want {
		if target.texts[i] != w {
			t.Errorf("item %d = %q, want %q", i, target.texts[i], w)
		}
	}
}

func TestHTMLEmptyInput(t *testing.T) {
	target := newFakeTarget()
	n, err := HTML(target, 0, "")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("placed = %d, want 0", n)
	}
}
