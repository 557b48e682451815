package scripting

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeDOM struct {
	texts      []int
	checkboxes []int
	images     [][]byte
	updates    map[int]string
	moves      int
	alerts     []string
	nextID     int
}

func newFakeDOM() *fakeDOM { return &fakeDOM{updates: map[int]string{}} }

func (d *fakeDOM) PageCount() int { return 2 }

func (d *fakeDOM) AddText(pageIndex int) int {
	id := d.nextID
	d.nextID++
	d.texts = append(d.texts, pageIndex)
	return id
}

func (d *fakeDOM) AddImage(pageIndex int, src []byte) int {
	id := d.nextID
	d.nextID++
	d.images = append(d.images, src)
	return id
}

func (d *fakeDOM) AddCheckbox(pageIndex int) int {
	id := d.nextID
	d.nextID++
	d.checkboxes = append(d.checkboxes, pageIndex)
	return id
}

func (d *fakeDOM) UpdateText(id int, text string) { d.updates[id] = text }

func (d *fakeDOM) MoveItem(kind string, id int, dx, dy float64) bool {
	d.moves++
	return true
}

func (d *fakeDOM) SetChecked(id int, checked bool) {}

func (d *fakeDOM) Alert(message string) { d.alerts = append(d.alerts, message) }

func TestGojaEngine_ContextCancellation(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	if _, err := engine.Execute(ctx, "while (true) {}"); err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}

	if _, err := engine.Execute(context.Background(), "1 + 1"); err != nil {
		t.Fatalf("engine should recover after cancellation, got %v", err)
	}
}

func TestGojaEngine_ImmediateCancel(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Execute(ctx, "42"); err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
}

func TestGojaEngine_AnnotationMacro(t *testing.T) {
	engine := NewEngine()
	dom := newFakeDOM()
	if err := engine.RegisterDOM(dom); err != nil {
		t.Fatalf("RegisterDOM: %v", err)
	}

	script := `
		for (var p = 0; p < pageCount(); p++) {
			var id = addText(p);
			updateText(id, "page " + p);
			addCheckbox(p);
		}
		moveItem("text", 0, 5, -5);
		app.alert("done");
	`
	if _, err := engine.Execute(context.Background(), script); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(dom.texts) != 2 || len(dom.checkboxes) != 2 {
		t.Fatalf("texts=%d checkboxes=%d, want 2 each", len(dom.texts), len(dom.checkboxes))
	}
	if dom.updates[0] != "page 0" {
		t.Fatalf("update for id 0 = %q", dom.updates[0])
	}
	if dom.moves != 1 {
		t.Fatalf("moves = %d, want 1", dom.moves)
	}
	if len(dom.alerts) != 1 || dom.alerts[0] != "done" {
		t.Fatalf("alerts = %v", dom.alerts)
	}
}

func TestGojaEngine_AddImageDecodesBase64(t *testing.T) {
	engine := NewEngine()
	dom := newFakeDOM()
	if err := engine.RegisterDOM(dom); err != nil {
		t.Fatalf("RegisterDOM: %v", err)
	}

	// "AQID" is base64 for bytes 1 2 3.
	if _, err := engine.Execute(context.Background(), `addImage(0, "AQID")`); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(dom.images) != 1 || len(dom.images[0]) != 3 || dom.images[0][0] != 1 {
		t.Fatalf("images = %v", dom.images)
	}
}
