package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript) that runs
// annotation macros against the editor.
type Engine interface {
	// Execute executes a script in the context of the editor.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterDOM registers the editor Document Object Model with the engine.
	RegisterDOM(dom EditorDOM) error
}

// EditorDOM exposes the editing session to scripts. It provides a safe,
// controlled API: scripts place and mutate annotation items but never
// touch the raster cache or the store directly.
type EditorDOM interface {
	// PageCount returns the number of rasterized pages.
	PageCount() int

	// AddText places a new text item and returns its id.
	AddText(pageIndex int) int

	// AddImage places a new image item from encoded image bytes and
	// returns its id.
	AddImage(pageIndex int, src []byte) int

	// AddCheckbox places a new checkbox item and returns its id.
	AddCheckbox(pageIndex int) int

	// UpdateText overwrites a text item's content.
	UpdateText(id int, text string)

	// MoveItem shifts an item by a delta and reports whether it exists.
	MoveItem(kind string, id int, dx, dy float64) bool

	// SetChecked sets a checkbox item's state.
	SetChecked(id int, checked bool)

	// Alert shows an alert message (if supported by the surface).
	Alert(message string)
}
