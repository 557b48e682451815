package scripting

import (
	"context"
	"encoding/base64"

	"github.com/dop251/goja"
)

type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	vm := goja.New()
	return &GojaEngine{vm: vm}
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val.Export(), nil
}

func (e *GojaEngine) RegisterDOM(dom EditorDOM) error {
	// Expose 'app' object
	appObj := e.vm.NewObject()
	err := appObj.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Arguments[0].String()
		}
		dom.Alert(msg)
		return goja.Undefined()
	})
	if err != nil {
		return err
	}
	e.vm.Set("app", appObj)

	// Expose editor operations globally (as if 'this' is the editor)
	e.vm.Set("pageCount", func(call goja.FunctionCall) goja.Value {
		return e.vm.ToValue(dom.PageCount())
	})

	e.vm.Set("addText", func(call goja.FunctionCall) goja.Value {
		page := 0
		if len(call.Arguments) > 0 {
			page = int(call.Arguments[0].ToInteger())
		}
		return e.vm.ToValue(dom.AddText(page))
	})

	e.vm.Set("addCheckbox", func(call goja.FunctionCall) goja.Value {
		page := 0
		if len(call.Arguments) > 0 {
			page = int(call.Arguments[0].ToInteger())
		}
		return e.vm.ToValue(dom.AddCheckbox(page))
	})

	e.vm.Set("addImage", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		page := int(call.Arguments[0].ToInteger())
		src := decodeImageArg(call.Arguments[1].String())
		return e.vm.ToValue(dom.AddImage(page, src))
	})

	e.vm.Set("updateText", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		dom.UpdateText(int(call.Arguments[0].ToInteger()), call.Arguments[1].String())
		return goja.Undefined()
	})

	e.vm.Set("moveItem", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 4 {
			return e.vm.ToValue(false)
		}
		moved := dom.MoveItem(
			call.Arguments[0].String(),
			int(call.Arguments[1].ToInteger()),
			call.Arguments[2].ToFloat(),
			call.Arguments[3].ToFloat(),
		)
		return e.vm.ToValue(moved)
	})

	e.vm.Set("setChecked", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		dom.SetChecked(int(call.Arguments[0].ToInteger()), call.Arguments[1].ToBoolean())
		return goja.Undefined()
	})

	return nil
}

// decodeImageArg accepts either base64-encoded image bytes or raw bytes
// passed as a string.
func decodeImageArg(s string) []byte {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data
	}
	return []byte(s)
}
