package ocr

import (
	"context"
	"fmt"

	"github.com/sushgiri-7/pdf-editor/raster"
)

var defaultEngine Engine = &noopEngine{}

// DefaultEngine returns the library's default OCR engine. Importing the
// tesseract subpackage replaces the no-op default.
func DefaultEngine() Engine {
	return defaultEngine
}

// SetDefaultEngine sets the library's default OCR engine.
func SetDefaultEngine(engine Engine) {
	defaultEngine = engine
}

// RecognizePages converts raster pages to OCR inputs and invokes the provided
// engine. If the engine supports batch operation, it is used; otherwise calls
// are executed sequentially.
func RecognizePages(ctx context.Context, engine Engine, pages []raster.Page, opts ...InputOption) ([]Result, error) {
	inputs := make([]Input, 0, len(pages))
	for _, page := range pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		in, err := InputFromPage(page, opts...)
		if err != nil {
			return nil, fmt.Errorf("build input for page %d: %w", page.Index, err)
		}
		inputs = append(inputs, in)
	}
	if b, ok := engine.(BatchEngine); ok {
		results, err := b.RecognizeBatch(ctx, inputs)
		if err != nil {
			return nil, err
		}
		for i := range results {
			if i < len(inputs) {
				results[i].PageIndex = inputs[i].PageIndex
			}
		}
		return results, nil
	}
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		res, err := engine.Recognize(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", in.ID, err)
		}
		res.PageIndex = in.PageIndex
		results = append(results, res)
	}
	return results, nil
}

// DefaultRecognizePages runs recognition with the default engine.
func DefaultRecognizePages(ctx context.Context, pages []raster.Page, opts ...InputOption) ([]Result, error) {
	return RecognizePages(ctx, DefaultEngine(), pages, opts...)
}

type noopEngine struct{}

func (n noopEngine) Name() string {
	return "noop"
}

func (n noopEngine) Recognize(ctx context.Context, input Input) (Result, error) {
	return Result{InputID: input.ID}, nil
}
