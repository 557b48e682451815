package ocr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/sushgiri-7/pdf-editor/raster"
)

// InputOption mutates an OCR input generated from a raster page.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithRegion sets the recognition region on the OCR input.
func WithRegion(region Region) InputOption {
	return func(in *Input) {
		if region.IsEmpty() {
			in.Region = nil
			return
		}
		in.Region = &region
	}
}

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// InputFromPage converts a cached raster page into an OCR input using PNG
// encoding. The generated ID is stable for the page index to simplify
// correlation with downstream results.
func InputFromPage(page raster.Page, opts ...InputOption) (Input, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, page.Image); err != nil {
		return Input{}, fmt.Errorf("encode raster page: %w", err)
	}
	in := Input{
		ID:        fmt.Sprintf("page-%d", page.Index),
		Image:     buf.Bytes(),
		Format:    ImageFormatPNG,
		PageIndex: page.Index,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}
