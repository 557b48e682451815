// Package poppler rasterizes PDF bytes by shelling out to pdftoppm.
package poppler

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/sushgiri-7/pdf-editor/raster"
)

// DefaultDPI renders at 1.5x the nominal 72dpi page size.
const DefaultDPI = raster.DefaultScale * 72

// Rasterizer runs the pdftoppm binary from poppler-utils. The zero
// value is usable.
type Rasterizer struct {
	// Binary overrides the pdftoppm executable path.
	Binary string
	// DPI overrides the render resolution.
	DPI int
}

func (r *Rasterizer) binary() string {
	if r.Binary != "" {
		return r.Binary
	}
	return "pdftoppm"
}

func (r *Rasterizer) dpi() int {
	if r.DPI > 0 {
		return r.DPI
	}
	return DefaultDPI
}

// Rasterize renders every page of pdf to a PNG and decodes them in
// page order.
func (r *Rasterizer) Rasterize(ctx context.Context, pdf []byte) ([]raster.Page, error) {
	dir, err := os.MkdirTemp("", "pdf-editor-raster-*")
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, r.binary(),
		"-png", "-r", fmt.Sprint(r.dpi()), input, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &raster.DecodeError{
			Reason: "pdftoppm: " + firstLine(stderr.Bytes()),
			Err:    err,
		}
	}

	names, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	if len(names) == 0 {
		return nil, &raster.DecodeError{Reason: "document produced no pages"}
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(names)

	pages := make([]raster.Page, 0, len(names))
	for i, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("rasterize: %w", err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, &raster.DecodeError{Reason: "decode rendered page", Err: err}
		}
		pages = append(pages, raster.Page{Index: i, Image: img})
	}
	return pages, nil
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimSpace(b))
}
