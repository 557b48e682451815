// Package writer serializes a semantic.Document into PDF bytes: a
// classic cross-reference table, Type1 base fonts, image XObjects, and
// per-page content streams.
package writer

import (
	"context"
	"io"

	"github.com/sushgiri-7/pdf-editor/ir/semantic"
)

// Config controls serialization.
type Config struct {
	// Version is the PDF version written in the header; "1.7" if empty.
	Version string
	// CompressContent flate-encodes page content streams. Image sample
	// data is always flate-encoded.
	CompressContent bool
}

// Writer serializes documents.
type Writer interface {
	Write(ctx context.Context, doc *semantic.Document, w io.Writer, cfg Config) error
}

// New returns the default Writer.
func New() Writer { return &impl{} }
