package ocr

// Package ocr defines abstraction layers for plugging third-party OCR engines
// (for example, Tesseract) into the editor. Recognition runs over the cached
// raster pages; recognized text blocks can be placed back into the session as
// text items. The interfaces are intentionally small and transport-agnostic so
// engines can be backed by local binaries, native libraries, or remote APIs
// without leaking provider-specific concerns into callers.
