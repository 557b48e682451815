// Package persist encodes the full editing session into a single JSON
// blob and back, and provides the storage boundary the blob lives
// behind.
package persist

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"strings"

	"github.com/sushgiri-7/pdf-editor/raster"
	"github.com/sushgiri-7/pdf-editor/session"
)

// DefaultKey is the storage key the editor saves the session under.
const DefaultKey = "savedDocument"

// SessionDecodeError reports that a persisted session blob is absent or
// malformed. The editor surfaces it as "nothing to restore" and keeps
// running with the empty session.
type SessionDecodeError struct {
	Reason string
	Err    error
}

func (e *SessionDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session decode: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("session decode: %s", e.Reason)
}

func (e *SessionDecodeError) Unwrap() error { return e.Err }

// document is the wire form of a session. Every field is always
// present so a decoder never sees a partially specified record.
type document struct {
	PDFFile       string                  `json:"pdfFile"`
	PDFPages      []string                `json:"pdfPages"`
	TextItems     []*session.TextItem     `json:"textItems"`
	ImageItems    []*session.ImageItem    `json:"imageItems"`
	CheckboxItems []*session.CheckboxItem `json:"checkboxItems"`
	session.Counters
}

const (
	pdfMediaType  = "application/pdf"
	pageMediaType = "image/png"
)

// EncodeDataURL wraps data in a self-describing base64 data URL.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL back into its media type and
// payload bytes.
func DecodeDataURL(u string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	mediaType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("missing base64 payload")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode payload: %w", err)
	}
	return mediaType, data, nil
}

// Encode serializes a session. The source document and every raster
// page become data URLs; item collections and counters are carried
// verbatim.
func Encode(sess *session.Session) ([]byte, error) {
	doc := document{
		PDFFile:       EncodeDataURL(pdfMediaType, sess.Source),
		PDFPages:      []string{},
		TextItems:     sess.TextItems,
		ImageItems:    sess.ImageItems,
		CheckboxItems: sess.CheckboxItems,
		Counters:      sess.Counters,
	}
	if doc.TextItems == nil {
		doc.TextItems = []*session.TextItem{}
	}
	if doc.ImageItems == nil {
		doc.ImageItems = []*session.ImageItem{}
	}
	if doc.CheckboxItems == nil {
		doc.CheckboxItems = []*session.CheckboxItem{}
	}
	for _, p := range sess.Pages.Pages() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, p.Image); err != nil {
			return nil, fmt.Errorf("encode page %d snapshot: %w", p.Index, err)
		}
		doc.PDFPages = append(doc.PDFPages, EncodeDataURL(pageMediaType, buf.Bytes()))
	}
	return json.Marshal(doc)
}

// Decode reconstructs a session from an encoded blob. Counters are
// restored before anything else so identifier sequences continue
// correctly. The persisted page snapshots become the session's raster
// pages; re-rasterizing the source document is the caller's decision.
func Decode(blob []byte) (*session.Session, error) {
	if len(blob) == 0 {
		return nil, &SessionDecodeError{Reason: "no saved session"}
	}
	var doc document
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, &SessionDecodeError{Reason: "malformed blob", Err: err}
	}

	sess := session.New()
	sess.Counters = doc.Counters

	_, source, err := DecodeDataURL(doc.PDFFile)
	if err != nil {
		return nil, &SessionDecodeError{Reason: "source document", Err: err}
	}
	sess.Source = source

	pages := make([]raster.Page, 0, len(doc.PDFPages))
	for i, u := range doc.PDFPages {
		_, data, err := DecodeDataURL(u)
		if err != nil {
			return nil, &SessionDecodeError{Reason: fmt.Sprintf("page snapshot %d", i), Err: err}
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, &SessionDecodeError{Reason: fmt.Sprintf("page snapshot %d", i), Err: err}
		}
		pages = append(pages, raster.Page{Index: i, Image: img})
	}
	sess.Pages.Load(pages)

	sess.TextItems = doc.TextItems
	sess.ImageItems = doc.ImageItems
	sess.CheckboxItems = doc.CheckboxItems
	return sess, nil
}
