// Package semantic models the document the flattener assembles: pages
// with media boxes, resources, and content streams built from drawing
// operations.
package semantic

// Document is the root of an output document.
type Document struct {
	Pages []*Page
	Info  *DocumentInfo
}

// DocumentInfo carries the common info-dictionary fields.
type DocumentInfo struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

// Page is one output page.
type Page struct {
	Index     int
	MediaBox  Rectangle
	Resources *Resources
	Contents  []ContentStream
}

// Rectangle in PDF user units, lower-left and upper-right corners.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Resources names the fonts and XObjects a page's content refers to.
type Resources struct {
	Fonts    map[string]*Font
	XObjects map[string]XObject
}

// Font describes a simple (base-14) font resource.
type Font struct {
	Subtype  string // Type1 (default)
	BaseFont string
}

// XObject is an external object; the flattener only emits image
// XObjects. Data holds raw 8-bit samples in the named device color
// space; SMask optionally carries a DeviceGray alpha channel.
type XObject struct {
	Subtype          string // Image
	Width            int
	Height           int
	ColorSpace       string // DeviceRGB or DeviceGray
	BitsPerComponent int
	Data             []byte
	SMask            *XObject
	Interpolate      bool
}

// Image is an image XObject.
type Image = XObject

// ContentStream is an ordered list of drawing operations. RawBytes, when
// set, short-circuits operation serialization.
type ContentStream struct {
	Operations []Operation
	RawBytes   []byte
}

// Operation is a single content-stream operator with its operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a typed content-stream operand.
type Operand interface {
	operand()
	Type() string
}

type NumberOperand struct{ Value float64 }

func (NumberOperand) operand()     {}
func (NumberOperand) Type() string { return "number" }

type NameOperand struct{ Value string }

func (NameOperand) operand()     {}
func (NameOperand) Type() string { return "name" }

type StringOperand struct{ Value []byte }

func (StringOperand) operand()     {}
func (StringOperand) Type() string { return "string" }

type ArrayOperand struct{ Values []Operand }

func (ArrayOperand) operand()     {}
func (ArrayOperand) Type() string { return "array" }
