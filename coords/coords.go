package coords

import (
	"errors"
	"math"
)

// OutputPageWidth is the fixed width, in output user units, of every
// flattened page. Pages keep their raster aspect ratio, so the output
// height varies per page.
const OutputPageWidth = 210.0

// PageTransform maps raster pixel coordinates (origin top-left, y down)
// into output page coordinates for one page. ScaleX and ScaleY are kept
// as two independently derived quantities so a non-uniform scale stays a
// local change.
type PageTransform struct {
	ScaleX     float64
	ScaleY     float64
	PageWidth  float64
	PageHeight float64
}

// NewPageTransform derives the transform for a page with the given raster
// pixel dimensions. rasterW must be > 0; rasterization cannot produce a
// zero-width page.
func NewPageTransform(rasterW, rasterH float64) PageTransform {
	pageHeight := (rasterH / rasterW) * OutputPageWidth
	return PageTransform{
		ScaleX:     OutputPageWidth / rasterW,
		ScaleY:     pageHeight / rasterH,
		PageWidth:  OutputPageWidth,
		PageHeight: pageHeight,
	}
}

// Apply maps a raster point into output page coordinates (still top-left
// origin; the flattener flips into device space).
func (t PageTransform) Apply(x, y float64) (float64, float64) {
	return x * t.ScaleX, y * t.ScaleY
}

// Point is a 2D point in either coordinate space.
type Point struct{ X, Y float64 }

// Matrix is a row-major affine transform [a b c d e f].
type Matrix [6]float64

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[1]*o[2], m[0]*o[1] + m[1]*o[3],
		m[2]*o[0] + m[3]*o[2], m[2]*o[1] + m[3]*o[3],
		m[4]*o[0] + m[5]*o[2] + o[4], m[4]*o[1] + m[5]*o[3] + o[5],
	}
}

func (m Matrix) Transform(p Point) Point {
	return Point{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
}

func (m Matrix) Inverse() (Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-10 {
		return Matrix{}, errors.New("matrix singular")
	}
	return Matrix{
		m[3] / det, -m[1] / det,
		-m[2] / det, m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det, (m[1]*m[4] - m[0]*m[5]) / det,
	}, nil
}
