// Package labels lays out printable label sheets: one scannable image and
// a caption per fixed-size cell, on a grid centred on each page.
package labels

import (
	"math"

	"github.com/mesh-intelligence/stockbook/internal/pdfdoc"
)

// Spec is the physical sheet geometry in millimetres.
type Spec struct {
	PageWidth  float64
	PageHeight float64
	CellWidth  float64
	CellHeight float64
	ImageSize  float64
	Caption    float64
}

// A4 is the default sheet: 95 x 55 mm cells on an A4 page.
var A4 = Spec{
	PageWidth:  210,
	PageHeight: 297,
	CellWidth:  95,
	CellHeight: 55,
	ImageSize:  38,
	Caption:    12,
}

// Grid is a Spec resolved to points.
type Grid struct {
	Cols, Rows       int
	PageW, PageH     float64
	CellW, CellH     float64
	MarginX, MarginY float64
	Image, Caption   float64
}

// Grid converts the spec to points and fits as many whole cells as the page
// holds, centring the grid with equal margins.
func (s Spec) Grid() Grid {
	g := Grid{
		PageW:   pdfdoc.MM(s.PageWidth),
		PageH:   pdfdoc.MM(s.PageHeight),
		CellW:   pdfdoc.MM(s.CellWidth),
		CellH:   pdfdoc.MM(s.CellHeight),
		Image:   pdfdoc.MM(s.ImageSize),
		Caption: pdfdoc.MM(s.Caption),
	}
	g.Cols = max(1, int(math.Floor(g.PageW/g.CellW)))
	g.Rows = max(1, int(math.Floor(g.PageH/g.CellH)))
	g.MarginX = (g.PageW - float64(g.Cols)*g.CellW) / 2
	g.MarginY = (g.PageH - float64(g.Rows)*g.CellH) / 2
	return g
}

// PerPage returns the number of cells on one page.
func (g Grid) PerPage() int {
	return g.Cols * g.Rows
}

// Cell returns the top-left corner of the i-th cell of a page, filled
// row-major.
func (g Grid) Cell(i int) (x, y float64) {
	col := i % g.Cols
	row := i / g.Cols
	return g.MarginX + float64(col)*g.CellW, g.MarginY + float64(row)*g.CellH
}
