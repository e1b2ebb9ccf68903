// Package pdfdoc is the physical page model shared by the label sheet and
// the location report. Layout engines place elements on pages in points
// (1/72 inch), converted from millimetres with MM; Render draws the pages
// with fpdf.
package pdfdoc

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// MM converts millimetres to points.
func MM(v float64) float64 {
	return v * 72 / 25.4
}

// Size is a page size in points.
type Size struct {
	W, H float64
}

// A4 is 210 x 297 mm.
var A4 = Size{W: MM(210), H: MM(297)}

// Kind discriminates page elements.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// Align is the horizontal alignment of a text element inside its box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Element is one item placed on a page. X and Y are the top-left corner of
// the element's box.
type Element struct {
	Kind     Kind
	X, Y     float64
	W, H     float64
	Text     string
	FontSize float64
	Bold     bool
	Align    Align
	Image    Image
}

// Bottom returns the y coordinate of the element's lower edge.
func (e Element) Bottom() float64 {
	return e.Y + e.H
}

// Page is an ordered list of elements.
type Page struct {
	Elements []Element
}

// Texts returns the text of every text element in drawing order.
func (p Page) Texts() []string {
	var out []string
	for _, e := range p.Elements {
		if e.Kind == KindText {
			out = append(out, e.Text)
		}
	}
	return out
}

// Images returns the number of image elements on the page.
func (p Page) Images() int {
	n := 0
	for _, e := range p.Elements {
		if e.Kind == KindImage {
			n++
		}
	}
	return n
}

// Document is a paginated layout.
type Document struct {
	Title string
	Size  Size
	Pages []Page
}

// Render draws the document as PDF to w. A document without pages renders
// a single blank page.
func (d Document) Render(w io.Writer) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: d.Size.W, Ht: d.Size.H},
	})
	pdf.SetTitle(d.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pages := d.Pages
	if len(pages) == 0 {
		pages = []Page{{}}
	}
	for pi, p := range pages {
		pdf.AddPage()
		for ei, e := range p.Elements {
			switch e.Kind {
			case KindText:
				style := ""
				if e.Bold {
					style = "B"
				}
				pdf.SetFont("Helvetica", style, e.FontSize)
				pdf.SetXY(e.X, e.Y)
				align := "LM"
				if e.Align == AlignCenter {
					align = "CM"
				}
				pdf.CellFormat(e.W, e.H, tr(e.Text), "", 0, align, false, 0, "")
			case KindImage:
				name := fmt.Sprintf("p%d-e%d", pi, ei)
				opt := fpdf.ImageOptions{ImageType: e.Image.Type}
				pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(e.Image.Data))
				pdf.ImageOptions(name, e.X, e.Y, e.W, e.H, false, opt, 0, "")
			}
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering %q: %w", d.Title, err)
	}
	return pdf.Output(w)
}

// Truncate shortens s to at most limit characters, replacing the tail with
// an ellipsis when it is cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}
