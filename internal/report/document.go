package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mesh-intelligence/stockbook/internal/pdfdoc"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// DefaultTitle is the report heading.
const DefaultTitle = "Inventory by location"

// Layout sizes in points.
var (
	margin    = pdfdoc.MM(15)
	indent    = pdfdoc.MM(6)
	imageCell = pdfdoc.MM(42)
	imageSize = pdfdoc.MM(32)
)

const (
	titleFont   = 16.0
	titleH      = 24.0
	headingFont = 12.0
	headingH    = 18.0
	textFont    = 10.0
	lineH       = 14.0
	captionFont = 8.0
	captionH    = 12.0
	sectionGap  = 8.0

	captionChars = 28
)

// Options configure Build.
type Options struct {
	Title string
	Page  pdfdoc.Size
	// Now stamps the generation date.
	Now func() time.Time
	// Images resolves image references; nil disables the image grid.
	Images ImageLoader
}

// Report is a built location report.
type Report struct {
	Summary  Summary
	Document pdfdoc.Document
}

// Build summarizes records and lays the summary out on pages.
func Build(records []types.Record, opts Options) Report {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Page == (pdfdoc.Size{}) {
		opts.Page = pdfdoc.A4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	sum := Summarize(records, opts.Images)
	return Report{Summary: sum, Document: layOut(sum, opts)}
}

// Render writes the report as PDF.
func (r Report) Render(w io.Writer) error {
	return r.Document.Render(w)
}

// TotalsLine is the closing summary line.
func (s Summary) TotalsLine() string {
	return fmt.Sprintf("Total: %s, %s, %s",
		plural(len(s.Sections), "location", "locations"),
		plural(s.Lines, "line", "lines"),
		plural(s.Units, "unit", "units"))
}

// CountLine is the line under a section heading.
func (s Section) CountLine() string {
	return plural(len(s.Lines), "line", "lines") + ", " + plural(s.Units, "unit", "units")
}

// Text is the item line as printed.
func (l Line) Text() string {
	return fmt.Sprintf("%s x %s", humanize.Comma(int64(l.Quantity)), l.Name)
}

func plural(n int, one, many string) string {
	word := many
	if n == 1 {
		word = one
	}
	return humanize.Comma(int64(n)) + " " + word
}

// cursor paginates elements. y is the top of the next element.
type cursor struct {
	top, bottom float64
	left, width float64
	y           float64
	pages       []pdfdoc.Page
}

func newCursor(size pdfdoc.Size) *cursor {
	c := &cursor{
		top:    margin,
		bottom: size.H - margin,
		left:   margin,
		width:  size.W - 2*margin,
	}
	c.newPage()
	return c
}

func (c *cursor) newPage() {
	c.pages = append(c.pages, pdfdoc.Page{})
	c.y = c.top
}

// ensure starts a new page when h does not fit in the remaining space,
// unless the current page is still empty.
func (c *cursor) ensure(h float64) {
	if c.y+h > c.bottom && c.y > c.top {
		c.newPage()
	}
}

func (c *cursor) add(e pdfdoc.Element) {
	p := &c.pages[len(c.pages)-1]
	p.Elements = append(p.Elements, e)
}

func (c *cursor) text(x float64, h float64, s string, size float64, bold bool) {
	c.add(pdfdoc.Element{
		Kind:     pdfdoc.KindText,
		X:        x,
		Y:        c.y,
		W:        c.left + c.width - x,
		H:        h,
		Text:     s,
		FontSize: size,
		Bold:     bold,
	})
	c.y += h
}

func layOut(sum Summary, opts Options) pdfdoc.Document {
	c := newCursor(opts.Page)

	c.text(c.left, titleH, opts.Title, titleFont, true)
	c.text(c.left, lineH, "Generated "+opts.Now().Format("2006-01-02 15:04")+", "+
		plural(sum.Records, "record", "records"), textFont, false)
	c.y += sectionGap

	for _, s := range sum.Sections {
		c.ensure(headingH + lineH + float64(len(s.Lines))*lineH)
		c.text(c.left, headingH, s.Location, headingFont, true)
		c.text(c.left, lineH, s.CountLine(), textFont, false)
		for _, l := range s.Lines {
			c.ensure(lineH)
			c.text(c.left+indent, lineH, l.Text(), textFont, false)
		}
		c.y += sectionGap
	}

	c.ensure(lineH)
	c.text(c.left, lineH, sum.TotalsLine(), textFont, true)

	if sum.HasImages() {
		layOutImages(c, sum)
	}
	return pdfdoc.Document{Title: opts.Title, Size: opts.Page, Pages: c.pages}
}

func layOutImages(c *cursor, sum Summary) {
	cols := max(1, int(c.width/imageCell))
	rowH := imageSize + captionH + sectionGap

	c.y += sectionGap
	c.ensure(headingH + rowH)
	c.text(c.left, headingH, "Images", headingFont, true)

	col := 0
	for _, s := range sum.Sections {
		for _, l := range s.Lines {
			if !l.HasImage {
				continue
			}
			if col == 0 {
				c.ensure(rowH)
			}
			x := c.left + float64(col)*imageCell
			c.add(pdfdoc.Element{
				Kind:  pdfdoc.KindImage,
				X:     x + (imageCell-imageSize)/2,
				Y:     c.y,
				W:     imageSize,
				H:     imageSize,
				Image: l.Image,
			})
			c.add(pdfdoc.Element{
				Kind:     pdfdoc.KindText,
				X:        x,
				Y:        c.y + imageSize,
				W:        imageCell,
				H:        captionH,
				Text:     pdfdoc.Truncate(l.Text(), captionChars),
				FontSize: captionFont,
				Align:    pdfdoc.AlignCenter,
			})
			col++
			if col == cols {
				col = 0
				c.y += rowH
			}
		}
	}
	if col != 0 {
		c.y += rowH
	}
}
