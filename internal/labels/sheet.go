package labels

import (
	"io"
	"sort"

	"github.com/mesh-intelligence/stockbook/internal/normalize"
	"github.com/mesh-intelligence/stockbook/internal/pdfdoc"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

const (
	captionFont  = 8.0
	captionChars = 34
)

// Label is one filled cell.
type Label struct {
	Record   types.Record
	Artifact types.Artifact
}

// Sheet is a laid-out label sheet.
type Sheet struct {
	Grid    Grid
	Pages   [][]Label
	Missing int
}

// All returns a selection for every record, in order.
func All(records []types.Record) []types.Selection {
	out := make([]types.Selection, len(records))
	for i, r := range records {
		out[i] = r.Selection()
	}
	return out
}

// Build resolves targets against records, encodes one artifact per distinct
// matched record and fills the grid row-major, starting a new page when a
// page is full. Targets that match nothing are counted in Missing.
func Build(spec Spec, targets []types.Selection, records []types.Record, enc types.Encoder) Sheet {
	sheet := Sheet{Grid: spec.Grid()}

	byRow := make(map[int]types.Record, len(records))
	bySerial := make(map[string]types.Record, len(records))
	for _, r := range records {
		byRow[r.RowNumber] = r
		if s := normalize.Serial(r.Serial); s != "" {
			if _, ok := bySerial[s]; !ok {
				bySerial[s] = r
			}
		}
	}

	seen := make(map[int]bool, len(targets))
	var matched []types.Record
	for _, sel := range targets {
		r, ok := resolve(sel, byRow, bySerial)
		if !ok {
			sheet.Missing++
			continue
		}
		if seen[r.RowNumber] {
			continue
		}
		seen[r.RowNumber] = true
		matched = append(matched, r)
	}
	sortLabels(matched)

	per := sheet.Grid.PerPage()
	for i, r := range matched {
		if i%per == 0 {
			sheet.Pages = append(sheet.Pages, make([]Label, 0, per))
		}
		l := Label{Record: r}
		if enc != nil {
			l.Artifact = enc.Encode(r)
		}
		p := len(sheet.Pages) - 1
		sheet.Pages[p] = append(sheet.Pages[p], l)
	}
	return sheet
}

func resolve(sel types.Selection, byRow map[int]types.Record, bySerial map[string]types.Record) (types.Record, bool) {
	serial := normalize.Serial(sel.Serial)
	if sel.HasRow() {
		if r, ok := byRow[sel.RowNumber]; ok && (serial == "" || normalize.Serial(r.Serial) == serial) {
			return r, true
		}
	}
	if serial == "" {
		return types.Record{}, false
	}
	r, ok := bySerial[serial]
	return r, ok
}

// sortLabels orders by row-number, then intake date, serial and name.
// Records without a row-number go last.
func sortLabels(records []types.Record) {
	rowKey := func(r types.Record) int {
		if r.RowNumber < types.FirstDataRow {
			return int(^uint(0) >> 1)
		}
		return r.RowNumber
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if ra, rb := rowKey(a), rowKey(b); ra != rb {
			return ra < rb
		}
		if a.IntakeDate != b.IntakeDate {
			return a.IntakeDate < b.IntakeDate
		}
		if a.Serial != b.Serial {
			return a.Serial < b.Serial
		}
		return a.Name < b.Name
	})
}

// Labels returns the number of filled cells.
func (s Sheet) Labels() int {
	n := 0
	for _, p := range s.Pages {
		n += len(p)
	}
	return n
}

// Document places every label on physical pages. The image is centred
// horizontally in its cell with the caption band below it, and the pair is
// centred vertically.
func (s Sheet) Document() pdfdoc.Document {
	g := s.Grid
	doc := pdfdoc.Document{
		Title: "Labels",
		Size:  pdfdoc.Size{W: g.PageW, H: g.PageH},
		Pages: make([]pdfdoc.Page, 0, len(s.Pages)),
	}
	lineH := g.Caption / 2
	for _, labels := range s.Pages {
		var page pdfdoc.Page
		for i, l := range labels {
			x, y := g.Cell(i)
			top := y + (g.CellH-g.Image-g.Caption)/2
			if img, ok := pdfdoc.DecodeImage(l.Artifact.PNG); ok {
				page.Elements = append(page.Elements, pdfdoc.Element{
					Kind:  pdfdoc.KindImage,
					X:     x + (g.CellW-g.Image)/2,
					Y:     top,
					W:     g.Image,
					H:     g.Image,
					Image: img,
				})
			}
			captions := []string{
				pdfdoc.Truncate(l.Record.Name, captionChars),
				l.Record.Serial,
			}
			for li, text := range captions {
				page.Elements = append(page.Elements, pdfdoc.Element{
					Kind:     pdfdoc.KindText,
					X:        x,
					Y:        top + g.Image + float64(li)*lineH,
					W:        g.CellW,
					H:        lineH,
					Text:     text,
					FontSize: captionFont,
					Bold:     li == 0,
					Align:    pdfdoc.AlignCenter,
				})
			}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

// Render writes the sheet as PDF.
func (s Sheet) Render(w io.Writer) error {
	return s.Document().Render(w)
}
