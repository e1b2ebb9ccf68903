package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockbook/internal/pdfdoc"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func rec(loc, name string, qty int) types.Record {
	return types.Record{Location: loc, Name: name, Quantity: types.NewQuantity(qty)}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestSummarizeAggregates(t *testing.T) {
	sum := Summarize([]types.Record{rec("A", "Chair", 2), rec("A", "Chair", 3)}, nil)

	require.Len(t, sum.Sections, 1)
	s := sum.Sections[0]
	assert.Equal(t, "A", s.Location)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "5 x Chair", s.Lines[0].Text())
	assert.Equal(t, 5, s.Units)
	assert.Equal(t, "1 line, 5 units", s.CountLine())
}

func TestSummarizeGrouping(t *testing.T) {
	records := []types.Record{
		rec(" bodega ", "Silla", 1),
		rec("Bodega", " silla", 4),
		rec("Aula 2", "Mesa", 2),
		rec("", "Proyector", 1),
		{Location: "Aula 2", Name: "Cable"},
		rec("aula 2", "", 1),
		rec("Ñuñoa", "Estante", 1),
	}
	sum := Summarize(records, nil)

	byLocation := map[string]Section{}
	var locations []string
	for _, s := range sum.Sections {
		byLocation[s.Location] = s
		if s.Location != NoLocation {
			locations = append(locations, s.Location)
		}
	}
	assert.Equal(t, []string{"Aula 2", "bodega", "Ñuñoa"}, locations)
	require.Contains(t, byLocation, NoLocation)

	var lines []string
	for _, l := range byLocation["Aula 2"].Lines {
		if l.Name != NoName {
			lines = append(lines, l.Text())
		}
	}
	assert.Equal(t, []string{"1 x Cable", "2 x Mesa"}, lines)
	assert.Len(t, byLocation["Aula 2"].Lines, 3)

	bodega := byLocation["bodega"]
	require.Len(t, bodega.Lines, 1)
	assert.Equal(t, "5 x Silla", bodega.Lines[0].Text())

	assert.Equal(t, 7, sum.Records)
	assert.Equal(t, 6, sum.Lines)
	assert.Equal(t, 11, sum.Units)
	assert.Equal(t, "Total: 4 locations, 6 lines, 11 units", sum.TotalsLine())
}

func TestBuildDocument(t *testing.T) {
	r := Build([]types.Record{rec("A", "Chair", 2), rec("A", "Chair", 3)}, Options{Now: fixedNow})

	require.Len(t, r.Document.Pages, 1)
	texts := r.Document.Pages[0].Texts()
	assert.Equal(t, []string{
		DefaultTitle,
		"Generated 2026-03-14 09:30, 2 records",
		"A",
		"1 line, 5 units",
		"5 x Chair",
		"Total: 1 location, 1 line, 5 units",
	}, texts)
	assert.Zero(t, r.Document.Pages[0].Images())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPagination(t *testing.T) {
	var records []types.Record
	for loc := 0; loc < 12; loc++ {
		for item := 0; item < 6; item++ {
			records = append(records, rec(fmt.Sprintf("Sala %02d", loc), fmt.Sprintf("Item %d", item), 1))
		}
	}
	for item := 0; item < 80; item++ {
		records = append(records, rec("Zona grande", fmt.Sprintf("Objeto %03d", item), 2))
	}
	r := Build(records, Options{Now: fixedNow})
	doc := r.Document

	require.Greater(t, len(doc.Pages), 2)
	bottom := doc.Size.H - margin
	itemLines := 0
	for _, p := range doc.Pages {
		for _, e := range p.Elements {
			assert.LessOrEqual(t, e.Bottom(), bottom+1e-6, e.Text)
			assert.GreaterOrEqual(t, e.Y, margin-1e-6, e.Text)
			if strings.Contains(e.Text, " x ") {
				itemLines++
			}
		}
	}
	assert.Equal(t, r.Summary.Lines, itemLines)

	// A section that fits on one page is never split across pages.
	for _, p := range doc.Pages {
		texts := p.Texts()
		for i, text := range texts {
			if text == "Sala 05" {
				require.GreaterOrEqual(t, len(texts), i+8)
				assert.Equal(t, "1 x Item 5", texts[i+7])
			}
		}
	}
}

func TestImageGrid(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	records := []types.Record{
		{Location: "A", Name: "Proyector multimedia de alta luminosidad", Quantity: types.NewQuantity(1), Image: dataURL},
		{Location: "A", Name: "Silla", Quantity: types.NewQuantity(2), Image: "/does/not/exist.png"},
		{Location: "B", Name: "Mesa", Quantity: types.NewQuantity(1)},
	}
	r := Build(records, Options{Now: fixedNow, Images: pdfdoc.LoadImage})
	require.True(t, r.Summary.HasImages())

	last := r.Document.Pages[len(r.Document.Pages)-1]
	assert.Equal(t, 1, last.Images())
	texts := last.Texts()
	assert.Contains(t, texts, "Images")
	assert.Contains(t, texts, "1 x Proyector multimedia de…")

	var out bytes.Buffer
	require.NoError(t, r.Render(&out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF")))

	noImages := Build(records, Options{Now: fixedNow})
	assert.False(t, noImages.Summary.HasImages())
	assert.NotContains(t, noImages.Document.Pages[0].Texts(), "Images")
}
