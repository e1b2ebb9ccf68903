package pdfdoc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMM(t *testing.T) {
	assert.InDelta(t, 72.0, MM(25.4), 1e-9)
	assert.InDelta(t, 595.28, A4.W, 0.01)
	assert.InDelta(t, 841.89, A4.H, 0.01)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Chair", 28, "Chair"},
		{"abcdef", 4, "abc…"},
		{"ñandú grande", 5, "ñand…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.limit), tt.in)
	}
}

func TestLoadImage(t *testing.T) {
	data := tinyPNG(t)

	img, ok := LoadImage("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	require.True(t, ok)
	assert.Equal(t, "PNG", img.Type)

	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	img, ok = LoadImage(path)
	require.True(t, ok)
	assert.Equal(t, data, img.Data)

	for _, ref := range []string{"", "https://example.com/x.png", "data:image/png,notbase64", "data:image/png;base64,AAAA"} {
		_, ok := LoadImage(ref)
		assert.False(t, ok, ref)
	}
}

func TestRender(t *testing.T) {
	img, ok := DecodeImage(tinyPNG(t))
	require.True(t, ok)

	doc := Document{
		Title: "Inventario",
		Size:  A4,
		Pages: []Page{
			{Elements: []Element{
				{Kind: KindText, X: 40, Y: 40, W: 200, H: 20, Text: "Ubicación: Bodega", FontSize: 12, Bold: true},
				{Kind: KindImage, X: 40, Y: 80, W: 100, H: 100, Image: img},
			}},
			{Elements: []Element{
				{Kind: KindText, X: 40, Y: 40, W: 200, H: 20, Text: "2 x Silla", FontSize: 10, Align: AlignCenter},
			}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, 1, doc.Pages[0].Images())
	assert.Equal(t, []string{"2 x Silla"}, doc.Pages[1].Texts())
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Document{Size: A4}.Render(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
