package pdfdoc

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
)

// Image is encoded image data with its fpdf type name: "PNG", "JPG" or
// "GIF".
type Image struct {
	Data []byte
	Type string
}

var fpdfTypes = map[string]string{
	"png":  "PNG",
	"jpeg": "JPG",
	"gif":  "GIF",
}

// DecodeImage validates data as a drawable image and returns it typed.
func DecodeImage(data []byte) (Image, bool) {
	if len(data) == 0 {
		return Image{}, false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, false
	}
	t, ok := fpdfTypes[format]
	if !ok {
		return Image{}, false
	}
	return Image{Data: data, Type: t}, true
}

// LoadImage resolves an image reference: a base64 data URL or a path to a
// readable image file. Anything else is reported as unobtainable.
func LoadImage(ref string) (Image, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Image{}, false
	}
	if strings.HasPrefix(ref, "data:") {
		comma := strings.IndexByte(ref, ',')
		if comma < 0 || !strings.HasSuffix(ref[:comma], ";base64") {
			return Image{}, false
		}
		data, err := base64.StdEncoding.DecodeString(ref[comma+1:])
		if err != nil {
			return Image{}, false
		}
		return DecodeImage(data)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return Image{}, false
	}
	return DecodeImage(data)
}
