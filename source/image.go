package source

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/ledongthuc/pdf"
)

// decodeImageData decodes an image XObject's samples and re-encodes them as
// PNG. Supported layouts are 8-bit DeviceRGB and DeviceGray; anything else
// returns nil. Callers handle the panic the parser raises for filters it
// cannot decode.
func decodeImageData(obj pdf.Value, width, height int) (data []byte, format string) {
	if obj.Key("BitsPerComponent").Int64() != 8 {
		return nil, ""
	}

	colorSpace := obj.Key("ColorSpace").Name()
	var components int
	switch colorSpace {
	case "DeviceRGB":
		components = 3
	case "DeviceGray":
		components = 1
	default:
		return nil, ""
	}

	rd := obj.Reader()
	defer rd.Close()
	samples, err := io.ReadAll(rd)
	if err != nil || len(samples) < width*height*components {
		return nil, ""
	}

	var img image.Image
	switch components {
	case 3:
		rgba := image.NewNRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				s := (y*width + x) * 3
				d := rgba.PixOffset(x, y)
				rgba.Pix[d+0] = samples[s+0]
				rgba.Pix[d+1] = samples[s+1]
				rgba.Pix[d+2] = samples[s+2]
				rgba.Pix[d+3] = 0xff
			}
		}
		img = rgba
	case 1:
		gray := image.NewGray(image.Rect(0, 0, width, height))
		copy(gray.Pix, samples[:width*height])
		img = gray
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, ""
	}
	return buf.Bytes(), "png"
}
