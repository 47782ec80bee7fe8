package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Formats accepted for logos.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds the longer side of a normalized logo. A 45pt box
// at 300 dpi needs about 190px; the extra headroom keeps edges sharp.
const DefaultMaxPixels = 512

// Image is a normalized logo: an 8-bit non-interlaced PNG.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Aspect returns Width/Height, or 1 for a degenerate image.
func (im *Image) Aspect() float64 {
	if im.Height == 0 {
		return 1
	}
	return float64(im.Width) / float64(im.Height)
}

// Fit scales the image into a w×h box keeping its aspect ratio.
func (im *Image) Fit(w, h float64) (float64, float64) {
	a := im.Aspect()
	if w/h > a {
		return h * a, h
	}
	return w, w / a
}

// Normalize decodes PNG, JPEG, GIF, WebP, BMP or TIFF data, downsamples it
// so neither side exceeds maxPx (CatmullRom), and re-encodes it as an NRGBA
// PNG. fpdf cannot embed 16-bit or interlaced PNGs, and re-encoding
// sidesteps both. maxPx <= 0 uses [DefaultMaxPixels].
func Normalize(data []byte, maxPx int) (*Image, error) {
	if maxPx <= 0 {
		maxPx = DefaultMaxPixels
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode logo: empty %s image", format)
	}
	if w > maxPx || h > maxPx {
		if w >= h {
			h = max(1, h*maxPx/w)
			w = maxPx
		} else {
			w = max(1, w*maxPx/h)
			h = maxPx
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return &Image{PNG: buf.Bytes(), Width: w, Height: h}, nil
}
