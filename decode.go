package galleria

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// FileDecoder decodes photos from local files. JPEG, PNG, GIF and WebP are
// supported. Safe for concurrent use.
type FileDecoder struct{}

// Decode reads and decodes the image file at path.
func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Thumbnail prefers the JPEG thumbnail embedded in the file's EXIF data and
// falls back to decoding the full image. Either way the result is scaled to
// fit within maxSize.
func (d FileDecoder) Thumbnail(path string, maxSize int) (image.Image, error) {
	img, err := embeddedThumbnail(path)
	if err != nil {
		img, err = d.Decode(path)
		if err != nil {
			return nil, err
		}
	}
	return scaleToFit(img, maxSize), nil
}

// embeddedThumbnail reads the EXIF JPEG thumbnail of path.
func embeddedThumbnail(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file for thumbnail: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading exif: %w", err)
	}
	thumb, err := x.JpegThumbnail()
	if err != nil {
		return nil, fmt.Errorf("no JPEG thumbnail in EXIF: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		return nil, fmt.Errorf("decoding EXIF thumbnail: %w", err)
	}
	return img, nil
}

// fitWithin returns w x h scaled down, preserving aspect ratio, so neither
// side exceeds maxSize. Sizes that already fit are returned unchanged.
func fitWithin(w, h, maxSize int) (int, int) {
	if w <= maxSize && h <= maxSize || w <= 0 || h <= 0 {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}

// scaleToFit downsamples img to fit within maxSize using bilinear filtering.
func scaleToFit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), maxSize)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
