package galleria

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"already fits", 50, 40, 100, 50, 40},
		{"exact fit", 100, 100, 100, 100, 100},
		{"wide", 200, 100, 50, 50, 25},
		{"tall", 100, 200, 50, 25, 50},
		{"square", 100, 100, 10, 10, 10},
		{"sliver keeps one pixel", 1000, 1, 10, 10, 1},
		{"zero size", 0, 10, 5, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitWithin(tt.w, tt.h, tt.max)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitWithin(%d, %d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScaleToFitKeepsSmallImages(t *testing.T) {
	img := blank(20, 10)
	if got := scaleToFit(img, 40); got != img {
		t.Error("an image that fits should be returned unchanged")
	}
	if got := scaleToFit(img, 10).Bounds().Size(); got != (image.Point{10, 5}) {
		t.Errorf("scaled size = %v, want 10x5", got)
	}
}

// writeImage encodes a solid w x h image at dir/name as PNG or JPEG.
func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{200, 100, 50, 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg":
		err = jpeg.Encode(f, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileDecoder(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		w, h      int
		thumbSize image.Point
	}{
		{"photo.png", 120, 60, image.Point{30, 15}},
		{"photo.jpg", 40, 80, image.Point{15, 30}},
		{"small.png", 20, 10, image.Point{20, 10}},
	}
	var dec FileDecoder
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, dir, tt.name, tt.w, tt.h)

			img, err := dec.Decode(path)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := img.Bounds().Size(); got != (image.Point{tt.w, tt.h}) {
				t.Errorf("Decode size = %v, want %dx%d", got, tt.w, tt.h)
			}

			// No EXIF data, so the thumbnail comes from a full decode.
			thumb, err := dec.Thumbnail(path, 30)
			if err != nil {
				t.Fatalf("Thumbnail: %v", err)
			}
			if got := thumb.Bounds().Size(); got != tt.thumbSize {
				t.Errorf("Thumbnail size = %v, want %v", got, tt.thumbSize)
			}
		})
	}
}

func TestFileDecoderErrors(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	var dec FileDecoder
	for _, path := range []string{filepath.Join(dir, "missing.png"), junk} {
		if _, err := dec.Decode(path); err == nil {
			t.Errorf("Decode(%s) should fail", filepath.Base(path))
		}
		if _, err := dec.Thumbnail(path, 10); err == nil {
			t.Errorf("Thumbnail(%s) should fail", filepath.Base(path))
		}
	}
}
