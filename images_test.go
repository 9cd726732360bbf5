package tripkit

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	src := encodePNG(t, 800, 600)
	meta, data, err := processImage(src, "IMG_1001.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if meta.Width != 800 || meta.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", meta.Width, meta.Height)
	}
	if meta.Filename != "img-1001.jpg" {
		t.Errorf("filename = %q, want img-1001.jpg", meta.Filename)
	}
	if len(data) == 0 || meta.Size != len(data) {
		t.Errorf("size = %d, data = %d bytes", meta.Size, len(data))
	}
}

func TestProcessImageDownscalesWideImages(t *testing.T) {
	src := encodePNG(t, 2400, 1200)
	meta, _, err := processImage(src, "wide.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if meta.Width != maxImageWidth {
		t.Errorf("width = %d, want %d", meta.Width, maxImageWidth)
	}
	if meta.Height != 600 {
		t.Errorf("height = %d, want 600: aspect ratio must be preserved", meta.Height)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage(bytes.NewReader([]byte("not an image")), "x.png"); err == nil {
		t.Error("expected error for undecodable input")
	}
}

func TestSlugifyFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"IMG_1001.JPG", "img-1001"},
		{"Osaka Castle.png", "osaka-castle"},
		{"no-extension", "no-extension"},
	}
	for _, tc := range cases {
		if got := slugifyFilename(tc.in); got != tc.want {
			t.Errorf("slugifyFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
