package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`

func TestDefaultNode(t *testing.T) {
	n := DefaultNode()
	if !n.IsEmpty() {
		t.Error("DefaultNode().IsEmpty() = false, want true")
	}
	var nilNode *Node
	if !nilNode.IsEmpty() {
		t.Error("nil node IsEmpty() = false, want true")
	}
}

func TestGenNodeForSVGSize(t *testing.T) {
	tests := []struct {
		name         string
		bounds       geom.AABB
		scale        float64
		wantW, wantH int
	}{
		{"unit", geom.NewAABB(geom.V(0, 0), geom.V(10, 10)), 1, 10, 10},
		{"scaled", geom.NewAABB(geom.V(5, 5), geom.V(25, 15)), 2, 40, 20},
		{"fractional", geom.NewAABB(geom.V(0, 0), geom.V(10.2, 3.1)), 1, 11, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := GenNodeForSVG(tt.bounds, tt.scale, redSquare)
			if err != nil {
				t.Fatalf("GenNodeForSVG: %v", err)
			}
			if got := n.Image.Bounds().Dx(); got != tt.wantW {
				t.Errorf("width = %d, want %d", got, tt.wantW)
			}
			if got := n.Image.Bounds().Dy(); got != tt.wantH {
				t.Errorf("height = %d, want %d", got, tt.wantH)
			}
			if n.Bounds != tt.bounds {
				t.Errorf("Bounds = %v, want %v", n.Bounds, tt.bounds)
			}
			if n.Scale != tt.scale {
				t.Errorf("Scale = %v, want %v", n.Scale, tt.scale)
			}
		})
	}
}

func TestGenNodeForSVGPaints(t *testing.T) {
	n, err := GenNodeForSVG(geom.NewAABB(geom.V(0, 0), geom.V(20, 20)), 1, redSquare)
	if err != nil {
		t.Fatalf("GenNodeForSVG: %v", err)
	}
	r, g, b, a := n.Image.At(10, 10).RGBA()
	if r>>8 < 200 || g>>8 > 50 || b>>8 > 50 || a>>8 < 200 {
		t.Errorf("center pixel = (%d,%d,%d,%d), want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestGenNodeForSVGErrors(t *testing.T) {
	good := geom.NewAABB(geom.V(0, 0), geom.V(10, 10))
	tests := []struct {
		name   string
		bounds geom.AABB
		scale  float64
		svg    string
		code   errors.Code
	}{
		{"empty bounds", geom.NewAABB(geom.V(0, 0), geom.V(0, 10)), 1, redSquare, errors.ErrCodeInvalidBounds},
		{"zero scale", good, 0, redSquare, errors.ErrCodeInvalidInput},
		{"too large", good, 1e5, redSquare, errors.ErrCodeRender},
		{"not svg", good, 1, "definitely not xml <", errors.ErrCodeInvalidSVG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenNodeForSVG(tt.bounds, tt.scale, tt.svg)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGenNodeForImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	n, err := GenNodeForImage(geom.NewAABB(geom.V(0, 0), geom.V(8, 8)), 1, src)
	if err != nil {
		t.Fatalf("GenNodeForImage: %v", err)
	}
	if got := n.Image.Bounds().Dx(); got != 8 {
		t.Errorf("width = %d, want 8", got)
	}
	if _, _, b, _ := n.Image.At(4, 4).RGBA(); b>>8 < 200 {
		t.Errorf("blue channel = %d, want > 200", b>>8)
	}

	if _, err := GenNodeForImage(geom.NewAABB(geom.V(0, 0), geom.V(8, 8)), 1, nil); !errors.Is(err, errors.ErrCodeInvalidImage) {
		t.Errorf("nil image error = %v, want INVALID_IMAGE", err)
	}
}

func TestEncodePNG(t *testing.T) {
	if _, err := EncodePNG(DefaultNode()); !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("EncodePNG(empty) error = %v, want RENDER_FAILED", err)
	}
	data, err := ToPNG([]byte(redSquare), 3)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 30 {
		t.Errorf("png size = %v, want 30x30", img.Bounds().Size())
	}
}

func TestComposite(t *testing.T) {
	red := image.NewRGBA(image.Rect(0, 0, 2, 2))
	blue := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			blue.Set(x, y, color.RGBA{0, 0, 255, 255})
			if x < 2 && y < 2 {
				red.Set(x, y, color.RGBA{255, 0, 0, 255})
			}
		}
	}
	bounds := geom.NewAABB(geom.V(10, 10), geom.V(20, 20))
	layers := []*Node{
		DefaultNode(),
		{Bounds: geom.NewAABB(geom.V(10, 10), geom.V(14, 14)), Scale: 1, Image: blue},
		{Bounds: geom.NewAABB(geom.V(12, 12), geom.V(14, 14)), Scale: 1, Image: red},
	}
	out, err := Composite(bounds, 1, layers...)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if out.Image.Bounds().Dx() != 10 {
		t.Errorf("width = %d, want 10", out.Image.Bounds().Dx())
	}
	tests := []struct {
		x, y    int
		r, g, b uint8
		a       uint8
	}{
		{0, 0, 0, 0, 255, 255},
		{3, 3, 255, 0, 0, 255},
		{8, 8, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		got := out.Image.RGBAAt(tt.x, tt.y)
		if got.R != tt.r || got.G != tt.g || got.B != tt.b || got.A != tt.a {
			t.Errorf("pixel (%d,%d) = %v, want (%d,%d,%d,%d)", tt.x, tt.y, got, tt.r, tt.g, tt.b, tt.a)
		}
	}
}
