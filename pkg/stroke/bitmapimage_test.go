package stroke

import (
	"strings"
	"testing"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
)

func TestImportFromBytes(t *testing.T) {
	b, err := ImportFromBytes(pngBytes(t, 12, 8), geom.V(2, 3))
	if err != nil {
		t.Fatalf("ImportFromBytes: %v", err)
	}
	if b.Format() != "png" {
		t.Errorf("Format() = %q, want png", b.Format())
	}
	if b.IntrinsicSize() != geom.V(12, 8) {
		t.Errorf("IntrinsicSize() = %v, want (12, 8)", b.IntrinsicSize())
	}
	if want := geom.NewAABB(geom.V(2, 3), geom.V(14, 11)); b.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", b.Bounds(), want)
	}
}

func TestImportFromBytesInvalid(t *testing.T) {
	if _, err := ImportFromBytes([]byte("GIF? no"), geom.Zero); !errors.Is(err, errors.ErrCodeInvalidImage) {
		t.Errorf("error = %v, want INVALID_IMAGE", err)
	}
}

func TestBitmapGenSVG(t *testing.T) {
	b, err := ImportFromBytes(pngBytes(t, 4, 4), geom.Zero)
	if err != nil {
		t.Fatal(err)
	}
	svg, err := b.GenSVG(geom.V(1, 1))
	if err != nil {
		t.Fatalf("GenSVG: %v", err)
	}
	for _, want := range []string{`x="1"`, `y="1"`, `viewBox="0 0 4 4"`, `href="data:image/png;base64,`} {
		if !strings.Contains(svg, want) {
			t.Errorf("GenSVG missing %s:\n%s", want, svg)
		}
	}
}

func TestBitmapRenderNode(t *testing.T) {
	b, err := ImportFromBytes(pngBytes(t, 4, 2), geom.Zero)
	if err != nil {
		t.Fatal(err)
	}
	n := b.RenderNode(3)
	if n.IsEmpty() {
		t.Fatal("RenderNode returned an empty node")
	}
	if n.Image.Bounds().Dx() != 12 || n.Image.Bounds().Dy() != 6 {
		t.Errorf("node size = %v, want 12x6", n.Image.Bounds().Size())
	}

	b.Resize(geom.NewAABB(geom.Zero, geom.V(8, 0)))
	if got := b.RenderNode(3); got != n {
		t.Error("failed regeneration replaced the cached node")
	}
}
