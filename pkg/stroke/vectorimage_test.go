package stroke

import (
	"strings"
	"testing"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
)

const (
	sizedSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20"><rect width="40" height="20" fill="#00ff00"/></svg>`
	unsizedSVG = `<svg xmlns="http://www.w3.org/2000/svg"><circle cx="250" cy="250" r="100"/></svg>`
	brokenSVG  = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="1 2"/>`
)

func mustImport(t *testing.T, svg string, pos geom.Vector2) *VectorImage {
	t.Helper()
	v, err := ImportFromSVG(svg, pos)
	if err != nil {
		t.Fatalf("ImportFromSVG: %v", err)
	}
	return v
}

func TestImportFromSVG(t *testing.T) {
	tests := []struct {
		name       string
		svg        string
		pos        geom.Vector2
		wantSize   geom.Vector2
		wantBounds geom.AABB
	}{
		{
			name:       "declared size",
			svg:        sizedSVG,
			pos:        geom.V(10, 5),
			wantSize:   geom.V(40, 20),
			wantBounds: geom.NewAABB(geom.V(10, 5), geom.V(50, 25)),
		},
		{
			name:       "default size",
			svg:        unsizedSVG,
			pos:        geom.V(OffsetXDefault, OffsetYDefault),
			wantSize:   geom.V(SizeXDefault, SizeYDefault),
			wantBounds: geom.NewAABB(geom.V(28, 28), geom.V(528, 528)),
		},
		{
			name:       "relative size falls back",
			svg:        `<svg width="100%" height="50%"/>`,
			pos:        geom.Zero,
			wantSize:   geom.V(500, 500),
			wantBounds: geom.NewAABB(geom.Zero, geom.V(500, 500)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustImport(t, tt.svg, tt.pos)
			if v.IntrinsicSize() != tt.wantSize {
				t.Errorf("IntrinsicSize() = %v, want %v", v.IntrinsicSize(), tt.wantSize)
			}
			if v.Bounds() != tt.wantBounds {
				t.Errorf("Bounds() = %v, want %v", v.Bounds(), tt.wantBounds)
			}
			if strings.Contains(v.SVGData(), "<?xml") {
				t.Errorf("SVGData() still has XML prolog: %q", v.SVGData())
			}
		})
	}
}

func TestImportFromSVGRejectsNonSVG(t *testing.T) {
	for _, in := range []string{"", "hello", `<html><body/></html>`} {
		if _, err := ImportFromSVG(in, geom.Zero); !errors.Is(err, errors.ErrCodeInvalidSVG) {
			t.Errorf("ImportFromSVG(%q) error = %v, want INVALID_SVG", in, err)
		}
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	v := mustImport(t, sizedSVG, geom.V(1.5, -3.25))
	orig := v.Bounds()
	data := v.SVGData()
	for _, off := range []geom.Vector2{geom.V(10, 20), geom.V(-0.5, 0.25), geom.Zero} {
		v.Translate(off)
		v.Translate(off.Neg())
		if v.Bounds() != orig {
			t.Errorf("after translate %v and back: %v, want %v", off, v.Bounds(), orig)
		}
	}
	if v.SVGData() != data {
		t.Error("Translate changed svg data")
	}
}

func TestResize(t *testing.T) {
	v := mustImport(t, sizedSVG, geom.Zero)
	b2 := geom.NewAABB(geom.V(-5, -5), geom.V(100, 7))
	v.Resize(b2)
	if v.Bounds() != b2 {
		t.Errorf("Bounds() = %v, want %v", v.Bounds(), b2)
	}
	if v.IntrinsicSize() != geom.V(40, 20) {
		t.Errorf("Resize changed intrinsic size to %v", v.IntrinsicSize())
	}
}

func TestGenSVGOffset(t *testing.T) {
	v := mustImport(t, sizedSVG, geom.V(10, 5))

	got, err := v.GenSVG(geom.Zero)
	if err != nil {
		t.Fatalf("GenSVG: %v", err)
	}
	for _, want := range []string{`x="10"`, `y="5"`, `width="40"`, `height="20"`, `viewBox="0 0 40 20"`, `preserveAspectRatio="none"`} {
		if !strings.Contains(got, want) {
			t.Errorf("GenSVG(0) missing %s:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<?xml") {
		t.Error("GenSVG output has an XML prolog")
	}

	got, err = v.GenSVG(geom.V(-10, 2.5))
	if err != nil {
		t.Fatalf("GenSVG: %v", err)
	}
	for _, want := range []string{`x="0"`, `y="7.5"`, `width="40"`, `height="20"`} {
		if !strings.Contains(got, want) {
			t.Errorf("GenSVG(offset) missing %s:\n%s", want, got)
		}
	}
	if v.Bounds() != geom.NewAABB(geom.V(10, 5), geom.V(50, 25)) {
		t.Errorf("GenSVG mutated bounds to %v", v.Bounds())
	}
}

func TestGenRenderNode(t *testing.T) {
	v := mustImport(t, sizedSVG, geom.V(0, 0))
	node, err := v.GenRenderNode(2)
	if err != nil {
		t.Fatalf("GenRenderNode: %v", err)
	}
	if node.Image.Bounds().Dx() != 80 || node.Image.Bounds().Dy() != 40 {
		t.Errorf("node size = %v, want 80x40", node.Image.Bounds().Size())
	}
	if !v.Dirty() {
		t.Error("GenRenderNode must not touch the cache")
	}
}

func TestGenRenderNodeRootAttributes(t *testing.T) {
	tests := []struct {
		name string
		svg  string
	}{
		{"gt in attribute", `<svg xmlns="http://www.w3.org/2000/svg" data-x="a>b" width="30" height="40"><rect width="30" height="40"/></svg>`},
		{"svg in comment", `<!-- <svg width="1"> --><svg xmlns="http://www.w3.org/2000/svg" width="30" height="40"><rect width="30" height="40"/></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustImport(t, tt.svg, geom.Zero)
			node, err := v.GenRenderNode(1)
			if err != nil {
				t.Fatalf("GenRenderNode: %v", err)
			}
			if got := node.Image.Bounds().Size(); got.X != 30 || got.Y != 40 {
				t.Errorf("node size = %v, want 30x40", got)
			}
		})
	}
}

func TestUpdateRenderNodeFailureKeepsNode(t *testing.T) {
	v := mustImport(t, sizedSVG, geom.Zero)
	v.UpdateRenderNode(1)
	before := v.RenderNode(1)
	if before.IsEmpty() {
		t.Fatal("initial render produced an empty node")
	}

	v.SetSVGData(brokenSVG)
	v.UpdateRenderNode(1)
	if got := v.RenderNode(1); got != before {
		t.Error("failed update replaced the cached node")
	}

	v.SetSVGData(sizedSVG)
	v.Resize(geom.NewAABB(geom.Zero, geom.V(0, 10)))
	v.UpdateRenderNode(1)
	if got := v.RenderNode(1); got != before {
		t.Error("failed update on empty bounds replaced the cached node")
	}
}

func TestRenderNodeLazy(t *testing.T) {
	v := mustImport(t, sizedSVG, geom.Zero)
	if !v.Dirty() {
		t.Fatal("new stroke is not dirty")
	}
	n1 := v.RenderNode(1)
	if v.Dirty() {
		t.Error("stroke still dirty after RenderNode")
	}
	if n2 := v.RenderNode(1); n2 != n1 {
		t.Error("clean stroke regenerated its node")
	}

	v.Translate(geom.V(5, 5))
	if !v.Dirty() {
		t.Error("Translate did not mark the stroke dirty")
	}
	n3 := v.RenderNode(1)
	if n3 == n1 {
		t.Error("RenderNode returned stale node after Translate")
	}
	if n3.Bounds != v.Bounds() {
		t.Errorf("node bounds = %v, want %v", n3.Bounds, v.Bounds())
	}

	if n4 := v.RenderNode(2); n4 == n3 || n4.Scale != 2 {
		t.Error("RenderNode did not regenerate for a new scale")
	}
}
