package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/sketchnote/pkg/geom"
)

// Composite draws layers in order onto a new node covering bounds at scale.
// Layers rendered at a different scale are resampled; empty layers are
// skipped.
func Composite(bounds geom.AABB, scale float64, layers ...*Node) (*Node, error) {
	dst, err := newTarget(bounds, scale)
	if err != nil {
		return nil, err
	}
	for _, n := range layers {
		if n.IsEmpty() {
			continue
		}
		lo := n.Bounds.Mins.Sub(bounds.Mins).Scale(scale)
		hi := n.Bounds.Maxs.Sub(bounds.Mins).Scale(scale)
		r := image.Rect(int(math.Round(lo.X)), int(math.Round(lo.Y)), int(math.Round(hi.X)), int(math.Round(hi.Y)))
		src := n.Image.Bounds()
		if n.Scale == scale && r.Dx() == src.Dx() && r.Dy() == src.Dy() {
			draw.Draw(dst, r, n.Image, src.Min, draw.Over)
			continue
		}
		xdraw.CatmullRom.Scale(dst, r, n.Image, src, xdraw.Over, nil)
	}
	return &Node{Bounds: bounds, Scale: scale, Image: dst}, nil
}
