package render

import (
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
)

// MaxNodeSide is the largest raster side length a node may have, in pixels.
const MaxNodeSide = 16384

// Node is a raster representation of a stroke.
type Node struct {
	// Bounds is the document-space area the image covers.
	Bounds geom.AABB
	// Scale is the number of image pixels per document unit.
	Scale float64
	// Image holds the rasterized content; nil for the default node.
	Image *image.RGBA
}

// DefaultNode returns the empty node strokes hold before their first render
// and after being decoded.
func DefaultNode() *Node {
	return &Node{}
}

// IsEmpty reports whether the node carries no raster data.
func (n *Node) IsEmpty() bool {
	return n == nil || n.Image == nil
}

// newTarget allocates the destination image for bounds at scale.
func newTarget(bounds geom.AABB, scale float64) (*image.RGBA, error) {
	if !bounds.Valid() || bounds.IsEmpty() {
		return nil, errors.New(errors.ErrCodeInvalidBounds, "cannot render into bounds %v", bounds)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid scale factor %v", scale)
	}
	w := int(math.Ceil(bounds.Width() * scale))
	h := int(math.Ceil(bounds.Height() * scale))
	if w > MaxNodeSide || h > MaxNodeSide {
		return nil, errors.New(errors.ErrCodeRender, "render target %dx%d exceeds %d px", w, h, MaxNodeSide)
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// GenNodeForSVG rasterizes the standalone SVG document svg so that its
// viewBox fills bounds at the given scale.
func GenNodeForSVG(bounds geom.AABB, scale float64, svg string) (*Node, error) {
	img, err := newTarget(bounds, scale)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "parse svg")
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		icon.ViewBox.W, icon.ViewBox.H = bounds.Width(), bounds.Height()
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return &Node{Bounds: bounds, Scale: scale, Image: img}, nil
}

// GenNodeForImage scales img onto bounds at the given scale.
func GenNodeForImage(bounds geom.AABB, scale float64, img image.Image) (*Node, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidImage, "nil image")
	}
	dst, err := newTarget(bounds, scale)
	if err != nil {
		return nil, err
	}
	src := img.Bounds()
	if src.Dx() == dst.Bounds().Dx() && src.Dy() == dst.Bounds().Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	}
	return &Node{Bounds: bounds, Scale: scale, Image: dst}, nil
}
