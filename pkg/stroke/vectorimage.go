package stroke

import (
	"encoding/json"

	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/render"
)

// KindVectorImage is the envelope type of VectorImage.
const KindVectorImage = "vectorimage"

// Placement defaults for imported images.
const (
	SizeXDefault   = 500.0
	SizeYDefault   = 500.0
	OffsetXDefault = 28.0
	OffsetYDefault = 28.0
)

// VectorImage is an imported SVG document placed on a sheet.
type VectorImage struct {
	bounds        geom.AABB
	intrinsicSize geom.Vector2
	svgData       string
	cache         nodeCache
}

type vectorImageJSON struct {
	Bounds        geom.AABB    `json:"bounds"`
	IntrinsicSize geom.Vector2 `json:"intrinsic_size"`
	SVGData       string       `json:"svg_data"`
}

// ImportFromSVG creates a VectorImage from an SVG document placed at pos.
//
// The XML prolog and doctype are stripped. The intrinsic size is the absolute
// width and height the root element declares, or SizeXDefault x SizeYDefault
// when it declares none. Only input without an <svg> root is rejected.
func ImportFromSVG(svg string, pos geom.Vector2) (*VectorImage, error) {
	if _, err := compose.RootAttrs(svg); err != nil {
		return nil, err
	}
	size, ok := compose.IntrinsicSize(svg)
	if !ok {
		size = geom.V(SizeXDefault, SizeYDefault)
	}
	return &VectorImage{
		bounds:        geom.AABBFromSize(pos, size),
		intrinsicSize: size,
		svgData:       compose.RemoveXMLHeader(svg),
		cache:         newNodeCache(),
	}, nil
}

func (v *VectorImage) Kind() string { return KindVectorImage }

func (v *VectorImage) Bounds() geom.AABB { return v.bounds }

// IntrinsicSize is the natural size the document declares for itself.
func (v *VectorImage) IntrinsicSize() geom.Vector2 { return v.intrinsicSize }

// SVGData returns the stored markup without XML prolog.
func (v *VectorImage) SVGData() string { return v.svgData }

// SetSVGData replaces the stored markup. The intrinsic size and bounds are
// kept.
func (v *VectorImage) SetSVGData(svg string) {
	v.svgData = compose.RemoveXMLHeader(svg)
	v.cache.invalidate()
}

func (v *VectorImage) Translate(offset geom.Vector2) {
	v.bounds = v.bounds.Translate(offset)
	v.cache.invalidate()
}

func (v *VectorImage) Resize(newBounds geom.AABB) {
	v.bounds = newBounds
	v.cache.invalidate()
}

// GenSVG nests the stored markup in an <svg> placed at the bounds shifted by
// offset. The intrinsic size is the viewBox and is stretched to the bounds.
func (v *VectorImage) GenSVG(offset geom.Vector2) (string, error) {
	bounds := v.bounds.Translate(offset)
	if !bounds.Valid() {
		return "", errors.New(errors.ErrCodeInvalidBounds, "vectorimage bounds %v", bounds)
	}
	intrinsic := geom.AABBFromSize(geom.Zero, v.intrinsicSize)
	return compose.WrapSVG(v.svgData,
		compose.WithBounds(bounds),
		compose.WithViewBox(intrinsic),
	), nil
}

// GenRenderNode rasterizes the markup onto the bounds at scale.
func (v *VectorImage) GenRenderNode(scale float64) (*render.Node, error) {
	if _, err := v.GenSVG(geom.Zero); err != nil {
		return nil, err
	}
	doc := compose.AddXMLHeader(compose.NormalizeRoot(v.svgData, v.intrinsicSize))
	return render.GenNodeForSVG(v.bounds, scale, doc)
}

func (v *VectorImage) UpdateRenderNode(scale float64) {
	v.cache.update(KindVectorImage, scale, v.GenRenderNode)
}

func (v *VectorImage) RenderNode(scale float64) *render.Node {
	return v.cache.get(KindVectorImage, scale, v.GenRenderNode)
}

// Dirty reports whether the cached node is out of date.
func (v *VectorImage) Dirty() bool { return v.cache.dirty }

func (v *VectorImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(vectorImageJSON{
		Bounds:        v.bounds,
		IntrinsicSize: v.intrinsicSize,
		SVGData:       v.svgData,
	})
}

func (v *VectorImage) UnmarshalJSON(data []byte) error {
	var j vectorImageJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	v.bounds = j.Bounds
	v.intrinsicSize = j.IntrinsicSize
	v.svgData = j.SVGData
	v.cache = newNodeCache()
	return nil
}
