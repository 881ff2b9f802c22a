package stroke

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/render"
)

// KindBitmapImage is the envelope type of BitmapImage.
const KindBitmapImage = "bitmapimage"

// BitmapImage is an imported raster image placed on a sheet.
type BitmapImage struct {
	bounds        geom.AABB
	intrinsicSize geom.Vector2
	format        string
	data          []byte
	cache         nodeCache
}

type bitmapImageJSON struct {
	Bounds        geom.AABB    `json:"bounds"`
	IntrinsicSize geom.Vector2 `json:"intrinsic_size"`
	Format        string       `json:"format"`
	Data          []byte       `json:"data"`
}

// ImportFromBytes creates a BitmapImage from encoded image data placed at
// pos. The intrinsic size is the pixel size of the image.
func ImportFromBytes(data []byte, pos geom.Vector2) (*BitmapImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image header")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image has no pixels (%dx%d)", cfg.Width, cfg.Height)
	}
	size := geom.V(float64(cfg.Width), float64(cfg.Height))
	return &BitmapImage{
		bounds:        geom.AABBFromSize(pos, size),
		intrinsicSize: size,
		format:        format,
		data:          append([]byte(nil), data...),
		cache:         newNodeCache(),
	}, nil
}

func (b *BitmapImage) Kind() string { return KindBitmapImage }

func (b *BitmapImage) Bounds() geom.AABB { return b.bounds }

// IntrinsicSize is the pixel size of the image.
func (b *BitmapImage) IntrinsicSize() geom.Vector2 { return b.intrinsicSize }

// Format is the image format name reported by the decoder, e.g. "png".
func (b *BitmapImage) Format() string { return b.format }

func (b *BitmapImage) Translate(offset geom.Vector2) {
	b.bounds = b.bounds.Translate(offset)
	b.cache.invalidate()
}

func (b *BitmapImage) Resize(newBounds geom.AABB) {
	b.bounds = newBounds
	b.cache.invalidate()
}

// GenSVG embeds the image as a data URL inside an <svg> placed at the
// bounds shifted by offset.
func (b *BitmapImage) GenSVG(offset geom.Vector2) (string, error) {
	bounds := b.bounds.Translate(offset)
	if !bounds.Valid() {
		return "", errors.New(errors.ErrCodeInvalidBounds, "bitmapimage bounds %v", bounds)
	}
	w, h := compose.Num(b.intrinsicSize.X), compose.Num(b.intrinsicSize.Y)
	img := `<image x="0" y="0" width="` + w + `" height="` + h + `" preserveAspectRatio="none" href="data:image/` +
		b.format + `;base64,` + base64.StdEncoding.EncodeToString(b.data) + `"/>`
	return compose.WrapSVG(img,
		compose.WithBounds(bounds),
		compose.WithViewBox(geom.AABBFromSize(geom.Zero, b.intrinsicSize)),
	), nil
}

// GenRenderNode decodes the image and scales it onto the bounds.
func (b *BitmapImage) GenRenderNode(scale float64) (*render.Node, error) {
	img, _, err := image.Decode(bytes.NewReader(b.data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s image", b.format)
	}
	return render.GenNodeForImage(b.bounds, scale, img)
}

func (b *BitmapImage) UpdateRenderNode(scale float64) {
	b.cache.update(KindBitmapImage, scale, b.GenRenderNode)
}

func (b *BitmapImage) RenderNode(scale float64) *render.Node {
	return b.cache.get(KindBitmapImage, scale, b.GenRenderNode)
}

// Dirty reports whether the cached node is out of date.
func (b *BitmapImage) Dirty() bool { return b.cache.dirty }

func (b *BitmapImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(bitmapImageJSON{
		Bounds:        b.bounds,
		IntrinsicSize: b.intrinsicSize,
		Format:        b.format,
		Data:          b.data,
	})
}

func (b *BitmapImage) UnmarshalJSON(data []byte) error {
	var j bitmapImageJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	b.bounds = j.Bounds
	b.intrinsicSize = j.IntrinsicSize
	b.format = j.Format
	b.data = j.Data
	b.cache = newNodeCache()
	return nil
}
