package render

import (
	"bytes"
	"image/png"
	"os/exec"

	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
)

// EncodePNG encodes the node image as PNG.
func EncodePNG(n *Node) ([]byte, error) {
	if n.IsEmpty() {
		return nil, errors.New(errors.ErrCodeRender, "node has no image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, n.Image); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

// ToPNG rasterizes a standalone SVG document at the given scale factor.
// Scale of 2.0 produces a 2x resolution image. The document size is taken
// from its declared width and height.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	size, ok := compose.IntrinsicSize(string(svg))
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSVG, "png export needs a document with absolute width and height")
	}
	node, err := GenNodeForSVG(geom.AABBFromSize(geom.Zero, size), scale, string(svg))
	if err != nil {
		return nil, err
	}
	return EncodePNG(node)
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
