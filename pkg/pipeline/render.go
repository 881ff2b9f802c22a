package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sketchnote/pkg/render"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

// Render generates artifacts for the given formats without caching.
func Render(s *sheet.Sheet, formats []string, scale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	var svg []byte
	genSVG := func() ([]byte, error) {
		if svg == nil {
			doc, err := s.GenSVG()
			if err != nil {
				return nil, err
			}
			svg = []byte(doc)
		}
		return svg, nil
	}

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = genSVG()
		case FormatPNG:
			var node *render.Node
			if node, err = s.GenRenderNode(scale); err == nil {
				data, err = render.EncodePNG(node)
			}
		case FormatPDF:
			if data, err = genSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = s.Save(&buf)
			data = buf.Bytes()
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
