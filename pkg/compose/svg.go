package compose

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
)

// XMLHeader is the prolog prepended by AddXMLHeader.
const XMLHeader = `<?xml version="1.0" standalone="no"?>` + "\n"

var (
	xmlHeaderRe = regexp.MustCompile(`<\?xml[^?>]*\?>\s*`)
	doctypeRe   = regexp.MustCompile(`(?s)<!DOCTYPE[^>\[]*(\[.*?\])?\s*>\s*`)
)

// AddXMLHeader prepends the XML prolog to svg.
func AddXMLHeader(svg string) string {
	return XMLHeader + svg
}

// RemoveXMLHeader strips every XML prolog and DOCTYPE declaration from svg,
// leaving markup that can be nested inside another <svg> element.
func RemoveXMLHeader(svg string) string {
	svg = xmlHeaderRe.ReplaceAllString(svg, "")
	svg = doctypeRe.ReplaceAllString(svg, "")
	return strings.TrimLeft(svg, " \t\r\n")
}

// WrapOption configures WrapSVG.
type WrapOption func(*wrapper)

type wrapper struct {
	bounds      *geom.AABB
	viewBox     *geom.AABB
	xmlHeader   bool
	aspectRatio bool
}

// WithBounds places the wrapper at b. Without it the wrapper spans 100%.
func WithBounds(b geom.AABB) WrapOption { return func(w *wrapper) { w.bounds = &b } }

// WithViewBox sets the viewBox of the wrapper.
func WithViewBox(b geom.AABB) WrapOption { return func(w *wrapper) { w.viewBox = &b } }

// WithXMLHeader prepends the XML prolog to the result.
func WithXMLHeader() WrapOption { return func(w *wrapper) { w.xmlHeader = true } }

// WithPreserveAspectRatio keeps the content aspect ratio (xMidYMid) instead
// of stretching it to the wrapper (none).
func WithPreserveAspectRatio() WrapOption { return func(w *wrapper) { w.aspectRatio = true } }

// WrapSVG nests data inside a positioned <svg> element.
func WrapSVG(data string, opts ...WrapOption) string {
	var w wrapper
	for _, opt := range opts {
		opt(&w)
	}

	x, y, width, height := "0", "0", "100%", "100%"
	if w.bounds != nil {
		x, y = Num(w.bounds.Mins.X), Num(w.bounds.Mins.Y)
		width, height = Num(w.bounds.Width()), Num(w.bounds.Height())
	}
	aspect := "none"
	if w.aspectRatio {
		aspect = "xMidYMid"
	}

	var buf bytes.Buffer
	if w.xmlHeader {
		buf.WriteString(XMLHeader)
	}
	buf.WriteString(`<svg x="` + x + `" y="` + y + `" width="` + width + `" height="` + height + `"`)
	if w.viewBox != nil {
		vb := w.viewBox
		buf.WriteString(` viewBox="` + Num(vb.Mins.X) + " " + Num(vb.Mins.Y) + " " + Num(vb.Width()) + " " + Num(vb.Height()) + `"`)
	}
	buf.WriteString(` preserveAspectRatio="` + aspect + `"`)
	buf.WriteString(` xmlns="http://www.w3.org/2000/svg" xmlns:svg="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` + "\n")
	buf.WriteString(data)
	buf.WriteString("\n</svg>\n")
	return buf.String()
}

// Num formats f with the shortest representation that parses back to the
// same float64.
func Num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RootAttrs returns the attributes of the first <svg> element in the
// document, keyed by local name.
func RootAttrs(svg string) (map[string]string, error) {
	l := xml.NewLexer(parse.NewInputString(svg))
	var attrs map[string]string
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "tokenize svg")
			}
			if attrs == nil {
				return nil, errors.New(errors.ErrCodeInvalidSVG, "no <svg> root element")
			}
			return attrs, nil
		case xml.StartTagToken:
			if attrs != nil {
				return attrs, nil
			}
			if localName(l.Text()) != "svg" {
				return nil, errors.New(errors.ErrCodeInvalidSVG, "root element is <%s>, not <svg>", l.Text())
			}
			attrs = make(map[string]string)
		case xml.AttributeToken:
			if attrs != nil {
				attrs[localName(l.Text())] = string(unquote(l.AttrVal()))
			}
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			if attrs != nil {
				return attrs, nil
			}
		}
	}
}

// IntrinsicSize returns the absolute width and height declared on the root
// <svg> element, converted to px at 96 DPI.
func IntrinsicSize(svg string) (geom.Vector2, bool) {
	attrs, err := RootAttrs(svg)
	if err != nil {
		return geom.Zero, false
	}
	w, okW := ParseLength(attrs["width"])
	h, okH := ParseLength(attrs["height"])
	if !okW || !okH || w <= 0 || h <= 0 {
		return geom.Zero, false
	}
	return geom.V(w, h), true
}

var unitToPx = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
	// font-relative units resolve against the default 16px font size
	"em": 16,
	"ex": 8,
}

// ParseLength parses an SVG length into px. Percentages and unknown units
// report ok=false.
func ParseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	i := len(s)
	for i > 0 && (s[i-1] >= 'a' && s[i-1] <= 'z' || s[i-1] >= 'A' && s[i-1] <= 'Z' || s[i-1] == '%') {
		i--
	}
	factor, ok := unitToPx[strings.ToLower(s[i:])]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
	if err != nil {
		return 0, false
	}
	return v * factor, true
}

func localName(name []byte) string {
	if i := bytes.LastIndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	return string(name)
}

func unquote(v []byte) []byte {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// NormalizeRoot rewrites the root <svg> element of svg to declare size as
// plain pixel width and height, adding a "0 0 w h" viewBox when the element
// has none. Rasterizers that only understand unitless lengths need this.
func NormalizeRoot(svg string, size geom.Vector2) string {
	start, end, ok := rootTagSpan(svg)
	if !ok {
		return svg
	}

	var (
		b          strings.Builder
		hasViewBox bool
		void       bool
	)
	l := xml.NewLexer(parse.NewInputString(svg[start:end]))
lex:
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.StartTagToken:
			b.WriteByte('<')
			b.Write(l.Text())
		case xml.AttributeToken:
			switch localName(l.Text()) {
			case "width", "height":
				continue
			case "viewBox":
				hasViewBox = true
			}
			b.WriteByte(' ')
			b.Write(l.Text())
			if v := l.AttrVal(); len(v) > 0 {
				b.WriteByte('=')
				b.Write(v)
			}
		case xml.StartTagCloseVoidToken:
			void = true
			break lex
		case xml.StartTagCloseToken, xml.ErrorToken:
			break lex
		}
	}

	w, h := Num(size.X), Num(size.Y)
	b.WriteString(` width="` + w + `" height="` + h + `"`)
	if !hasViewBox {
		b.WriteString(` viewBox="0 0 ` + w + " " + h + `"`)
	}
	if void {
		b.WriteString("/>")
	} else {
		b.WriteByte('>')
	}
	return svg[:start] + b.String() + svg[end:]
}

// rootTagSpan locates the start tag of the document element, skipping the
// prolog, comments, processing instructions and DOCTYPE. ok is false when
// the document element is not svg.
func rootTagSpan(svg string) (start, end int, ok bool) {
	i := 0
	for {
		j := strings.IndexByte(svg[i:], '<')
		if j < 0 {
			return 0, 0, false
		}
		i += j
		rest := svg[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			k := strings.Index(rest[4:], "-->")
			if k < 0 {
				return 0, 0, false
			}
			i += 4 + k + 3
			continue
		case strings.HasPrefix(rest, "<?"):
			k := strings.Index(rest[2:], "?>")
			if k < 0 {
				return 0, 0, false
			}
			i += 2 + k + 2
			continue
		case strings.HasPrefix(rest, "<!"):
			k := markupEnd(rest, 2)
			if k < 0 {
				return 0, 0, false
			}
			i += k
			continue
		}

		n := 1
		for n < len(rest) && !isTagNameEnd(rest[n]) {
			n++
		}
		if localName([]byte(rest[1:n])) != "svg" {
			return 0, 0, false
		}
		k := markupEnd(rest, n)
		if k < 0 {
			return 0, 0, false
		}
		return i, i + k, true
	}
}

// markupEnd returns the offset just past the '>' closing the markup that
// starts s, scanning from from. Quoted values and DOCTYPE internal subsets
// may contain '>'.
func markupEnd(s string, from int) int {
	var quote byte
	depth := 0
	for k := from; k < len(s); k++ {
		c := s[k]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '>' && depth <= 0:
			return k + 1
		}
	}
	return -1
}

func isTagNameEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '/', '>':
		return true
	}
	return false
}
