package sheet

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/render"
	"github.com/matzehuels/sketchnote/pkg/stroke"
)

// Version of the persisted document layout.
const Version = 1

// Sheet is a page of strokes.
type Sheet struct {
	Format     Format
	Background Background
	Endless    bool

	strokes map[uuid.UUID]stroke.Stroke
	order   []uuid.UUID
}

// New returns an empty sheet with the default format and background.
func New() *Sheet {
	return &Sheet{
		Format:     DefaultFormat(),
		Background: DefaultBackground(),
		strokes:    make(map[uuid.UUID]stroke.Stroke),
	}
}

// Insert adds s on top of the existing strokes and returns its key.
func (s *Sheet) Insert(st stroke.Stroke) uuid.UUID {
	id := uuid.New()
	s.insert(id, st)
	return id
}

func (s *Sheet) insert(id uuid.UUID, st stroke.Stroke) {
	if s.strokes == nil {
		s.strokes = make(map[uuid.UUID]stroke.Stroke)
	}
	if _, ok := s.strokes[id]; !ok {
		s.order = append(s.order, id)
	}
	s.strokes[id] = st
}

// Get returns the stroke stored under id.
func (s *Sheet) Get(id uuid.UUID) (stroke.Stroke, bool) {
	st, ok := s.strokes[id]
	return st, ok
}

// Remove deletes the stroke stored under id and returns it.
func (s *Sheet) Remove(id uuid.UUID) (stroke.Stroke, error) {
	st, ok := s.strokes[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "stroke %s not found", id)
	}
	delete(s.strokes, id)
	for i, k := range s.order {
		if k == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return st, nil
}

// Keys returns the stroke keys in drawing order.
func (s *Sheet) Keys() []uuid.UUID {
	return append([]uuid.UUID(nil), s.order...)
}

// Len returns the number of strokes.
func (s *Sheet) Len() int { return len(s.order) }

// Clear removes every stroke.
func (s *Sheet) Clear() {
	s.strokes = make(map[uuid.UUID]stroke.Stroke)
	s.order = nil
}

// ImportData inserts an image stroke at pos. SVG documents become vector
// images, anything else is decoded as a bitmap.
func (s *Sheet) ImportData(data []byte, pos geom.Vector2) (uuid.UUID, error) {
	var (
		st  stroke.Stroke
		err error
	)
	if _, rootErr := compose.RootAttrs(string(data)); rootErr == nil {
		st, err = stroke.ImportFromSVG(string(data), pos)
	} else {
		st, err = stroke.ImportFromBytes(data, pos)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return s.Insert(st), nil
}

// StrokesBounds returns the union of all stroke bounds, and false if the
// sheet has no strokes.
func (s *Sheet) StrokesBounds() (geom.AABB, bool) {
	var (
		out   geom.AABB
		found bool
	)
	for _, id := range s.order {
		b := s.strokes[id].Bounds()
		if !found {
			out, found = b, true
			continue
		}
		out = out.Merge(b)
	}
	return out, found
}

// Bounds returns the page area. An endless sheet grows downward in whole
// pages until it covers every stroke.
func (s *Sheet) Bounds() geom.AABB {
	page := geom.AABBFromSize(geom.Zero, s.Format.Size())
	if !s.Endless {
		return page
	}
	content, ok := s.StrokesBounds()
	if !ok || content.Maxs.Y <= page.Maxs.Y {
		return page
	}
	pages := math.Ceil(content.Maxs.Y / s.Format.Height)
	page.Maxs.Y = pages * s.Format.Height
	return page
}

// GenSVG renders the sheet as a standalone SVG document.
func (s *Sheet) GenSVG() (string, error) {
	if err := s.Format.Validate(); err != nil {
		return "", err
	}
	bounds := s.Bounds()

	var b strings.Builder
	b.WriteString(s.Background.genSVG(bounds))
	for _, id := range s.order {
		svg, err := s.strokes[id].GenSVG(geom.Zero)
		if err != nil {
			return "", fmt.Errorf("stroke %s: %w", id, err)
		}
		b.WriteString(svg)
	}
	return compose.WrapSVG(b.String(),
		compose.WithBounds(bounds),
		compose.WithViewBox(bounds),
		compose.WithXMLHeader(),
	), nil
}

// BackgroundSVG renders only the background as a standalone SVG document.
func (s *Sheet) BackgroundSVG() string {
	bounds := s.Bounds()
	return compose.WrapSVG(s.Background.genSVG(bounds),
		compose.WithBounds(bounds),
		compose.WithViewBox(bounds),
		compose.WithXMLHeader(),
	)
}

// GenRenderNode rasterizes the whole sheet at scale: the background with
// every stroke's render node drawn on top in order.
func (s *Sheet) GenRenderNode(scale float64) (*render.Node, error) {
	if err := s.Format.Validate(); err != nil {
		return nil, err
	}
	bounds := s.Bounds()
	bg, err := render.GenNodeForSVG(bounds, scale, s.BackgroundSVG())
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	layers := append([]*render.Node{bg}, s.RenderNodes(scale)...)
	return render.Composite(bounds, scale, layers...)
}

// RegenerateRenderNodes refreshes the render node of every stroke.
func (s *Sheet) RegenerateRenderNodes(scale float64) {
	for _, id := range s.order {
		s.strokes[id].UpdateRenderNode(scale)
	}
}

// RenderNodes returns the render nodes of all strokes in drawing order,
// regenerating stale ones.
func (s *Sheet) RenderNodes(scale float64) []*render.Node {
	nodes := make([]*render.Node, 0, len(s.order))
	for _, id := range s.order {
		nodes = append(nodes, s.strokes[id].RenderNode(scale))
	}
	return nodes
}

type entryJSON struct {
	Key    uuid.UUID       `json:"key"`
	Stroke stroke.Envelope `json:"stroke"`
}

type sheetJSON struct {
	Version    int         `json:"version"`
	Format     Format      `json:"format"`
	Background Background  `json:"background"`
	Endless    bool        `json:"endless"`
	Strokes    []entryJSON `json:"strokes"`
}

func (s *Sheet) MarshalJSON() ([]byte, error) {
	doc := sheetJSON{
		Version:    Version,
		Format:     s.Format,
		Background: s.Background,
		Endless:    s.Endless,
		Strokes:    make([]entryJSON, 0, len(s.order)),
	}
	for _, id := range s.order {
		doc.Strokes = append(doc.Strokes, entryJSON{Key: id, Stroke: stroke.Envelope{Stroke: s.strokes[id]}})
	}
	return json.Marshal(doc)
}

func (s *Sheet) UnmarshalJSON(data []byte) error {
	var doc sheetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Version > Version {
		return errors.New(errors.ErrCodeUnsupported, "sheet version %d is newer than %d", doc.Version, Version)
	}
	if err := doc.Format.Validate(); err != nil {
		return err
	}
	*s = Sheet{
		Format:     doc.Format,
		Background: doc.Background,
		Endless:    doc.Endless,
		strokes:    make(map[uuid.UUID]stroke.Stroke, len(doc.Strokes)),
	}
	for _, e := range doc.Strokes {
		if e.Stroke.Stroke == nil {
			return errors.New(errors.ErrCodeInvalidFormat, "stroke %s is empty", e.Key)
		}
		s.insert(e.Key, e.Stroke.Stroke)
	}
	return nil
}

// Save writes the sheet as indented JSON.
func (s *Sheet) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write sheet")
	}
	return nil
}

// Load reads a sheet written by Save.
func Load(r io.Reader) (*Sheet, error) {
	var s Sheet
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet")
	}
	return &s, nil
}
