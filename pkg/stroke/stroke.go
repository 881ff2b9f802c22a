package stroke

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/render"
)

// Stroke is an element drawn on a sheet.
type Stroke interface {
	// Kind is the registry name used in the persisted envelope.
	Kind() string
	Bounds() geom.AABB
	Translate(offset geom.Vector2)
	Resize(newBounds geom.AABB)
	// GenSVG emits the stroke as an <svg> element positioned at its bounds
	// shifted by offset.
	GenSVG(offset geom.Vector2) (string, error)
	// GenRenderNode rasterizes the stroke without touching the cache.
	GenRenderNode(scale float64) (*render.Node, error)
	// UpdateRenderNode regenerates the cached node unconditionally.
	UpdateRenderNode(scale float64)
	// RenderNode returns the cached node, regenerating it when stale.
	RenderNode(scale float64) *render.Node
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Stroke{}
)

// Register makes a stroke kind decodable by Unmarshal. It panics if kind is
// registered twice.
func Register(kind string, factory func() Stroke) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[kind]; dup {
		panic("stroke: Register called twice for " + kind)
	}
	registry[kind] = factory
}

// Kinds returns the registered stroke kinds, sorted.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func init() {
	Register(KindVectorImage, func() Stroke { return &VectorImage{} })
	Register(KindBitmapImage, func() Stroke { return &BitmapImage{} })
}

type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Marshal encodes s in the tagged envelope.
func Marshal(s Stroke) ([]byte, error) {
	value, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", s.Kind())
	}
	return json.Marshal(envelope{Type: s.Kind(), Value: value})
}

// Unmarshal decodes a stroke from its tagged envelope.
func Unmarshal(data []byte) (Stroke, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode stroke envelope")
	}
	registryMu.RLock()
	factory, ok := registry[env.Type]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown stroke type %q", env.Type)
	}
	s := factory()
	if err := json.Unmarshal(env.Value, s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", env.Type)
	}
	return s, nil
}

// Envelope adapts a Stroke to encoding/json, so containers can hold strokes
// in their own JSON documents.
type Envelope struct {
	Stroke Stroke
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Stroke == nil {
		return []byte("null"), nil
	}
	return Marshal(e.Stroke)
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	s, err := Unmarshal(data)
	if err != nil {
		return err
	}
	e.Stroke = s
	return nil
}

// nodeCache holds the cached render node of a stroke.
type nodeCache struct {
	node  *render.Node
	scale float64
	dirty bool
}

func newNodeCache() nodeCache {
	return nodeCache{node: render.DefaultNode(), dirty: true}
}

func (c *nodeCache) invalidate() { c.dirty = true }

func (c *nodeCache) current() *render.Node {
	if c.node == nil {
		c.node = render.DefaultNode()
	}
	return c.node
}

// update regenerates the node with gen. On failure the previous node stays.
func (c *nodeCache) update(kind string, scale float64, gen func(float64) (*render.Node, error)) {
	node, err := gen(scale)
	if err != nil {
		log.Error("failed to regenerate render node", "stroke", kind, "scale", scale, "err", err)
		return
	}
	c.node = node
	c.scale = scale
	c.dirty = false
}

func (c *nodeCache) get(kind string, scale float64, gen func(float64) (*render.Node, error)) *render.Node {
	if c.dirty || c.scale != scale || c.current().IsEmpty() {
		c.update(kind, scale, gen)
	}
	return c.current()
}
