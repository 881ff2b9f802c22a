package settings

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

// Observer is called after the value of a key changed.
type Observer func(key string, value any)

// Settings holds the current values of a schema.
type Settings struct {
	mu        sync.RWMutex
	schema    *Schema
	values    map[string]any
	backend   Backend
	observers map[string]map[int]Observer
	nextID    int
	logger    *log.Logger
}

// Option configures a Settings.
type Option func(*Settings)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Settings) { s.logger = l }
}

// New returns settings with every key at its default. backend may be nil, in
// which case Load and Save are no-ops.
func New(schema *Schema, backend Backend, opts ...Option) *Settings {
	s := &Settings{
		schema:    schema,
		values:    make(map[string]any, len(schema.keys)),
		backend:   backend,
		observers: make(map[string]map[int]Observer),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, k := range schema.keys {
		s.values[k.Name] = k.Default
	}
	return s
}

// Schema returns the schema of s.
func (s *Settings) Schema() *Schema { return s.schema }

// Value returns the current value of key.
func (s *Settings) Value(key string) (any, error) {
	if _, err := s.schema.key(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.values[key]), nil
}

// SetValue validates v against the schema and stores it. Observers run
// only when the value actually changed.
func (s *Settings) SetValue(key string, v any) error {
	k, err := s.schema.key(key)
	if err != nil {
		return err
	}
	nv, err := k.Normalize(v)
	if err != nil {
		return err
	}
	s.store(map[string]any{key: nv})
	return nil
}

// Reset restores the default of key.
func (s *Settings) Reset(key string) error {
	k, err := s.schema.key(key)
	if err != nil {
		return err
	}
	s.store(map[string]any{key: k.Default})
	return nil
}

// store writes normalized values and notifies observers outside the lock.
func (s *Settings) store(values map[string]any) {
	type change struct {
		key string
		val any
		obs []Observer
	}
	var changes []change

	s.mu.Lock()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return s.schema.index[names[i]] < s.schema.index[names[j]] })
	for _, name := range names {
		v := values[name]
		if reflect.DeepEqual(s.values[name], v) {
			continue
		}
		s.values[name] = v
		ids := make([]int, 0, len(s.observers[name]))
		for id := range s.observers[name] {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		obs := make([]Observer, 0, len(ids))
		for _, id := range ids {
			obs = append(obs, s.observers[name][id])
		}
		changes = append(changes, change{key: name, val: v, obs: obs})
	}
	s.mu.Unlock()

	for _, c := range changes {
		for _, fn := range c.obs {
			fn(c.key, clone(c.val))
		}
	}
}

// Connect registers fn to run whenever key changes. The returned function
// removes the observer.
func (s *Settings) Connect(key string, fn Observer) (func(), error) {
	if _, err := s.schema.key(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	if s.observers[key] == nil {
		s.observers[key] = make(map[int]Observer)
	}
	s.observers[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers[key], id)
	}, nil
}

func (s *Settings) String(key string) (string, error) { return get[string](s, key) }
func (s *Settings) Bool(key string) (bool, error)     { return get[bool](s, key) }
func (s *Settings) Float(key string) (float64, error) { return get[float64](s, key) }
func (s *Settings) Int(key string) (int64, error)     { return get[int64](s, key) }
func (s *Settings) Tuple(key string) ([]uint32, error) {
	return get[[]uint32](s, key)
}

func get[T any](s *Settings, key string) (T, error) {
	var zero T
	k, err := s.schema.key(key)
	if err != nil {
		return zero, err
	}
	v, err := s.Value(key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.TypeMismatch(key, k.TypeName(), v)
	}
	return t, nil
}

// Snapshot returns a copy of all values.
func (s *Settings) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = clone(v)
	}
	return out
}

// Load replaces the values with the backend's. Keys missing from the
// backend take their defaults, unknown keys are ignored with a warning.
// A value of the wrong type aborts the load with TYPE_MISMATCH and leaves
// the current values untouched; an out of range value falls back to the
// default with a warning.
func (s *Settings) Load(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}
	raw, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	values := make(map[string]any, len(s.schema.keys))
	for _, k := range s.schema.keys {
		v, ok := raw[k.Name]
		if !ok {
			values[k.Name] = k.Default
			continue
		}
		nv, err := k.Normalize(v)
		if errors.Is(err, errors.ErrCodeIndexOutOfRange) {
			s.logger.Warn("resetting out of range setting", "key", k.Name, "value", v, "err", err)
			values[k.Name] = k.Default
			continue
		}
		if err != nil {
			return err
		}
		values[k.Name] = nv
	}
	for name := range raw {
		if _, ok := s.schema.Lookup(name); !ok {
			s.logger.Warn("ignoring unknown settings key", "key", name)
		}
	}
	s.store(values)
	return nil
}

// Save writes all values to the backend.
func (s *Settings) Save(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Save(ctx, s.Snapshot())
}

func clone(v any) any {
	if t, ok := v.([]uint32); ok {
		return append([]uint32(nil), t...)
	}
	return v
}
