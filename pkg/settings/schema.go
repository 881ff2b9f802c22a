package settings

import (
	"fmt"
	"math"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

// Kind is the value type of a settings key.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindFloat
	KindInt
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindTuple:
		return "tuple"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Key declares one setting.
type Key struct {
	Name    string
	Kind    Kind
	Arity   int // tuple length, KindTuple only
	Default any
	Summary string
	// Check, when set, rejects values of the right type that are still not
	// acceptable, such as an index past the end of a palette.
	Check func(v any) error
}

// TypeName describes the value type, e.g. "tuple(8)".
func (k Key) TypeName() string {
	if k.Kind == KindTuple {
		return fmt.Sprintf("tuple(%d)", k.Arity)
	}
	return k.Kind.String()
}

// Normalize converts v to the canonical Go type of the key and applies
// Check. Numbers are converted between widths when no precision is lost.
func (k Key) Normalize(v any) (any, error) {
	nv, err := k.convert(v)
	if err != nil {
		return nil, err
	}
	if k.Check != nil {
		if err := k.Check(nv); err != nil {
			return nil, err
		}
	}
	return nv, nil
}

func (k Key) convert(v any) (any, error) {
	switch k.Kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindInt:
		if n, ok := toInt64(v); ok {
			return n, nil
		}
	case KindTuple:
		t, ok := toTuple(v)
		if !ok {
			break
		}
		if len(t) != k.Arity {
			return nil, errors.New(errors.ErrCodeTypeMismatch, "%s: expected %d values, got %d", k.Name, k.Arity, len(t))
		}
		return t, nil
	}
	return nil, errors.TypeMismatch(k.Name, k.TypeName(), v)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n), true
		}
	}
	return 0, false
}

func toTuple(v any) ([]uint32, bool) {
	switch t := v.(type) {
	case []uint32:
		return append([]uint32(nil), t...), true
	case []int64:
		out := make([]uint32, len(t))
		for i, n := range t {
			if n < 0 || n > math.MaxUint32 {
				return nil, false
			}
			out[i] = uint32(n)
		}
		return out, true
	case []int:
		out := make([]uint32, len(t))
		for i, n := range t {
			if n < 0 || int64(n) > math.MaxUint32 {
				return nil, false
			}
			out[i] = uint32(n)
		}
		return out, true
	case []any:
		out := make([]uint32, len(t))
		for i, e := range t {
			n, ok := toInt64(e)
			if !ok || n < 0 || n > math.MaxUint32 {
				return nil, false
			}
			out[i] = uint32(n)
		}
		return out, true
	}
	return nil, false
}

// Schema is an ordered set of key declarations.
type Schema struct {
	keys  []Key
	index map[string]int
}

// NewSchema builds a schema. It panics on duplicate names or defaults that do
// not match their kind, which are programming errors.
func NewSchema(keys ...Key) *Schema {
	s := &Schema{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		if _, dup := s.index[k.Name]; dup {
			panic("settings: duplicate key " + k.Name)
		}
		def, err := k.Normalize(k.Default)
		if err != nil {
			panic("settings: bad default: " + err.Error())
		}
		k.Default = def
		s.index[k.Name] = len(s.keys)
		s.keys = append(s.keys, k)
	}
	return s
}

// Lookup returns the declaration of name.
func (s *Schema) Lookup(name string) (Key, bool) {
	i, ok := s.index[name]
	if !ok {
		return Key{}, false
	}
	return s.keys[i], true
}

// Keys returns the declarations in schema order.
func (s *Schema) Keys() []Key {
	return append([]Key(nil), s.keys...)
}

func (s *Schema) key(name string) (Key, error) {
	k, ok := s.Lookup(name)
	if !ok {
		return Key{}, errors.New(errors.ErrCodeUnknownKey, "unknown settings key %q", name)
	}
	return k, nil
}
