package settings

import (
	"fmt"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

// Property is a named, observable value of a UI object.
type Property interface {
	Name() string
	Value() any
	SetValue(v any) error
	// Connect registers fn to run after the value changed and returns a
	// function that removes it.
	Connect(fn func(v any)) func()
}

// Object exposes properties by name.
type Object interface {
	Property(name string) (Property, bool)
}

// Mapping transforms a value crossing a binding. ok=false leaves the other
// side unchanged.
type Mapping func(v any) (out any, ok bool)

// Binding ties a settings key to a property. Get maps setting values to
// the property, Set maps property values back. Nil mappings pass values
// through unchanged.
type Binding struct {
	Key      string
	Target   Object
	Property string
	Get      Mapping
	Set      Mapping
}

func identity(v any) (any, bool) { return v, true }

// Bind applies the current value of b.Key to the property and keeps both
// sides equal from then on. The returned function removes the binding.
func (s *Settings) Bind(b Binding) (func(), error) {
	if _, err := s.schema.key(b.Key); err != nil {
		return nil, err
	}
	if b.Target == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "binding %s: nil target", b.Key)
	}
	prop, ok := b.Target.Property(b.Property)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownKey, "binding %s: no property %q", b.Key, b.Property)
	}
	getMap, setMap := b.Get, b.Set
	if getMap == nil {
		getMap = identity
	}
	if setMap == nil {
		setMap = identity
	}

	// syncing suppresses the echo of a value we are pushing ourselves.
	var syncing bool
	toProperty := func(v any) error {
		out, ok := getMap(v)
		if !ok {
			return nil
		}
		syncing = true
		defer func() { syncing = false }()
		return prop.SetValue(out)
	}

	current, err := s.Value(b.Key)
	if err != nil {
		return nil, err
	}
	if err := toProperty(current); err != nil {
		return nil, fmt.Errorf("binding %s: %w", b.Key, err)
	}

	disconnectSetting, err := s.Connect(b.Key, func(key string, v any) {
		if syncing {
			return
		}
		if err := toProperty(v); err != nil {
			s.logger.Error("failed to apply setting", "key", key, "property", b.Property, "err", err)
		}
	})
	if err != nil {
		return nil, err
	}
	disconnectProp := prop.Connect(func(v any) {
		if syncing {
			return
		}
		out, ok := setMap(v)
		if !ok {
			return
		}
		syncing = true
		defer func() { syncing = false }()
		if err := s.SetValue(b.Key, out); err != nil {
			s.logger.Error("failed to store property", "key", b.Key, "property", b.Property, "err", err)
		}
	})
	return func() {
		disconnectSetting()
		disconnectProp()
	}, nil
}

// BindAll binds every entry of bindings, stopping at the first error.
func (s *Settings) BindAll(bindings []Binding) error {
	for _, b := range bindings {
		if _, err := s.Bind(b); err != nil {
			return err
		}
	}
	return nil
}
