// Package app is the UI model of sketchnote.
//
// Widgets are plain objects exposing named, observable properties
// ([Prop]). Front-ends observe those properties, and the settings store
// binds persisted keys to them (see [AppWindow.SetupSettings]).
package app

import (
	"fmt"
	"sort"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/settings"
)

// Prop is an observable property holding a value of type T.
type Prop[T comparable] struct {
	name      string
	value     T
	check     func(T) error
	observers map[int]func(any)
	nextID    int
}

// NewProp returns a property named name with the initial value v.
func NewProp[T comparable](name string, v T) *Prop[T] {
	return &Prop[T]{name: name, value: v, observers: make(map[int]func(any))}
}

// WithCheck installs a validator that rejects values before they are stored.
func (p *Prop[T]) WithCheck(check func(T) error) *Prop[T] {
	p.check = check
	return p
}

func (p *Prop[T]) Name() string { return p.name }

// Get returns the current value.
func (p *Prop[T]) Get() T { return p.value }

// Set stores v and notifies observers if the value changed.
func (p *Prop[T]) Set(v T) error {
	if p.check != nil {
		if err := p.check(v); err != nil {
			return err
		}
	}
	if v == p.value {
		return nil
	}
	p.value = v
	ids := make([]int, 0, len(p.observers))
	for id := range p.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := p.observers[id]; ok {
			fn(v)
		}
	}
	return nil
}

func (p *Prop[T]) Value() any { return p.value }

func (p *Prop[T]) SetValue(v any) error {
	tv, ok := v.(T)
	if !ok {
		var zero T
		return errors.TypeMismatch(p.name, fmt.Sprintf("%T", zero), v)
	}
	return p.Set(tv)
}

func (p *Prop[T]) Connect(fn func(v any)) func() {
	id := p.nextID
	p.nextID++
	p.observers[id] = fn
	return func() { delete(p.observers, id) }
}

// OnChange registers a typed observer.
func (p *Prop[T]) OnChange(fn func(v T)) func() {
	return p.Connect(func(v any) { fn(v.(T)) })
}

var _ settings.Property = (*Prop[bool])(nil)

// properties implements settings.Object over a fixed set of properties.
type properties map[string]settings.Property

func newProperties(props ...settings.Property) properties {
	m := make(properties, len(props))
	for _, p := range props {
		m[p.Name()] = p
	}
	return m
}

func (m properties) Property(name string) (settings.Property, bool) {
	p, ok := m[name]
	return p, ok
}
