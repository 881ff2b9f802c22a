package settings

import (
	"testing"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

type fakeProp struct {
	name      string
	value     any
	observers map[int]func(any)
	next      int
	sets      int
}

func (p *fakeProp) Name() string { return p.name }
func (p *fakeProp) Value() any   { return p.value }

func (p *fakeProp) SetValue(v any) error {
	p.sets++
	if p.value == v {
		return nil
	}
	p.value = v
	for _, fn := range p.observers {
		fn(v)
	}
	return nil
}

func (p *fakeProp) Connect(fn func(any)) func() {
	if p.observers == nil {
		p.observers = map[int]func(any){}
	}
	id := p.next
	p.next++
	p.observers[id] = fn
	return func() { delete(p.observers, id) }
}

type fakeObject map[string]*fakeProp

func (o fakeObject) Property(name string) (Property, bool) {
	p, ok := o[name]
	return p, ok
}

func TestBindAppliesAndSyncs(t *testing.T) {
	s := New(DefaultSchema(), nil)
	s.SetValue(TouchDrawing, true)
	prop := &fakeProp{name: "touch-drawing", value: false}
	obj := fakeObject{"touch-drawing": prop}

	if err := s.BindAll([]Binding{{Key: TouchDrawing, Target: obj, Property: "touch-drawing"}}); err != nil {
		t.Fatalf("BindAll: %v", err)
	}
	if prop.value != true {
		t.Errorf("property = %v after bind, want true", prop.value)
	}

	s.SetValue(TouchDrawing, false)
	if prop.value != false {
		t.Errorf("property = %v after setting change, want false", prop.value)
	}

	prop.SetValue(true)
	if v, _ := s.Bool(TouchDrawing); !v {
		t.Error("setting not updated from property")
	}
}

func TestBindSuppressesEcho(t *testing.T) {
	s := New(DefaultSchema(), nil)
	prop := &fakeProp{name: "selected", value: int64(0)}
	if _, err := s.Bind(Binding{Key: MarkerSelectedColor, Target: fakeObject{"selected": prop}, Property: "selected"}); err != nil {
		t.Fatal(err)
	}
	var notified int
	s.Connect(MarkerSelectedColor, func(string, any) { notified++ })

	before := prop.sets
	prop.SetValue(int64(3))
	if prop.sets != before+1 {
		t.Errorf("property set %d times, want exactly once (no echo)", prop.sets-before)
	}
	if notified != 1 {
		t.Errorf("setting observers ran %d times, want 1", notified)
	}
}

func TestBindMappings(t *testing.T) {
	s := New(DefaultSchema(), nil)
	prop := &fakeProp{name: "scheme", value: 0}
	toProp := func(v any) (any, bool) {
		switch v {
		case "light":
			return 1, true
		case "dark":
			return 2, true
		case "default":
			return 0, true
		}
		return nil, false
	}
	toSetting := func(v any) (any, bool) {
		if v == 2 {
			return "dark", true
		}
		return nil, false
	}
	if _, err := s.Bind(Binding{Key: ColorScheme, Target: fakeObject{"scheme": prop}, Property: "scheme", Get: toProp, Set: toSetting}); err != nil {
		t.Fatal(err)
	}

	s.SetValue(ColorScheme, "light")
	if prop.value != 1 {
		t.Errorf("property = %v, want 1", prop.value)
	}
	s.SetValue(ColorScheme, "sepia")
	if prop.value != 1 {
		t.Errorf("unmapped setting changed property to %v", prop.value)
	}

	prop.SetValue(2)
	if v, _ := s.String(ColorScheme); v != "dark" {
		t.Errorf("setting = %q, want dark", v)
	}
	prop.SetValue(1)
	if v, _ := s.String(ColorScheme); v != "dark" {
		t.Errorf("unmapped property changed setting to %q", v)
	}
}

func TestBindErrors(t *testing.T) {
	s := New(DefaultSchema(), nil)
	obj := fakeObject{"x": &fakeProp{name: "x"}}
	tests := []struct {
		name string
		b    Binding
		code errors.Code
	}{
		{"unknown key", Binding{Key: "missing", Target: obj, Property: "x"}, errors.ErrCodeUnknownKey},
		{"unknown property", Binding{Key: PenSounds, Target: obj, Property: "y"}, errors.ErrCodeUnknownKey},
		{"nil target", Binding{Key: PenSounds, Property: "x"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Bind(tt.b); !errors.Is(err, tt.code) {
				t.Errorf("Bind() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestUnbind(t *testing.T) {
	s := New(DefaultSchema(), nil)
	prop := &fakeProp{name: "p", value: false}
	unbind, err := s.Bind(Binding{Key: FormatBorders, Target: fakeObject{"p": prop}, Property: "p"})
	if err != nil {
		t.Fatal(err)
	}
	unbind()
	s.SetValue(FormatBorders, false)
	if prop.value != true {
		t.Errorf("unbound property followed the setting: %v", prop.value)
	}
}
