package geom

import "testing"

func TestTranslateRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		box    AABB
		offset Vector2
	}{
		{"zero offset", NewAABB(V(0, 0), V(10, 10)), Zero},
		{"positive", NewAABB(V(1, 2), V(3, 4)), V(5, 7)},
		{"negative", NewAABB(V(-50, 20), V(450, 520)), V(-12.5, -0.25)},
		{"fractional", NewAABB(V(0.5, 0.75), V(100.125, 200.0625)), V(28, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.box.Translate(tt.offset).Translate(tt.offset.Neg())
			if got != tt.box {
				t.Errorf("Translate round trip = %v, want %v", got, tt.box)
			}
		})
	}
}

func TestTranslateKeepsExtents(t *testing.T) {
	b := AABBFromSize(V(10, 20), V(300, 150))
	moved := b.Translate(V(-7, 42))

	if moved.Extents() != b.Extents() {
		t.Errorf("Extents() = %v, want %v", moved.Extents(), b.Extents())
	}
	if moved.Mins != V(3, 62) {
		t.Errorf("Mins = %v, want %v", moved.Mins, V(3, 62))
	}
}

func TestAABBFromSize(t *testing.T) {
	b := AABBFromSize(V(28, 28), V(500, 500))

	if b.Width() != 500 || b.Height() != 500 {
		t.Errorf("size = %vx%v, want 500x500", b.Width(), b.Height())
	}
	if b.Maxs != V(528, 528) {
		t.Errorf("Maxs = %v, want %v", b.Maxs, V(528, 528))
	}
}

func TestMergeAndContains(t *testing.T) {
	a := NewAABB(V(0, 0), V(10, 10))
	b := NewAABB(V(5, -5), V(20, 8))
	m := a.Merge(b)

	want := NewAABB(V(0, -5), V(20, 10))
	if m != want {
		t.Errorf("Merge() = %v, want %v", m, want)
	}
	if !m.Contains(V(20, 10)) {
		t.Error("Contains() should include the max corner")
	}
	if m.Contains(V(21, 0)) {
		t.Error("Contains() should exclude points outside")
	}
	if !a.Intersects(b) {
		t.Error("Intersects() = false, want true")
	}
	if a.Intersects(NewAABB(V(11, 11), V(12, 12))) {
		t.Error("Intersects() = true for disjoint boxes")
	}
}

func TestCanonAndValid(t *testing.T) {
	b := NewAABB(V(10, 10), V(0, 0))
	if b.Valid() {
		t.Error("swapped box should not be valid")
	}
	c := b.Canon()
	if !c.Valid() {
		t.Errorf("Canon() = %v should be valid", c)
	}
	if c != NewAABB(V(0, 0), V(10, 10)) {
		t.Errorf("Canon() = %v", c)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"area", NewAABB(V(0, 0), V(1, 1)), false},
		{"zero width", NewAABB(V(0, 0), V(0, 1)), true},
		{"zero height", NewAABB(V(0, 0), V(1, 0)), true},
		{"inverted", NewAABB(V(1, 1), V(0, 0)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundedOut(t *testing.T) {
	b := NewAABB(V(0.2, -0.5), V(10.1, 9.9))
	got := b.RoundedOut()
	want := NewAABB(V(0, -1), V(11, 10))
	if got != want {
		t.Errorf("RoundedOut() = %v, want %v", got, want)
	}
}
