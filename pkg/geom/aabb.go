package geom

import (
	"fmt"
	"math"
)

// AABB is an axis-aligned bounding box given by its minimum and maximum
// corners.
type AABB struct {
	Mins Vector2 `json:"mins"`
	Maxs Vector2 `json:"maxs"`
}

// NewAABB returns the box spanning mins to maxs. The corners are taken as
// given; use [AABB.Canon] to normalize swapped coordinates.
func NewAABB(mins, maxs Vector2) AABB {
	return AABB{Mins: mins, Maxs: maxs}
}

// AABBFromSize returns the box with its minimum corner at pos and the given
// extents.
func AABBFromSize(pos, size Vector2) AABB {
	return AABB{Mins: pos, Maxs: pos.Add(size)}
}

// Width returns Maxs.X - Mins.X.
func (b AABB) Width() float64 { return b.Maxs.X - b.Mins.X }

// Height returns Maxs.Y - Mins.Y.
func (b AABB) Height() float64 { return b.Maxs.Y - b.Mins.Y }

// Extents returns the size of the box as a vector.
func (b AABB) Extents() Vector2 { return b.Maxs.Sub(b.Mins) }

// Center returns the midpoint of the box.
func (b AABB) Center() Vector2 { return b.Mins.Add(b.Maxs).Scale(0.5) }

// Translate returns the box rigidly shifted by offset. Both corners move by
// the same amount, so the extents are unchanged.
func (b AABB) Translate(offset Vector2) AABB {
	return AABB{Mins: b.Mins.Add(offset), Maxs: b.Maxs.Add(offset)}
}

// Scale returns the box with both corners multiplied by s.
func (b AABB) Scale(s float64) AABB {
	return AABB{Mins: b.Mins.Scale(s), Maxs: b.Maxs.Scale(s)}
}

// Merge returns the smallest box containing both b and o.
func (b AABB) Merge(o AABB) AABB {
	return AABB{Mins: b.Mins.Min(o.Mins), Maxs: b.Maxs.Max(o.Maxs)}
}

// Loosened grows the box by margin on every side.
func (b AABB) Loosened(margin float64) AABB {
	m := V(margin, margin)
	return AABB{Mins: b.Mins.Sub(m), Maxs: b.Maxs.Add(m)}
}

// Contains reports whether p lies inside the box, edges included.
func (b AABB) Contains(p Vector2) bool {
	return p.X >= b.Mins.X && p.X <= b.Maxs.X && p.Y >= b.Mins.Y && p.Y <= b.Maxs.Y
}

// Intersects reports whether the two boxes overlap, touching edges included.
func (b AABB) Intersects(o AABB) bool {
	return b.Mins.X <= o.Maxs.X && o.Mins.X <= b.Maxs.X &&
		b.Mins.Y <= o.Maxs.Y && o.Mins.Y <= b.Maxs.Y
}

// Canon returns the box with swapped coordinates exchanged so that
// Mins <= Maxs on both axes.
func (b AABB) Canon() AABB {
	if b.Maxs.X < b.Mins.X {
		b.Mins.X, b.Maxs.X = b.Maxs.X, b.Mins.X
	}
	if b.Maxs.Y < b.Mins.Y {
		b.Mins.Y, b.Maxs.Y = b.Maxs.Y, b.Mins.Y
	}
	return b
}

// Valid reports whether the corners are finite and ordered.
func (b AABB) Valid() bool {
	return b.Mins.IsFinite() && b.Maxs.IsFinite() &&
		b.Mins.X <= b.Maxs.X && b.Mins.Y <= b.Maxs.Y
}

// IsEmpty reports whether the box has no area.
func (b AABB) IsEmpty() bool {
	return !(b.Width() > 0 && b.Height() > 0)
}

// RoundedOut returns the smallest box with integral corners that contains b.
func (b AABB) RoundedOut() AABB {
	return AABB{
		Mins: V(math.Floor(b.Mins.X), math.Floor(b.Mins.Y)),
		Maxs: V(math.Ceil(b.Maxs.X), math.Ceil(b.Maxs.Y)),
	}
}

func (b AABB) String() string {
	return fmt.Sprintf("[%v - %v]", b.Mins, b.Maxs)
}
