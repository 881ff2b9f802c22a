// Package geom provides the float64 planar primitives used for stroke
// placement: [Vector2] and the axis-aligned bounding box [AABB].
//
// All coordinates are in document space. The y axis grows downwards, matching
// SVG user space, so Mins is the top-left corner and Maxs the bottom-right.
//
//	b := geom.AABBFromSize(geom.V(10, 10), geom.V(500, 500))
//	b = b.Translate(geom.V(5, -5))
//	fmt.Println(b.Width(), b.Height()) // 500 500
package geom
