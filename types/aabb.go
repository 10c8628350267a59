package types

import "github.com/chewxy/math32"

// An axis-aligned bounding box. The zero-extent "empty" box keeps Min at
// +Inf and Max at -Inf so that merging it with any box is an identity.
type BoundingBox struct {
	Min Vec3
	Max Vec3
}

// Create an empty bounding box.
func NewBoundingBox() BoundingBox {
	inf := math32.Inf(1)
	return BoundingBox{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Create a bounding box spanning two corners.
func NewBoundingBoxFromCorners(min, max Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// Merge two bounding boxes.
func Merge(b1, b2 BoundingBox) BoundingBox {
	return BoundingBox{
		Min: MinVec3(b1.Min, b2.Min),
		Max: MaxVec3(b1.Max, b2.Max),
	}
}

// Grow the box to include a point.
func (b BoundingBox) Extend(p Vec3) BoundingBox {
	return BoundingBox{
		Min: MinVec3(b.Min, p),
		Max: MaxVec3(b.Max, p),
	}
}

// Check whether the box contains a point. Boundary points are contained.
func (b BoundingBox) Contains(p Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Check whether the box fully contains another box.
func (b BoundingBox) ContainsBox(b2 BoundingBox) bool {
	return b.Contains(b2.Min) && b.Contains(b2.Max)
}

// Get the box center.
func (b BoundingBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the per-axis extents.
func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the axis with the greatest extent.
func (b BoundingBox) LongestAxis() int {
	side := b.Size()
	axis := 0
	if side[1] > side[axis] {
		axis = 1
	}
	if side[2] > side[axis] {
		axis = 2
	}
	return axis
}

// Get the box surface area. An empty box reports zero area.
func (b BoundingBox) SurfaceArea() float32 {
	if b.Min[0] > b.Max[0] {
		return 0
	}
	side := b.Size()
	return 2.0 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Run the slab test against a ray, using the precomputed reciprocal
// direction and sign bits to avoid divisions and branches on the ray
// direction. Returns the parametric entry and exit distances; the
// interval is valid when tmin <= tmax.
func (b BoundingBox) IntersectRay(ray *Ray) (tmin, tmax float32) {
	bounds := [2]Vec3{b.Min, b.Max}

	tmin = (bounds[ray.Sign[0]][0] - ray.Origin[0]) * ray.InvDir[0]
	tmax = (bounds[1-ray.Sign[0]][0] - ray.Origin[0]) * ray.InvDir[0]

	tymin := (bounds[ray.Sign[1]][1] - ray.Origin[1]) * ray.InvDir[1]
	tymax := (bounds[1-ray.Sign[1]][1] - ray.Origin[1]) * ray.InvDir[1]

	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin := (bounds[ray.Sign[2]][2] - ray.Origin[2]) * ray.InvDir[2]
	tzmax := (bounds[1-ray.Sign[2]][2] - ray.Origin[2]) * ray.InvDir[2]

	if tzmin > tmin {
		tmin = tzmin
	}
	if tzmax < tmax {
		tmax = tzmax
	}

	return tmin, tmax
}
