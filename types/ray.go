package types

import "github.com/chewxy/math32"

// A ray with the reciprocal direction and per-axis sign bits precomputed
// for the slab test. Dir is expected to be unit length; InvDir and Sign
// are always derived from it, so rays are never mutated piecemeal and are
// instead rebuilt through NewRay.
type Ray struct {
	Origin Vec3
	Dir    Vec3

	// Component-wise 1/Dir with an infinity sentinel where the
	// direction component is exactly zero.
	InvDir Vec3

	// Sign[axis] is 1 when Dir[axis] is negative.
	Sign [3]uint8
}

// Create a ray, precomputing the reciprocal direction and sign bits.
func NewRay(origin, dir Vec3) Ray {
	r := Ray{Origin: origin, Dir: dir}
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			r.InvDir[axis] = math32.Inf(1)
		} else {
			r.InvDir[axis] = 1.0 / dir[axis]
		}
		if dir[axis] < 0 {
			r.Sign[axis] = 1
		}
	}
	return r
}

// Get the point at parametric distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
