package scene

import (
	"github.com/chewxy/math32"
	"github.com/shadercoder/Salty/types"
)

// A mesh vertex. A zero Normal means "no vertex normal"; intersectors
// fall back to the precomputed geometric normal in that case.
type Vertex struct {
	Position types.Vec3
	Normal   types.Vec3
	UV       types.Vec2
}

// Describes the nearest intersection found along a ray. Distance starts
// at +Inf; a query succeeded when it became finite. Primitives and
// materials are referenced by arena index so records stay small and
// copyable.
type HitRecord struct {
	Distance float32
	Position types.Vec3
	Normal   types.Vec3
	UV       types.Vec2

	PrimitiveIndex int32
	MaterialIndex  int32
}

// Reset the record for a fresh query.
func (rec *HitRecord) Reset() {
	rec.Distance = math32.Inf(1)
	rec.PrimitiveIndex = -1
	rec.MaterialIndex = -1
}

// A sphere primitive.
type Sphere struct {
	Radius        float32
	Center        types.Vec3
	MaterialIndex uint32
}

// Intersect the sphere, updating rec when a closer hit is found. The
// quadratic is solved in its geometric form which is better conditioned
// than the general abc formula for unit direction rays.
func (s *Sphere) Intersect(ray *types.Ray, rec *HitRecord) bool {
	po := s.Center.Sub(ray.Origin)
	b := po.Dot(ray.Dir)
	d := b*b - po.Dot(po) + s.Radius*s.Radius

	if d < 0 {
		return false
	}

	sqrtD := math32.Sqrt(d)
	t1 := b - sqrtD
	t2 := b + sqrtD
	if t1 < types.HitEpsilon && t2 < types.HitEpsilon {
		return false
	}

	dist := t2
	if t1 > types.HitEpsilon {
		dist = t1
	}
	if dist >= rec.Distance {
		return false
	}

	rec.Distance = dist
	rec.Position = ray.At(dist)
	rec.Normal = rec.Position.Sub(s.Center).Normalize()

	// Spherical parametrization of the unit normal.
	theta := types.SafeAcos(rec.Normal[1])
	phi := math32.Atan2(rec.Normal[0], rec.Normal[2])
	if phi < 0 {
		phi += 2 * math32.Pi
	}
	rec.UV = types.XY(phi/(2*math32.Pi), (math32.Pi-theta)/math32.Pi)

	return true
}

// Get the sphere bounding box.
func (s *Sphere) BBox() types.BoundingBox {
	r := types.XYZ(s.Radius, s.Radius, s.Radius)
	return types.NewBoundingBoxFromCorners(s.Center.Sub(r), s.Center.Add(r))
}

// Get the sphere centroid.
func (s *Sphere) Centroid() types.Vec3 {
	return s.Center
}

// A triangle primitive with per-vertex attributes and a precomputed
// geometric normal.
type Triangle struct {
	V0, V1, V2    Vertex
	Normal        types.Vec3
	MaterialIndex uint32
}

// Create a triangle, precomputing the geometric normal from the winding
// of its vertices.
func NewTriangle(v0, v1, v2 Vertex, materialIndex uint32) Triangle {
	e1 := v1.Position.Sub(v0.Position)
	e2 := v2.Position.Sub(v0.Position)
	return Triangle{
		V0:            v0,
		V1:            v1,
		V2:            v2,
		Normal:        e1.Cross(e2).Normalize(),
		MaterialIndex: materialIndex,
	}
}

// Intersect the triangle via Moeller-Trumbore, updating rec when a
// closer hit is found. Rays are rejected only when nearly parallel to
// the triangle plane; back faces still register hits.
func (tri *Triangle) Intersect(ray *types.Ray, rec *HitRecord) bool {
	e1 := tri.V1.Position.Sub(tri.V0.Position)
	e2 := tri.V2.Position.Sub(tri.V0.Position)

	pvec := ray.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -types.DetEpsilon && det < types.DetEpsilon {
		return false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Sub(tri.V0.Position)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(e1)
	v := ray.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	dist := e2.Dot(qvec) * invDet
	if dist < types.HitEpsilon || dist >= rec.Distance {
		return false
	}

	w := 1 - u - v
	rec.Distance = dist
	rec.Position = ray.At(dist)
	rec.Normal = tri.shadingNormal(w, u, v)
	rec.UV = types.XY(
		w*tri.V0.UV[0]+u*tri.V1.UV[0]+v*tri.V2.UV[0],
		w*tri.V0.UV[1]+u*tri.V1.UV[1]+v*tri.V2.UV[1],
	)

	return true
}

// Interpolate the vertex normals with barycentric weights, falling back
// to the geometric normal when the vertices carry none.
func (tri *Triangle) shadingNormal(w, u, v float32) types.Vec3 {
	n := tri.V0.Normal.Mul(w).Add(tri.V1.Normal.Mul(u)).Add(tri.V2.Normal.Mul(v))
	if n.Dot(n) < 1e-8 {
		return tri.Normal
	}
	return n.Normalize()
}

// Get the triangle bounding box.
func (tri *Triangle) BBox() types.BoundingBox {
	box := types.NewBoundingBox()
	box = box.Extend(tri.V0.Position)
	box = box.Extend(tri.V1.Position)
	box = box.Extend(tri.V2.Position)
	return box
}

// Get the triangle centroid.
func (tri *Triangle) Centroid() types.Vec3 {
	return tri.V0.Position.Add(tri.V1.Position).Add(tri.V2.Position).Mul(1.0 / 3.0)
}

// A planar quad primitive. Intersection decomposes it into the two
// triangles (v0 v1 v2) and (v2 v3 v0) sharing the precomputed face
// normal; the nearer triangle hit wins.
type Quad struct {
	V0, V1, V2, V3 Vertex
	Normal         types.Vec3
	MaterialIndex  uint32
}

// Create a quad from four coplanar vertices.
func NewQuad(v0, v1, v2, v3 Vertex, materialIndex uint32) Quad {
	e1 := v1.Position.Sub(v0.Position)
	e2 := v2.Position.Sub(v0.Position)
	return Quad{
		V0:            v0,
		V1:            v1,
		V2:            v2,
		V3:            v3,
		Normal:        e1.Cross(e2).Normalize(),
		MaterialIndex: materialIndex,
	}
}

// Intersect the quad, updating rec when a closer hit is found.
func (q *Quad) Intersect(ray *types.Ray, rec *HitRecord) bool {
	// rec carries the current best distance, so testing the second
	// triangle after the first automatically keeps the nearer hit.
	hit := q.intersectTriangle(ray, &q.V0, &q.V1, &q.V2, rec)
	if q.intersectTriangle(ray, &q.V2, &q.V3, &q.V0, rec) {
		hit = true
	}
	return hit
}

func (q *Quad) intersectTriangle(ray *types.Ray, v0, v1, v2 *Vertex, rec *HitRecord) bool {
	e1 := v1.Position.Sub(v0.Position)
	e2 := v2.Position.Sub(v0.Position)

	pvec := ray.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -types.DetEpsilon && det < types.DetEpsilon {
		return false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Sub(v0.Position)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(e1)
	vv := ray.Dir.Dot(qvec) * invDet
	if vv < 0 || u+vv > 1 {
		return false
	}

	dist := e2.Dot(qvec) * invDet
	if dist < types.HitEpsilon || dist >= rec.Distance {
		return false
	}

	w := 1 - u - vv
	rec.Distance = dist
	rec.Position = ray.At(dist)
	rec.Normal = q.Normal
	rec.UV = types.XY(
		w*v0.UV[0]+u*v1.UV[0]+vv*v2.UV[0],
		w*v0.UV[1]+u*v1.UV[1]+vv*v2.UV[1],
	)

	return true
}

// Get the quad bounding box.
func (q *Quad) BBox() types.BoundingBox {
	box := types.NewBoundingBox()
	box = box.Extend(q.V0.Position)
	box = box.Extend(q.V1.Position)
	box = box.Extend(q.V2.Position)
	box = box.Extend(q.V3.Position)
	return box
}

// Get the quad centroid.
func (q *Quad) Centroid() types.Vec3 {
	return q.V0.Position.Add(q.V1.Position).Add(q.V2.Position).Add(q.V3.Position).Mul(0.25)
}
