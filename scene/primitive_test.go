package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/shadercoder/Salty/types"
)

func resetRecord() HitRecord {
	var rec HitRecord
	rec.Reset()
	return rec
}

func TestSphereIntersection(t *testing.T) {
	sphere := Sphere{Radius: 1, Center: types.XYZ(0, 0, 0)}
	ray := types.NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, 1))

	rec := resetRecord()
	if !sphere.Intersect(&ray, &rec) {
		t.Fatal("expected ray through the center to hit")
	}
	if math32.Abs(rec.Distance-4) > 1e-5 {
		t.Fatalf("expected hit distance 4; got %f", rec.Distance)
	}
	if rec.Normal.Sub(types.XYZ(0, 0, -1)).Len() > 1e-5 {
		t.Fatalf("expected normal (0, 0, -1); got %v", rec.Normal)
	}

	// Normal (0, 0, -1): phi = atan2(0, -1) = pi, theta = pi/2.
	if math32.Abs(rec.UV[0]-0.5) > 1e-5 || math32.Abs(rec.UV[1]-0.5) > 1e-5 {
		t.Fatalf("expected uv (0.5, 0.5); got %v", rec.UV)
	}
}

func TestSphereMiss(t *testing.T) {
	sphere := Sphere{Radius: 1, Center: types.XYZ(0, 0, 0)}
	ray := types.NewRay(types.XYZ(0, 3, -5), types.XYZ(0, 0, 1))

	rec := resetRecord()
	if sphere.Intersect(&ray, &rec) {
		t.Fatal("expected offset ray to miss")
	}
	if !math32.IsInf(rec.Distance, 1) {
		t.Fatalf("expected distance to stay infinite; got %f", rec.Distance)
	}
}

func TestSphereInteriorHit(t *testing.T) {
	sphere := Sphere{Radius: 2, Center: types.XYZ(0, 0, 0)}
	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1))

	rec := resetRecord()
	if !sphere.Intersect(&ray, &rec) {
		t.Fatal("expected interior ray to hit the far side")
	}
	if math32.Abs(rec.Distance-2) > 1e-5 {
		t.Fatalf("expected hit distance 2; got %f", rec.Distance)
	}
}

func TestSphereSelfIntersectionGuard(t *testing.T) {
	sphere := Sphere{Radius: 1, Center: types.XYZ(0, 0, 0)}

	// A ray starting on the surface pointing away must not re-hit the
	// surface it departs from.
	ray := types.NewRay(types.XYZ(0, 0, -1), types.XYZ(0, 0, -1))
	rec := resetRecord()
	if sphere.Intersect(&ray, &rec) {
		t.Fatal("expected departing surface ray to miss")
	}
}

func TestSphereKeepsNearerHit(t *testing.T) {
	sphere := Sphere{Radius: 1, Center: types.XYZ(0, 0, 0)}
	ray := types.NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, 1))

	rec := resetRecord()
	rec.Distance = 2 // pretend something closer was already found
	if sphere.Intersect(&ray, &rec) {
		t.Fatal("expected farther hit to be rejected")
	}
	if rec.Distance != 2 {
		t.Fatalf("expected record to be untouched; got distance %f", rec.Distance)
	}
}

func TestTriangleIntersection(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: types.XYZ(-1, 0, 0), UV: types.XY(0, 0)},
		Vertex{Position: types.XYZ(1, 0, 0), UV: types.XY(1, 0)},
		Vertex{Position: types.XYZ(0, 1, 0), UV: types.XY(0.5, 1)},
		0,
	)

	ray := types.NewRay(types.XYZ(0, 0.25, 1), types.XYZ(0, 0, -1))
	rec := resetRecord()
	if !tri.Intersect(&ray, &rec) {
		t.Fatal("expected centered ray to hit")
	}
	if math32.Abs(rec.Distance-1) > 1e-5 {
		t.Fatalf("expected hit distance 1; got %f", rec.Distance)
	}
	if rec.Normal.Sub(types.XYZ(0, 0, 1)).Len() > 1e-5 {
		t.Fatalf("expected geometric normal (0, 0, 1); got %v", rec.Normal)
	}
	if math32.Abs(rec.UV[0]-0.5) > 1e-5 || math32.Abs(rec.UV[1]-0.25) > 1e-5 {
		t.Fatalf("expected interpolated uv (0.5, 0.25); got %v", rec.UV)
	}
}

func TestTriangleBackfaceHit(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: types.XYZ(-1, 0, 0)},
		Vertex{Position: types.XYZ(1, 0, 0)},
		Vertex{Position: types.XYZ(0, 1, 0)},
		0,
	)

	// Approaching from behind the winding still registers a hit; only
	// near-parallel rays are rejected.
	ray := types.NewRay(types.XYZ(0, 0.25, -1), types.XYZ(0, 0, 1))
	rec := resetRecord()
	if !tri.Intersect(&ray, &rec) {
		t.Fatal("expected backface ray to hit")
	}
}

func TestTriangleParallelMiss(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: types.XYZ(-1, 0, 0)},
		Vertex{Position: types.XYZ(1, 0, 0)},
		Vertex{Position: types.XYZ(0, 1, 0)},
		0,
	)

	ray := types.NewRay(types.XYZ(0, 0.25, 1), types.XYZ(1, 0, 0))
	rec := resetRecord()
	if tri.Intersect(&ray, &rec) {
		t.Fatal("expected in-plane ray to miss")
	}
}

func TestTriangleOutsideBarycentrics(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: types.XYZ(-1, 0, 0)},
		Vertex{Position: types.XYZ(1, 0, 0)},
		Vertex{Position: types.XYZ(0, 1, 0)},
		0,
	)

	ray := types.NewRay(types.XYZ(0.9, 0.9, 1), types.XYZ(0, 0, -1))
	rec := resetRecord()
	if tri.Intersect(&ray, &rec) {
		t.Fatal("expected ray outside the triangle to miss")
	}
}

func TestTriangleVertexNormalInterpolation(t *testing.T) {
	up := types.XYZ(0, 0, 1)
	tilted := types.XYZ(1, 0, 1).Normalize()

	tri := NewTriangle(
		Vertex{Position: types.XYZ(-1, 0, 0), Normal: tilted},
		Vertex{Position: types.XYZ(1, 0, 0), Normal: up},
		Vertex{Position: types.XYZ(0, 1, 0), Normal: up},
		0,
	)

	// Hitting near vertex 0 should pull the shading normal toward its
	// tilted vertex normal.
	ray := types.NewRay(types.XYZ(-0.9, 0.02, 1), types.XYZ(0, 0, -1))
	rec := resetRecord()
	if !tri.Intersect(&ray, &rec) {
		t.Fatal("expected ray near vertex 0 to hit")
	}
	if rec.Normal.Sub(up).Len() < 0.1 {
		t.Fatalf("expected normal tilted away from the face normal; got %v", rec.Normal)
	}
	if math32.Abs(rec.Normal.Len()-1) > 1e-5 {
		t.Fatalf("expected unit shading normal; got length %f", rec.Normal.Len())
	}
}

func TestQuadIntersection(t *testing.T) {
	quad := NewQuad(
		Vertex{Position: types.XYZ(-1, -1, 0), UV: types.XY(0, 0)},
		Vertex{Position: types.XYZ(1, -1, 0), UV: types.XY(1, 0)},
		Vertex{Position: types.XYZ(1, 1, 0), UV: types.XY(1, 1)},
		Vertex{Position: types.XYZ(-1, 1, 0), UV: types.XY(0, 1)},
		0,
	)

	// One probe in each triangle half of the quad.
	for _, target := range []types.Vec3{types.XYZ(0.5, -0.5, 0), types.XYZ(-0.5, 0.5, 0)} {
		ray := types.NewRay(target.Add(types.XYZ(0, 0, 2)), types.XYZ(0, 0, -1))
		rec := resetRecord()
		if !quad.Intersect(&ray, &rec) {
			t.Fatalf("expected ray toward %v to hit", target)
		}
		if math32.Abs(rec.Distance-2) > 1e-5 {
			t.Fatalf("expected hit distance 2; got %f", rec.Distance)
		}
		if rec.Normal.Sub(quad.Normal).Len() > 1e-5 {
			t.Fatalf("expected the face normal; got %v", rec.Normal)
		}
	}

	miss := types.NewRay(types.XYZ(2, 2, 2), types.XYZ(0, 0, -1))
	rec := resetRecord()
	if quad.Intersect(&miss, &rec) {
		t.Fatal("expected ray outside the quad to miss")
	}
}

func TestPrimitiveBounds(t *testing.T) {
	sphere := Sphere{Radius: 2, Center: types.XYZ(1, 2, 3)}
	box := sphere.BBox()
	if box.Min != types.XYZ(-1, 0, 1) || box.Max != types.XYZ(3, 4, 5) {
		t.Fatalf("unexpected sphere bounds %v", box)
	}
	if sphere.Centroid() != sphere.Center {
		t.Fatal("expected sphere centroid at its center")
	}

	tri := NewTriangle(
		Vertex{Position: types.XYZ(-1, 0, 0)},
		Vertex{Position: types.XYZ(1, 0, 0)},
		Vertex{Position: types.XYZ(0, 3, 0)},
		0,
	)
	box = tri.BBox()
	if box.Min != types.XYZ(-1, 0, 0) || box.Max != types.XYZ(1, 3, 0) {
		t.Fatalf("unexpected triangle bounds %v", box)
	}
	if tri.Centroid() != types.XYZ(0, 1, 0) {
		t.Fatalf("unexpected triangle centroid %v", tri.Centroid())
	}
}
