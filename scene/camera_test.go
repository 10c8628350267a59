package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/shadercoder/Salty/types"
)

func TestCameraCenterRay(t *testing.T) {
	cam := NewCamera(
		types.XYZ(0, 0, 5),
		types.XYZ(0, 0, 0),
		types.XYZ(0, 1, 0),
		640, 480,
		math32.Pi/4,
		1.0,
	)

	ray := cam.PrimaryRay(0.5, 0.5)
	if ray.Origin != cam.Position {
		t.Fatalf("expected ray origin at the camera; got %v", ray.Origin)
	}

	want := types.XYZ(0, 0, -1)
	if ray.Dir.Sub(want).Len() > 1e-5 {
		t.Fatalf("expected center ray along the view direction %v; got %v", want, ray.Dir)
	}
}

func TestCameraRaysAreUnit(t *testing.T) {
	cam := NewCamera(
		types.XYZ(50, 52, 220),
		types.XYZ(50, 50, 180),
		types.XYZ(0, 1, 0),
		1280, 720,
		math32.Pi/4,
		1.0,
	)

	coords := []types.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}, {0.25, 0.75}}
	for _, c := range coords {
		ray := cam.PrimaryRay(c[0], c[1])
		if math32.Abs(ray.Dir.Len()-1) > 1e-5 {
			t.Fatalf("expected unit direction at %v; got length %f", c, ray.Dir.Len())
		}
	}
}

func TestCameraScreenOrientation(t *testing.T) {
	cam := NewCamera(
		types.XYZ(0, 0, 5),
		types.XYZ(0, 0, 0),
		types.XYZ(0, 1, 0),
		640, 480,
		math32.Pi/4,
		1.0,
	)

	// Larger x moves the ray toward screen right; larger y toward
	// screen up.
	right := cam.PrimaryRay(1, 0.5)
	left := cam.PrimaryRay(0, 0.5)
	if right.Dir[0] <= left.Dir[0] {
		t.Fatalf("expected x to increase toward screen right; got %f and %f", left.Dir[0], right.Dir[0])
	}

	top := cam.PrimaryRay(0.5, 1)
	bottom := cam.PrimaryRay(0.5, 0)
	if top.Dir[1] <= bottom.Dir[1] {
		t.Fatalf("expected y to increase toward screen up; got %f and %f", bottom.Dir[1], top.Dir[1])
	}
}
