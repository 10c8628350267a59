package types

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestRayPrecomputation(t *testing.T) {
	ray := NewRay(XYZ(1, 2, 3), XYZ(0.5, -0.25, 0))

	if ray.InvDir[0] != 2 {
		t.Fatalf("expected inverse x 2; got %f", ray.InvDir[0])
	}
	if ray.InvDir[1] != -4 {
		t.Fatalf("expected inverse y -4; got %f", ray.InvDir[1])
	}
	if !math32.IsInf(ray.InvDir[2], 1) {
		t.Fatalf("expected +Inf sentinel for zero z component; got %f", ray.InvDir[2])
	}

	if ray.Sign != [3]uint8{0, 1, 0} {
		t.Fatalf("expected sign bits (0, 1, 0); got %v", ray.Sign)
	}
}

func TestRayAt(t *testing.T) {
	ray := NewRay(XYZ(0, 0, 0), XYZ(0, 0, 1))
	if got := ray.At(3); got != XYZ(0, 0, 3) {
		t.Fatalf("expected (0, 0, 3); got %v", got)
	}
}
