package types

import "testing"

func TestEmptyBoxMergeIdentity(t *testing.T) {
	empty := NewBoundingBox()
	box := NewBoundingBoxFromCorners(XYZ(-1, -1, -1), XYZ(1, 1, 1))

	if got := Merge(empty, box); got != box {
		t.Fatalf("expected merge with empty box to be identity; got %v", got)
	}
	if got := Merge(box, empty); got != box {
		t.Fatalf("expected merge with empty box to be identity; got %v", got)
	}
}

func TestBoxMerge(t *testing.T) {
	b1 := NewBoundingBoxFromCorners(XYZ(0, 0, 0), XYZ(1, 1, 1))
	b2 := NewBoundingBoxFromCorners(XYZ(-1, 0.5, 0), XYZ(0.5, 2, 3))

	got := Merge(b1, b2)
	want := NewBoundingBoxFromCorners(XYZ(-1, 0, 0), XYZ(1, 2, 3))
	if got != want {
		t.Fatalf("expected merged box %v; got %v", want, got)
	}
}

func TestBoxContains(t *testing.T) {
	box := NewBoundingBoxFromCorners(XYZ(0, 0, 0), XYZ(2, 2, 2))

	if !box.Contains(XYZ(1, 1, 1)) {
		t.Fatal("expected interior point to be contained")
	}
	if !box.Contains(XYZ(0, 0, 0)) {
		t.Fatal("expected boundary point to be contained")
	}
	if box.Contains(XYZ(3, 1, 1)) {
		t.Fatal("expected exterior point to not be contained")
	}

	inner := NewBoundingBoxFromCorners(XYZ(0.5, 0.5, 0.5), XYZ(1.5, 1.5, 1.5))
	if !box.ContainsBox(inner) {
		t.Fatal("expected inner box to be contained")
	}
	outer := NewBoundingBoxFromCorners(XYZ(0.5, 0.5, 0.5), XYZ(3, 1, 1))
	if box.ContainsBox(outer) {
		t.Fatal("expected overlapping box to not be contained")
	}
}

func TestBoxLongestAxis(t *testing.T) {
	box := NewBoundingBoxFromCorners(XYZ(0, 0, 0), XYZ(1, 3, 2))
	if got := box.LongestAxis(); got != 1 {
		t.Fatalf("expected longest axis 1; got %d", got)
	}
}

func TestBoxSurfaceArea(t *testing.T) {
	box := NewBoundingBoxFromCorners(XYZ(0, 0, 0), XYZ(1, 2, 3))
	if got := box.SurfaceArea(); got != 22 {
		t.Fatalf("expected surface area 22; got %f", got)
	}
	if got := NewBoundingBox().SurfaceArea(); got != 0 {
		t.Fatalf("expected empty box area 0; got %f", got)
	}
}

func TestBoxSlabTest(t *testing.T) {
	box := NewBoundingBoxFromCorners(XYZ(-1, -1, -1), XYZ(1, 1, 1))

	ray := NewRay(XYZ(0, 0, -5), XYZ(0, 0, 1))
	tmin, tmax := box.IntersectRay(&ray)
	if tmin > tmax {
		t.Fatal("expected ray through the box center to intersect")
	}
	if tmin != 4 || tmax != 6 {
		t.Fatalf("expected interval [4, 6]; got [%f, %f]", tmin, tmax)
	}

	miss := NewRay(XYZ(0, 5, -5), XYZ(0, 0, 1))
	mn, mx := box.IntersectRay(&miss)
	if mn <= mx {
		t.Fatalf("expected offset ray to miss; got interval [%f, %f]", mn, mx)
	}

	// A negative-direction ray exercises the sign-indexed bounds.
	back := NewRay(XYZ(0, 0, 5), XYZ(0, 0, -1))
	mn, mx = box.IntersectRay(&back)
	if mn > mx || mn != 4 || mx != 6 {
		t.Fatalf("expected interval [4, 6] for reversed ray; got [%f, %f]", mn, mx)
	}
}
