package tracer

import (
	"errors"
	"testing"

	"github.com/shadercoder/Salty/types"
)

func TestTargetAllocationGuard(t *testing.T) {
	if _, err := NewRenderTarget(0, 10); !errors.Is(err, ErrTargetAllocation) {
		t.Fatalf("expected zero width to be rejected; got %v", err)
	}
	if _, err := NewRenderTarget(1<<16, 1<<16); !errors.Is(err, ErrTargetAllocation) {
		t.Fatalf("expected oversized target to be rejected; got %v", err)
	}
}

func TestTargetMergeAndResolve(t *testing.T) {
	rt, err := NewRenderTarget(2, 2)
	if err != nil {
		t.Fatalf("could not create target: %s", err)
	}

	tile := Tile{X0: 0, Y0: 0, X1: 2, Y1: 2}
	accum := []types.Vec3{
		types.XYZ(2, 0, 0), {}, // buffer row 0
		{}, types.XYZ(0, 4, 0), // buffer row 1
	}
	samples := []uint32{2, 0, 0, 4}
	rt.MergeTile(tile, accum, samples)

	if got := rt.Pixel(0, 0); got != types.XYZ(1, 0, 0) {
		t.Fatalf("expected resolved pixel (1, 0, 0); got %v", got)
	}
	if got := rt.Pixel(1, 1); got != types.XYZ(0, 1, 0) {
		t.Fatalf("expected resolved pixel (0, 1, 0); got %v", got)
	}
	if got := rt.Pixel(1, 0); got != (types.Vec3{}) {
		t.Fatalf("expected unsampled pixel to resolve black; got %v", got)
	}

	// Resolve flips rows: buffer row 0 lands at the bottom of the
	// output image.
	pixels := rt.Resolve()
	if len(pixels) != 2*2*3 {
		t.Fatalf("expected 12 components; got %d", len(pixels))
	}
	bottomLeft := pixels[1*2*3:]
	if bottomLeft[0] != 1 || bottomLeft[1] != 0 {
		t.Fatalf("expected buffer pixel (0, 0) at the output bottom-left; got %v", bottomLeft[:3])
	}
	topRight := pixels[3:6]
	if topRight[1] != 1 {
		t.Fatalf("expected buffer pixel (1, 1) at the output top-right; got %v", topRight)
	}
}

func TestTargetAccumulatesAcrossMerges(t *testing.T) {
	rt, err := NewRenderTarget(1, 1)
	if err != nil {
		t.Fatalf("could not create target: %s", err)
	}

	tile := Tile{X0: 0, Y0: 0, X1: 1, Y1: 1}
	rt.MergeTile(tile, []types.Vec3{types.XYZ(1, 1, 1)}, []uint32{1})
	rt.MergeTile(tile, []types.Vec3{types.XYZ(3, 3, 3)}, []uint32{1})

	if got := rt.Pixel(0, 0); got != types.XYZ(2, 2, 2) {
		t.Fatalf("expected mean (2, 2, 2) after two merges; got %v", got)
	}
}
