package tracer

import (
	"errors"

	"github.com/shadercoder/Salty/types"
)

var ErrTargetAllocation = errors.New("tracer: render target dimensions exceed the allocation limit")

// Upper bound on target pixels. Guards against dimension typos
// allocating tens of gigabytes.
const maxTargetPixels = 1 << 28

// The shared accumulation buffer workers resolve their tiles into. Each
// pixel holds summed radiance plus the sample count that produced it;
// the resolved value is the mean.
//
// Writes are tile-exclusive: every pixel belongs to exactly one tile and
// every tile to exactly one worker, so no locking is needed. Snapshot
// readers see an eventually-consistent view which may miss in-flight
// tiles; that is acceptable for preview output.
type RenderTarget struct {
	Width  uint32
	Height uint32

	accum   []types.Vec3
	samples []uint32
}

// Create a render target.
func NewRenderTarget(width, height uint32) (*RenderTarget, error) {
	if width == 0 || height == 0 || uint64(width)*uint64(height) > maxTargetPixels {
		return nil, ErrTargetAllocation
	}

	return &RenderTarget{
		Width:   width,
		Height:  height,
		accum:   make([]types.Vec3, width*height),
		samples: make([]uint32, width*height),
	}, nil
}

// Merge a completed tile accumulation into the target. The tile buffers
// are indexed row-major relative to the tile origin.
func (rt *RenderTarget) MergeTile(tile Tile, accum []types.Vec3, samples []uint32) {
	tileW := tile.X1 - tile.X0
	for y := tile.Y0; y < tile.Y1; y++ {
		rowOffset := y*rt.Width + tile.X0
		tileOffset := (y - tile.Y0) * tileW
		for x := uint32(0); x < tileW; x++ {
			rt.accum[rowOffset+x] = rt.accum[rowOffset+x].Add(accum[tileOffset+x])
			rt.samples[rowOffset+x] += samples[tileOffset+x]
		}
	}
}

// Resolve the accumulated radiance into a linear RGB float buffer, three
// components per pixel, row 0 at the top of the image. Unsampled pixels
// resolve to black. The read takes no locks; torn values from in-flight
// tiles are tolerated by design.
func (rt *RenderTarget) Resolve() []float32 {
	out := make([]float32, rt.Width*rt.Height*3)
	for y := uint32(0); y < rt.Height; y++ {
		// The camera maps y up; image rows run top to bottom.
		srcRow := (rt.Height - 1 - y) * rt.Width
		dstRow := y * rt.Width * 3
		for x := uint32(0); x < rt.Width; x++ {
			n := rt.samples[srcRow+x]
			if n == 0 {
				continue
			}
			c := rt.accum[srcRow+x].Mul(1.0 / float32(n))
			out[dstRow+x*3] = c[0]
			out[dstRow+x*3+1] = c[1]
			out[dstRow+x*3+2] = c[2]
		}
	}
	return out
}

// Get the resolved radiance for one pixel in buffer coordinates.
func (rt *RenderTarget) Pixel(x, y uint32) types.Vec3 {
	idx := y*rt.Width + x
	n := rt.samples[idx]
	if n == 0 {
		return types.Vec3{}
	}
	return rt.accum[idx].Mul(1.0 / float32(n))
}
