package texture

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/shadercoder/Salty/types"
)

// Texture coordinate addressing mode for values outside [0, 1].
type AddressMode uint8

const (
	// Repeat the image by wrapping the coordinate modulo 1.
	AddressWrap AddressMode = iota

	// Saturate the coordinate to [0, 1], stretching the edge texels.
	AddressClamp

	// Out-of-range lookups return the sampler border color.
	AddressBorder
)

// Texel reconstruction filter.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Controls how a texture is addressed and filtered. A zero-value sampler
// wraps, uses nearest filtering and has a transparent black (0, 0, 0, 0)
// border; NewSampler sets an opaque black border.
type Sampler struct {
	Address     AddressMode
	Filter      FilterMode
	BorderColor types.Vec4
}

// Create a sampler with the default border color.
func NewSampler(address AddressMode, filter FilterMode) Sampler {
	return Sampler{
		Address:     address,
		Filter:      filter,
		BorderColor: types.XYZW(0, 0, 0, 1),
	}
}

// A 2D image and its metadata. Pixel data is a flat row-major float32
// array with Channels values per texel; immutable after creation.
type Texture2D struct {
	Width    uint32
	Height   uint32
	Channels uint32

	Pixels []float32
}

// Create a texture from pre-decoded pixel data. The core never parses
// image containers; loaders hand in linear float data.
func New(width, height, channels uint32, pixels []float32) (*Texture2D, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("texture: invalid dimensions %dx%d", width, height)
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return nil, fmt.Errorf("texture: unsupported channel count %d", channels)
	}
	if uint32(len(pixels)) != width*height*channels {
		return nil, fmt.Errorf("texture: pixel data length %d does not match %dx%dx%d", len(pixels), width, height, channels)
	}

	return &Texture2D{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   pixels,
	}, nil
}

// Fetch a filtered texel. Texture coordinates place (0,0) at the top-left
// corner; v is flipped before indexing the row-major pixel data.
func (tex *Texture2D) Sample(sampler Sampler, uv types.Vec2) types.Vec4 {
	if sampler.Filter == FilterNearest {
		return tex.nearestSample(sampler, uv)
	}
	return tex.bilinearSample(sampler, uv)
}

// Nearest-neighbor lookup.
func (tex *Texture2D) nearestSample(sampler Sampler, uv types.Vec2) types.Vec4 {
	u, v, border := resolveAddress(sampler, uv)
	if border {
		return sampler.BorderColor
	}

	x := int32(math32.Floor(u * float32(tex.Width)))
	y := int32(math32.Floor(v * float32(tex.Height)))
	return tex.texel(x, y)
}

// Four-tap bilinear lookup with fractional weights.
func (tex *Texture2D) bilinearSample(sampler Sampler, uv types.Vec2) types.Vec4 {
	u, v, border := resolveAddress(sampler, uv)
	if border {
		return sampler.BorderColor
	}

	fx := u*float32(tex.Width) - 0.5
	fy := v*float32(tex.Height) - 0.5

	x0 := int32(math32.Floor(fx))
	y0 := int32(math32.Floor(fy))
	wx := fx - float32(x0)
	wy := fy - float32(y0)

	c00 := tex.texel(x0, y0)
	c10 := tex.texel(x0+1, y0)
	c01 := tex.texel(x0, y0+1)
	c11 := tex.texel(x0+1, y0+1)

	top := c00.Mul(1 - wx).Add(c10.Mul(wx))
	bottom := c01.Mul(1 - wx).Add(c11.Mul(wx))
	return top.Mul(1 - wy).Add(bottom.Mul(wy))
}

// Apply the sampler addressing mode and flip v so the top edge (v = 0)
// reads the last stored row; row 0 holds the bottom of the image. The
// border flag is raised only for AddressBorder lookups
// that fall outside [0, 1].
func resolveAddress(sampler Sampler, uv types.Vec2) (u, v float32, border bool) {
	u, v = uv[0], uv[1]

	switch sampler.Address {
	case AddressWrap:
		u = u - math32.Floor(u)
		v = v - math32.Floor(v)
	case AddressClamp:
		u = types.Clamp(u, 0, 1)
		v = types.Clamp(v, 0, 1)
	case AddressBorder:
		if u < 0 || u > 1 || v < 0 || v > 1 {
			return 0, 0, true
		}
	}

	return u, 1 - v, false
}

// Fetch a raw texel, clamping the integer coordinates to the image so
// bilinear taps never walk off the edge. Missing channels widen to
// (lum, lum, lum, 1) and (r, g, b, 1).
func (tex *Texture2D) texel(x, y int32) types.Vec4 {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= int32(tex.Width) {
		x = int32(tex.Width) - 1
	}
	if y >= int32(tex.Height) {
		y = int32(tex.Height) - 1
	}

	offset := (uint32(y)*tex.Width + uint32(x)) * tex.Channels
	switch tex.Channels {
	case 1:
		lum := tex.Pixels[offset]
		return types.XYZW(lum, lum, lum, 1)
	case 3:
		return types.XYZW(tex.Pixels[offset], tex.Pixels[offset+1], tex.Pixels[offset+2], 1)
	default:
		return types.XYZW(tex.Pixels[offset], tex.Pixels[offset+1], tex.Pixels[offset+2], tex.Pixels[offset+3])
	}
}
