package scene

import (
	"github.com/chewxy/math32"
	"github.com/shadercoder/Salty/texture"
	"github.com/shadercoder/Salty/types"
)

type MaterialType uint8

const (
	// Lambert diffuse.
	MatteMaterial MaterialType = iota

	// Oren-Nayar rough diffuse.
	ClayMaterial

	// Perfect specular reflection.
	MirrorMaterial

	// Specular refraction with Fresnel-weighted branch selection.
	DielectricMaterial

	// Phong lobe importance sampling.
	GlossyMaterial
)

// Defines a scene material. Materials are immutable after scene load;
// emissive components must be non-negative and reflectance components
// must lie in [0, 1].
type Material struct {
	// The type of the material.
	Type MaterialType

	// Base reflectance color.
	Reflectance types.Vec3

	// Emissive color (if material is a light).
	Emissive types.Vec3

	// Optional reflectance modulation texture.
	Texture *texture.Texture2D
	Sampler texture.Sampler

	// Oren-Nayar roughness sigma (clay materials only).
	Roughness float32

	// Index of refraction (dielectric materials only).
	IOR float32

	// Phong exponent (glossy materials only).
	SpecularPower float32
}

// The inputs a material needs to scatter a path: the direction that
// arrived at the surface (pointing eye to surface), the geometric
// normal, the hit texture coordinates and the per-worker random stream.
type ScatterArg struct {
	Input  types.Vec3
	Normal types.Vec3
	UV     types.Vec2
	Rand   Random
}

// A uniform random stream in [0, 1). Workers each own one; materials
// never share state through it.
type Random interface {
	Next() float32
}

// Get the radiance emitted at the given texture coordinates. Emission is
// modulated by the reflectance texture so textured area lights work the
// same way as textured reflectors.
func (m *Material) Emission(uv types.Vec2) types.Vec3 {
	if m.Emissive[0] == 0 && m.Emissive[1] == 0 && m.Emissive[2] == 0 {
		return types.Vec3{}
	}
	return m.Emissive.MulVec(m.TextureColor(uv))
}

// Check whether scattering is a Dirac distribution.
func (m *Material) HasDelta() bool {
	return m.Type == MirrorMaterial || m.Type == DielectricMaterial
}

// Get the textured base reflectance at the given coordinates.
func (m *Material) TextureColor(uv types.Vec2) types.Vec3 {
	if m.Texture == nil {
		return types.XYZ(1, 1, 1)
	}
	return m.Texture.Sample(m.Sampler, uv).Vec3()
}

// Importance-sample an outgoing direction. Returns the direction, the
// throughput weight for the sampled branch, and whether the scattering
// event was a delta distribution. The Russian-roulette division is the
// integrator's job and is not included in the weight.
func (m *Material) Sample(arg *ScatterArg) (out types.Vec3, weight types.Vec3, delta bool) {
	// Face-forward shading normal.
	shadingNormal := arg.Normal
	if arg.Normal.Dot(arg.Input) >= 0 {
		shadingNormal = arg.Normal.Neg()
	}

	switch m.Type {
	case MirrorMaterial:
		return m.sampleMirror(arg, shadingNormal)
	case DielectricMaterial:
		return m.sampleDielectric(arg, shadingNormal)
	case GlossyMaterial:
		return m.sampleGlossy(arg, shadingNormal)
	case ClayMaterial:
		return m.sampleClay(arg, shadingNormal)
	default:
		return m.sampleMatte(arg, shadingNormal)
	}
}

// Cosine-weighted hemisphere sample around the shading normal.
func cosineSampleHemisphere(rand Random, shadingNormal types.Vec3) types.Vec3 {
	onb := types.NewOrthonormalBasis(shadingNormal)

	phi := 2 * math32.Pi * rand.Next()
	r2 := rand.Next()
	r := math32.Sqrt(r2)

	return onb.Local(r*math32.Cos(phi), r*math32.Sin(phi), types.SafeSqrt(1-r2)).Normalize()
}

// Lambert: cosine importance sampling cancels the cosine term and the
// 1/pi BRDF factor, leaving the textured reflectance as the weight.
func (m *Material) sampleMatte(arg *ScatterArg, shadingNormal types.Vec3) (types.Vec3, types.Vec3, bool) {
	out := cosineSampleHemisphere(arg.Rand, shadingNormal)
	weight := m.Reflectance.MulVec(m.TextureColor(arg.UV))
	return out, weight, false
}

// Oren-Nayar: cosine sampling as for matte with the qualitative A + B
// roughness correction applied to the weight.
func (m *Material) sampleClay(arg *ScatterArg, shadingNormal types.Vec3) (types.Vec3, types.Vec3, bool) {
	out := cosineSampleHemisphere(arg.Rand, shadingNormal)

	s2 := m.Roughness * m.Roughness
	a := 1.0 - 0.5*(s2/(s2+0.33))
	b := 0.45 * (s2 / (s2 + 0.09))

	// Both directions point away from the surface for the angle terms.
	toEye := arg.Input.Neg()
	cosThetaI := types.Clamp(shadingNormal.Dot(toEye), -1, 1)
	cosThetaO := types.Clamp(shadingNormal.Dot(out), -1, 1)
	thetaI := types.SafeAcos(cosThetaI)
	thetaO := types.SafeAcos(cosThetaO)

	alpha := math32.Max(thetaI, thetaO)
	beta := math32.Min(thetaI, thetaO)

	// Azimuth between the tangent-plane projections of the two
	// directions.
	projI := toEye.Sub(shadingNormal.Mul(cosThetaI)).Normalize()
	projO := out.Sub(shadingNormal.Mul(cosThetaO)).Normalize()
	cosPhi := math32.Max(projI.Dot(projO), 0)

	f := a + b*cosPhi*math32.Sin(alpha)*math32.Tan(beta)

	weight := m.Reflectance.MulVec(m.TextureColor(arg.UV)).Mul(f)
	return out, weight, false
}

// Perfect mirror: the outgoing direction is deterministic.
func (m *Material) sampleMirror(arg *ScatterArg, shadingNormal types.Vec3) (types.Vec3, types.Vec3, bool) {
	out := arg.Input.Reflect(shadingNormal).Normalize()
	weight := m.Reflectance.MulVec(m.TextureColor(arg.UV))
	return out, weight, true
}

// Dielectric refraction following Snell's law with Schlick's Fresnel
// approximation. One branch is chosen per event with probability
// P = 0.25 + 0.5*R, weighting each branch so the estimator stays
// unbiased.
func (m *Material) sampleDielectric(arg *ScatterArg, shadingNormal types.Vec3) (types.Vec3, types.Vec3, bool) {
	baseColor := m.Reflectance.MulVec(m.TextureColor(arg.UV))

	reflect := arg.Input.Reflect(shadingNormal).Normalize()

	// Entering when the geometric normal still faces the ray side.
	entering := arg.Normal.Dot(shadingNormal) > 0

	const etaOutside = 1.0
	etaInside := m.IOR

	ratio := etaInside / etaOutside
	if entering {
		ratio = etaOutside / etaInside
	}

	ddn := arg.Input.Dot(shadingNormal)
	cos2t := 1.0 - ratio*ratio*(1.0-ddn*ddn)

	// Total internal reflection carries the full weight.
	if cos2t < 0 {
		return reflect, baseColor, true
	}

	sign := float32(-1.0)
	if entering {
		sign = 1.0
	}
	refract := arg.Input.Mul(ratio).
		Sub(arg.Normal.Mul(sign * (ddn*ratio + math32.Sqrt(cos2t)))).
		Normalize()

	// Schlick's approximation of the Fresnel reflectance.
	r0 := (etaInside - etaOutside) / (etaInside + etaOutside)
	r0 *= r0

	var c float32
	if entering {
		c = 1.0 + ddn
	} else {
		c = 1.0 - refract.Dot(arg.Normal)
	}
	re := r0 + (1.0-r0)*c*c*c*c*c
	tr := 1.0 - re

	p := 0.25 + 0.5*re
	if arg.Rand.Next() < p {
		return reflect, baseColor.Mul(re / p), true
	}
	return refract, baseColor.Mul(tr / (1.0 - p)), true
}

// Phong: importance-sample the power-cosine lobe around the mirror
// direction. The normalization by the max specular component matches the
// roulette threshold so lobe and termination stay consistent.
func (m *Material) sampleGlossy(arg *ScatterArg, shadingNormal types.Vec3) (types.Vec3, types.Vec3, bool) {
	specular := m.Reflectance.MulVec(m.TextureColor(arg.UV))

	phi := 2 * math32.Pi * arg.Rand.Next()
	cosTheta := math32.Pow(1.0-arg.Rand.Next(), 1.0/(m.SpecularPower+1.0))
	sinTheta := types.SafeSqrt(1.0 - cosTheta*cosTheta)

	mirror := arg.Input.Reflect(shadingNormal).Normalize()
	onb := types.NewOrthonormalBasis(mirror)
	out := onb.Local(math32.Cos(phi)*sinTheta, math32.Sin(phi)*sinTheta, cosTheta).Normalize()

	threshold := math32.Max(specular.MaxComponent(), 1e-6)
	weight := specular.Mul(out.Dot(shadingNormal) / threshold)
	return out, weight, false
}
