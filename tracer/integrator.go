package tracer

import (
	"github.com/shadercoder/Salty/scene"
	"github.com/shadercoder/Salty/types"
)

const (
	// Default bounce budget.
	DefaultMaxBounce = 16

	// Russian-roulette probability bounds. The lower bound keeps the
	// throughput division away from zero.
	minRouletteProb float32 = 1e-4
	maxRouletteProb float32 = 0.99
)

// Estimates the radiance arriving along primary rays by iteratively
// extending a path through the scene. Integrators are cheap value-like
// objects; every worker holds its own.
type Integrator struct {
	sc        *scene.Scene
	maxBounce int
}

// Create an integrator over a compiled scene.
func NewIntegrator(sc *scene.Scene, maxBounce int) Integrator {
	if maxBounce <= 0 {
		maxBounce = DefaultMaxBounce
	}
	return Integrator{sc: sc, maxBounce: maxBounce}
}

// Estimate the radiance arriving at the origin of a primary ray.
//
// The rendering equation expands into a sum of emission terms weighted
// by the running product of path weights, so the loop accumulates
//
//	L += W * Le;  W *= Wr / p
//
// per bounce, with Russian roulette supplying the unbiased termination
// probability p. The returned estimate is always finite; a path that
// produces a non-finite throughput is cut short.
func (it Integrator) Radiance(ray types.Ray, rng *Random) types.Vec3 {
	weight := types.XYZ(1, 1, 1)
	radiance := types.Vec3{}

	var rec scene.HitRecord
	var arg scene.ScatterArg
	arg.Rand = rng

	for depth := 0; depth < it.maxBounce; depth++ {
		if !it.sc.Intersect(&ray, &rec) {
			radiance = radiance.Add(weight.MulVec(it.sc.EnvironmentColor(ray.Dir)))
			break
		}

		material := it.sc.Material(&rec)
		radiance = radiance.Add(weight.MulVec(material.Emission(rec.UV)))

		// Roulette on the textured reflectance so bright surfaces
		// keep their paths alive longer.
		prob := types.Clamp(
			material.Reflectance.MulVec(material.TextureColor(rec.UV)).MaxComponent(),
			minRouletteProb, maxRouletteProb,
		)

		// Past half the bounce budget the survival probability decays
		// so paths terminate even in highly reflective scenes.
		if half := it.maxBounce / 2; depth >= half {
			for i := half; i < depth; i++ {
				prob *= 0.5
			}
			prob = types.Clamp(prob, minRouletteProb, maxRouletteProb)
		}

		if rng.Next() >= prob {
			break
		}

		arg.Input = ray.Dir
		arg.Normal = rec.Normal
		arg.UV = rec.UV
		out, sampleWeight, _ := material.Sample(&arg)

		weight = weight.MulVec(sampleWeight.Mul(1.0 / prob))
		if !weight.HasEnergy() || !weight.IsFinite() {
			break
		}

		// Offset the continuation origin off the surface on whichever
		// side the sampled direction leaves through.
		shadingNormal := rec.Normal
		if rec.Normal.Dot(ray.Dir) >= 0 {
			shadingNormal = rec.Normal.Neg()
		}
		offset := types.HitEpsilon
		if out.Dot(shadingNormal) < 0 {
			offset = -types.HitEpsilon
		}

		ray = types.NewRay(rec.Position.Add(shadingNormal.Mul(offset)), out)
	}

	return radiance
}
