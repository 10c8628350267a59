package tracer

import (
	"testing"

	"github.com/shadercoder/Salty/types"
)

func TestIntegratorSingleTriangleScene(t *testing.T) {
	sc := compileBuiltin(t, "triangle", 32, 32)
	integrator := NewIntegrator(sc, 8)
	rng := NewRandom(11)

	// Sweep the screen; every estimate must be finite whether the ray
	// hits the triangle or escapes to the black environment.
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			ray := sc.Camera.PrimaryRay((float32(x)+0.5)/32, (float32(y)+0.5)/32)
			radiance := integrator.Radiance(ray, rng)
			if !radiance.IsFinite() {
				t.Fatalf("pixel (%d, %d): non-finite radiance %v", x, y, radiance)
			}
		}
	}
}

func TestIntegratorMissReturnsEnvironment(t *testing.T) {
	sc := compileBuiltin(t, "triangle", 32, 32)
	integrator := NewIntegrator(sc, 8)
	rng := NewRandom(3)

	// A ray pointed away from the scene sees the black environment.
	ray := types.NewRay(types.XYZ(0, 0.5, 2), types.XYZ(0, 0, 1))
	if got := integrator.Radiance(ray, rng); got != (types.Vec3{}) {
		t.Fatalf("expected black environment on miss; got %v", got)
	}
}

func TestIntegratorSeesEmission(t *testing.T) {
	sc := compileBuiltin(t, "cornell", 64, 64)
	integrator := NewIntegrator(sc, 4)
	rng := NewRandom(17)

	// A ray fired straight at the ceiling light reads its radiance in
	// the first loop iteration.
	ray := types.NewRay(types.XYZ(50, 50, 80), types.XYZ(0, 1, 0))
	radiance := integrator.Radiance(ray, rng)

	if radiance[0] < 36 || radiance[1] < 36 || radiance[2] < 36 {
		t.Fatalf("expected at least the light emission; got %v", radiance)
	}
	if !radiance.IsFinite() {
		t.Fatalf("expected finite radiance; got %v", radiance)
	}
}

func TestIntegratorDielectricStaysFinite(t *testing.T) {
	sc := compileBuiltin(t, "salty", 64, 64)
	integrator := NewIntegrator(sc, 16)
	rng := NewRandom(29)

	// Fire a bundle through the crystal sphere at (77, 16.5, 78);
	// refraction, internal bounces and grazing exits must all produce
	// finite estimates.
	for i := 0; i < 2000; i++ {
		jitter := types.XYZ(rng.Next()*30-15, rng.Next()*30-15, 0)
		target := types.XYZ(77, 16.5, 78).Add(jitter)
		origin := types.XYZ(50, 52, 220)
		ray := types.NewRay(origin, target.Sub(origin).Normalize())

		radiance := integrator.Radiance(ray, rng)
		if !radiance.IsFinite() {
			t.Fatalf("ray %d: non-finite radiance %v", i, radiance)
		}
	}
}

func TestIntegratorDeterministic(t *testing.T) {
	sc := compileBuiltin(t, "cornell", 32, 32)
	integrator := NewIntegrator(sc, 8)

	ray := sc.Camera.PrimaryRay(0.4, 0.6)

	r1 := integrator.Radiance(ray, NewRandom(100))
	r2 := integrator.Radiance(ray, NewRandom(100))
	if r1 != r2 {
		t.Fatalf("expected identical estimates for identical streams; got %v and %v", r1, r2)
	}
}

func TestIntegratorBounceBudget(t *testing.T) {
	sc := compileBuiltin(t, "cornell", 32, 32)

	// A one-bounce integrator sees only direct emission.
	direct := NewIntegrator(sc, 1)
	ray := types.NewRay(types.XYZ(50, 50, 80), types.XYZ(0, 0, -1))

	radiance := direct.Radiance(ray, NewRandom(5))
	if !radiance.IsFinite() {
		t.Fatalf("expected finite radiance; got %v", radiance)
	}
	// The back wall does not emit, so the single-bounce estimate is
	// black.
	if radiance != (types.Vec3{}) {
		t.Fatalf("expected black single-bounce estimate off the back wall; got %v", radiance)
	}
}
