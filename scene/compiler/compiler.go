package compiler

import (
	"errors"
	"fmt"
	"time"

	"github.com/shadercoder/Salty/log"
	"github.com/shadercoder/Salty/scene"
)

var (
	ErrNoParsedScene = errors.New("compiler: no parsed scene supplied")
	ErrEmptyScene    = errors.New("compiler: scene contains no primitives")
	ErrNoCamera      = errors.New("compiler: scene defines no camera")
)

type sceneCompiler struct {
	logger log.Logger

	parsed    *scene.ParsedScene
	optimized *scene.Scene
}

// Compile a parsed scene into an optimized scene: validate the import
// contract, pack primitives into per-kind arenas and build the BVH over
// them.
func Compile(parsed *scene.ParsedScene) (*scene.Scene, error) {
	c := &sceneCompiler{
		logger: log.New("compiler"),
		parsed: parsed,
	}

	start := time.Now()
	if err := c.validate(); err != nil {
		return nil, err
	}

	c.packArenas()
	c.buildAccelerator()

	c.logger.Infof(
		"compiled scene in %d ms (%d primitives, %d bvh nodes)",
		time.Since(start).Nanoseconds()/1e6,
		c.optimized.PrimitiveCount(), len(c.optimized.BvhNodes),
	)
	return c.optimized, nil
}

// Validate the parsed scene against the import contract.
func (c *sceneCompiler) validate() error {
	if c.parsed == nil {
		return ErrNoParsedScene
	}
	if len(c.parsed.Primitives) == 0 {
		return ErrEmptyScene
	}
	if c.parsed.Camera == nil {
		return ErrNoCamera
	}

	for i, prim := range c.parsed.Primitives {
		if prim.MaterialIndex >= uint32(len(c.parsed.Materials)) {
			return fmt.Errorf("compiler: primitive %d references undefined material %d", i, prim.MaterialIndex)
		}
	}

	for i, mat := range c.parsed.Materials {
		for axis := 0; axis < 3; axis++ {
			if mat.Reflectance[axis] < 0 || mat.Reflectance[axis] > 1 {
				return fmt.Errorf("compiler: material %d reflectance component %d outside [0, 1]", i, axis)
			}
			if mat.Emissive[axis] < 0 {
				return fmt.Errorf("compiler: material %d has negative emissive component %d", i, axis)
			}
		}
		if mat.Type == scene.DielectricMaterial && mat.IOR <= 0 {
			return fmt.Errorf("compiler: dielectric material %d has non-positive index of refraction", i)
		}
	}

	return nil
}

// Pack parsed primitives and materials into the optimized scene arenas.
func (c *sceneCompiler) packArenas() {
	out := &scene.Scene{
		Materials:          make([]scene.Material, len(c.parsed.Materials)),
		Environment:        c.parsed.Environment,
		EnvironmentSampler: c.parsed.EnvironmentSampler,
		Camera:             c.parsed.Camera,
	}

	for i, mat := range c.parsed.Materials {
		out.Materials[i] = scene.Material{
			Type:          mat.Type,
			Reflectance:   mat.Reflectance,
			Emissive:      mat.Emissive,
			Texture:       mat.Texture,
			Sampler:       mat.Sampler,
			Roughness:     mat.Roughness,
			IOR:           mat.IOR,
			SpecularPower: mat.SpecularPower,
		}
	}

	for _, prim := range c.parsed.Primitives {
		switch prim.Kind {
		case scene.SpherePrimitive:
			out.Spheres = append(out.Spheres, scene.Sphere{
				Radius:        prim.Radius,
				Center:        prim.Center,
				MaterialIndex: prim.MaterialIndex,
			})
		case scene.TrianglePrimitive:
			out.Triangles = append(out.Triangles, scene.NewTriangle(
				prim.Vertices[0], prim.Vertices[1], prim.Vertices[2],
				prim.MaterialIndex,
			))
		case scene.QuadPrimitive:
			out.Quads = append(out.Quads, scene.NewQuad(
				prim.Vertices[0], prim.Vertices[1], prim.Vertices[2], prim.Vertices[3],
				prim.MaterialIndex,
			))
		}
	}

	c.optimized = out
}

// Build the BVH over the packed primitive arenas.
func (c *sceneCompiler) buildAccelerator() {
	items := make([]buildItem, 0, c.optimized.PrimitiveCount())
	for i := range c.optimized.Spheres {
		prim := &c.optimized.Spheres[i]
		items = append(items, buildItem{
			ref:      scene.PrimitiveRef{Kind: scene.SpherePrimitive, Index: uint32(i)},
			box:      prim.BBox(),
			centroid: prim.Centroid(),
		})
	}
	for i := range c.optimized.Triangles {
		prim := &c.optimized.Triangles[i]
		items = append(items, buildItem{
			ref:      scene.PrimitiveRef{Kind: scene.TrianglePrimitive, Index: uint32(i)},
			box:      prim.BBox(),
			centroid: prim.Centroid(),
		})
	}
	for i := range c.optimized.Quads {
		prim := &c.optimized.Quads[i]
		items = append(items, buildItem{
			ref:      scene.PrimitiveRef{Kind: scene.QuadPrimitive, Index: uint32(i)},
			box:      prim.BBox(),
			centroid: prim.Centroid(),
		})
	}

	c.optimized.BvhNodes, c.optimized.PrimitiveRefs = buildBvh(items, c.logger)
}
