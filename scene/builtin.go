package scene

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/shadercoder/Salty/types"
)

// Builtin demo scenes, keyed by the name accepted on the command line.
var builtinScenes = map[string]func(width, height uint32) *ParsedScene{
	"cornell":  NewCornellScene,
	"salty":    NewSaltyScene,
	"triangle": NewTriangleScene,
}

// Look up a builtin scene by name.
func Builtin(name string, width, height uint32) (*ParsedScene, error) {
	ctor, exists := builtinScenes[name]
	if !exists {
		return nil, fmt.Errorf("scene: unknown builtin scene %q", name)
	}
	return ctor(width, height), nil
}

// List the builtin scene names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// The default demo camera: eye just inside the open end of the box,
// looking down the long axis.
func demoCamera(width, height uint32) *Camera {
	return NewCamera(
		types.XYZ(50, 52, 220),
		types.XYZ(50, 50, 180),
		types.XYZ(0, 1, 0),
		width, height,
		math32.Pi/4,
		1.0,
	)
}

// Append the five walls of the 100 x 100 x 250 demo box. The front wall
// sits behind the camera and closes the box; the floor uses its own
// material index so a tiled texture can be swapped in.
func appendBoxWalls(prims []ParsedPrimitive, wallMat, floorMat uint32) []ParsedPrimitive {
	wallUV := [4]types.Vec2{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	floorUV := [4]types.Vec2{{0, 0}, {0, 3}, {3, 3}, {3, 0}}

	quad := func(p0, p1, p2, p3 types.Vec3, uv [4]types.Vec2, mat uint32) ParsedPrimitive {
		return NewParsedQuad(
			Vertex{Position: p0, UV: uv[0]},
			Vertex{Position: p1, UV: uv[1]},
			Vertex{Position: p2, UV: uv[2]},
			Vertex{Position: p3, UV: uv[3]},
			mat,
		)
	}

	return append(prims,
		// Left.
		quad(types.XYZ(0, 0, 250), types.XYZ(0, 100, 250), types.XYZ(0, 100, 0), types.XYZ(0, 0, 0), wallUV, wallMat),
		// Back.
		quad(types.XYZ(0, 0, 0), types.XYZ(0, 100, 0), types.XYZ(100, 100, 0), types.XYZ(100, 0, 0), wallUV, wallMat),
		// Front.
		quad(types.XYZ(100, 0, 250), types.XYZ(100, 100, 250), types.XYZ(0, 100, 250), types.XYZ(0, 0, 250), wallUV, wallMat),
		// Right.
		quad(types.XYZ(100, 0, 0), types.XYZ(100, 100, 0), types.XYZ(100, 100, 250), types.XYZ(100, 0, 250), wallUV, wallMat),
		// Ceiling.
		quad(types.XYZ(100, 100, 250), types.XYZ(100, 100, 0), types.XYZ(0, 100, 0), types.XYZ(0, 100, 250), wallUV, wallMat),
		// Floor.
		quad(types.XYZ(0, 0, 250), types.XYZ(0, 0, 0), types.XYZ(100, 0, 0), types.XYZ(100, 0, 250), floorUV, floorMat),
	)
}

// The ceiling light: a matte emissive quad just below the ceiling plane.
func ceilingLight(lightMat uint32) ParsedPrimitive {
	return NewParsedQuad(
		Vertex{Position: types.XYZ(70, 99.9, 110)},
		Vertex{Position: types.XYZ(70, 99.9, 50)},
		Vertex{Position: types.XYZ(30, 99.9, 50)},
		Vertex{Position: types.XYZ(30, 99.9, 110)},
		lightMat,
	)
}

// A closed box with five matte walls and a matte emissive ceiling quad.
// The classic smoke-test scene for diffuse transport.
func NewCornellScene(width, height uint32) *ParsedScene {
	materials := []ParsedMaterial{
		{Type: MatteMaterial, Reflectance: types.XYZ(0.75, 0.75, 0.75)},
		{Type: MatteMaterial, Emissive: types.XYZ(36, 36, 36)},
	}

	var prims []ParsedPrimitive
	prims = appendBoxWalls(prims, 0, 0)
	prims = append(prims, ceilingLight(1))

	return &ParsedScene{
		Primitives: prims,
		Materials:  materials,
		Camera:     demoCamera(width, height),
	}
}

// The full demo scene: the box with a mirror sphere, a crystal sphere, a
// clay sphere and a glossy triangle, lit by the ceiling quad.
func NewSaltyScene(width, height uint32) *ParsedScene {
	materials := []ParsedMaterial{
		// 0: white walls.
		{Type: MatteMaterial, Reflectance: types.XYZ(0.75, 0.75, 0.75)},
		// 1: floor.
		{Type: MatteMaterial, Reflectance: types.XYZ(0.75, 0.75, 0.75)},
		// 2: ceiling light.
		{Type: MatteMaterial, Emissive: types.XYZ(36, 36, 36)},
		// 3: blue mirror.
		{Type: MirrorMaterial, Reflectance: types.XYZ(0.25, 0.25, 0.75)},
		// 4: crystal.
		{Type: DielectricMaterial, Reflectance: types.XYZ(0.75, 0.25, 0.25), IOR: 1.54},
		// 5: clay.
		{Type: ClayMaterial, Reflectance: types.XYZ(0.25, 0.75, 0.25), Roughness: 0.85},
		// 6: yellow glossy.
		{Type: GlossyMaterial, Reflectance: types.XYZ(0.75, 0.75, 0.25), SpecularPower: 32},
	}

	var prims []ParsedPrimitive
	prims = appendBoxWalls(prims, 0, 1)
	prims = append(prims,
		ceilingLight(2),
		NewParsedSphere(16.5, types.XYZ(20, 16.5, 27), 3),
		NewParsedSphere(16.5, types.XYZ(77, 16.5, 78), 4),
		NewParsedSphere(10, types.XYZ(65, 10, 120), 5),
		NewParsedTriangle(
			Vertex{Position: types.XYZ(70, 50, 20), UV: types.XY(0, 0)},
			Vertex{Position: types.XYZ(50, 80, 10), UV: types.XY(0.5, 1)},
			Vertex{Position: types.XYZ(30, 50, 20), UV: types.XY(1, 0)},
			6,
		),
	)

	return &ParsedScene{
		Primitives: prims,
		Materials:  materials,
		Camera:     demoCamera(width, height),
	}
}

// A single white matte triangle viewed head-on. Useful for validating
// intersection and shading without any indirect light.
func NewTriangleScene(width, height uint32) *ParsedScene {
	materials := []ParsedMaterial{
		{Type: MatteMaterial, Reflectance: types.XYZ(1, 1, 1)},
	}

	prims := []ParsedPrimitive{
		NewParsedTriangle(
			Vertex{Position: types.XYZ(-1, 0, 0)},
			Vertex{Position: types.XYZ(1, 0, 0)},
			Vertex{Position: types.XYZ(0, 1, 0)},
			0,
		),
	}

	return &ParsedScene{
		Primitives: prims,
		Materials:  materials,
		Camera: NewCamera(
			types.XYZ(0, 0.5, 2),
			types.XYZ(0, 0, 0),
			types.XYZ(0, 1, 0),
			width, height,
			math32.Pi/4,
			1.0,
		),
	}
}
