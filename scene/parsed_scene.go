package scene

import (
	"github.com/shadercoder/Salty/texture"
	"github.com/shadercoder/Salty/types"
)

// The primitive-import contract. Loaders hand the compiler an ordered
// primitive sequence, an ordered material sequence and an optional
// environment map; the core never parses any file formats itself.
type ParsedScene struct {
	Primitives []ParsedPrimitive
	Materials  []ParsedMaterial

	// Pre-decoded environment map, or nil.
	Environment        *texture.Texture2D
	EnvironmentSampler texture.Sampler

	Camera *Camera
}

// A tagged parsed primitive. Exactly the fields for its Kind are
// meaningful; MaterialIndex points into the parsed material sequence.
type ParsedPrimitive struct {
	Kind          PrimitiveKind
	MaterialIndex uint32

	// Sphere data.
	Radius float32
	Center types.Vec3

	// Triangle/quad vertex data. Triangles use the first three.
	Vertices [4]Vertex
}

// Define a parsed sphere.
func NewParsedSphere(radius float32, center types.Vec3, materialIndex uint32) ParsedPrimitive {
	return ParsedPrimitive{
		Kind:          SpherePrimitive,
		MaterialIndex: materialIndex,
		Radius:        radius,
		Center:        center,
	}
}

// Define a parsed triangle.
func NewParsedTriangle(v0, v1, v2 Vertex, materialIndex uint32) ParsedPrimitive {
	return ParsedPrimitive{
		Kind:          TrianglePrimitive,
		MaterialIndex: materialIndex,
		Vertices:      [4]Vertex{v0, v1, v2, {}},
	}
}

// Define a parsed quad.
func NewParsedQuad(v0, v1, v2, v3 Vertex, materialIndex uint32) ParsedPrimitive {
	return ParsedPrimitive{
		Kind:          QuadPrimitive,
		MaterialIndex: materialIndex,
		Vertices:      [4]Vertex{v0, v1, v2, v3},
	}
}

// A parsed material descriptor. The texture, when present, arrives
// pre-decoded from the loader.
type ParsedMaterial struct {
	Type MaterialType

	Reflectance types.Vec3
	Emissive    types.Vec3

	Texture *texture.Texture2D
	Sampler texture.Sampler

	Roughness     float32
	IOR           float32
	SpecularPower float32
}
