package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/chewxy/math32"
	"github.com/olekukonko/tablewriter"
	"github.com/shadercoder/Salty/texture"
	"github.com/shadercoder/Salty/types"
)

// An optimized scene: per-kind primitive arenas, the material table, the
// BVH node arena and the reordered primitive refs its leaves index. It
// is built once by the compiler and is read-only for the rest of the
// run, so any number of workers may query it without synchronization.
type Scene struct {
	Spheres   []Sphere
	Triangles []Triangle
	Quads     []Quad

	Materials []Material

	BvhNodes      []BvhNode
	PrimitiveRefs []PrimitiveRef

	// Optional equirectangular environment map sampled on ray miss.
	Environment        *texture.Texture2D
	EnvironmentSampler texture.Sampler

	Camera *Camera
}

// Get the total primitive count.
func (sc *Scene) PrimitiveCount() int {
	return len(sc.Spheres) + len(sc.Triangles) + len(sc.Quads)
}

// Get the material referenced by a hit record.
func (sc *Scene) Material(rec *HitRecord) *Material {
	return &sc.Materials[rec.MaterialIndex]
}

// Get the environment radiance along a direction. Scenes without an
// environment map are surrounded by blackness.
func (sc *Scene) EnvironmentColor(dir types.Vec3) types.Vec3 {
	if sc.Environment == nil {
		return types.Vec3{}
	}

	theta := types.SafeAcos(dir[1])
	phi := math32.Atan2(dir[0], dir[2])
	if phi < 0 {
		phi += 2 * math32.Pi
	}
	uv := types.XY(phi/(2*math32.Pi), (math32.Pi-theta)/math32.Pi)

	return sc.Environment.Sample(sc.EnvironmentSampler, uv).Vec3()
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Size"})
	table.Append([]string{"Geometry", "---", fmtSize(sc.Spheres, sc.Triangles, sc.Quads, sc.BvhNodes, sc.PrimitiveRefs)})
	table.Append([]string{"", fmt.Sprintf("Spheres (%d)", len(sc.Spheres)), fmtSize(sc.Spheres)})
	table.Append([]string{"", fmt.Sprintf("Triangles (%d)", len(sc.Triangles)), fmtSize(sc.Triangles)})
	table.Append([]string{"", fmt.Sprintf("Quads (%d)", len(sc.Quads)), fmtSize(sc.Quads)})
	table.Append([]string{"", fmt.Sprintf("BVH nodes (%d)", len(sc.BvhNodes)), fmtSize(sc.BvhNodes)})
	table.Append([]string{"", "Prim. refs", fmtSize(sc.PrimitiveRefs)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Materials", fmt.Sprintf("Entries (%d)", len(sc.Materials)), fmtSize(sc.Materials)})
	table.Append([]string{"Textures", "Data", fmtSize(textureData(sc)...)})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(append([]interface{}{sc.Spheres, sc.Triangles, sc.Quads, sc.BvhNodes, sc.PrimitiveRefs, sc.Materials}, textureData(sc)...)...), " ")})

	table.Render()
	return buf.String()
}

// Collect the pixel slices of every distinct texture in the scene.
func textureData(sc *Scene) []interface{} {
	seen := make(map[*texture.Texture2D]struct{})
	var out []interface{}
	for i := range sc.Materials {
		tex := sc.Materials[i].Texture
		if tex == nil {
			continue
		}
		if _, ok := seen[tex]; ok {
			continue
		}
		seen[tex] = struct{}{}
		out = append(out, tex.Pixels)
	}
	if sc.Environment != nil {
		out = append(out, sc.Environment.Pixels)
	}
	return out
}

// Sum the total space used by a set of slices and return back a
// formatted value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
