package scene

import "github.com/shadercoder/Salty/types"

// The kind discriminator for primitive references.
type PrimitiveKind uint8

const (
	SpherePrimitive PrimitiveKind = iota
	TrianglePrimitive
	QuadPrimitive
)

// A reference into one of the per-kind primitive arenas. The BVH leaves
// index a contiguous run of these; the builder reorders them so sibling
// primitives stay adjacent in memory.
type PrimitiveRef struct {
	Kind  PrimitiveKind
	Index uint32
}

// A BVH node in the flat node arena. The two data words are
// multipurpose, following the node type:
//
//   - internal nodes keep both >= 0, pointing at the L/R child nodes
//   - leaves keep LData <= 0 pointing (negated) at the first primitive
//     ref and RData > 0 holding the leaf primitive count
//
// The root always lives at arena index 0 and children are emitted after
// their parent in depth-first order.
type BvhNode struct {
	Box BoundingBoxData

	LData int32
	RData int32
}

// The node bounds stored as raw corner vectors to keep the arena layout
// flat.
type BoundingBoxData struct {
	Min types.Vec3
	Max types.Vec3
}

// Set the node bounding box.
func (n *BvhNode) SetBBox(box types.BoundingBox) {
	n.Box.Min = box.Min
	n.Box.Max = box.Max
}

// Get the node bounding box.
func (n *BvhNode) BBox() types.BoundingBox {
	return types.BoundingBox{Min: n.Box.Min, Max: n.Box.Max}
}

// Set left and right child node indices.
func (n *BvhNode) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Get left and right child node indices.
func (n *BvhNode) ChildNodes() (left, right uint32) {
	return uint32(n.LData), uint32(n.RData)
}

// Set the first primitive ref index and primitive count, marking the
// node as a leaf.
func (n *BvhNode) SetPrimitives(firstPrim, count uint32) {
	n.LData = -int32(firstPrim)
	n.RData = int32(count)
}

// Get the first primitive ref index and primitive count.
func (n *BvhNode) Primitives() (firstPrim, count uint32) {
	return uint32(-n.LData), uint32(n.RData)
}

// Check whether the node is a leaf.
func (n *BvhNode) IsLeaf() bool {
	return n.LData <= 0
}

// Traversal stack depth. 64 entries cover balanced trees well past 10^7
// primitives.
const traversalStackSize = 64

// Run a nearest-hit query against the scene BVH. The record is updated
// in place; the query succeeded when rec.Distance is finite.
func (sc *Scene) Intersect(ray *types.Ray, rec *HitRecord) bool {
	rec.Reset()
	if len(sc.BvhNodes) == 0 {
		return false
	}

	var stack [traversalStackSize]uint32
	stack[0] = 0
	stackTop := 1

	for stackTop > 0 {
		stackTop--
		node := &sc.BvhNodes[stack[stackTop]]

		tmin, tmax := node.BBox().IntersectRay(ray)
		if tmin > tmax || tmax < 0 || tmin >= rec.Distance {
			continue
		}

		if node.IsLeaf() {
			firstPrim, count := node.Primitives()
			for i := firstPrim; i < firstPrim+count; i++ {
				sc.intersectPrimitive(sc.PrimitiveRefs[i], ray, rec)
			}
			continue
		}

		// Push the farther child first so the nearer child is
		// popped and pruned against it next.
		left, right := node.ChildNodes()
		lmin, lmax := sc.BvhNodes[left].BBox().IntersectRay(ray)
		rmin, rmax := sc.BvhNodes[right].BBox().IntersectRay(ray)

		lhit := lmin <= lmax && lmax >= 0 && lmin < rec.Distance
		rhit := rmin <= rmax && rmax >= 0 && rmin < rec.Distance

		switch {
		case lhit && rhit:
			if rmin < lmin {
				stack[stackTop] = left
				stack[stackTop+1] = right
			} else {
				stack[stackTop] = right
				stack[stackTop+1] = left
			}
			stackTop += 2
		case lhit:
			stack[stackTop] = left
			stackTop++
		case rhit:
			stack[stackTop] = right
			stackTop++
		}
	}

	return rec.PrimitiveIndex >= 0
}

// Delegate leaf-level intersection to the referenced primitive and stamp
// the arena indices a successful hit resolves through.
func (sc *Scene) intersectPrimitive(ref PrimitiveRef, ray *types.Ray, rec *HitRecord) {
	var hit bool
	var materialIndex uint32

	switch ref.Kind {
	case SpherePrimitive:
		prim := &sc.Spheres[ref.Index]
		hit = prim.Intersect(ray, rec)
		materialIndex = prim.MaterialIndex
	case TrianglePrimitive:
		prim := &sc.Triangles[ref.Index]
		hit = prim.Intersect(ray, rec)
		materialIndex = prim.MaterialIndex
	default:
		prim := &sc.Quads[ref.Index]
		hit = prim.Intersect(ray, rec)
		materialIndex = prim.MaterialIndex
	}

	if hit {
		rec.PrimitiveIndex = int32(ref.Index)
		rec.MaterialIndex = int32(materialIndex)
	}
}
