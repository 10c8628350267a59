package compiler

import (
	"time"

	"github.com/shadercoder/Salty/log"
	"github.com/shadercoder/Salty/scene"
	"github.com/shadercoder/Salty/types"
)

const (
	// Leaf size the surface area heuristic aims for.
	leafMax = 4

	// Absolute leaf size bound. When no split plane beats the leaf
	// cost and the node still holds more than this many primitives, a
	// median split is forced so leaves stay small.
	leafMaxHard = 16

	// Bucket count for SAH plane candidates.
	numBuckets = 12

	// Centroid extents below this threshold are treated as degenerate;
	// bucketing over them would put every primitive in one bucket.
	minAxisExtent float32 = 1e-6
)

// A primitive entry the builder partitions: its arena ref, bounds and
// centroid. The builder reorders these in place; their final order is
// what the BVH leaves index.
type buildItem struct {
	ref      scene.PrimitiveRef
	box      types.BoundingBox
	centroid types.Vec3
}

type builderStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type bvhBuilder struct {
	logger log.Logger

	// Bvh nodes stored as a contiguous list.
	nodes []scene.BvhNode

	// The work list, reordered in place during partitioning.
	items []buildItem

	stats builderStats
}

// Construct a BVH over the given items.
//
// The builder scores split planes with the surface area heuristic over
// equal-width centroid buckets and emits nodes into a flat arena in
// depth-first order, children following their parent. Construction is
// deterministic given the item order.
func buildBvh(items []buildItem, logger log.Logger) ([]scene.BvhNode, []scene.PrimitiveRef) {
	b := &bvhBuilder{
		logger: logger,
		nodes:  make([]scene.BvhNode, 0, 2*len(items)),
		items:  items,
	}

	start := time.Now()
	b.partition(0, len(items), 0)

	refs := make([]scene.PrimitiveRef, len(items))
	for i, item := range items {
		refs[i] = item.ref
	}

	b.logger.Debugf(
		"bvh build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return b.nodes, refs
}

// Partition items[first : first+count] and return the emitted node
// index.
func (b *bvhBuilder) partition(first, count, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	// Calculate bounding boxes for the node and for the centroids.
	nodeBox := types.NewBoundingBox()
	centroidBox := types.NewBoundingBox()
	for i := first; i < first+count; i++ {
		nodeBox = types.Merge(nodeBox, b.items[i].box)
		centroidBox = centroidBox.Extend(b.items[i].centroid)
	}

	if count <= leafMax {
		return b.createLeaf(nodeBox, first, count)
	}

	axis := centroidBox.LongestAxis()
	extent := centroidBox.Size()[axis]
	if extent < minAxisExtent {
		// All centroids coincide along the split axis; bucketing
		// cannot separate them.
		if count <= leafMaxHard {
			return b.createLeaf(nodeBox, first, count)
		}
		return b.createBranch(nodeBox, first, count, first+count/2, depth)
	}

	mid, found := b.findSahSplit(first, count, axis, centroidBox, nodeBox)
	if !found {
		if count <= leafMaxHard {
			return b.createLeaf(nodeBox, first, count)
		}
		mid = b.medianSplit(first, count, axis)
	}

	return b.createBranch(nodeBox, first, count, mid, depth)
}

// Score the 11 candidate planes between 12 equal-width centroid buckets
// along the chosen axis. Returns the in-place partition point for the
// cheapest plane, or found=false when no plane beats the leaf cost.
func (b *bvhBuilder) findSahSplit(first, count, axis int, centroidBox, nodeBox types.BoundingBox) (mid int, found bool) {
	type bucket struct {
		count int
		box   types.BoundingBox
	}

	var buckets [numBuckets]bucket
	for i := range buckets {
		buckets[i].box = types.NewBoundingBox()
	}

	lo := centroidBox.Min[axis]
	scale := float32(numBuckets) / centroidBox.Size()[axis]
	bucketOf := func(item *buildItem) int {
		idx := int((item.centroid[axis] - lo) * scale)
		if idx < 0 {
			idx = 0
		}
		if idx >= numBuckets {
			idx = numBuckets - 1
		}
		return idx
	}

	for i := first; i < first+count; i++ {
		idx := bucketOf(&b.items[i])
		buckets[idx].count++
		buckets[idx].box = types.Merge(buckets[idx].box, b.items[i].box)
	}

	// Sweep the candidate planes, accumulating bounds from both ends.
	var leftCount, rightCount [numBuckets - 1]int
	var leftArea, rightArea [numBuckets - 1]float32

	acc := types.NewBoundingBox()
	n := 0
	for i := 0; i < numBuckets-1; i++ {
		acc = types.Merge(acc, buckets[i].box)
		n += buckets[i].count
		leftCount[i] = n
		leftArea[i] = acc.SurfaceArea()
	}

	acc = types.NewBoundingBox()
	n = 0
	for i := numBuckets - 1; i > 0; i-- {
		acc = types.Merge(acc, buckets[i].box)
		n += buckets[i].count
		rightCount[i-1] = n
		rightArea[i-1] = acc.SurfaceArea()
	}

	parentArea := nodeBox.SurfaceArea()
	bestPlane := -1
	bestCost := float32(count)
	for i := 0; i < numBuckets-1; i++ {
		if leftCount[i] == 0 || rightCount[i] == 0 {
			continue
		}
		cost := 1 + (leftArea[i]*float32(leftCount[i])+rightArea[i]*float32(rightCount[i]))/parentArea
		if cost < bestCost {
			bestCost = cost
			bestPlane = i
		}
	}

	if bestPlane < 0 {
		return 0, false
	}

	// Partition in place so each side of the plane is contiguous.
	left := first
	right := first + count - 1
	for left <= right {
		if bucketOf(&b.items[left]) <= bestPlane {
			left++
			continue
		}
		b.items[left], b.items[right] = b.items[right], b.items[left]
		right--
	}

	if left == first || left == first+count {
		return 0, false
	}
	return left, true
}

// Split at the median centroid along the axis. Used only when SAH found
// no worthwhile plane but the node exceeds the hard leaf bound.
func (b *bvhBuilder) medianSplit(first, count, axis int) int {
	span := b.items[first : first+count]

	// Deterministic insertion sort by centroid; the fallback only runs
	// on small degenerate clusters.
	for i := 1; i < len(span); i++ {
		for j := i; j > 0 && span[j].centroid[axis] < span[j-1].centroid[axis]; j-- {
			span[j], span[j-1] = span[j-1], span[j]
		}
	}

	return first + count/2
}

// Emit an internal node and recurse into both halves. Children follow
// their parent in the arena so traversal touches nearby memory.
func (b *bvhBuilder) createBranch(box types.BoundingBox, first, count, mid, depth int) uint32 {
	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, scene.BvhNode{})
	b.nodes[nodeIndex].SetBBox(box)
	b.stats.nodes++

	leftIndex := b.partition(first, mid-first, depth+1)
	rightIndex := b.partition(mid, first+count-mid, depth+1)
	b.nodes[nodeIndex].SetChildNodes(leftIndex, rightIndex)

	return nodeIndex
}

// Emit a leaf over a contiguous primitive run.
func (b *bvhBuilder) createLeaf(box types.BoundingBox, first, count int) uint32 {
	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, scene.BvhNode{})
	b.nodes[nodeIndex].SetBBox(box)
	b.nodes[nodeIndex].SetPrimitives(uint32(first), uint32(count))

	b.stats.nodes++
	b.stats.leafs++

	return nodeIndex
}
