package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// DefaultLeafSize is the number of triangles a leaf may hold before it is split
const DefaultLeafSize = 4

// bvhNode is either an internal node with two children or a leaf covering triangles[from:to]
type bvhNode struct {
	bounds      core.AABB
	left, right int32 // Child indices into the arena, -1 for leaves
	from, to    int32
}

func (n *bvhNode) isLeaf() bool {
	return n.left < 0
}

// BVH represents a Bounding Volume Hierarchy over a triangle array.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	triangles []Triangle
	nodes     []bvhNode // nodes[0] is the root
	leafSize  int
}

// NewBVH builds a BVH by recursive median splits, cycling the split axis with depth.
// The triangles slice is reordered in place and owned by the BVH from then on.
func NewBVH(triangles []Triangle, leafSize int) (*BVH, error) {
	if len(triangles) == 0 {
		return nil, newQueryError(InvalidArgument, "cannot build BVH over zero triangles")
	}
	if len(triangles) > math.MaxInt32 {
		return nil, newQueryError(OutOfMemory, "%d triangles exceed BVH index range", len(triangles))
	}
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}

	bvh := &BVH{
		triangles: triangles,
		nodes:     make([]bvhNode, 0, 2*len(triangles)/leafSize+1),
		leafSize:  leafSize,
	}
	bvh.build(0, int32(len(triangles)), 0)

	logger.Debugf("built BVH: %d triangles, %d nodes", len(triangles), len(bvh.nodes))
	return bvh, nil
}

// build appends the node for triangles[from:to] and returns its index
func (b *BVH) build(from, to int32, depth int) int32 {
	bounds := core.EmptyAABB()
	for i := from; i < to; i++ {
		bounds = bounds.Union(b.triangles[i].bbox)
	}

	index := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{bounds: bounds, left: -1, right: -1, from: from, to: to})

	if int(to-from) <= b.leafSize {
		return index
	}

	axis := depth % 3
	mid := from + (to-from)/2
	selectNth(b.triangles[from:to], int(mid-from), axis)

	left := b.build(from, mid, depth+1)
	right := b.build(mid, to, depth+1)

	// Appending children may have grown the arena, so write through the index
	b.nodes[index].left = left
	b.nodes[index].right = right
	return index
}

// selectNth partially orders tris so that tris[n] holds the triangle whose centroid would sit
// at position n if sorted along axis, with no larger centroid before it and no smaller after it.
func selectNth(tris []Triangle, n, axis int) {
	key := func(i int) float64 {
		return tris[i].Centroid().Axis(axis)
	}

	lo, hi := 0, len(tris)-1
	for lo < hi {
		// Median-of-three pivot keeps sorted input from degrading to quadratic time
		m := lo + (hi-lo)/2
		if key(m) < key(lo) {
			tris[m], tris[lo] = tris[lo], tris[m]
		}
		if key(hi) < key(lo) {
			tris[hi], tris[lo] = tris[lo], tris[hi]
		}
		if key(hi) < key(m) {
			tris[hi], tris[m] = tris[m], tris[hi]
		}
		pivot := key(m)

		i, j := lo, hi
		for i <= j {
			for key(i) < pivot {
				i++
			}
			for key(j) > pivot {
				j--
			}
			if i <= j {
				tris[i], tris[j] = tris[j], tris[i]
				i++
				j--
			}
		}

		switch {
		case n <= j:
			hi = j
		case n >= i:
			lo = i
		default:
			return
		}
	}
}

// Intersect finds the nearest triangle hit with tMin < t < tMax
func (b *BVH) Intersect(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	hit := newHitRecord(tMax)
	b.traverse(0, ray, tMin, &hit)
	return hit, hit.Hit
}

// traverse visits both children of every node whose box the ray hits
func (b *BVH) traverse(index int32, ray core.Ray, tMin float64, hit *HitRecord) {
	node := &b.nodes[index]
	if !node.bounds.Hit(ray) {
		return
	}

	if node.isLeaf() {
		for i := node.from; i < node.to; i++ {
			if b.triangles[i].Intersect(ray, tMin, hit) {
				hit.Primitive = int(i)
			}
		}
		return
	}

	b.traverse(node.left, ray, tMin, hit)
	b.traverse(node.right, ray, tMin, hit)
}

// Primitives returns the reordered triangle array; HitRecord.Primitive indexes into it
func (b *BVH) Primitives() []Triangle {
	return b.triangles
}

// Bounds returns the bounding box of the whole hierarchy
func (b *BVH) Bounds() core.AABB {
	return b.nodes[0].bounds
}

// BVHStats summarizes the shape of a built hierarchy
type BVHStats struct {
	Triangles    int
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
	MaxLeafSize  int
}

// Stats walks the tree and collects shape statistics
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{Triangles: len(b.triangles), Nodes: len(b.nodes)}
	depthSum := 0

	var walk func(index int32, depth int)
	walk = func(index int32, depth int) {
		node := &b.nodes[index]
		if node.isLeaf() {
			stats.Leaves++
			depthSum += depth
			stats.MaxDepth = max(stats.MaxDepth, depth)
			stats.MaxLeafSize = max(stats.MaxLeafSize, int(node.to-node.from))
			return
		}
		walk(node.left, depth+1)
		walk(node.right, depth+1)
	}
	walk(0, 0)

	if stats.Leaves > 0 {
		stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	}
	return stats
}
