package core

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

var (
	// ErrNoBoundingBox is returned when an object cannot report finite bounds
	ErrNoBoundingBox = errors.New("bvh: object has no bounding box")
	// ErrNoObjects is returned when a BVH is requested over an empty object list
	ErrNoObjects = errors.New("bvh: no objects")
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// A node with a nil Right child is a leaf wrapping a single object.
// Nodes are immutable after construction and safe for concurrent queries.
type BVHNode struct {
	Box   AABB
	Left  Hittable
	Right Hittable
}

// NewBVH constructs a BVH over objects for the shutter interval [time0, time1].
// Split axes are drawn from random, so the same seed always yields the same tree.
func NewBVH(random *rand.Rand, objects []Hittable, time0, time1 float64) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrNoObjects
	}

	// Sorting happens in place, so work on a copy of the caller's slice
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(random, objectsCopy, time0, time1)
}

// buildBVH recursively builds the tree, splitting at the median along a random axis
func buildBVH(random *rand.Rand, objects []Hittable, time0, time1 float64) (*BVHNode, error) {
	node := &BVHNode{}

	switch len(objects) {
	case 1:
		node.Left = objects[0]
	case 2:
		node.Left, node.Right = objects[0], objects[1]
	default:
		axis := random.Intn(3)
		if err := sortObjectsByAxis(objects, axis); err != nil {
			return nil, err
		}

		mid := len(objects) / 2
		left, err := buildBVH(random, objects[:mid], time0, time1)
		if err != nil {
			return nil, err
		}
		right, err := buildBVH(random, objects[mid:], time0, time1)
		if err != nil {
			return nil, err
		}
		node.Left, node.Right = left, right
	}

	box, ok := node.Left.BoundingBox(time0, time1)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoBoundingBox, node.Left)
	}
	if node.Right != nil {
		rightBox, ok := node.Right.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNoBoundingBox, node.Right)
		}
		box = SurroundingBox(box, rightBox)
	}
	node.Box = box

	return node, nil
}

// sortObjectsByAxis stably sorts objects by the minimum corner on axis of their
// bounding box at time 0. Node boxes still span the whole shutter interval.
func sortObjectsByAxis(objects []Hittable, axis int) error {
	type keyedObject struct {
		object Hittable
		key    float64
	}

	keyed := make([]keyedObject, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(0, 0)
		if !ok {
			return fmt.Errorf("%w: object %d (%T)", ErrNoBoundingBox, i, object)
		}
		keyed[i] = keyedObject{object: object, key: box.Min.Axis(axis)}
	}

	slices.SortStableFunc(keyed, func(a, b keyedObject) int {
		return cmp.Compare(a.key, b.key)
	})

	for i := range keyed {
		objects[i] = keyed[i].object
	}
	return nil
}

// Hit returns the closest intersection in [tMin, tMax] among all objects below this node
func (n *BVHNode) Hit(random *rand.Rand, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if !ray.Debug {
		return n.hitNode(random, ray, tMin, tMax, nil)
	}

	var visits int
	hit, isHit := n.hitNode(random, ray, tMin, tMax, &visits)
	if isHit {
		hit.Visits = visits
	}
	return hit, isHit
}

// HitCounted behaves like Hit and also reports how many nodes were visited, hit or miss
func (n *BVHNode) HitCounted(random *rand.Rand, ray Ray, tMin, tMax float64) (*HitRecord, bool, int) {
	var visits int
	hit, isHit := n.hitNode(random, ray, tMin, tMax, &visits)
	return hit, isHit, visits
}

// hitNode tests the node's box, then the left child, then the right child over the
// interval narrowed by any left hit. visits is nil unless traversal is being counted.
func (n *BVHNode) hitNode(random *rand.Rand, ray Ray, tMin, tMax float64, visits *int) (*HitRecord, bool) {
	if visits != nil {
		*visits++
	}

	// Missing the box prunes the whole subtree
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if n.Right == nil {
		return hitChild(n.Left, random, ray, tMin, tMax, visits)
	}

	leftHit, hitLeft := hitChild(n.Left, random, ray, tMin, tMax, visits)
	if hitLeft {
		tMax = leftHit.T
	}

	rightHit, hitRight := hitChild(n.Right, random, ray, tMin, tMax, visits)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

func hitChild(child Hittable, random *rand.Rand, ray Ray, tMin, tMax float64, visits *int) (*HitRecord, bool) {
	if node, ok := child.(*BVHNode); ok {
		return node.hitNode(random, ray, tMin, tMax, visits)
	}
	return child.Hit(random, ray, tMin, tMax)
}

// BoundingBox returns the cached box enclosing the subtree
func (n *BVHNode) BoundingBox(time0, time1 float64) (AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes    int // Total BVH nodes
	Leaves   int // Nodes whose children are all objects
	Objects  int // Objects referenced by the tree
	MaxDepth int // Depth of the deepest node (root is 0)
}

// Stats walks the tree and returns its shape statistics
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	leaf := true
	for _, child := range []Hittable{n.Left, n.Right} {
		if child == nil {
			continue
		}
		if node, ok := child.(*BVHNode); ok {
			leaf = false
			node.collectStats(depth+1, stats)
		} else {
			stats.Objects++
		}
	}
	if leaf {
		stats.Leaves++
	}
}
