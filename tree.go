package texpack

// nodeStatus is the state of a tree node.
type nodeStatus uint8

const (
	// nodeFree can still receive an image or be split.
	nodeFree nodeStatus = iota
	// nodeSplit has two children that tile it.
	nodeSplit
	// nodeOccupied holds exactly one image.
	nodeOccupied
	// nodeLeftover is a zero-width remainder of a split; never usable.
	nodeLeftover
)

// noNode marks an absent node index.
const noNode = -1

// extent is one dimension of a node. Unbounded extents lie on the growing
// frontier of the tree and end at the surface edge.
type extent struct {
	size      int
	unbounded bool
}

func bounded(size int) extent {
	return extent{size: size}
}

// resolve returns the usable length of the extent for a node at pos on a
// surface of length bound.
func (e extent) resolve(pos, bound int) int {
	if e.unbounded {
		return bound - pos
	}
	return e.size
}

// node is an element of the tree arena. sub1 and sub2 are set iff status
// is nodeSplit.
type node struct {
	x, y   int
	w, h   extent
	status nodeStatus
	id     NodeID
	sub1   int
	sub2   int
}

// tree is a guillotine-split binary tree stored in a single slice. Index 0
// is the root, which is unbounded on both axes.
type tree struct {
	nodes []node
}

func newTree() *tree {
	t := &tree{nodes: make([]node, 0, 64)}
	t.nodes = append(t.nodes, node{
		w:    extent{unbounded: true},
		h:    extent{unbounded: true},
		sub1: noNode,
		sub2: noNode,
	})
	return t
}

// insert finds a place for a w×h image below node n on a surface of the
// given bound. It returns the index of the occupied node or noNode.
//
// nodes may be reallocated by a split, so node values are re-read by
// index instead of being held by pointer across the recursion.
func (t *tree) insert(n, w, h int, bound Size) int {
	nd := t.nodes[n]
	switch nd.status {
	case nodeSplit:
		if found := t.insert(nd.sub1, w, h, bound); found != noNode {
			return found
		}
		return t.insert(nd.sub2, w, h, bound)
	case nodeOccupied, nodeLeftover:
		return noNode
	}

	effW := nd.w.resolve(nd.x, bound.Width)
	effH := nd.h.resolve(nd.y, bound.Height)
	if w > effW || h > effH {
		return noNode
	}

	if !nd.w.unbounded && !nd.h.unbounded && nd.w.size == w && nd.h.size == h {
		t.nodes[n].status = nodeOccupied
		return n
	}

	t.split(n, w, h, t.splitLeftRight(nd, w, h, effW, effH))
	return t.insert(t.nodes[n].sub1, w, h, bound)
}

// splitLeftRight decides the cut direction for placing a w×h image in nd.
func (t *tree) splitLeftRight(nd node, w, h, effW, effH int) bool {
	finiteComp := effW-w > effH-h
	switch {
	case nd.w.unbounded && nd.h.unbounded:
		return finiteComp
	case nd.w.unbounded:
		return true
	case nd.h.unbounded:
		return false
	default:
		return finiteComp
	}
}

// split cuts node n so that its first child fits the image exactly along
// the cut axis. A 1px gutter separates the two children.
func (t *tree) split(n, w, h int, leftRight bool) {
	nd := t.nodes[n]
	sub1 := node{x: nd.x, y: nd.y, w: nd.w, h: nd.h, sub1: noNode, sub2: noNode}
	sub2 := sub1

	if leftRight {
		sub1.w = bounded(w)
		sub2.x = nd.x + w + 1
		if !nd.w.unbounded {
			sub2.w = bounded(nd.w.size - w - 1)
		}
	} else {
		sub1.h = bounded(h)
		sub2.y = nd.y + h + 1
		if !nd.h.unbounded {
			sub2.h = bounded(nd.h.size - h - 1)
		}
	}

	if (!sub2.w.unbounded && sub2.w.size <= 0) || (!sub2.h.unbounded && sub2.h.size <= 0) {
		sub2.status = nodeLeftover
		if leftRight {
			sub2.w = bounded(0)
		} else {
			sub2.h = bounded(0)
		}
	}

	t.nodes = append(t.nodes, sub1, sub2)
	t.nodes[n].status = nodeSplit
	t.nodes[n].sub1 = len(t.nodes) - 2
	t.nodes[n].sub2 = len(t.nodes) - 1
}

// rect returns the rectangle of an occupied node.
func (t *tree) rect(n int) Rect {
	nd := t.nodes[n]
	return Rect{X: nd.x, Y: nd.y, Width: nd.w.size, Height: nd.h.size}
}

// occupiedBound returns the smallest size, anchored at (0, 0), that
// contains every occupied node.
func (t *tree) occupiedBound() Size {
	var bound Size
	for i := range t.nodes {
		nd := &t.nodes[i]
		if nd.status != nodeOccupied {
			continue
		}
		bound.Width = max(bound.Width, nd.x+nd.w.size)
		bound.Height = max(bound.Height, nd.y+nd.h.size)
	}
	return bound
}
