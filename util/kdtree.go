package util

//*******************************************
// kd-tree
//*******************************************

type _KDNode[T any] struct {
	coords []float32
	value  T
	left   *_KDNode[T]
	right  *_KDNode[T]
}

type KDTree[T any] struct {
	dim  int
	root *_KDNode[T]
}

func NewKDTree[T any](dim int) KDTree[T] {
	return KDTree[T]{dim: dim}
}

func (self *KDTree[T]) Insert(coords []float32, value T) {
	c := make([]float32, self.dim)
	copy(c, coords)
	node := &_KDNode[T]{coords: c, value: value}
	if self.root == nil {
		self.root = node
		return
	}
	curr := self.root
	axis := 0
	for {
		if c[axis] < curr.coords[axis] {
			if curr.left == nil {
				curr.left = node
				return
			}
			curr = curr.left
		} else {
			if curr.right == nil {
				curr.right = node
				return
			}
			curr = curr.right
		}
		axis = (axis + 1) % self.dim
	}
}

// Returns the value closest to coords within max_dist (euclidean in
// coordinate space), false if no inserted value lies in that range.
func (self *KDTree[T]) GetClosest(coords []float32, max_dist float32) (T, bool) {
	best := _KDResult[T]{dist: max_dist * max_dist, found: false}
	self._Search(self.root, coords, 0, &best)
	if !best.found {
		var value T
		return value, false
	}
	return best.value, true
}

type _KDResult[T any] struct {
	value T
	dist  float32
	found bool
}

func (self *KDTree[T]) _Search(node *_KDNode[T], coords []float32, axis int, best *_KDResult[T]) {
	if node == nil {
		return
	}
	dist := float32(0)
	for i := 0; i < self.dim; i++ {
		d := coords[i] - node.coords[i]
		dist += d * d
	}
	if dist < best.dist || (!best.found && dist <= best.dist) {
		best.value = node.value
		best.dist = dist
		best.found = true
	}
	diff := coords[axis] - node.coords[axis]
	next_axis := (axis + 1) % self.dim
	near, far := node.right, node.left
	if diff < 0 {
		near, far = node.left, node.right
	}
	self._Search(near, coords, next_axis, best)
	if diff*diff <= best.dist {
		self._Search(far, coords, next_axis, best)
	}
}
