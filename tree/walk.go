package tree

// Action is a function type to operate on tree nodes during a traversal.
// depth is 0 for the start node of the traversal. Returning false skips the
// sub-tree below n.
type Action[T comparable] func(n *Node[T], depth int) bool

// TopDown traverses a tree starting at (and including) node, in document
// order. The traversal guarantees that parents are always processed before
// their children, and that siblings are processed in order.
func (node *Node[T]) TopDown(action Action[T]) {
	if node == nil || action == nil {
		return
	}
	node.topDown(action, 0)
}

func (node *Node[T]) topDown(action Action[T], depth int) {
	if !action(node, depth) {
		return
	}
	for _, ch := range node.Children() {
		ch.topDown(action, depth+1)
	}
}

// Descendents returns all nodes below node (excluding node) matching a
// predicate, in document order. A nil predicate matches every node.
func (node *Node[T]) Descendents(predicate func(*Node[T]) bool) []*Node[T] {
	var selection []*Node[T]
	node.TopDown(func(n *Node[T], depth int) bool {
		if depth > 0 && (predicate == nil || predicate(n)) {
			selection = append(selection, n)
		}
		return true
	})
	return selection
}

// Enumerate sets the Rank of every node in the sub-tree under node
// (including node) to its position in document order, starting with 1.
// It returns the number of nodes visited.
func (node *Node[T]) Enumerate() uint32 {
	var rank uint32
	node.TopDown(func(n *Node[T], _ int) bool {
		rank++
		n.Rank = rank
		return true
	})
	return rank
}
