package huff

type nodeIndex int32

const nilNode nodeIndex = -1

type nodeKind uint8

const (
	kindInternal nodeKind = iota
	kindLeaf
)

// node is both a queue element (next) and a tree node (left, right).
// symbol is meaningful only when kind is kindLeaf.
type node struct {
	weight uint64
	kind   nodeKind
	symbol byte
	left   nodeIndex
	right  nodeIndex
	next   nodeIndex
}

// arena owns every node of one encode or decode call.
// Nodes refer to each other by index and are released together.
type arena struct {
	nodes []node
}

func newArena(capacity int) *arena {
	return &arena{
		nodes: make([]node, 0, capacity),
	}
}

func (a *arena) alloc(n node) nodeIndex {
	a.nodes = append(a.nodes, n)
	return nodeIndex(len(a.nodes) - 1)
}

func (a *arena) newLeaf(symbol byte, weight uint64) nodeIndex {
	return a.alloc(node{
		weight: weight,
		kind:   kindLeaf,
		symbol: symbol,
		left:   nilNode,
		right:  nilNode,
		next:   nilNode,
	})
}

func (a *arena) newInternal(weight uint64, left, right nodeIndex) nodeIndex {
	return a.alloc(node{
		weight: weight,
		kind:   kindInternal,
		left:   left,
		right:  right,
		next:   nilNode,
	})
}

func (a *arena) at(i nodeIndex) *node {
	return &a.nodes[i]
}

func (a *arena) isLeaf(i nodeIndex) bool {
	return a.nodes[i].kind == kindLeaf
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}
