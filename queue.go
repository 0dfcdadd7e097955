package huff

// queue is a singly linked list of arena nodes kept in ascending weight.
// A node is placed after every node of equal weight, so ties resolve in
// insertion order.
type queue struct {
	a    *arena
	head nodeIndex
	tail nodeIndex
	size int
}

func newQueue(a *arena) *queue {
	return &queue{
		a:    a,
		head: nilNode,
		tail: nilNode,
	}
}

func (q *queue) Len() int {
	return q.size
}

func (q *queue) insert(n nodeIndex) {
	nodes := q.a.nodes
	w := nodes[n].weight
	nodes[n].next = nilNode
	q.size += 1

	if q.head == nilNode {
		q.head = n
		q.tail = n
		return
	}
	if w < nodes[q.head].weight {
		nodes[n].next = q.head
		q.head = n
		return
	}

	cur := q.head
	for {
		next := nodes[cur].next
		if next == nilNode || w < nodes[next].weight {
			break
		}
		cur = next
	}
	nodes[n].next = nodes[cur].next
	nodes[cur].next = n
	if cur == q.tail {
		q.tail = n
	}
}

func (q *queue) pop() nodeIndex {
	if q.head == nilNode {
		return nilNode
	}
	n := q.head
	nd := q.a.at(n)
	q.head = nd.next
	nd.next = nilNode
	if q.head == nilNode {
		q.tail = nilNode
	}
	q.size -= 1
	return n
}

// buildQueue inserts one leaf per present byte value, in ascending
// byte order.
func buildQueue(a *arena, freq *Frequency) *queue {
	q := newQueue(a)
	for i, c := range freq.counts {
		if c == 0 {
			continue
		}
		q.insert(a.newLeaf(byte(i), c))
	}
	return q
}
