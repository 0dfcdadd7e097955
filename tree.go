package huff

import (
	"github.com/pkg/errors"
)

// buildTree merges the two lightest nodes of q until a single root
// remains. With one distinct symbol the root is synthetic and holds
// the leaf as its only (left) child.
func buildTree(a *arena, q *queue) (nodeIndex, error) {
	switch q.Len() {
	case 0:
		return nilNode, errors.WithStack(ErrEmptyInput)
	case 1:
		leaf := q.pop()
		return a.newInternal(a.at(leaf).weight, leaf, nilNode), nil
	}

	for {
		first := q.pop()
		second := q.pop()
		parent := a.newInternal(a.at(first).weight+a.at(second).weight, first, second)
		if q.Len() == 0 {
			return parent, nil
		}
		q.insert(parent)
	}
}

// rebuildTree reconstructs a decode tree from code table entries,
// walking each code from its first bit and creating missing internal
// nodes on the way.
func rebuildTree(a *arena, entries []CodeEntry) (nodeIndex, error) {
	root := a.newInternal(0, nilNode, nilNode)

	for i := len(entries) - 1; 0 <= i; i -= 1 {
		e := entries[i]
		cur := root
		code := e.Code
		for d := uint8(0); d < e.Length; d += 1 {
			if a.isLeaf(cur) {
				return nilNode, corruptf("code of symbol %#02x passes through a leaf at depth %d", e.Symbol, d)
			}
			right := code&1 == 1
			code >>= 1

			next := a.at(cur).left
			if right {
				next = a.at(cur).right
			}
			if next == nilNode {
				next = a.newInternal(0, nilNode, nilNode)
				if right {
					a.at(cur).right = next
				} else {
					a.at(cur).left = next
				}
			}
			cur = next
		}

		leaf := a.at(cur)
		if leaf.kind == kindLeaf || leaf.left != nilNode || leaf.right != nilNode {
			return nilNode, corruptf("code of symbol %#02x is a prefix of another code", e.Symbol)
		}
		leaf.kind = kindLeaf
		leaf.symbol = e.Symbol
	}
	return root, nil
}
