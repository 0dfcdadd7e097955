package huff

import (
	"github.com/pkg/errors"
)

// CodeTable maps every byte value to its code. A zero Length means the
// symbol does not occur.
type CodeTable struct {
	codes [maxSymbols]CodeEntry
	size  int
}

func (t *CodeTable) Lookup(symbol byte) (CodeEntry, bool) {
	e := t.codes[symbol]
	return e, 0 < e.Length
}

// Len is the number of populated entries.
func (t *CodeTable) Len() int {
	return t.size
}

// Entries returns the populated entries in ascending symbol order.
func (t *CodeTable) Entries() []CodeEntry {
	out := make([]CodeEntry, 0, t.size)
	for _, e := range t.codes {
		if 0 < e.Length {
			out = append(out, e)
		}
	}
	return out
}

func (t *CodeTable) set(e CodeEntry) {
	if t.codes[e.Symbol].Length == 0 {
		t.size += 1
	}
	t.codes[e.Symbol] = e
}

// reverseBits returns the low length bits of code in reverse order.
func reverseBits[T Unsigned](code T, length uint8) T {
	out := T(0)
	for i := uint8(0); i < length; i += 1 {
		out = (out << 1) | (code & 1)
		code >>= 1
	}
	return out
}

type traverseFrame struct {
	index nodeIndex
	depth int
	path  uint64
}

// generateCodeTable walks the tree in pre-order (left before right).
// Paths accumulate root first and are reversed into stream order.
func generateCodeTable(a *arena, root nodeIndex) (*CodeTable, error) {
	t := new(CodeTable)
	if root == nilNode {
		return t, nil
	}

	stack := make([]traverseFrame, 0, 64)
	stack = append(stack, traverseFrame{index: root})
	for 0 < len(stack) {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if BlockBits < f.depth {
			return nil, errors.Wrapf(ErrCodeTooLong, "depth=%d", f.depth)
		}

		n := a.at(f.index)
		if n.kind == kindLeaf {
			length := uint8(f.depth)
			t.set(CodeEntry{
				Symbol: n.symbol,
				Length: length,
				Code:   reverseBits(uint32(f.path), length),
			})
			continue
		}

		if n.right != nilNode {
			stack = append(stack, traverseFrame{n.right, f.depth + 1, (f.path << 1) | 1})
		}
		if n.left != nilNode {
			stack = append(stack, traverseFrame{n.left, f.depth + 1, f.path << 1})
		}
	}
	return t, nil
}
