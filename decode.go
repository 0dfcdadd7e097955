package huff

import (
	"io"

	"github.com/pkg/errors"
)

// decoder is the state of one Decode call.
type decoder struct {
	a      *arena
	root   nodeIndex
	header Header
	opts   *Options
}

func newDecoder(info *ArchiveInfo, opts *Options) (*decoder, error) {
	a := newArena(2 * maxSymbols)
	root, err := rebuildTree(a, info.Entries)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &decoder{
		a:      a,
		root:   root,
		header: info.Header,
		opts:   opts,
	}, nil
}

func (d *decoder) release() {
	d.a.reset()
	d.root = nilNode
}

// unpack walks the tree bit by bit from the least significant bit of
// each block and emits a symbol at every leaf. Only RemainingBits bits
// of the last block are consumed.
func (d *decoder) unpack(w io.Writer, r io.Reader) error {
	if d.header.NumberOfBlocks == 0 {
		return nil
	}

	batch := d.opts.bufferBlocks() * 16
	out := make([]byte, 0, batch)
	flush := func() error {
		if len(out) == 0 {
			return nil
		}
		if _, err := w.Write(out); err != nil {
			return errors.Wrapf(err, "failed to write %d bytes", len(out))
		}
		out = out[:0]
		return nil
	}

	nodes := d.a.nodes
	br := NewBlockReader(r, d.header.NumberOfBlocks, d.opts.bufferBlocks())
	cur := d.root
	for {
		block, last, err := br.ReadBlock()
		if err != nil {
			return errors.WithStack(err)
		}

		bits := BlockBits
		if last {
			bits = int(d.header.RemainingBits)
		}
		for i := 0; i < bits; i += 1 {
			if block&1 == 1 {
				cur = nodes[cur].right
			} else {
				cur = nodes[cur].left
			}
			block >>= 1

			if cur == nilNode {
				return corruptf("bit stream leaves the code tree")
			}
			if nodes[cur].kind != kindLeaf {
				continue
			}
			out = append(out, nodes[cur].symbol)
			cur = d.root
			if len(out) == batch {
				if err := flush(); err != nil {
					return errors.WithStack(err)
				}
			}
		}
		if last {
			break
		}
	}
	if cur != d.root {
		return corruptf("bit stream ends inside a code")
	}
	return flush()
}

// Decode decompresses the archive read from r into w.
func Decode(w io.Writer, r io.Reader, opts *Options) error {
	info, err := readArchiveInfo(r)
	if err != nil {
		return errors.WithStack(err)
	}
	return decodeData(w, r, info, opts)
}

func decodeData(w io.Writer, r io.Reader, info *ArchiveInfo, opts *Options) error {
	dec, err := newDecoder(info, opts)
	if err != nil {
		return errors.WithStack(err)
	}
	defer dec.release()

	if err := dec.unpack(w, r); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
