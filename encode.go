package huff

import (
	"io"

	"github.com/pkg/errors"
)

// encoder is the state of one Encode call.
type encoder struct {
	a     *arena
	q     *queue
	root  nodeIndex
	table *CodeTable
	opts  *Options
}

func newEncoder(opts *Options) *encoder {
	return &encoder{
		a:    newArena(2 * maxSymbols),
		root: nilNode,
		opts: opts,
	}
}

func (e *encoder) release() {
	e.a.reset()
	e.q = nil
	e.root = nilNode
}

func (e *encoder) buildCodeTable(freq *Frequency) error {
	e.q = buildQueue(e.a, freq)

	root, err := buildTree(e.a, e.q)
	if err != nil {
		return errors.WithStack(err)
	}
	e.root = root

	table, err := generateCodeTable(e.a, e.root)
	if err != nil {
		return errors.WithStack(err)
	}
	e.table = table
	return nil
}

func (e *encoder) pack(w io.Writer, r io.Reader, total uint64) (uint64, uint16, error) {
	bw := NewBlockWriter(w, e.opts.bufferBlocks())
	buf := make([]byte, BufferSize)
	read := uint64(0)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			c, ok := e.table.Lookup(b)
			if ok != true {
				return 0, 0, errors.Errorf("symbol %#02x not in code table: source changed while encoding", b)
			}
			if err := bw.WriteCode(c.Code, c.Length); err != nil {
				return 0, 0, errors.WithStack(err)
			}
		}
		read += uint64(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, 0, errors.Wrapf(err, "failed to read source: offset=%d", read)
		}
	}
	if read != total {
		return 0, 0, errors.Errorf("source size changed while encoding: %d -> %d bytes", total, read)
	}
	if err := bw.Flush(); err != nil {
		return 0, 0, errors.WithStack(err)
	}
	return bw.Blocks(), bw.RemainingBits(), nil
}

// Encode compresses r into w. r is read twice: once to count byte
// frequencies and once to pack codes. The code table and data are
// written first, then w seeks back to write the header. Empty input
// produces an archive holding only a zero header.
func Encode(w io.WriteSeeker, r io.ReadSeeker, opts *Options) error {
	srcStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "failed to seek source")
	}
	dstStart, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "failed to seek destination")
	}

	freq, err := CountFrequency(r)
	if err != nil {
		return errors.WithStack(err)
	}

	enc := newEncoder(opts)
	defer enc.release()

	if err := enc.buildCodeTable(freq); err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return writeHeader(w, Header{})
		}
		return errors.WithStack(err)
	}

	if _, err := w.Seek(dstStart+HeaderSize, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek past header")
	}
	entries := enc.table.Entries()
	if err := writeCodeTable(w, entries); err != nil {
		return errors.WithStack(err)
	}

	if _, err := r.Seek(srcStart, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to rewind source")
	}
	blocks, remaining, err := enc.pack(w, r, freq.Total())
	if err != nil {
		return errors.WithStack(err)
	}

	dstEnd, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "failed to seek destination")
	}
	if _, err := w.Seek(dstStart, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek to header")
	}
	h := Header{
		TableLength:    uint16(len(entries)),
		NumberOfBlocks: blocks,
		RemainingBits:  remaining,
	}
	if err := writeHeader(w, h); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Seek(dstEnd, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek to end of archive")
	}
	return nil
}
