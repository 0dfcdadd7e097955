package huff

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// BlockReader reads a known number of little endian 32 bit blocks in
// batches.
type BlockReader struct {
	r      io.Reader
	raw    []byte
	buf    []uint32
	pos    int
	unread uint64
}

func (br *BlockReader) fill() error {
	n := uint64(cap(br.buf))
	if br.unread < n {
		n = br.unread
	}
	raw := br.raw[:n*blockBytes]
	if _, err := io.ReadFull(br.r, raw); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return corruptf("data section truncated: %d blocks missing", br.unread)
		}
		return errors.Wrapf(err, "failed to read %d blocks", n)
	}

	br.buf = br.buf[:n]
	for i := range br.buf {
		br.buf[i] = binary.LittleEndian.Uint32(raw[i*blockBytes:])
	}
	br.pos = 0
	br.unread -= n
	return nil
}

// ReadBlock returns the next block and whether it is the last one.
// It returns io.EOF once every block has been read.
func (br *BlockReader) ReadBlock() (uint32, bool, error) {
	if br.pos == len(br.buf) {
		if br.unread == 0 {
			return 0, false, io.EOF
		}
		if err := br.fill(); err != nil {
			return 0, false, errors.WithStack(err)
		}
	}
	block := br.buf[br.pos]
	br.pos += 1
	last := br.pos == len(br.buf) && br.unread == 0
	return block, last, nil
}

func NewBlockReader(r io.Reader, numberOfBlocks uint64, bufferBlocks int) *BlockReader {
	if bufferBlocks < 1 {
		bufferBlocks = BufferSize
	}
	return &BlockReader{
		r:      r,
		raw:    make([]byte, bufferBlocks*blockBytes),
		buf:    make([]uint32, 0, bufferBlocks),
		unread: numberOfBlocks,
	}
}
