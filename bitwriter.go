package huff

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// BlockWriter packs variable length codes into 32 bit blocks, filling
// each block from its least significant bit. Blocks are written little
// endian in batches.
type BlockWriter struct {
	out       io.Writer
	buf       []uint32
	raw       []byte
	cache     uint32
	bits      uint8
	blocks    uint64
	remaining uint16
}

func (w *BlockWriter) WriteCode(code uint32, length uint8) error {
	if length == 0 || BlockBits < length {
		return errors.Wrapf(ErrCodeTooLong, "invalid code length: %d", length)
	}
	if length < BlockBits && code>>length != 0 {
		return errors.Errorf("code %#x has bits above length %d", code, length)
	}

	free := BlockBits - w.bits
	if length < free {
		w.cache |= code << w.bits
		w.bits += length
		return nil
	}

	// low part completes the current block, high part starts the next one
	w.cache |= code << w.bits
	if err := w.push(w.cache); err != nil {
		return errors.WithStack(err)
	}
	w.cache = 0
	w.bits = 0
	if spill := length - free; 0 < spill {
		w.cache = code >> free
		w.bits = spill
	}
	return nil
}

func (w *BlockWriter) push(block uint32) error {
	w.buf = append(w.buf, block)
	w.blocks += 1
	w.remaining = BlockBits
	if len(w.buf) < cap(w.buf) {
		return nil
	}
	return w.flushBatch()
}

func (w *BlockWriter) flushBatch() error {
	if len(w.buf) == 0 {
		return nil
	}
	raw := w.raw[:len(w.buf)*blockBytes]
	for i, b := range w.buf {
		binary.LittleEndian.PutUint32(raw[i*blockBytes:], b)
	}
	if _, err := w.out.Write(raw); err != nil {
		return errors.Wrapf(err, "failed to write %d blocks", len(w.buf))
	}
	w.buf = w.buf[:0]
	return nil
}

// Flush writes the partially filled block and every buffered block.
// Unused high bits of the last block are zero.
func (w *BlockWriter) Flush() error {
	if 0 < w.bits {
		used := w.bits
		if err := w.push(w.cache); err != nil {
			return errors.WithStack(err)
		}
		w.remaining = uint16(used)
		w.cache = 0
		w.bits = 0
	}
	return w.flushBatch()
}

// Blocks is the number of blocks emitted so far.
func (w *BlockWriter) Blocks() uint64 {
	return w.blocks
}

// RemainingBits is the number of significant bits in the last emitted
// block, 0 when no block was emitted.
func (w *BlockWriter) RemainingBits() uint16 {
	return w.remaining
}

func NewBlockWriter(out io.Writer, bufferBlocks int) *BlockWriter {
	if bufferBlocks < 1 {
		bufferBlocks = BufferSize
	}
	return &BlockWriter{
		out: out,
		buf: make([]uint32, 0, bufferBlocks),
		raw: make([]byte, bufferBlocks*blockBytes),
	}
}
