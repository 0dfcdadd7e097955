package huff

import (
	"io"

	"github.com/pkg/errors"
)

// seekBuffer is an in-memory io.WriteSeeker.
type seekBuffer struct {
	buf []byte
	pos int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if int64(len(b.buf)) < end {
		if int64(cap(b.buf)) < end {
			grown := make([]byte, end, 2*end)
			copy(grown, b.buf)
			b.buf = grown
		} else {
			b.buf = b.buf[:end]
		}
	}
	copy(b.buf[b.pos:], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	next := int64(0)
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = b.pos + offset
	case io.SeekEnd:
		next = int64(len(b.buf)) + offset
	default:
		return 0, errors.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, errors.Errorf("negative position: %d", next)
	}
	b.pos = next
	return next, nil
}

func (b *seekBuffer) Bytes() []byte {
	return b.buf
}

func newSeekBuffer(capacity int) *seekBuffer {
	return &seekBuffer{buf: make([]byte, 0, capacity)}
}
