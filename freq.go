package huff

import (
	"io"

	"github.com/pkg/errors"
)

// Frequency holds the occurrence count of every byte value of one input.
type Frequency struct {
	counts [maxSymbols]uint64
	total  uint64
}

func (f *Frequency) Count(symbol byte) uint64 {
	return f.counts[symbol]
}

// Total is the number of bytes scanned.
func (f *Frequency) Total() uint64 {
	return f.total
}

// Distinct is the number of byte values with a non-zero count.
func (f *Frequency) Distinct() int {
	n := 0
	for _, c := range f.counts {
		if 0 < c {
			n += 1
		}
	}
	return n
}

func (f *Frequency) add(data []byte) {
	for _, b := range data {
		f.counts[b] += 1
	}
	f.total += uint64(len(data))
}

// CountFrequency reads r until io.EOF and counts every byte value.
func CountFrequency(r io.Reader) (*Frequency, error) {
	f := new(Frequency)
	buf := make([]byte, BufferSize)
	for {
		n, err := r.Read(buf)
		f.add(buf[:n])
		if err != nil {
			if errors.Is(err, io.EOF) {
				return f, nil
			}
			return nil, errors.Wrapf(err, "failed to read source: offset=%d", f.total)
		}
	}
}
