package huff

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func roundTrip(tb testing.TB, data []byte) []byte {
	tb.Helper()

	archive, err := EncodeBytes(data)
	if err != nil {
		tb.Fatalf("%+v", err)
	}
	out, err := DecodeBytes(archive)
	if err != nil {
		tb.Fatalf("%+v", err)
	}
	if bytes.Equal(data, out) != true {
		tb.Fatalf("round trip mismatch: len %d -> %d", len(data), len(out))
	}
	return archive
}

func TestEncodeDecode(t *testing.T) {
	t.Run("AAABBC", func(tt *testing.T) {
		archive := roundTrip(tt, []byte("AAABBC"))
		expect := []byte{
			// header
			0x03, 0x00,
			0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x09, 0x00,
			// code table
			'A', 1, 0x00, 0x00, 0x00, 0x00,
			'B', 2, 0x03, 0x00, 0x00, 0x00,
			'C', 2, 0x01, 0x00, 0x00, 0x00,
			// data
			0xf8, 0x00, 0x00, 0x00,
		}
		if cmp.Equal(archive, expect) != true {
			tt.Errorf("% x != % x", archive, expect)
		}
	})
	t.Run("empty", func(tt *testing.T) {
		archive := roundTrip(tt, []byte{})
		expect := make([]byte, HeaderSize)
		if cmp.Equal(archive, expect) != true {
			tt.Errorf("% x != % x", archive, expect)
		}
	})
	t.Run("single symbol", func(tt *testing.T) {
		for _, size := range []int{1, 31, 32, 33, 64, 1000} {
			data := bytes.Repeat([]byte{'x'}, size)
			archive := roundTrip(tt, data)

			info, err := Inspect(bytes.NewReader(archive))
			if err != nil {
				tt.Fatalf("%+v", err)
			}
			expect := []CodeEntry{{Symbol: 'x', Length: 1, Code: 0}}
			if cmp.Equal(info.Entries, expect) != true {
				tt.Errorf("%+v != %+v", info.Entries, expect)
			}
		}
	})
	t.Run("nul bytes", func(tt *testing.T) {
		roundTrip(tt, []byte{0x00})
		roundTrip(tt, []byte{0x00, 0x00, 0x00, 0x00})
		roundTrip(tt, []byte{0x00, 0x01, 0x00, 0x02, 0x00})
	})
	t.Run("all byte values", func(tt *testing.T) {
		data := make([]byte, 0, 3*maxSymbols)
		for r := 0; r < 3; r += 1 {
			for i := 0; i < maxSymbols; i += 1 {
				data = append(data, byte(i))
			}
		}
		archive := roundTrip(tt, data)

		info, err := Inspect(bytes.NewReader(archive))
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		if info.Header.TableLength != maxSymbols {
			tt.Errorf("table length=%d", info.Header.TableLength)
		}
	})
	t.Run("random", func(tt *testing.T) {
		rnd := rand.New(rand.NewSource(4))
		for i := 0; i < 100; i += 1 {
			data := make([]byte, rnd.Intn(1<<16))
			alphabet := 1 + rnd.Intn(maxSymbols)
			for j := range data {
				// skewed distribution for longer codes
				data[j] = byte(rnd.Intn(1 + rnd.Intn(alphabet)))
			}
			roundTrip(tt, data)
		}
	})
	t.Run("text", func(tt *testing.T) {
		data := bytes.Repeat([]byte("Huffman coding assigns shorter codes to frequent bytes.\n"), 200)
		archive := roundTrip(tt, data)
		if len(data) <= len(archive) {
			tt.Errorf("archive %d not smaller than input %d", len(archive), len(data))
		}
	})
}

// runReader yields symbol i repeated runs[i] times without holding the
// data in memory.
type runReader struct {
	runs   []uint64
	symbol int
	left   uint64
	pos    int64
}

func (r *runReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		for r.left == 0 {
			if len(r.runs) <= r.symbol+1 {
				r.pos += int64(n)
				return n, io.EOF
			}
			r.symbol += 1
			r.left = r.runs[r.symbol]
		}
		p[n] = byte(r.symbol)
		r.left -= 1
		n += 1
	}
	r.pos += int64(n)
	return n, nil
}

func (r *runReader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent && offset == 0 {
		return r.pos, nil
	}
	if whence == io.SeekStart && offset == 0 {
		r.symbol, r.left, r.pos = -1, 0, 0
		return 0, nil
	}
	return 0, errors.Errorf("unsupported seek: offset=%d whence=%d", offset, whence)
}

func newRunReader(runs []uint64) *runReader {
	return &runReader{runs: runs, symbol: -1}
}

func TestEncodeCodeTooLong(t *testing.T) {
	if testing.Short() {
		t.Skip("reads about 24MB")
	}

	// fibonacci counts build a chain: 35 symbols put the deepest leaf at 34
	runs := make([]uint64, 35)
	runs[0], runs[1] = 1, 1
	for i := 2; i < len(runs); i += 1 {
		runs[i] = runs[i-1] + runs[i-2]
	}

	out := newSeekBuffer(0)
	err := Encode(out, newRunReader(runs), nil)
	if errors.Is(err, ErrCodeTooLong) != true {
		t.Errorf("expect ErrCodeTooLong: %+v", err)
	}

	// 32 symbols still fit in a block
	out = newSeekBuffer(0)
	if err := Encode(out, newRunReader(runs[:32]), nil); err != nil {
		t.Fatalf("%+v", err)
	}
	decoded := bytes.NewBuffer(nil)
	if err := Decode(decoded, bytes.NewReader(out.Bytes()), nil); err != nil {
		t.Fatalf("%+v", err)
	}
	freq, err := CountFrequency(decoded)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for i, c := range runs[:32] {
		if freq.Count(byte(i)) != c {
			t.Errorf("symbol %d: count %d want %d", i, freq.Count(byte(i)), c)
		}
	}
}

func TestDeterministic(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	data := make([]byte, 50000)
	for i := range data {
		data[i] = byte(rnd.Intn(40))
	}

	a1, err := EncodeBytes(data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	a2, err := EncodeBytes(data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if bytes.Equal(a1, a2) != true {
		t.Errorf("archives differ")
	}
}

func TestEncodeDecodeOptions(t *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	data := make([]byte, 20000)
	for i := range data {
		data[i] = byte(rnd.Intn(7))
	}

	expect, err := EncodeBytes(data)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	for _, n := range []int{1, 2, 3, 17, BufferSize} {
		opts := &Options{BufferBlocks: n}
		out := newSeekBuffer(0)
		if err := Encode(out, bytes.NewReader(data), opts); err != nil {
			t.Fatalf("buffer=%d: %+v", n, err)
		}
		if bytes.Equal(out.Bytes(), expect) != true {
			t.Errorf("buffer=%d: archive differs", n)
		}

		decoded := bytes.NewBuffer(nil)
		if err := Decode(decoded, bytes.NewReader(out.Bytes()), opts); err != nil {
			t.Fatalf("buffer=%d: %+v", n, err)
		}
		if bytes.Equal(decoded.Bytes(), data) != true {
			t.Errorf("buffer=%d: round trip mismatch", n)
		}
	}
}

func TestPaddingExclusion(t *testing.T) {
	// 'A'=0 so zero padding would decode as extra 'A's
	data := []byte("AAABBC")
	archive, err := EncodeBytes(data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for rem := uint16(1); rem < 9; rem += 1 {
		patched := append([]byte(nil), archive...)
		binary.LittleEndian.PutUint16(patched[10:], rem)
		out := bytes.NewBuffer(nil)
		err := Decode(out, bytes.NewReader(patched), nil)
		if err == nil && len(data) <= out.Len() {
			t.Errorf("remaining=%d: decoded %d bytes", rem, out.Len())
		}
	}

	out, err := DecodeBytes(archive)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(out) != len(data) {
		t.Errorf("decoded %d bytes, want %d", len(out), len(data))
	}
}

func TestDecodeCorrupt(t *testing.T) {
	archive, err := EncodeBytes([]byte("abracadabra, abracadabra"))
	if err != nil {
		t.Fatalf("%+v", err)
	}

	patch := func(fn func(b []byte)) []byte {
		b := append([]byte(nil), archive...)
		fn(b)
		return b
	}
	tests := map[string][]byte{
		"no header":        {},
		"short header":     archive[:HeaderSize-1],
		"short table":      archive[:HeaderSize+CodeEntrySize+1],
		"missing blocks":   archive[:len(archive)-blockBytes],
		"trailing garbage": append(append([]byte(nil), archive...), 0xff),
		"table too long": patch(func(b []byte) {
			binary.LittleEndian.PutUint16(b[0:], maxSymbols+1)
		}),
		"remaining too large": patch(func(b []byte) {
			binary.LittleEndian.PutUint16(b[10:], BlockBits+1)
		}),
		"no remaining bits": patch(func(b []byte) {
			binary.LittleEndian.PutUint16(b[10:], 0)
		}),
		"zero code length": patch(func(b []byte) {
			b[HeaderSize+1] = 0
		}),
		"code above length": patch(func(b []byte) {
			b[HeaderSize+1] = 1
			b[HeaderSize+2] = 0xfe
		}),
		"duplicate symbol": patch(func(b []byte) {
			b[HeaderSize+CodeEntrySize] = b[HeaderSize]
		}),
		"empty with table": {
			0x01, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00,
			'a', 1, 0x00, 0x00, 0x00, 0x00,
		},
	}
	for name, data := range tests {
		t.Run(name, func(tt *testing.T) {
			_, err := DecodeBytes(data)
			if errors.Is(err, ErrCorruptArchive) != true {
				tt.Errorf("expect ErrCorruptArchive: %+v", err)
			}
		})
	}
}

func TestDecodeDeadEnd(t *testing.T) {
	// single symbol tree has no right child: a 1 bit is invalid
	archive := []byte{
		0x01, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x02, 0x00,
		'x', 1, 0x00, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
	}
	_, err := DecodeBytes(archive)
	if errors.Is(err, ErrCorruptArchive) != true {
		t.Errorf("expect ErrCorruptArchive: %+v", err)
	}

	// stream ends in the middle of a 2 bit code
	archive = []byte{
		0x02, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x03, 0x00,
		'a', 1, 0x00, 0x00, 0x00, 0x00,
		'b', 2, 0x01, 0x00, 0x00, 0x00,
		0x04, 0x00, 0x00, 0x00,
	}
	_, err = DecodeBytes(archive)
	if errors.Is(err, ErrCorruptArchive) != true {
		t.Errorf("expect ErrCorruptArchive: %+v", err)
	}
}
