package huff

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("AAABBC"))
	f.Add([]byte{0x00, 0x00, 0xff})
	f.Fuzz(func(t *testing.T, source []byte) {
		archive, err := EncodeBytes(source)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		data, err := DecodeBytes(archive)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if bytes.Equal(data, source) != true {
			t.Fatalf("round trip mismatch: len %d -> %d", len(source), len(data))
		}
	})
}

func FuzzDecodeBytes(f *testing.F) {
	for _, s := range [][]byte{{}, []byte("AAABBC"), []byte("abracadabra")} {
		archive, err := EncodeBytes(s)
		if err != nil {
			f.Fatalf("%+v", err)
		}
		f.Add(archive)
	}
	f.Fuzz(func(t *testing.T, archive []byte) {
		data, err := DecodeBytes(archive)
		if err != nil {
			if errors.Is(err, ErrCorruptArchive) != true {
				t.Fatalf("unexpected error: %+v", err)
			}
			return
		}
		info, err := Inspect(bytes.NewReader(archive))
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if limit := info.Header.NumberOfBlocks * BlockBits; limit < uint64(len(data)) {
			t.Fatalf("decoded %d bytes from %d bits", len(data), limit)
		}
	})
}
