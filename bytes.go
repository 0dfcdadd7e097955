package huff

import (
	"bytes"

	"github.com/pkg/errors"
)

// EncodeBytes compresses data in memory.
func EncodeBytes(data []byte) ([]byte, error) {
	out := newSeekBuffer(HeaderSize + maxSymbols*CodeEntrySize + len(data))
	if err := Encode(out, bytes.NewReader(data), nil); err != nil {
		return nil, errors.WithStack(err)
	}
	return out.Bytes(), nil
}

// DecodeBytes decompresses an archive held in memory.
func DecodeBytes(archive []byte) ([]byte, error) {
	r := bytes.NewReader(archive)
	info, err := readArchiveInfo(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if size := info.Size(); size != int64(len(archive)) {
		return nil, corruptf("archive size %d does not match header (%d)", len(archive), size)
	}

	out := bytes.NewBuffer(make([]byte, 0, len(archive)))
	if err := decodeData(out, r, info, nil); err != nil {
		return nil, errors.WithStack(err)
	}
	return out.Bytes(), nil
}
