package huff

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// ArchiveInfo is the header and code table of an archive.
type ArchiveInfo struct {
	Header  Header
	Entries []CodeEntry
}

// Size is the total archive size described by the header.
func (i *ArchiveInfo) Size() int64 {
	return int64(HeaderSize) +
		int64(i.Header.TableLength)*CodeEntrySize +
		int64(i.Header.NumberOfBlocks)*blockBytes
}

func (h Header) validate() error {
	if maxSymbols < h.TableLength {
		return corruptf("table length %d out of range", h.TableLength)
	}
	if BlockBits < h.RemainingBits {
		return corruptf("remaining bits %d exceed block width", h.RemainingBits)
	}
	if (math.MaxInt64-HeaderSize-maxSymbols*CodeEntrySize)/blockBytes < h.NumberOfBlocks {
		return corruptf("number of blocks %d out of range", h.NumberOfBlocks)
	}
	if h.NumberOfBlocks == 0 {
		if h.TableLength != 0 || h.RemainingBits != 0 {
			return corruptf("empty data with table=%d remaining=%d", h.TableLength, h.RemainingBits)
		}
		return nil
	}
	if h.TableLength == 0 {
		return corruptf("%d blocks without code table", h.NumberOfBlocks)
	}
	if h.RemainingBits == 0 {
		return corruptf("last block has no significant bits")
	}
	return nil
}

func (e CodeEntry) validate() error {
	if e.Length == 0 || BlockBits < e.Length {
		return corruptf("symbol %#02x: code length %d out of range", e.Symbol, e.Length)
	}
	if e.Length < BlockBits && e.Code>>e.Length != 0 {
		return corruptf("symbol %#02x: code %#x longer than %d bits", e.Symbol, e.Code, e.Length)
	}
	return nil
}

func writeHeader(w io.Writer, h Header) error {
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return errors.Wrapf(err, "failed to write header: %+v", h)
	}
	return nil
}

func readHeader(r io.Reader) (Header, error) {
	h := Header{}
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, corruptf("header truncated")
		}
		return Header{}, errors.Wrap(err, "failed to read header")
	}
	if err := h.validate(); err != nil {
		return Header{}, errors.WithStack(err)
	}
	return h, nil
}

func writeCodeTable(w io.Writer, entries []CodeEntry) error {
	if err := binary.Write(w, binary.LittleEndian, entries); err != nil {
		return errors.Wrapf(err, "failed to write code table: len=%d", len(entries))
	}
	return nil
}

func readCodeTable(r io.Reader, size uint16) ([]CodeEntry, error) {
	entries := make([]CodeEntry, size)
	if err := binary.Read(r, binary.LittleEndian, entries); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, corruptf("code table truncated: want %d entries", size)
		}
		return nil, errors.Wrap(err, "failed to read code table")
	}

	seen := [maxSymbols]bool{}
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, errors.WithStack(err)
		}
		if seen[e.Symbol] {
			return nil, corruptf("symbol %#02x listed twice", e.Symbol)
		}
		seen[e.Symbol] = true
	}
	return entries, nil
}

func readArchiveInfo(r io.Reader) (*ArchiveInfo, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	entries, err := readCodeTable(r, h.TableLength)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &ArchiveInfo{Header: h, Entries: entries}, nil
}

// Inspect reads and validates the header and code table of an archive
// without decoding its data.
func Inspect(r io.Reader) (*ArchiveInfo, error) {
	return readArchiveInfo(r)
}
