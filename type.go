package huff

const (
	// BlockBits is the width of one packed data block.
	BlockBits = 32

	// BufferSize is the default number of blocks held in memory before a flush.
	BufferSize = 1024

	// HeaderSize is the encoded size of Header.
	HeaderSize = 2 + 8 + 2

	// CodeEntrySize is the encoded size of one CodeEntry.
	CodeEntrySize = 1 + 1 + 4

	blockBytes = BlockBits / 8
	maxSymbols = 256
)

type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Header is the fixed record at the start of an archive.
type Header struct {
	TableLength    uint16
	NumberOfBlocks uint64
	RemainingBits  uint16
}

// CodeEntry is one row of the code table. Code holds Length bits in
// stream order: bit 0 is the first bit written.
type CodeEntry struct {
	Symbol byte
	Length uint8
	Code   uint32
}

// Options controls buffering of Encode and Decode.
type Options struct {
	// BufferBlocks is the number of blocks packed or unpacked per batch
	// (default BufferSize).
	BufferBlocks int
}

func DefaultOptions() *Options {
	return &Options{
		BufferBlocks: BufferSize,
	}
}

func (o *Options) bufferBlocks() int {
	if o == nil || o.BufferBlocks < 1 {
		return BufferSize
	}
	return o.BufferBlocks
}
