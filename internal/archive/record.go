package archive

const (
	// DirEntrySize is the fixed size of one directory slot in bytes.
	DirEntrySize = 200
	// filenameFieldLen is the basename field width within a directory entry.
	filenameFieldLen = 176

	// MaxEntries is the maximum number of directory slots (spec.md §3).
	MaxEntries = 10000
	// DirectorySize is the fixed size of the directory region in bytes.
	DirectorySize = 2 * 1024 * 1024

	// BlockSize is the fixed size of one data block in bytes.
	BlockSize = 256 * 1024
	// blockHeaderLen is the combined size of a block's next/isFree fields.
	blockHeaderLen = 2 * octalFieldLen
	// PayloadSize is the usable file-data capacity of one block.
	PayloadSize = BlockSize - blockHeaderLen
)

// dirEntry is the raw 200-byte on-disk layout of one directory slot:
// a 176-byte NUL-terminated basename followed by two 12-byte octal
// fields (blockAddress, size).
type dirEntry [DirEntrySize]byte

func (e *dirEntry) present() bool {
	return e[0] != 0
}

func (e *dirEntry) name() string {
	i := 0
	for i < filenameFieldLen && e[i] != 0 {
		i++
	}
	return string(e[:i])
}

func (e *dirEntry) setName(name string) {
	for i := range e[:filenameFieldLen] {
		e[i] = 0
	}
	copy(e[:filenameFieldLen], name)
}

func (e *dirEntry) blockAddress() uint64 {
	return decodeOctal(e[filenameFieldLen : filenameFieldLen+octalFieldLen])
}

func (e *dirEntry) setBlockAddress(v uint64) {
	b := encodeOctal(v)
	copy(e[filenameFieldLen:filenameFieldLen+octalFieldLen], b[:])
}

func (e *dirEntry) size() uint64 {
	off := filenameFieldLen + octalFieldLen
	return decodeOctal(e[off : off+octalFieldLen])
}

func (e *dirEntry) setSize(v uint64) {
	off := filenameFieldLen + octalFieldLen
	b := encodeOctal(v)
	copy(e[off:off+octalFieldLen], b[:])
}

func (e *dirEntry) clear() {
	for i := range e {
		e[i] = 0
	}
}

// block is the raw 256 KiB on-disk layout of one data block: two
// 12-byte octal header fields (next, isFree) followed by the payload.
type block [BlockSize]byte

func (b *block) next() uint64 {
	return decodeOctal(b[0:octalFieldLen])
}

func (b *block) setNext(v uint64) {
	enc := encodeOctal(v)
	copy(b[0:octalFieldLen], enc[:])
}

func (b *block) isFree() bool {
	return decodeOctal(b[octalFieldLen:2*octalFieldLen]) == 1
}

func (b *block) setFree(free bool) {
	v := uint64(0)
	if free {
		v = 1
	}
	enc := encodeOctal(v)
	copy(b[octalFieldLen:2*octalFieldLen], enc[:])
}

func (b *block) payload() []byte {
	return b[blockHeaderLen:]
}

// blockOffset returns the archive byte offset of block index idx.
func blockOffset(idx uint64) int64 {
	return DirectorySize + int64(idx)*BlockSize
}

// blocksNeeded returns ceil(size / PayloadSize), the number of blocks
// required to store size bytes of payload.
func blocksNeeded(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	return (size + PayloadSize - 1) / PayloadSize
}
