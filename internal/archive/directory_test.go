package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryStoreLoadRoundTrip(t *testing.T) {
	d := &directory{}
	d.setEntry(0, "a.txt", 0, 10)
	d.setEntry(1, "b.txt", 1, 20)

	backing := make([]byte, DirectorySize)
	w := &memWriterAt{buf: backing}
	require.NoError(t, d.store(w))

	loaded, err := loadDirectory(&memReaderAt{buf: backing})
	require.NoError(t, err)

	entries := loaded.present()
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].name)
	assert.Equal(t, uint64(10), entries[0].size)
	assert.Equal(t, "b.txt", entries[1].name)
	assert.Equal(t, uint64(1), entries[1].blockAddress)
}

func TestDirectoryPresentStopsAtFirstEmptySlot(t *testing.T) {
	d := &directory{}
	d.setEntry(0, "a.txt", 0, 1)
	d.setEntry(2, "c.txt", 2, 1) // slot 1 left empty
	assert.Len(t, d.present(), 1)
}

func TestDirectoryFindUsesBasename(t *testing.T) {
	d := &directory{}
	d.setEntry(0, "sub/dir/a.txt", 0, 1)
	assert.Equal(t, 0, d.find("a.txt"))
	assert.Equal(t, 0, d.find("other/a.txt"))
	assert.Equal(t, noSlot, d.find("missing.txt"))
}

func TestDirectoryFirstEmptyAndFull(t *testing.T) {
	d := &directory{}
	assert.Equal(t, 0, d.firstEmpty())
	d.setEntry(0, "a.txt", 0, 1)
	assert.Equal(t, 1, d.firstEmpty())

	for i := 0; i < MaxEntries; i++ {
		d.setEntry(i, "f", uint64(i), 1)
	}
	assert.Equal(t, full, d.firstEmpty())
}

func TestDirectoryClearEntryCompacts(t *testing.T) {
	d := &directory{}
	d.setEntry(0, "a.txt", 0, 1)
	d.setEntry(1, "b.txt", 1, 2)
	d.setEntry(2, "c.txt", 2, 3)

	d.clearEntry(0)

	entries := d.present()
	require.Len(t, entries, 2)
	assert.Equal(t, "b.txt", entries[0].name)
	assert.Equal(t, "c.txt", entries[1].name)
}

// memReaderAt/memWriterAt back the directory load/store round-trip
// test without needing a real file on disk.
type memReaderAt struct{ buf []byte }

func (m *memReaderAt) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, m.buf[off:])
	return n, nil
}

type memWriterAt struct{ buf []byte }

func (m *memWriterAt) WriteAt(p []byte, off int64) (int, error) {
	n := copy(m.buf[off:], p)
	return n, nil
}
