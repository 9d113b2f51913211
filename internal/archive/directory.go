package archive

import (
	"io"
	"path/filepath"
)

// directory is the in-memory image of the archive's fixed 2 MiB FAT
// region: an ordered array of MaxEntries 200-byte slots. A slot is
// present iff its filename is non-empty; the first empty slot
// terminates enumeration (spec.md §3).
type directory struct {
	entries [MaxEntries]dirEntry
}

// loadDirectory reads the first DirectorySize bytes of r into a fresh
// directory. A short read is a CorruptArchive error.
func loadDirectory(r io.ReaderAt) (*directory, error) {
	buf := make([]byte, DirectorySize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, &CorruptArchiveError{Reason: "directory read short: " + err.Error()}
	}
	d := &directory{}
	for i := 0; i < MaxEntries; i++ {
		copy(d.entries[i][:], buf[i*DirEntrySize:(i+1)*DirEntrySize])
	}
	return d, nil
}

// store writes the directory back to offset 0 of w.
func (d *directory) store(w io.WriterAt) error {
	buf := make([]byte, DirectorySize)
	for i := 0; i < MaxEntries; i++ {
		copy(buf[i*DirEntrySize:(i+1)*DirEntrySize], d.entries[i][:])
	}
	_, err := w.WriteAt(buf, 0)
	return err
}

// present returns a snapshot of every occupied slot, in slot order,
// stopping at the first empty slot.
func (d *directory) present() []entryView {
	var out []entryView
	for i := 0; i < MaxEntries; i++ {
		e := &d.entries[i]
		if !e.present() {
			break
		}
		out = append(out, entryView{slot: i, name: e.name(), blockAddress: e.blockAddress(), size: e.size()})
	}
	return out
}

// entryView is a read-only snapshot of one directory slot.
type entryView struct {
	slot         int
	name         string
	blockAddress uint64
	size         uint64
}

const noSlot = -1

// find returns the slot index of the entry whose filename matches the
// basename of name, scanning only up to the first empty slot (per
// spec.md §4.2). Returns noSlot if not found.
func (d *directory) find(name string) int {
	base := filepath.Base(name)
	for i := 0; i < MaxEntries; i++ {
		e := &d.entries[i]
		if !e.present() {
			break
		}
		if e.name() == base {
			return i
		}
	}
	return noSlot
}

const full = -1

// firstEmpty returns the lowest empty slot index, or full if the
// directory is saturated at MaxEntries.
func (d *directory) firstEmpty() int {
	for i := 0; i < MaxEntries; i++ {
		if !d.entries[i].present() {
			return i
		}
	}
	return full
}

// setEntry populates slot with a basename-only filename, first block
// index, and size.
func (d *directory) setEntry(slot int, name string, firstBlock, size uint64) {
	e := &d.entries[slot]
	e.clear()
	e.setName(filepath.Base(name))
	e.setBlockAddress(firstBlock)
	e.setSize(size)
}

// clearEntry zeroes slot and compacts the directory by shifting every
// subsequent present entry down by one, preserving the invariant that
// the first empty slot terminates enumeration (spec.md §9).
func (d *directory) clearEntry(slot int) {
	i := slot
	for i+1 < MaxEntries && d.entries[i+1].present() {
		d.entries[i] = d.entries[i+1]
		i++
	}
	d.entries[i].clear()
}
