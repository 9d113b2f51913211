package archive

import (
	"os"

	"github.com/ha1tch/star/internal/starlog"
)

// Append adds new files to the existing archive at path, per
// spec.md §4.9, sharing create's per-file allocation primitives: each
// input is assigned the first empty directory slot and a fresh run of
// blocks appended at end-of-archive. Unlike create, exceeding the
// directory's MaxEntries capacity is fatal for the whole operation —
// append never truncates the input list (spec.md §7).
func Append(names []string, path string, log starlog.Logger) error {
	if len(names) == 0 {
		return nil
	}

	a, err := openReadWrite(path)
	if err != nil {
		return err
	}
	defer a.Close()

	existing := len(a.dir.present())
	if existing+len(names) > MaxEntries {
		log.Error("append would exceed the %d-entry directory capacity", MaxEntries)
		return &CapacityError{Reason: "directory full"}
	}

	sizes := make([]uint64, len(names))
	for i, name := range names {
		info, err := os.Stat(name)
		if err != nil {
			return &FileMissingError{Path: name, Err: err}
		}
		sizes[i] = uint64(info.Size())
	}

	for i, name := range names {
		slot := a.dir.firstEmpty()
		if slot == full {
			return &CapacityError{Reason: "directory full"}
		}
		firstBlock, err := a.totalBlocks()
		if err != nil {
			return err
		}
		blocks := blocksNeeded(sizes[i])

		a.dir.setEntry(slot, name, firstBlock, sizes[i])
		log.Verbose("appending file %s at slot %d, block %d", name, slot, firstBlock)
		if err := writeFileBlocks(a, name, firstBlock, blocks, log); err != nil {
			return err
		}
	}

	if err := a.dir.store(a.f); err != nil {
		return &IoError{Op: "store directory", Path: path, Err: err}
	}
	return nil
}
