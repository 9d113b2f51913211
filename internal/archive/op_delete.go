package archive

import (
	"errors"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/ha1tch/star/internal/starlog"
)

// Delete removes names from the archive at path, per spec.md §4.7.
// For each name found, every block in its chain is marked free, then
// its directory entry is cleared (with compaction, spec.md §9). pack
// is not implied — freed blocks remain until a later pack. Names not
// present are reported but do not abort the remaining deletions; an
// I/O error on the archive stops the operation after the names already
// processed.
func Delete(names []string, path string, log starlog.Logger) error {
	a, err := openReadWrite(path)
	if err != nil {
		return err
	}
	defer a.Close()

	var result *multierror.Error
	for _, name := range names {
		if err := deleteOne(a, name, log); err != nil {
			result = multierror.Append(result, err)
			var notFound *ErrFileNotFound
			if !errors.As(err, &notFound) {
				break
			}
		}
	}

	if err := a.dir.store(a.f); err != nil {
		return &IoError{Op: "store directory", Path: path, Err: err}
	}
	return result.ErrorOrNil()
}

func deleteOne(a *Archive, name string, log starlog.Logger) error {
	base := filepath.Base(name)
	slot := a.dir.find(base)
	if slot == noSlot {
		log.Error("file not in archive: %s", base)
		return &ErrFileNotFound{Name: base}
	}

	e := &a.dir.entries[slot]
	if e.size() > 0 {
		for idx, blk := range a.walk(e.blockAddress()) {
			blk.setFree(true)
			if err := a.writeBlock(idx, blk); err != nil {
				return err
			}
			log.Verbose("freed block #%d for %s", idx, base)
		}
	}
	a.dir.clearEntry(slot)
	log.Verbose("cleared directory entry for %s", base)
	return nil
}
