package archive

import (
	"errors"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/ha1tch/star/internal/starlog"
)

// Update replaces the contents of each named file already present in
// the archive at path, per spec.md §4.8. Shrinking or same-size
// replacement overwrites the existing chain prefix in place and frees
// the unused suffix; growing overwrites the existing chain and
// appends fresh blocks at end-of-archive, linking the old tail to the
// new blocks. blockAddress is left unchanged except when the file
// previously held zero blocks, in which case there is no existing
// chain to keep anchored and the entry is repointed at the newly
// appended chain. A name absent from the archive is reported but does
// not abort the remaining names; an input that cannot be opened, or an
// I/O error on the archive, stops the operation after the names
// already processed, whose new sizes are still written to the
// directory.
func Update(names []string, path string, log starlog.Logger) error {
	a, err := openReadWrite(path)
	if err != nil {
		return err
	}
	defer a.Close()

	var result *multierror.Error
	for _, name := range names {
		if err := updateOne(a, name, log); err != nil {
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

func updateOne(a *Archive, name string, log starlog.Logger) error {
	info, err := os.Stat(name)
	if err != nil {
		log.Error("error reading file %s, stopping update.", name)
		return &FileMissingError{Path: name, Err: err}
	}

	slot := a.dir.find(name)
	if slot == noSlot {
		log.Error("file not in archive... continuing...")
		return &ErrFileNotFound{Name: name}
	}

	f, err := os.Open(name)
	if err != nil {
		return &FileMissingError{Path: name, Err: err}
	}
	defer f.Close()

	e := &a.dir.entries[slot]
	oldSize := e.size()
	oldBlocks := blocksNeeded(oldSize)
	newSize := uint64(info.Size())
	newBlocks := blocksNeeded(newSize)
	head := e.blockAddress()

	log.Verbose("file %s has %d blocks and will require now %d blocks.", e.name(), oldBlocks, newBlocks)

	if newBlocks <= oldBlocks {
		if err := shrinkOrEqual(a, f, head, oldBlocks, newBlocks, log); err != nil {
			return err
		}
	} else {
		newHead, err := grow(a, f, head, oldBlocks, newBlocks, log)
		if err != nil {
			return err
		}
		if oldBlocks == 0 {
			e.setBlockAddress(newHead)
		}
	}

	e.setSize(newSize)
	return nil
}

// shrinkOrEqual overwrites the first newBlocks blocks of the chain
// starting at head with fresh payload, terminates the chain there,
// and frees whatever suffix remains beyond it.
func shrinkOrEqual(a *Archive, f *os.File, head, oldBlocks, newBlocks uint64, log starlog.Logger) error {
	if newBlocks == 0 {
		if oldBlocks == 0 {
			return nil
		}
		return freeChain(a, head, log)
	}

	current := head
	var suffixStart uint64
	for i := uint64(0); i < newBlocks; i++ {
		log.Verbose("reading block #%d", current)
		blk, err := a.readBlock(current)
		if err != nil {
			return err
		}
		fillPayload(blk, f)
		blk.setFree(false)

		last := i == newBlocks-1
		savedNext := blk.next()
		if last {
			blk.setNext(0)
		}
		if err := a.writeBlock(current, blk); err != nil {
			return err
		}
		if last {
			suffixStart = savedNext
			break
		}
		current = savedNext
	}
	if suffixStart != 0 {
		return freeChain(a, suffixStart, log)
	}
	return nil
}

// grow overwrites the existing oldBlocks-block chain with fresh
// payload, appends newBlocks-oldBlocks fresh blocks at end-of-archive,
// and links the old chain's tail to the first appended block. It
// returns the index of the first block actually holding data (the
// original head, or the first appended block if oldBlocks was 0).
func grow(a *Archive, f *os.File, head, oldBlocks, newBlocks uint64, log starlog.Logger) (uint64, error) {
	var lastExisting uint64
	current := head
	for i := uint64(0); i < oldBlocks; i++ {
		log.Verbose("reading block #%d", current)
		blk, err := a.readBlock(current)
		if err != nil {
			return 0, err
		}
		fillPayload(blk, f)
		blk.setFree(false)
		if err := a.writeBlock(current, blk); err != nil {
			return 0, err
		}
		lastExisting = current
		if i+1 < oldBlocks {
			current = blk.next()
		}
	}

	log.Verbose("starting to add new blocks")
	firstNew, err := a.totalBlocks()
	if err != nil {
		return 0, err
	}

	remaining := newBlocks - oldBlocks
	for i := uint64(0); i < remaining; i++ {
		var blk block
		fillPayload(&blk, f)
		blk.setFree(false)
		idx := firstNew + i
		next := uint64(0)
		if i+1 < remaining {
			next = idx + 1
		}
		blk.setNext(next)
		log.Verbose("new block at #%d, next=%d", idx, next)
		if _, err := a.appendBlock(&blk); err != nil {
			return 0, err
		}
	}

	if oldBlocks > 0 {
		last, err := a.readBlock(lastExisting)
		if err != nil {
			return 0, err
		}
		last.setNext(firstNew)
		if err := a.writeBlock(lastExisting, last); err != nil {
			return 0, err
		}
		return head, nil
	}
	return firstNew, nil
}

// freeChain walks from start to end-of-chain, marking every block free.
func freeChain(a *Archive, start uint64, log starlog.Logger) error {
	for idx, blk := range a.walk(start) {
		blk.setFree(true)
		if err := a.writeBlock(idx, blk); err != nil {
			return err
		}
		log.Verbose("marked block #%d free", idx)
	}
	return nil
}

// fillPayload reads up to PayloadSize bytes from f into blk's
// payload, zero-filling any remainder when f is exhausted.
func fillPayload(blk *block, f *os.File) {
	payload := blk.payload()
	n, _ := io.ReadFull(f, payload)
	for i := n; i < len(payload); i++ {
		payload[i] = 0
	}
}
