package archive

// readBlock seeks to block idx's offset and reads one fixed-size block.
func (a *Archive) readBlock(idx uint64) (*block, error) {
	var b block
	n, err := a.f.ReadAt(b[:], blockOffset(idx))
	if err != nil || n != BlockSize {
		return nil, &IoError{Op: "readBlock", Path: a.f.Name(), Err: err}
	}
	return &b, nil
}

// writeBlock writes b at block idx's offset.
func (a *Archive) writeBlock(idx uint64, b *block) error {
	if _, err := a.f.WriteAt(b[:], blockOffset(idx)); err != nil {
		return &IoError{Op: "writeBlock", Path: a.f.Name(), Err: err}
	}
	return nil
}

// totalBlocks returns the number of blocks currently stored in the
// archive body, derived from the file's length.
func (a *Archive) totalBlocks() (uint64, error) {
	info, err := a.f.Stat()
	if err != nil {
		return 0, &IoError{Op: "stat", Path: a.f.Name(), Err: err}
	}
	bodyLen := info.Size() - DirectorySize
	if bodyLen <= 0 {
		return 0, nil
	}
	return uint64(bodyLen) / BlockSize, nil
}

// walk yields every (index, block) pair in the chain starting at
// start, following next pointers until a block with next=0 is
// yielded. It is the lazy-sequence abstraction spec.md §9 calls for
// in place of hand-threaded pointers.
func (a *Archive) walk(start uint64) func(yield func(uint64, *block) bool) {
	return func(yield func(uint64, *block) bool) {
		idx := start
		for {
			b, err := a.readBlock(idx)
			if err != nil {
				return
			}
			if !yield(idx, b) {
				return
			}
			if b.next() == 0 {
				return
			}
			idx = b.next()
		}
	}
}

// appendBlock writes b at end-of-archive and returns its new index.
func (a *Archive) appendBlock(b *block) (uint64, error) {
	total, err := a.totalBlocks()
	if err != nil {
		return 0, err
	}
	if err := a.writeBlock(total, b); err != nil {
		return 0, err
	}
	return total, nil
}

// markFree reads block idx, sets isFree, and writes it back.
func (a *Archive) markFree(idx uint64) error {
	b, err := a.readBlock(idx)
	if err != nil {
		return err
	}
	b.setFree(true)
	return a.writeBlock(idx, b)
}

// truncateTrailingFree scans backward from the last block while
// isFree=1 and truncates the archive to drop that trailing run. At
// least one non-free block (or zero blocks) remains, per spec.md §3
// invariant 3.
func (a *Archive) truncateTrailingFree() error {
	total, err := a.totalBlocks()
	if err != nil {
		return err
	}
	keep := total
	for keep > 0 {
		b, err := a.readBlock(keep - 1)
		if err != nil {
			return err
		}
		if !b.isFree() {
			break
		}
		keep--
	}
	if keep == total {
		return nil
	}
	if err := a.f.Truncate(blockOffset(keep)); err != nil {
		return &IoError{Op: "truncate", Path: a.f.Name(), Err: err}
	}
	return nil
}
