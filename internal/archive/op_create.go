package archive

import (
	"io"
	"os"

	"github.com/ha1tch/star/internal/starlog"
)

// Create packs inputs into a fresh archive at path, per spec.md §4.4.
// Preconditions: at least one input. More than MaxEntries inputs are
// truncated to MaxEntries with a warning. A missing input aborts the
// whole operation before anything is written (spec.md §9).
func Create(inputs []string, path string, log starlog.Logger) error {
	if len(inputs) < 1 {
		log.Error("no files to add...")
		return &UsageError{Reason: "create requires at least one input file"}
	}
	if len(inputs) > MaxEntries {
		log.Warn("star only supports up to %d files, since it has a 2MB FAT table", MaxEntries)
		inputs = inputs[:MaxEntries]
	}

	plan, err := planLayout(inputs, log)
	if err != nil {
		return err
	}

	a, err := createArchive(path)
	if err != nil {
		return err
	}
	defer a.Close()

	for i, p := range plan {
		a.dir.setEntry(i, p.input, p.firstBlock, p.size)
	}
	if err := a.dir.store(a.f); err != nil {
		return &IoError{Op: "store directory", Path: path, Err: err}
	}

	for _, p := range plan {
		if err := writeFileBlocks(a, p.input, p.firstBlock, p.blocks, log); err != nil {
			return err
		}
	}
	return nil
}

type fileLayout struct {
	input      string
	size       uint64
	blocks     uint64
	firstBlock uint64
}

// planLayout stats every input up front (no archive I/O yet) and
// assigns each one a contiguous run of block indices, in input order.
func planLayout(inputs []string, log starlog.Logger) ([]fileLayout, error) {
	plan := make([]fileLayout, len(inputs))
	var next uint64
	for i, p := range inputs {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &FileMissingError{Path: p, Err: err}
		}
		size := uint64(info.Size())
		blocks := blocksNeeded(size)
		plan[i] = fileLayout{input: p, size: size, blocks: blocks, firstBlock: next}
		log.Verbose("adding file %s to header", p)
		next += blocks
	}
	return plan, nil
}

// writeFileBlocks streams one input's bytes into a fresh chain of
// blocks starting at firstBlock, zero-padding the final block's
// trailing payload.
func writeFileBlocks(a *Archive, path string, firstBlock, numBlocks uint64, log starlog.Logger) error {
	if numBlocks == 0 {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return &FileMissingError{Path: path, Err: err}
	}
	defer f.Close()

	return writeBlocksFromReader(a, f, firstBlock, numBlocks, log)
}

// writeBlocksFromReader streams r into a fresh chain of numBlocks
// blocks starting at firstBlock, zero-padding the final block's
// trailing payload. Used directly by create/append (reading an input
// file) and by pack (reading an in-memory buffer of relocated data).
func writeBlocksFromReader(a *Archive, r io.Reader, firstBlock, numBlocks uint64, log starlog.Logger) error {
	for b := uint64(0); b < numBlocks; b++ {
		var blk block
		n, _ := io.ReadFull(r, blk.payload())
		for i := n; i < len(blk.payload()); i++ {
			blk.payload()[i] = 0
		}

		idx := firstBlock + b
		next := uint64(0)
		if b+1 < numBlocks {
			next = idx + 1
		}
		blk.setNext(next)
		blk.setFree(false)

		log.Verbose("block #%d", idx)
		if err := a.writeBlock(idx, &blk); err != nil {
			return err
		}
	}
	return nil
}
