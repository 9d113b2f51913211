package archive

import "os"

// Archive is an open archive file together with its in-memory FAT
// directory. It is the shared handle threaded through every operation
// driver; callers are responsible for calling Close on every exit path.
type Archive struct {
	f   *os.File
	dir *directory
}

// openReadOnly opens path for reading and loads its directory.
func openReadOnly(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Op: "open", Path: path, Err: err}
	}
	d, err := loadDirectory(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Archive{f: f, dir: d}, nil
}

// openReadWrite opens an existing archive for in-place mutation and
// loads its directory.
func openReadWrite(path string) (*Archive, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, &IoError{Op: "open", Path: path, Err: err}
	}
	d, err := loadDirectory(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Archive{f: f, dir: d}, nil
}

// createArchive truncates (or creates) path for writing and starts
// with an empty, all-zero directory.
func createArchive(path string) (*Archive, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, &IoError{Op: "create", Path: path, Err: err}
	}
	return &Archive{f: f, dir: &directory{}}, nil
}

// Close releases the archive's file handle.
func (a *Archive) Close() error {
	return a.f.Close()
}

// List returns the basenames of every present directory entry, in
// slot order (spec.md §4.6).
func (a *Archive) List() []string {
	entries := a.dir.present()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Stats summarizes the archive for the supplemented info operation
// (SPEC_FULL.md §7).
type Stats struct {
	FileCount   int
	UsedBlocks  uint64
	FreeBlocks  uint64
	TotalBlocks uint64
	Length      int64
}
