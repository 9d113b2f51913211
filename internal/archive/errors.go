package archive

import "fmt"

// UsageError signals a malformed invocation: unknown flag, or a
// required archive path that was never supplied.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string { return "usage: " + e.Reason }

// IoError wraps a failure opening, reading, writing, or truncating the
// archive file or an input/output file. It is always fatal for the
// current operation.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error during %s on %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// CorruptArchiveError signals a directory read shorter than 2 MiB or a
// malformed on-disk field.
type CorruptArchiveError struct {
	Reason string
}

func (e *CorruptArchiveError) Error() string { return "corrupt archive: " + e.Reason }

// CapacityError signals more than MaxEntries files requested, or a
// full directory.
type CapacityError struct {
	Reason string
}

func (e *CapacityError) Error() string { return "capacity exceeded: " + e.Reason }

// FileMissingError signals a single input that could not be opened.
// create and update treat this as fatal (spec.md §9).
type FileMissingError struct {
	Path string
	Err  error
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("cannot open input %s: %v", e.Path, e.Err)
}

func (e *FileMissingError) Unwrap() error { return e.Err }

// ErrFileNotFound is returned by per-name operations (delete, update)
// when the requested name has no directory entry.
type ErrFileNotFound struct {
	Name string
}

func (e *ErrFileNotFound) Error() string { return fmt.Sprintf("file not in archive: %s", e.Name) }
