// Package cliflags parses star's command line the way the original
// C implementation's commands.c does: flags and filenames are pulled
// out of argv by shape rather than by position, long flags (--create)
// and combined short flags (-cvf) are both accepted, the last
// operation flag seen wins, and the archive path is whichever
// argument ends in ".tar" rather than a fixed argv slot.
package cliflags

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/ha1tch/star/internal/archive"
)

// Op identifies which archive operation was selected on the command
// line.
type Op int

const (
	OpNone Op = iota
	OpCreate
	OpExtract
	OpList
	OpDelete
	OpUpdate
	OpAppend
	OpPack
	OpInfo
	OpHelp
)

// Options is the parsed result of a star invocation.
type Options struct {
	Op      Op
	Archive string
	Files   []string
	Verbose bool
}

// Parse interprets args (os.Args[1:]) into Options. The first
// ".tar"-suffixed positional argument is taken as the archive path
// wherever it appears; a value given to --file/-f replaces it. Every
// other positional argument is a file operand. Short flags may be
// combined (-cvf), matching the original's char-by-char flag scan.
func Parse(args []string) (Options, error) {
	if len(args) == 0 {
		return Options{Op: OpHelp}, nil
	}

	fs := flag.NewFlagSet("star", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	create := fs.BoolP("create", "c", false, "create a new archive")
	extract := fs.BoolP("extract", "x", false, "extract files from an archive")
	list := fs.BoolP("list", "t", false, "list the contents of an archive")
	del := fs.Bool("delete", false, "delete files from an archive")
	update := fs.BoolP("update", "u", false, "replace files already in an archive")
	appnd := fs.BoolP("append", "r", false, "append new files to an archive")
	pack := fs.BoolP("pack", "p", false, "defragment an archive")
	info := fs.BoolP("info", "i", false, "show archive statistics")
	help := fs.BoolP("help", "h", false, "show usage")
	verbose := fs.BoolP("verbose", "v", false, "log every block touched")
	_ = fs.StringP("file", "f", "", "archive file (inferred from a .tar argument if omitted)")

	if err := fs.Parse(args); err != nil {
		return Options{}, &archive.UsageError{Reason: err.Error()}
	}

	var op Op
	// Last operation flag on the line wins, matching commands.c's
	// determineFlag loop (it keeps overwriting selectedMode).
	for _, f := range []struct {
		set bool
		op  Op
	}{
		{*create, OpCreate},
		{*extract, OpExtract},
		{*list, OpList},
		{*del, OpDelete},
		{*update, OpUpdate},
		{*appnd, OpAppend},
		{*pack, OpPack},
		{*info, OpInfo},
	} {
		if f.set {
			op = f.op
		}
	}
	if *help {
		op = OpHelp
	}
	if op == OpNone {
		return Options{}, &archive.UsageError{Reason: "no operation flag given, run \"star --help\" to see the available flags"}
	}

	var archivePath string
	var files []string
	for _, a := range fs.Args() {
		if endsWithTar(a) && archivePath == "" {
			archivePath = a
			continue
		}
		files = append(files, a)
	}
	if explicit, _ := fs.GetString("file"); explicit != "" {
		archivePath = explicit
	}

	if op != OpHelp && archivePath == "" {
		return Options{}, &archive.UsageError{Reason: "no .tar file specified in arguments"}
	}

	return Options{Op: op, Archive: archivePath, Files: files, Verbose: *verbose}, nil
}

// endsWithTar reports whether name has a ".tar" suffix, mirroring the
// original's endsWithTar.
func endsWithTar(name string) bool {
	return strings.HasSuffix(name, ".tar")
}
