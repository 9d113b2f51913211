// Command star is a single-file archiver over the FAT-style layout
// described in spec.md: a fixed 2 MiB directory followed by a body of
// singly-linked 256 KiB blocks.
package main

import (
	"fmt"
	"os"

	"github.com/ha1tch/star/internal/archive"
	"github.com/ha1tch/star/internal/cliflags"
	"github.com/ha1tch/star/internal/starlog"
)

const usage = `usage: star [flags] archive.tar [files...]

  -c, --create    create a new archive from files
  -x, --extract   extract every file from an archive
  -t, --list      list the contents of an archive
      --delete    delete files from an archive
  -u, --update    replace files already present in an archive
  -r, --append    append new files to an archive
  -p, --pack      defragment an archive
  -i, --info      show archive statistics
  -v, --verbose   log every block touched
  -h, --help      show this message

flags may be combined, e.g. -cvf archive.tar file1 file2
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := cliflags.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	if opts.Op == cliflags.OpHelp {
		fmt.Print(usage)
		return 0
	}

	log := starlog.New(opts.Verbose)

	switch opts.Op {
	case cliflags.OpCreate:
		err = archive.Create(opts.Files, opts.Archive, log)
	case cliflags.OpExtract:
		err = archive.Extract(opts.Archive, log)
	case cliflags.OpList:
		var names []string
		names, err = archive.List(opts.Archive)
		for _, n := range names {
			fmt.Println(n)
		}
	case cliflags.OpDelete:
		err = archive.Delete(opts.Files, opts.Archive, log)
	case cliflags.OpUpdate:
		err = archive.Update(opts.Files, opts.Archive, log)
	case cliflags.OpAppend:
		err = archive.Append(opts.Files, opts.Archive, log)
	case cliflags.OpPack:
		err = archive.Pack(opts.Archive, log)
	case cliflags.OpInfo:
		var stats archive.Stats
		stats, err = archive.Info(opts.Archive)
		if err == nil {
			printInfo(stats)
		}
	}

	if err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

func printInfo(s archive.Stats) {
	fmt.Printf("files:        %d\n", s.FileCount)
	fmt.Printf("used blocks:  %d\n", s.UsedBlocks)
	fmt.Printf("free blocks:  %d\n", s.FreeBlocks)
	fmt.Printf("total blocks: %d\n", s.TotalBlocks)
	fmt.Printf("length:       %d bytes\n", s.Length)
}
