package archive

import (
	"os"

	"github.com/ha1tch/star/internal/starlog"
)

// Extract writes every present entry of the archive at path to a file
// named by its basename in the current working directory, per
// spec.md §4.5. Extraction never mutates the archive. A per-output
// failure is logged and extraction continues with the remaining
// entries.
func Extract(path string, log starlog.Logger) error {
	a, err := openReadOnly(path)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, e := range a.dir.present() {
		if err := extractOne(a, e, log); err != nil {
			log.Error("failed to create file %s: %v", e.name, err)
			continue
		}
	}
	return nil
}

func extractOne(a *Archive, e entryView, log starlog.Logger) error {
	out, err := os.OpenFile(e.name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	log.Verbose("starting to create %s", e.name)

	remaining := e.size
	if remaining == 0 {
		return nil
	}
	for idx, blk := range a.walk(e.blockAddress) {
		log.Verbose("reading block #%d", idx)
		want := uint64(PayloadSize)
		if want > remaining {
			want = remaining
		}
		if _, err := out.Write(blk.payload()[:want]); err != nil {
			return err
		}
		remaining -= want
		if remaining == 0 {
			break
		}
	}
	return nil
}
