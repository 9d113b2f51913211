package archive

import "fmt"

// octalFieldLen is the width of every on-disk numeric field: 11 octal
// digits plus a trailing NUL, per the FAT directory/block layout.
const octalFieldLen = 12

// encodeOctal writes n as an 11-digit zero-padded octal ASCII string
// followed by a NUL into a fresh 12-byte buffer. Values too large for
// 11 octal digits are truncated to their low 33 bits, matching the C
// "%011lo" overflow behavior this format was modeled on.
func encodeOctal(n uint64) [octalFieldLen]byte {
	var buf [octalFieldLen]byte
	s := fmt.Sprintf("%011o", n)
	if len(s) > 11 {
		s = s[len(s)-11:]
	}
	copy(buf[:11], s)
	buf[11] = 0
	return buf
}

// decodeOctal parses a NUL-terminated (or full-width) octal ASCII
// field, stopping at the first non-octal byte. A field with no valid
// leading digits decodes to 0.
func decodeOctal(buf []byte) uint64 {
	var n uint64
	for _, b := range buf {
		if b < '0' || b > '7' {
			break
		}
		n = n*8 + uint64(b-'0')
	}
	return n
}
