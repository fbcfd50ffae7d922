package utils

import (
	"hash/fnv"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fingerprint hashes statement text after lowercasing it and collapsing runs
// of whitespace, so formatting differences map to the same value.
func Fingerprint(sql string) uint64 {
	h := fnv.New64a()
	space := false
	started := false
	for _, r := range sql {
		if unicode.IsSpace(r) {
			space = started
			continue
		}
		if space {
			h.Write([]byte{' '})
			space = false
		}
		started = true
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], unicode.ToLower(r))
		h.Write(buf[:n])
	}
	return h.Sum64()
}

// FingerprintHex returns Fingerprint as a fixed-width hex string for logs.
func FingerprintHex(sql string) string {
	s := strconv.FormatUint(Fingerprint(sql), 16)
	return strings.Repeat("0", 16-len(s)) + s
}
