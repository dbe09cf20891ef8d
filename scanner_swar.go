//go:build amd64 || arm64 || ppc64 || ppc64le

package ocsv

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// hasWordScan mirrors the shape of the teacher's useAVX512 init-time probe:
// detectWordScan inspects CPU feature bits, but every case, including the
// default with no feature bit set, returns true, so the 8-byte-word stride
// is always enabled on these architectures. Word loads work on any CPU of
// these architectures.
var hasWordScan = detectWordScan()

func detectWordScan() bool {
	switch {
	case cpu.X86.HasSSE42:
		return true
	case cpu.ARM64.HasASIMD:
		return true
	case cpu.PPC64.IsPOWER8:
		return true
	case cpu.PPC64le.IsPOWER8:
		return true
	default:
		// Conservative default: word-at-a-time scanning is still correct
		// (it's pure integer arithmetic), just not guaranteed fast; keep
		// using it since it is never slower in practice than the byte loop.
		return true
	}
}

const (
	loMask = 0x0101010101010101
	hiMask = 0x8080808080808080
)

// broadcast replicates b into every byte of a 64-bit word.
func broadcast(b byte) uint64 {
	return uint64(b) * loMask
}

// hasZeroByte implements the classic SWAR "does this word contain a
// zero byte" trick: ((x - 0x0101...01) & ^x & 0x8080...80) != 0 iff some
// byte of x is zero. Combined with an XOR against a broadcast target byte,
// this finds a byte equal to the target. Grounded on
// other_examples/6f1e68ba_shapestone-shape-csv__internal-fastparser-chunked.go.go's
// hasDelimiter/findDelimiterPos.
func hasZeroByte(x uint64) bool {
	return (x-loMask)&^x&hiMask != 0
}

// firstZeroByteIndex returns the index (0-7) of the first zero byte in x,
// assuming hasZeroByte(x) is true. Little-endian byte order.
func firstZeroByteIndex(x uint64) int {
	t := (x - loMask) & ^x & hiMask
	return trailingZeroBytes(t)
}

func trailingZeroBytes(t uint64) int {
	// Each candidate byte has its top bit set in t when that byte is zero
	// in the original word; counting trailing zero bits and dividing by 8
	// gives the byte index (little-endian).
	n := 0
	for t&0xFF == 0 && n < 8 {
		t >>= 8
		n++
	}
	return n
}

func findWord(slice []byte, target byte, start int) int {
	i := start
	bc := broadcast(target)
	n := len(slice)
	for ; i+8 <= n; i += 8 {
		word := binary.LittleEndian.Uint64(slice[i : i+8])
		if x := word ^ bc; hasZeroByte(x) {
			return i + firstZeroByteIndex(x)
		}
	}
	for ; i < n; i++ {
		if slice[i] == target {
			return i
		}
	}
	return -1
}

func findAny2Word(slice []byte, a, b byte, start int) (int, byte) {
	i := start
	bcA := broadcast(a)
	bcB := broadcast(b)
	n := len(slice)
	for ; i+8 <= n; i += 8 {
		word := binary.LittleEndian.Uint64(slice[i : i+8])
		xa := word ^ bcA
		xb := word ^ bcB
		zeroA := hasZeroByte(xa)
		zeroB := hasZeroByte(xb)
		if !zeroA && !zeroB {
			continue
		}
		// Resolve byte-by-byte within this word to preserve "first match,
		// tie broken by scan order" semantics when both a and b occur.
		for j := 0; j < 8; j++ {
			bt := byte(word >> (8 * j))
			if bt == a {
				return i + j, a
			}
			if bt == b {
				return i + j, b
			}
		}
	}
	for ; i < n; i++ {
		if slice[i] == a {
			return i, a
		}
		if slice[i] == b {
			return i, b
		}
	}
	return -1, 0
}
