package ocsv

// simdMinThreshold is the smallest remaining slice length for which taking
// the word-at-a-time path is worth the setup cost; below it every scanner
// falls back to the scalar loop. Mirrors the teacher's simdMinThreshold.
const simdMinThreshold = 32

// find returns the index of the first occurrence of target at or after
// start, or -1. Pure function, no side effects — the C1 contract from
// SPEC_FULL.md §4.1.
func find(slice []byte, target byte, start int) int {
	if start >= len(slice) || start < 0 {
		return -1
	}
	if hasWordScan && len(slice)-start >= simdMinThreshold {
		return findWord(slice, target, start)
	}
	return findScalar(slice, target, start)
}

// findAny2 returns the index and identity of the first occurrence of a or b
// at or after start, or (-1, 0) if neither occurs.
func findAny2(slice []byte, a, b byte, start int) (int, byte) {
	if start >= len(slice) || start < 0 {
		return -1, 0
	}
	if hasWordScan && len(slice)-start >= simdMinThreshold {
		return findAny2Word(slice, a, b, start)
	}
	return findAny2Scalar(slice, a, b, start)
}

func findScalar(slice []byte, target byte, start int) int {
	for i := start; i < len(slice); i++ {
		if slice[i] == target {
			return i
		}
	}
	return -1
}

func findAny2Scalar(slice []byte, a, b byte, start int) (int, byte) {
	for i := start; i < len(slice); i++ {
		if slice[i] == a {
			return i, a
		}
		if slice[i] == b {
			return i, b
		}
	}
	return -1, 0
}

// findDelimiter, findQuote and findLF are named specializations of find,
// kept distinct per SPEC_FULL.md §4.1 ("specializations for delimiter,
// quote, and LF exist for clarity") even though find is generic enough to
// serve all three; callers read better naming the byte class they search
// for instead of passing a bare literal.
func findDelimiter(slice []byte, delim byte, start int) int { return find(slice, delim, start) }
func findQuote(slice []byte, quote byte, start int) int     { return find(slice, quote, start) }
func findLF(slice []byte, start int) int                    { return find(slice, '\n', start) }
