package ocsv

// minChunkSize is the minimum chunk size per worker thread (512 KiB),
// per spec.md §4.5. The orchestrator (parallel.go) reduces the requested
// worker count to honor it.
const minChunkSize = 512 * 1024

// Chunks splits input into up to n contiguous, non-overlapping sub-slices
// whose concatenation equals input. Every boundary falls immediately after
// an LF (or CRLF) that is not inside a quoted field, with quote state
// tracked from each prospective chunk's own start — not carried over from
// the buffer start, since a chunk boundary computed that way could land
// mid-quote (spec.md §4.5's explicit "important" callout).
//
// If no safe boundary can be found before a prospective split point, the
// remainder becomes a single final chunk instead of being split further.
// Grounded on raceordie690-simdcsv/chunking.go's widow/orphan shape and
// iamhimansu-csvquery's boundary-hint-then-scan approach.
func Chunks(input []byte, n int, quote byte) [][]byte {
	if n <= 1 || len(input) == 0 {
		return [][]byte{input}
	}

	approx := len(input) / n
	if approx < minChunkSize {
		n = len(input) / minChunkSize
		if n <= 1 {
			return [][]byte{input}
		}
		approx = len(input) / n
	}

	chunks := make([][]byte, 0, n)
	start := 0
	for c := 0; c < n-1; c++ {
		target := start + approx
		if target >= len(input) {
			break
		}
		boundary := findSafeBoundary(input, start, target, quote)
		if boundary == -1 {
			break
		}
		chunks = append(chunks, input[start:boundary])
		start = boundary
	}
	chunks = append(chunks, input[start:])
	return chunks
}

// findSafeBoundary scans from start, tracking quote parity from that exact
// offset, and returns the offset just past the first unquoted LF found at or
// after from. Two consecutive quote bytes do not flip parity
// (they are an escaped quote, not an open/close pair). Returns -1 if no
// such boundary exists before the end of input.
func findSafeBoundary(input []byte, start, from int, quote byte) int {
	inQuotes := false
	n := len(input)
	for i := start; i < n; {
		b := input[i]
		if b == quote {
			if i+1 < n && input[i+1] == quote {
				i += 2
				continue
			}
			inQuotes = !inQuotes
			i++
			continue
		}
		if b == '\n' && !inQuotes && i >= from {
			return i + 1
		}
		i++
	}
	return -1
}
