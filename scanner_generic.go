//go:build !(amd64 || arm64 || ppc64 || ppc64le)

package ocsv

// hasWordScan is false on architectures where we have not grounded a
// worthwhile word-at-a-time stride; find/findAny2 always take the scalar
// loop here. Same return values as the SWAR build either way — see
// scanner_swar.go's doc comment and SPEC_FULL.md §4.1.
var hasWordScan = false

func findWord(slice []byte, target byte, start int) int {
	return findScalar(slice, target, start)
}

func findAny2Word(slice []byte, a, b byte, start int) (int, byte) {
	return findAny2Scalar(slice, a, b, start)
}
