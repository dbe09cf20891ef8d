package ocsv

import (
	"runtime"
	"sync"
)

// minParallelFileSize is spec.md §4.6's min_file_size default (2 MiB):
// below this, ParseParallel always falls back to the sequential parser.
const minParallelFileSize = 2 * 1024 * 1024

// workerResult is a single chunk's outcome, written exactly once by exactly
// one goroutine into its own slot — no shared mutable state during
// parsing, per spec.md §5.
type workerResult struct {
	rows     [][][]byte
	rowLines []int
	ok       bool
	lastErr  ErrorInfo
	errs     int
	warns    []ErrorInfo
}

// ParseParallel splits input into chunks on row boundaries, parses each
// chunk on its own goroutine, and merges the results into p in chunk order
// — deterministic and output-equivalent to ParseScalar on the same input
// (spec.md §4.6, §8.4). Falls back to the sequential parser (via Parse, so
// SIMD is still used where available) when input is smaller than
// minParallelFileSize, workers == 1 (0 or a negative value sets no limit, see
// determineWorkerCount), or the chunker's partition fails the sum-of-lengths
// safety check.
//
// Grounded on iamhimansu-csvquery/simd_parser.go's Scan: goroutine per
// chunk, sync.WaitGroup join, precomputed per-chunk starting line numbers.
func (p *Parser) ParseParallel(input []byte, workers int) bool {
	n := p.determineWorkerCount(len(input), workers)
	if n <= 1 {
		return p.Parse(input)
	}

	chunks := Chunks(input, n, p.cfg.Quote)
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(input) {
		// Safety net from spec.md §4.5: abandon parallel, run scalar.
		return p.Parse(input)
	}
	if len(chunks) <= 1 {
		return p.Parse(input)
	}

	startLines := make([]int, len(chunks))
	line := 1
	for i, c := range chunks {
		startLines[i] = line
		line += countLines(c, p.cfg.Quote)
	}

	results := make([]workerResult, len(chunks))
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i, chunk := range chunks {
		go func(i int, chunk []byte) {
			defer wg.Done()
			worker := New(p.cfg)
			worker.beginParse(startLines[i], i == 0)
			ok := worker.parseCore(chunk, true)
			results[i] = workerResult{
				rows:     worker.allRows,
				rowLines: worker.rowLines,
				ok:       ok,
				lastErr:  worker.lastError,
				errs:     worker.errorCount,
				warns:    worker.warnings,
			}
		}(i, chunk)
	}
	wg.Wait()

	return p.mergeWorkerResults(results)
}

// countLines counts the LFs outside quoted fields in a chunk, used only to
// seed each worker's starting line number. LFs ending comment lines or blank
// lines that the parse skips are counted too, so after such lines the seed
// runs ahead of a sequential parse's numbering; the worker's own parse is
// the source of truth for its own row count.
func countLines(chunk []byte, quote byte) int {
	count := 0
	inQuotes := false
	for i := 0; i < len(chunk); i++ {
		switch chunk[i] {
		case quote:
			inQuotes = !inQuotes
		case '\n':
			if !inQuotes {
				count++
			}
		}
	}
	return count
}

func (p *Parser) mergeWorkerResults(results []workerResult) bool {
	p.parsing = true
	defer func() { p.parsing = false }()

	total := 0
	for _, r := range results {
		total += len(r.rows)
	}
	p.state = FieldStart
	p.fieldBuffer = p.fieldBuffer[:0]
	p.currentRow = nil
	p.allRows = make([][][]byte, 0, total)
	p.rowLines = make([]int, 0, total)
	p.lastError = ErrorInfo{}
	p.errorCount = 0
	p.warnings = nil
	p.packedBuffer = nil
	p.lineNumber = 1
	p.columnNumber = 1

	ok := true
	for _, r := range results {
		for _, row := range r.rows {
			merged := make([][]byte, len(row))
			for i, field := range row {
				owned := make([]byte, len(field))
				copy(owned, field)
				merged[i] = owned
			}
			p.allRows = append(p.allRows, merged)
		}
		p.rowLines = append(p.rowLines, r.rowLines...)
		p.errorCount += r.errs
		p.warnings = append(p.warnings, r.warns...)
		if !r.ok {
			ok = false
			p.lastError = r.lastErr
		}
	}
	p.lineNumber = len(p.allRows) + 1
	return ok
}

// determineWorkerCount implements spec.md §4.6's thread-count table, with
// the caller-supplied workers acting as an upper bound on n_cpus (0 means
// "no preference", i.e. use every available CPU up to the table's own cap).
func (p *Parser) determineWorkerCount(inputSize, workers int) int {
	if inputSize < minParallelFileSize {
		return 1
	}
	nCPU := runtime.NumCPU()
	if workers > 0 && workers < nCPU {
		nCPU = workers
	}
	if nCPU <= 1 {
		return 1
	}

	mb := inputSize / (1024 * 1024)
	var n int
	switch {
	case mb < 2:
		n = 1
	case mb < 5:
		n = min(2, nCPU)
	case mb < 10:
		n = min(4, nCPU)
	case mb < 50:
		n = min(max(nCPU/2, 4), 8)
	default:
		n = min(nCPU, 8)
	}

	if maxByChunkSize := inputSize / minChunkSize; maxByChunkSize < n {
		if maxByChunkSize < 1 {
			maxByChunkSize = 1
		}
		n = maxByChunkSize
	}
	return n
}
