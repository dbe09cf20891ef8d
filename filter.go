package ocsv

// FilterLines applies cfg.FromLine/cfg.ToLine to rows as a post-parse pass.
// The core state machine never consults these fields mid-parse — spec.md
// §9 treats line-range selection as a collaborator concern, resolved here
// as exactly that: a filtering pass over already-committed rows, 0-indexed,
// inclusive of ToLine, with ToLine == -1 meaning "through the last row".
func FilterLines(rows [][][]byte, cfg Config) [][][]byte {
	from := cfg.FromLine
	to := cfg.ToLine
	if to < 0 || to >= len(rows) {
		to = len(rows) - 1
	}
	if from < 0 || from > to || from >= len(rows) {
		return nil
	}
	return rows[from : to+1]
}
