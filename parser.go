// Package ocsv is a high-throughput CSV parsing engine: a scalar RFC 4180
// state-machine parser, a SWAR-accelerated fast path bit-identical to the
// scalar parser, a quote-aware parallel parser, and a packed binary
// serializer for zero-copy handoff across an FFI boundary.
package ocsv

// Parser is the central entity of this package. It owns its Config, its
// current ParseState, the in-progress field buffer, the current row, every
// committed row, and the last recorded error. A Parser is not safe for
// concurrent mutation from multiple goroutines; see ParseParallel for the
// one operation that fans work out internally while still returning a
// single Parser.
type Parser struct {
	cfg   Config
	state ParseState

	fieldBuffer []byte
	currentRow  [][]byte
	allRows     [][][]byte
	rowLines    []int // 1-indexed starting line of each committed row, parallel to allRows

	lineNumber   int
	columnNumber int

	lastError  ErrorInfo
	errorCount int
	warnings   []ErrorInfo

	packedBuffer []byte

	parsing bool // guards Config mutation while a parse is in flight

	// atBufferStart is true when this Parser's current parse covers the
	// very start of the logical input (byte offset 0), as opposed to a
	// parallel worker's chunk that begins mid-stream. The leading-blank-
	// line skip rule (scalar.go) only applies at the true buffer start.
	atBufferStart bool
}

// New returns a Parser configured with cfg. cfg is copied by value.
func New(cfg Config) *Parser {
	return &Parser{cfg: cfg, state: FieldStart, lineNumber: 1, columnNumber: 1, atBufferStart: true}
}

// NewParser returns a Parser with RFC 4180 defaults ([NewConfig]).
func NewParser() *Parser {
	return New(NewConfig())
}

// Config returns a copy of the parser's current configuration.
func (p *Parser) Config() Config { return p.cfg }

// SetConfig replaces the parser's configuration wholesale, validating it
// first. Returns InvalidConfig if called while a parse is in progress or if
// cfg itself is invalid.
func (p *Parser) SetConfig(cfg Config) error {
	if p.parsing {
		return p.record(ErrInvalidConfig, "cannot change config during an active parse", "")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg = cfg
	return nil
}

// RowCount returns the number of committed rows.
func (p *Parser) RowCount() int { return len(p.allRows) }

// FieldCount returns the number of fields in row, or -1 if row is out of
// range.
func (p *Parser) FieldCount(row int) int {
	if row < 0 || row >= len(p.allRows) {
		return -1
	}
	return len(p.allRows[row])
}

// Field returns field of row, or nil if either index is out of range.
func (p *Parser) Field(row, field int) []byte {
	if row < 0 || row >= len(p.allRows) {
		return nil
	}
	r := p.allRows[row]
	if field < 0 || field >= len(r) {
		return nil
	}
	return r[field]
}

// Rows returns every committed row. The returned slices are owned by the
// Parser; callers that need to retain them past the next Parse/Reset call
// must copy them.
func (p *Parser) Rows() [][][]byte { return p.allRows }

// LastError returns the most recently recorded error, or a zero ErrorInfo
// (Code == ErrNone) if none occurred since the last Reset.
func (p *Parser) LastError() ErrorInfo { return p.lastError }

// ErrorCount returns the running count of recorded structural errors.
func (p *Parser) ErrorCount() int { return p.errorCount }

// Warnings returns every downgraded violation recorded under BestEffort or
// CollectAllErrors recovery since the last Reset.
func (p *Parser) Warnings() []ErrorInfo { return p.warnings }

// HasError reports whether the parser currently holds a recorded error.
func (p *Parser) HasError() bool { return p.lastError.Code != ErrNone }

// Reset destroys every committed row and the in-progress field/row buffers,
// clears the error surface, and resets the state machine. Config is
// preserved, matching spec.md §3's "clearing a Parser for reuse ... the
// Config is preserved".
func (p *Parser) Reset() {
	p.state = FieldStart
	p.fieldBuffer = p.fieldBuffer[:0]
	p.currentRow = nil
	p.allRows = nil
	p.rowLines = nil
	p.lineNumber = 1
	p.columnNumber = 1
	p.lastError = ErrorInfo{}
	p.errorCount = 0
	p.warnings = nil
	p.packedBuffer = nil
	p.atBufferStart = true
}

// RowLine returns the 1-indexed line a committed row started on, or 0 if
// row is out of range.
func (p *Parser) RowLine(row int) int {
	if row < 0 || row >= len(p.rowLines) {
		return 0
	}
	return p.rowLines[row]
}
