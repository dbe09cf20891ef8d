package ocsv

// This file is the reference implementation of C2, the scalar state
// machine. Every transition below follows SPEC_FULL.md §4.2 /spec.md §4.2
// verbatim; simd.go must stay observably identical to it (see the
// scalar/SIMD equivalence test in simd_test.go).

// recoveryAction is the outcome of consulting the active RecoveryPolicy
// after a structural violation that cfg.Relaxed alone does not silently
// absorb.
type recoveryAction int

const (
	actionAbort recoveryAction = iota
	actionWarnAndRecover
	actionSkipRow
)

func (p *Parser) decideRecovery(policy RecoveryPolicy) recoveryAction {
	switch policy {
	case SkipRow:
		return actionSkipRow
	case BestEffort:
		return actionWarnAndRecover
	case CollectAllErrors:
		if p.cfg.MaxErrors > 0 && len(p.warnings) >= p.cfg.MaxErrors {
			return actionAbort
		}
		return actionWarnAndRecover
	default:
		return actionAbort
	}
}

// ParseScalar runs the reference byte-at-a-time state machine over input,
// replacing any previously parsed state. Returns true on success; on
// failure, returns false and leaves whatever rows were committed before the
// failure reachable via Rows(), plus LastError() describing why.
//
// Parse (simd.go) is the entry point most callers want; it dispatches to
// the bulk-copy C3 implementation automatically and falls back to this one
// only to the extent the scanner itself does for tiny inputs. ParseScalar
// is kept exported because the scalar/SIMD equivalence property (spec.md
// §8.3) needs a named reference to compare against.
func (p *Parser) ParseScalar(input []byte) bool {
	p.parsing = true
	defer func() { p.parsing = false }()

	p.beginParse(1, true)
	return p.parseCore(input, false)
}

// beginParse resets everything parse(parser, input) promises to reset on
// entry (spec.md §4.2): rows, line/column counters, field/row buffers, and
// the error surface from any previous call, plus any packed buffer from a
// prior Pack() call (spec.md §4.7: a parse that clears state invalidates
// it). startLine is 1 for a normal top-level parse; the parallel
// orchestrator (parallel.go) passes each worker's precomputed starting line
// so merged error positions continue the numbering of the chunks before it
// (countLines notes where that seed differs from a sequential parse).
// atBufferStart is true only for a parse that covers byte
// offset 0 of the logical input — the top-level entry points always pass
// true; a parallel worker passes true only for the chunk starting at
// offset 0, since the leading-blank-line skip rule must not apply to a
// blank line that merely happens to open a later chunk.
func (p *Parser) beginParse(startLine int, atBufferStart bool) {
	p.state = FieldStart
	p.fieldBuffer = p.fieldBuffer[:0]
	p.currentRow = nil
	p.allRows = nil
	p.rowLines = nil
	p.lineNumber = startLine
	p.columnNumber = 1
	p.lastError = ErrorInfo{}
	p.errorCount = 0
	p.warnings = nil
	p.packedBuffer = nil
	p.atBufferStart = atBufferStart
}

// parseCore is shared by ParseScalar and ParseSIMD (simd.go). With bulk set,
// it pre-copies runs of plain bytes via the C1 scanner before falling
// through to the exact same per-byte transition switch scalar parsing uses;
// this is what makes the SIMD/scalar equivalence property hold by
// construction rather than by separately-maintained logic. The max_row_size
// check runs once per byte, so bulk runs are only taken when MaxRowSize is 0.
func (p *Parser) parseCore(input []byte, bulk bool) bool {
	policy := p.cfg.resolvePolicy()
	n := len(input)
	state := FieldStart
	i := 0

	for i < n {
		if bulk && p.cfg.MaxRowSize == 0 {
			switch state {
			case InField:
				next, _ := findAny2(input, p.cfg.Delimiter, '\n', i)
				if next == -1 {
					next = n
				}
				if next > i {
					p.appendRunFiltered(input[i:next])
					p.columnNumber += next - i
					i = next
					if i >= n {
						continue
					}
				}
			case InQuotedField:
				next := findQuote(input, p.cfg.Quote, i)
				if next == -1 {
					next = n
				}
				if next > i {
					p.appendRunFiltered(input[i:next])
					p.columnNumber += next - i
					i = next
					if i >= n {
						continue
					}
				}
			}
		}

		b := input[i]

		switch state {
		case FieldStart:
			switch {
			case b == p.cfg.Quote:
				state = InQuotedField
			case b == p.cfg.Delimiter:
				p.EmitEmptyField()
			case b == '\n':
				if len(p.currentRow) > 0 || i > 0 || !p.atBufferStart {
					p.EmitEmptyField()
					p.EmitRow()
				}
			case b == '\r':
				// skip
			case p.cfg.Comment != 0 && len(p.currentRow) == 0 && b == p.cfg.Comment:
				state = FieldEnd
			default:
				state = InField
				p.AppendByte(b)
			}

		case InField:
			switch b {
			case p.cfg.Delimiter:
				p.EmitField()
				state = FieldStart
			case '\n':
				p.EmitField()
				p.EmitRow()
				state = FieldStart
			case '\r':
				// skip
			default:
				p.AppendByte(b)
			}

		case InQuotedField:
			switch b {
			case p.cfg.Quote:
				state = QuoteInQuote
			case '\r':
				// CR is always a skip, even inside quotes (canonical tie-break).
			default:
				p.AppendByte(b)
			}

		case QuoteInQuote:
			switch {
			case b == p.cfg.Quote:
				p.AppendByte(p.cfg.Quote)
				state = InQuotedField
			case b == p.cfg.Delimiter:
				p.EmitField()
				state = FieldStart
			case b == '\n':
				p.EmitField()
				p.EmitRow()
				state = FieldStart
			case b == '\r':
				// skip
			case p.cfg.Relaxed:
				p.warn(ErrInvalidCharacterAfterQuote, "character after closing quote", string(b))
				p.AppendByte(b)
				state = InField
			default:
				switch p.decideRecovery(policy) {
				case actionWarnAndRecover:
					p.warn(ErrInvalidCharacterAfterQuote, "character after closing quote", string(b))
					p.AppendByte(b)
					state = InField
				case actionSkipRow:
					p.record(ErrInvalidCharacterAfterQuote, "character after closing quote", string(b))
					var ok bool
					i, ok = p.skipToNextLine(input, i)
					state = FieldStart
					if !ok {
						return p.finishParse(state, true)
					}
					continue
				default:
					p.record(ErrInvalidCharacterAfterQuote, "character after closing quote", string(b))
					return false
				}
			}

		case FieldEnd:
			if b == '\n' {
				p.fieldBuffer = p.fieldBuffer[:0]
				p.currentRow = p.currentRow[:0]
				state = FieldStart
			}
			// else: skip
		}

		i++
		p.columnNumber++

		if p.cfg.MaxRowSize > 0 && len(p.fieldBuffer) > p.cfg.MaxRowSize {
			if !p.handleFieldTooLarge(policy) {
				return false
			}
			if state == InField || state == InQuotedField || state == QuoteInQuote {
				// relaxed/recovered path truncates; stay in the same field
				// context so the remaining bytes of this field are skipped
				// rather than mis-parsed as new structure.
			}
			if !p.cfg.Relaxed && policy == SkipRow {
				// handleFieldTooLarge dropped the row; resume after the next LF.
				var ok bool
				i, ok = p.skipToNextLine(input, i)
				state = FieldStart
				if !ok {
					return p.finishParse(state, true)
				}
			}
		}
	}

	return p.finishParse(state, false)
}

// skipToNextLine implements the SkipRow recovery: discard the in-progress
// row and field buffer, and resume scanning right after the next LF. If no
// further LF exists, the caller should stop (ok == false).
func (p *Parser) skipToNextLine(input []byte, from int) (next int, ok bool) {
	p.fieldBuffer = p.fieldBuffer[:0]
	p.currentRow = nil
	idx := findLF(input, from)
	if idx == -1 {
		return len(input), false
	}
	p.lineNumber++
	p.columnNumber = 1
	return idx + 1, true
}

// handleFieldTooLarge applies max_row_size truncation per spec.md §4.2: in
// relaxed mode (or when the active policy recovers) the field buffer is
// truncated and parsing continues; under SkipRow the in-progress row is
// dropped and parseCore resumes after the next LF; otherwise the parse
// aborts.
func (p *Parser) handleFieldTooLarge(policy RecoveryPolicy) bool {
	truncated := p.fieldBuffer[:p.cfg.MaxRowSize]
	if p.cfg.Relaxed {
		p.warn(ErrMaxFieldSizeExceeded, "field truncated to max_row_size", "")
		p.fieldBuffer = truncated
		return true
	}
	switch p.decideRecovery(policy) {
	case actionWarnAndRecover:
		p.warn(ErrMaxFieldSizeExceeded, "field truncated to max_row_size", "")
		p.fieldBuffer = truncated
		return true
	case actionSkipRow:
		p.record(ErrMaxFieldSizeExceeded, "field exceeded max_row_size", "")
		p.fieldBuffer = p.fieldBuffer[:0]
		p.currentRow = nil
		return true
	default:
		p.record(ErrMaxFieldSizeExceeded, "field exceeded max_row_size", "")
		return false
	}
}

// finishParse applies the end-of-input transition table from spec.md §4.2.
func (p *Parser) finishParse(state ParseState, alreadyFailed bool) bool {
	if alreadyFailed {
		p.state = state
		return false
	}
	switch state {
	case InField, QuoteInQuote:
		p.EmitField()
		p.EmitRow()
	case InQuotedField:
		if p.cfg.Relaxed {
			p.warn(ErrUnterminatedQuote, "quote left open at end of input", "")
			p.EmitField()
			p.EmitRow()
		} else {
			switch p.decideRecovery(p.cfg.resolvePolicy()) {
			case actionWarnAndRecover:
				p.warn(ErrUnterminatedQuote, "quote left open at end of input", "")
				p.EmitField()
				p.EmitRow()
			case actionSkipRow:
				p.record(ErrUnterminatedQuote, "quote left open at end of input", "")
				p.fieldBuffer = p.fieldBuffer[:0]
				p.currentRow = nil
			default:
				p.record(ErrUnterminatedQuote, "quote left open at end of input", "")
				p.state = state
				return false
			}
		}
	case FieldStart:
		if len(p.currentRow) > 0 {
			p.EmitEmptyField()
			p.EmitRow()
		}
	case FieldEnd:
		// no-op
	}
	p.state = state
	return true
}
