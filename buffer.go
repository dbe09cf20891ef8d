package ocsv

import "unicode/utf8"

// AppendByte pushes b onto the in-progress field buffer. C4 primitive.
func (p *Parser) AppendByte(b byte) {
	p.fieldBuffer = append(p.fieldBuffer, b)
}

// AppendRune UTF-8-encodes r (1-4 bytes) and pushes it onto the in-progress
// field buffer. C4 primitive for callers that hold a decoded codepoint;
// parseCore itself copies non-ASCII bytes raw via AppendByte and does not
// call it.
func (p *Parser) AppendRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	p.fieldBuffer = append(p.fieldBuffer, buf[:n]...)
}

// EmitField clones the field buffer into an owned byte string, appends it
// to the current row, and clears the field buffer (capacity preserved).
func (p *Parser) EmitField() {
	owned := make([]byte, len(p.fieldBuffer))
	copy(owned, p.fieldBuffer)
	p.currentRow = append(p.currentRow, owned)
	p.fieldBuffer = p.fieldBuffer[:0]
}

// EmitEmptyField appends an empty field to the current row without
// allocating. Consecutive delimiters never merge into one field: each call
// contributes a distinct entry.
func (p *Parser) EmitEmptyField() {
	p.currentRow = append(p.currentRow, []byte{})
}

// EmitRow takes ownership of the current row's contents into a new row
// appended to all_rows, clears current_row (capacity preserved for reuse),
// increments line_number, and resets column_number to 1. With
// SkipEmptyLines set, a row holding a single empty field is discarded
// instead: nothing is appended and line_number is unchanged.
func (p *Parser) EmitRow() {
	if p.cfg.SkipEmptyLines && len(p.currentRow) == 1 && len(p.currentRow[0]) == 0 {
		p.currentRow = p.currentRow[:0]
		p.columnNumber = 1
		return
	}
	row := make([][]byte, len(p.currentRow))
	copy(row, p.currentRow)
	p.allRows = append(p.allRows, row)
	p.rowLines = append(p.rowLines, p.lineNumber)
	p.currentRow = p.currentRow[:0]
	p.lineNumber++
	p.columnNumber = 1
}
