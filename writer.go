package ocsv

import (
	"bufio"
	"io"
)

// Writer writes records using CSV encoding, matching encoding/csv's output
// conventions. As returned by NewWriter, a Writer writes records terminated
// by a newline and uses ',' as the field delimiter.
type Writer struct {
	Comma   rune // Field delimiter (set to ',' by NewWriter)
	UseCRLF bool // True to use \r\n as the line terminator

	w   *bufio.Writer
	err error
}

// NewWriter returns a new Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Comma: ',',
		w:     bufio.NewWriter(w),
	}
}

// Write writes a single CSV record to w along with any necessary quoting.
// Writes are buffered; Flush must eventually be called.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}

	for i, field := range record {
		if i > 0 {
			if _, w.err = w.w.WriteRune(w.Comma); w.err != nil {
				return w.err
			}
		}
		if w.err = w.writeField(field); w.err != nil {
			return w.err
		}
	}

	return w.writeLineEnding()
}

func (w *Writer) writeField(field string) error {
	if w.fieldNeedsQuotes(field) {
		return w.writeQuotedField(field)
	}
	_, err := w.w.WriteString(field)
	return err
}

func (w *Writer) writeLineEnding() error {
	if w.UseCRLF {
		_, w.err = w.w.WriteString("\r\n")
	} else {
		w.err = w.w.WriteByte('\n')
	}
	return w.err
}

// WriteAll writes multiple CSV records and then calls Flush.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	w.err = w.w.Flush()
	return w.err
}

// Error reports any error that occurred during a previous Write or Flush.
func (w *Writer) Error() error {
	return w.err
}

// fieldNeedsQuotes reports whether field needs to be quoted: leading
// whitespace, or any delimiter/newline/CR/quote byte anywhere in it.
// Reuses the C1 scanner (find) instead of the teacher's direct AVX-512
// intrinsics, so both the reader's hot path and the writer's quoting check
// share the same scanning primitive.
func (w *Writer) fieldNeedsQuotes(field string) bool {
	if len(field) == 0 {
		return false
	}
	if field[0] == ' ' || field[0] == '\t' {
		return true
	}
	data := []byte(field)
	if w.Comma < 128 && find(data, byte(w.Comma), 0) != -1 {
		return true
	}
	if idx, _ := findAny2(data, '\n', '\r', 0); idx != -1 {
		return true
	}
	return find(data, '"', 0) != -1
}

// writeQuotedField writes field surrounded by quotes, doubling any embedded
// quote byte. Uses find to jump straight to each quote instead of
// inspecting every byte individually.
func (w *Writer) writeQuotedField(field string) error {
	if err := w.w.WriteByte('"'); err != nil {
		return err
	}

	data := []byte(field)
	lastWritten := 0
	pos := 0
	for {
		idx := find(data, '"', pos)
		if idx == -1 {
			break
		}
		if _, err := w.w.WriteString(field[lastWritten : idx+1]); err != nil {
			return err
		}
		if err := w.w.WriteByte('"'); err != nil {
			return err
		}
		lastWritten = idx + 1
		pos = idx + 1
	}
	if lastWritten < len(field) {
		if _, err := w.w.WriteString(field[lastWritten:]); err != nil {
			return err
		}
	}
	return w.w.WriteByte('"')
}
