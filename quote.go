package ocsv

// skipLeadingWhitespace returns the number of leading whitespace bytes
// (space or tab) in data.
func skipLeadingWhitespace(data []byte) int {
	i := 0
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	return i
}

// isQuotedFieldStart reports whether data starts a quoted field, optionally
// after leading whitespace, returning the offset of the opening quote.
func isQuotedFieldStart(data []byte, quote byte, trimLeadingSpace bool) (bool, int) {
	if len(data) == 0 {
		return false, 0
	}
	if data[0] == quote {
		return true, 0
	}
	if trimLeadingSpace {
		offset := skipLeadingWhitespace(data)
		if offset > 0 && offset < len(data) && data[offset] == quote {
			return true, offset
		}
	}
	return false, 0
}

// findClosingQuote finds the closing quote in a quoted field, skipping
// escaped ("") pairs. data[startAfterOpenQuote:] is searched; returns -1 if
// no closing quote exists.
func findClosingQuote(data []byte, quote byte, startAfterOpenQuote int) int {
	i := startAfterOpenQuote
	for i < len(data) {
		if data[i] == quote {
			if i+1 < len(data) && data[i+1] == quote {
				i += 2
				continue
			}
			return i
		}
		i++
	}
	return -1
}
