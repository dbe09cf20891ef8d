package ocsv

// ParseState is the scalar state machine's current position within a field.
// There are exactly five variants; both the scalar and the SIMD/SWAR parser
// must agree on every transition between them (see scalar.go and simd.go).
type ParseState uint8

const (
	// FieldStart is the state at the first byte of a field.
	FieldStart ParseState = iota
	// InField is the state inside an unquoted field.
	InField
	// InQuotedField is the state inside the body of a quoted field.
	InQuotedField
	// QuoteInQuote is the state just after a quote seen while in a quoted
	// field; the next byte decides whether it was an escape ("") or the
	// closing quote.
	QuoteInQuote
	// FieldEnd is the state while consuming the remainder of a comment line.
	FieldEnd
)

func (s ParseState) String() string {
	switch s {
	case FieldStart:
		return "FieldStart"
	case InField:
		return "InField"
	case InQuotedField:
		return "InQuotedField"
	case QuoteInQuote:
		return "QuoteInQuote"
	case FieldEnd:
		return "FieldEnd"
	default:
		return "ParseState(unknown)"
	}
}

// RecoveryPolicy controls how a Parser reacts to a structural violation.
type RecoveryPolicy uint8

const (
	// FailFast returns on the first error. This is the default.
	FailFast RecoveryPolicy = iota
	// SkipRow discards the current row and field buffer, advances past the
	// next LF, and continues parsing.
	SkipRow
	// BestEffort appends a warning, keeps the partial data, and continues
	// with the relaxed interpretation of the violation.
	BestEffort
	// CollectAllErrors behaves like BestEffort but stops recovering once
	// Config.MaxErrors warnings have accumulated, behaving like FailFast
	// from that point on.
	CollectAllErrors
)

func (p RecoveryPolicy) String() string {
	switch p {
	case FailFast:
		return "FailFast"
	case SkipRow:
		return "SkipRow"
	case BestEffort:
		return "BestEffort"
	case CollectAllErrors:
		return "CollectAllErrors"
	default:
		return "RecoveryPolicy(unknown)"
	}
}
