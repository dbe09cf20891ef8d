package ocsv

import "fmt"

// ErrorKind enumerates the structural failures the core parser can record.
// The collaborator codes (FileNotFound, InvalidUTF8, InconsistentColumnCount,
// InvalidEscapeSequence) are reserved for layers built on top of this
// package; the core itself never emits them.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	ErrFileNotFound
	ErrInvalidUTF8
	ErrUnterminatedQuote
	ErrInvalidCharacterAfterQuote
	ErrMaxRowSizeExceeded
	ErrMaxFieldSizeExceeded
	ErrInconsistentColumnCount
	ErrInvalidEscapeSequence
	ErrEmptyInput
	ErrMemoryAllocationFailed
	ErrInvalidConfig
	ErrFieldTooLargeToPack
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "None"
	case ErrFileNotFound:
		return "FileNotFound"
	case ErrInvalidUTF8:
		return "InvalidUTF8"
	case ErrUnterminatedQuote:
		return "UnterminatedQuote"
	case ErrInvalidCharacterAfterQuote:
		return "InvalidCharacterAfterQuote"
	case ErrMaxRowSizeExceeded:
		return "MaxRowSizeExceeded"
	case ErrMaxFieldSizeExceeded:
		return "MaxFieldSizeExceeded"
	case ErrInconsistentColumnCount:
		return "InconsistentColumnCount"
	case ErrInvalidEscapeSequence:
		return "InvalidEscapeSequence"
	case ErrEmptyInput:
		return "EmptyInput"
	case ErrMemoryAllocationFailed:
		return "MemoryAllocationFailed"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrFieldTooLargeToPack:
		return "FieldTooLargeToPack"
	default:
		return "ErrorKind(unknown)"
	}
}

// ErrorInfo is the value-type error surface shared by the scalar parser, the
// SIMD parser, and the packed serializer. A zero ErrorInfo (Code == ErrNone)
// means "no error". ErrorInfo implements error so it can be returned and
// wrapped as one. It defines no Is method: errors.Is compares ErrorInfo
// values with ==, which matches only when every field is equal, not Code
// alone.
type ErrorInfo struct {
	Code    ErrorKind
	Line    int
	Column  int
	Message string
	Context string
}

func (e ErrorInfo) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s at line %d, column %d: %s (%s)", e.Code, e.Line, e.Column, e.Message, e.Context)
	}
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Code, e.Line, e.Column, e.Message)
}

// IsZero reports whether e represents "no error".
func (e ErrorInfo) IsZero() bool {
	return e.Code == ErrNone
}

// record sets p.lastError from the parser's current position and increments
// errorCount; it does not touch p.warnings (downgraded violations go through
// warn instead). Mirrors the single record() helper spec.md §4.8 and §7
// describe.
func (p *Parser) record(code ErrorKind, message, context string) ErrorInfo {
	info := ErrorInfo{
		Code:    code,
		Line:    p.lineNumber,
		Column:  p.columnNumber,
		Message: message,
		Context: context,
	}
	p.lastError = info
	p.errorCount++
	return info
}

// warn appends info to p.warnings without touching lastError/errorCount;
// used by BestEffort/CollectAllErrors recovery to surface a downgraded
// violation without treating it as the terminal error.
func (p *Parser) warn(code ErrorKind, message, context string) {
	p.warnings = append(p.warnings, ErrorInfo{
		Code:    code,
		Line:    p.lineNumber,
		Column:  p.columnNumber,
		Message: message,
		Context: context,
	})
}
