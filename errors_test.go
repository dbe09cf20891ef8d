package ocsv

import (
	"strings"
	"testing"
)

func TestErrorInfoIsZero(t *testing.T) {
	var e ErrorInfo
	if !e.IsZero() {
		t.Fatalf("zero-value ErrorInfo should report IsZero")
	}
	e.Code = ErrUnterminatedQuote
	if e.IsZero() {
		t.Fatalf("non-None ErrorInfo should not report IsZero")
	}
}

func TestErrorInfoErrorStringIncludesPosition(t *testing.T) {
	e := ErrorInfo{Code: ErrInvalidCharacterAfterQuote, Line: 3, Column: 7, Message: "bad stuff"}
	msg := e.Error()
	if !strings.Contains(msg, "3") || !strings.Contains(msg, "7") || !strings.Contains(msg, "bad stuff") {
		t.Fatalf("error string missing expected fields: %q", msg)
	}
}

func TestParserRecordSetsLastErrorAndIncrementsCount(t *testing.T) {
	p := NewParser()
	p.lineNumber, p.columnNumber = 5, 9
	p.record(ErrUnterminatedQuote, "open quote never closed", "")
	if p.LastError().Code != ErrUnterminatedQuote {
		t.Fatalf("LastError().Code = %v, want ErrUnterminatedQuote", p.LastError().Code)
	}
	if p.LastError().Line != 5 || p.LastError().Column != 9 {
		t.Fatalf("LastError() position = (%d,%d), want (5,9)", p.LastError().Line, p.LastError().Column)
	}
	if p.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", p.ErrorCount())
	}
}

func TestParserWarnAppendsWithoutTouchingLastError(t *testing.T) {
	p := NewParser()
	p.warn(ErrMaxFieldSizeExceeded, "truncated", "")
	if !p.LastError().IsZero() {
		t.Fatalf("warn() should not set lastError")
	}
	if len(p.Warnings()) != 1 {
		t.Fatalf("Warnings() len = %d, want 1", len(p.Warnings()))
	}
	if p.ErrorCount() != 0 {
		t.Fatalf("ErrorCount() should stay 0 after a warning, got %d", p.ErrorCount())
	}
}

func TestResetClearsErrorSurfaceButKeepsConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Trim = true
	p := New(cfg)
	p.ParseScalar([]byte(`"unterminated`))
	if p.LastError().IsZero() {
		t.Fatalf("expected a recorded error before Reset")
	}

	p.Reset()
	if !p.LastError().IsZero() {
		t.Fatalf("Reset should clear lastError")
	}
	if p.RowCount() != 0 {
		t.Fatalf("Reset should clear committed rows")
	}
	if !p.Config().Trim {
		t.Fatalf("Reset should preserve Config")
	}
}
