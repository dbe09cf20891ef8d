package ocsv

import "fmt"

// Config is the immutable-after-parse configuration for a [Parser]. Zero
// value is not valid; use [NewConfig] to get RFC 4180 defaults.
type Config struct {
	Delimiter byte
	Quote     byte
	Escape    byte // stored and validated; the state machine only consults Quote (see SPEC_FULL.md §9)
	Comment   byte // 0 disables comment-line handling

	Trim           bool
	Relaxed        bool
	SkipEmptyLines bool

	MaxRowSize int // bytes; 0 disables the check

	FromLine int // 0-indexed; 0 = all
	ToLine   int // -1 = all

	SkipLinesWithError bool
	OnError            RecoveryPolicy
	MaxErrors          int // companion to CollectAllErrors; 0 means unlimited
}

// NewConfig returns a Config with RFC 4180 defaults: comma delimiter,
// double-quote quoting and escaping, no comment byte, strict mode,
// fail-fast error handling.
func NewConfig() Config {
	return Config{
		Delimiter: ',',
		Quote:     '"',
		Escape:    '"',
		Comment:   0,
		ToLine:    -1,
		OnError:   FailFast,
	}
}

// Validate checks the structural validity of c, returning an InvalidConfig
// ErrorInfo (wrapped as an error) on the first violation found.
func (c Config) Validate() error {
	if c.Delimiter == c.Quote {
		return newConfigError("delimiter must differ from quote")
	}
	if c.Delimiter == '\n' || c.Delimiter == '\r' {
		return newConfigError("delimiter must not be CR or LF")
	}
	if c.MaxRowSize < 0 {
		return newConfigError("max_row_size must be >= 0")
	}
	if c.FromLine < 0 {
		return newConfigError("from_line must be >= 0")
	}
	if c.ToLine >= 0 && c.FromLine > c.ToLine {
		return newConfigError("from_line must be <= to_line")
	}
	if c.MaxErrors < 0 {
		return newConfigError("max_errors must be >= 0")
	}
	return nil
}

func newConfigError(msg string) error {
	return ErrorInfo{Code: ErrInvalidConfig, Message: fmt.Sprintf("invalid config: %s", msg)}
}

// resolvePolicy folds the legacy SkipLinesWithError knob into OnError: a
// caller that only set the bool gets SkipRow behavior without having to
// also know about the richer enum.
func (c Config) resolvePolicy() RecoveryPolicy {
	if c.SkipLinesWithError && c.OnError == FailFast {
		return SkipRow
	}
	return c.OnError
}
