package ocsv

import "testing"

func TestNewConfigDefaultsAreRFC4180(t *testing.T) {
	cfg := NewConfig()
	if cfg.Delimiter != ',' || cfg.Quote != '"' || cfg.Escape != '"' {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Comment != 0 {
		t.Fatalf("comment should default to disabled (0), got %q", cfg.Comment)
	}
	if cfg.ToLine != -1 {
		t.Fatalf("to_line should default to -1 (all), got %d", cfg.ToLine)
	}
	if cfg.OnError != FailFast {
		t.Fatalf("on_error should default to FailFast, got %v", cfg.OnError)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidateRejectsDelimiterEqualsQuote(t *testing.T) {
	cfg := NewConfig()
	cfg.Delimiter = '"'
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error when delimiter == quote")
	}
}

func TestConfigValidateRejectsCRLFDelimiter(t *testing.T) {
	for _, d := range []byte{'\n', '\r'} {
		cfg := NewConfig()
		cfg.Delimiter = d
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for delimiter %q", d)
		}
	}
}

func TestConfigValidateRejectsNegativeFields(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.MaxRowSize = -1 },
		func(c *Config) { c.FromLine = -1 },
		func(c *Config) { c.MaxErrors = -1 },
	}
	for _, mutate := range cases {
		cfg := NewConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
}

func TestConfigValidateRejectsFromLineAfterToLine(t *testing.T) {
	cfg := NewConfig()
	cfg.FromLine = 5
	cfg.ToLine = 2
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error when from_line > to_line")
	}
}

func TestResolvePolicyFoldsSkipLinesWithError(t *testing.T) {
	cfg := NewConfig()
	cfg.SkipLinesWithError = true
	if got := cfg.resolvePolicy(); got != SkipRow {
		t.Fatalf("resolvePolicy() = %v, want SkipRow", got)
	}

	cfg.OnError = BestEffort
	if got := cfg.resolvePolicy(); got != BestEffort {
		t.Fatalf("resolvePolicy() = %v, want BestEffort (explicit OnError wins)", got)
	}
}

func TestSetConfigRejectsMutationDuringParse(t *testing.T) {
	p := NewParser()
	p.parsing = true
	if err := p.SetConfig(NewConfig()); err == nil {
		t.Fatalf("expected error when mutating config mid-parse")
	}
}

func TestSetConfigRejectsInvalidConfig(t *testing.T) {
	p := NewParser()
	bad := NewConfig()
	bad.Delimiter = bad.Quote
	if err := p.SetConfig(bad); err == nil {
		t.Fatalf("expected error for invalid config")
	}
}
