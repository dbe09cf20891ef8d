package ocsv

import (
	"bytes"
	"testing"
)

func TestWriterQuotesFieldsThatNeedIt(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteAll([][]string{
		{"plain", "has,comma", `has"quote`, "has\nnewline", " leadingspace"},
	}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got := buf.String()
	want := "plain,\"has,comma\",\"has\"\"quote\",\"has\nnewline\",\" leadingspace\"\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterCRLF(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write([]string{"a", "b"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := buf.String(); got != "a,b\r\n" {
		t.Fatalf("got %q, want %q", got, "a,b\r\n")
	}
}

func TestWriterRoundTripsThroughReader(t *testing.T) {
	records := [][]string{
		{"a", "b", "c"},
		{"has,comma", `has "quote"`, "has\nnewline"},
		{"", "", ""},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if len(got[i]) != len(records[i]) {
			t.Fatalf("record %d: got %d fields, want %d", i, len(got[i]), len(records[i]))
		}
		for j := range records[i] {
			if got[i][j] != records[i][j] {
				t.Fatalf("record %d field %d: got %q, want %q", i, j, got[i][j], records[i][j])
			}
		}
	}
}
