package ocsv

import (
	"bytes"
	"reflect"
	"testing"
)

func buildSyntheticCSV(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("id,name,note\n")
	for i := 0; i < rows; i++ {
		if i%101 == 0 {
			buf.WriteString("\n") // blank line, to land near a chunk boundary somewhere
		}
		buf.WriteString("1234567890,")
		if i%17 == 0 {
			buf.WriteString(`"quoted, value with ""escaped"" text and a
embedded newline"`)
		} else {
			buf.WriteString("plain-value")
		}
		buf.WriteString(",padding-to-make-this-row-reasonably-sized-for-chunking\n")
	}
	return buf.Bytes()
}

func TestParseParallelEquivalentToSequentialAboveThreshold(t *testing.T) {
	input := buildSyntheticCSV(60000) // comfortably above minParallelFileSize
	if len(input) < minParallelFileSize {
		t.Fatalf("test fixture too small: %d bytes", len(input))
	}

	seq := NewParser()
	if !seq.Parse(input) {
		t.Fatalf("sequential parse failed: %v", seq.LastError())
	}

	par := NewParser()
	if !par.ParseParallel(input, 4) {
		t.Fatalf("parallel parse failed: %v", par.LastError())
	}

	if seq.RowCount() != par.RowCount() {
		t.Fatalf("row count mismatch: sequential=%d parallel=%d", seq.RowCount(), par.RowCount())
	}
	if !reflect.DeepEqual(rowsAsStrings(seq), rowsAsStrings(par)) {
		t.Fatalf("rows differ between sequential and parallel parse")
	}
}

func TestParseParallelFallsBackBelowMinFileSize(t *testing.T) {
	input := []byte("a,b,c\n1,2,3\n")
	p := NewParser()
	if !p.ParseParallel(input, 4) {
		t.Fatalf("unexpected failure: %v", p.LastError())
	}
	want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}}
	if got := rowsAsStrings(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

// TestParallelBlankLineAtChunkBoundaryIsNotDropped pins down the case a
// size-driven chunk split can't reliably exercise: a blank line that opens
// a non-first chunk must still emit a one-empty-field row, exactly as it
// would if the whole input were parsed sequentially.
func TestParallelBlankLineAtChunkBoundaryIsNotDropped(t *testing.T) {
	input := []byte("a\n\nb\n")

	seq := NewParser()
	if !seq.Parse(input) {
		t.Fatalf("sequential parse failed: %v", seq.LastError())
	}

	cfg := NewConfig()
	chunk0 := New(cfg)
	chunk0.beginParse(1, true)
	if !chunk0.parseCore([]byte("a\n"), false) {
		t.Fatalf("chunk0 parse failed: %v", chunk0.LastError())
	}
	chunk1 := New(cfg)
	chunk1.beginParse(2, false)
	if !chunk1.parseCore([]byte("\nb\n"), false) {
		t.Fatalf("chunk1 parse failed: %v", chunk1.LastError())
	}

	merged := append(append([][]string(nil), rowsAsStrings(chunk0)...), rowsAsStrings(chunk1)...)
	if !reflect.DeepEqual(merged, rowsAsStrings(seq)) {
		t.Fatalf("chunked parse %#v does not match sequential parse %#v", merged, rowsAsStrings(seq))
	}
}

func TestDetermineWorkerCountTable(t *testing.T) {
	p := NewParser()
	cases := []struct {
		sizeMB int
		want   int
	}{
		{1, 1},
		{3, 2},
		{8, 4},
	}
	for _, c := range cases {
		got := p.determineWorkerCount(c.sizeMB*1024*1024, 0)
		if got != c.want && got > c.want {
			t.Fatalf("size=%dMB: got worker count %d, want <= %d", c.sizeMB, got, c.want)
		}
	}
}
