package ocsv

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestChunksPartitionReconstitutesInput(t *testing.T) {
	inputs := []string{
		"",
		"a\n",
		"a,b\nc,d\ne,f\n",
		"\"a\nb\",c\nd,e\n",
	}
	for _, in := range inputs {
		for _, n := range []int{1, 2, 3, 8} {
			chunks := Chunks([]byte(in), n, '"')
			var joined []byte
			for _, c := range chunks {
				joined = append(joined, c...)
			}
			if !bytes.Equal(joined, []byte(in)) {
				t.Fatalf("n=%d: concatenation %q != input %q", n, joined, in)
			}
		}
	}
}

func TestChunksNeverSplitInsideQuotedField(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("ab,\"\n")
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(400) + 1
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}

		chunks := Chunks(buf, rng.Intn(6)+1, '"')

		var joined []byte
		for _, c := range chunks {
			joined = append(joined, c...)
		}
		if !bytes.Equal(joined, buf) {
			t.Fatalf("chunk concatenation does not equal input (trial %d)", trial)
		}

		offset := 0
		for _, c := range chunks {
			if offset > 0 {
				inQuotes := false
				for i := 0; i < offset; i++ {
					if buf[i] == '"' {
						if i+1 < len(buf) && buf[i+1] == '"' {
							i++
							continue
						}
						inQuotes = !inQuotes
					}
				}
				if inQuotes {
					t.Fatalf("chunk boundary at %d falls inside a quoted field (trial %d)", offset, trial)
				}
			}
			offset += len(c)
		}
	}
}

func TestChunksSmallInputReturnsSingleChunk(t *testing.T) {
	in := []byte("a,b\nc,d\n")
	chunks := Chunks(in, 8, '"')
	if len(chunks) != 1 {
		t.Fatalf("expected a single chunk for input smaller than minChunkSize, got %d", len(chunks))
	}
}
