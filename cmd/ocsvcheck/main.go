// Command ocsvcheck is a small diagnostic CLI wrapping the ocsv engine:
// parse a file (or stdin), report row/field counts and any structural
// error, and optionally pack the rows and report the packed size. Mirrors the
// corpus's preference for a bare flag-based cmd/<tool>/main.go for a
// single-purpose binary rather than a cobra-style command tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/ocsv/ocsv"
)

func main() {
	var (
		delimiter = flag.String("delimiter", ",", "field delimiter")
		quote     = flag.String("quote", `"`, "quote character")
		comment   = flag.String("comment", "", "comment character, empty disables")
		relaxed   = flag.Bool("relaxed", false, "tolerate malformed quoting")
		trim      = flag.Bool("trim", false, "set Config.Trim (the parser does not consult it; fields print untrimmed)")
		parallel  = flag.Bool("parallel", false, "use the parallel parser")
		workers   = flag.Int("workers", runtime.NumCPU(), "worker count for -parallel")
		pack      = flag.Bool("pack", false, "pack rows into the binary buffer and report its size")
		quiet     = flag.Bool("quiet", false, "suppress row/field dump, report only summary")
		fromLine  = flag.Int("from-line", 0, "first row to display, 0-indexed")
		toLine    = flag.Int("to-line", -1, "last row to display, -1 for through the last row")
	)
	flag.Parse()

	var input []byte
	var err error
	if args := flag.Args(); len(args) > 0 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocsvcheck: %v\n", err)
		os.Exit(1)
	}

	cfg := ocsv.NewConfig()
	cfg.Delimiter = (*delimiter)[0]
	cfg.Quote = (*quote)[0]
	cfg.Relaxed = *relaxed
	cfg.Trim = *trim
	cfg.FromLine = *fromLine
	cfg.ToLine = *toLine
	if *comment != "" {
		cfg.Comment = (*comment)[0]
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ocsvcheck: invalid config: %v\n", err)
		os.Exit(1)
	}

	p := ocsv.New(cfg)
	start := time.Now()
	var ok bool
	if *parallel {
		ok = p.ParseParallel(input, *workers)
	} else {
		ok = p.Parse(input)
	}
	elapsed := time.Since(start)

	fmt.Printf("rows=%d errors=%d warnings=%d elapsed=%s\n", p.RowCount(), p.ErrorCount(), len(p.Warnings()), elapsed)
	if !ok {
		last := p.LastError()
		fmt.Fprintf(os.Stderr, "ocsvcheck: %s\n", last.Error())
	}

	if !*quiet {
		for _, row := range ocsv.FilterLines(p.Rows(), cfg) {
			for j, field := range row {
				if j > 0 {
					fmt.Print(string(cfg.Delimiter))
				}
				fmt.Print(string(field))
			}
			fmt.Println()
		}
	}

	if *pack {
		buf, err := p.Pack()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ocsvcheck: pack: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("packed_bytes=%d\n", len(buf))
	}

	if !ok {
		os.Exit(1)
	}
}
