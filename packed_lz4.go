package ocsv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// PackCompressed LZ4-frames the canonical packed buffer (Pack's output) for
// hosts that ship it across a narrower transport than an in-process pointer
// handoff — e.g. an FFI boundary that marshals through a pipe instead of
// shared memory. This never replaces the canonical in-memory format: the
// C-ABI facade always exposes the raw packed buffer via rows_to_packed_buffer;
// this is an explicit opt-in helper (C11).
//
// Grounded on entreya-csvquery/internal/common/cidx.go's BlockWriter, which
// compresses its own self-describing binary format with the same library
// and block size.
func PackCompressed(p *Parser) ([]byte, error) {
	raw, err := p.Pack()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var out bytes.Buffer
	w := lz4.NewWriter(&out)
	if err := w.Apply(lz4.BlockSizeOption(lz4.Block64Kb)); err != nil {
		return nil, fmt.Errorf("ocsv: configure lz4 writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("ocsv: lz4 compress packed buffer: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("ocsv: flush lz4 writer: %w", err)
	}
	return out.Bytes(), nil
}

// DecompressPacked reverses PackCompressed and validates that the result is
// a well-formed packed buffer (correct magic) before returning it.
func DecompressPacked(compressed []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(compressed))
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ocsv: lz4 decompress packed buffer: %w", err)
	}
	if len(raw) < packedHeaderSize {
		return nil, fmt.Errorf("ocsv: decompressed buffer shorter than packed header")
	}
	if magic := binary.LittleEndian.Uint32(raw[0:4]); magic != packedMagic {
		return nil, fmt.Errorf("ocsv: decompressed buffer has bad magic %#x", magic)
	}
	return raw, nil
}
