package ocsv

import (
	"encoding/binary"
	"reflect"
	"testing"
)

func TestPackedRoundTrip(t *testing.T) {
	p := NewParser()
	if !p.ParseScalar([]byte("a,b,c\n1,2,3\n\"x,y\",z,w\n")) {
		t.Fatalf("unexpected failure: %v", p.LastError())
	}

	buf, err := p.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	decoded, err := UnpackRows(buf)
	if err != nil {
		t.Fatalf("UnpackRows: %v", err)
	}
	if !reflect.DeepEqual(decoded, p.Rows()) {
		t.Fatalf("round trip mismatch:\n got  %#v\n want %#v", decoded, p.Rows())
	}
}

func TestPackedBufferMagicVersionAndCounts(t *testing.T) {
	p := NewParser()
	if !p.ParseScalar([]byte("a,b\n1,2\n")) {
		t.Fatalf("unexpected failure: %v", p.LastError())
	}
	buf, err := p.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if len(buf) < packedHeaderSize {
		t.Fatalf("packed buffer shorter than header: %d bytes", len(buf))
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != packedMagic {
		t.Fatalf("magic = %#x, want %#x", magic, packedMagic)
	}
	// little-endian 0x4F435356 serializes as bytes 56 53 43 4F
	if !reflect.DeepEqual(buf[0:4], []byte{0x56, 0x53, 0x43, 0x4F}) {
		t.Fatalf("magic bytes = % x, want 56 53 43 4f", buf[0:4])
	}

	version := binary.LittleEndian.Uint32(buf[4:8])
	if version != 1 {
		t.Fatalf("version = %d, want 1", version)
	}
	rowCount := binary.LittleEndian.Uint32(buf[8:12])
	if rowCount != 2 {
		t.Fatalf("row_count = %d, want 2", rowCount)
	}
	fieldCount := binary.LittleEndian.Uint32(buf[12:16])
	if fieldCount != 2 {
		t.Fatalf("field_count = %d, want 2", fieldCount)
	}
}

func TestPackEmptyRowsReturnsEmptyBuffer(t *testing.T) {
	p := NewParser()
	if !p.ParseScalar([]byte("")) {
		t.Fatalf("unexpected failure: %v", p.LastError())
	}
	buf, err := p.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if buf == nil || len(buf) != 0 {
		t.Fatalf("expected empty, non-nil buffer, got %#v", buf)
	}
}

func TestPackFieldTooLargeToPack(t *testing.T) {
	p := NewParser()
	big := make([]byte, maxPackedFieldLen+1)
	for i := range big {
		big[i] = 'x'
	}
	if !p.ParseScalar(append(big, '\n')) {
		t.Fatalf("unexpected failure: %v", p.LastError())
	}
	if _, err := p.Pack(); err == nil {
		t.Fatalf("expected FieldTooLargeToPack error")
	} else if info, ok := err.(ErrorInfo); !ok || info.Code != ErrFieldTooLargeToPack {
		t.Fatalf("got error %v, want ErrFieldTooLargeToPack", err)
	}
}

func TestPackCompressedRoundTrip(t *testing.T) {
	p := NewParser()
	if !p.ParseScalar([]byte("a,b,c\n1,2,3\n")) {
		t.Fatalf("unexpected failure: %v", p.LastError())
	}
	compressed, err := PackCompressed(p)
	if err != nil {
		t.Fatalf("PackCompressed: %v", err)
	}
	raw, err := DecompressPacked(compressed)
	if err != nil {
		t.Fatalf("DecompressPacked: %v", err)
	}
	decoded, err := UnpackRows(raw)
	if err != nil {
		t.Fatalf("UnpackRows: %v", err)
	}
	if !reflect.DeepEqual(decoded, p.Rows()) {
		t.Fatalf("compressed round trip mismatch")
	}
}
