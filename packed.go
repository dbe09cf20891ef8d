package ocsv

import "encoding/binary"

// Packed buffer wire format (little-endian throughout), reproduced exactly
// from spec.md §6:
//
//	Header (24 bytes):
//	  offset 0:  u32 magic = 0x4F435356  ("OCSV")
//	  offset 4:  u32 version = 1
//	  offset 8:  u32 row_count
//	  offset 12: u32 field_count   (fields in row 0; informational only)
//	  offset 16: u64 total_bytes   (size of the entire buffer)
//
//	Row offset table (row_count * 4 bytes):
//	  offset 24 + i*4: u32 start_offset of row i's field-data region
//	                   (absolute from buffer start)
//
//	Field data (variable):
//	  for each row, in row order:
//	    for each field in that row:
//	      u16 length_le
//	      length bytes of raw field content (UTF-8)
//
// No padding. Grounded on entreya-csvquery/internal/common/cidx.go's
// magic-header-then-footer shape, adapted to a fixed binary header instead
// of a JSON footer since the field here is random-access by construction
// (row offset table) rather than block-indexed.
const (
	packedMagic       uint32 = 0x4F435356
	packedVersion     uint32 = 1
	packedHeaderSize         = 24
	maxPackedFieldLen        = 65535
)

// Pack serializes p's committed rows into a single contiguous buffer owned
// by the Parser, replacing any previously packed buffer. Returns an empty,
// non-nil slice if there are no rows. Returns FieldTooLargeToPack if any
// field exceeds 65535 bytes — the u16 length-prefix ceiling.
func (p *Parser) Pack() ([]byte, error) {
	if len(p.allRows) == 0 {
		p.packedBuffer = []byte{}
		return p.packedBuffer, nil
	}

	size := packedHeaderSize + 4*len(p.allRows)
	for _, row := range p.allRows {
		for _, field := range row {
			if len(field) > maxPackedFieldLen {
				return nil, p.record(ErrFieldTooLargeToPack, "field exceeds 65535 bytes", "")
			}
			size += 2 + len(field)
		}
	}

	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], packedMagic)
	binary.LittleEndian.PutUint32(buf[4:8], packedVersion)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(p.allRows)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(p.allRows[0])))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(size))

	offsetTable := buf[packedHeaderSize : packedHeaderSize+4*len(p.allRows)]
	cursor := packedHeaderSize + 4*len(p.allRows)
	for i, row := range p.allRows {
		binary.LittleEndian.PutUint32(offsetTable[i*4:i*4+4], uint32(cursor))
		for _, field := range row {
			binary.LittleEndian.PutUint16(buf[cursor:cursor+2], uint16(len(field)))
			cursor += 2
			copy(buf[cursor:cursor+len(field)], field)
			cursor += len(field)
		}
	}

	p.packedBuffer = buf
	return buf, nil
}

// PackedBuffer returns the buffer produced by the most recent Pack call, or
// nil if Pack has not been called since the last parse/Reset.
func (p *Parser) PackedBuffer() []byte { return p.packedBuffer }

// UnpackRows decodes a packed buffer produced by Pack back into rows,
// without requiring a Parser. Used by the packed round-trip test and by
// C-ABI hosts that received a buffer out-of-process.
func UnpackRows(buf []byte) ([][][]byte, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	if len(buf) < packedHeaderSize {
		return nil, ErrorInfo{Code: ErrMemoryAllocationFailed, Message: "packed buffer shorter than header"}
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != packedMagic {
		return nil, ErrorInfo{Code: ErrMemoryAllocationFailed, Message: "bad packed buffer magic"}
	}
	rowCount := int(binary.LittleEndian.Uint32(buf[8:12]))
	if rowCount == 0 {
		return nil, nil
	}

	offsetTableEnd := packedHeaderSize + 4*rowCount
	if offsetTableEnd > len(buf) {
		return nil, ErrorInfo{Code: ErrMemoryAllocationFailed, Message: "packed buffer truncated row-offset table"}
	}

	rows := make([][][]byte, rowCount)
	for i := 0; i < rowCount; i++ {
		start := int(binary.LittleEndian.Uint32(buf[packedHeaderSize+i*4 : packedHeaderSize+i*4+4]))
		end := len(buf)
		if i+1 < rowCount {
			end = int(binary.LittleEndian.Uint32(buf[packedHeaderSize+(i+1)*4 : packedHeaderSize+(i+1)*4+4]))
		}
		var fields [][]byte
		pos := start
		for pos < end {
			if pos+2 > len(buf) {
				return nil, ErrorInfo{Code: ErrMemoryAllocationFailed, Message: "packed buffer truncated field length"}
			}
			flen := int(binary.LittleEndian.Uint16(buf[pos : pos+2]))
			pos += 2
			if pos+flen > len(buf) {
				return nil, ErrorInfo{Code: ErrMemoryAllocationFailed, Message: "packed buffer truncated field data"}
			}
			field := make([]byte, flen)
			copy(field, buf[pos:pos+flen])
			fields = append(fields, field)
			pos += flen
		}
		rows[i] = fields
	}
	return rows, nil
}
