// Package capi is the cgo facade over github.com/ocsv/ocsv, exporting the
// C-ABI symbol set a foreign host links against. It is built as a
// c-shared/c-archive artifact from cmd/ocsvcapi; this package is never
// imported by pure-Go code.
//
// No exemplar for a cgo export layer exists anywhere in the corpus this
// module was grounded on, so the shapes here (opaque uintptr handle table,
// parser-owned C allocations freed on the next mutating call or on
// destroy) follow standard cgo conventions rather than an adapted teacher
// file. See DESIGN.md's C10 entry.
package capi

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/ocsv/ocsv"
)

// handle bundles a *ocsv.Parser with every C allocation the facade has
// handed back for it, so those allocations can be freed precisely once —
// on the next call that invalidates them, or on parser_destroy.
type handle struct {
	mu     sync.Mutex
	parser *ocsv.Parser

	fieldPtrs []unsafe.Pointer
	errMsgPtr unsafe.Pointer
	jsonPtr   unsafe.Pointer
	packedPtr unsafe.Pointer
}

var (
	handles   sync.Map // uintptr -> *handle
	nextToken uintptr
	tokenMu   sync.Mutex
)

func register(h *handle) C.uintptr_t {
	tokenMu.Lock()
	nextToken++
	token := nextToken
	tokenMu.Unlock()
	handles.Store(token, h)
	return C.uintptr_t(token)
}

func lookup(p C.uintptr_t) *handle {
	v, ok := handles.Load(uintptr(p))
	if !ok {
		return nil
	}
	return v.(*handle)
}

func (h *handle) freeFields() {
	for _, ptr := range h.fieldPtrs {
		C.free(ptr)
	}
	h.fieldPtrs = nil
}

func (h *handle) freeAll() {
	h.freeFields()
	if h.errMsgPtr != nil {
		C.free(h.errMsgPtr)
		h.errMsgPtr = nil
	}
	if h.jsonPtr != nil {
		C.free(h.jsonPtr)
		h.jsonPtr = nil
	}
	if h.packedPtr != nil {
		C.free(h.packedPtr)
		h.packedPtr = nil
	}
}

//export parser_create
func parser_create() C.uintptr_t {
	h := &handle{parser: ocsv.NewParser()}
	return register(h)
}

//export parser_destroy
func parser_destroy(p C.uintptr_t) {
	h := lookup(p)
	if h == nil {
		return
	}
	h.mu.Lock()
	h.freeAll()
	h.mu.Unlock()
	handles.Delete(uintptr(p))
}

//export parse_string
func parse_string(p C.uintptr_t, data *C.char, length C.int32_t) C.int32_t {
	h := lookup(p)
	if h == nil || data == nil || length < 0 {
		return -1
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.freeFields()
	input := C.GoBytes(unsafe.Pointer(data), length)
	if !h.parser.Parse(input) {
		return -1
	}
	return 0
}

//export get_row_count
func get_row_count(p C.uintptr_t) C.int32_t {
	h := lookup(p)
	if h == nil {
		return -1
	}
	return C.int32_t(h.parser.RowCount())
}

//export get_field_count
func get_field_count(p C.uintptr_t, row C.int32_t) C.int32_t {
	h := lookup(p)
	if h == nil {
		return -1
	}
	return C.int32_t(h.parser.FieldCount(int(row)))
}

//export get_field
func get_field(p C.uintptr_t, row C.int32_t, field C.int32_t) *C.char {
	h := lookup(p)
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	value := h.parser.Field(int(row), int(field))
	if value == nil {
		return nil
	}
	cstr := C.CString(string(value))
	h.fieldPtrs = append(h.fieldPtrs, unsafe.Pointer(cstr))
	return cstr
}

//export set_delimiter
func set_delimiter(p C.uintptr_t, v C.uint8_t) C.int32_t { return setByteField(p, func(c *ocsv.Config) { c.Delimiter = byte(v) }) }

//export set_quote
func set_quote(p C.uintptr_t, v C.uint8_t) C.int32_t { return setByteField(p, func(c *ocsv.Config) { c.Quote = byte(v) }) }

//export set_escape
func set_escape(p C.uintptr_t, v C.uint8_t) C.int32_t { return setByteField(p, func(c *ocsv.Config) { c.Escape = byte(v) }) }

//export set_comment
func set_comment(p C.uintptr_t, v C.uint8_t) C.int32_t { return setByteField(p, func(c *ocsv.Config) { c.Comment = byte(v) }) }

//export set_skip_empty_lines
func set_skip_empty_lines(p C.uintptr_t, v C.bool) C.int32_t {
	return setByteField(p, func(c *ocsv.Config) { c.SkipEmptyLines = bool(v) })
}

//export set_trim
func set_trim(p C.uintptr_t, v C.bool) C.int32_t {
	return setByteField(p, func(c *ocsv.Config) { c.Trim = bool(v) })
}

//export set_relaxed
func set_relaxed(p C.uintptr_t, v C.bool) C.int32_t {
	return setByteField(p, func(c *ocsv.Config) { c.Relaxed = bool(v) })
}

//export set_skip_lines_with_error
func set_skip_lines_with_error(p C.uintptr_t, v C.bool) C.int32_t {
	return setByteField(p, func(c *ocsv.Config) { c.SkipLinesWithError = bool(v) })
}

//export set_max_row_size
func set_max_row_size(p C.uintptr_t, v C.int32_t) C.int32_t {
	return setByteField(p, func(c *ocsv.Config) { c.MaxRowSize = int(v) })
}

//export set_from_line
func set_from_line(p C.uintptr_t, v C.int32_t) C.int32_t {
	return setByteField(p, func(c *ocsv.Config) { c.FromLine = int(v) })
}

//export set_to_line
func set_to_line(p C.uintptr_t, v C.int32_t) C.int32_t {
	return setByteField(p, func(c *ocsv.Config) { c.ToLine = int(v) })
}

// setByteField applies mutate to a copy of the handle's current Config and
// re-validates before committing, matching spec.md §6's "0 success, -1
// invalid input" contract for every set_* symbol.
func setByteField(p C.uintptr_t, mutate func(*ocsv.Config)) C.int32_t {
	h := lookup(p)
	if h == nil {
		return -1
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	cfg := h.parser.Config()
	mutate(&cfg)
	if err := h.parser.SetConfig(cfg); err != nil {
		return -1
	}
	return 0
}

//export has_error
func has_error(p C.uintptr_t) C.bool {
	h := lookup(p)
	if h == nil {
		return C.bool(false)
	}
	return C.bool(h.parser.HasError())
}

//export get_error_code
func get_error_code(p C.uintptr_t) C.int32_t {
	h := lookup(p)
	if h == nil {
		return -1
	}
	return C.int32_t(h.parser.LastError().Code)
}

//export get_error_line
func get_error_line(p C.uintptr_t) C.int32_t {
	h := lookup(p)
	if h == nil {
		return -1
	}
	return C.int32_t(h.parser.LastError().Line)
}

//export get_error_column
func get_error_column(p C.uintptr_t) C.int32_t {
	h := lookup(p)
	if h == nil {
		return -1
	}
	return C.int32_t(h.parser.LastError().Column)
}

//export get_error_message
func get_error_message(p C.uintptr_t) *C.char {
	h := lookup(p)
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.errMsgPtr != nil {
		C.free(h.errMsgPtr)
		h.errMsgPtr = nil
	}
	msg := h.parser.LastError().Message
	cstr := C.CString(msg)
	h.errMsgPtr = unsafe.Pointer(cstr)
	return cstr
}

//export get_error_count
func get_error_count(p C.uintptr_t) C.int32_t {
	h := lookup(p)
	if h == nil {
		return -1
	}
	return C.int32_t(h.parser.ErrorCount())
}

//export rows_to_packed_buffer
func rows_to_packed_buffer(p C.uintptr_t, outSize *C.int32_t) *C.uint8_t {
	h := lookup(p)
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	buf, err := h.parser.Pack()
	if err != nil {
		return nil
	}
	if h.packedPtr != nil {
		C.free(h.packedPtr)
		h.packedPtr = nil
	}
	if len(buf) == 0 {
		if outSize != nil {
			*outSize = 0
		}
		return nil
	}
	h.packedPtr = C.CBytes(buf)
	if outSize != nil {
		*outSize = C.int32_t(len(buf))
	}
	return (*C.uint8_t)(h.packedPtr)
}

//export rows_to_json
func rows_to_json(p C.uintptr_t) *C.char {
	h := lookup(p)
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	rows := h.parser.Rows()
	asStrings := make([][]string, len(rows))
	for i, row := range rows {
		fields := make([]string, len(row))
		for j, field := range row {
			fields[j] = string(field)
		}
		asStrings[i] = fields
	}
	payload, err := json.Marshal(asStrings)
	if err != nil {
		return nil
	}

	if h.jsonPtr != nil {
		C.free(h.jsonPtr)
		h.jsonPtr = nil
	}
	cstr := C.CString(string(payload))
	h.jsonPtr = unsafe.Pointer(cstr)
	return cstr
}
