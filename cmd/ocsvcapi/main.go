// Command ocsvcapi builds the C-ABI facade as a c-shared or c-archive
// artifact:
//
//	go build -buildmode=c-shared -o libocsv.so ./cmd/ocsvcapi
//	go build -buildmode=c-archive -o libocsv.a ./cmd/ocsvcapi
//
// All of the actual //export symbols live in package capi; this package
// only exists because cgo requires the exported symbols to originate from
// package main when building a shared/archive library.
package main

import (
	_ "github.com/ocsv/ocsv/capi"
)

func main() {}
