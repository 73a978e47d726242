// Package samples holds ring types produced by cmd/ringgen. The files are
// checked in so the generator output is compiled and tested with the module.
package samples

//go:generate go run github.com/momentics/hioload-ring/cmd/ringgen --type SampleRing --elem float32 --capacity 8
