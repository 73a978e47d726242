// Command ringgen writes an array-backed ring buffer type with a fixed
// capacity. Typical use:
//
//	//go:generate go run github.com/momentics/hioload-ring/cmd/ringgen --type SampleRing --elem float32 --capacity 256
//
// The package defaults to $GOPACKAGE, so the directive needs no --package flag.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/momentics/hioload-ring/internal/gen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ringgen:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("ringgen", pflag.ContinueOnError)
	var p gen.Params
	flags.StringVar(&p.TypeName, "type", "", "name of the generated ring type (required)")
	flags.StringVar(&p.ElemType, "elem", "", "element type expression (required)")
	flags.StringVar(&p.TypeParams, "type-params", "", `type parameter list, e.g. "T any"`)
	flags.IntVar(&p.Capacity, "capacity", 0, "fixed capacity, must be >= 1")
	flags.StringVar(&p.Package, "package", os.Getenv("GOPACKAGE"), "package clause of the output file")
	output := flags.StringP("output", "o", "", "output file (default <type>_ring_gen.go)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *output == "" {
		*output = gen.DefaultFilename(p.TypeName)
	}
	abs, err := filepath.Abs(*output)
	if err != nil {
		return err
	}
	p.Dir = filepath.Dir(abs)
	src, err := gen.Generate(abs, p)
	if err != nil {
		return err
	}
	return os.WriteFile(*output, src, 0o644)
}
