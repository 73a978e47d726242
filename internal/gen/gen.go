// File: internal/gen/gen.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Source generator for array-backed ring buffers with a compile-time
// capacity. The generated type carries the same method set as ring.Buffer
// but stores its elements in a [N]T array, so it needs no heap allocation
// and its capacity is a constant of the type itself.

package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/tools/imports"

	"github.com/momentics/hioload-ring/api"
)

// Params describes one generated ring type.
type Params struct {
	Package    string // package clause of the output file
	TypeName   string // generated type; its case decides constructor visibility
	TypeParams string // optional type parameter list without brackets, e.g. "T any"
	ElemType   string // element type expression, e.g. "int", "*Frame", "T"
	Capacity   int    // fixed capacity, must be >= 1

	// Dir is the target package directory. Its top-level types and constants
	// may appear unqualified in ElemType. Empty means none.
	Dir string
}

// Validate reports every problem with p at once.
func (p Params) Validate() error {
	var result *multierror.Error

	if !isName(p.Package) {
		result = multierror.Append(result, invalid("package", p.Package))
	}
	if !isName(p.TypeName) {
		result = multierror.Append(result, invalid("type", p.TypeName))
	}

	var elem ast.Expr
	if strings.TrimSpace(p.ElemType) == "" {
		result = multierror.Append(result, invalid("element type", p.ElemType))
	} else if e, err := parser.ParseExpr(p.ElemType); err != nil {
		result = multierror.Append(result, invalid("element type", p.ElemType).WithContext("parse", err.Error()))
	} else {
		elem = e
	}
	var params []string
	if p.TypeParams != "" {
		names, err := typeParamNames(p.TypeParams)
		if err != nil {
			result = multierror.Append(result, invalid("type parameters", p.TypeParams).WithContext("parse", err.Error()))
			elem = nil
		}
		params = names
	}
	if elem != nil {
		sc := newScope(params)
		if isName(p.TypeName) {
			sc.types[p.TypeName] = true
		}
		if p.Dir != "" && isName(p.Package) {
			if err := sc.loadDir(p.Dir, p.Package); err != nil {
				result = multierror.Append(result, invalid("package directory", p.Dir).WithContext("load", err.Error()))
				elem = nil
			}
		}
		if elem != nil {
			if err := sc.checkType(elem); err != nil {
				result = multierror.Append(result, invalid("element type", p.ElemType).WithContext("resolve", err.Error()))
			}
		}
	}
	if p.Capacity < 1 {
		result = multierror.Append(result, api.CapacityError(p.Capacity))
	}
	return result.ErrorOrNil()
}

// isName reports whether s can name a package or type. The blank
// identifier cannot.
func isName(s string) bool {
	return s != "_" && token.IsIdentifier(s)
}

func invalid(what, value string) *api.Error {
	return api.NewError(api.ErrCodeInvalidArgument, "invalid "+what).WithContext("value", value)
}

// typeParamNames extracts the parameter names from a list like "K comparable, V any".
func typeParamNames(list string) ([]string, error) {
	src := "package p\ntype _[" + list + "] struct{}\n"
	f, err := parser.ParseFile(token.NewFileSet(), "", src, 0)
	if err != nil {
		return nil, err
	}
	spec := f.Decls[0].(*ast.GenDecl).Specs[0].(*ast.TypeSpec)
	if spec.TypeParams == nil {
		return nil, fmt.Errorf("no type parameters in %q", list)
	}
	var names []string
	for _, field := range spec.TypeParams.List {
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}
	return names, nil
}

// view is the template input derived from Params.
type view struct {
	Params
	Receiver    string // "Name" or "Name[T]"
	Decl        string // "Name" or "Name[T any]"
	Constructor string
	CapConst    string
	Assert      bool
}

func newView(p Params) (view, error) {
	v := view{
		Params:   p,
		Receiver: p.TypeName,
		Decl:     p.TypeName,
		CapConst: lowerFirst(p.TypeName) + "Capacity",
		Assert:   p.TypeParams == "",
	}
	if isExported(p.TypeName) {
		v.Constructor = "New" + p.TypeName
		v.CapConst = p.TypeName + "Capacity"
	} else {
		v.Constructor = "new" + upperFirst(p.TypeName)
	}
	if p.TypeParams != "" {
		names, err := typeParamNames(p.TypeParams)
		if err != nil {
			return v, err
		}
		v.Receiver = p.TypeName + "[" + strings.Join(names, ", ") + "]"
		v.Decl = p.TypeName + "[" + p.TypeParams + "]"
	}
	return v, nil
}

// Generate renders, formats and import-fixes the source for p.
// filename only guides import resolution and may be empty.
func Generate(filename string, p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	v, err := newView(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := ringTemplate.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render %s: %w", p.TypeName, err)
	}
	out, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", p.TypeName, err)
	}
	return out, nil
}

// DefaultFilename is the output name used when none is given.
func DefaultFilename(typeName string) string {
	return strings.ToLower(typeName) + "_ring_gen.go"
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}
