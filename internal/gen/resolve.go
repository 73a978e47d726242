package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
)

// scope holds the names an element type expression may refer to without a
// package qualifier.
type scope struct {
	typeParams map[string]bool
	types      map[string]bool // top-level types of the target package
	consts     map[string]bool // top-level constants, usable as array lengths
}

func newScope(typeParams []string) *scope {
	s := &scope{
		typeParams: make(map[string]bool),
		types:      make(map[string]bool),
		consts:     make(map[string]bool),
	}
	for _, n := range typeParams {
		s.typeParams[n] = true
	}
	return s
}

// loadDir records the top-level type and constant declarations of the
// package in dir. Test files and ringgen output are skipped. Every file must
// belong to pkg.
func (s *scope) loadDir(dir, pkg string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return err
		}
		if isRinggenOutput(f) {
			continue
		}
		if f.Name.Name != pkg {
			return fmt.Errorf("%s declares package %s, not %s", name, f.Name.Name, pkg)
		}
		for _, d := range f.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, sp := range gd.Specs {
				switch sp := sp.(type) {
				case *ast.TypeSpec:
					s.types[sp.Name.Name] = true
				case *ast.ValueSpec:
					if gd.Tok == token.CONST {
						for _, n := range sp.Names {
							s.consts[n.Name] = true
						}
					}
				}
			}
		}
	}
	return nil
}

func isRinggenOutput(f *ast.File) bool {
	return len(f.Comments) > 0 && strings.HasPrefix(f.Comments[0].Text(), "Code generated by ringgen")
}

func (s *scope) isType(name string) bool {
	if name == "_" {
		return false
	}
	if s.typeParams[name] || s.types[name] {
		return true
	}
	_, ok := types.Universe.Lookup(name).(*types.TypeName)
	return ok
}

func (s *scope) isConst(name string) bool {
	if s.consts[name] {
		return true
	}
	_, ok := types.Universe.Lookup(name).(*types.Const)
	return ok
}

// checkType requires e to be a type expression whose unqualified names all
// resolve in s. Qualified names are left to import resolution.
func (s *scope) checkType(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.Ident:
		if s.isType(e.Name) {
			return nil
		}
		return fmt.Errorf("undeclared type %s", e.Name)
	case *ast.SelectorExpr:
		if _, ok := e.X.(*ast.Ident); ok {
			return nil
		}
	case *ast.ParenExpr:
		return s.checkType(e.X)
	case *ast.StarExpr:
		return s.checkType(e.X)
	case *ast.ArrayType:
		if e.Len != nil {
			if err := s.checkLen(e.Len); err != nil {
				return err
			}
		}
		return s.checkType(e.Elt)
	case *ast.MapType:
		if err := s.checkType(e.Key); err != nil {
			return err
		}
		return s.checkType(e.Value)
	case *ast.ChanType:
		return s.checkType(e.Value)
	case *ast.FuncType:
		if err := s.checkFields(e.Params); err != nil {
			return err
		}
		return s.checkFields(e.Results)
	case *ast.StructType:
		return s.checkFields(e.Fields)
	case *ast.InterfaceType:
		return nil
	case *ast.IndexExpr:
		if err := s.checkType(e.X); err != nil {
			return err
		}
		return s.checkType(e.Index)
	case *ast.IndexListExpr:
		if err := s.checkType(e.X); err != nil {
			return err
		}
		for _, ix := range e.Indices {
			if err := s.checkType(ix); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s is not a type", types.ExprString(e))
}

func (s *scope) checkFields(fl *ast.FieldList) error {
	if fl == nil {
		return nil
	}
	for _, f := range fl.List {
		t := f.Type
		if ell, ok := t.(*ast.Ellipsis); ok {
			t = ell.Elt
		}
		if err := s.checkType(t); err != nil {
			return err
		}
	}
	return nil
}

// checkLen accepts constant expressions usable as an array length.
func (s *scope) checkLen(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind == token.INT {
			return nil
		}
	case *ast.Ident:
		if s.isConst(e.Name) {
			return nil
		}
		return fmt.Errorf("undeclared constant %s", e.Name)
	case *ast.SelectorExpr:
		if _, ok := e.X.(*ast.Ident); ok {
			return nil
		}
	case *ast.ParenExpr:
		return s.checkLen(e.X)
	case *ast.BinaryExpr:
		if err := s.checkLen(e.X); err != nil {
			return err
		}
		return s.checkLen(e.Y)
	}
	return fmt.Errorf("invalid array length %s", types.ExprString(e))
}
