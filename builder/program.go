package builder

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"omibyte.io/arm9rt/stub"
)

// Program is one package directory under transformation.
type Program struct {
	fset       *token.FileSet
	path       string
	name       string
	importPath string

	files map[string]*ast.File
	stubs map[string][]*stub.Stub

	// layoutFile is the argument of a //arm9:layout pragma, resolved
	// relative to the package directory.
	layoutFile string
}

func newProgram(fset *token.FileSet, path string) *Program {
	return &Program{
		fset:  fset,
		path:  path,
		files: map[string]*ast.File{},
		stubs: map[string][]*stub.Stub{},
	}
}

// parse loads the package at the directory. Test files are skipped and
// build tags are honored the way the go tool honors them.
func (p *Program) parse(tags []string) error {
	buildCtx := build.Default
	buildCtx.BuildTags = tags

	filter := func(info os.FileInfo) bool {
		if strings.HasSuffix(info.Name(), "_test.go") {
			return false
		}
		match, err := buildCtx.MatchFile(p.path, info.Name())
		return err == nil && match
	}

	packages, err := parser.ParseDir(p.fset, p.path, filter, parser.ParseComments)
	if err != nil {
		return errors.Join(ErrParserError, err)
	}
	if len(packages) > 1 {
		return fmt.Errorf("%w: %s", ErrMultiplePackages, p.path)
	}

	for name, pkg := range packages {
		p.name = name
		p.files = pkg.Files

		// Gather information from any pragmas found in each source.
		for _, file := range pkg.Files {
			for _, commentGroup := range file.Comments {
				for _, comment := range commentGroup.List {
					parts := strings.Split(comment.Text, " ")
					if len(parts) == 2 && parts[0] == "//arm9:layout" {
						p.layoutFile = filepath.Join(p.path, parts[1])
					}
				}
			}
		}
	}

	return nil
}

// analyze runs the stub pipeline over every function declaration, mutating
// annotated declarations in place and recording their stubs. All
// diagnostics are collected before reporting.
func (p *Program) analyze() error {
	var errs []error
	for _, filename := range p.fileNames() {
		file := p.files[filename]
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			s, err := stub.Analyze(p.fset, fn)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if s != nil {
				p.stubs[filename] = append(p.stubs[filename], s)
			}
		}
	}
	return errors.Join(errs...)
}

// fileNames returns the package's file names in deterministic order.
func (p *Program) fileNames() []string {
	names := maps.Keys(p.files)
	sort.Strings(names)
	return names
}

// imports returns every import path the package's files reference.
func (p *Program) imports() []string {
	set := map[string]bool{}
	for _, file := range p.files {
		for _, imp := range file.Imports {
			set[strings.Trim(imp.Path.Value, `"`)] = true
		}
	}
	paths := maps.Keys(set)
	sort.Strings(paths)
	return paths
}

// allStubs returns the package's stubs in file order.
func (p *Program) allStubs() []*stub.Stub {
	var all []*stub.Stub
	for _, filename := range p.fileNames() {
		all = append(all, p.stubs[filename]...)
	}
	return all
}
